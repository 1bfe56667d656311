package jsonpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when diskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists derived paths keyed by sample digest, so large
// samples are not re-walked on every invocation of the CLI.
type DiskCache struct {
	dir string
}

type diskPayload struct {
	Schema uint16 `msgpack:"schema"`
	Paths  []Path `msgpack:"paths"`
}

func NewDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("jsonpath: empty disk cache dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonpath: create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) entryPath(digest Digest) string {
	return filepath.Join(c.dir, digest.String()+".paths")
}

// Load returns the cached paths for a digest. A missing entry, a stale
// schema or a corrupt payload all read as a miss, never as an error.
func (c *DiskCache) Load(digest Digest) ([]Path, bool) {
	data, err := os.ReadFile(c.entryPath(digest))
	if err != nil {
		return nil, false
	}
	var payload diskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	return payload.Paths, true
}

// Store writes the derived paths for a digest atomically.
func (c *DiskCache) Store(digest Digest, paths []Path) error {
	data, err := msgpack.Marshal(diskPayload{
		Schema: diskCacheSchemaVersion,
		Paths:  paths,
	})
	if err != nil {
		return fmt.Errorf("jsonpath: encode cache payload: %w", err)
	}
	target := c.entryPath(digest)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("jsonpath: write cache payload: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		removeErr := os.Remove(tmp)
		return fmt.Errorf("jsonpath: rename cache payload: %w", errors.Join(err, removeErr))
	}
	return nil
}
