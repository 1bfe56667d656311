package jsonpath

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest identifies one sample document's content.
type Digest [sha256.Size]byte

func DigestOf(sample []byte) Digest {
	return sha256.Sum256(sample)
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Cache memoizes the derived paths of the most recent sample. A changed
// sample produces a different digest, which invalidates the entry; there
// is no explicit eviction call.
type Cache struct {
	digest Digest
	paths  []Path
	warm   bool
}

func NewCache() *Cache {
	return &Cache{}
}

// Paths returns the derived paths for the sample, recomputing only when
// the sample content changed since the previous call.
func (c *Cache) Paths(sample []byte) ([]Path, error) {
	digest := DigestOf(sample)
	if c.warm && digest == c.digest {
		return c.paths, nil
	}
	paths, err := Derive(sample)
	if err != nil {
		c.warm = false
		return nil, err
	}
	c.digest = digest
	c.paths = paths
	c.warm = true
	return paths, nil
}
