// Package config loads the optional jqplay.toml manifest, discovered by
// walking up from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Interpreter InterpreterConfig `toml:"interpreter"`
	Assistant   AssistantConfig   `toml:"assistant"`
	Play        PlayConfig        `toml:"play"`
}

type InterpreterConfig struct {
	Path           string   `toml:"path"`
	Args           []string `toml:"args"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

type AssistantConfig struct {
	Model      string `toml:"model"`
	MaxTokens  int    `toml:"max_tokens"`
	MaxRetries int    `toml:"max_retries"`
}

type PlayConfig struct {
	UI string `toml:"ui"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Interpreter: InterpreterConfig{Path: "jq", TimeoutSeconds: 10},
		Assistant:   AssistantConfig{MaxTokens: 1024, MaxRetries: 3},
		Play:        PlayConfig{UI: "auto"},
	}
}

func (c InterpreterConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Find walks up from startDir looking for jqplay.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "jqplay.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the manifest, falling back to defaults when no
// manifest exists. Unknown keys are a hard error so typos surface.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
