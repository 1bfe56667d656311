package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutManifest(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interpreter.Path != "jq" || cfg.Interpreter.Timeout() != 10*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg.Interpreter)
	}
}

func TestLoadFindsManifestInParent(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := "[interpreter]\npath = \"/opt/jq\"\ntimeout_seconds = 3\n\n[assistant]\nmodel = \"claude-3-5-haiku-latest\"\n"
	if err := os.WriteFile(filepath.Join(root, "jqplay.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interpreter.Path != "/opt/jq" || cfg.Interpreter.Timeout() != 3*time.Second {
		t.Fatalf("manifest not applied: %+v", cfg.Interpreter)
	}
	if cfg.Play.UI != "auto" {
		t.Fatalf("defaults must survive partial manifests: %+v", cfg.Play)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "jqplay.toml"), []byte("[interpreter]\npth = \"jq\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for a misspelled key")
	}
}
