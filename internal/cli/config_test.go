package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[scan]
max_files = 100000
depth = 5
follow_symlinks = true

[render]
width = 1920.0
height = 1080.0
format = "json"
labels = true

[view]
max_depth = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Scan.MaxFiles != 100000 || cfg.Scan.Depth != 5 || !cfg.Scan.FollowSymlinks {
		t.Errorf("scan config = %+v", cfg.Scan)
	}
	if cfg.Render.Width != 1920 || cfg.Render.Format != "json" || !cfg.Render.Labels {
		t.Errorf("render config = %+v", cfg.Render)
	}
	if cfg.View.MaxDepth != 4 {
		t.Errorf("view config = %+v", cfg.View)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing config should not error, got %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("missing config should be zero, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("empty path should not error, got %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("empty path should yield zero config, got %+v", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[scan\nmax_files = "), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed config should error")
	}
}
