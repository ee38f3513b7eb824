package cli

import (
	"os"
	"path/filepath"
	"testing"

	"xmltree/dom"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Error("Expected error for an explicit path that does not exist")
	}

	// A missing implicit config falls back to defaults.
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig error = %v", err)
	}
	if cfg.Format.Indent != dom.DefaultIndent {
		t.Errorf("Indent = %d, want %d", cfg.Format.Indent, dom.DefaultIndent)
	}
	if cfg.Format.Compact {
		t.Error("Compact should default to false")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".xmltree.toml")
	content := "[format]\nindent = 4\ncompact = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error = %v", err)
	}
	if cfg.Format.Indent != 4 {
		t.Errorf("Indent = %d, want 4", cfg.Format.Indent)
	}
	if !cfg.Format.Compact {
		t.Error("Compact = false, want true")
	}
}

func TestLoadConfigRejectsNegativeIndent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".xmltree.toml")
	if err := os.WriteFile(path, []byte("[format]\nindent = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("Expected error for negative indent")
	}
}
