package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DatabaseFile != "ideastash.db" {
		t.Errorf("Expected default database file ideastash.db, got %s", cfg.DatabaseFile)
	}
	if cfg.API.Addr == "" {
		t.Error("Expected a default API address")
	}
	if cfg.Capture.DedupeWindow <= 0 {
		t.Errorf("Expected a positive dedupe window, got %d", cfg.Capture.DedupeWindow)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.API.Addr = "127.0.0.1:9999"
	cfg.Capture.DedupeWindow = 8

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.API.Addr != "127.0.0.1:9999" {
		t.Errorf("Expected saved API addr, got %s", loaded.API.Addr)
	}
	if loaded.Capture.DedupeWindow != 8 {
		t.Errorf("Expected saved dedupe window 8, got %d", loaded.Capture.DedupeWindow)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load with missing file should not fail: %v", err)
	}

	if cfg.DatabaseFile != "ideastash.db" {
		t.Errorf("Expected default database file, got %s", cfg.DatabaseFile)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("IDEASTASH_API_ADDR", "127.0.0.1:7777")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.API.Addr != "127.0.0.1:7777" {
		t.Errorf("Expected env override for API addr, got %s", cfg.API.Addr)
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/stash"

	if got := cfg.DatabasePath(); got != filepath.Join("/tmp/stash", "ideastash.db") {
		t.Errorf("Unexpected database path: %s", got)
	}

	cfg.DatabaseFile = string(os.PathSeparator) + "abs.db"
	if got := cfg.DatabasePath(); got != cfg.DatabaseFile {
		t.Errorf("Absolute database file should be used as-is, got %s", got)
	}
}
