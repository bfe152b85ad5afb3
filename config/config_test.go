package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backtick.yaml")
	content := "ignore_file: .customignore\nworkers: 8\nrecursive: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.IgnoreFile != ".customignore" {
		t.Errorf("IgnoreFile = %q", cfg.IgnoreFile)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.Recursive {
		t.Error("Recursive should be false")
	}
	// Untouched fields keep their defaults.
	if cfg.CacheSize != Default().CacheSize {
		t.Errorf("CacheSize = %d, want default %d", cfg.CacheSize, Default().CacheSize)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backtick.yaml")
	if err := os.WriteFile(path, []byte("workers: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BACKTICK_WORKERS", "2")
	t.Setenv("BACKTICK_IGNORE_FILE", ".envignore")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want env override 2", cfg.Workers)
	}
	if cfg.IgnoreFile != ".envignore" {
		t.Errorf("IgnoreFile = %q, want env override", cfg.IgnoreFile)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("workers: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
