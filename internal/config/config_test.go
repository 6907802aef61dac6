package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EnginePath != "stockfish" {
		t.Errorf("EnginePath = %q, want stockfish", cfg.EnginePath)
	}
	if cfg.TimeClass != "rapid" {
		t.Errorf("TimeClass = %q, want rapid", cfg.TimeClass)
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want .", cfg.OutputDir)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess-scripts.yaml")
	data := "engine_path: /usr/bin/stockfish\nusername: kyle_b81\ntime_class: blitz\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EnginePath != "/usr/bin/stockfish" {
		t.Errorf("EnginePath = %q", cfg.EnginePath)
	}
	if cfg.Username != "kyle_b81" {
		t.Errorf("Username = %q", cfg.Username)
	}
	if cfg.TimeClass != "blitz" {
		t.Errorf("TimeClass = %q", cfg.TimeClass)
	}
	// Untouched fields keep their defaults.
	if cfg.EcoPath != "eco.json" {
		t.Errorf("EcoPath = %q, want default eco.json", cfg.EcoPath)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("an explicitly named missing config file must fail")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine_path: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("invalid YAML must fail")
	}
}
