// Package config loads the tool's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration. Every field has a working default so the
// tool runs without a config file at all.
type Config struct {
	// EnginePath is the UCI engine binary to spawn.
	EnginePath string `yaml:"engine_path"`
	// EcoPath is the JSON opening reference table.
	EcoPath string `yaml:"eco_path"`
	// UserAgent identifies us to the chess.com API.
	UserAgent string `yaml:"user_agent"`
	// OutputDir receives the annotated PGN and the CSV/JSON result files.
	OutputDir string `yaml:"output_dir"`
	// TimeClass filters fetched games (rapid, blitz, bullet, daily).
	TimeClass string `yaml:"time_class"`
	// Username is the default player for fetch and fairplay.
	Username string `yaml:"username"`
}

// DefaultConfig returns the defaults.
func DefaultConfig() *Config {
	return &Config{
		EnginePath: "stockfish",
		EcoPath:    "eco.json",
		UserAgent:  "chess-scripts",
		OutputDir:  ".",
		TimeClass:  "rapid",
	}
}

// Load reads configuration from a file. An explicit path must exist; an
// empty path searches the default locations and falls back to defaults when
// none is present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		for _, name := range []string{"chess-scripts.yaml", ".chess-scripts.yaml"} {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
