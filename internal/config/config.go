// Package config loads the optional .snippy.yaml project configuration.
// Flags always win over file values; the file only supplies defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the base path.
const FileName = ".snippy.yaml"

// Config holds the file-supplied defaults.
type Config struct {
	// BasePath is the directory block filenames resolve against.
	BasePath string `yaml:"base_path"`
	// LogsPath receives failed-patch diagnostic artifacts.
	LogsPath string `yaml:"logs_path"`
	// IntervalMs is the clipboard polling interval for watch mode.
	IntervalMs int `yaml:"interval_ms"`
	// FirstLine marks self-copied clipboard content the watcher must skip.
	FirstLine string `yaml:"first_line"`
	// Extensions restricts which block filenames are applied.
	Extensions []string `yaml:"extensions"`
	// IgnorePatterns excludes files from copy expansion.
	IgnorePatterns []string `yaml:"ignore_patterns"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BasePath:   ".",
		LogsPath:   ".snippy-logs",
		IntervalMs: 1000,
		FirstLine:  "# Relevant Code",
	}
}

// Load reads the config file under dir, if present, merged over Default.
func Load(dir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "."
	}
	if cfg.LogsPath == "" {
		cfg.LogsPath = ".snippy-logs"
	}
	if cfg.IntervalMs <= 0 {
		cfg.IntervalMs = 1000
	}
	return cfg, nil
}
