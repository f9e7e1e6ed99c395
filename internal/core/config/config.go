// Package config carries the tunables a composition root needs to stand up
// a world: store reserve sizing, background worker limits and log level.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// ReservedCount is the per-store sparse-table and dense-array baseline.
	ReservedCount int `json:"reserved_count" yaml:"reserved_count"`
	// JobWorkers bounds concurrent post-load tasks; <= 0 means unlimited.
	JobWorkers int `json:"job_workers" yaml:"job_workers"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ReservedCount: 50000,
		JobWorkers:    0,
		LogLevel:      "info",
	}
}

// LoadJSON loads config from a JSON reader.
func LoadJSON(r io.Reader) (Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: failed to decode json: %w", err)
	}
	return c, nil
}

// LoadYAML loads config from a YAML reader.
func LoadYAML(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: failed to decode yaml: %w", err)
	}
	return c, nil
}

// FromFile loads a config file, dispatching on extension (.json, .yaml,
// .yml).
func FromFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch filepath.Ext(path) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return Config{}, fmt.Errorf("config: unsupported file extension %q", filepath.Ext(path))
	}
}
