// Package config loads session defaults from YAML files validated against
// an embedded CUE schema.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor a flag sets a value.
const (
	DefaultInitiator = "permutation"
	DefaultAlgorithm = "quick"
	DefaultN         = 64
	DefaultDelay     = 50 * time.Millisecond
)

// Config holds session defaults. A zero Seed means a fresh random seed
// per initiation.
type Config struct {
	Initiator string
	Algorithm string
	N         int
	Delay     time.Duration
	Seed      uint64
}

// fileConfig is the YAML shape of Config.
type fileConfig struct {
	Initiator string `yaml:"initiator"`
	Algorithm string `yaml:"algorithm"`
	N         *int   `yaml:"n"`
	Delay     string `yaml:"delay"`
	Seed      uint64 `yaml:"seed"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Initiator: DefaultInitiator,
		Algorithm: DefaultAlgorithm,
		N:         DefaultN,
		Delay:     DefaultDelay,
	}
}

// Load reads a config file. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates data against the config schema and overlays it on
// Default.
func Parse(data []byte) (Config, error) {
	schema, err := LoadSchema()
	if err != nil {
		return Config{}, err
	}
	if err := schema.ValidateYAML(DefConfig, data); err != nil {
		return Config{}, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	cfg := Default()
	if fc.Initiator != "" {
		cfg.Initiator = fc.Initiator
	}
	if fc.Algorithm != "" {
		cfg.Algorithm = fc.Algorithm
	}
	if fc.N != nil {
		cfg.N = *fc.N
	}
	if fc.Delay != "" {
		d, err := time.ParseDuration(fc.Delay)
		if err != nil {
			return Config{}, fmt.Errorf("delay: %w", err)
		}
		cfg.Delay = d
	}
	cfg.Seed = fc.Seed
	return cfg, nil
}
