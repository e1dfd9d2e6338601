// Package config loads optional TOML configuration for the deckport
// commands. Absent keys keep their defaults, so an empty file and no file
// behave the same.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultInclude is the header included at the top of generated decks.
	DefaultInclude = "icv.rh"
	// DefaultUnit is the unit suffix used in violation descriptions.
	DefaultUnit = "um"
	// DefaultTolerance is the coordinate tolerance for result comparison.
	DefaultTolerance = 0.001
)

type Config struct {
	Translate Translate `toml:"translate"`
	Compare   Compare   `toml:"compare"`
	History   History   `toml:"history"`
}

type Translate struct {
	Include string `toml:"include"`
	Unit    string `toml:"unit"`
}

type Compare struct {
	Tolerance float64 `toml:"tolerance"`
}

// History configures run recording. An empty path disables it.
type History struct {
	Path string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Translate: Translate{Include: DefaultInclude, Unit: DefaultUnit},
		Compare:   Compare{Tolerance: DefaultTolerance},
	}
}

// Load reads a TOML config file. Keys not present in the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
