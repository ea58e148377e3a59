package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/odvcencio/bomdep/pkg/gitoid"
)

const defaultConfigFile = ".bomdep.toml"

// Config holds tool settings read from .bomdep.toml. A missing file
// yields the defaults.
type Config struct {
	ResultDir  string   `toml:"result_dir"`
	Algorithms []string `toml:"algorithms"`
	Columns    uint     `toml:"columns"`
	Phony      bool     `toml:"phony"`
	Modules    bool     `toml:"modules"`
}

func defaultConfig() *Config {
	return &Config{
		Algorithms: []string{"sha1"},
		Columns:    72,
	}
}

// loadConfig reads path, falling back to defaults when the file does not
// exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// algorithms maps the configured algorithm names to selectors.
func (c *Config) algorithms() ([]gitoid.Algorithm, error) {
	algos := make([]gitoid.Algorithm, 0, len(c.Algorithms))
	for _, name := range c.Algorithms {
		switch name {
		case "sha1":
			algos = append(algos, gitoid.SHA1)
		case "sha256":
			algos = append(algos, gitoid.SHA256)
		default:
			return nil, fmt.Errorf("config: unknown algorithm %q", name)
		}
	}
	return algos, nil
}
