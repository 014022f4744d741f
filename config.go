package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"bc-combo-solver/internal/combo"
)

// defaultConfigFile is read from the working directory when --config is not given.
const defaultConfigFile = "bc-combo.yaml"

// Config holds every tunable of the CLI, the HTTP server and the Lambda handler.
type Config struct {
	Data struct {
		// Combos is the combos table (.tsv, .json or .xlsx).
		Combos string `yaml:"combos"`
		// Cats is the optional evolution-form table.
		Cats string `yaml:"cats"`
	} `yaml:"data"`

	Search struct {
		combo.Options `yaml:",inline"`
		// Timeout bounds one search; partial results are returned when it fires.
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"search"`

	Defaults struct {
		Strength int `yaml:"strength"`
		MaxUnits int `yaml:"max_units"`
	} `yaml:"defaults"`

	Serve struct {
		Addr  string `yaml:"addr"`
		Watch bool   `yaml:"watch"`
	} `yaml:"serve"`
}

// DefaultConfig returns a config usable without any file.
func DefaultConfig() Config {
	var c Config
	c.Data.Combos = "data/combos.tsv"
	c.Data.Cats = "data/cats.tsv"
	c.Search.Options = combo.DefaultOptions()
	c.Search.Timeout = 30 * time.Second
	c.Defaults.Strength = 1
	c.Defaults.MaxUnits = 5
	c.Serve.Addr = ":8080"
	return c
}

// LoadConfig overlays the YAML file at path onto DefaultConfig. Unknown keys
// are rejected. An empty path falls back to bc-combo.yaml in the working
// directory, and a missing default file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Search.MaxComboSize > combo.HardMaxComboSize {
		return fmt.Errorf("search.max_combo_size must be at most %d, got %d", combo.HardMaxComboSize, c.Search.MaxComboSize)
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("search.timeout must not be negative")
	}
	if c.Defaults.MaxUnits < 1 {
		return fmt.Errorf("defaults.max_units must be at least 1, got %d", c.Defaults.MaxUnits)
	}
	return nil
}
