// Package config loads the service configuration from a YAML or JSON file
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/fleetmind/driverguide/core/metrics"
	"github.com/fleetmind/driverguide/core/priority"
	"github.com/fleetmind/driverguide/core/twin"
	"github.com/fleetmind/driverguide/infra/dataset"
)

// Config aggregates every component configuration.
type Config struct {
	Dataset  dataset.Config     `json:"dataset"`
	Priority priority.Config    `json:"priority"`
	Twin     twin.Config        `json:"twin"`
	Metrics  coremetrics.Config `json:"metrics"`
	// Workers bounds the per-driver fan-out of the twin pass. Drivers are
	// fully independent, so any positive value is sound.
	Workers int `json:"workers"`
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Priority.SetDefaults()
	c.Twin.SetDefaults()
	c.Metrics.SetDefaults()
	if c.Workers == 0 {
		c.Workers = 4
	}
}

// Validate checks every section. Configuration errors surface here, before
// any engine is built.
func (c Config) Validate() error {
	if err := c.Dataset.Validate(); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if err := c.Priority.Validate(); err != nil {
		return err
	}
	if err := c.Twin.Validate(); err != nil {
		return err
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// Load reads the configuration file, applies DG_-prefixed environment
// overrides, defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DG_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dg_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
