// Package config decodes the optional runtime settings file. Settings cover
// logging, telemetry, loader policy and extra unit aliases; the product and
// attribute schemas themselves are fixed and not configurable.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"clusterfile/catalog"
	"clusterfile/units"
)

// LokiConfig configures optional Loki integration for logging.
type LokiConfig struct {
	Enabled bool              `yaml:"enabled"`
	URL     string            `yaml:"url"`
	Labels  map[string]string `yaml:"labels"`
}

// LoggingConfig encapsulates runtime logging options.
type LoggingConfig struct {
	Level  string     `yaml:"level"`
	Format string     `yaml:"format,omitempty"`
	Loki   LokiConfig `yaml:"loki"`
}

// TelemetryConfig configures the Prometheus collector.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoaderConfig configures catalog loader policies.
type LoaderConfig struct {
	// UnknownGroups is one of ignore, warn or error.
	UnknownGroups string `yaml:"unknown_groups,omitempty"`
	// SkipGroups are root children skipped without reporting, merged with
	// the built-in skip list.
	SkipGroups []string `yaml:"skip_groups,omitempty"`
	// Parallel caps concurrent product-group validation; values below two
	// keep loads sequential.
	Parallel int `yaml:"parallel,omitempty"`
}

// UnitsConfig extends the unit registry.
type UnitsConfig struct {
	// Aliases maps raw unit spellings onto canonical units.
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// Config is the root settings structure.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Loader    LoaderConfig    `yaml:"loader"`
	Units     UnitsConfig     `yaml:"units"`
}

// Default returns the settings used when no file is provided.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Loader:  LoaderConfig{UnknownGroups: string(catalog.UnknownWarn)},
	}
}

// Load reads and validates a settings file. Unknown fields are rejected.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path must not be empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enum fields and alias targets.
func (c Config) Validate() error {
	if _, err := catalog.ParseUnknownGroupPolicy(c.Loader.UnknownGroups); err != nil {
		return err
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// Registry builds a unit registry extended with the configured aliases.
func (c Config) Registry() (*units.Registry, error) {
	if len(c.Units.Aliases) == 0 {
		return units.Default(), nil
	}
	extra := make(map[string]units.Unit, len(c.Units.Aliases))
	for raw, target := range c.Units.Aliases {
		extra[raw] = units.Unit(target)
	}
	reg, err := units.New(extra)
	if err != nil {
		return nil, fmt.Errorf("units aliases: %w", err)
	}
	return reg, nil
}

// LoaderOptions translates the settings into catalog loader options.
func (c Config) LoaderOptions() ([]catalog.Option, error) {
	policy, err := catalog.ParseUnknownGroupPolicy(c.Loader.UnknownGroups)
	if err != nil {
		return nil, err
	}
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	opts := []catalog.Option{
		catalog.WithUnknownGroupPolicy(policy),
		catalog.WithRegistry(reg),
	}
	if len(c.Loader.SkipGroups) > 0 {
		opts = append(opts, catalog.WithSkipGroups(c.Loader.SkipGroups...))
	}
	if c.Loader.Parallel > 1 {
		opts = append(opts, catalog.WithParallelism(c.Loader.Parallel))
	}
	return opts, nil
}
