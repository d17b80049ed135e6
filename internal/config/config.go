/*
PURPOSE:
  Defines the configuration structure and loading logic for forestry.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Choose where forest files live.
  - Tune the random tree generator used by (A)dd.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs to support Environment variable overrides (FORESTRY_...).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/generator
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default file is not an error; defaults are used.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults: trees up to 20 years old, 100 ft tall, growing 20 ft/yr.

USAGE:
  cfg, err := config.Load("forestry.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct, DefaultConfig() and Validate().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/daryltucker/forestry/internal/output"
)

// Environment variables that override file values.
const (
	EnvDataDir  = "FORESTRY_DATA_DIR"
	EnvLogLevel = "FORESTRY_LOG_LEVEL"
)

// DefaultFiles are searched, in order, when no path is given.
var DefaultFiles = []string{"forestry.yaml", "forestry.yml"}

// Config represents the full configuration for forestry.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Extension string          `yaml:"extension"`
	LogLevel  string          `yaml:"log_level"`
	LogFormat string          `yaml:"log_format"`
	Generator GeneratorConfig `yaml:"generator"`
}

// GeneratorConfig bounds the random trees created by the (A)dd command.
type GeneratorConfig struct {
	MaxAgeYears   int     `yaml:"max_age_years"`
	MaxHeight     float64 `yaml:"max_height"`
	MaxGrowthRate float64 `yaml:"max_growth_rate"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:   ".",
		Extension: ".db",
		LogLevel:  "warn",
		LogFormat: "text",
		Generator: GeneratorConfig{
			MaxAgeYears:   20,
			MaxHeight:     100,
			MaxGrowthRate: 20,
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		output.Logger.Debug("Loaded config", "path", path)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}
	if c.Extension == "" {
		errs = append(errs, errors.New("extension must not be empty"))
	}
	if _, err := output.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log_format %q", c.LogFormat))
	}
	if c.Generator.MaxAgeYears <= 0 {
		errs = append(errs, errors.New("generator.max_age_years must be positive"))
	}
	if c.Generator.MaxHeight < 0 {
		errs = append(errs, errors.New("generator.max_height must not be negative"))
	}
	if c.Generator.MaxGrowthRate < 0 {
		errs = append(errs, errors.New("generator.max_growth_rate must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
