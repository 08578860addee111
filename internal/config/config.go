package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/gift-exchange/internal/harness"
	"github.com/appengine-ltd/gift-exchange/internal/pairing"
)

const (
	DefaultPath = "giftswap.yaml"
	EnvPrefix   = "GIFTSWAP_"
)

// Config holds the giftswap settings. Values come from DefaultConfig, then
// the YAML file, then GIFTSWAP_* environment variables.
type Config struct {
	Dataset          string `yaml:"dataset" env:"DATASET"`
	Report           string `yaml:"report" env:"REPORT"`
	Seeds            int    `yaml:"seeds" env:"SEEDS"`
	SeedPrefix       string `yaml:"seed_prefix" env:"SEED_PREFIX"`
	MaxAttempts      int    `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
	Workers          int    `yaml:"workers" env:"WORKERS"`
	StrictExclusions bool   `yaml:"strict_exclusions" env:"STRICT_EXCLUSIONS"`

	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"FORMAT"` // json, console
}

func DefaultConfig() *Config {
	return &Config{
		Dataset:     "participants.json",
		Report:      harness.DefaultReportPath,
		Seeds:       harness.DefaultSeeds,
		SeedPrefix:  harness.DefaultPrefix,
		MaxAttempts: pairing.MaxAttempts,
		Workers:     1,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error when optional is set.
func Load(path string, optional bool) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Dataset == "" {
		return fmt.Errorf("dataset path is required")
	}
	if c.Seeds < 1 {
		return fmt.Errorf("seeds must be at least 1, got %d", c.Seeds)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}
	return nil
}

func (c *Config) HarnessOptions() harness.Options {
	return harness.Options{
		Seeds:       c.Seeds,
		Prefix:      c.SeedPrefix,
		Workers:     c.Workers,
		MaxAttempts: c.MaxAttempts,
		Strict:      c.StrictExclusions,
	}
}
