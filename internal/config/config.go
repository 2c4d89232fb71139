// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config holds the settings of the netsim command.
//
// Settings are read from an optional YAML file, then overridden by
// environment variables.
//
package config

import (
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultDB       = "netsim.db"
	DefaultMaxSteps = 100
	DefaultLogLevel = "warn"
)

// Config is the netsim command configuration.
//
type Config struct {
	DB       string `yaml:"db" env:"NETSIM_DB"`
	MaxSteps int    `yaml:"max_steps" env:"NETSIM_MAX_STEPS"`
	LogLevel string `yaml:"log_level" env:"NETSIM_LOG_LEVEL"`
	Color    bool   `yaml:"color" env:"NETSIM_COLOR"`
}

// DefaultConfig returns the default configuration.
//
func DefaultConfig() *Config {
	return &Config{
		DB:       DefaultDB,
		MaxSteps: DefaultMaxSteps,
		LogLevel: DefaultLogLevel,
		Color:    true,
	}
}

// Load reads the configuration file at path, if not empty, and applies
// environment overrides.
//
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all settings have sensible values.
//
func (c *Config) Validate() error {
	if c.MaxSteps < 1 {
		return errors.Errorf("max_steps must be at least 1, got %d", c.MaxSteps)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
//
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, errors.Wrapf(err, "log_level %q", c.LogLevel)
	}
	return l, nil
}
