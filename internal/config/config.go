// Package config loads the settings shared by every shrub command from the
// environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the defaults for the command line flags.
type Config struct {
	Criterion  float64 `envconfig:"SHRUB_CRITERION" default:"0.1"`
	MaxDepth   int     `envconfig:"SHRUB_MAX_DEPTH" default:"0"`
	Workers    int     `envconfig:"SHRUB_WORKERS" default:"1"`
	LogLevel   string  `envconfig:"SHRUB_LOG_LEVEL" default:"info"`
	LogDev     bool    `envconfig:"SHRUB_LOG_DEVELOPMENT" default:"true"`
	MaxDBConns int     `envconfig:"SHRUB_MAX_DB_CONNS" default:"0"`
	Color      bool    `envconfig:"SHRUB_COLOR" default:"true"`
}

// Load returns the configuration read from the environment.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the numeric settings are in range.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxDBConns < 0 {
		return fmt.Errorf("max db connections must not be negative, got %d", c.MaxDBConns)
	}
	return nil
}
