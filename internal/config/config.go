// Package config provides configuration loading for the simplelog CLI.
//
// Settings come from an optional YAML file overlaid with SIMPLELOG_
// environment variables. The logger section maps onto logging.Config.
package config

import (
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/simplelog/internal/logging"
)

// DefaultName is the logger name used when none is configured.
const DefaultName = "simplelog"

// Config holds the complete simplelog configuration.
type Config struct {
	// Name is the registry name of the logger the CLI writes through.
	Name   string         `koanf:"name"`
	Logger logging.Config `koanf:"logger"`
}

// Default returns a Config populated with the logging defaults.
func Default() *Config {
	return &Config{
		Name:   DefaultName,
		Logger: *logging.NewDefaultConfig(),
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}
