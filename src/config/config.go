// Package config provides configuration for the gbp CLI.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the CLI configuration, populated from environment
// variables.
type Config struct {
	// URL is the base URL of the build-publisher service. The GraphQL
	// endpoint is derived from it by the client.
	URL string `env:"BUILD_PUBLISHER_URL" envDefault:"https://gbp/"`
}

// Load populates a Config from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// MustLoad loads the configuration and panics on error. Intended for use
// in main() where a broken environment is fatal.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
