// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to components via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Modhaven gallery dev server
// and the defaults the interaction engine picks up when constructed from env.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// SiteBaseURL is where the interaction engine reaches the site API.
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"http://localhost:8080"`

	// SessionSecret signs dev server session tokens (HS256).
	SessionSecret string `env:"SESSION_SECRET" envDefault:"modhaven-dev-secret-key"`

	// RedisURL enables the Redis session store when set. Empty means the
	// dev server keeps sessions in memory.
	RedisURL string `env:"REDIS_URL"`

	// SubmissionDailyLimit caps per-user video submissions per day (429 beyond it).
	SubmissionDailyLimit int `env:"SUBMISSION_DAILY_LIMIT" envDefault:"3"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
