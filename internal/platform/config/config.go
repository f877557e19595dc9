// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package config maps environment variables onto a typed [Config] using
caarlos0/env.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The loaded value is read-only and is passed to constructors explicitly.
Nothing in the core reads configuration from globals.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server and shelfctl.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Refresh sessions (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing
	JWTSecret       string        `env:"JWT_SECRET,required"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"30m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`

	// OAuth audiences. An empty value disables the provider.
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
	AppleClientID  string `env:"APPLE_CLIENT_ID"`

	// Cross-Origin Resource Sharing, comma separated.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// PurgeScheduleInterval drives `shelfctl schedule`.
	PurgeScheduleInterval time.Duration `env:"PURGE_SCHEDULE_INTERVAL" envDefault:"24h"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("config: JWT_SECRET must be at least 32 characters")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the parsed EXTRA_ORIGINS list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
