// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

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
  - DI-Friendly: Passed to core components (DB, Redis, Kafka) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Veloura API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWTSecret signs access tokens (HMAC-SHA256, minimum 32 bytes).
	JWTSecret string `env:"JWT_SECRET,required"`

	// Full-Text Search (Elasticsearch). Search degrades to the SQL catalogue
	// listing when unset.
	ElasticURL      string `env:"ELASTIC_URL"`
	ElasticUser     string `env:"ELASTIC_USER"`
	ElasticPassword string `env:"ELASTIC_PASSWORD"`
	ElasticIndex    string `env:"ELASTIC_INDEX" envDefault:"veloura-products"`

	// Behavior event stream (Kafka). Event publishing is disabled when unset.
	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC"  envDefault:"veloura.behavior"`

	// Assistant upstream for the storefront chat widget (OpenAI-compatible).
	// The widget falls back to canned replies when unset.
	AssistantURL   string `env:"ASSISTANT_URL"`
	AssistantKey   string `env:"ASSISTANT_API_KEY"`
	AssistantModel string `env:"ASSISTANT_MODEL" envDefault:"gpt-4o-mini"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Map environment variables to struct fields. This fails fast if any
	// field marked 'required' is missing.
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
