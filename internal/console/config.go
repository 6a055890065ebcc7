// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package console is the admin back-office gateway.

It is a small server in front of the platform API: it owns the operator's
session, guards the administrative routes on the session's role flag, and
forwards data operations to the API through typed REST clients.
*/
package console

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the console's runtime settings, parsed from the
// environment the same way the API server's config is.
type Config struct {
	// Port the console listens on.
	Port string `env:"CONSOLE_PORT" envDefault:"8090"`

	// APIBaseURL is the platform API root, e.g. "http://localhost:8080".
	APIBaseURL string `env:"API_BASE_URL,required"`

	// RedisURL backs session persistence. When unset the console falls
	// back to in-process storage, losing sessions on restart.
	RedisURL string `env:"CONSOLE_REDIS_URL"`

	// PollInterval is how often persisted session storage is re-checked
	// for external clearing. It bounds the staleness window.
	PollInterval time.Duration `env:"SESSION_POLL_INTERVAL" envDefault:"30s"`

	// LoginURL is where unauthorized requests are redirected.
	LoginURL string `env:"CONSOLE_LOGIN_URL" envDefault:"/login"`
}

// LoadConfig parses console settings from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("console: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}
