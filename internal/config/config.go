// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Package config loads Panoptes configuration via Koanf v2 with layered
// sources (highest priority wins): environment variables, YAML config
// file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the Panoptes server.
type Config struct {
	Server    ServerConfig   `koanf:"server"`
	Logging   LoggingConfig  `koanf:"logging"`
	Auth      AuthConfig     `koanf:"auth"`
	Analytics ProviderConfig `koanf:"analytics"`
	Search    ProviderConfig `koanf:"search"`
	Orders    ProviderConfig `koanf:"orders"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSAllowedOrigins is empty by default, which disables cross-origin
	// access. Wildcards must be configured explicitly.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// CacheTTL bounds how long provider responses are served from the
	// in-memory cache. Zero disables response caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig configures the zerolog pipeline.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// AuthConfig configures single-admin JWT authentication.
type AuthConfig struct {
	Enabled bool `koanf:"enabled"`

	// JWTSecret signs HS256 tokens. Must be at least 32 bytes.
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`

	AdminUsername string `koanf:"admin_username"`

	// AdminPasswordHash is a bcrypt hash, never the plaintext password.
	AdminPasswordHash string `koanf:"admin_password_hash"`
}

// ProviderConfig configures one upstream data provider.
type ProviderConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url" validate:"omitempty,url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`

	// Client-side rate limiting towards the provider.
	RatePerSecond float64 `koanf:"rate_per_second" validate:"gte=0"`
	RateBurst     int     `koanf:"rate_burst" validate:"gte=0"`
}

// Default returns the built-in defaults. They are applied first and then
// overridden by the config file and environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8085",
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CacheTTL:          time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			Enabled:  true,
			TokenTTL: 12 * time.Hour,
		},
		Analytics: ProviderConfig{
			Timeout:       10 * time.Second,
			RatePerSecond: 5,
			RateBurst:     10,
		},
		Search: ProviderConfig{
			Timeout:       10 * time.Second,
			RatePerSecond: 2,
			RateBurst:     5,
		},
		Orders: ProviderConfig{
			Timeout:       10 * time.Second,
			RatePerSecond: 5,
			RateBurst:     10,
		},
	}
}

// minJWTSecretLen is the minimum secret length for HS256 signing.
const minJWTSecretLen = 32

var errAuthMisconfigured = errors.New("auth enabled but incomplete")

// Validate checks tag constraints and the cross-field rules the tags
// cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Auth.Enabled {
		switch {
		case len(c.Auth.JWTSecret) < minJWTSecretLen:
			return fmt.Errorf("%w: auth.jwt_secret must be at least %d characters", errAuthMisconfigured, minJWTSecretLen)
		case c.Auth.AdminUsername == "":
			return fmt.Errorf("%w: auth.admin_username is required", errAuthMisconfigured)
		case c.Auth.AdminPasswordHash == "":
			return fmt.Errorf("%w: auth.admin_password_hash is required", errAuthMisconfigured)
		}
	}

	for name, p := range map[string]ProviderConfig{
		"analytics": c.Analytics,
		"search":    c.Search,
		"orders":    c.Orders,
	} {
		if p.Enabled && p.URL == "" {
			return fmt.Errorf("%s.url is required when %s.enabled is true", name, name)
		}
	}

	return nil
}
