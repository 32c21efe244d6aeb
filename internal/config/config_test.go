// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validAuthEnv sets the minimum environment for a loadable config.
func validAuthEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PANOPTES_AUTH_JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("PANOPTES_AUTH_ADMIN_USERNAME", "admin")
	t.Setenv("PANOPTES_AUTH_ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
}

func TestLoadDefaults(t *testing.T) {
	validAuthEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Addr != ":8085" {
		t.Errorf("Server.Addr = %q, want :8085", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.Analytics.Timeout != 10*time.Second {
		t.Errorf("Analytics.Timeout = %v, want 10s", cfg.Analytics.Timeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	validAuthEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server:\n  addr: \":9000\"\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PANOPTES_SERVER_ADDR", ":9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Addr != ":9100" {
		t.Errorf("Server.Addr = %q, want env override :9100", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want file value debug", cfg.Logging.Level)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	validAuthEnv(t)
	t.Setenv("PANOPTES_SERVER_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	got := cfg.Server.CORSAllowedOrigins
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Errorf("CORSAllowedOrigins = %v", got)
	}
}

func TestLoadFailsWithoutAuthSecret(t *testing.T) {
	// Auth is enabled by default; refusing to start without credentials
	// beats silently serving unauthenticated.
	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without auth credentials")
	}
}

func TestValidateProviderURLRequired(t *testing.T) {
	cfg := Default()
	cfg.Auth.Enabled = false
	cfg.Analytics.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted enabled provider without URL")
	}

	cfg.Analytics.URL = "https://analytics.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestValidateRejectsShortJWTSecret(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = "short"
	cfg.Auth.AdminUsername = "admin"
	cfg.Auth.AdminPasswordHash = "hash"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted a short JWT secret")
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Auth.Enabled = false
	cfg.Logging.Level = "loud"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted an unknown log level")
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PANOPTES_SERVER_ADDR", "server.addr"},
		{"PANOPTES_AUTH_JWT_SECRET", "auth.jwt_secret"},
		{"PANOPTES_ANALYTICS_API_KEY", "analytics.api_key"},
		{"PANOPTES_SERVER_RATE_LIMIT_REQUESTS", "server.rate_limit_requests"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
