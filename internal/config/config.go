// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the full environment surface of the server.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8000"`

	// SupabaseURL is the identity provider base URL. When empty, or when
	// it does not point at a real Supabase project, the server runs in
	// permissive mode and unauthenticated requests resolve to a mock identity.
	SupabaseURL string `env:"SUPABASE_URL"`

	// DatabaseURL is the Postgres DSN. When empty the server falls back
	// to an embedded SQLite file.
	DatabaseURL string `env:"DATABASE_URL"`

	// SQLitePath is the fallback store location used when DatabaseURL is empty.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"local.db"`

	// AllowedOrigins is the CORS allow-list.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`

	// AppEnv controls whether internal error details are exposed in responses.
	AppEnv string `env:"APP_ENV"`

	// OpenAIKey switches the AI helper endpoints out of template mode.
	OpenAIKey string `env:"OPENAI_API_KEY"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Permissive reports whether the verifier should fall back to the mock
// identity. True when no identity provider is configured or the
// configured URL does not look like a production Supabase project.
func (c Config) Permissive() bool {
	return c.SupabaseURL == "" || !strings.Contains(c.SupabaseURL, "supabase.co")
}

// Development reports whether internal error details may be exposed in
// HTTP responses.
func (c Config) Development() bool {
	return c.AppEnv == "development" || c.DatabaseURL == ""
}

// JWKSURL derives the signing-key discovery URL from the provider base
// URL. Empty when no provider is configured.
func (c Config) JWKSURL() string {
	if c.SupabaseURL == "" {
		return ""
	}
	return strings.TrimSuffix(c.SupabaseURL, "/") + "/auth/v1/.well-known/jwks.json"
}
