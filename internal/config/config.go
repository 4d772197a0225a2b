// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	// HTTPAddr is the listen address for the API server.
	HTTPAddr string

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret signs session tokens. Required outside local development.
	JWTSecret string

	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration

	// ExchangeAPIURL overrides the exchange-rate endpoint; empty uses the
	// default public API.
	ExchangeAPIURL string

	// LogLevel is the minimum slog level (debug, info, warn, error).
	LogLevel string

	// AllowedOrigins is the CORS allow-list for browser clients.
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "data/divvyup.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ExchangeAPIURL: os.Getenv("EXCHANGE_API_URL"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "http://localhost:5173")},
	}

	ttl := getEnv("TOKEN_TTL", "24h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
	}
	cfg.TokenTTL = d

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
