// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ListenAddr string

	// DatabaseURL selects the postgres store; SQLitePath the sqlite store.
	// With neither set, rooms live in process memory only.
	DatabaseURL string
	SQLitePath  string

	// RedisAddr enables the action historian when set.
	RedisAddr     string
	RedisPassword string

	JWTSecret string
	LogLevel  string

	// AllowedOrigins are websocket origin patterns; empty allows same-origin
	// only.
	AllowedOrigins []string
}

// Load reads configuration, first from a .env file if present, then from the
// process environment.
func Load() *Config {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	return &Config{
		ListenAddr:     getenv("LISTEN_ADDR", ":8787"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     os.Getenv("SQLITE_PATH"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getenv("JWT_SECRET", "dev-secret-change-me"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
