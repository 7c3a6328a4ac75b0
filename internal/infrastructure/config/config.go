// Package config loads editor configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the flow editor.
type Config struct {
	Service ServiceConfig
	Drafts  DraftConfig
	App     AppConfig
}

// ServiceConfig points the persistence/test bridge at the external flow
// service.
type ServiceConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
}

// DraftConfig selects the local draft store.
type DraftConfig struct {
	Backend     string // memory, sqlite, postgres
	SQLitePath  string
	PostgresDSN string
}

// AppConfig holds process-level settings.
type AppConfig struct {
	LogLevel   string
	ServerAddr string
}

// Load reads configuration from environment variables, preloading a .env
// file when present.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Service: ServiceConfig{
			BaseURL:        getEnvWithDefault("FLOW_SERVICE_URL", "http://localhost:8000/api"),
			APIKey:         getEnvWithDefault("FLOW_SERVICE_API_KEY", ""),
			RequestTimeout: getEnvAsDuration("FLOW_SERVICE_TIMEOUT", 30*time.Second),
		},
		Drafts: DraftConfig{
			Backend:     getEnvWithDefault("DRAFT_BACKEND", "memory"),
			SQLitePath:  getEnvWithDefault("DRAFT_SQLITE_PATH", "floweditor-drafts.db"),
			PostgresDSN: getEnvWithDefault("DRAFT_POSTGRES_DSN", ""),
		},
		App: AppConfig{
			LogLevel:   getEnvWithDefault("LOG_LEVEL", "info"),
			ServerAddr: getEnvWithDefault("FLOWEDITOR_ADDR", ":8080"),
		},
	}
	return cfg, nil
}

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
