package api

import (
	"os"
	"strconv"
)

// Config holds all configuration for the backend API client.
type Config struct {
	BaseURL       string
	TimeoutMs     int // per-call timeout for fetches
	SaveTimeoutMs int // longer timeout for batch saves
	LogCalls      bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:8080/api",
		TimeoutMs:     8000,
		SaveTimeoutMs: 20000,
		LogCalls:      false,
	}
}

// LoadConfig reads client configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("OBRA_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("OBRA_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("OBRA_API_SAVE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SaveTimeoutMs = n
		}
	}
	if v := os.Getenv("OBRA_API_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
