// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig
	Auth    AuthConfig
	Demo    DemoConfig
	Display DisplayConfig
}

// APIConfig holds record store API configuration.
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	Environment    string
}

// AuthConfig holds bearer token configuration.
// Token acquisition belongs to the identity provider; the client only
// carries the token and inspects its expiry locally.
type AuthConfig struct {
	Token           string
	ExpiryWarnAhead time.Duration
}

// DemoConfig holds the embedded demo record store configuration.
type DemoConfig struct {
	Enabled bool
	Seed    bool
}

// DisplayConfig holds presentation configuration.
type DisplayConfig struct {
	// PositiveIsExpense selects the amount sign convention for the
	// transactions screen. Provider-synced data reports expenses as
	// positive amounts; manual-entry data uses negative expenses.
	PositiveIsExpense bool
	RecentLimit       int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        getEnv("FINPILOT_API_URL", "http://localhost:8080/api/v1"),
			RequestTimeout: getEnvAsDuration("FINPILOT_API_TIMEOUT", 15*time.Second),
			Environment:    getEnv("ENV", "development"),
		},
		Auth: AuthConfig{
			Token:           getEnv("FINPILOT_API_TOKEN", ""),
			ExpiryWarnAhead: getEnvAsDuration("FINPILOT_TOKEN_WARN_AHEAD", 5*time.Minute),
		},
		Demo: DemoConfig{
			Enabled: getEnvAsBool("FINPILOT_DEMO", false),
			Seed:    getEnvAsBool("FINPILOT_DEMO_SEED", true),
		},
		Display: DisplayConfig{
			PositiveIsExpense: getEnvAsBool("FINPILOT_POSITIVE_IS_EXPENSE", true),
			RecentLimit:       getEnvAsInt("FINPILOT_RECENT_LIMIT", 5),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
