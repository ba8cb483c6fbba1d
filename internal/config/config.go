package config

import (
	"os"
	"strconv"
	"time"

	"leadcrm/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Push     PushConfig
	Import   ImportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// PushConfig holds push notification delivery settings
type PushConfig struct {
	Endpoint  string
	ServerKey string
	Timeout   time.Duration
	Enabled   bool
}

// ImportConfig holds bulk import limits
type ImportConfig struct {
	MaxUploadBytes int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	cfg := &Config{
		Database: DatabaseConfig{URL: url},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Push: PushConfig{
			Endpoint:  getEnvOrDefault("PUSH_ENDPOINT", "https://fcm.googleapis.com/fcm/send"),
			ServerKey: os.Getenv("PUSH_SERVER_KEY"),
			Timeout:   getEnvDurationOrDefault("PUSH_TIMEOUT", 5*time.Second),
			Enabled:   getEnvBoolOrDefault("PUSH_ENABLED", false),
		},
		Import: ImportConfig{
			MaxUploadBytes: getEnvInt64OrDefault("IMPORT_MAX_UPLOAD_BYTES", 10<<20),
		},
	}

	if cfg.Push.Enabled && cfg.Push.ServerKey == "" {
		return nil, errors.ConfigInvalid("PUSH_SERVER_KEY is required when push is enabled")
	}

	return cfg, nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
