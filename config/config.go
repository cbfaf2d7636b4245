// Package config loads runtime settings from the environment. Command-line
// flags override these values.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/elriot/part-time-pay-calculator/autosave"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
}

// ServerConfig holds HTTP-related configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// StorageConfig holds persistence-related configuration
type StorageConfig struct {
	DBPath        string
	SnapshotKey   string
	AutosaveDelay time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("PAYCALC_PORT", 8080),
			AllowedOrigins: getEnvAsList("PAYCALC_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		},
		Storage: StorageConfig{
			DBPath:        getEnv("PAYCALC_DB", "paycalc.db"),
			SnapshotKey:   getEnv("PAYCALC_SNAPSHOT_KEY", "ptpc_v1"),
			AutosaveDelay: getEnvAsDuration("PAYCALC_AUTOSAVE_DELAY", autosave.DefaultDelay),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
