package config

import (
	"os"
	"strconv"
)

// Config holds the application settings
type Config struct {
	Store StoreConfig
	Log   LogConfig
	List  ListConfig
}

// StoreConfig controls where the persisted snapshots live
type StoreConfig struct {
	DataDirectory string
}

// LogConfig controls logging output
type LogConfig struct {
	Level     string
	Directory string
}

// ListConfig controls the list view defaults
type ListConfig struct {
	PageSize int
}

// LoadConfig reads settings from the environment with sensible defaults
func LoadConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DataDirectory: getEnv("MEMO_DATA_DIR", "data"),
		},
		Log: LogConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			Directory: getEnv("LOG_DIRECTORY", "logs"),
		},
		List: ListConfig{
			PageSize: getIntEnv("MEMO_PAGE_SIZE", 10),
		},
	}
}

// getEnv reads an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv reads an environment variable as an int
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
