package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Boston Food Establishment Inspections dataset on data.boston.gov (CKAN).
const (
	defaultAPIEndpoint = "https://data.boston.gov/api/3/action/datastore_search"
	defaultResourceID  = "4582bec6-2b4f-4f9e-bc55-cbaa73117f4c"
)

// Config holds all configuration for the application
type Config struct {
	DatabasePath string // SQLite database file
	RedisURL     string // asynq worker broker
	APIEndpoint  string // CKAN datastore_search endpoint
	ResourceID   string // CKAN resource identifier
	APIToken     string // optional, raises the API rate limit
	RawDataDir   string // where CSV snapshots are written
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly,
	// so a missing file is not an error.
	_ = godotenv.Load()

	return &Config{
		DatabasePath: getEnv("DATABASE_PATH", "boston.db"),
		RedisURL:     getEnv("REDIS_URL", ""),
		APIEndpoint:  getEnv("BOSTON_API_ENDPOINT", defaultAPIEndpoint),
		ResourceID:   getEnv("BOSTON_RESOURCE_ID", defaultResourceID),
		APIToken:     getEnv("BOSTON_API_TOKEN", ""),
		RawDataDir:   getEnv("RAW_DATA_DIR", "raw"),
	}, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
