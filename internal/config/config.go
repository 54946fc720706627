// ===============================
// internal/config/config.go - Application Configuration
// ===============================

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// StorageConfig holds S3-compatible object storage configuration
type StorageConfig struct {
	Endpoint   string
	Region     string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

// AuthConfig holds JWT token configuration
type AuthConfig struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	Environment string
	Port        string

	// Database configuration
	DatabaseURL string

	// Object storage configuration
	Storage StorageConfig

	// Token configuration
	Auth AuthConfig

	// CORS configuration
	AllowedOrigins []string

	// Cookies are marked Secure outside debug mode
	SecureCookies bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Environment: getEnv("GIN_MODE", "debug"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Storage: StorageConfig{
			Endpoint:   getEnv("STORAGE_ENDPOINT", ""),
			Region:     getEnv("STORAGE_REGION", "auto"),
			AccessKey:  getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:  getEnv("STORAGE_SECRET_KEY", ""),
			BucketName: getEnv("STORAGE_BUCKET", "videohub-media"),
			PublicURL:  getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Auth: AuthConfig{
			AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
			RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
			AccessTokenTTL:     getDurationEnv("ACCESS_TOKEN_TTL_MINUTES", 15) * time.Minute,
			RefreshTokenTTL:    getDurationEnv("REFRESH_TOKEN_TTL_HOURS", 240) * time.Hour,
		},
	}

	// Default public URL to the bucket endpoint when not set explicitly
	if config.Storage.PublicURL == "" && config.Storage.Endpoint != "" {
		config.Storage.PublicURL = fmt.Sprintf("%s/%s",
			strings.TrimRight(config.Storage.Endpoint, "/"), config.Storage.BucketName)
	}

	// Parse allowed origins
	originsStr := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	config.AllowedOrigins = strings.Split(originsStr, ",")
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	config.SecureCookies = config.Environment == "release"

	// Validate required configuration
	if config.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	if config.Storage.Endpoint == "" || config.Storage.AccessKey == "" || config.Storage.SecretKey == "" {
		return nil, ErrMissingStorageConfig
	}

	if config.Auth.AccessTokenSecret == "" || config.Auth.RefreshTokenSecret == "" {
		return nil, ErrMissingTokenSecrets
	}

	return config, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv parses an integer environment variable used as a duration multiplier
func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultValue)
}

// Configuration errors
var (
	ErrMissingDatabaseURL   = ConfigError{Message: "DATABASE_URL environment variable is required"}
	ErrMissingStorageConfig = ConfigError{Message: "storage configuration (STORAGE_ENDPOINT, STORAGE_ACCESS_KEY, STORAGE_SECRET_KEY) is required"}
	ErrMissingTokenSecrets  = ConfigError{Message: "ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required"}
)

// ConfigError represents a configuration error
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
