package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration. SQLite is the default engine; postgres can be
	// selected for deployments that outgrow a single file.
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional, used for shopping-badge propagation)
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Image search configuration (optional). Without credentials meal
	// creation keeps the submitted image value.
	ImageSearchKey      string
	ImageSearchEngineID string

	// S3 configuration (optional, mirrors looked-up meal images)
	S3Bucket  string
	AWSRegion string
}

// LoadConfig creates a new Config instance from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DATABASE_URL", "dinnerplan.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "dinnerplan"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		ImageSearchKey:      os.Getenv("GOOGLE_KEY"),
		ImageSearchEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),

		S3Bucket:  os.Getenv("S3_BUCKET_NAME"),
		AWSRegion: os.Getenv("AWS_REGION"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ValidateConfig checks the configuration for the selected database driver
func ValidateConfig(cfg *Config) error {
	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER is sqlite")
		}
	case "postgres":
		if cfg.DBUser == "" {
			return fmt.Errorf("DB_USER is required when DB_DRIVER is postgres")
		}
		if cfg.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD is required when DB_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (expected sqlite or postgres)", cfg.DBDriver)
	}

	// The image search credentials come as a pair.
	if (cfg.ImageSearchKey == "") != (cfg.ImageSearchEngineID == "") {
		return fmt.Errorf("GOOGLE_KEY and GOOGLE_SEARCH_ENGINE_ID must be set together")
	}

	return nil
}

// RedisConfigured reports whether any Redis endpoint was provided.
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ImageSearchConfigured reports whether image lookup credentials are set.
func (c *Config) ImageSearchConfigured() bool {
	return c.ImageSearchKey != "" && c.ImageSearchEngineID != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
