package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store drivers.
const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, "*" for any

	// Store
	StoreDriver  string // "csv" or "postgres"
	CSVPath      string
	DatabaseURL  string
	RedisURL     string // Rate limiter storage; in-memory when empty
	RateLimitMax int    // Requests per minute per IP

	// Similarity gate
	SimilarityThreshold float64
	SimilarityMetric    string

	// Events
	KafkaBrokers []string
	KafkaTopic   string

	// OIDC bearer verification for moderator routes
	OIDCIssuer   string
	OIDCClientID string

	// Logging
	LogLevel string

	// Catalog file
	ConfigFile string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:                 getEnv("ENV", "development"),
		ServerAddr:          getEnv("SERVER_ADDR", ":5000"),
		CORSOrigins:         getEnv("CORS_ORIGINS", "*"),
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", DriverCSV)),
		CSVPath:             getEnv("FACTS_CSV_PATH", "facts.csv"),
		DatabaseURL:         getEnv("DATABASE_URL", "postgres://localhost:5432/yorkfacts?sslmode=disable"),
		RedisURL:            getEnv("REDIS_URL", ""),
		RateLimitMax:        getInt("RATE_LIMIT_MAX", 100),
		SimilarityThreshold: getFloat("SIMILARITY_THRESHOLD", 0.65),
		SimilarityMetric:    strings.ToLower(getEnv("SIMILARITY_METRIC", "dice")),
		KafkaBrokers:        splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "trivia_facts"),
		OIDCIssuer:          getEnv("OIDC_ISSUER", ""),
		OIDCClientID:        getEnv("OIDC_CLIENT_ID", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ConfigFile:          getEnv("CONFIG_FILE", "config.yaml"),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverCSV:
		if c.CSVPath == "" {
			return fmt.Errorf("FACTS_CSV_PATH must not be empty")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must not be empty")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverCSV, DriverPostgres, c.StoreDriver)
	}

	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be between 0 and 1, got %v", c.SimilarityThreshold)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}
	if c.OIDCIssuer != "" && c.OIDCClientID == "" {
		return fmt.Errorf("OIDC_CLIENT_ID is required when OIDC_ISSUER is set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// EventsEnabled returns true when Kafka brokers are configured.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// AuthEnabled returns true when moderator routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.OIDCIssuer != ""
}
