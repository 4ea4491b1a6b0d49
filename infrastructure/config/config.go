package config

import (
	"fmt"
	"os"
	"strconv"

	"clusterview-backend/domain/core/valueobjects"
)

// FetchConfig holds configuration for remote document fetching
type FetchConfig struct {
	// TimeoutSeconds bounds a single document fetch
	TimeoutSeconds int
	// BreakerMaxRequests allowed through while half-open
	BreakerMaxRequests uint32
	// BreakerIntervalSeconds between failure-count resets
	BreakerIntervalSeconds int
	// BreakerTimeoutSeconds before a tripped breaker goes half-open
	BreakerTimeoutSeconds int
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Input document
	DocumentPath   string // local file, takes precedence when set
	DocumentURL    string // remote fetch, guarded by a circuit breaker
	DocumentFormat string // "json" or "triples"
	WatchDocument  bool   // reload DocumentPath on change

	// Visualization defaults
	DefaultThreshold float64
	DefaultView      string

	// Snapshot export
	SnapshotDir string

	// Logging
	LogLevel string

	// Feature flags
	EnableTracing   bool
	TracingEndpoint string
	EnableCORS      bool

	// Remote fetch configuration
	Fetch FetchConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		DocumentPath:   getEnv("DOCUMENT_PATH", ""),
		DocumentURL:    getEnv("DOCUMENT_URL", ""),
		DocumentFormat: getEnv("DOCUMENT_FORMAT", "json"),
		WatchDocument:  getEnvBool("WATCH_DOCUMENT", true),

		DefaultThreshold: getEnvFloat("DEFAULT_THRESHOLD", 0.2),
		DefaultView:      getEnv("DEFAULT_VIEW", "pie"),

		SnapshotDir: getEnv("SNAPSHOT_DIR", os.TempDir()),

		LogLevel:        getEnv("LOG_LEVEL", "info"),
		EnableTracing:   getEnvBool("ENABLE_TRACING", false),
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
		EnableCORS:      getEnvBool("ENABLE_CORS", true),

		Fetch: FetchConfig{
			TimeoutSeconds:         getEnvInt("FETCH_TIMEOUT_SECONDS", 10),
			BreakerMaxRequests:     uint32(getEnvInt("FETCH_BREAKER_MAX_REQUESTS", 3)),
			BreakerIntervalSeconds: getEnvInt("FETCH_BREAKER_INTERVAL_SECONDS", 30),
			BreakerTimeoutSeconds:  getEnvInt("FETCH_BREAKER_TIMEOUT_SECONDS", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DocumentFormat != "json" && c.DocumentFormat != "triples" {
		return fmt.Errorf("DOCUMENT_FORMAT must be json or triples, got %q", c.DocumentFormat)
	}
	if c.DefaultThreshold < valueobjects.MinThreshold || c.DefaultThreshold > valueobjects.MaxThreshold {
		return fmt.Errorf("DEFAULT_THRESHOLD %v outside [%v, %v]",
			c.DefaultThreshold, valueobjects.MinThreshold, valueobjects.MaxThreshold)
	}
	if !valueobjects.ViewMode(c.DefaultView).IsValid() {
		return fmt.Errorf("DEFAULT_VIEW must be pie, bubble, or force, got %q", c.DefaultView)
	}
	if c.Environment == "production" && c.DocumentPath == "" && c.DocumentURL == "" {
		return fmt.Errorf("DOCUMENT_PATH or DOCUMENT_URL is required in production")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
