package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Tax API
	TaxAPIURL   string
	HTTPTimeout time.Duration

	// Resilience
	MaxConcurrency int

	// Calculation cache. A zero TTL disables it; RedisAddr selects Redis
	// over the in-process cache.
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Page regions are remembered this long after their last calculation
	// for latest-wins rendering. Non-positive values use the default.
	RegionTTL time.Duration

	// Form layout; empty uses the built-in layout.
	LayoutPath string

	// Observability
	TracingEnabled bool
	OTLPEndpoint   string
}

const defaultRegionTTL = 30 * time.Minute

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	cfg := &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		TaxAPIURL:   getEnv("TAX_API_URL", "http://localhost:8000"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		CacheTTL:      getEnvDuration("CACHE_TTL", 0),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RegionTTL: getEnvDuration("REGION_TTL", defaultRegionTTL),

		LayoutPath: getEnv("LAYOUT_PATH", ""),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
	if cfg.RegionTTL <= 0 {
		cfg.RegionTTL = defaultRegionTTL
	}
	return cfg
}

// TracingEndpoint is the OTLP endpoint to export to, or "" when tracing is off.
func (c *Config) TracingEndpoint() string {
	if !c.TracingEnabled {
		return ""
	}
	return c.OTLPEndpoint
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
