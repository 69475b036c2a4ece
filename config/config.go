package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	WordPress WordPressConfig
	Batch     BatchConfig
	Webhook   WebhookConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 10

	// Burst is the maximum burst size per API key.
	Burst int // default: 20
}

// CacheConfig controls the audit response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached reports.
	MaxEntries int // default: 1000
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// WordPressConfig controls content fetching from WordPress sites.
type WordPressConfig struct {
	// Timeout is the deadline for one REST API fetch.
	Timeout time.Duration // default: 15s

	// UserAgent is sent on outbound fetches.
	UserAgent string
}

// BatchConfig controls batch audit processing.
type BatchConfig struct {
	// MaxConcurrency is the number of audits processed in parallel per job.
	MaxConcurrency int // default: 4

	// MaxItems is the maximum number of items per batch request.
	MaxItems int // default: 100

	// JobTTL is how long finished jobs stay queryable.
	JobTTL time.Duration // default: 1h
}

// WebhookConfig controls batch completion callbacks.
type WebhookConfig struct {
	// Secret signs outbound webhook payloads. Empty disables signing.
	Secret string

	// Timeout is the deadline for one webhook delivery attempt.
	Timeout time.Duration // default: 10s
}

// Load reads configuration from the environment with sane defaults. A .env
// file in the working directory is merged in first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: envOr("PAGELENS_HOST", "0.0.0.0"),
			Port: envIntOr("PAGELENS_PORT", 8080),
			Mode: envOr("PAGELENS_MODE", "release"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PAGELENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PAGELENS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PAGELENS_RATE_RPS", 10.0),
			Burst:             envIntOr("PAGELENS_RATE_BURST", 20),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PAGELENS_CACHE_MAX_ENTRIES", 1000),
		},
		Log: LogConfig{
			Level:  envOr("PAGELENS_LOG_LEVEL", "info"),
			Format: envOr("PAGELENS_LOG_FORMAT", "json"),
		},
		WordPress: WordPressConfig{
			Timeout:   envDurationOr("PAGELENS_WP_TIMEOUT", 15*time.Second),
			UserAgent: envOr("PAGELENS_WP_USER_AGENT", "PageLens/1.0"),
		},
		Batch: BatchConfig{
			MaxConcurrency: envIntOr("PAGELENS_BATCH_CONCURRENCY", 4),
			MaxItems:       envIntOr("PAGELENS_BATCH_MAX_ITEMS", 100),
			JobTTL:         envDurationOr("PAGELENS_BATCH_JOB_TTL", time.Hour),
		},
		Webhook: WebhookConfig{
			Secret:  os.Getenv("PAGELENS_WEBHOOK_SECRET"),
			Timeout: envDurationOr("PAGELENS_WEBHOOK_TIMEOUT", 10*time.Second),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
