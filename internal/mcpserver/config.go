package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Manifest cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Tool call throttling. RateLimit is calls per second; zero disables it.
	RateLimit float64
	RateBurst int

	// Concurrency is the builder concurrency used by the generate tool.
	Concurrency int

	MaxInlineSize int64
	MaxLimit      int
	InspectLimit  int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASGEN_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASGEN_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASGEN_CACHE_MAX_SIZE", 10),
		CacheTTL:           envDuration("OASGEN_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASGEN_CACHE_SWEEP_INTERVAL", 60*time.Second),
		RateLimit:          envRate("OASGEN_RATE_LIMIT", 10),
		RateBurst:          envInt("OASGEN_RATE_BURST", 20),
		Concurrency:        envInt("OASGEN_CONCURRENCY", 1),
		MaxInlineSize:      int64(envInt("OASGEN_MAX_INLINE_SIZE", 10*1024*1024)),
		MaxLimit:           envInt("OASGEN_MAX_LIMIT", 1000),
		InspectLimit:       envInt("OASGEN_INSPECT_LIMIT", 100),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// envRate accepts any non-negative number; 0 turns throttling off.
func envRate(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		slog.Warn("invalid rate env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
