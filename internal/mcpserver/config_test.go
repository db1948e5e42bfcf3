package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOASGENEnv clears all OASGEN_* env vars to isolate tests from the ambient environment.
func clearOASGENEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASGEN_CACHE_ENABLED", "OASGEN_CACHE_MAX_SIZE", "OASGEN_CACHE_TTL",
		"OASGEN_CACHE_SWEEP_INTERVAL", "OASGEN_RATE_LIMIT", "OASGEN_RATE_BURST",
		"OASGEN_CONCURRENCY", "OASGEN_MAX_INLINE_SIZE", "OASGEN_MAX_LIMIT",
		"OASGEN_INSPECT_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASGENEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.InDelta(t, 10.0, c.RateLimit, 0)
	assert.Equal(t, 20, c.RateBurst)
	assert.Equal(t, 1, c.Concurrency)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, 100, c.InspectLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASGENEnv(t)
	t.Setenv("OASGEN_CACHE_ENABLED", "false")
	t.Setenv("OASGEN_CACHE_MAX_SIZE", "50")
	t.Setenv("OASGEN_CACHE_TTL", "30m")
	t.Setenv("OASGEN_CACHE_SWEEP_INTERVAL", "5s")
	t.Setenv("OASGEN_RATE_LIMIT", "0")
	t.Setenv("OASGEN_RATE_BURST", "3")
	t.Setenv("OASGEN_CONCURRENCY", "8")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheTTL)
	assert.Equal(t, 5*time.Second, c.CacheSweepInterval)
	assert.Zero(t, c.RateLimit)
	assert.Equal(t, 3, c.RateBurst)
	assert.Equal(t, 8, c.Concurrency)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearOASGENEnv(t)
	t.Setenv("OASGEN_CACHE_ENABLED", "maybe")
	t.Setenv("OASGEN_CACHE_MAX_SIZE", "-1")
	t.Setenv("OASGEN_CACHE_TTL", "soon")
	t.Setenv("OASGEN_RATE_LIMIT", "-5")
	t.Setenv("OASGEN_CONCURRENCY", "zero")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.InDelta(t, 10.0, c.RateLimit, 0)
	assert.Equal(t, 1, c.Concurrency)
}
