package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-match-engine/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Zero(t, cfg.CacheCapacity)
	assert.Equal(t, 150*time.Millisecond, cfg.MatchDeadline)
	assert.Equal(t, 100*time.Millisecond, cfg.GeoTimeout)
	assert.Equal(t, uint64(2), cfg.GeoMaxRetries)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.AdminEnabled())
	assert.False(t, cfg.HistoryEnabled())
	assert.False(t, cfg.EventsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("MATCH_DEADLINE", "250ms")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("DB_URL", "postgres://localhost:5432/matches")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.MatchDeadline)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.HistoryEnabled())
	assert.True(t, cfg.EventsEnabled())
}

func TestLoad_RejectsUnknownCacheBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cache backend")
}

func TestAdminEnabled(t *testing.T) {
	t.Parallel()
	assert.False(t, config.Config{AdminUsername: "admin"}.AdminEnabled())
	assert.False(t, config.Config{AdminPassword: "p"}.AdminEnabled())
	assert.True(t, config.Config{AdminUsername: "admin", AdminPassword: "p"}.AdminEnabled())
}
