package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rediscache "github.com/fairyhunter13/ai-match-engine/internal/adapter/cache/redis"
	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*rediscache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return rediscache.NewWithClient(client, ttl), mr
}

func response(score float64) domain.MatchingResponse {
	return domain.MatchingResponse{
		FinalScore:    score,
		Compatibility: domain.CompatibilityFor(score),
		Weighting: domain.Weighting{
			ListeningReason: domain.ReasonSalaryTooLow,
			Urgency:         domain.UrgencyNormal,
		},
	}
}

func TestCache_RoundTrip(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "match_a_b")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "match_a_b", response(0.72)))

	got, ok, err := c.Get(ctx, "match_a_b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.72, got.FinalScore, 1e-9)
	assert.Equal(t, domain.CompatibilityGood, got.Compatibility)
	assert.Equal(t, domain.ReasonSalaryTooLow, got.Weighting.ListeningReason)
}

func TestCache_TTLExpiry(t *testing.T) {
	t.Parallel()
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", response(0.5)))
	mr.FastForward(time.Minute + time.Second)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	t.Parallel()
	c, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, mr.Set("matchcache:broken", "{not json"))
	_, ok, err := c.Get(ctx, "broken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ClearOnlyTouchesOwnKeys(t *testing.T) {
	t.Parallel()
	c, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", response(0.1)))
	require.NoError(t, c.Set(ctx, "b", response(0.2)))
	require.NoError(t, mr.Set("unrelated", "keepme"))

	require.NoError(t, c.Clear(ctx))

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Size)
	assert.True(t, mr.Exists("unrelated"))
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", response(0.5)))
	_, _, _ = c.Get(ctx, "k")
	_, _, _ = c.Get(ctx, "missing")

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.TotalLookups)
}

func TestCache_Ping(t *testing.T) {
	t.Parallel()
	c, mr := newTestCache(t, time.Hour)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
