// Package redis provides the Redis-backed result cache. Semantics mirror
// the in-memory cache: TTL expiry (delegated to Redis), last writer wins,
// stats counters kept in-process.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

const keyPrefix = "matchcache:"

// Cache stores serialized responses under a dedicated key prefix so Clear
// only touches its own keys.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration

	hits    atomic.Int64
	lookups atomic.Int64
}

// New builds a cache from a Redis URL (redis://host:port/db).
func New(url string, ttl time.Duration) (*Cache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("op=rediscache.new: %w", err)
	}
	return &Cache{client: goredis.NewClient(opts), ttl: ttl}, nil
}

// NewWithClient wraps an existing client; used by tests with miniredis.
func NewWithClient(client *goredis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get implements domain.MatchCache.
func (c *Cache) Get(ctx context.Context, key string) (domain.MatchingResponse, bool, error) {
	c.lookups.Add(1)
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.MatchingResponse{}, false, nil
	}
	if err != nil {
		return domain.MatchingResponse{}, false, fmt.Errorf("op=rediscache.get: %w", err)
	}
	var resp domain.MatchingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		return domain.MatchingResponse{}, false, nil
	}
	c.hits.Add(1)
	return resp, true, nil
}

// Set implements domain.MatchCache.
func (c *Cache) Set(ctx context.Context, key string, resp domain.MatchingResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("op=rediscache.set: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("op=rediscache.set: %w", err)
	}
	return nil
}

// Clear implements domain.MatchCache. Only this cache's keys are removed.
func (c *Cache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 256).Result()
		if err != nil {
			return fmt.Errorf("op=rediscache.clear: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("op=rediscache.clear: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Stats implements domain.MatchCache. Size counts live keys via SCAN.
func (c *Cache) Stats(ctx context.Context) (domain.CacheStats, error) {
	size := 0
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 256).Result()
		if err != nil {
			return domain.CacheStats{}, fmt.Errorf("op=rediscache.stats: %w", err)
		}
		size += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return domain.CacheStats{
		Size:         size,
		Hits:         c.hits.Load(),
		TotalLookups: c.lookups.Load(),
	}, nil
}

// Ping verifies connectivity; used by readiness checks.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
