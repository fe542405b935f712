// Package memory provides the in-process TTL result cache.
package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

type entry struct {
	resp       domain.MatchingResponse
	insertedAt time.Time
}

// Cache is a mutex-guarded map with TTL-based lazy expiry and optional
// bounded capacity with FIFO eviction. Safe for concurrent use; concurrent
// writers for the same key race and the last writer wins.
type Cache struct {
	ttl      time.Duration
	capacity int

	mu  sync.RWMutex
	m   map[string]entry
	ord []string

	hits    atomic.Int64
	lookups atomic.Int64

	// now is swappable for expiry tests.
	now func() time.Time
}

// New builds a cache with the given TTL and capacity. Capacity <= 0 means
// unbounded.
func New(ttl time.Duration, capacity int) *Cache {
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		m:        make(map[string]entry),
		now:      time.Now,
	}
}

// Get implements domain.MatchCache. Expired entries are evicted lazily on
// lookup.
func (c *Cache) Get(_ context.Context, key string) (domain.MatchingResponse, bool, error) {
	c.lookups.Add(1)
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return domain.MatchingResponse{}, false, nil
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check: a writer may have refreshed the entry meanwhile.
		if cur, still := c.m[key]; still && c.now().Sub(cur.insertedAt) >= c.ttl {
			delete(c.m, key)
			c.dropFromOrder(key)
		}
		c.mu.Unlock()
		return domain.MatchingResponse{}, false, nil
	}
	c.hits.Add(1)
	return e.resp, true, nil
}

// Set implements domain.MatchCache.
func (c *Cache) Set(_ context.Context, key string, resp domain.MatchingResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.m[key]; !exists {
		if c.capacity > 0 && len(c.ord) >= c.capacity {
			old := c.ord[0]
			c.ord = c.ord[1:]
			delete(c.m, old)
		}
		c.ord = append(c.ord, key)
	}
	c.m[key] = entry{resp: resp, insertedAt: c.now()}
	return nil
}

// Clear implements domain.MatchCache.
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]entry)
	c.ord = nil
	return nil
}

// Stats implements domain.MatchCache.
func (c *Cache) Stats(_ context.Context) (domain.CacheStats, error) {
	c.mu.RLock()
	size := len(c.m)
	c.mu.RUnlock()
	return domain.CacheStats{
		Size:         size,
		Hits:         c.hits.Load(),
		TotalLookups: c.lookups.Load(),
	}, nil
}

// SetNow overrides the clock; tests only.
func (c *Cache) SetNow(now func() time.Time) { c.now = now }

func (c *Cache) dropFromOrder(key string) {
	for i, k := range c.ord {
		if k == key {
			c.ord = append(c.ord[:i], c.ord[i+1:]...)
			return
		}
	}
}
