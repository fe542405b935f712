package usecase

import (
	"context"
	"log/slog"
	"time"
)

// StatsSnapshot is the administrative view of the engine's counters.
type StatsSnapshot struct {
	TotalMatches        int64     `json:"total_matches"`
	CacheHits           int64     `json:"cache_hits"`
	CacheHitRatePercent float64   `json:"cache_hit_rate_percent"`
	AvgProcessingTimeMs float64   `json:"avg_processing_time_ms"`
	CacheSize           int       `json:"cache_size"`
	UptimeHours         float64   `json:"uptime_hours"`
	LastReset           time.Time `json:"last_reset"`
}

// Stats reports the engine counters. Counters are updated atomically by
// concurrent matches, so the snapshot is approximate but internally sane.
func (s *MatcherService) Stats(ctx context.Context) StatsSnapshot {
	total := s.totalMatches.Load()
	hits := s.cacheHits.Load()

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	var avgMs float64
	if total > 0 {
		avgMs = float64(s.totalProcUs.Load()) / float64(total) / 1000.0
	}

	size := 0
	if cs, err := s.Cache.Stats(ctx); err != nil {
		slog.Warn("cache stats failed", slog.Any("error", err))
	} else {
		size = cs.Size
	}

	return StatsSnapshot{
		TotalMatches:        total,
		CacheHits:           hits,
		CacheHitRatePercent: hitRate,
		AvgProcessingTimeMs: avgMs,
		CacheSize:           size,
		UptimeHours:         time.Since(s.startedAt).Hours(),
		LastReset:           time.Unix(0, s.lastReset.Load()).UTC(),
	}
}

// ClearCache empties the result cache.
func (s *MatcherService) ClearCache(ctx context.Context) error {
	return s.Cache.Clear(ctx)
}

// ResetStats zeroes the counters; the cache is left untouched.
func (s *MatcherService) ResetStats() {
	s.totalMatches.Store(0)
	s.cacheHits.Store(0)
	s.totalProcUs.Store(0)
	s.lastReset.Store(time.Now().UTC().UnixNano())
}
