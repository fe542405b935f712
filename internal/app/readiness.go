package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fairyhunter13/ai-match-engine/internal/config"
)

// Pinger is the minimal interface for a dependency capable of Ping.
type Pinger interface{ Ping(ctx context.Context) error }

// BuildReadinessChecks returns the readiness checks for the configured
// dependencies: cache backend, database, broker, and geo service. A nil
// check signals an unconfigured dependency and is skipped by the probe.
func BuildReadinessChecks(cfg config.Config, cache, pool, broker Pinger) (
	cacheCheck func(ctx context.Context) error,
	dbCheck func(ctx context.Context) error,
	kafkaCheck func(ctx context.Context) error,
	geoCheck func(ctx context.Context) error,
) {
	if cache != nil {
		cacheCheck = cache.Ping
	}
	if pool != nil {
		dbCheck = pool.Ping
	}
	if broker != nil {
		kafkaCheck = broker.Ping
	}
	if cfg.GeoServiceURL != "" {
		geoCheck = func(ctx context.Context) error {
			client := &http.Client{Timeout: 2 * time.Second}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.GeoServiceURL+"/healthz", nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return nil
			}
			return fmt.Errorf("geo status %d", resp.StatusCode)
		}
	}
	return cacheCheck, dbCheck, kafkaCheck, geoCheck
}
