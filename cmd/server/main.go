// Command server starts the matching engine HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	memcache "github.com/fairyhunter13/ai-match-engine/internal/adapter/cache/memory"
	rediscache "github.com/fairyhunter13/ai-match-engine/internal/adapter/cache/redis"
	"github.com/fairyhunter13/ai-match-engine/internal/adapter/events/redpanda"
	"github.com/fairyhunter13/ai-match-engine/internal/adapter/geo"
	httpserver "github.com/fairyhunter13/ai-match-engine/internal/adapter/httpserver"
	"github.com/fairyhunter13/ai-match-engine/internal/adapter/observability"
	"github.com/fairyhunter13/ai-match-engine/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/ai-match-engine/internal/app"
	"github.com/fairyhunter13/ai-match-engine/internal/config"
	"github.com/fairyhunter13/ai-match-engine/internal/domain"
	"github.com/fairyhunter13/ai-match-engine/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, match, and cache instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()

	// Result cache backend
	var (
		cache     domain.MatchCache
		cachePing app.Pinger
	)
	switch cfg.CacheBackend {
	case "redis":
		rc, err := rediscache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			slog.Error("redis cache connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		cache = rc
		cachePing = rc
		slog.Info("redis result cache configured", slog.Duration("ttl", cfg.CacheTTL))
	default:
		cache = memcache.New(cfg.CacheTTL, cfg.CacheCapacity)
		slog.Info("in-memory result cache configured",
			slog.Duration("ttl", cfg.CacheTTL),
			slog.Int("capacity", cfg.CacheCapacity))
	}

	// Optional travel-time collaborator
	var geoSvc domain.GeoService
	if cfg.GeoServiceURL != "" {
		geoSvc = geo.New(cfg.GeoServiceURL, cfg.GeoTimeout, cfg.GeoMaxRetries)
		slog.Info("geo service configured", slog.String("url", cfg.GeoServiceURL))
	}

	matcher := usecase.NewMatcherService(cache, geoSvc)
	matcher.DefaultDeadline = cfg.MatchDeadline

	// Optional match history repository
	var pool app.Pinger
	if cfg.HistoryEnabled() {
		p, err := postgres.NewPool(ctx, cfg.DBURL)
		if err != nil {
			slog.Error("db connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer p.Close()
		if err := postgres.EnsureSchema(ctx, p); err != nil {
			slog.Error("db schema failed", slog.Any("error", err))
			os.Exit(1)
		}
		matcher.History = postgres.NewHistoryRepo(p)
		pool = p
		slog.Info("match history repository configured")
	}

	// Optional match event publisher
	var broker app.Pinger
	if cfg.EventsEnabled() {
		producer, err := redpanda.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			slog.Error("redpanda producer connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				slog.Error("failed to close event producer", slog.Any("error", err))
			}
		}()
		matcher.Events = producer
		broker = producer
		slog.Info("match event publisher configured")
	}

	cacheCheck, dbCheck, kafkaCheck, geoCheck := app.BuildReadinessChecks(cfg, cachePing, pool, broker)
	srv := httpserver.NewServer(cfg, matcher, cacheCheck, dbCheck, kafkaCheck, geoCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
