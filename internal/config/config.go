// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// Result cache. Backend is memory or redis; TTL bounds entry
	// freshness; capacity (memory backend only) bounds entry count,
	// zero meaning unbounded.
	CacheBackend  string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"3600s"`
	CacheCapacity int           `env:"CACHE_CAPACITY" envDefault:"0"`
	RedisURL      string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// MatchDeadline is the per-match budget applied when a request carries
	// no deadline_ms; an explicit deadline_ms replaces it, bounded by the
	// transport validator.
	MatchDeadline time.Duration `env:"MATCH_DEADLINE" envDefault:"150ms"`

	// GeoServiceURL enables the travel-time collaborator; empty keeps the
	// location scorer in heuristic mode.
	GeoServiceURL string        `env:"GEO_SERVICE_URL"`
	GeoTimeout    time.Duration `env:"GEO_TIMEOUT" envDefault:"100ms"`
	GeoMaxRetries uint64        `env:"GEO_MAX_RETRIES" envDefault:"2"`

	// DBURL enables the match history repository when set.
	DBURL string `env:"DB_URL"`
	// KafkaBrokers enables the match event publisher when set.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"ai-match-engine"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"120"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	switch cfg.CacheBackend {
	case "memory", "redis":
	default:
		return Config{}, fmt.Errorf("op=config.Load: unsupported cache backend %q", cfg.CacheBackend)
	}
	return cfg, nil
}

// AdminEnabled returns true if admin endpoints should require auth.
func (c Config) AdminEnabled() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// HistoryEnabled reports whether the match history repository is configured.
func (c Config) HistoryEnabled() bool { return c.DBURL != "" }

// EventsEnabled reports whether the match event publisher is configured.
func (c Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }
