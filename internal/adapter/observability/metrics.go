package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	MatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_total",
			Help: "Total number of matching operations by compatibility band and cache outcome",
		},
		[]string{"compatibility", "cached"},
	)
	MatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_duration_seconds",
			Help:    "End-to-end matching duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.15, 0.25, 0.5},
		},
	)
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "match_cache_hits_total",
			Help: "Total number of result cache hits",
		},
	)

	// Match outcome distributions
	FinalScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_final_score",
			Help:    "Distribution of final match scores (normalized fraction [0,1])",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)
	ComponentScoreHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_component_score",
			Help:    "Distribution of per-component scores ([0,1])",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
		[]string{"component"},
	)

	GeoRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geo_requests_total",
			Help: "Total number of geo service calls by outcome",
		},
		[]string{"outcome"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(MatchesTotal)
	prometheus.MustRegister(MatchDuration)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(FinalScoreHistogram)
	prometheus.MustRegister(ComponentScoreHistogram)
	prometheus.MustRegister(GeoRequestsTotal)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			// fallback when route pattern is unavailable
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// ObserveMatch records outcome metrics for one completed matching operation.
func ObserveMatch(compatibility string, cached bool, finalScore, durationMs float64, componentScores map[string]float64) {
	MatchesTotal.WithLabelValues(compatibility, strconv.FormatBool(cached)).Inc()
	MatchDuration.Observe(durationMs / 1000)
	if cached {
		CacheHitsTotal.Inc()
		return
	}
	if finalScore >= 0 && finalScore <= 1 {
		FinalScoreHistogram.Observe(finalScore)
	}
	for component, score := range componentScores {
		if score >= 0 && score <= 1 {
			ComponentScoreHistogram.WithLabelValues(component).Observe(score)
		}
	}
}
