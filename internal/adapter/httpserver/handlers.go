package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fairyhunter13/ai-match-engine/internal/adapter/observability"
	"github.com/fairyhunter13/ai-match-engine/internal/config"
	"github.com/fairyhunter13/ai-match-engine/internal/domain"
	"github.com/fairyhunter13/ai-match-engine/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg     config.Config
	Matcher *usecase.MatcherService

	// Readiness checks. A nil check means the dependency is not configured
	// and is skipped.
	CacheCheck func(ctx context.Context) error
	DBCheck    func(ctx context.Context) error
	KafkaCheck func(ctx context.Context) error
	GeoCheck   func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, matcher *usecase.MatcherService, cacheCheck, dbCheck, kafkaCheck, geoCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Matcher: matcher, CacheCheck: cacheCheck, DBCheck: dbCheck, KafkaCheck: kafkaCheck, GeoCheck: geoCheck}
}

// matchRequest is the wire shape of POST /v1/match. Profiles are pointers so
// that a missing object is distinguishable from an empty one.
type matchRequest struct {
	Candidate     *domain.CandidateProfile `json:"candidate" validate:"required"`
	Company       *domain.CompanyProfile   `json:"company" validate:"required"`
	ForceAdaptive bool                     `json:"force_adaptive"`
	DeadlineMs    int                      `json:"deadline_ms" validate:"gte=0,lte=5000"`
}

// MatchHandler handles POST /v1/match.
//
// Malformed JSON and out-of-vocabulary enum values are request errors (400).
// Profiles that decode but fail business validation still produce a 200 with
// a zero-score response; that contract belongs to the matcher, not the
// transport.
func (s *Server) MatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
			writeError(w, r, fmt.Errorf("%w: content-type must be application/json", domain.ErrInvalidArgument), nil)
			return
		}

		var req matchRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		if err := dec.Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if details := validateStruct(req); details != nil {
			writeError(w, r, fmt.Errorf("%w: invalid match request", domain.ErrInvalidArgument), details)
			return
		}

		resp := s.Matcher.Match(r.Context(), domain.MatchingRequest{
			Candidate:     *req.Candidate,
			Company:       *req.Company,
			ForceAdaptive: req.ForceAdaptive,
			DeadlineMs:    req.DeadlineMs,
		})

		observability.ObserveMatch(string(resp.Compatibility), resp.Cached, resp.FinalScore, resp.ProcessingTimeMs, map[string]float64{
			"semantic":   resp.Components.Semantic.Score,
			"salary":     resp.Components.Salary.Score,
			"experience": resp.Components.Experience.Score,
			"location":   resp.Components.Location.Score,
		})
		LoggerFrom(r).Info("match computed",
			"final_score", resp.FinalScore,
			"compatibility", resp.Compatibility,
			"cached", resp.Cached,
			"processing_time_ms", resp.ProcessingTimeMs)

		writeJSON(w, http.StatusOK, resp)
	}
}

// StatsHandler handles GET /v1/admin/stats.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Matcher.Stats(r.Context()))
	}
}

// CacheClearHandler handles POST /v1/admin/cache/clear.
func (s *Server) CacheClearHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Matcher.ClearCache(r.Context()); err != nil {
			writeError(w, r, fmt.Errorf("%w: clear cache: %v", domain.ErrUnavailable, err), nil)
			return
		}
		LoggerFrom(r).Info("result cache cleared")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// StatsResetHandler handles POST /v1/admin/stats/reset.
func (s *Server) StatsResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.Matcher.ResetStats()
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HealthzHandler reports process liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler reports readiness of the configured dependencies. Optional
// dependencies that were never wired are reported as "skipped".
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		name string
		fn   func(context.Context) error
	}
	return func(w http.ResponseWriter, r *http.Request) {
		checks := []check{
			{"cache", s.CacheCheck},
			{"db", s.DBCheck},
			{"kafka", s.KafkaCheck},
			{"geo", s.GeoCheck},
		}
		statuses := make(map[string]string, len(checks))
		ready := true
		for _, c := range checks {
			if c.fn == nil {
				statuses[c.name] = "skipped"
				continue
			}
			if err := c.fn(r.Context()); err != nil {
				statuses[c.name] = err.Error()
				ready = false
				continue
			}
			statuses[c.name] = "ok"
		}
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"ready": ready, "checks": statuses})
	}
}
