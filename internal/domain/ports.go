package domain

import (
	"context"
	"time"
)

// Scorer is the contract every scoring component implements.
// Score must be deterministic for identical inputs (modulo timing fields),
// total (failures are reported inside the result, never panicked or
// returned), and bounded in cost.
type Scorer interface {
	Name() string
	Score(ctx context.Context, candidate CandidateProfile, company CompanyProfile) ScoringResult
}

// GeoEstimateRequest asks the geo service how reachable a destination is.
type GeoEstimateRequest struct {
	OriginHint       string                `json:"origin_hint"`
	DestinationHint  string                `json:"destination_hint"`
	MaxDistanceKm    int                   `json:"max_distance_km"`
	TransportModes   []TransportMode       `json:"transport_modes,omitempty"`
	MaxTravelMinutes map[TransportMode]int `json:"max_travel_minutes,omitempty"`
}

// GeoEstimate is the geo service's answer.
type GeoEstimate struct {
	TravelScore float64        `json:"travel_score"`
	Reachable   bool           `json:"reachable"`
	Details     map[string]any `json:"details,omitempty"`
}

// GeoService is the optional external travel-time collaborator used by the
// location scorer. Implementations are stateless from the engine's
// perspective. Absence or failure degrades the scorer to heuristic mode.
type GeoService interface {
	Estimate(ctx context.Context, req GeoEstimateRequest) (GeoEstimate, error)
}

// CacheStats exposes the cache observability counters.
type CacheStats struct {
	Size         int   `json:"size"`
	Hits         int64 `json:"hits"`
	TotalLookups int64 `json:"total_lookups"`
}

// MatchCache stores prior matching responses keyed by request fingerprint.
// Entries expire after the configured TTL; staleness is checked on lookup.
// Concurrent writers for the same key may race; last writer wins.
type MatchCache interface {
	Get(ctx context.Context, key string) (MatchingResponse, bool, error)
	Set(ctx context.Context, key string, resp MatchingResponse) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (CacheStats, error)
}

// MatchRecord is the durable audit row for one computed match.
type MatchRecord struct {
	ID              string
	CandidateFP     string
	CompanyFP       string
	FinalScore      float64
	Confidence      float64
	Compatibility   Compatibility
	ListeningReason ListeningReason
	Urgency         HiringUrgency
	CreatedAt       time.Time
}

// MatchHistoryRepository persists computed match outcomes. Persistence is
// best-effort: the orchestrator logs failures and never fails the match.
type MatchHistoryRepository interface {
	Insert(ctx context.Context, rec MatchRecord) error
}

// MatchEvent is the analytics summary published after a computed match.
type MatchEvent struct {
	MatchID         string          `json:"match_id"`
	CandidateFP     string          `json:"candidate_fp"`
	CompanyFP       string          `json:"company_fp"`
	FinalScore      float64         `json:"final_score"`
	Compatibility   Compatibility   `json:"compatibility"`
	ListeningReason ListeningReason `json:"listening_reason"`
	Urgency         HiringUrgency   `json:"urgency"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MatchEventPublisher emits completed-match events. Best-effort, like the
// history repository.
type MatchEventPublisher interface {
	PublishMatchCompleted(ctx context.Context, ev MatchEvent) error
}
