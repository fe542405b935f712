package scoring

import (
	"context"
	"strings"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
	"github.com/fairyhunter13/ai-match-engine/pkg/textx"
)

// LocationScorer measures geographic compatibility. With a geo service it
// refines the distance component with a travel-time estimate; without one
// (or on any geo failure) it degrades to a pure string heuristic. A geo
// outage never fails the match.
type LocationScorer struct {
	Geo domain.GeoService
}

// NewLocationScorer builds a location scorer; geo may be nil.
func NewLocationScorer(geo domain.GeoService) *LocationScorer {
	return &LocationScorer{Geo: geo}
}

// Name implements domain.Scorer.
func (s *LocationScorer) Name() string { return "location" }

// Score implements domain.Scorer. The only scorer allowed to perform I/O;
// it honors ctx through the geo client.
func (s *LocationScorer) Score(ctx context.Context, candidate domain.CandidateProfile, company domain.CompanyProfile) domain.ScoringResult {
	return guard(s.Name(), func() domain.ScoringResult {
		origin := candidate.Expectations.PreferredLocation
		destination := company.Job.Location

		if textx.Normalize(origin) == "" && textx.Normalize(destination) == "" {
			// No geography at all; the heuristic has nothing to work with.
			return domain.ScoringResult{
				Score:      0.5,
				Confidence: 0.3,
				Details:    map[string]any{"mode": "unknown", "reason": "no location data"},
			}
		}

		equality := equalityScore(origin, destination)
		remote := remoteScore(candidate.Expectations.RemoteAccepted, company.WorkConditions.RemotePossible)

		distance, mode := s.distanceScore(ctx, equality, candidate, company)

		score := clamp01(locationEqualityWeight*equality +
			locationDistanceWeight*distance +
			locationRemoteWeight*remote)

		confidence := 0.7
		if mode == "geo" {
			confidence = 0.9
		}

		return domain.ScoringResult{
			Score:      score,
			Confidence: confidence,
			Details: map[string]any{
				"equalityScore": equality,
				"distanceScore": distance,
				"remoteScore":   remote,
				"mode":          mode,
			},
		}
	})
}

// equalityScore compares the two location strings.
func equalityScore(origin, destination string) float64 {
	o, d := textx.Normalize(origin), textx.Normalize(destination)
	switch {
	case o != "" && o == d:
		return 1.0
	case textx.CommonTokens(textx.TokenSet(o), textx.TokenSet(d)) > 0:
		return 0.8
	case strings.Contains(o, "paris") && strings.Contains(d, "paris"):
		return 0.7
	default:
		return 0.3
	}
}

// distanceScore estimates reachability. City equality makes distance moot;
// otherwise the geo service is consulted when available, with the declared
// commute radius as fallback heuristic.
func (s *LocationScorer) distanceScore(ctx context.Context, equality float64, candidate domain.CandidateProfile, company domain.CompanyProfile) (float64, string) {
	if equality >= 0.8 {
		return 1.0, "heuristic"
	}
	if s.Geo != nil {
		est, err := s.Geo.Estimate(ctx, domain.GeoEstimateRequest{
			OriginHint:      candidate.Expectations.PreferredLocation,
			DestinationHint: company.Job.Location,
			MaxDistanceKm:   candidate.Expectations.MaxDistanceKm,
			TransportModes:  []domain.TransportMode{domain.TransportCar, domain.TransportPublic},
		})
		if err == nil {
			return clamp01(est.TravelScore), "geo"
		}
		// Degrade silently to the heuristic.
	}
	switch {
	case candidate.Expectations.MaxDistanceKm >= 50:
		return 0.7, "heuristic"
	case candidate.Expectations.MaxDistanceKm >= 30:
		return 0.5, "heuristic"
	default:
		return 0.3, "heuristic"
	}
}

// remoteScore reconciles the two sides' remote stances. Agreement either
// way is a perfect fit.
func remoteScore(candidateRemote, companyRemote bool) float64 {
	switch {
	case candidateRemote == companyRemote:
		return 1.0
	case companyRemote && !candidateRemote:
		return 0.8
	default:
		return 0.3
	}
}
