// Package usecase contains application business logic services.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
	"github.com/fairyhunter13/ai-match-engine/internal/scoring"
)

// DefaultDeadline bounds one matching operation when the request carries no
// explicit deadline.
const DefaultDeadline = 150 * time.Millisecond

// MatcherService orchestrates one bidirectional match: cache lookup,
// adaptive weighting, parallel scoring, aggregation, and recommendation
// synthesis. No error ever escapes Match; every failure mode degrades into
// a well-formed response.
type MatcherService struct {
	Cache      domain.MatchCache
	Semantic   domain.Scorer
	Salary     domain.Scorer
	Experience domain.Scorer
	Location   domain.Scorer
	// History and Events are optional best-effort sinks; nil disables them.
	History domain.MatchHistoryRepository
	Events  domain.MatchEventPublisher

	DefaultDeadline time.Duration

	totalMatches atomic.Int64
	cacheHits    atomic.Int64
	totalProcUs  atomic.Int64
	startedAt    time.Time
	lastReset    atomic.Int64
}

// NewMatcherService wires the four scorers with their defaults. geo may be
// nil; the location scorer then runs in heuristic mode.
func NewMatcherService(cache domain.MatchCache, geo domain.GeoService) *MatcherService {
	now := time.Now().UTC()
	s := &MatcherService{
		Cache:           cache,
		Semantic:        scoring.NewSemanticScorer(nil),
		Salary:          scoring.NewSalaryScorer(),
		Experience:      scoring.NewExperienceScorer(),
		Location:        scoring.NewLocationScorer(geo),
		DefaultDeadline: DefaultDeadline,
		startedAt:       now,
	}
	s.lastReset.Store(now.UnixNano())
	return s
}

// Match runs one matching operation. The returned response is always
// well-formed; partial failures surface in component error fields and the
// attention list.
func (s *MatcherService) Match(ctx context.Context, req domain.MatchingRequest) domain.MatchingResponse {
	start := time.Now()
	resp := s.matchSafe(ctx, req)
	elapsed := time.Since(start)
	if !resp.Cached {
		resp.ProcessingTimeMs = float64(elapsed.Microseconds()) / 1000.0
	}
	s.totalMatches.Add(1)
	s.totalProcUs.Add(elapsed.Microseconds())
	return resp
}

// matchSafe is the catch-all boundary: a panic anywhere below becomes the
// well-formed zero response.
func (s *MatcherService) matchSafe(ctx context.Context, req domain.MatchingRequest) (resp domain.MatchingResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("match panic recovered", slog.Any("recover", rec))
			resp = zeroResponse(req, fmt.Sprintf("System error: %v", rec))
		}
	}()
	return s.match(ctx, req)
}

func (s *MatcherService) match(ctx context.Context, req domain.MatchingRequest) domain.MatchingResponse {
	if err := domain.ValidateForMatching(req.Candidate, req.Company); err != nil {
		return zeroResponse(req, "Validation: "+err.Error())
	}

	key := CacheKey(req.Candidate, req.Company)
	if !req.ForceAdaptive {
		if cached, ok, err := s.Cache.Get(ctx, key); err != nil {
			slog.Warn("cache lookup failed", slog.Any("error", err))
		} else if ok {
			s.cacheHits.Add(1)
			cached.Cached = true
			return cached
		}
	}

	weighting := scoring.ComputeWeighting(req.Candidate.Motivation.ListeningReason, req.Company.Hiring.Urgency)

	deadline := s.DefaultDeadline
	if req.DeadlineMs > 0 {
		deadline = time.Duration(req.DeadlineMs) * time.Millisecond
	}
	mctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	components, timedOut := s.runScorers(mctx, req.Candidate, req.Company)

	w := weighting.CompanyWeights
	finalScore := clamp01(components.Semantic.Score*w.Semantic +
		components.Salary.Score*w.Salary +
		components.Experience.Score*w.Experience +
		components.Location.Score*w.Location)

	recs := scoring.Synthesize(components, weighting.ListeningReason, weighting.Urgency)

	resp := domain.MatchingResponse{
		FinalScore:               finalScore,
		Confidence:               aggregateConfidence(components),
		Compatibility:            domain.CompatibilityFor(finalScore),
		Components:               components,
		Weighting:                weighting,
		RecommendationsCandidate: recs.Candidate,
		RecommendationsCompany:   recs.Company,
		Strengths:                recs.Strengths,
		Attention:                recs.Attention,
	}

	if timedOut {
		// A partially scored response must not poison the cache.
		s.record(ctx, req, resp)
		return resp
	}
	if err := s.Cache.Set(ctx, key, resp); err != nil {
		slog.Warn("cache write failed", slog.Any("error", err))
	}
	s.record(ctx, req, resp)
	return resp
}

// runScorers fans the four scorers out and joins them, substituting a
// neutral timeout result for any scorer that misses the deadline.
func (s *MatcherService) runScorers(ctx context.Context, candidate domain.CandidateProfile, company domain.CompanyProfile) (domain.ComponentSet, bool) {
	scorers := []domain.Scorer{s.Semantic, s.Salary, s.Experience, s.Location}
	results := make([]domain.ScoringResult, len(scorers))
	finished := make([]bool, len(scorers))
	var mu sync.Mutex

	var g errgroup.Group
	for i, sc := range scorers {
		g.Go(func() error {
			res := sc.Score(ctx, candidate, company)
			mu.Lock()
			results[i] = res
			finished[i] = true
			mu.Unlock()
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	timedOut := false
	select {
	case <-done:
	case <-ctx.Done():
		timedOut = true
	}

	mu.Lock()
	defer mu.Unlock()
	for i := range results {
		if !finished[i] {
			results[i] = domain.ScoringResult{
				Score:      0.0,
				Confidence: 0.0,
				Details:    map[string]any{"timeout": true},
			}
		}
	}
	return domain.ComponentSet{
		Semantic:   results[0],
		Salary:     results[1],
		Experience: results[2],
		Location:   results[3],
	}, timedOut
}

// aggregateConfidence is the score-weighted mean of component confidences,
// capped at 0.95. Zero when no component produced a positive score or a
// positive confidence.
func aggregateConfidence(components domain.ComponentSet) float64 {
	results := []domain.ScoringResult{
		components.Semantic, components.Salary, components.Experience, components.Location,
	}
	num, den := 0.0, 0.0
	anyConfidence := false
	for _, r := range results {
		if r.Confidence > 0 {
			anyConfidence = true
		}
		if r.Score > 0 {
			num += r.Confidence * r.Score
			den += r.Score
		}
	}
	if den == 0 || !anyConfidence {
		return 0.0
	}
	c := num / den
	if c > 0.95 {
		c = 0.95
	}
	return c
}

// record forwards the outcome to the optional history and event sinks.
// Failures are logged and swallowed; the match result stands regardless.
func (s *MatcherService) record(ctx context.Context, req domain.MatchingRequest, resp domain.MatchingResponse) {
	if s.History == nil && s.Events == nil {
		return
	}
	id := uuid.New().String()
	now := time.Now().UTC()
	cfp := CandidateFingerprint(req.Candidate)
	efp := CompanyFingerprint(req.Company)
	// Detach from the request deadline; sinks get their own budget.
	bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if s.History != nil {
		rec := domain.MatchRecord{
			ID:              id,
			CandidateFP:     cfp,
			CompanyFP:       efp,
			FinalScore:      resp.FinalScore,
			Confidence:      resp.Confidence,
			Compatibility:   resp.Compatibility,
			ListeningReason: req.Candidate.Motivation.ListeningReason,
			Urgency:         req.Company.Hiring.Urgency,
			CreatedAt:       now,
		}
		if err := s.History.Insert(bctx, rec); err != nil {
			slog.Warn("match history insert failed", slog.Any("error", err))
		}
	}
	if s.Events != nil {
		ev := domain.MatchEvent{
			MatchID:         id,
			CandidateFP:     cfp,
			CompanyFP:       efp,
			FinalScore:      resp.FinalScore,
			Compatibility:   resp.Compatibility,
			ListeningReason: req.Candidate.Motivation.ListeningReason,
			Urgency:         req.Company.Hiring.Urgency,
			CreatedAt:       now,
		}
		if err := s.Events.PublishMatchCompleted(bctx, ev); err != nil {
			slog.Warn("match event publish failed", slog.Any("error", err))
		}
	}
}

// zeroResponse is the well-formed failure response used for validation and
// aggregation failures.
func zeroResponse(req domain.MatchingRequest, attention string) domain.MatchingResponse {
	return domain.MatchingResponse{
		FinalScore:    0.0,
		Confidence:    0.0,
		Compatibility: domain.CompatibilityIncompatible,
		Weighting: domain.Weighting{
			ListeningReason: req.Candidate.Motivation.ListeningReason,
			Urgency:         req.Company.Hiring.Urgency,
		},
		RecommendationsCandidate: []string{},
		RecommendationsCompany:   []string{},
		Strengths:                []string{},
		Attention:                []string{attention},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
