package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-match-engine/internal/adapter/cache/memory"
	"github.com/fairyhunter13/ai-match-engine/internal/domain"
	"github.com/fairyhunter13/ai-match-engine/internal/usecase"
)

// stubScorer returns a canned result, optionally after a fixed sleep that
// ignores the context so deadline behavior is deterministic in tests.
type stubScorer struct {
	name  string
	res   domain.ScoringResult
	delay time.Duration
}

func (s stubScorer) Name() string { return s.name }

func (s stubScorer) Score(_ context.Context, _ domain.CandidateProfile, _ domain.CompanyProfile) domain.ScoringResult {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.res
}

type recordingHistory struct {
	mu   sync.Mutex
	recs []domain.MatchRecord
}

func (h *recordingHistory) Insert(_ context.Context, rec domain.MatchRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recs = append(h.recs, rec)
	return nil
}

type recordingEvents struct {
	mu  sync.Mutex
	evs []domain.MatchEvent
}

func (p *recordingEvents) PublishMatchCompleted(_ context.Context, ev domain.MatchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.evs = append(p.evs, ev)
	return nil
}

func newStubbedService(sem, sal, exp, loc domain.ScoringResult) *usecase.MatcherService {
	svc := usecase.NewMatcherService(memory.New(time.Hour, 0), nil)
	svc.Semantic = stubScorer{name: "semantic", res: sem}
	svc.Salary = stubScorer{name: "salary", res: sal}
	svc.Experience = stubScorer{name: "experience", res: exp}
	svc.Location = stubScorer{name: "location", res: loc}
	return svc
}

func matchRequest() domain.MatchingRequest {
	return domain.MatchingRequest{Candidate: fpCandidate(), Company: fpCompany()}
}

func TestMatch_AggregatesWithCompanyWeights(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.6, Confidence: 0.8},
		domain.ScoringResult{Score: 1.0, Confidence: 0.95},
		domain.ScoringResult{Score: 0.4, Confidence: 0.7},
	)

	resp := svc.Match(context.Background(), matchRequest())

	// SALARY_TOO_LOW at NORMAL urgency weights 0.30/0.35/0.20/0.15.
	want := 0.8*0.30 + 0.6*0.35 + 1.0*0.20 + 0.4*0.15
	assert.InDelta(t, want, resp.FinalScore, 1e-9)
	assert.Equal(t, domain.CompatibilityFor(want), resp.Compatibility)
	assert.InDelta(t, 1.0, resp.Weighting.CompanyWeights.Sum(), 0.01)
	assert.False(t, resp.Cached)
	assert.GreaterOrEqual(t, resp.ProcessingTimeMs, 0.0)
}

func TestMatch_ConfidenceIsScoreWeightedAndCapped(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.6, Confidence: 0.8},
		domain.ScoringResult{Score: 1.0, Confidence: 0.95},
		domain.ScoringResult{Score: 0.4, Confidence: 0.7},
	)

	resp := svc.Match(context.Background(), matchRequest())

	num := 0.9*0.8 + 0.8*0.6 + 0.95*1.0 + 0.7*0.4
	den := 0.8 + 0.6 + 1.0 + 0.4
	assert.InDelta(t, num/den, resp.Confidence, 1e-9)
	assert.LessOrEqual(t, resp.Confidence, 0.95)
}

func TestMatch_ConfidenceZeroWhenNothingScored(t *testing.T) {
	t.Parallel()
	zero := domain.ScoringResult{Score: 0, Confidence: 0}
	svc := newStubbedService(zero, zero, zero, zero)

	resp := svc.Match(context.Background(), matchRequest())
	assert.Zero(t, resp.Confidence)
	assert.Zero(t, resp.FinalScore)
	assert.Equal(t, domain.CompatibilityIncompatible, resp.Compatibility)
}

func TestMatch_ConfidenceNeverExceedsCap(t *testing.T) {
	t.Parallel()
	perfect := domain.ScoringResult{Score: 1.0, Confidence: 1.0}
	svc := newStubbedService(perfect, perfect, perfect, perfect)

	resp := svc.Match(context.Background(), matchRequest())
	assert.InDelta(t, 0.95, resp.Confidence, 1e-9)
}

func TestMatch_Deterministic(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.7, Confidence: 0.9},
		domain.ScoringResult{Score: 0.5, Confidence: 0.8},
		domain.ScoringResult{Score: 0.9, Confidence: 0.9},
		domain.ScoringResult{Score: 0.6, Confidence: 0.7},
	)
	req := matchRequest()
	req.ForceAdaptive = true // bypass the cache so both runs compute

	a := svc.Match(context.Background(), req)
	b := svc.Match(context.Background(), req)

	assert.Equal(t, a.FinalScore, b.FinalScore)
	assert.Equal(t, a.Confidence, b.Confidence)
	assert.Equal(t, a.Compatibility, b.Compatibility)
	assert.Equal(t, a.Weighting, b.Weighting)
	assert.Equal(t, a.RecommendationsCandidate, b.RecommendationsCandidate)
	assert.Equal(t, a.RecommendationsCompany, b.RecommendationsCompany)
}

func TestMatch_SecondCallHitsCache(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
	)

	first := svc.Match(context.Background(), matchRequest())
	require.False(t, first.Cached)

	second := svc.Match(context.Background(), matchRequest())
	assert.True(t, second.Cached)
	assert.Equal(t, first.FinalScore, second.FinalScore)
	assert.Equal(t, first.Compatibility, second.Compatibility)
}

func TestMatch_EquivalentProfilesShareCacheEntry(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
	)

	first := svc.Match(context.Background(), matchRequest())
	require.False(t, first.Cached)

	// Same profiles with set-typed fields reordered and provenance changed.
	req := matchRequest()
	req.Candidate.Skills.Technical = []string{"audit", "accounting", "payroll"}
	req.Candidate.Source = "import"
	req.Candidate.ParsedAt = time.Now()
	second := svc.Match(context.Background(), req)
	assert.True(t, second.Cached)
}

func TestMatch_ForceAdaptiveBypassesCache(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
	)

	_ = svc.Match(context.Background(), matchRequest())

	req := matchRequest()
	req.ForceAdaptive = true
	resp := svc.Match(context.Background(), req)
	assert.False(t, resp.Cached)
}

func TestMatch_ValidationFailureYieldsZeroResponse(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
	)

	req := matchRequest()
	req.Candidate.Personal.Email = "not-an-email"
	resp := svc.Match(context.Background(), req)

	assert.Zero(t, resp.FinalScore)
	assert.Zero(t, resp.Confidence)
	assert.Equal(t, domain.CompatibilityIncompatible, resp.Compatibility)
	require.Len(t, resp.Attention, 1)
	assert.Contains(t, resp.Attention[0], "Validation:")
	require.NotNil(t, resp.RecommendationsCandidate)
	require.NotNil(t, resp.RecommendationsCompany)
	require.NotNil(t, resp.Strengths)
}

func TestMatch_DeadlineSubstitutesTimeoutResults(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.9, Confidence: 0.9},
		domain.ScoringResult{Score: 0.9, Confidence: 0.9},
		domain.ScoringResult{Score: 0.9, Confidence: 0.9},
		domain.ScoringResult{Score: 0.9, Confidence: 0.9},
	)
	svc.Location = stubScorer{
		name:  "location",
		res:   domain.ScoringResult{Score: 0.9, Confidence: 0.9},
		delay: 300 * time.Millisecond,
	}

	req := matchRequest()
	req.DeadlineMs = 30
	resp := svc.Match(context.Background(), req)

	// The slow scorer missed the deadline and contributes a neutral result.
	assert.Zero(t, resp.Components.Location.Score)
	assert.Zero(t, resp.Components.Location.Confidence)
	assert.Equal(t, true, resp.Components.Location.Details["timeout"])
	// Fast scorers still contribute.
	assert.InDelta(t, 0.9, resp.Components.Semantic.Score, 1e-9)
	assert.Greater(t, resp.FinalScore, 0.0)

	// A partial result must not be served from cache afterwards.
	fresh := svc.Match(context.Background(), matchRequest())
	assert.False(t, fresh.Cached)
}

// The two tests below run full profiles through the real scorers, end to
// end, with no stubs.

func TestMatch_StrongOverlapScoresGoodOrBetter(t *testing.T) {
	t.Parallel()
	svc := usecase.NewMatcherService(memory.New(time.Hour, 0), nil)

	req := domain.MatchingRequest{
		Candidate: domain.CandidateProfile{
			Personal: domain.PersonalInfo{
				FirstName: "Claire",
				LastName:  "Martin",
				Email:     "claire.martin@example.com",
			},
			ExperienceLevel: domain.LevelConfirmed,
			Skills: domain.Skills{
				Technical: []string{"CEGID mastery", "Accounting & tax management"},
			},
			Expectations: domain.Expectations{
				SalaryMin:         38000,
				SalaryMax:         45000,
				PreferredLocation: "Paris 8",
				RemoteAccepted:    true,
			},
			Motivation: domain.Motivation{ListeningReason: domain.ReasonSalaryTooLow},
		},
		Company: domain.CompanyProfile{
			Company: domain.CompanyInfo{Name: "Fidexio", Sector: "accounting", Location: "Paris 8"},
			Job: domain.JobOffer{
				Title:        "Sole Accountant",
				Location:     "Paris 8",
				ContractKind: domain.ContractPermanent,
				SalaryMin:    35000,
				SalaryMax:    42000,
			},
			Requirements: domain.Requirements{
				MandatoryCompetences: []string{"CEGID mastery"},
				DesiredCompetences:   []string{"Accounting & tax management"},
				ExperienceRequired:   "5 years - 10 years",
			},
			Hiring: domain.Hiring{Urgency: domain.UrgencyUrgent},
		},
	}

	resp := svc.Match(context.Background(), req)

	assert.GreaterOrEqual(t, resp.FinalScore, 0.70)
	assert.GreaterOrEqual(t, resp.Compatibility.Ordinal(), domain.CompatibilityGood.Ordinal())
	assert.GreaterOrEqual(t, resp.Components.Location.Score, 0.8)
	assert.Equal(t, 4000, resp.Components.Salary.Details["overlapAmount"])
	assert.Contains(t, strings.ToLower(resp.Weighting.ReasoningCandidate), "salary")
	assert.Greater(t, resp.Confidence, 0.0)
	assert.Empty(t, resp.Attention)
}

func TestMatch_RoleMismatchOverqualifiedScoresPoor(t *testing.T) {
	t.Parallel()
	svc := usecase.NewMatcherService(memory.New(time.Hour, 0), nil)

	req := domain.MatchingRequest{
		Candidate: domain.CandidateProfile{
			Personal: domain.PersonalInfo{
				FirstName: "Nadia",
				LastName:  "Benali",
				Email:     "nadia.benali@example.com",
			},
			ExperienceLevel: domain.LevelSenior,
			Skills: domain.Skills{
				Technical: []string{"Python", "React", "Kubernetes"},
			},
			Expectations: domain.Expectations{
				SalaryMin:         70000,
				SalaryMax:         90000,
				PreferredLocation: "Lyon",
				RemoteAccepted:    false,
			},
			Motivation: domain.Motivation{ListeningReason: domain.ReasonRoleMismatch},
		},
		Company: domain.CompanyProfile{
			Company: domain.CompanyInfo{Name: "Finacorp", Sector: "accounting", Location: "Lyon"},
			Job: domain.JobOffer{
				Title:        "Junior Accountant",
				Location:     "Lyon",
				ContractKind: domain.ContractPermanent,
				SalaryMin:    30000,
				SalaryMax:    35000,
			},
			Requirements: domain.Requirements{
				MandatoryCompetences: []string{"Accounting", "CEGID"},
				ExperienceRequired:   "1 year - 3 years",
			},
			Hiring: domain.Hiring{Urgency: domain.UrgencyNormal},
		},
	}

	resp := svc.Match(context.Background(), req)

	assert.Less(t, resp.FinalScore, 0.5)
	assert.LessOrEqual(t, resp.Compatibility.Ordinal(), domain.CompatibilityPoor.Ordinal())
	assert.Less(t, resp.Components.Semantic.Score, 0.5)
	assert.Less(t, resp.Components.Salary.Score, 0.5)
	assert.LessOrEqual(t, resp.Components.Experience.Score, 0.7)
	assert.Contains(t, resp.Components.Experience.Details["verdict"], "Overqualified")
	assert.Contains(t, resp.RecommendationsCompany, "Plan training or accompaniment to close the skills gap")
	assert.NotEmpty(t, resp.Attention)
}

func TestMatch_RecordsHistoryAndEvents(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
	)
	hist := &recordingHistory{}
	events := &recordingEvents{}
	svc.History = hist
	svc.Events = events

	resp := svc.Match(context.Background(), matchRequest())

	hist.mu.Lock()
	defer hist.mu.Unlock()
	require.Len(t, hist.recs, 1)
	rec := hist.recs[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, resp.FinalScore, rec.FinalScore)
	assert.Equal(t, resp.Compatibility, rec.Compatibility)
	assert.Equal(t, domain.ReasonSalaryTooLow, rec.ListeningReason)

	events.mu.Lock()
	defer events.mu.Unlock()
	require.Len(t, events.evs, 1)
	assert.Equal(t, rec.ID, events.evs[0].MatchID)
	assert.Equal(t, rec.CandidateFP, events.evs[0].CandidateFP)
}

func TestMatch_CachedResponseSkipsSinks(t *testing.T) {
	t.Parallel()
	svc := newStubbedService(
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
		domain.ScoringResult{Score: 0.8, Confidence: 0.9},
	)
	hist := &recordingHistory{}
	svc.History = hist

	_ = svc.Match(context.Background(), matchRequest())
	_ = svc.Match(context.Background(), matchRequest())

	hist.mu.Lock()
	defer hist.mu.Unlock()
	assert.Len(t, hist.recs, 1)
}
