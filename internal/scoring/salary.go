package scoring

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

// SalaryScorer measures how well the candidate's expected range and the
// job's proposed range fit, how the two ranges are positioned relative to
// each other, and how much negotiation room the context leaves.
type SalaryScorer struct{}

// NewSalaryScorer builds a salary scorer.
func NewSalaryScorer() *SalaryScorer { return &SalaryScorer{} }

// Name implements domain.Scorer.
func (s *SalaryScorer) Name() string { return "salary" }

// Score implements domain.Scorer. CPU-only.
func (s *SalaryScorer) Score(_ context.Context, candidate domain.CandidateProfile, company domain.CompanyProfile) domain.ScoringResult {
	return guard(s.Name(), func() domain.ScoringResult {
		cMin := float64(candidate.Expectations.SalaryMin)
		cMax := float64(candidate.Expectations.SalaryMax)
		eMin := float64(company.Job.SalaryMin)
		// An unspecified company maximum means no ceiling. Cap the
		// effective maximum at the candidate's own ceiling so the overlap
		// arithmetic stays finite while preserving "always compatible
		// above eMin" semantics.
		eMax := float64(company.Job.SalaryMax)
		unbounded := company.Job.SalaryMax == 0
		if unbounded {
			eMax = maxf(cMax, eMin)
		}

		compatibility, overlap := compatibilityScore(cMin, cMax, eMin, eMax)
		positioning := positioningScore(cMin, cMax, eMin, eMax)
		negotiability := negotiabilityScore(company.Hiring.Urgency, candidate.ExperienceLevel)

		score := clamp01(salaryCompatibilityWeight*compatibility +
			salaryPositioningWeight*positioning +
			salaryNegotiabilityWeight*negotiability)

		confidence := 0.6
		if compatibility >= 0.7 {
			confidence = 0.9
		}

		return domain.ScoringResult{
			Score:      score,
			Confidence: confidence,
			Details: map[string]any{
				"candidateRange":     fmt.Sprintf("%d-%d EUR", candidate.Expectations.SalaryMin, candidate.Expectations.SalaryMax),
				"companyRange":       companyRangeLabel(company.Job.SalaryMin, company.Job.SalaryMax),
				"compatibilityScore": compatibility,
				"positioningScore":   positioning,
				"negotiabilityScore": negotiability,
				"overlapAmount":      int(overlap),
				"recommendation":     salaryRecommendation(cMin, cMax, eMin, eMax, overlap),
			},
		}
	})
}

// compatibilityScore returns the range-overlap sub-score and the overlap
// amount in euros (zero when the ranges are disjoint).
func compatibilityScore(cMin, cMax, eMin, eMax float64) (float64, float64) {
	overlap := minf(cMax, eMax) - maxf(cMin, eMin)
	if overlap > 0 {
		cRange := cMax - cMin
		eRange := eMax - eMin
		avg := (cRange + eRange) / 2
		if avg <= 0 {
			return 1.0, overlap
		}
		return minf(1.0, overlap/avg), overlap
	}
	// Candidate asks above the company ceiling.
	if cMin > eMax {
		if cMin <= 0 {
			return 0, 0
		}
		return maxf(0, 1-(cMin-eMax)/cMin), 0
	}
	// Company floor above the candidate ceiling.
	if eMin > cMax {
		if eMin <= 0 {
			return 0, 0
		}
		return maxf(0, 1-(eMin-cMax)/eMin), 0
	}
	return 0, 0
}

// positioningScore compares the two range midpoints.
func positioningScore(cMin, cMax, eMin, eMax float64) float64 {
	switch {
	case eMax < cMin:
		return 0.0
	case eMin > cMax:
		return 0.2
	}
	midC := (cMin + cMax) / 2
	midE := (eMin + eMax) / 2
	if midC <= 0 {
		return 0.5
	}
	gap := (midC - midE) / midC
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap < 0.10:
		return 1.0
	case gap < 0.20:
		return 0.8
	default:
		return 0.5
	}
}

// negotiabilityScore estimates negotiation room from the company's urgency
// and the candidate's seniority.
func negotiabilityScore(urgency domain.HiringUrgency, level domain.ExperienceLevel) float64 {
	score := 0.5
	switch urgency {
	case domain.UrgencyCritical:
		score += 0.3
	case domain.UrgencyUrgent:
		score += 0.2
	}
	if level == domain.LevelConfirmed || level == domain.LevelSenior {
		score += 0.2
	}
	return minf(1.0, score)
}

func companyRangeLabel(min, max int) string {
	if min == 0 && max == 0 {
		return "not specified"
	}
	if max == 0 {
		return fmt.Sprintf("%d+ EUR", min)
	}
	return fmt.Sprintf("%d-%d EUR", min, max)
}

func salaryRecommendation(cMin, cMax, eMin, eMax, overlap float64) string {
	midC := (cMin + cMax) / 2
	midE := (eMin + eMax) / 2
	if overlap > 0 {
		return fmt.Sprintf("Propose %d EUR (convergence midpoint)", int((midC+midE)/2))
	}
	if cMin > eMax {
		return fmt.Sprintf("Candidate expects at least %d EUR above the proposed ceiling", int(cMin-eMax))
	}
	if eMin > cMax {
		return "Proposed floor exceeds the candidate's ceiling; alignment should be straightforward"
	}
	return "Ranges could not be compared"
}
