package scoring

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
	"github.com/fairyhunter13/ai-match-engine/pkg/textx"
)

// Free-form requirement strings come from parsed job descriptions in either
// English or French: "5 years - 10 years", "5 - 10 ans", "5 ans", "junior".
var (
	expRangeRe  = regexp.MustCompile(`(\d+)\s*(?:years?|ans?)?\s*-\s*(\d+)\s*(?:years?|ans?)`)
	expSingleRe = regexp.MustCompile(`(\d+)\s*(?:years?|ans?)`)

	durYearsRe  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:years?|ans?)`)
	durMonthsRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:months?|mois)`)
)

// Defaults when the requirement string carries no usable number.
const (
	defaultExpMin = 2
	defaultExpMax = 10
)

var levelBaseYears = map[domain.ExperienceLevel]float64{
	domain.LevelEntry:     1,
	domain.LevelJunior:    3,
	domain.LevelConfirmed: 7,
	domain.LevelSenior:    12,
}

var progressionKeywords = []string{"senior", "lead", "chief", "manager", "director"}

// ExperienceScorer compares the candidate's career length and trajectory
// against the job's requirement.
type ExperienceScorer struct{}

// NewExperienceScorer builds an experience scorer.
func NewExperienceScorer() *ExperienceScorer { return &ExperienceScorer{} }

// Name implements domain.Scorer.
func (s *ExperienceScorer) Name() string { return "experience" }

// Score implements domain.Scorer. CPU-only.
func (s *ExperienceScorer) Score(_ context.Context, candidate domain.CandidateProfile, company domain.CompanyProfile) domain.ScoringResult {
	return guard(s.Name(), func() domain.ScoringResult {
		expMin, expMax := ParseRequiredExperience(company.Requirements.ExperienceRequired)
		years := candidateYears(candidate)

		base := baseMatch(years, expMin, expMax)
		quality := qualityScore(candidate.Experiences, company)
		progression := progressionScore(candidate.Experiences)

		score := clamp01(experienceBaseWeight*base +
			experienceQualityWeight*quality +
			experienceProgressionWeight*progression)

		confidence := 0.7
		if base >= 0.8 {
			confidence = 0.9
		}

		return domain.ScoringResult{
			Score:      score,
			Confidence: confidence,
			Details: map[string]any{
				"candidateYears":   years,
				"requiredMin":      expMin,
				"requiredMax":      expMax,
				"baseScore":        base,
				"qualityScore":     quality,
				"progressionScore": progression,
				"verdict":          verdict(years, expMin, expMax),
			},
		}
	})
}

// ParseRequiredExperience extracts [min,max] years from a free-form
// requirement string. A single number yields [n, n+2]; no number yields the
// [2,10] default.
func ParseRequiredExperience(s string) (float64, float64) {
	norm := textx.Normalize(s)
	if m := expRangeRe.FindStringSubmatch(norm); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		return float64(lo), float64(hi)
	}
	if m := expSingleRe.FindStringSubmatch(norm); m != nil {
		n, _ := strconv.Atoi(m[1])
		return float64(n), float64(n + 2)
	}
	return defaultExpMin, defaultExpMax
}

// candidateYears derives total experience from the seniority bracket,
// refined by parseable durations. Summed durations are capped at the level
// base plus two so an inflated CV cannot overrun the declared bracket.
func candidateYears(c domain.CandidateProfile) float64 {
	base := levelBaseYears[c.ExperienceLevel]
	if base == 0 {
		base = levelBaseYears[domain.LevelJunior]
	}
	sum := 0.0
	for _, exp := range c.Experiences {
		sum += parseDurationYears(exp.Duration)
	}
	if sum > 0 {
		return minf(sum, base+2)
	}
	return base
}

func parseDurationYears(s string) float64 {
	norm := textx.Normalize(s)
	if m := durYearsRe.FindStringSubmatch(norm); m != nil {
		return parseDecimal(m[1])
	}
	if m := durMonthsRe.FindStringSubmatch(norm); m != nil {
		return parseDecimal(m[1]) / 12
	}
	return 0
}

func parseDecimal(s string) float64 {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			s = s[:i] + "." + s[i+1:]
			break
		}
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func baseMatch(years, expMin, expMax float64) float64 {
	if years >= expMin && years <= expMax {
		return 1.0
	}
	if years < expMin {
		gap := expMin - years
		switch {
		case gap <= 1:
			return 0.8
		case gap <= 2:
			return 0.6
		default:
			if expMin <= 0 {
				return 0.2
			}
			return maxf(0.2, 1-gap/expMin)
		}
	}
	excess := years - expMax
	switch {
	case excess <= 2:
		return 0.9
	case excess <= 5:
		return 0.7
	default:
		return 0.5
	}
}

// qualityScore rewards past roles in the company's sector, roles with a
// similar title, and acquired skills covering mandatory competences.
func qualityScore(experiences []domain.Experience, company domain.CompanyProfile) float64 {
	sector := textx.Normalize(company.Company.Sector)
	titleTokens := textx.TokenSet(company.Job.Title)
	mandatory := company.Requirements.MandatoryCompetences

	total := 0.0
	for _, exp := range experiences {
		if sector != "" && textx.ContainsEitherWay(exp.Company, sector) {
			total += 0.3
		}
		if textx.CommonTokens(textx.TokenSet(exp.Title), titleTokens) > 0 {
			total += 0.2
		}
		total += 0.3 * skillsCoverage(exp.SkillsAcquired, mandatory)
	}
	return minf(1.0, total)
}

func skillsCoverage(acquired, mandatory []string) float64 {
	if len(mandatory) == 0 || len(acquired) == 0 {
		return 0
	}
	covered := 0
	for _, m := range mandatory {
		for _, a := range acquired {
			if textx.ContainsEitherWay(m, a) {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(mandatory))
}

func progressionScore(experiences []domain.Experience) float64 {
	if len(experiences) < 2 {
		return 0.5
	}
	for _, exp := range experiences {
		title := textx.Normalize(exp.Title)
		for _, kw := range progressionKeywords {
			if title != "" && textx.ContainsEitherWay(title, kw) {
				return 0.8
			}
		}
	}
	return 0.5
}

func verdict(years, expMin, expMax float64) string {
	switch {
	case years >= expMin && years <= expMax:
		return fmt.Sprintf("Adequate: %.1f years within the %.0f-%.0f required", years, expMin, expMax)
	case years < expMin:
		return fmt.Sprintf("Below requirement: %.1f years against %.0f minimum", years, expMin)
	default:
		return fmt.Sprintf("Overqualified: %.1f years against %.0f maximum", years, expMax)
	}
}
