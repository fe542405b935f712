package scoring

import (
	"context"
	"strings"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
	"github.com/fairyhunter13/ai-match-engine/pkg/textx"
)

// SemanticScorer measures skill, title, sector, and tooling overlap between
// a candidate and a job, using the synonym table to treat distinct strings
// as the same concept.
type SemanticScorer struct {
	Synonyms *SynonymTable
}

// NewSemanticScorer builds a semantic scorer; a nil table falls back to the
// built-in one.
func NewSemanticScorer(table *SynonymTable) *SemanticScorer {
	if table == nil {
		table = DefaultSynonyms()
	}
	return &SemanticScorer{Synonyms: table}
}

// Name implements domain.Scorer.
func (s *SemanticScorer) Name() string { return "semantic" }

// Score implements domain.Scorer. CPU-only; the context is accepted for
// interface symmetry and never blocks.
func (s *SemanticScorer) Score(_ context.Context, candidate domain.CandidateProfile, company domain.CompanyProfile) domain.ScoringResult {
	return guard(s.Name(), func() domain.ScoringResult {
		required := dedupeNonEmpty(append(
			append([]string{}, company.Requirements.MandatoryCompetences...),
			company.Requirements.DesiredCompetences...))

		competenceScore, matched, missing := s.competenceMatch(required, candidate.Skills.Technical)
		titleScore := titleMatch(candidate.Experiences, company.Job.Title)
		sectorScore := sectorMatch(candidate.Expectations.PreferredSectors, company.Company.Sector)
		toolScore := toolMatch(company.Job.RequiredCompetences, candidate.Skills.Software)

		score := clamp01(semanticCompetenceWeight*competenceScore +
			semanticTitleWeight*titleScore +
			semanticSectorWeight*sectorScore +
			semanticToolWeight*toolScore)

		return domain.ScoringResult{
			Score:      score,
			Confidence: minf(maxConfidence, score*1.1),
			Details: map[string]any{
				"competenceScore":    competenceScore,
				"titleScore":         titleScore,
				"sectorScore":        sectorScore,
				"toolScore":          toolScore,
				"matchedCompetences": matched,
				"missingCompetences": missing,
				"synonymTable":       s.Synonyms.Version,
			},
		}
	})
}

// competenceMatch scores required competences against the candidate's
// technical skills. A competence matches on substring-either-way equality
// or on a shared synonym concept.
func (s *SemanticScorer) competenceMatch(required, technical []string) (float64, []string, []string) {
	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	if len(required) == 0 {
		return 1.0, matched, missing
	}
	for _, req := range required {
		if s.matchesAny(req, technical) {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}
	return float64(len(matched)) / float64(len(required)), matched, missing
}

func (s *SemanticScorer) matchesAny(required string, technical []string) bool {
	for _, skill := range technical {
		if textx.ContainsEitherWay(required, skill) {
			return true
		}
		if s.Synonyms.SameConcept(required, skill) {
			return true
		}
	}
	return false
}

// titleMatch takes the best token-set overlap between the job title and any
// past experience title. No experiences yields a neutral 0.5.
func titleMatch(experiences []domain.Experience, jobTitle string) float64 {
	if len(experiences) == 0 {
		return 0.5
	}
	jobTokens := textx.TokenSet(jobTitle)
	best := 0.0
	for _, exp := range experiences {
		expTokens := textx.TokenSet(exp.Title)
		denom := len(jobTokens)
		if len(expTokens) > denom {
			denom = len(expTokens)
		}
		if denom == 0 {
			continue
		}
		ratio := float64(textx.CommonTokens(jobTokens, expTokens)) / float64(denom)
		if ratio > best {
			best = ratio
		}
	}
	return best
}

// sectorMatch scores preferred sectors against the company sector.
// No declared preference is neutral-positive.
func sectorMatch(preferred []string, companySector string) float64 {
	if len(preferred) == 0 {
		return 0.7
	}
	for _, p := range preferred {
		if textx.ContainsEitherWay(p, companySector) {
			return 1.0
		}
	}
	return 0.3
}

// toolMatch counts required competences covered by the candidate's software
// skills; a software string matches when it appears inside the competence.
func toolMatch(requiredCompetences, software []string) float64 {
	required := dedupeNonEmpty(requiredCompetences)
	if len(required) == 0 {
		return 1.0
	}
	matched := 0
	for _, req := range required {
		reqNorm := textx.Normalize(req)
		for _, sw := range software {
			swNorm := textx.Normalize(sw)
			if swNorm != "" && strings.Contains(reqNorm, swNorm) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(required))
}

func dedupeNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		norm := textx.Normalize(it)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, it)
	}
	return out
}
