package domain

// ScoringResult is what every scorer returns. Score and Confidence are in
// [0,1]; Details carries scorer-specific diagnostics. A scorer failure is
// reported in Err with Score and Confidence forced to zero, never as a
// returned error.
type ScoringResult struct {
	Score            float64        `json:"score"`
	Confidence       float64        `json:"confidence"`
	Details          map[string]any `json:"details,omitempty"`
	ProcessingTimeMs float64        `json:"processing_time_ms"`
	Err              string         `json:"error,omitempty"`
}

// FailedScoringResult builds the total-contract failure result for a scorer.
func FailedScoringResult(msg string) ScoringResult {
	return ScoringResult{
		Score:      0.0,
		Confidence: 0.0,
		Details:    map[string]any{"error": msg},
		Err:        msg,
	}
}

// WeightVector distributes weight across the four scoring components.
// A well-formed vector sums to 1.0 within 0.01.
type WeightVector struct {
	Semantic   float64 `json:"semantic"`
	Salary     float64 `json:"salary"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
}

// Sum returns the total mass of the vector.
func (w WeightVector) Sum() float64 {
	return w.Semantic + w.Salary + w.Experience + w.Location
}

// Normalized returns the vector scaled so its components sum to 1.0.
// A zero vector is returned unchanged.
func (w WeightVector) Normalized() WeightVector {
	s := w.Sum()
	if s == 0 {
		return w
	}
	return WeightVector{
		Semantic:   w.Semantic / s,
		Salary:     w.Salary / s,
		Experience: w.Experience / s,
		Location:   w.Location / s,
	}
}

// Scale multiplies every component by f, clamping each to [0,1].
func (w WeightVector) Scale(f float64) WeightVector {
	clamp := func(v float64) float64 {
		if v > 1.0 {
			return 1.0
		}
		if v < 0 {
			return 0
		}
		return v
	}
	return WeightVector{
		Semantic:   clamp(w.Semantic * f),
		Salary:     clamp(w.Salary * f),
		Experience: clamp(w.Experience * f),
		Location:   clamp(w.Location * f),
	}
}

// Compatibility is the qualitative band derived from the final score.
type Compatibility string

const (
	CompatibilityExcellent    Compatibility = "EXCELLENT"
	CompatibilityGood         Compatibility = "GOOD"
	CompatibilityAverage      Compatibility = "AVERAGE"
	CompatibilityPoor         Compatibility = "POOR"
	CompatibilityIncompatible Compatibility = "INCOMPATIBLE"
)

// CompatibilityFor maps a final score to its band. Pure and monotone:
// a higher score never yields a lower band.
func CompatibilityFor(score float64) Compatibility {
	switch {
	case score >= 0.85:
		return CompatibilityExcellent
	case score >= 0.70:
		return CompatibilityGood
	case score >= 0.50:
		return CompatibilityAverage
	case score >= 0.30:
		return CompatibilityPoor
	default:
		return CompatibilityIncompatible
	}
}

// Ordinal ranks the band for monotonicity comparisons; higher is better.
func (c Compatibility) Ordinal() int {
	switch c {
	case CompatibilityExcellent:
		return 4
	case CompatibilityGood:
		return 3
	case CompatibilityAverage:
		return 2
	case CompatibilityPoor:
		return 1
	default:
		return 0
	}
}

// ComponentSet groups the four per-component results.
type ComponentSet struct {
	Semantic   ScoringResult `json:"semantic"`
	Salary     ScoringResult `json:"salary"`
	Experience ScoringResult `json:"experience"`
	Location   ScoringResult `json:"location"`
}

// Weighting records the adaptive weighting decision behind a response.
// CompanyWeights is the final, post-urgency, renormalized vector used for
// aggregation; CandidateWeights is the intermediate candidate-phase vector.
type Weighting struct {
	CandidateWeights   WeightVector    `json:"candidate_weights"`
	CompanyWeights     WeightVector    `json:"company_weights"`
	ListeningReason    ListeningReason `json:"listening_reason"`
	Urgency            HiringUrgency   `json:"urgency"`
	ReasoningCandidate string          `json:"reasoning_candidate"`
	ReasoningCompany   string          `json:"reasoning_company"`
}

// MatchingResponse is the full outcome of one matching operation.
type MatchingResponse struct {
	FinalScore               float64       `json:"final_score"`
	Confidence               float64       `json:"confidence"`
	Compatibility            Compatibility `json:"compatibility"`
	Components               ComponentSet  `json:"components"`
	Weighting                Weighting     `json:"weighting"`
	RecommendationsCandidate []string      `json:"recommendations_candidate"`
	RecommendationsCompany   []string      `json:"recommendations_company"`
	Strengths                []string      `json:"strengths"`
	Attention                []string      `json:"attention"`
	ProcessingTimeMs         float64       `json:"processing_time_ms"`
	Cached                   bool          `json:"cached"`
}

// MatchingRequest is the input to the primary match operation.
// DeadlineMs of zero means the engine default applies.
type MatchingRequest struct {
	Candidate     CandidateProfile `json:"candidate"`
	Company       CompanyProfile   `json:"company"`
	ForceAdaptive bool             `json:"force_adaptive,omitempty"`
	DeadlineMs    int              `json:"deadline_ms,omitempty"`
}
