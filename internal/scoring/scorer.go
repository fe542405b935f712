package scoring

import (
	"fmt"
	"time"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

// Sub-score weights for each scorer's convex combination.
const (
	semanticCompetenceWeight = 0.40
	semanticTitleWeight      = 0.30
	semanticSectorWeight     = 0.20
	semanticToolWeight       = 0.10

	salaryCompatibilityWeight = 0.60
	salaryPositioningWeight   = 0.25
	salaryNegotiabilityWeight = 0.15

	experienceBaseWeight        = 0.70
	experienceQualityWeight     = 0.20
	experienceProgressionWeight = 0.10

	locationEqualityWeight = 0.60
	locationDistanceWeight = 0.25
	locationRemoteWeight   = 0.15
)

const maxConfidence = 0.95

// guard runs a scorer body under the totality contract: a panic becomes a
// zero-score error result, and ProcessingTimeMs is always filled in.
func guard(name string, fn func() domain.ScoringResult) (res domain.ScoringResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			res = domain.FailedScoringResult(fmt.Sprintf("%s scorer: %v", name, rec))
		}
		res.ProcessingTimeMs = float64(time.Since(start).Microseconds()) / 1000.0
	}()
	return fn()
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

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
