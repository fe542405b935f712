package scoring

import (
	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

// BaseWeights is the neutral distribution before any adaptation.
var BaseWeights = domain.WeightVector{Semantic: 0.35, Salary: 0.25, Experience: 0.25, Location: 0.15}

// candidateAdaptation is the full post-adaptation vector per listening
// reason. Each row sums to 1.0.
var candidateAdaptation = map[domain.ListeningReason]domain.WeightVector{
	domain.ReasonSalaryTooLow:      {Semantic: 0.30, Salary: 0.35, Experience: 0.20, Location: 0.15},
	domain.ReasonRoleMismatch:      {Semantic: 0.45, Salary: 0.20, Experience: 0.20, Location: 0.15},
	domain.ReasonLocationTooFar:    {Semantic: 0.30, Salary: 0.25, Experience: 0.20, Location: 0.25},
	domain.ReasonLackOfFlexibility: {Semantic: 0.30, Salary: 0.30, Experience: 0.20, Location: 0.20},
	domain.ReasonLackOfProspects:   {Semantic: 0.40, Salary: 0.30, Experience: 0.15, Location: 0.15},
}

// urgencyBoost is the company-side tolerance multiplier applied to every
// component after the candidate adaptation.
var urgencyBoost = map[domain.HiringUrgency]float64{
	domain.UrgencyCritical: 1.2,
	domain.UrgencyUrgent:   1.1,
	domain.UrgencyNormal:   1.0,
	domain.UrgencyLongTerm: 0.95,
}

var candidateReasoning = map[domain.ListeningReason]string{
	domain.ReasonSalaryTooLow:      "Weighting favors salary improvement: compensation is the stated reason for listening",
	domain.ReasonRoleMismatch:      "Weighting favors role content: the candidate wants missions closer to their skills",
	domain.ReasonLocationTooFar:    "Weighting raises location: commute length is the stated reason for listening",
	domain.ReasonLackOfFlexibility: "Weighting balances salary and location: working conditions drive the move",
	domain.ReasonLackOfProspects:   "Weighting favors role content and salary: the candidate seeks progression",
}

var companyReasoning = map[domain.HiringUrgency]string{
	domain.UrgencyCritical: "Critical urgency relaxes tolerance by 20% across all criteria",
	domain.UrgencyUrgent:   "Urgent hiring relaxes tolerance by 10% across all criteria",
	domain.UrgencyNormal:   "Standard timeline: weights applied as-is",
	domain.UrgencyLongTerm: "Long-term horizon tightens selectivity by 5%",
}

// ComputeWeighting maps the two adaptive contexts to the weight vectors
// used for aggregation. The candidate phase swaps in a per-reason vector;
// the company phase scales it by the urgency boost, clamps each component
// to 1.0, then renormalizes so the final vector sums to exactly 1.0.
func ComputeWeighting(reason domain.ListeningReason, urgency domain.HiringUrgency) domain.Weighting {
	candidate, ok := candidateAdaptation[reason]
	if !ok {
		candidate = BaseWeights
	}
	boost, ok := urgencyBoost[urgency]
	if !ok {
		boost = 1.0
	}
	final := candidate.Scale(boost).Normalized()

	return domain.Weighting{
		CandidateWeights:   candidate,
		CompanyWeights:     final,
		ListeningReason:    reason,
		Urgency:            urgency,
		ReasoningCandidate: candidateReasoning[reason],
		ReasoningCompany:   companyReasoning[urgency],
	}
}
