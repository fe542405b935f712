package scoring

import (
	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

// Recommendation synthesis is pure table lookup over the component scores
// and the adaptive context. No free-form generation; output order is fixed:
// per-component base lines in component order, then listening-reason lines,
// then urgency lines.

const (
	strengthThreshold  = 0.8
	attentionThreshold = 0.5
)

type component int

const (
	compSemantic component = iota
	compSalary
	compExperience
	compLocation
)

var componentOrder = []component{compSemantic, compSalary, compExperience, compLocation}

var strengthLines = map[component]string{
	compSemantic:   "Excellent skill fit",
	compSalary:     "Perfectly calibrated salary",
	compExperience: "Experience level matches the need",
	compLocation:   "Ideal geographic fit",
}

var attentionLines = map[component]string{
	compSemantic:   "Significant skills gap against the job requirements",
	compSalary:     "Salary expectations diverge from the proposed range",
	compExperience: "Experience level is out of step with the requirement",
	compLocation:   "Geographic constraints may complicate the hire",
}

var candidateBaseLines = map[component]string{
	compSemantic:   "Highlight transferable skills during the interview",
	compSalary:     "Clarify your salary flexibility early in the process",
	compExperience: "Emphasize recent achievements that offset the experience gap",
	compLocation:   "Assess the commute realistically before committing",
}

var companyBaseLines = map[component]string{
	compSemantic:   "Plan training or accompaniment to close the skills gap",
	compSalary:     "Review the positioning of the proposed salary range",
	compExperience: "Adjust the required experience or plan mentoring",
	compLocation:   "Consider remote work or relocation support",
}

type reasonKey struct {
	comp   component
	reason domain.ListeningReason
}

var candidateReasonLines = map[reasonKey]string{
	{compSemantic, domain.ReasonRoleMismatch}:    "Target roles closer to your core skills",
	{compSalary, domain.ReasonSalaryTooLow}:      "Quantify the compensation gap you want to close",
	{compLocation, domain.ReasonLocationTooFar}:  "Negotiate remote days to offset the distance",
	{compSemantic, domain.ReasonLackOfProspects}: "Ask about the growth path attached to this role",
	{compSalary, domain.ReasonLackOfFlexibility}: "Weigh benefits and flexibility against raw salary",
}

var companyReasonLines = map[reasonKey]string{
	{compSalary, domain.ReasonSalaryTooLow}:        "Consider additional budget or compensatory benefits",
	{compSemantic, domain.ReasonRoleMismatch}:      "Clarify the mission content to avoid another mismatch",
	{compLocation, domain.ReasonLocationTooFar}:    "Offer partial remote work to widen the candidate pool",
	{compLocation, domain.ReasonLackOfFlexibility}: "Highlight flexibility and work-life benefits in the offer",
}

const (
	urgencyCompanyLine   = "Accelerate the recruitment process"
	urgencyCandidateLine = "Rapid availability is valued"
)

// Recommendations is the synthesized advice for one match.
type Recommendations struct {
	Candidate []string
	Company   []string
	Strengths []string
	Attention []string
}

// Synthesize derives the four bullet lists from the component results and
// the adaptive context. Deterministic for identical inputs.
func Synthesize(components domain.ComponentSet, reason domain.ListeningReason, urgency domain.HiringUrgency) Recommendations {
	scores := map[component]float64{
		compSemantic:   components.Semantic.Score,
		compSalary:     components.Salary.Score,
		compExperience: components.Experience.Score,
		compLocation:   components.Location.Score,
	}

	rec := Recommendations{
		Candidate: []string{},
		Company:   []string{},
		Strengths: []string{},
		Attention: []string{},
	}

	for _, c := range componentOrder {
		if scores[c] >= strengthThreshold {
			rec.Strengths = append(rec.Strengths, strengthLines[c])
		}
		if scores[c] < attentionThreshold {
			rec.Attention = append(rec.Attention, attentionLines[c])
			rec.Candidate = append(rec.Candidate, candidateBaseLines[c])
			rec.Company = append(rec.Company, companyBaseLines[c])
		}
	}

	for _, c := range componentOrder {
		if scores[c] >= attentionThreshold {
			continue
		}
		if line, ok := candidateReasonLines[reasonKey{c, reason}]; ok {
			rec.Candidate = append(rec.Candidate, line)
		}
		if line, ok := companyReasonLines[reasonKey{c, reason}]; ok {
			rec.Company = append(rec.Company, line)
		}
	}

	if urgency == domain.UrgencyCritical {
		rec.Company = append(rec.Company, urgencyCompanyLine)
		rec.Candidate = append(rec.Candidate, urgencyCandidateLine)
	}

	return rec
}
