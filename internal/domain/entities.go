// Package domain holds the canonical profile model, the matching response
// model, and the ports consumed by the matching engine. It is free of
// infrastructure concerns; adapters depend on it, never the reverse.
package domain

import (
	"fmt"
	"regexp"
	"time"
)

// PersonalInfo identifies the candidate.
type PersonalInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Age       int    `json:"age,omitempty"`
}

// Experience is one past position, newest first in CandidateProfile.
// Chronological order is informational only; scoring does not depend on it.
type Experience struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Duration       string   `json:"duration"`
	Description    string   `json:"description,omitempty"`
	SkillsAcquired []string `json:"skills_acquired,omitempty"`
}

// Skills groups the candidate's declared abilities.
type Skills struct {
	Technical      []string          `json:"technical,omitempty"`
	Software       []string          `json:"software,omitempty"`
	Languages      map[string]string `json:"languages,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
}

// Expectations captures what the candidate wants from the next role.
// SalaryMin/SalaryMax are yearly amounts in euros with SalaryMin < SalaryMax.
type Expectations struct {
	SalaryMin         int            `json:"salary_min"`
	SalaryMax         int            `json:"salary_max"`
	PreferredLocation string         `json:"preferred_location,omitempty"`
	MaxDistanceKm     int            `json:"max_distance_km,omitempty"`
	RemoteAccepted    bool           `json:"remote_accepted"`
	PreferredSectors  []string       `json:"preferred_sectors,omitempty"`
	AcceptedContracts []ContractKind `json:"accepted_contracts,omitempty"`
}

// Motivation is the candidate's self-declared reason for listening to offers.
type Motivation struct {
	ListeningReason    ListeningReason `json:"listening_reason"`
	PrimaryMotivations []string        `json:"primary_motivations,omitempty"`
}

// CandidateProfile is the canonical demand-side profile. Profiles are
// immutable inputs to a matching operation; the engine never mutates them.
type CandidateProfile struct {
	Personal        PersonalInfo    `json:"personal"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Experiences     []Experience    `json:"experiences,omitempty"`
	Skills          Skills          `json:"skills"`
	Expectations    Expectations    `json:"expectations"`
	Motivation      Motivation      `json:"motivation"`
	ParseConfidence float64         `json:"parse_confidence"`
	Source          string          `json:"source,omitempty"`
	ParsedAt        time.Time       `json:"parsed_at,omitempty"`
}

// CompanyInfo describes the employing organization.
type CompanyInfo struct {
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Location    string `json:"location"`
	Size        string `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
}

// JobOffer describes the opening. SalaryMin/SalaryMax are yearly euros;
// zero means unspecified (min defaults to 0, max to unbounded when scoring).
type JobOffer struct {
	Title               string       `json:"title"`
	Location            string       `json:"location"`
	ContractKind        ContractKind `json:"contract_kind"`
	SalaryMin           int          `json:"salary_min,omitempty"`
	SalaryMax           int          `json:"salary_max,omitempty"`
	Description         string       `json:"description,omitempty"`
	PrimaryMissions     []string     `json:"primary_missions,omitempty"`
	RequiredCompetences []string     `json:"required_competences,omitempty"`
}

// Requirements lists what the company demands from applicants.
// ExperienceRequired is free-form ("5 years - 10 years", "5 - 10 ans",
// "junior"); the experience scorer parses it with defined fallbacks.
type Requirements struct {
	ExperienceRequired   string            `json:"experience_required,omitempty"`
	MandatoryCompetences []string          `json:"mandatory_competences,omitempty"`
	DesiredCompetences   []string          `json:"desired_competences,omitempty"`
	RequiredLanguages    map[string]string `json:"required_languages,omitempty"`
	RequiredEducation    []string          `json:"required_education,omitempty"`
}

// WorkConditions describes the working environment on offer.
type WorkConditions struct {
	RemotePossible bool     `json:"remote_possible"`
	Hours          string   `json:"hours,omitempty"`
	Benefits       []string `json:"benefits,omitempty"`
	Environment    string   `json:"environment,omitempty"`
}

// Hiring carries the company-side matching context.
type Hiring struct {
	Urgency             HiringUrgency `json:"urgency"`
	PriorityCriteria    []string      `json:"priority_criteria,omitempty"`
	EliminatoryCriteria []string      `json:"eliminatory_criteria,omitempty"`
	Openings            int           `json:"openings,omitempty"`
}

// CompanyProfile is the canonical supply-side profile.
type CompanyProfile struct {
	Company         CompanyInfo    `json:"company"`
	Job             JobOffer       `json:"job"`
	Requirements    Requirements   `json:"requirements"`
	WorkConditions  WorkConditions `json:"work_conditions"`
	Hiring          Hiring         `json:"hiring"`
	ParseConfidence float64        `json:"parse_confidence"`
	Source          string         `json:"source,omitempty"`
	ParsedAt        time.Time      `json:"parsed_at,omitempty"`
}

const maxNameLen = 50

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// ValidateForMatching checks the minimal coherence the engine needs before
// scoring. Failures here short-circuit the match into a zero response; they
// never surface as an error from the match operation itself.
func ValidateForMatching(c CandidateProfile, e CompanyProfile) error {
	if c.Personal.FirstName == "" {
		return fmt.Errorf("%w: candidate first name required", ErrInvalidArgument)
	}
	if len(c.Personal.FirstName) > maxNameLen || len(c.Personal.LastName) > maxNameLen {
		return fmt.Errorf("%w: candidate name exceeds %d characters", ErrInvalidArgument, maxNameLen)
	}
	if c.Personal.Email == "" || !emailRe.MatchString(c.Personal.Email) {
		return fmt.Errorf("%w: candidate email missing or malformed", ErrInvalidArgument)
	}
	if c.Expectations.SalaryMin >= c.Expectations.SalaryMax {
		return fmt.Errorf("%w: candidate salary range incoherent (min >= max)", ErrInvalidArgument)
	}
	if !c.Motivation.ListeningReason.Valid() {
		return fmt.Errorf("%w: listening reason %q", ErrInvalidArgument, c.Motivation.ListeningReason)
	}
	if !e.Hiring.Urgency.Valid() {
		return fmt.Errorf("%w: hiring urgency %q", ErrInvalidArgument, e.Hiring.Urgency)
	}
	if e.Job.SalaryMin > 0 && e.Job.SalaryMax > 0 && e.Job.SalaryMin >= e.Job.SalaryMax {
		return fmt.Errorf("%w: job salary range incoherent (min >= max)", ErrInvalidArgument)
	}
	return nil
}
