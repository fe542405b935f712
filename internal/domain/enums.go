package domain

import (
	"encoding/json"
	"fmt"
)

// ListeningReason is the candidate's self-declared reason for considering a
// move. It drives the candidate-side weight adaptation.
type ListeningReason string

const (
	ReasonSalaryTooLow      ListeningReason = "SALARY_TOO_LOW"
	ReasonRoleMismatch      ListeningReason = "ROLE_MISMATCH"
	ReasonLocationTooFar    ListeningReason = "LOCATION_TOO_FAR"
	ReasonLackOfFlexibility ListeningReason = "LACK_OF_FLEXIBILITY"
	ReasonLackOfProspects   ListeningReason = "LACK_OF_PROSPECTS"
)

// ListeningReasons lists every valid reason in a stable order.
func ListeningReasons() []ListeningReason {
	return []ListeningReason{
		ReasonSalaryTooLow,
		ReasonRoleMismatch,
		ReasonLocationTooFar,
		ReasonLackOfFlexibility,
		ReasonLackOfProspects,
	}
}

// Valid reports whether r is a member of the closed set.
func (r ListeningReason) Valid() bool {
	switch r {
	case ReasonSalaryTooLow, ReasonRoleMismatch, ReasonLocationTooFar,
		ReasonLackOfFlexibility, ReasonLackOfProspects:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the closed set at the wire boundary.
func (r *ListeningReason) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := ListeningReason(s)
	if !v.Valid() {
		return fmt.Errorf("%w: listening reason %q", ErrInvalidArgument, s)
	}
	*r = v
	return nil
}

// HiringUrgency is the employer's timeline; it drives the company-side
// tolerance boost.
type HiringUrgency string

const (
	UrgencyCritical HiringUrgency = "CRITICAL"
	UrgencyUrgent   HiringUrgency = "URGENT"
	UrgencyNormal   HiringUrgency = "NORMAL"
	UrgencyLongTerm HiringUrgency = "LONG_TERM"
)

// HiringUrgencies lists every valid urgency in a stable order.
func HiringUrgencies() []HiringUrgency {
	return []HiringUrgency{UrgencyCritical, UrgencyUrgent, UrgencyNormal, UrgencyLongTerm}
}

// Valid reports whether u is a member of the closed set.
func (u HiringUrgency) Valid() bool {
	switch u {
	case UrgencyCritical, UrgencyUrgent, UrgencyNormal, UrgencyLongTerm:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the closed set at the wire boundary.
func (u *HiringUrgency) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := HiringUrgency(s)
	if !v.Valid() {
		return fmt.Errorf("%w: hiring urgency %q", ErrInvalidArgument, s)
	}
	*u = v
	return nil
}

// ContractKind is the employment contract type. The set is closed: exactly
// four kinds round-trip; adapters must map or reject anything else.
type ContractKind string

const (
	ContractPermanent ContractKind = "PERMANENT"
	ContractFixedTerm ContractKind = "FIXED_TERM"
	ContractFreelance ContractKind = "FREELANCE"
	ContractInterim   ContractKind = "INTERIM"
)

// Valid reports whether k is a member of the closed set.
func (k ContractKind) Valid() bool {
	switch k {
	case ContractPermanent, ContractFixedTerm, ContractFreelance, ContractInterim:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the closed set at the wire boundary.
func (k *ContractKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := ContractKind(s)
	if !v.Valid() {
		return fmt.Errorf("%w: contract kind %q", ErrInvalidArgument, s)
	}
	*k = v
	return nil
}

// ExperienceLevel is the candidate's seniority bracket.
type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "ENTRY"
	LevelJunior    ExperienceLevel = "JUNIOR"
	LevelConfirmed ExperienceLevel = "CONFIRMED"
	LevelSenior    ExperienceLevel = "SENIOR"
)

// Valid reports whether l is a member of the closed set.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelJunior, LevelConfirmed, LevelSenior:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the closed set at the wire boundary.
func (l *ExperienceLevel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := ExperienceLevel(s)
	if !v.Valid() {
		return fmt.Errorf("%w: experience level %q", ErrInvalidArgument, s)
	}
	*l = v
	return nil
}

// TransportMode is a travel mode understood by the geo service.
type TransportMode string

const (
	TransportCar    TransportMode = "CAR"
	TransportPublic TransportMode = "PUBLIC_TRANSPORT"
	TransportBike   TransportMode = "BIKE"
	TransportWalk   TransportMode = "WALK"
)
