package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

// Fingerprints are deterministic hashes over a stable serialization of the
// profiles: timestamps and parse provenance are excluded, and set-typed
// fields are sorted so reordering does not change the key. forceAdaptive
// and deadlineMs are lookup knobs, not inputs, so they are not part of the
// key.

// CacheKey builds the cache key for a matching request.
func CacheKey(c domain.CandidateProfile, e domain.CompanyProfile) string {
	return "match_" + CandidateFingerprint(c) + "_" + CompanyFingerprint(e)
}

// CandidateFingerprint hashes the scoring-relevant candidate fields.
func CandidateFingerprint(c domain.CandidateProfile) string {
	c.ParsedAt = time.Time{}
	c.Source = ""
	c.ParseConfidence = 0
	c.Skills.Technical = sortedCopy(c.Skills.Technical)
	c.Skills.Software = sortedCopy(c.Skills.Software)
	c.Skills.Certifications = sortedCopy(c.Skills.Certifications)
	c.Expectations.PreferredSectors = sortedCopy(c.Expectations.PreferredSectors)
	c.Expectations.AcceptedContracts = sortedContracts(c.Expectations.AcceptedContracts)
	exps := make([]domain.Experience, len(c.Experiences))
	copy(exps, c.Experiences)
	for i := range exps {
		exps[i].SkillsAcquired = sortedCopy(exps[i].SkillsAcquired)
	}
	c.Experiences = exps
	return hashJSON(c)
}

// CompanyFingerprint hashes the scoring-relevant company fields.
func CompanyFingerprint(e domain.CompanyProfile) string {
	e.ParsedAt = time.Time{}
	e.Source = ""
	e.ParseConfidence = 0
	e.Job.RequiredCompetences = sortedCopy(e.Job.RequiredCompetences)
	e.Requirements.MandatoryCompetences = sortedCopy(e.Requirements.MandatoryCompetences)
	e.Requirements.DesiredCompetences = sortedCopy(e.Requirements.DesiredCompetences)
	e.Requirements.RequiredEducation = sortedCopy(e.Requirements.RequiredEducation)
	e.WorkConditions.Benefits = sortedCopy(e.WorkConditions.Benefits)
	e.Hiring.EliminatoryCriteria = sortedCopy(e.Hiring.EliminatoryCriteria)
	return hashJSON(e)
}

func hashJSON(v any) string {
	// Struct field order is fixed and map keys marshal sorted, so the
	// serialization is stable.
	b, err := json.Marshal(v)
	if err != nil {
		// Profiles are plain data; marshal cannot realistically fail.
		return "unhashable"
	}
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func sortedCopy(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

func sortedContracts(in []domain.ContractKind) []domain.ContractKind {
	if len(in) == 0 {
		return in
	}
	out := make([]domain.ContractKind, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
