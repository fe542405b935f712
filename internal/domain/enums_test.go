package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

func TestListeningReason_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, reason := range domain.ListeningReasons() {
		b, err := json.Marshal(reason)
		require.NoError(t, err)
		var back domain.ListeningReason
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, reason, back)
	}
}

func TestListeningReason_RejectsUnknown(t *testing.T) {
	t.Parallel()
	cases := []string{`"BORED"`, `"salary_too_low"`, `""`, `"SALARY"`}
	for _, raw := range cases {
		var r domain.ListeningReason
		err := json.Unmarshal([]byte(raw), &r)
		require.Error(t, err, "input %s", raw)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument), "input %s", raw)
	}
}

func TestHiringUrgency_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, u := range domain.HiringUrgencies() {
		b, err := json.Marshal(u)
		require.NoError(t, err)
		var back domain.HiringUrgency
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, u, back)
	}
}

func TestHiringUrgency_RejectsUnknown(t *testing.T) {
	t.Parallel()
	var u domain.HiringUrgency
	err := json.Unmarshal([]byte(`"ASAP"`), &u)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestContractKind_ClosedSet(t *testing.T) {
	t.Parallel()
	valid := []domain.ContractKind{
		domain.ContractPermanent, domain.ContractFixedTerm,
		domain.ContractFreelance, domain.ContractInterim,
	}
	for _, k := range valid {
		b, err := json.Marshal(k)
		require.NoError(t, err)
		var back domain.ContractKind
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, k, back)
	}

	var k domain.ContractKind
	err := json.Unmarshal([]byte(`"APPRENTICESHIP"`), &k)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestExperienceLevel_RejectsUnknown(t *testing.T) {
	t.Parallel()
	var l domain.ExperienceLevel
	err := json.Unmarshal([]byte(`"PRINCIPAL"`), &l)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	require.NoError(t, json.Unmarshal([]byte(`"SENIOR"`), &l))
	assert.Equal(t, domain.LevelSenior, l)
}

func TestEnumRejection_SurfacesThroughStructDecode(t *testing.T) {
	t.Parallel()
	var m domain.Motivation
	err := json.Unmarshal([]byte(`{"listening_reason":"WANDERLUST"}`), &m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}
