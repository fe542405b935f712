package textx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/ai-match-engine/pkg/textx"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "paris 9e", textx.Normalize("  Paris 9e "))
	assert.Equal(t, "", textx.Normalize("   "))
}

func TestTokens(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"general", "accounting"}, textx.Tokens("  General   Accounting "))
	assert.Empty(t, textx.Tokens(""))
}

func TestTokenSet(t *testing.T) {
	t.Parallel()
	set := textx.TokenSet("Paie paie Payroll")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "paie")
	assert.Contains(t, set, "payroll")
}

func TestCommonTokens(t *testing.T) {
	t.Parallel()
	a := textx.TokenSet("general accounting payroll")
	b := textx.TokenSet("payroll management accounting")
	assert.Equal(t, 2, textx.CommonTokens(a, b))
	assert.Equal(t, 2, textx.CommonTokens(b, a))
	assert.Zero(t, textx.CommonTokens(a, textx.TokenSet("")))
}

func TestContainsEitherWay(t *testing.T) {
	t.Parallel()
	cases := []struct {
		a, b string
		want bool
	}{
		{"Paris 9e", "paris", true},
		{"lyon", "Lyon Part-Dieu", true},
		{"Lyon", "Grenoble", false},
		{"", "lyon", false},
		{"lyon", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textx.ContainsEitherWay(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hello\tworld", textx.SanitizeText("hello\tworld\x00"))
	assert.Equal(t, "line1\nline2", textx.SanitizeText(" line1\nline2 \x7f"))
	assert.Equal(t, "", textx.SanitizeText("\x01\x02"))
}
