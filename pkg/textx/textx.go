// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
)

// Normalize lowercases and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tokens splits s into lowercased whitespace-delimited tokens.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// TokenSet returns the set of lowercased tokens in s.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokens(s) {
		set[t] = struct{}{}
	}
	return set
}

// CommonTokens counts tokens present in both sets.
func CommonTokens(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// ContainsEitherWay reports whether a contains b or b contains a,
// case-insensitively. Empty strings never match.
func ContainsEitherWay(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	// strip control chars outside tab/newline/carriage return
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
