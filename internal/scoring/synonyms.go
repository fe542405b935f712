// Package scoring implements the four matching scorers, the adaptive
// weighting engine, and the recommendation synthesizer. Everything here is
// pure computation: no I/O except the location scorer's optional geo
// delegation, and no mutable package state after initialization.
package scoring

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/ai-match-engine/pkg/textx"
)

//go:embed synonyms.yaml
var synonymsYAML []byte

// SynonymTable maps canonical concept keys to alternate spellings. It is
// immutable after construction and safe for concurrent reads.
type SynonymTable struct {
	Version  string
	concepts map[string][]string
}

type synonymsFile struct {
	Version  string              `yaml:"version"`
	Concepts map[string][]string `yaml:"concepts"`
}

// ParseSynonyms builds a table from YAML. Keys and alternates are
// normalized to lowercase.
func ParseSynonyms(data []byte) (*SynonymTable, error) {
	var f synonymsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("op=synonyms.parse: %w", err)
	}
	t := &SynonymTable{Version: f.Version, concepts: make(map[string][]string, len(f.Concepts))}
	for key, alts := range f.Concepts {
		norm := make([]string, 0, len(alts))
		for _, a := range alts {
			norm = append(norm, textx.Normalize(a))
		}
		t.concepts[textx.Normalize(key)] = norm
	}
	return t, nil
}

var defaultSynonyms = mustParseSynonyms()

func mustParseSynonyms() *SynonymTable {
	t, err := ParseSynonyms(synonymsYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultSynonyms returns the built-in table loaded at process start.
func DefaultSynonyms() *SynonymTable { return defaultSynonyms }

// conceptsFor returns the canonical keys the term belongs to. A term
// belongs to a concept when it matches the key or any alternate,
// substring-either-way and case-insensitive.
func (t *SynonymTable) conceptsFor(term string) map[string]struct{} {
	keys := make(map[string]struct{})
	for key, alts := range t.concepts {
		if textx.ContainsEitherWay(term, key) {
			keys[key] = struct{}{}
			continue
		}
		for _, a := range alts {
			if textx.ContainsEitherWay(term, a) {
				keys[key] = struct{}{}
				break
			}
		}
	}
	return keys
}

// SameConcept reports whether a and b share at least one canonical key.
func (t *SynonymTable) SameConcept(a, b string) bool {
	ka := t.conceptsFor(a)
	if len(ka) == 0 {
		return false
	}
	for key := range t.conceptsFor(b) {
		if _, ok := ka[key]; ok {
			return true
		}
	}
	return false
}
