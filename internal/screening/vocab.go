// Package screening implements the scoring and classification pipeline:
// skill/experience extraction, component scoring, tier classification, the
// JD quality checker and the recommendation composer. Everything here is
// pure computation; I/O lives in the adapters.
package screening

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// MatchStrategy selects how vocabulary terms are matched against text.
type MatchStrategy string

const (
	// MatchSubstring treats any case-insensitive substring occurrence as a
	// hit, so "java" matches inside "javascript". This mirrors the
	// historical behavior and is the default.
	MatchSubstring MatchStrategy = "substring"
	// MatchWholeWord requires the term to appear as a standalone token.
	MatchWholeWord MatchStrategy = "word"
)

// Vocabulary is an ordered, lower-cased list of skill labels with a
// matching strategy. Match output preserves vocabulary order.
type Vocabulary struct {
	Terms    []string      `yaml:"terms"`
	Strategy MatchStrategy `yaml:"match"`
}

// DefaultVocabulary returns the built-in skill list with substring matching.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Terms: []string{
			"python", "java", "sql", "excel", "aws", "react", "node",
			"tensorflow", "pandas", "numpy", "spark",
		},
		Strategy: MatchSubstring,
	}
}

// LoadVocabulary reads a YAML vocabulary file. Terms are lower-cased and
// blank entries dropped; an empty term list or unknown strategy is an error.
func LoadVocabulary(path string) (Vocabulary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("op=screening.LoadVocabulary: %w", err)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(b, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("op=screening.LoadVocabulary: %w", err)
	}
	terms := make([]string, 0, len(v.Terms))
	for _, t := range v.Terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return Vocabulary{}, fmt.Errorf("op=screening.LoadVocabulary: no terms in %s", path)
	}
	v.Terms = terms
	switch v.Strategy {
	case "":
		v.Strategy = MatchSubstring
	case MatchSubstring, MatchWholeWord:
	default:
		return Vocabulary{}, fmt.Errorf("op=screening.LoadVocabulary: unknown match strategy %q", v.Strategy)
	}
	return v, nil
}

// Match returns the subset of the vocabulary present in text, in vocabulary
// order. Empty text yields an empty result. Terms appear at most once since
// matching is a membership test per term.
func (v Vocabulary) Match(text string) []string {
	if text == "" || len(v.Terms) == 0 {
		return nil
	}
	lowered := strings.ToLower(text)
	var tokens map[string]struct{}
	if v.Strategy == MatchWholeWord {
		tokens = tokenize(lowered)
	}
	var out []string
	for _, term := range v.Terms {
		switch v.Strategy {
		case MatchWholeWord:
			if _, ok := tokens[term]; ok {
				out = append(out, term)
			}
		default:
			if strings.Contains(lowered, term) {
				out = append(out, term)
			}
		}
	}
	return out
}

func tokenize(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
