package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher classifies a free-text lab result.
type Matcher interface {
	Match(result string) bool
}

// MatcherFunc adapts a plain function to Matcher.
type MatcherFunc func(result string) bool

func (f MatcherFunc) Match(result string) bool { return f(result) }

// Vocabulary is a case-insensitive substring matcher over a set of terms.
type Vocabulary struct {
	terms       []string
	foldAccents bool
}

// ContainsAny matches results containing any of terms, ignoring case.
func ContainsAny(terms ...string) Vocabulary {
	return newVocabulary(terms, false)
}

// ContainsAnyFolded is ContainsAny that also ignores diacritics, so
// "Sensivel" matches the term "sensível".
func ContainsAnyFolded(terms ...string) Vocabulary {
	return newVocabulary(terms, true)
}

func newVocabulary(terms []string, foldAccents bool) Vocabulary {
	v := Vocabulary{foldAccents: foldAccents}
	for _, t := range terms {
		n := normalizeResult(t, foldAccents)
		if n != "" {
			v.terms = append(v.terms, n)
		}
	}
	return v
}

// Terms returns the normalized terms.
func (v Vocabulary) Terms() []string { return append([]string(nil), v.terms...) }

// Match reports whether result contains any term. Empty results never match.
func (v Vocabulary) Match(result string) bool {
	n := normalizeResult(result, v.foldAccents)
	if n == "" {
		return false
	}
	for _, t := range v.terms {
		if strings.Contains(n, t) {
			return true
		}
	}
	return false
}

func normalizeResult(s string, foldAccents bool) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = cases.Fold().String(s)
	if foldAccents {
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if out, _, err := transform.String(t, s); err == nil {
			s = out
		}
	}
	return s
}

// ResultVocabulary bundles the result vocabularies used by the standing
// cross-tab and evolution configurations.
type ResultVocabulary struct {
	Sensitive Matcher
	Resistant Matcher
	Mechanism Matcher
}

// DefaultVocabulary returns the Portuguese result vocabulary of the export.
func DefaultVocabulary(foldAccents bool) ResultVocabulary {
	return NewVocabulary([]string{"sensível"}, []string{"resistente"}, []string{"positivo", "sim", "presente"}, foldAccents)
}

// NewVocabulary builds a ResultVocabulary from term lists.
func NewVocabulary(sensitive, resistant, mechanism []string, foldAccents bool) ResultVocabulary {
	build := ContainsAny
	if foldAccents {
		build = ContainsAnyFolded
	}
	return ResultVocabulary{
		Sensitive: build(sensitive...),
		Resistant: build(resistant...),
		Mechanism: build(mechanism...),
	}
}
