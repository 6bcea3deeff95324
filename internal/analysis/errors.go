package analysis

import (
	"fmt"
	"strings"

	lev "github.com/agnivade/levenshtein"
)

// UnknownFieldError reports a filter or schema field outside the known set.
type UnknownFieldError struct {
	Field      string
	Suggestion string
}

func (e *UnknownFieldError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown field %q (did you mean %q?)", e.Field, e.Suggestion)
	}
	return fmt.Sprintf("unknown field %q (known: %s)", e.Field, knownFieldList())
}

// maxSuggestDistance bounds how far a typo may be from a known field name.
const maxSuggestDistance = 4

func suggestField(name string) string {
	subject := strings.ToLower(strings.TrimSpace(name))
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, f := range Fields {
		d := lev.ComputeDistance(subject, strings.ToLower(string(f)))
		if d < bestDist {
			best, bestDist = string(f), d
		}
	}
	return best
}

func knownFieldList() string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
