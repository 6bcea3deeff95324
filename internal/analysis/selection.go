package analysis

import (
	"sort"
	"strings"
)

// Any is the "no constraint" sentinel. Selecting it for a field clears that field.
const Any = ""

// Constraint is one active field=value restriction.
type Constraint struct {
	Field Field  `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
}

// Selection maps filterable fields to a selected value. The zero value and
// NewSelection() are the default state with every field unconstrained.
// Selections are immutable: With and Without return new values.
type Selection struct {
	values map[Field]string
}

// NewSelection returns the default, unconstrained selection.
func NewSelection() Selection { return Selection{} }

// With returns a copy of s with f constrained to value. Any clears f.
func (s Selection) With(f Field, value string) Selection {
	if value == Any {
		return s.Without(f)
	}
	next := make(map[Field]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[f] = value
	return Selection{values: next}
}

// Without returns a copy of s with f unconstrained.
func (s Selection) Without(f Field) Selection {
	if _, ok := s.values[f]; !ok {
		return s
	}
	next := make(map[Field]string, len(s.values))
	for k, v := range s.values {
		if k != f {
			next[k] = v
		}
	}
	return Selection{values: next}
}

// Get returns the selected value for f.
func (s Selection) Get(f Field) (string, bool) {
	v, ok := s.values[f]
	return v, ok
}

// IsEmpty reports whether no field is constrained.
func (s Selection) IsEmpty() bool { return len(s.values) == 0 }

// Active lists the constraints, known fields first in canonical order, then
// unknown fields by name.
func (s Selection) Active() []Constraint {
	if len(s.values) == 0 {
		return nil
	}
	out := make([]Constraint, 0, len(s.values))
	for _, f := range Fields {
		if v, ok := s.values[f]; ok {
			out = append(out, Constraint{Field: f, Value: v})
		}
	}
	var unknown []Constraint
	for f, v := range s.values {
		if !f.Known() {
			unknown = append(unknown, Constraint{Field: f, Value: v})
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].Field < unknown[j].Field })
	return append(out, unknown...)
}

// Equal reports whether both selections constrain the same fields to the same values.
func (s Selection) Equal(o Selection) bool {
	if len(s.values) != len(o.values) {
		return false
	}
	for k, v := range s.values {
		if ov, ok := o.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Validate returns an *UnknownFieldError for the first constraint on a field
// outside the known set. ApplyFilters itself does not validate: such a
// constraint simply matches nothing.
func (s Selection) Validate() error {
	for _, c := range s.Active() {
		if !c.Field.Known() {
			return &UnknownFieldError{Field: string(c.Field), Suggestion: suggestField(string(c.Field))}
		}
	}
	return nil
}

// ParseSelection builds a validated selection from name=value pairs. Field
// names match case-insensitively; empty values are left unconstrained.
func ParseSelection(pairs map[string]string) (Selection, error) {
	sel := NewSelection()
	names := make([]string, 0, len(pairs))
	for k := range pairs {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		f, ok := lookupField(name)
		if !ok {
			return Selection{}, &UnknownFieldError{Field: name, Suggestion: suggestField(name)}
		}
		sel = sel.With(f, strings.TrimSpace(pairs[name]))
	}
	return sel, nil
}

// ParseField resolves a field name case-insensitively.
func ParseField(name string) (Field, error) {
	f, ok := lookupField(name)
	if !ok {
		return "", &UnknownFieldError{Field: name, Suggestion: suggestField(name)}
	}
	return f, nil
}

func lookupField(name string) (Field, bool) {
	n := strings.TrimSpace(name)
	for _, f := range Fields {
		if strings.EqualFold(string(f), n) {
			return f, true
		}
	}
	return "", false
}
