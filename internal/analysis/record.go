// Package analysis implements the filter, aggregation and cross-tabulation engine
// over laboratory sample records.
//
// Two "no data" conventions coexist and must not be conflated by callers:
//   - Cross-tabulation cells (BuildCrossTab) use a null Cell when a percentage has
//     no denominator.
//   - Summary percents, prevalence percents and evolution points (BuildEvolution)
//     fall back to 0 when the denominator is 0, so charts stay dense.
//
// A 0 from the second group therefore does not mean "measured 0%".
package analysis

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Field names a categorical record attribute that can be filtered on.
type Field string

const (
	FieldMonth           Field = "month"
	FieldMaterial        Field = "material"
	FieldGroupedMaterial Field = "groupedMaterial"
	FieldLocation        Field = "location"
	FieldMicroorganism   Field = "microorganism"
	FieldOrganismType    Field = "organismType"
)

// Fields lists every known field in canonical order.
var Fields = []Field{
	FieldMonth,
	FieldMaterial,
	FieldGroupedMaterial,
	FieldLocation,
	FieldMicroorganism,
	FieldOrganismType,
}

// Known reports whether f belongs to the closed field set.
func (f Field) Known() bool {
	for _, k := range Fields {
		if k == f {
			return true
		}
	}
	return false
}

// Row is one raw input row keyed by source header.
type Row map[string]string

// Record is one laboratory sample result.
type Record struct {
	Month           string `json:"month" yaml:"month"`
	Material        string `json:"material" yaml:"material"`
	GroupedMaterial string `json:"grouped_material" yaml:"grouped_material"`
	Location        string `json:"location" yaml:"location"`
	Microorganism   string `json:"microorganism" yaml:"microorganism"`
	OrganismType    string `json:"organism_type" yaml:"organism_type"`
	// Results holds lab results keyed by antibiotic or mechanism column name.
	Results map[string]string `json:"results,omitempty" yaml:"results,omitempty"`
}

// Value returns the categorical value for f. ok is false for unknown fields.
func (r Record) Value(f Field) (string, bool) {
	switch f {
	case FieldMonth:
		return r.Month, true
	case FieldMaterial:
		return r.Material, true
	case FieldGroupedMaterial:
		return r.GroupedMaterial, true
	case FieldLocation:
		return r.Location, true
	case FieldMicroorganism:
		return r.Microorganism, true
	case FieldOrganismType:
		return r.OrganismType, true
	}
	return "", false
}

// Result returns the raw result for column, or "" when untested.
func (r Record) Result(column string) string {
	if r.Results == nil {
		return ""
	}
	return r.Results[column]
}

// MonthNumber coerces the month field to an integer in 1..12. Exports usually
// cover the first half of the year only, but any calendar month is accepted.
func (r Record) MonthNumber() (int, bool) {
	return parseMonth(r.Month)
}

func parseMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	// cast parses with base 0, so "08" would be read as octal.
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return 0, false
	}
	m, err := cast.ToIntE(s)
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return m, true
}

// Schema maps record fields to source headers and names the result columns kept.
type Schema struct {
	Headers map[Field]string
	Results []string
}

// DefaultSchema returns the header layout of the laboratory export.
func DefaultSchema() Schema {
	results := make([]string, 0, len(DefaultAntibiotics)+len(EvolutionAntibiotics)+len(DefaultMechanisms))
	results = appendUnique(results, DefaultAntibiotics...)
	results = appendUnique(results, EvolutionAntibiotics...)
	results = appendUnique(results, DefaultMechanisms...)
	return Schema{
		Headers: map[Field]string{
			FieldMonth:           "Mes",
			FieldMaterial:        "Material",
			FieldGroupedMaterial: "Material Agrupado",
			FieldLocation:        "Local",
			FieldMicroorganism:   "Microrganismo",
			FieldOrganismType:    "Tipo Microrganismo",
		},
		Results: results,
	}
}

// Validate checks that every field has a header and result columns are unique.
func (s Schema) Validate() error {
	for _, f := range Fields {
		if strings.TrimSpace(s.Headers[f]) == "" {
			return fmt.Errorf("schema: no header configured for field %q", f)
		}
	}
	for f := range s.Headers {
		if !f.Known() {
			return &UnknownFieldError{Field: string(f), Suggestion: suggestField(string(f))}
		}
	}
	seen := make(map[string]struct{}, len(s.Results))
	for _, c := range s.Results {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("schema: empty result column name")
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("schema: duplicate result column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// NewRecord maps a raw row onto a Record. Missing headers read as empty.
func (s Schema) NewRecord(row Row) Record {
	get := func(f Field) string { return strings.TrimSpace(row[s.Headers[f]]) }
	rec := Record{
		Month:           get(FieldMonth),
		Material:        get(FieldMaterial),
		GroupedMaterial: get(FieldGroupedMaterial),
		Location:        get(FieldLocation),
		Microorganism:   get(FieldMicroorganism),
		OrganismType:    get(FieldOrganismType),
	}
	for _, c := range s.Results {
		v := strings.TrimSpace(row[c])
		if v == "" {
			continue
		}
		if rec.Results == nil {
			rec.Results = make(map[string]string, len(s.Results))
		}
		rec.Results[c] = v
	}
	return rec
}

func appendUnique(dst []string, vals ...string) []string {
	for _, v := range vals {
		dup := false
		for _, d := range dst {
			if d == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}
