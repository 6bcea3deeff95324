// Package report renders analysis results as Markdown, JSON or YAML.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Result kinds.
const (
	KindSummary      = "summary"
	KindPrevalence   = "prevalence"
	KindSensitivity  = "sensitivity"
	KindResistance   = "resistance"
	KindEvolution    = "evolution"
	KindDistribution = "distribution"
	KindOptions      = "options"
	KindRecords      = "records"
	KindDashboard    = "dashboard"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document wraps one result with the view it was computed over.
type Document struct {
	Kind     string                `json:"kind" yaml:"kind"`
	Source   string                `json:"source" yaml:"source"`
	Total    int                   `json:"total" yaml:"total"`
	Filtered int                   `json:"filtered" yaml:"filtered"`
	Filters  []analysis.Constraint `json:"filters" yaml:"filters"`
	// Field names the grouped field for distribution and options results.
	Field  analysis.Field `json:"field,omitempty" yaml:"field,omitempty"`
	Result any            `json:"result" yaml:"result"`
}

// ParseFormat normalizes a format name. Empty means Markdown.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	case "yml", FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (use markdown|json|yaml)", s)
	}
}

// Render writes doc to w in the given format.
func Render(w io.Writer, format string, doc Document) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		b = append(b, '\n')
		_, err = w.Write(b)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, Markdown(doc))
		return err
	}
}

// Bytes renders doc into memory.
func Bytes(format string, doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, format, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
