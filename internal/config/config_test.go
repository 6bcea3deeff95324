package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
)

func TestLoadDefaultsFromExplicitFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte("top_n: 5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TopN != 5 {
		t.Fatalf("top_n = %d, want 5", c.TopN)
	}
	if c.EvolutionTopN != analysis.DefaultTopN || c.PrevalenceLimit != 15 {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Columns.Microorganism != "Microrganismo" || c.OutputFormat != "markdown" {
		t.Fatalf("unexpected columns/format: %+v", c.Columns)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	content := "output_format: yaml\ncolumns:\n  month: Month\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MICROLAB_OUTPUT_FORMAT", "json")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.OutputFormat != "json" {
		t.Fatalf("env should win, got %q", c.OutputFormat)
	}
	if c.Columns.Month != "Month" {
		t.Fatalf("nested file key not applied: %q", c.Columns.Month)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte("output_format: html\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil || !strings.Contains(err.Error(), "output_format") {
		t.Fatalf("expected output_format error, got %v", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.TopN = 7
	c.PrevalenceOthers = []string{"Fungo", "Levedura"}
	c.FoldAccents = true
	if err := Save(c, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TopN != 7 || !got.FoldAccents || len(got.PrevalenceOthers) != 2 || got.PrevalenceOthers[1] != "Levedura" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Global)
		want   string
	}{
		{"top_n", func(c *Global) { c.TopN = 0 }, "top_n"},
		{"evolution_top_n", func(c *Global) { c.EvolutionTopN = -1 }, "evolution_top_n"},
		{"antibiotics", func(c *Global) { c.Antibiotics = nil }, "antibiotics"},
		{"mechanisms", func(c *Global) { c.Mechanisms = nil }, "mechanisms"},
		{"primary", func(c *Global) { c.PrevalencePrimary = " " }, "prevalence_primary"},
		{"vocabulary", func(c *Global) { c.ResistantTerms = nil }, "vocabularies"},
		{"header", func(c *Global) { c.Columns.Location = "" }, "location"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDerivedEngineSettings(t *testing.T) {
	c := Default()
	s := c.Schema()
	if len(s.Results) != len(analysis.DefaultSchema().Results) {
		t.Fatalf("schema results = %d, want %d", len(s.Results), len(analysis.DefaultSchema().Results))
	}
	q := c.Quota()
	if q.Primary != "Bactéria" || q.PrimaryLimit != 15 || len(q.Others) != 1 {
		t.Fatalf("quota = %+v", q)
	}
	v := c.Vocabulary()
	if !v.Sensitive.Match("SENSÍVEL") || !v.Mechanism.Match("Presente") || v.Resistant.Match("Sensível") {
		t.Fatalf("vocabulary mismatch")
	}
}
