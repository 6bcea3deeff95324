package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const labCSV = "Mes,Material,Material Agrupado,Local,Microrganismo,Tipo Microrganismo,AMICACINA,Mecanismos de Resistência - ESBL\n" +
	"1,Urina,Urina,UTI,Escherichia coli,Bactéria,Sensível,Positivo\n" +
	"1,Urina,Urina,UTI,Escherichia coli,Bactéria,Resistente,\n" +
	"2,Sangue,Sangue,Enfermaria,Escherichia coli,Bactéria,,Negativo\n" +
	"2,Sangue,Sangue,UTI,Candida albicans,Fungo,,\n"

// resetFlags clears values and Changed state that persist between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execCmd(args ...string) error {
	resetFlags(rootCmd)
	cfg = nil
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func runCmd(t *testing.T, args ...string) {
	t.Helper()
	if err := execCmd(args...); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

// setup isolates HOME and writes the lab fixture.
func setup(t *testing.T) (home, dataset string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	dataset = filepath.Join(home, "lab.csv")
	if err := os.WriteFile(dataset, []byte(labCSV), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return home, dataset
}

func readOut(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(b)
}

func TestCLI_SummaryJSON(t *testing.T) {
	home, ds := setup(t)
	out := filepath.Join(home, "summary.json")
	runCmd(t, "summary", ds, "--format", "json", "-o", out)

	var doc struct {
		Kind     string `json:"kind"`
		Total    int    `json:"total"`
		Filtered int    `json:"filtered"`
		Result   struct {
			PerType map[string]int `json:"per_type"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(readOut(t, out)), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Kind != "summary" || doc.Total != 4 || doc.Filtered != 4 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Result.PerType["Bactéria"] != 3 || doc.Result.PerType["Fungo"] != 1 {
		t.Fatalf("per type = %v", doc.Result.PerType)
	}
}

func TestCLI_SensitivityAndResistance(t *testing.T) {
	home, ds := setup(t)
	sens := filepath.Join(home, "sens.md")
	runCmd(t, "sensitivity", ds, "--location", "UTI", "-o", sens)
	body := readOut(t, sens)
	for _, want := range []string{"Filters: location=UTI", "Records: 3 of 4", "AMICACINA: 50%"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in:\n%s", want, body)
		}
	}

	res := filepath.Join(home, "res.md")
	runCmd(t, "resistance", ds, "--type", "Bactéria", "-o", res)
	body = readOut(t, res)
	if !strings.Contains(body, "ESBL: 33%") || !strings.Contains(body, "AMPC: 0%") {
		t.Fatalf("unexpected resistance report:\n%s", body)
	}
}

func TestCLI_PrevalenceWithFilterPair(t *testing.T) {
	home, ds := setup(t)
	out := filepath.Join(home, "prev.md")
	runCmd(t, "prevalence", ds, "--filter", "OrganismType=Fungo", "-o", out)
	body := readOut(t, out)
	if !strings.Contains(body, "1. Candida albicans [Fungo]: 1 (100.0%)") || strings.Contains(body, "Escherichia") {
		t.Fatalf("unexpected prevalence:\n%s", body)
	}

	// "todos" leaves the field unconstrained.
	runCmd(t, "prevalence", ds, "--type", "todos", "-o", out)
	if body := readOut(t, out); !strings.Contains(body, "Filters: none") || !strings.Contains(body, "Escherichia coli") {
		t.Fatalf("unexpected unfiltered prevalence:\n%s", body)
	}
}

func TestCLI_UnknownFilterField(t *testing.T) {
	_, ds := setup(t)
	err := execCmd("summary", ds, "--filter", "locaton=UTI")
	if err == nil || !strings.Contains(err.Error(), `did you mean "location"`) {
		t.Fatalf("expected suggestion error, got %v", err)
	}
	if err := execCmd("summary", ds, "--filter", "UTI"); err == nil {
		t.Fatalf("expected error for malformed --filter")
	}
}

func TestCLI_OptionsRecordsEvolution(t *testing.T) {
	home, ds := setup(t)
	opts := filepath.Join(home, "opts.md")
	runCmd(t, "options", ds, "location", "-o", opts)
	if body := readOut(t, opts); !strings.Contains(body, "- Enfermaria\n- UTI\n") {
		t.Fatalf("unexpected options:\n%s", body)
	}

	recs := filepath.Join(home, "recs.md")
	runCmd(t, "records", ds, "--limit", "2", "-o", recs)
	if body := readOut(t, recs); !strings.Contains(body, "[RECORDS] (2 shown)") {
		t.Fatalf("unexpected records:\n%s", body)
	}

	evo := filepath.Join(home, "evo.md")
	runCmd(t, "evolution", ds, "--antibiotic", "AMICACINA", "-o", evo)
	body := readOut(t, evo)
	if !strings.Contains(body, "- Month 1 (n=2)") || !strings.Contains(body, "AMICACINA: 50%") {
		t.Fatalf("unexpected evolution:\n%s", body)
	}

	dist := filepath.Join(home, "dist.md")
	runCmd(t, "distribution", ds, "--field", "location", "-o", dist)
	if body := readOut(t, dist); !strings.Contains(body, "- UTI: 3 (75.0%)") {
		t.Fatalf("unexpected distribution:\n%s", body)
	}
}

func TestCLI_DashboardYAML(t *testing.T) {
	home, ds := setup(t)
	out := filepath.Join(home, "dash.yaml")
	runCmd(t, "dashboard", ds, "--month", "1", "--format", "yaml", "-o", out)
	body := readOut(t, out)
	for _, want := range []string{"kind: dashboard", "filtered: 2", "fingerprint:", "sensitivity:", "evolution:"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in:\n%s", want, body)
		}
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home, _ := setup(t)
	runCmd(t, "config", "set", "top_n", "7")
	if _, err := os.Stat(filepath.Join(home, ".microlab", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	if err := execCmd("config", "set", "output_format", "html"); err == nil {
		t.Fatalf("expected validation error for output_format")
	}
	if err := execCmd("config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	runCmd(t, "config", "show")
	if !strings.Contains(buf.String(), "top_n: 7") {
		t.Fatalf("expected saved top_n, got:\n%s", buf.String())
	}
}

func TestCLI_EvolutionColumnOutsideConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ds := filepath.Join(home, "tige.csv")
	csv := "Mes,Material,Material Agrupado,Local,Microrganismo,Tipo Microrganismo,TIGECICLINA\n" +
		"3,Urina,Urina,UTI,Escherichia coli,Bactéria,Sensível\n" +
		"3,Urina,Urina,UTI,Escherichia coli,Bactéria,Sensível\n"
	if err := os.WriteFile(ds, []byte(csv), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	out := filepath.Join(home, "evo.md")
	runCmd(t, "evolution", ds, "--antibiotic", "TIGECICLINA", "-o", out)
	body := readOut(t, out)
	if !strings.Contains(body, "TIGECICLINA: 100%") || strings.Contains(body, "not tested") {
		t.Fatalf("results in a column outside the config were dropped:\n%s", body)
	}
}
