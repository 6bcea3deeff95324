package analysis

import (
	"encoding/json"
	"testing"
)

func threeEColi(column string, values ...string) []Record {
	recs := make([]Record, len(values))
	for i, v := range values {
		recs[i] = sample("E. coli", "Bactéria", "1", map[string]string{column: v})
	}
	return recs
}

func TestSensitivityExcludesUntestedFromDenominator(t *testing.T) {
	recs := threeEColi("AMICACINA", "Sensível", "Resistente", "")
	tab := BuildCrossTab(recs, SensitivityConfig([]string{"AMICACINA"}, DefaultVocabulary(false), DefaultTopN))
	c, ok := tab.Cell("E. coli", "AMICACINA")
	if !ok || !c.Valid || c.Value != 50 {
		t.Fatalf("cell = %+v (found %v), want 50", c, ok)
	}
}

func TestResistanceCountsEveryRow(t *testing.T) {
	recs := threeEColi("MECANISMO", "", "", "")
	tab := BuildCrossTab(recs, ResistanceConfig([]string{"MECANISMO"}, DefaultVocabulary(false), DefaultTopN))
	c, ok := tab.Cell("E. coli", "MECANISMO")
	if !ok || !c.Valid || c.Value != 0 {
		t.Fatalf("cell = %+v (found %v), want valid 0", c, ok)
	}
	if tab.Rows[0].Records != 3 {
		t.Fatalf("records = %d, want 3", tab.Rows[0].Records)
	}
}

func TestResistanceRoundsToWholePercent(t *testing.T) {
	recs := threeEColi("Mecanismos de Resistência - ESBL", "Positivo", "", "negativo")
	tab := BuildCrossTab(recs, ResistanceConfig(DefaultMechanisms, DefaultVocabulary(false), DefaultTopN))
	c, _ := tab.Cell("E. coli", "Mecanismos de Resistência - ESBL")
	if !c.Valid || c.Value != 33 {
		t.Fatalf("cell = %+v, want 33", c)
	}
	kpc, _ := tab.Cell("E. coli", "Mecanismos de Resistência - KPC")
	if !kpc.Valid || kpc.Value != 0 {
		t.Fatalf("untested mechanism cell = %+v, want valid 0", kpc)
	}
}

func TestSensitivityNullPolicy(t *testing.T) {
	recs := []Record{
		sample("E. coli", "Bactéria", "1", map[string]string{"AMICACINA": "Intermediário"}),
		sample("E. coli", "Bactéria", "1", map[string]string{"MEROPENEM": "RESISTENTE"}),
		sample("K. pneumoniae", "Bactéria", "1", nil),
	}
	cols := []string{"AMICACINA", "MEROPENEM"}
	tab := BuildCrossTab(recs, SensitivityConfig(cols, DefaultVocabulary(false), DefaultTopN))

	ami, _ := tab.Cell("E. coli", "AMICACINA")
	if ami.Valid {
		t.Fatalf("ambiguous-only results must give null, got %+v", ami)
	}
	mero, _ := tab.Cell("E. coli", "MEROPENEM")
	if !mero.Valid || mero.Value != 0 {
		t.Fatalf("explicit resistant must give 0, got %+v", mero)
	}
	for _, col := range cols {
		c, ok := tab.Cell("K. pneumoniae", col)
		if !ok || c.Valid {
			t.Fatalf("untested organism cell %s = %+v (found %v), want null", col, c, ok)
		}
	}
}

func TestSensitivityUnrounded(t *testing.T) {
	recs := threeEColi("AMICACINA", "Sensível", "Sensível", "Resistente")
	tab := BuildCrossTab(recs, SensitivityConfig([]string{"AMICACINA"}, DefaultVocabulary(false), DefaultTopN))
	c, _ := tab.Cell("E. coli", "AMICACINA")
	if c.Value != float64(2)*100/3 {
		t.Fatalf("cell = %v, want unrounded 66.66...", c.Value)
	}
	if RoundPercent(c.Value) != 67 {
		t.Fatalf("display rounding = %d, want 67", RoundPercent(c.Value))
	}
}

func TestCrossTabTopNRows(t *testing.T) {
	recs := quotaRecords()
	tab := BuildCrossTab(recs, SensitivityConfig(DefaultAntibiotics, DefaultVocabulary(false), 10))
	if len(tab.Rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(tab.Rows))
	}
	if tab.Rows[0].Entity != "Bacteria 16" || tab.Rows[9].Entity != "Bacteria 07" {
		t.Fatalf("unexpected row order: first %s last %s", tab.Rows[0].Entity, tab.Rows[9].Entity)
	}
	for _, r := range tab.Rows {
		if len(r.Cells) != len(DefaultAntibiotics) {
			t.Fatalf("row %s has %d cells", r.Entity, len(r.Cells))
		}
	}
}

func TestCrossTabBoundedPercentages(t *testing.T) {
	recs := labRecords()
	vocab := DefaultVocabulary(false)
	tabs := []CrossTab{
		BuildCrossTab(recs, SensitivityConfig(DefaultAntibiotics, vocab, DefaultTopN)),
		BuildCrossTab(recs, ResistanceConfig(DefaultMechanisms, vocab, DefaultTopN)),
	}
	for _, tab := range tabs {
		for _, r := range tab.Rows {
			if r.Records == 0 {
				t.Fatalf("row %s drawn from no records", r.Entity)
			}
			for i, c := range r.Cells {
				if c.Valid && (c.Value < 0 || c.Value > 100) {
					t.Fatalf("%s/%s = %v out of range", r.Entity, tab.Columns[i], c.Value)
				}
			}
		}
		if tab.Policy == AllRows.String() {
			for _, r := range tab.Rows {
				for _, c := range r.Cells {
					if !c.Valid {
						t.Fatalf("all-rows cell for %s must never be null", r.Entity)
					}
				}
			}
		}
	}
}

func TestCrossTabEmptyView(t *testing.T) {
	tab := BuildCrossTab(nil, SensitivityConfig(DefaultAntibiotics, DefaultVocabulary(false), DefaultTopN))
	if len(tab.Rows) != 0 || len(tab.Columns) != len(DefaultAntibiotics) {
		t.Fatalf("unexpected empty tab: %+v", tab)
	}
}

func TestCellJSON(t *testing.T) {
	b, err := json.Marshal([]Cell{Percent(50), Null, Percent(12.5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[50,null,12.5]" {
		t.Fatalf("json = %s", b)
	}
	y, err := Null.MarshalYAML()
	if err != nil || y != nil {
		t.Fatalf("null cell yaml = %v, %v", y, err)
	}
}
