package analysis

import "fmt"

func sample(micro, typ, month string, results map[string]string) Record {
	return Record{
		Month:         month,
		Microorganism: micro,
		OrganismType:  typ,
		Results:       results,
	}
}

// labRecords is a small mixed dataset used across tests.
func labRecords() []Record {
	return []Record{
		{Month: "1", Material: "Sangue", GroupedMaterial: "Sangue", Location: "UTI", Microorganism: "Escherichia coli", OrganismType: "Bactéria",
			Results: map[string]string{"AMICACINA": "Sensível", "MEROPENEM": "Sensível", "Mecanismos de Resistência - ESBL": "Positivo"}},
		{Month: "1", Material: "Urina", GroupedMaterial: "Urina", Location: "UTI", Microorganism: "Escherichia coli", OrganismType: "Bactéria",
			Results: map[string]string{"AMICACINA": "Resistente"}},
		{Month: "2", Material: "Urina", GroupedMaterial: "Urina", Location: "Enfermaria", Microorganism: "Klebsiella pneumoniae", OrganismType: "Bactéria",
			Results: map[string]string{"AMICACINA": "Sensível", "Mecanismos de Resistência - KPC": "Presente"}},
		{Month: "2", Material: "Sangue", GroupedMaterial: "Sangue", Location: "UTI", Microorganism: "Candida albicans", OrganismType: "Fungo"},
		{Month: "3", Material: "Secreção", GroupedMaterial: "Outros", Location: "Enfermaria", Microorganism: "Escherichia coli", OrganismType: "Bactéria",
			Results: map[string]string{"AMICACINA": "Intermediário"}},
		{Month: "3", Material: "Sangue", GroupedMaterial: "Sangue", Location: "UTI", Microorganism: "Staphylococcus aureus", OrganismType: "Bactéria",
			Results: map[string]string{"VANCOMICINA": "sensível"}},
	}
}

// quotaRecords builds 16 bacteria with counts 16..1 followed by two fungi
// with counts 5 and 3.
func quotaRecords() []Record {
	var recs []Record
	for c := 16; c >= 1; c-- {
		name := fmt.Sprintf("Bacteria %02d", c)
		for i := 0; i < c; i++ {
			recs = append(recs, sample(name, "Bactéria", "1", nil))
		}
	}
	for _, f := range []struct {
		name  string
		count int
	}{{"Fungus A", 5}, {"Fungus B", 3}} {
		for i := 0; i < f.count; i++ {
			recs = append(recs, sample(f.name, "Fungo", "1", nil))
		}
	}
	return recs
}
