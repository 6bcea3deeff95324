package analysis

// DefaultOrganismTypes is the fixed organism type set of the laboratory export.
var DefaultOrganismTypes = []string{"Bactéria", "Fungo"}

// Summary holds headline counts over a filtered view.
type Summary struct {
	Total          int                `json:"total" yaml:"total"`
	Types          []string           `json:"types" yaml:"types"`
	PerType        map[string]int     `json:"per_type" yaml:"per_type"`
	PerTypePercent map[string]float64 `json:"per_type_percent" yaml:"per_type_percent"`
}

// Summarize counts records per organism type. Percents are one decimal and are
// 0 (not null) when the view is empty.
func Summarize(records []Record, types []string) Summary {
	s := Summary{
		Total:          len(records),
		Types:          append([]string(nil), types...),
		PerType:        make(map[string]int, len(types)),
		PerTypePercent: make(map[string]float64, len(types)),
	}
	for _, t := range types {
		s.PerType[t] = 0
	}
	for _, r := range records {
		if _, ok := s.PerType[r.OrganismType]; ok {
			s.PerType[r.OrganismType]++
		}
	}
	for _, t := range types {
		s.PerTypePercent[t] = share(s.PerType[t], s.Total)
	}
	return s
}
