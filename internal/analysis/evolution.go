package analysis

import "sort"

// EvolutionPoint is one month of the sensitivity series.
type EvolutionPoint struct {
	Period int `json:"period" yaml:"period"`
	// Records counts the bucket's records for the restricted organism set.
	Records int                `json:"records" yaml:"records"`
	Values  map[string]float64 `json:"values" yaml:"values"`
	// Tested counts explicit sensible-or-resistant results per column.
	Tested map[string]int `json:"tested" yaml:"tested"`
}

// Evolution is a month-ordered sensitivity series for the top organisms.
type Evolution struct {
	Columns   []string         `json:"columns" yaml:"columns"`
	Organisms []string         `json:"organisms" yaml:"organisms"`
	Points    []EvolutionPoint `json:"points" yaml:"points"`
}

// BuildEvolution buckets records by month, restricted to the topN most
// frequent microorganisms of the whole view, and computes the sensible share
// per column per month.
//
// Unlike BuildCrossTab, a column with no explicit result in a month yields 0,
// not null; check Tested to tell "no data" from "0% sensible". Records whose
// month is missing or not a number are skipped. Points ascend by month.
func BuildEvolution(records []Record, columns []string, topN int, sensitive, resistant Matcher) Evolution {
	ev := Evolution{Columns: append([]string(nil), columns...)}
	ev.Organisms = TopValues(records, FieldMicroorganism, topN)
	if len(ev.Organisms) == 0 {
		return ev
	}
	top := make(map[string]bool, len(ev.Organisms))
	for _, o := range ev.Organisms {
		top[o] = true
	}

	type tally struct{ sensible, resistant int }
	type bucket struct {
		records int
		cols    []tally
	}
	buckets := map[int]*bucket{}
	for _, r := range records {
		if !top[r.Microorganism] {
			continue
		}
		m, ok := r.MonthNumber()
		if !ok {
			continue
		}
		b := buckets[m]
		if b == nil {
			b = &bucket{cols: make([]tally, len(columns))}
			buckets[m] = b
		}
		b.records++
		for i, col := range columns {
			res := r.Result(col)
			if matches(sensitive, res) {
				b.cols[i].sensible++
			} else if matches(resistant, res) {
				b.cols[i].resistant++
			}
		}
	}

	months := make([]int, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Ints(months)

	ev.Points = make([]EvolutionPoint, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		p := EvolutionPoint{
			Period:  m,
			Records: b.records,
			Values:  make(map[string]float64, len(columns)),
			Tested:  make(map[string]int, len(columns)),
		}
		for i, col := range columns {
			t := b.cols[i]
			total := t.sensible + t.resistant
			p.Tested[col] = total
			if total == 0 {
				p.Values[col] = 0
				continue
			}
			p.Values[col] = float64(t.sensible) * 100 / float64(total)
		}
		ev.Points = append(ev.Points, p)
	}
	return ev
}
