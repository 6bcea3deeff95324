package analysis

import (
	"math"
	"sort"
	"strings"
)

// ValueCount is one distinct field value with its frequency.
type ValueCount struct {
	Value   string  `json:"value" yaml:"value"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// countValues tallies f across records in first-seen order, then sorts by
// count descending. The sort is stable, so ties keep first-seen order.
func countValues(records []Record, f Field, skipBlank bool) []ValueCount {
	idx := map[string]int{}
	var out []ValueCount
	for _, r := range records {
		v, _ := r.Value(f)
		if skipBlank && strings.TrimSpace(v) == "" {
			continue
		}
		if i, ok := idx[v]; ok {
			out[i].Count++
			continue
		}
		idx[v] = len(out)
		out = append(out, ValueCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopValues returns up to n of the most frequent non-blank values of f.
// n <= 0 means no limit.
func TopValues(records []Record, f Field, n int) []string {
	counts := countValues(records, f, true)
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Value
	}
	return out
}

// Distribution counts every value of f, blank included, most frequent first.
func Distribution(records []Record, f Field) []ValueCount {
	out := countValues(records, f, false)
	for i := range out {
		out[i].Percent = share(out[i].Count, len(records))
	}
	return out
}

// share returns 100*n/total rounded to one decimal, or 0 when total is 0.
func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(n) * 100 / float64(total))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// RoundPercent rounds half-up to a whole percent. Use it at display time only.
func RoundPercent(x float64) int {
	return int(math.Floor(x + 0.5))
}
