package analysis

// ApplyFilters returns the records matching every active constraint in sel.
// Matching is exact and case-sensitive; constraints are AND-combined and input
// order is preserved. An empty selection returns records unchanged. A
// constraint on an unknown field is never satisfied, so it empties the view;
// call Selection.Validate first to surface it as an error instead.
func ApplyFilters(records []Record, sel Selection) []Record {
	active := sel.Active()
	if len(active) == 0 {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		pass := true
		for _, c := range active {
			v, ok := r.Value(c.Field)
			if !ok || v != c.Value {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}
