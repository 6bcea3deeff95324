package analysis

import (
	"sort"
	"strings"
)

// QuotaRule caps how many organisms of the primary category are listed while
// keeping every organism of the other categories.
type QuotaRule struct {
	Primary string
	// PrimaryLimit caps the primary list; a negative limit means no cap.
	PrimaryLimit int
	// Others fixes the order of the non-primary categories. Categories not
	// listed follow in first-seen order.
	Others []string
}

// DefaultQuota lists the 15 most prevalent bacteria followed by all fungi.
func DefaultQuota() QuotaRule {
	return QuotaRule{Primary: "Bactéria", PrimaryLimit: 15, Others: []string{"Fungo"}}
}

// Prevalence is one ranked organism.
type Prevalence struct {
	Name     string  `json:"name" yaml:"name"`
	Count    int     `json:"count" yaml:"count"`
	Category string  `json:"category" yaml:"category"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// RankPrevalence ranks microorganisms by frequency and applies rule.
//
// The category of each organism is the organism type of the first record
// bearing it; a blank type counts as rule.Primary. Within each category list, ties keep first-seen order; no other
// tie-break key is applied.
func RankPrevalence(records []Record, rule QuotaRule) []Prevalence {
	counts := countValues(records, FieldMicroorganism, false)
	if len(counts) == 0 {
		return nil
	}

	category := make(map[string]string, len(counts))
	var seenCats []string
	catSeen := map[string]bool{}
	for _, r := range records {
		typ := r.OrganismType
		if strings.TrimSpace(typ) == "" {
			typ = rule.Primary
		}
		if _, ok := category[r.Microorganism]; !ok {
			category[r.Microorganism] = typ
		}
		if !catSeen[typ] {
			catSeen[typ] = true
			seenCats = append(seenCats, typ)
		}
	}

	byCat := map[string][]Prevalence{}
	for _, c := range counts {
		cat := category[c.Value]
		byCat[cat] = append(byCat[cat], Prevalence{
			Name:     c.Value,
			Count:    c.Count,
			Category: cat,
			Percent:  share(c.Count, len(records)),
		})
	}

	primary := byCat[rule.Primary]
	if rule.PrimaryLimit >= 0 && len(primary) > rule.PrimaryLimit {
		primary = primary[:rule.PrimaryLimit]
	}
	out := append([]Prevalence(nil), primary...)

	emitted := map[string]bool{rule.Primary: true}
	order := make([]string, 0, len(rule.Others)+len(seenCats))
	order = append(order, rule.Others...)
	order = append(order, seenCats...)
	for _, cat := range order {
		if emitted[cat] {
			continue
		}
		emitted[cat] = true
		list := byCat[cat]
		// Already count-ordered from countValues; keep the sort explicit.
		sort.SliceStable(list, func(i, j int) bool { return list[i].Count > list[j].Count })
		out = append(out, list...)
	}
	return out
}
