package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/dashboard"
	"github.com/dustin/go-humanize"
)

// Options is the result of listing a field's distinct values.
type Options struct {
	Values []string `json:"values" yaml:"values"`
}

// Markdown renders doc as plain-text sections with bracketed headers.
func Markdown(doc Document) string {
	var b strings.Builder
	writeDataset(&b, doc.Source, doc.Total, doc.Filtered, doc.Filters)

	switch r := doc.Result.(type) {
	case analysis.Summary:
		writeSummary(&b, r)
	case []analysis.Prevalence:
		writePrevalence(&b, r)
	case []analysis.ValueCount:
		writeDistribution(&b, doc.Field, r)
	case analysis.CrossTab:
		writeCrossTab(&b, titleFor(doc.Kind), r)
	case analysis.Evolution:
		writeEvolution(&b, r)
	case Options:
		writeOptions(&b, doc.Field, r)
	case []analysis.Record:
		writeRecords(&b, r)
	case *dashboard.Snapshot:
		writeSnapshot(&b, r)
	case nil:
	default:
		b.WriteString(fmt.Sprintf("\n[%s]\n%v\n", titleFor(doc.Kind), r))
	}
	return b.String()
}

func titleFor(kind string) string {
	switch kind {
	case KindSensitivity:
		return "SENSITIVITY PROFILE"
	case KindResistance:
		return "RESISTANCE MECHANISMS"
	case "":
		return "RESULT"
	default:
		return strings.ToUpper(kind)
	}
}

func writeDataset(b *strings.Builder, source string, total, filtered int, filters []analysis.Constraint) {
	b.WriteString("[DATASET]\n")
	if source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", source))
	}
	if filtered != total {
		b.WriteString(fmt.Sprintf("Records: %s of %s\n", humanize.Comma(int64(filtered)), humanize.Comma(int64(total))))
	} else {
		b.WriteString(fmt.Sprintf("Records: %s\n", humanize.Comma(int64(total))))
	}
	if len(filters) == 0 {
		b.WriteString("Filters: none\n")
		return
	}
	parts := make([]string, len(filters))
	for i, c := range filters {
		parts[i] = fmt.Sprintf("%s=%s", c.Field, safeVal(c.Value))
	}
	b.WriteString("Filters: " + strings.Join(parts, ", ") + "\n")
}

func writeSummary(b *strings.Builder, s analysis.Summary) {
	b.WriteString("\n[SUMMARY]\n")
	b.WriteString(fmt.Sprintf("- Total: %s\n", humanize.Comma(int64(s.Total))))
	for _, t := range s.Types {
		b.WriteString(fmt.Sprintf("- %s: %s (%.1f%%)\n", safeName(t), humanize.Comma(int64(s.PerType[t])), s.PerTypePercent[t]))
	}
}

func writePrevalence(b *strings.Builder, list []analysis.Prevalence) {
	b.WriteString("\n[PREVALENCE]\n")
	if len(list) == 0 {
		b.WriteString("(no records)\n")
		return
	}
	for i, p := range list {
		b.WriteString(fmt.Sprintf("%d. %s [%s]: %s (%.1f%%)\n", i+1, safeName(p.Name), safeName(p.Category), humanize.Comma(int64(p.Count)), p.Percent))
	}
}

func writeDistribution(b *strings.Builder, f analysis.Field, list []analysis.ValueCount) {
	b.WriteString(fmt.Sprintf("\n[DISTRIBUTION: %s]\n", f))
	if len(list) == 0 {
		b.WriteString("(no records)\n")
		return
	}
	for _, vc := range list {
		b.WriteString(fmt.Sprintf("- %s: %s (%.1f%%)\n", safeName(vc.Value), humanize.Comma(int64(vc.Count)), vc.Percent))
	}
}

func writeOptions(b *strings.Builder, f analysis.Field, o Options) {
	b.WriteString(fmt.Sprintf("\n[OPTIONS: %s]\n", f))
	if len(o.Values) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, v := range o.Values {
		b.WriteString("- " + safeVal(v) + "\n")
	}
}

// writeCrossTab prints one line per row entity. Cells are rounded half-up
// here; null cells print N/A.
func writeCrossTab(b *strings.Builder, title string, t analysis.CrossTab) {
	b.WriteString(fmt.Sprintf("\n[%s]\n", title))
	b.WriteString(fmt.Sprintf("Rows: %s, denominator: %s\n", t.RowField, t.Policy))
	if len(t.Rows) == 0 {
		b.WriteString("(no records)\n")
		return
	}
	for _, r := range t.Rows {
		b.WriteString(fmt.Sprintf("- %s (n=%s)\n", safeName(r.Entity), humanize.Comma(int64(r.Records))))
		for i, c := range r.Cells {
			b.WriteString(fmt.Sprintf("  • %s: %s\n", shortColumn(t.Columns[i]), formatCell(c)))
		}
	}
}

func writeEvolution(b *strings.Builder, ev analysis.Evolution) {
	b.WriteString("\n[EVOLUTION]\n")
	if len(ev.Organisms) > 0 {
		b.WriteString("Organisms: " + strings.Join(ev.Organisms, ", ") + "\n")
	}
	if len(ev.Points) == 0 {
		b.WriteString("(no records)\n")
		return
	}
	for _, p := range ev.Points {
		b.WriteString(fmt.Sprintf("- Month %d (n=%s)\n", p.Period, humanize.Comma(int64(p.Records))))
		for _, col := range ev.Columns {
			line := fmt.Sprintf("  • %s: %d%%", col, analysis.RoundPercent(p.Values[col]))
			if p.Tested[col] == 0 {
				line += " (not tested)"
			}
			b.WriteString(line + "\n")
		}
	}
}

func writeRecords(b *strings.Builder, recs []analysis.Record) {
	b.WriteString(fmt.Sprintf("\n[RECORDS] (%d shown)\n", len(recs)))
	for _, r := range recs {
		b.WriteString(fmt.Sprintf("- %s | %s | %s | %s | %s", safeName(r.Month), safeName(r.Material), safeName(r.Location), safeName(r.Microorganism), safeName(r.OrganismType)))
		if len(r.Results) > 0 {
			keys := make([]string, 0, len(r.Results))
			for k := range r.Results {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, len(keys))
			for i, k := range keys {
				parts[i] = shortColumn(k) + "=" + safeVal(r.Results[k])
			}
			b.WriteString(" | " + strings.Join(parts, "; "))
		}
		b.WriteString("\n")
	}
}

func writeSnapshot(b *strings.Builder, s *dashboard.Snapshot) {
	if s == nil {
		return
	}
	writeSummary(b, s.Summary)
	writePrevalence(b, s.Prevalence)
	writeDistribution(b, analysis.FieldMaterial, s.Materials)
	writeCrossTab(b, titleFor(KindSensitivity), s.Sensitivity)
	writeCrossTab(b, titleFor(KindResistance), s.Resistance)
	writeEvolution(b, s.Evolution)
	writeRecords(b, s.Details)
}

func formatCell(c analysis.Cell) string {
	if !c.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", analysis.RoundPercent(c.Value))
}

// shortColumn drops the shared "Mecanismos de Resistência - " prefix.
func shortColumn(col string) string {
	if i := strings.LastIndex(col, " - "); i >= 0 && strings.HasPrefix(col, "Mecanismos") {
		return col[i+3:]
	}
	return col
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(blank)"
	}
	return safeVal(s)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
