package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/microlab-cli/internal/config"
	"github.com/KaramelBytes/microlab-cli/internal/loader"
	"github.com/KaramelBytes/microlab-cli/internal/logger"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/KaramelBytes/microlab-cli/internal/utils"
	"github.com/spf13/cobra"
)

// View flags shared by every analysis command. Only one command runs per
// invocation, so the commands bind the same variables.
var (
	fMonth           string
	fType            string
	fMaterial        string
	fGroupedMaterial string
	fLocation        string
	fMicro           string
	fFilters         []string

	inDelimiter  string
	inSheetName  string
	inSheetIndex int
	inTable      string

	outFormat string
	outPath   string
)

// addViewFlags registers dataset, filter and output flags on c.
func addViewFlags(c *cobra.Command) {
	addFilterFlags(c)
	addInputFlags(c)
	addOutputFlags(c)
}

func addFilterFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&fMonth, "month", "", "filter: month number (1-12)")
	f.StringVar(&fType, "type", "", "filter: organism type, e.g. Bactéria or Fungo")
	f.StringVar(&fMaterial, "material", "", "filter: sample material")
	f.StringVar(&fGroupedMaterial, "grouped-material", "", "filter: grouped sample material")
	f.StringVar(&fLocation, "location", "", "filter: ward or unit")
	f.StringVar(&fMicro, "micro", "", "filter: microorganism name")
	f.StringArrayVar(&fFilters, "filter", nil, "filter as field=value (repeatable)")
}

func addInputFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&inDelimiter, "delimiter", "", "CSV delimiter, e.g. ';' or '\\t' (overrides config)")
	f.StringVar(&inSheetName, "sheet-name", "", "XLSX: sheet name (overrides config)")
	f.IntVar(&inSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (overrides config)")
	f.StringVar(&inTable, "table", "", "SQLite: table name (overrides config)")
}

func addOutputFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&outFormat, "format", "", "output format: markdown|json|yaml (overrides config)")
	f.StringVarP(&outPath, "output", "o", "", "optional path to write the report")
}

func settings() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

// selectionFromFlags builds the selection from the named filter flags and
// any --filter pairs. "todos" and "all" leave a field unconstrained.
func selectionFromFlags() (analysis.Selection, error) {
	pairs := map[string]string{}
	named := map[analysis.Field]string{
		analysis.FieldMonth:           fMonth,
		analysis.FieldOrganismType:    fType,
		analysis.FieldMaterial:        fMaterial,
		analysis.FieldGroupedMaterial: fGroupedMaterial,
		analysis.FieldLocation:        fLocation,
		analysis.FieldMicroorganism:   fMicro,
	}
	for f, v := range named {
		if v != "" {
			pairs[string(f)] = v
		}
	}
	for _, kv := range fFilters {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return analysis.Selection{}, fmt.Errorf("invalid --filter %q (want field=value)", kv)
		}
		pairs[strings.TrimSpace(k)] = v
	}
	for k, v := range pairs {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "todos", "all":
			pairs[k] = analysis.Any
		}
	}
	return analysis.ParseSelection(pairs)
}

// openStore loads the dataset at path with the configured schema. Extra
// result columns are kept in addition to the configured ones.
func openStore(path string, extraResults ...string) (*analysis.Store, error) {
	c := settings()
	opts := loader.Options{
		Delimiter:  c.Delimiter,
		SheetName:  c.SheetName,
		SheetIndex: c.SheetIndex,
		Table:      c.SQLiteTable,
	}
	if inDelimiter != "" {
		opts.Delimiter = inDelimiter
	}
	if inSheetName != "" {
		opts.SheetName = inSheetName
	}
	if inSheetIndex > 0 {
		opts.SheetIndex = inSheetIndex
	}
	if inTable != "" {
		opts.Table = inTable
	}
	rows, err := loader.Load(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	schema := c.Schema()
	for _, col := range extraResults {
		col = strings.TrimSpace(col)
		if col != "" && !slices.Contains(schema.Results, col) {
			schema.Results = append(schema.Results, col)
		}
	}
	store, err := analysis.NewStore(filepath.Base(path), rows, schema)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if store.Len() == 0 {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s has no data rows\n", filepath.Base(path))
	}
	return store, nil
}

// view is one loaded dataset narrowed by the command's filters.
type view struct {
	store   *analysis.Store
	sel     analysis.Selection
	records []analysis.Record
}

func openView(path string, extraResults ...string) (*view, error) {
	sel, err := selectionFromFlags()
	if err != nil {
		return nil, err
	}
	store, err := openStore(path, extraResults...)
	if err != nil {
		return nil, err
	}
	recs := analysis.ApplyFilters(store.Records(), sel)
	logger.Info("%s: %d of %d records match %d filter(s)", store.Source(), len(recs), store.Len(), len(sel.Active()))
	return &view{store: store, sel: sel, records: recs}, nil
}

func (v *view) document(kind string, result any) report.Document {
	return report.Document{
		Kind:     kind,
		Source:   v.store.Source(),
		Total:    v.store.Len(),
		Filtered: len(v.records),
		Filters:  v.sel.Active(),
		Result:   result,
	}
}

// emit renders doc and writes it to --output or stdout.
func emit(c *cobra.Command, doc report.Document) error {
	format := settings().OutputFormat
	if outFormat != "" {
		format = outFormat
	}
	b, err := report.Bytes(format, doc)
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := utils.SafeWriteFile(outPath, b); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(c.OutOrStdout(), "✓ Wrote %s report to %s\n", doc.Kind, outPath)
		return nil
	}
	_, err = c.OutOrStdout().Write(b)
	return err
}
