// Package loader reads laboratory exports into raw header-keyed rows.
//
// Loaders are selected by file extension. Each returns one analysis.Row per
// data row, keyed by the trimmed header text of the first row (or the column
// names for SQLite tables).
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/logger"
)

// Options tunes format-specific behavior. Zero values select the defaults.
type Options struct {
	// Delimiter overrides the CSV separator. Empty means "," or tab for .tsv.
	Delimiter string
	// SheetName selects an XLSX sheet by name; it wins over SheetIndex.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet position. Zero means the first sheet.
	SheetIndex int
	// Table is the SQLite table to read.
	Table string
}

// Loader defines a dataset loader implementation.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opts Options) ([]analysis.Row, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
	Register(sqliteLoader{})
}

// ErrUnsupported indicates no registered loader handles the file.
var ErrUnsupported = errors.New("unsupported dataset format")

// Load selects a loader based on the file extension and reads all rows.
func Load(path string, opts Options) ([]analysis.Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			rows, err := l.Load(path, opts)
			if err != nil {
				return nil, err
			}
			logger.Debug("loaded %d rows from %s", len(rows), filepath.Base(path))
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// Supported lists the extensions the registered loaders accept.
func Supported() []string {
	return []string{".csv", ".tsv", ".xlsx", ".db", ".sqlite", ".sqlite3"}
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// tableRows turns a header plus data rows into header-keyed rows. Blank
// headers are skipped, short rows read as empty, and rows with no
// non-blank cell are dropped.
func tableRows(header []string, data [][]string) []analysis.Row {
	keys := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		keys[i] = h
	}
	out := make([]analysis.Row, 0, len(data))
	for _, rec := range data {
		row := make(analysis.Row, len(keys))
		blank := true
		for i, k := range keys {
			if k == "" {
				continue
			}
			var v string
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			if v != "" {
				blank = false
			}
			if _, dup := row[k]; dup && v == "" {
				continue
			}
			row[k] = v
		}
		if blank {
			continue
		}
		out = append(out, row)
	}
	return out
}
