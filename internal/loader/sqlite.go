package loader

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/spf13/cast"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultTable is read when Options.Table is empty.
const DefaultTable = "samples"

type sqliteLoader struct{}

func (sqliteLoader) CanLoad(path string) bool { return hasExt(path, ".db", ".sqlite", ".sqlite3") }

func (sqliteLoader) Load(path string, opts Options) ([]analysis.Row, error) {
	table := opts.Table
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT * FROM " + quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("query table %q: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	var data [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			switch tv := v.(type) {
			case nil:
				continue
			case time.Time:
				rec[i] = tv.Format(time.RFC3339)
				continue
			}
			s, err := cast.ToStringE(v)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", cols[i], err)
			}
			rec[i] = s
		}
		data = append(data, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tableRows(cols, data), nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
