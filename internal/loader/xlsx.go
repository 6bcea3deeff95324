package loader

import (
	"fmt"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool { return hasExt(path, ".xlsx") }

func (xlsxLoader) Load(path string, opts Options) ([]analysis.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opts)
	if err != nil {
		return nil, err
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	var header []string
	var data [][]string
	for rows.Next() {
		vals, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if header == nil {
			if len(vals) == 0 {
				continue
			}
			header = vals
			continue
		}
		data = append(data, vals)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if header == nil {
		return nil, fmt.Errorf("xlsx: sheet %q has no header row", sheet)
	}
	return tableRows(header, data), nil
}

func pickSheet(sheets []string, opts Options) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("xlsx: workbook has no sheets")
	}
	if opts.SheetName != "" {
		for _, s := range sheets {
			if s == opts.SheetName {
				return s, nil
			}
		}
		return "", fmt.Errorf("xlsx: sheet %q not found (have %v)", opts.SheetName, sheets)
	}
	idx := opts.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("xlsx: sheet index %d out of range (1-%d)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}
