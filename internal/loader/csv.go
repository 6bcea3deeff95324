package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
)

type csvLoader struct{}

func (csvLoader) CanLoad(path string) bool { return hasExt(path, ".csv", ".tsv") }

func (csvLoader) Load(path string, opts Options) ([]analysis.Row, error) {
	comma := ','
	if hasExt(path, ".tsv") {
		comma = '\t'
	}
	if opts.Delimiter != "" {
		d := opts.Delimiter
		if d == `\t` {
			d = "\t"
		}
		r, size := utf8.DecodeRuneInString(d)
		if size != len(d) || r == utf8.RuneError {
			return nil, fmt.Errorf("csv: delimiter must be a single character, got %q", opts.Delimiter)
		}
		comma = r
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: %s has no header row", path)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	var data [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		data = append(data, rec)
	}
	return tableRows(header, data), nil
}
