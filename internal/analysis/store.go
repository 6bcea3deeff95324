package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Store holds an imported record set. It is never modified after NewStore.
type Store struct {
	id       string
	source   string
	loadedAt time.Time
	records  []Record
}

// NewStore validates the schema and maps every row onto a Record.
func NewStore(source string, rows []Row, schema Schema) (*Store, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}
	recs := make([]Record, len(rows))
	for i, row := range rows {
		recs[i] = schema.NewRecord(row)
	}
	return NewStoreFromRecords(source, recs), nil
}

// NewStoreFromRecords wraps already-mapped records. The slice is copied.
func NewStoreFromRecords(source string, recs []Record) *Store {
	cp := make([]Record, len(recs))
	copy(cp, recs)
	return &Store{
		id:       uuid.NewString(),
		source:   source,
		loadedAt: time.Now(),
		records:  cp,
	}
}

// ID identifies this load; a reload of the same file gets a new ID.
func (s *Store) ID() string { return s.id }

// Source returns the path or name the records came from.
func (s *Store) Source() string { return s.source }

// LoadedAt returns when the store was built.
func (s *Store) LoadedAt() time.Time { return s.loadedAt }

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Records returns the full record set. Callers must treat it as read-only.
func (s *Store) Records() []Record {
	if s == nil {
		return nil
	}
	return s.records[:len(s.records):len(s.records)]
}

// DistinctValues returns the sorted, non-empty distinct values of f across the
// whole store. Unknown fields yield nil.
func (s *Store) DistinctValues(f Field) []string {
	if !f.Known() {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, r := range s.Records() {
		v, _ := r.Value(f)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
