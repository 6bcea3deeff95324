// Package dashboard computes every analysis over one filtered view of a
// dataset and memoizes the result per selection.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/config"
	"github.com/KaramelBytes/microlab-cli/internal/logger"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultDetailLimit is the number of detail rows a snapshot carries.
const DefaultDetailLimit = 20

// Snapshot is the full set of results for one selection.
type Snapshot struct {
	StoreID     string                `json:"store_id" yaml:"store_id"`
	Source      string                `json:"source" yaml:"source"`
	Fingerprint string                `json:"fingerprint" yaml:"fingerprint"`
	Total       int                   `json:"total" yaml:"total"`
	Filtered    int                   `json:"filtered" yaml:"filtered"`
	Filters     []analysis.Constraint `json:"filters" yaml:"filters"`
	Summary     analysis.Summary      `json:"summary" yaml:"summary"`
	Prevalence  []analysis.Prevalence `json:"prevalence" yaml:"prevalence"`
	Materials   []analysis.ValueCount `json:"materials" yaml:"materials"`
	Sensitivity analysis.CrossTab     `json:"sensitivity" yaml:"sensitivity"`
	Resistance  analysis.CrossTab     `json:"resistance" yaml:"resistance"`
	Evolution   analysis.Evolution    `json:"evolution" yaml:"evolution"`
	Details     []analysis.Record     `json:"details" yaml:"details"`
}

type settings struct {
	antibiotics   []string
	evolutionCols []string
	mechanisms    []string
	types         []string
	topN          int
	evolutionTopN int
	quota         analysis.QuotaRule
	vocab         analysis.ResultVocabulary
	detailLimit   int
}

type memo struct {
	mu      sync.Mutex
	entries map[uint64]*Snapshot
	misses  int
	group   singleflight.Group
}

func (m *memo) get(key uint64) (*Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.entries[key]
	return snap, ok
}

func (m *memo) put(key uint64, snap *Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
	m.entries[key] = snap
}

// Dashboard binds a store to a selection. Apply and Reset return new
// dashboards that share the store and the memo.
type Dashboard struct {
	store *analysis.Store
	set   settings
	sel   analysis.Selection
	memo  *memo
}

// New returns a dashboard over store with the default (empty) selection.
// A nil cfg uses config.Default().
func New(store *analysis.Store, cfg *config.Global) *Dashboard {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Dashboard{
		store: store,
		set: settings{
			antibiotics:   cfg.Antibiotics,
			evolutionCols: cfg.EvolutionAntibiotics,
			mechanisms:    cfg.Mechanisms,
			types:         cfg.OrganismTypes,
			topN:          cfg.TopN,
			evolutionTopN: cfg.EvolutionTopN,
			quota:         cfg.Quota(),
			vocab:         cfg.Vocabulary(),
			detailLimit:   DefaultDetailLimit,
		},
		sel:  analysis.NewSelection(),
		memo: &memo{entries: make(map[uint64]*Snapshot)},
	}
}

// Apply returns a dashboard bound to sel. The previous selection is replaced
// wholesale, not merged.
func (d *Dashboard) Apply(sel analysis.Selection) *Dashboard {
	nd := *d
	nd.sel = sel
	return &nd
}

// Reset returns a dashboard bound to the default selection.
func (d *Dashboard) Reset() *Dashboard { return d.Apply(analysis.NewSelection()) }

// Selection returns the bound selection.
func (d *Dashboard) Selection() analysis.Selection { return d.sel }

// WithDetailLimit returns a dashboard that keeps n detail rows per snapshot.
func (d *Dashboard) WithDetailLimit(n int) *Dashboard {
	nd := *d
	nd.set.detailLimit = n
	// Snapshots differ by detail limit, so the copy gets its own memo.
	nd.memo = &memo{entries: make(map[uint64]*Snapshot)}
	return &nd
}

// Compute returns the snapshot for the bound selection. Consumers run
// concurrently over a shared read-only view; repeated calls for an equal
// selection return the memoized snapshot. Compute is safe for concurrent use.
func (d *Dashboard) Compute(ctx context.Context) (*Snapshot, error) {
	if err := d.sel.Validate(); err != nil {
		return nil, err
	}
	key := Fingerprint(d.store.ID(), d.sel)

	if snap, ok := d.memo.get(key); ok {
		logger.Debug("dashboard: cache hit %016x", key)
		return snap, nil
	}
	// Equal selections computing at once share one run; different
	// selections compute in parallel.
	v, err, _ := d.memo.group.Do(formatKey(key), func() (any, error) {
		if snap, ok := d.memo.get(key); ok {
			return snap, nil
		}
		snap, err := d.compute(ctx, key)
		if err != nil {
			return nil, err
		}
		d.memo.put(key, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (d *Dashboard) compute(ctx context.Context, key uint64) (*Snapshot, error) {
	view := analysis.ApplyFilters(d.store.Records(), d.sel)
	snap := &Snapshot{
		StoreID:     d.store.ID(),
		Source:      d.store.Source(),
		Fingerprint: formatKey(key),
		Total:       d.store.Len(),
		Filtered:    len(view),
		Filters:     d.sel.Active(),
	}

	g, ctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}
	s := d.set
	run(func() { snap.Summary = analysis.Summarize(view, s.types) })
	run(func() { snap.Prevalence = analysis.RankPrevalence(view, s.quota) })
	run(func() { snap.Materials = analysis.Distribution(view, analysis.FieldMaterial) })
	run(func() {
		snap.Sensitivity = analysis.BuildCrossTab(view, analysis.SensitivityConfig(s.antibiotics, s.vocab, s.topN))
	})
	run(func() {
		snap.Resistance = analysis.BuildCrossTab(view, analysis.ResistanceConfig(s.mechanisms, s.vocab, s.topN))
	})
	run(func() {
		snap.Evolution = analysis.BuildEvolution(view, s.evolutionCols, s.evolutionTopN, s.vocab.Sensitive, s.vocab.Resistant)
	})
	run(func() { snap.Details = head(view, s.detailLimit) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("dashboard: computed %016x over %d of %d records", key, len(view), snap.Total)
	return snap, nil
}

// Fingerprint hashes the store ID and the canonical encoding of the active
// constraints. Equal selections over the same store share a fingerprint.
func Fingerprint(storeID string, sel analysis.Selection) uint64 {
	active := sel.Active()
	sort.SliceStable(active, func(i, j int) bool { return active[i].Field < active[j].Field })
	var b strings.Builder
	b.WriteString(storeID)
	for _, c := range active {
		b.WriteByte(0x1e)
		b.WriteString(string(c.Field))
		b.WriteByte(0x1f)
		b.WriteString(c.Value)
	}
	return xxh3.HashString(b.String())
}

func formatKey(k uint64) string { return fmt.Sprintf("%016x", k) }

func head(recs []analysis.Record, n int) []analysis.Record {
	if n < 0 || n > len(recs) {
		n = len(recs)
	}
	return append([]analysis.Record(nil), recs[:n]...)
}
