package analysis

import (
	"math"
	"strconv"
)

// DefaultAntibiotics are the sensitivity heatmap columns.
var DefaultAntibiotics = []string{
	"AMICACINA",
	"CIPROFLOXACINA",
	"CEFTRIAXONA",
	"MEROPENEM",
	"VANCOMICINA",
	"IMIPENEM",
	"LEVOFLOXACINA",
	"CEFEPIME",
	"GENTAMICINA",
	"PIPERACILINA / TAZOBACTAM",
}

// EvolutionAntibiotics are the monthly sensitivity series columns.
var EvolutionAntibiotics = []string{
	"AMICACINA",
	"CIPROFLOXACINA",
	"CEFTRIAXONA",
	"MEROPENEM",
	"VANCOMICINA",
	"PIPERACILINA / TAZOBACTAM",
	"COLISTINA",
	"CEFTOLOZANE/TAZOBACTAM",
	"CEFTAZIDIMA / AVIBACTAM",
	"OXACILINA",
	"AMPICILINA",
}

// DefaultMechanisms are the resistance-mechanism heatmap columns.
var DefaultMechanisms = []string{
	"Mecanismos de Resistência - AMPC",
	"Mecanismos de Resistência - CARBA",
	"Mecanismos de Resistência - ESBL",
	"Mecanismos de Resistência - KPC",
	"Mecanismos de Resistência - MECPES",
	"Mecanismos de Resistência - META",
	"Mecanismos de Resistência - OXA",
}

// DefaultTopN is the row cap of both standing cross-tabs and the evolution series.
const DefaultTopN = 15

// DenominatorPolicy decides which records count toward a cell's base.
type DenominatorPolicy int

const (
	// ExplicitOnly counts only results matching the positive or negative
	// matcher. Untested and ambiguous results are left out of the base.
	ExplicitOnly DenominatorPolicy = iota
	// AllRows counts every record of the row entity, blank results included.
	// Where testing coverage is incomplete this lowers the percentage: a blank
	// result is indistinguishable from a negative one.
	AllRows
)

func (p DenominatorPolicy) String() string {
	switch p {
	case ExplicitOnly:
		return "explicit-only"
	case AllRows:
		return "all-rows"
	}
	return "policy(" + strconv.Itoa(int(p)) + ")"
}

// Cell is a percentage or null. Valid is false when there is no denominator.
type Cell struct {
	Value float64
	Valid bool
}

// Null is the "insufficient data" cell.
var Null = Cell{}

// Percent returns a valid cell.
func Percent(v float64) Cell { return Cell{Value: v, Valid: true} }

func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, c.Value, 'f', -1, 64), nil
}

func (c Cell) MarshalYAML() (interface{}, error) {
	if !c.Valid {
		return nil, nil
	}
	return c.Value, nil
}

// CrossTabConfig configures one row-entity by column percentage matrix.
type CrossTabConfig struct {
	RowField Field
	// TopN caps the row entities, ranked by frequency. 0 means no cap.
	TopN     int
	Columns  []string
	Positive Matcher
	// Negative is consulted only under ExplicitOnly.
	Negative Matcher
	Policy   DenominatorPolicy
	// RoundCells rounds valid cells to whole percents.
	RoundCells bool
}

// SensitivityConfig is the antibiotic sensitivity matrix: sensible over
// sensible+resistant, unrounded, null where no explicit result exists.
func SensitivityConfig(columns []string, vocab ResultVocabulary, topN int) CrossTabConfig {
	return CrossTabConfig{
		RowField: FieldMicroorganism,
		TopN:     topN,
		Columns:  columns,
		Positive: vocab.Sensitive,
		Negative: vocab.Resistant,
		Policy:   ExplicitOnly,
	}
}

// ResistanceConfig is the resistance-mechanism matrix: positive results over
// all records of the organism, rounded to whole percents.
func ResistanceConfig(columns []string, vocab ResultVocabulary, topN int) CrossTabConfig {
	return CrossTabConfig{
		RowField:   FieldMicroorganism,
		TopN:       topN,
		Columns:    columns,
		Positive:   vocab.Mechanism,
		Policy:     AllRows,
		RoundCells: true,
	}
}

// CrossTab is a matrix of row entities by columns. Row cells align with Columns.
type CrossTab struct {
	RowField Field         `json:"row_field" yaml:"row_field"`
	Policy   string        `json:"policy" yaml:"policy"`
	Columns  []string      `json:"columns" yaml:"columns"`
	Rows     []CrossTabRow `json:"rows" yaml:"rows"`
}

// CrossTabRow is one row entity with its record count and cells.
type CrossTabRow struct {
	Entity  string `json:"entity" yaml:"entity"`
	Records int    `json:"records" yaml:"records"`
	Cells   []Cell `json:"cells" yaml:"cells"`
}

// Cell looks up the cell for entity and column.
func (t CrossTab) Cell(entity, column string) (Cell, bool) {
	col := -1
	for i, c := range t.Columns {
		if c == column {
			col = i
			break
		}
	}
	if col < 0 {
		return Null, false
	}
	for _, r := range t.Rows {
		if r.Entity == entity {
			return r.Cells[col], true
		}
	}
	return Null, false
}

// BuildCrossTab computes the matrix for the top-N row entities of records.
// Blank entity values are never ranked.
func BuildCrossTab(records []Record, cfg CrossTabConfig) CrossTab {
	tab := CrossTab{
		RowField: cfg.RowField,
		Policy:   cfg.Policy.String(),
		Columns:  append([]string(nil), cfg.Columns...),
	}
	entities := TopValues(records, cfg.RowField, cfg.TopN)
	if len(entities) == 0 {
		return tab
	}

	members := make(map[string][]Record, len(entities))
	for _, e := range entities {
		members[e] = nil
	}
	for _, r := range records {
		v, _ := r.Value(cfg.RowField)
		if _, ok := members[v]; ok {
			members[v] = append(members[v], r)
		}
	}

	tab.Rows = make([]CrossTabRow, 0, len(entities))
	for _, e := range entities {
		rows := members[e]
		row := CrossTabRow{Entity: e, Records: len(rows), Cells: make([]Cell, len(cfg.Columns))}
		for i, col := range cfg.Columns {
			row.Cells[i] = cellFor(rows, col, cfg)
		}
		tab.Rows = append(tab.Rows, row)
	}
	return tab
}

func cellFor(rows []Record, column string, cfg CrossTabConfig) Cell {
	var num, den int
	for _, r := range rows {
		res := r.Result(column)
		pos := matches(cfg.Positive, res)
		switch cfg.Policy {
		case AllRows:
			den++
		default:
			if pos || matches(cfg.Negative, res) {
				den++
			}
		}
		if pos {
			num++
		}
	}
	if den == 0 {
		return Null
	}
	v := float64(num) * 100 / float64(den)
	if cfg.RoundCells {
		v = math.Round(v)
	}
	return Percent(v)
}

func matches(m Matcher, result string) bool {
	if m == nil || result == "" {
		return false
	}
	return m.Match(result)
}
