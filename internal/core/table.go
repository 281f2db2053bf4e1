package core

import (
	"sort"
)

// Table is a parsed probability table. It is immutable once built by ParseTable.
type Table struct {
	columns    []string
	slotLabels []string // probability column name per slot, in header order
	rows       []Row
	layout     Layout
	delimiter  Delimiter

	colIndex map[string]int // probability column name -> slot index (0-based)
	byNumber map[int]int    // number -> row index (first occurrence)
}

func newTable(columns, slotLabels []string, rows []Row, layout Layout, delim Delimiter) *Table {
	t := &Table{
		columns:    columns,
		slotLabels: slotLabels,
		rows:       rows,
		layout:     layout,
		delimiter:  delim,
		colIndex:   make(map[string]int, len(slotLabels)),
		byNumber:   make(map[int]int, len(rows)),
	}
	for i, name := range slotLabels {
		t.colIndex[name] = i
	}
	for i, r := range rows {
		if !r.NumberOK {
			continue
		}
		if _, dup := t.byNumber[r.Number]; !dup {
			t.byNumber[r.Number] = i
		}
	}
	return t
}

// Columns returns the ordered column names (identity column first).
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Rows returns a copy of the table rows in source order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.rows) }

// SlotCount returns the number of probability columns.
func (t *Table) SlotCount() int { return len(t.slotLabels) }

// Layout returns the detected header layout.
func (t *Table) Layout() Layout { return t.layout }

// Delimiter returns the delimiter family the table was parsed with.
func (t *Table) Delimiter() Delimiter { return t.delimiter }

// SlotColumn returns the probability column name for a 1-based slot.
func (t *Table) SlotColumn(slot int) (string, bool) {
	if t == nil || slot < 1 || slot > len(t.slotLabels) {
		return "", false
	}
	return t.slotLabels[slot-1], true
}

// HasColumn reports whether name is one of the table's probability columns.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.colIndex[name]
	return ok
}

// Probability returns a number's percentage in the given probability column.
func (t *Table) Probability(number int, column string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	slot, ok := t.colIndex[column]
	if !ok {
		return 0, false
	}
	ri, ok := t.byNumber[number]
	if !ok {
		return 0, false
	}
	return t.rows[ri].Probabilities[slot], true
}

// Numbers returns the distinct valid numbers in the table, ascending.
func (t *Table) Numbers() []int {
	if t == nil {
		return nil
	}
	out := make([]int, 0, len(t.byNumber))
	for n := range t.byNumber {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// NumberProb pairs a lottery number with one column's probability.
type NumberProb struct {
	Number      int     `json:"number"`
	Probability float64 `json:"probability"`
}

// columnValues returns (number, probability) for every row with a valid number.
func (t *Table) columnValues(column string) []NumberProb {
	if t == nil {
		return nil
	}
	slot, ok := t.colIndex[column]
	if !ok {
		return nil
	}
	out := make([]NumberProb, 0, len(t.rows))
	for _, r := range t.rows {
		if !r.NumberOK {
			continue
		}
		out = append(out, NumberProb{Number: r.Number, Probability: r.Probabilities[slot]})
	}
	return out
}

// SortedBy returns the column's values ordered by probability.
// Ties are broken by ascending number so the order is stable across loads.
func (t *Table) SortedBy(column string, ascending bool) []NumberProb {
	return SortByProbability(t.columnValues(column), ascending)
}

// SortByProbability sorts vals in place by probability, ties by number.
func SortByProbability(vals []NumberProb, ascending bool) []NumberProb {
	sort.SliceStable(vals, func(i, j int) bool {
		if vals[i].Probability != vals[j].Probability {
			if ascending {
				return vals[i].Probability < vals[j].Probability
			}
			return vals[i].Probability > vals[j].Probability
		}
		return vals[i].Number < vals[j].Number
	})
	return vals
}

// NonZero returns the column's values with probability strictly above zero,
// in row order.
func (t *Table) NonZero(column string) []NumberProb {
	return nonZero(t.columnValues(column))
}
