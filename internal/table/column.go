package table

import (
	"fmt"
	"sort"
)

// Column identifies a column of a normalized table. Real columns carry their position
// in the raw table; padding columns carry their position among the padding, with Pad
// set, so the two can never collide.
type Column struct {
	Index int
	Pad   bool
}

func (c Column) String() string {
	if c.Pad {
		return fmt.Sprintf("_pad%d", c.Index+1)
	}
	return fmt.Sprintf("%d", c.Index)
}

// less orders padding columns after real ones, then by identifier.
func (c Column) less(o Column) bool {
	if c.Pad != o.Pad {
		return !c.Pad
	}
	return c.Index < o.Index
}

// realColumns returns identifiers for a raw table of width n.
func realColumns(n int) []Column {
	cols := make([]Column, n)
	for i := range cols {
		cols[i] = Column{Index: i}
	}
	return cols
}

// sortColumns stably sorts t's columns and permutes every row to match.
func sortColumns(t Normalized) Normalized {
	order := make([]int, len(t.Columns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.Columns[order[a]].less(t.Columns[order[b]])
	})

	cols := make([]Column, len(order))
	for i, src := range order {
		cols[i] = t.Columns[src]
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, len(order))
		for i, src := range order {
			out[i] = row[src]
		}
		rows[r] = out
	}
	return Normalized{Columns: cols, Rows: rows}
}
