// Package table holds the table shapes that flow between extraction and export,
// and the pure functions that normalize and merge them.
package table

// Raw is a table exactly as the extraction engine returned it. Cells may be strings,
// numbers or nil, and rows may be ragged.
type Raw struct {
	Rows [][]any
	Page int // 1-based page the engine found the table on; 0 when unknown
}

// Width is the structural column count of r: the length of its longest row.
func (r Raw) Width() int {
	w := 0
	for _, row := range r.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Normalized is a rectangular table of trimmed string cells. Every row has
// len(Columns) cells, in Columns order.
type Normalized struct {
	Columns []Column
	Rows    [][]string
}

// Width returns the column count of t.
func (t Normalized) Width() int {
	if len(t.Columns) > 0 {
		return len(t.Columns)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// Records exposes the rows in the shape encoding/csv expects.
func (t Normalized) Records() [][]string { return t.Rows }
