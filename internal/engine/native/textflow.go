package native

import (
	"math"
	"sort"
	"strings"
)

// word is a positioned run of text in top-left page coordinates (y grows downward).
type word struct {
	text                     string
	left, right, top, bottom float64
}

func (w word) cx() float64 { return (w.left + w.right) / 2 }
func (w word) cy() float64 { return (w.top + w.bottom) / 2 }

// span is a horizontal interval occupied by a column.
type span struct {
	left, right float64
}

// groupRows bands words into rows, top to bottom. A word joins the current row when
// its vertical centre falls inside the band of the row's first word.
func groupRows(words []word) [][]word {
	sorted := append([]word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].top != sorted[j].top {
			return sorted[i].top < sorted[j].top
		}
		return sorted[i].left < sorted[j].left
	})

	var rows [][]word
	var bandTop, bandBottom float64
	for _, w := range sorted {
		if len(rows) > 0 && w.cy() >= bandTop && w.cy() <= bandBottom {
			rows[len(rows)-1] = append(rows[len(rows)-1], w)
			continue
		}
		rows = append(rows, []word{w})
		bandTop, bandBottom = w.top, w.bottom
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].left < row[j].left })
	}
	return rows
}

// inferColumns projects words onto the x axis and merges intervals closer than gap.
func inferColumns(words []word, gap float64) []span {
	sorted := append([]word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].left < sorted[j].left })

	var spans []span
	for _, w := range sorted {
		if n := len(spans); n > 0 && w.left <= spans[n-1].right+gap {
			spans[n-1].right = math.Max(spans[n-1].right, w.right)
			continue
		}
		spans = append(spans, span{left: w.left, right: w.right})
	}
	return spans
}

func spanIndex(spans []span, x float64) int {
	for i, s := range spans {
		if x <= s.right {
			return i
		}
	}
	return len(spans) - 1
}

// boundaryIndex places x between explicit column boundaries: before the first
// boundary is column 0, after the last is column len(bounds).
func boundaryIndex(bounds []float64, x float64) int {
	return sort.SearchFloat64s(bounds, x)
}

// joinWords concatenates a cell's words left to right, inserting a space where the
// gap between runs is wider than a quarter of the text height.
func joinWords(ws []word) string {
	var b strings.Builder
	for i, w := range ws {
		if i > 0 {
			prev := ws[i-1]
			if w.left-prev.right > 0.25*(w.bottom-w.top) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(w.text)
	}
	return b.String()
}

// textflowTable lays words out as one table. With explicit column boundaries the
// columns are fixed; otherwise they are inferred from the horizontal projection.
// It reports false when there is no text.
func textflowTable(words []word, columns []float64, gap float64) ([][]any, bool) {
	if len(words) == 0 {
		return nil, false
	}

	var ncols int
	var colOf func(word) int
	if len(columns) > 0 {
		bounds := append([]float64(nil), columns...)
		sort.Float64s(bounds)
		ncols = len(bounds) + 1
		colOf = func(w word) int { return boundaryIndex(bounds, w.cx()) }
	} else {
		spans := inferColumns(words, gap)
		ncols = len(spans)
		colOf = func(w word) int { return spanIndex(spans, w.cx()) }
	}

	rows := groupRows(words)
	out := make([][]any, len(rows))
	for i, row := range rows {
		parts := make([][]word, ncols)
		for _, w := range row {
			c := colOf(w)
			parts[c] = append(parts[c], w)
		}
		cells := make([]any, ncols)
		for c, ws := range parts {
			if len(ws) > 0 {
				cells[c] = joinWords(ws)
			}
		}
		out[i] = cells
	}
	return out, true
}
