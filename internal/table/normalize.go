package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize turns raw engine tables into rectangular string tables that all share the
// widest table's column count. Output order matches input order; zero tables in
// yields zero tables out.
func Normalize(raws []Raw) []Normalized {
	if len(raws) == 0 {
		return nil
	}

	out := make([]Normalized, len(raws))
	maxCols := 0
	for i, r := range raws {
		out[i] = normalizeCells(r)
		if w := r.Width(); w > maxCols {
			maxCols = w
		}
	}
	for i := range out {
		out[i] = sortColumns(pad(out[i], maxCols))
	}
	return out
}

// normalizeCells converts every cell to its trimmed string form and fills ragged rows.
func normalizeCells(r Raw) Normalized {
	width := r.Width()
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]string, width)
		for j, v := range row {
			cells[j] = CellString(v)
		}
		rows[i] = cells
	}
	return Normalized{Columns: realColumns(width), Rows: rows}
}

// pad appends empty padding columns until t is width columns wide.
func pad(t Normalized, width int) Normalized {
	missing := width - len(t.Columns)
	if missing <= 0 {
		return t
	}
	for i := 0; i < missing; i++ {
		t.Columns = append(t.Columns, Column{Index: i, Pad: true})
	}
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], make([]string, missing)...)
	}
	return t
}

// CellString renders a raw cell value. Absent values (nil, NaN) become "".
func CellString(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(x)) {
			return ""
		}
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case json.Number:
		s = x.String()
	case bool:
		s = strconv.FormatBool(x)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	return strings.TrimSpace(s)
}
