package table

// Merge concatenates tables into one, with a single all-empty separator row between
// consecutive tables. A separator is as wide as the table before it.
func Merge(tables []Normalized) Normalized {
	var merged Normalized
	if len(tables) == 0 {
		return merged
	}
	merged.Columns = append([]Column(nil), tables[0].Columns...)

	for i, t := range tables {
		for _, row := range t.Rows {
			merged.Rows = append(merged.Rows, append([]string(nil), row...))
		}
		if i != len(tables)-1 {
			merged.Rows = append(merged.Rows, make([]string, t.Width()))
		}
	}
	return merged
}
