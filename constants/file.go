package constants

import "strings"

// Format is the on-disk output format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// DefaultOutfile is the merged output name used when --outfile is not given.
const DefaultOutfile = "tables.csv"

// DefaultOutdir is where per-table files land when --outdir is not given.
const DefaultOutdir = "csv_out"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ParseFormat maps user input to a Format.
func ParseFormat(s string) (Format, bool) {
	switch NormalizeExt(strings.TrimSpace(s)) {
	case "", "csv":
		return CSV, true
	case "xlsx", "excel":
		return XLSX, true
	default:
		return "", false
	}
}

// Ext returns the file extension (with dot) for f.
func (f Format) Ext() string {
	if f == XLSX {
		return ".xlsx"
	}
	return ".csv"
}
