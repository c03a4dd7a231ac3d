package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

// Extractor is the PDF table extraction engine: document + parameters -> raw tables.
type Extractor interface {
	Extract(ctx context.Context, p Params) ([]table.Raw, error)
	Name() string
}

// Area is an extraction region in PDF points, measured from the top-left page corner.
type Area struct {
	Top, Left, Bottom, Right float64
}

func (a Area) String() string {
	return FormatList([]float64{a.Top, a.Left, a.Bottom, a.Right})
}

// Contains reports whether the point (x, y), in top-left coordinates, lies inside a.
func (a Area) Contains(x, y float64) bool {
	return x >= a.Left && x <= a.Right && y >= a.Top && y <= a.Bottom
}

// Params is everything the engine needs for one extraction call.
type Params struct {
	Path    string
	Pages   PageSpec
	Area    *Area     // nil = whole page
	Columns []float64 // explicit column boundaries (x, points); nil = engine decides
	Mode    constants.Mode
	Guess   bool
}

// WithFallback returns the parameters for the permissive retry: stream mode with
// auto-detection off. Pages, area and columns are kept.
func (p Params) WithFallback() Params {
	q := p
	q.Mode = p.Mode.Fallback()
	q.Guess = false
	if p.Columns != nil {
		q.Columns = append([]float64(nil), p.Columns...)
	}
	return q
}

// LogValue implements slog.LogValuer so Params can be logged as one attribute group.
func (p Params) LogValue() slog.Value {
	area := "FULL"
	if p.Area != nil {
		area = p.Area.String()
	}
	columns := "-"
	if len(p.Columns) > 0 {
		columns = FormatList(p.Columns)
	}
	return slog.GroupValue(
		slog.String("mode", string(p.Mode)),
		slog.Bool("guess", p.Guess),
		slog.String("pages", p.Pages.String()),
		slog.String("area", area),
		slog.String("columns", columns),
	)
}

func (p Params) String() string {
	return fmt.Sprintf("mode=%s guess=%t pages=%s", p.Mode, p.Guess, p.Pages)
}

// FormatList renders numbers as a comma-separated list, the syntax the CLI accepts.
func FormatList(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
