package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/pdf2csv/internal/common"
)

const (
	exampleArea    = `-a "110,28,555,820"`
	exampleColumns = `--columns "95,245,330,420,510,600,690,780"`
	examplePages   = `-p "all" or -p "1-3,5"`
)

// ParseArea parses "top,left,bottom,right". An empty string means no area.
func ParseArea(s string) (*Area, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, common.MalformedArgumentErrorf(exampleArea,
			"area must be top,left,bottom,right (4 values), got %d in %q", len(parts), s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, common.MalformedArgumentErrorf(exampleArea, "area value %q is not a number", p)
		}
		vals[i] = v
	}
	return &Area{Top: vals[0], Left: vals[1], Bottom: vals[2], Right: vals[3]}, nil
}

// ParseColumns parses "x1,x2,...". Empty items are skipped; an empty list means none.
func ParseColumns(s string) ([]float64, error) {
	var cols []float64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, common.MalformedArgumentErrorf(exampleColumns, "column boundary %q is not a number", p)
		}
		cols = append(cols, v)
	}
	return cols, nil
}

// PageRange is an inclusive 1-based page interval.
type PageRange struct {
	From, To int
}

// PageSpec selects pages: all of them, or a list of ranges.
type PageSpec struct {
	All    bool
	Ranges []PageRange
}

// AllPages is the default page selection.
var AllPages = PageSpec{All: true}

func (s PageSpec) String() string {
	if s.All || len(s.Ranges) == 0 {
		return "all"
	}
	parts := make([]string, len(s.Ranges))
	for i, r := range s.Ranges {
		if r.From == r.To {
			parts[i] = strconv.Itoa(r.From)
		} else {
			parts[i] = fmt.Sprintf("%d-%d", r.From, r.To)
		}
	}
	return strings.Join(parts, ",")
}

// ParsePages parses "all" or a list like "1-3,5".
func ParsePages(s string) (PageSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllPages, nil
	}

	var spec PageSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, isRange := strings.Cut(part, "-")
		a, err := parsePage(from)
		if err != nil {
			return PageSpec{}, err
		}
		b := a
		if isRange {
			if b, err = parsePage(to); err != nil {
				return PageSpec{}, err
			}
		}
		if b < a {
			return PageSpec{}, common.MalformedArgumentErrorf(examplePages, "page range %q runs backwards", part)
		}
		spec.Ranges = append(spec.Ranges, PageRange{From: a, To: b})
	}
	if len(spec.Ranges) == 0 {
		return PageSpec{}, common.MalformedArgumentErrorf(examplePages, "page spec %q selects no pages", s)
	}
	return spec, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, common.MalformedArgumentErrorf(examplePages, "page %q is not a positive integer", s)
	}
	return n, nil
}

// Resolve expands s into sorted, de-duplicated 1-based page numbers for a document of
// pageCount pages.
func (s PageSpec) Resolve(pageCount int) ([]int, error) {
	if s.All || len(s.Ranges) == 0 {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, r := range s.Ranges {
		if r.To > pageCount {
			return nil, common.MalformedArgumentErrorf(examplePages,
				"page %d out of range (document has %d pages)", r.To, pageCount)
		}
		for p := r.From; p <= r.To; p++ {
			if !seen[p] {
				seen[p] = true
				pages = append(pages, p)
			}
		}
	}
	sort.Ints(pages)
	return pages, nil
}
