// Package native extracts tables in-process with the tabula PDF reader, for hosts
// without a Java runtime.
package native

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/extract"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

// Client implements extract.Extractor on top of github.com/tsawler/tabula.
//
// Strategy per call:
//   - explicit columns, or stream without guess: the (clipped) page is laid out as a
//     single table by text flow;
//   - otherwise the geometric detector finds table regions; lattice keeps only the
//     ones backed by drawn grid lines.
type Client struct {
	config tables.Config
	logger *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{config: tables.DefaultConfig(), logger: logger}
}

func (c *Client) Name() string { return common.EngineNative }

func (c *Client) Extract(ctx context.Context, p extract.Params) ([]table.Raw, error) {
	start := time.Now()

	r, err := reader.Open(p.Path)
	if err != nil {
		return nil, common.ExtractionError(err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, common.ExtractionError(fmt.Errorf("page count: %w", err))
	}
	pageNums, err := p.Pages.Resolve(count)
	if err != nil {
		return nil, err
	}

	var raws []table.Raw
	for _, n := range pageNums {
		if err := ctx.Err(); err != nil {
			return nil, common.ExtractionError(err)
		}
		found, err := c.extractPage(r, n, p)
		if err != nil {
			return nil, common.ExtractionError(fmt.Errorf("page %d: %w", n, err))
		}
		raws = append(raws, found...)
	}

	c.logger.Debug("native.extract.ok",
		"mode", p.Mode,
		"pages", len(pageNums),
		"tables", len(raws),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return raws, nil
}

func (c *Client) extractPage(r *reader.Reader, n int, p extract.Params) ([]table.Raw, error) {
	page, err := r.GetPage(n - 1)
	if err != nil {
		return nil, err
	}
	height, err := page.Height()
	if err != nil {
		return nil, err
	}
	width, _ := page.Width()

	frags, err := r.ExtractTextFragments(page)
	if err != nil {
		return nil, err
	}
	kept := clipFragments(frags, height, p.Area)

	if len(p.Columns) > 0 || (p.Mode == constants.Stream && !p.Guess) {
		rows, ok := textflowTable(toWords(kept, height), p.Columns, c.config.MaxCellGap)
		if !ok {
			return nil, nil
		}
		return []table.Raw{{Rows: rows, Page: n}}, nil
	}

	var lines []model.Line
	if p.Mode == constants.Lattice {
		if lines, err = pageLines(page); err != nil {
			c.logger.Warn("native.lines.failed", "page", n, "error", err)
		}
	}

	mp := model.NewPage(width, height)
	mp.Number = n
	mp.RawText = toModelFragments(kept)
	mp.RawLines = lines

	det := tables.NewGeometricDetector()
	cfg := c.config
	cfg.UseWhitespace = p.Mode == constants.Stream
	if err := det.Configure(cfg); err != nil {
		return nil, err
	}
	detected, err := det.Detect(mp)
	if err != nil {
		return nil, err
	}

	var raws []table.Raw
	for _, t := range detected {
		if p.Mode == constants.Lattice && !t.HasGrid {
			continue
		}
		raws = append(raws, table.Raw{Rows: cellRows(t), Page: n})
	}
	return raws, nil
}

// clipFragments keeps the fragments whose centre lies inside area (top-left coords).
func clipFragments(frags []text.TextFragment, pageHeight float64, area *extract.Area) []text.TextFragment {
	if area == nil {
		return frags
	}
	var kept []text.TextFragment
	for _, f := range frags {
		cx := f.X + f.Width/2
		cy := pageHeight - (f.Y + f.Height/2)
		if area.Contains(cx, cy) {
			kept = append(kept, f)
		}
	}
	return kept
}

func toWords(frags []text.TextFragment, pageHeight float64) []word {
	words := make([]word, 0, len(frags))
	for _, f := range frags {
		if f.Text == "" {
			continue
		}
		words = append(words, word{
			text:   f.Text,
			left:   f.X,
			right:  f.X + f.Width,
			top:    pageHeight - (f.Y + f.Height),
			bottom: pageHeight - f.Y,
		})
	}
	return words
}

func toModelFragments(frags []text.TextFragment) []model.TextFragment {
	out := make([]model.TextFragment, len(frags))
	for i, f := range frags {
		out[i] = model.TextFragment{
			Text:     f.Text,
			BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		}
	}
	return out
}

// pageLines decodes the page content and returns its stroked lines and rectangles.
func pageLines(page *pages.Page) ([]model.Line, error) {
	contents, err := page.Contents()
	if err != nil {
		return nil, err
	}
	var data []byte
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		d, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("decode content stream: %w", err)
		}
		data = append(data, d...)
	}
	if len(data) == 0 {
		return nil, nil
	}

	ge := graphicsstate.NewGraphicsExtractor()
	if err := ge.ExtractFromBytes(data); err != nil {
		return nil, err
	}
	return append(ge.ToModelLines(), ge.ToModelRectangles()...), nil
}

func cellRows(t *model.Table) [][]any {
	rows := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell.Text
		}
		rows[i] = cells
	}
	return rows
}
