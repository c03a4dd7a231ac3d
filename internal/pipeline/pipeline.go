// Package pipeline runs one document through extraction, the single permissive
// fallback, normalization and output.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/export"
	"github.com/joseph-ayodele/pdf2csv/internal/extract"
	"github.com/joseph-ayodele/pdf2csv/internal/pdfinfo"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

// NoTablesHint is attached to NO_TABLES_DETECTED errors.
const NoTablesHint = "adjust the area with -a, or try --mode stream --guess=false with --columns"

// Options controls what happens around the engine call.
type Options struct {
	OutDir         string
	Merge          bool
	Outfile        string // merged file name, relative to OutDir
	StreamFallback bool
}

// Result summarizes a finished run.
type Result struct {
	RunID  string
	Mode   constants.Mode // mode that produced the tables
	Status constants.RunStatus
	Tables int
	Files  []string
}

type Pipeline struct {
	Extractor extract.Extractor
	Writer    export.Writer
	Probe     func(path string) (pdfinfo.Info, error)
	Log       *slog.Logger
}

func NewPipeline(ex extract.Extractor, w export.Writer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Extractor: ex, Writer: w, Probe: pdfinfo.Probe, Log: log}
}

// Run extracts the tables of params.Path and writes them under opts.OutDir.
// Nothing is written unless at least one table was found.
func (p *Pipeline) Run(ctx context.Context, params extract.Params, opts Options) (Result, error) {
	start := time.Now()
	log := common.LoggerFromContext(ctx, p.Log)
	res := Result{RunID: common.RunIDFromContext(ctx), Mode: params.Mode, Status: constants.RunStatusFailed}

	info, err := p.Probe(params.Path)
	if err != nil {
		return res, err
	}
	// Only checkable when the probe could read the page tree.
	if info.Pages > 0 && !params.Pages.All {
		if _, err := params.Pages.Resolve(info.Pages); err != nil {
			return res, err
		}
	}

	log.Info("pipeline.params",
		"input", params.Path,
		"engine", p.Extractor.Name(),
		"doc_pages", info.Pages,
		"params", params,
	)

	raws, used, err := p.extract(ctx, log, params, opts.StreamFallback)
	if err != nil {
		return res, err
	}
	res.Mode = used
	res.Status = constants.RunStatusOK
	if used != params.Mode {
		res.Status = constants.RunStatusFallbackOK
	}

	tables := table.Normalize(raws)
	res.Tables = len(tables)

	if opts.Merge {
		path := filepath.Join(opts.OutDir, export.MergedFileName(opts.Outfile, p.Writer.Format()))
		if err := p.Writer.Write(path, table.Merge(tables)); err != nil {
			res.Status = constants.RunStatusFailed
			return res, err
		}
		res.Files = append(res.Files, path)
	} else {
		for i, t := range tables {
			path := filepath.Join(opts.OutDir, export.TableFileName(used, i+1, p.Writer.Format()))
			if err := p.Writer.Write(path, t); err != nil {
				res.Status = constants.RunStatusFailed
				return res, err
			}
			res.Files = append(res.Files, path)
		}
	}

	log.Info("pipeline.done",
		"status", res.Status,
		"mode", res.Mode,
		"tables", res.Tables,
		"files", len(res.Files),
		"outdir", opts.OutDir,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// extract calls the engine and, when allowed, retries once in permissive mode.
func (p *Pipeline) extract(ctx context.Context, log *slog.Logger, params extract.Params, fallback bool) ([]table.Raw, constants.Mode, error) {
	raws, err := p.call(ctx, log, params)
	if err != nil {
		return nil, params.Mode, err
	}
	if len(raws) > 0 {
		return raws, params.Mode, nil
	}

	if !fallback || !params.Mode.IsStrict() {
		return nil, params.Mode, common.NewAppError(common.KindNoTables, "no tables detected", nil).WithHint(NoTablesHint)
	}

	retry := params.WithFallback()
	log.Warn("pipeline.fallback",
		"from", params.Mode,
		"to", retry.Mode,
		"guess", retry.Guess,
	)
	raws, err = p.call(ctx, log, retry)
	if err != nil {
		return nil, retry.Mode, err
	}
	if len(raws) == 0 {
		return nil, retry.Mode, common.NewAppError(common.KindNoTables, "no tables detected after stream fallback", nil).WithHint(NoTablesHint)
	}
	return raws, retry.Mode, nil
}

func (p *Pipeline) call(ctx context.Context, log *slog.Logger, params extract.Params) ([]table.Raw, error) {
	start := time.Now()
	raws, err := p.Extractor.Extract(ctx, params)
	if err != nil {
		log.Error("pipeline.extract.failed", "mode", params.Mode, "error", err)
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, common.ExtractionError(err)
	}
	log.Debug("pipeline.extract.ok",
		"mode", params.Mode,
		"tables", len(raws),
		"table_pages", tablePages(raws),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return raws, nil
}

// tablePages lists the source page of each table, in extraction order.
func tablePages(raws []table.Raw) []int {
	pages := make([]int, len(raws))
	for i, r := range raws {
		pages[i] = r.Page
	}
	return pages
}
