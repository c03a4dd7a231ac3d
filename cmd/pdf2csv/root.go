package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/engine"
	"github.com/joseph-ayodele/pdf2csv/internal/export"
	"github.com/joseph-ayodele/pdf2csv/internal/extract"
	"github.com/joseph-ayodele/pdf2csv/internal/pdfinfo"
	"github.com/joseph-ayodele/pdf2csv/internal/pipeline"
)

type options struct {
	outdir         string
	pages          string
	area           string
	mode           string
	guess          bool
	columns        string
	merge          bool
	outfile        string
	noBOM          bool
	streamFallback bool
	encoding       string
	format         string
	engine         string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "pdf2csv INPUT",
		Short: "Extract tables from a PDF into CSV files",
		Long: `pdf2csv hands a PDF to a table extraction engine, normalizes the tables it
returns to a common column count and writes them as CSV (or XLSX).

Examples:
  pdf2csv report.pdf -p 2-4 -o out
  pdf2csv report.pdf -a "110,28,555,820" --mode stream --guess=false --columns 120,260,400
  pdf2csv report.pdf --merge --outfile all.csv --stream-fallback`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{fmt.Errorf("expected exactly one INPUT pdf, got %d arguments", len(args))}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args[0])
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	bindFlags(cmd.Flags(), o)
	return cmd
}

func bindFlags(f *pflag.FlagSet, o *options) {
	f.SortFlags = false
	f.StringVarP(&o.outdir, "outdir", "o", constants.DefaultOutdir, "output directory")
	f.StringVarP(&o.pages, "pages", "p", "all", `pages to extract: "all" or a list like "1-3,5"`)
	f.StringVarP(&o.area, "area", "a", "", "extraction region top,left,bottom,right in points")
	f.StringVar(&o.mode, "mode", string(constants.Lattice), "lattice (strict) or stream (permissive)")
	o.guess = true
	f.Var((*boolChoice)(&o.guess), "guess", "let the engine auto-detect table regions: true or false")
	f.StringVar(&o.columns, "columns", "", "column boundaries x1,x2,... in points")
	f.BoolVar(&o.merge, "merge", false, "write all tables to one file with blank separator rows")
	f.StringVar(&o.outfile, "outfile", constants.DefaultOutfile, "merged file name inside --outdir")
	f.BoolVar(&o.noBOM, "no-bom", false, "omit the UTF-8 byte order mark")
	f.BoolVar(&o.streamFallback, "stream-fallback", false, "retry once in stream mode without guessing when lattice finds nothing")
	f.StringVar(&o.encoding, "encoding", "utf-8", "CSV text encoding, e.g. utf-8, shift_jis, windows-1252")
	f.StringVar(&o.format, "format", string(constants.CSV), "output format: csv or xlsx")
	f.StringVar(&o.engine, "engine", "", "extraction engine: tabula-java or native (default $PDF2CSV_ENGINE)")
	f.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error (default $PDF2CSV_LOG_LEVEL)")
}

func run(cmd *cobra.Command, o *options, input string) error {
	cfg := common.LoadConfig()
	if o.engine != "" {
		cfg.Engine.Name = o.engine
	}
	if o.logLevel != "" {
		cfg.Log.Level = strings.ToLower(o.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := common.NewLogger(cmd.ErrOrStderr(), cfg.Log)
	slog.SetDefault(logger)

	inPath, err := expandPath(input)
	if err != nil {
		return common.InvalidInputError("resolve input path", err)
	}
	params, err := o.params(inPath)
	if err != nil {
		return err
	}
	w, err := o.writer(logger)
	if err != nil {
		return err
	}

	// The input is checked before anything is created on disk.
	info, err := pdfinfo.Probe(inPath)
	if err != nil {
		return err
	}

	outdir, err := expandPath(o.outdir)
	if err != nil {
		return common.WriteError(o.outdir, err)
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return common.WriteError(outdir, err)
	}

	ex, err := engine.New(cfg.Engine, logger)
	if err != nil {
		return err
	}

	ctx := common.WithRunID(cmd.Context(), common.NewRunID())
	ctx = common.WithLogger(ctx, logger)

	p := pipeline.NewPipeline(ex, w, logger)
	p.Probe = func(string) (pdfinfo.Info, error) { return info, nil }
	res, err := p.Run(ctx, params, pipeline.Options{
		OutDir:         outdir,
		Merge:          o.merge,
		Outfile:        o.outfile,
		StreamFallback: o.streamFallback,
	})
	if err != nil {
		return err
	}
	for _, f := range res.Files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}

// params validates the extraction flags.
func (o *options) params(input string) (extract.Params, error) {
	mode, ok := constants.CanonicalizeMode(o.mode)
	if !ok {
		return extract.Params{}, common.MalformedArgumentErrorf("--mode stream",
			"unknown mode %q (want %s, strict or permissive)", o.mode, strings.Join(constants.ModeNames(), ", "))
	}
	pages, err := extract.ParsePages(o.pages)
	if err != nil {
		return extract.Params{}, err
	}
	var area *extract.Area
	if strings.TrimSpace(o.area) != "" {
		if area, err = extract.ParseArea(o.area); err != nil {
			return extract.Params{}, err
		}
	}
	columns, err := extract.ParseColumns(o.columns)
	if err != nil {
		return extract.Params{}, err
	}
	return extract.Params{
		Path:    input,
		Pages:   pages,
		Area:    area,
		Columns: columns,
		Mode:    mode,
		Guess:   o.guess,
	}, nil
}

func (o *options) writer(logger *slog.Logger) (export.Writer, error) {
	format, ok := constants.ParseFormat(o.format)
	if !ok {
		return nil, common.MalformedArgumentErrorf("--format xlsx", "unknown format %q", o.format)
	}
	if format == constants.XLSX {
		return export.NewXLSXWriter(logger), nil
	}
	w, err := export.NewCSVWriter(export.CSVOptions{Encoding: o.encoding, BOM: !o.noBOM}, logger)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// expandPath expands a leading ~ to the home directory and makes p absolute.
func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}

// boolChoice is a bool flag that takes an explicit value, so both "--guess false"
// and "--guess=false" parse.
type boolChoice bool

func (b *boolChoice) String() string { return strconv.FormatBool(bool(*b)) }

func (b *boolChoice) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		*b = true
	case "false":
		*b = false
	default:
		return fmt.Errorf("must be true or false, got %q", s)
	}
	return nil
}

func (b *boolChoice) Type() string { return "true|false" }
