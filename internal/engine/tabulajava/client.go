// Package tabulajava drives the tabula-java command line through a Runner and turns
// its JSON output into raw tables.
package tabulajava

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/extract"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

type Config struct {
	JavaBin   string   // binary name or absolute path; if empty -> "java"
	TabulaJar string   // path to the tabula-java jar; if empty -> "tabula.jar"
	JavaOpts  []string // JVM flags placed before -jar
	Timeout   time.Duration
}

type Client struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.JavaBin == "" {
		cfg.JavaBin = "java"
	}
	if cfg.TabulaJar == "" {
		cfg.TabulaJar = "tabula.jar"
	}
	return &Client{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (c *Client) WithRunner(r Runner) *Client {
	c.runner = r
	return c
}

func (c *Client) Name() string { return common.EngineTabulaJava }

// Available checks that java is on PATH and the jar exists.
func (c *Client) Available() error {
	if _, err := c.runner.LookPath(c.cfg.JavaBin); err != nil {
		return common.NewAppError(common.KindEngineUnavailable, fmt.Sprintf("java not found (%s)", c.cfg.JavaBin), err).
			WithHint("install a JDK (e.g. `brew install openjdk`) and put java on PATH, or set PDF2CSV_JAVA")
	}
	if _, err := os.Stat(c.cfg.TabulaJar); err != nil {
		return common.NewAppError(common.KindEngineUnavailable, fmt.Sprintf("tabula jar not found (%s)", c.cfg.TabulaJar), err).
			WithHint("download tabula-java's *-jar-with-dependencies.jar and set PDF2CSV_TABULA_JAR")
	}
	return nil
}

// Extract runs tabula-java once with p.
func (c *Client) Extract(ctx context.Context, p extract.Params) ([]table.Raw, error) {
	if err := c.Available(); err != nil {
		return nil, err
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, errb, err := c.runner.Run(ctx, c.cfg.JavaBin, c.args(p)...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", c.cfg.Timeout, err)
		}
		if msg := truncate(string(errb), 2<<10); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, common.ExtractionError(err)
	}

	raws, err := decodeOutput(out)
	if err != nil {
		return nil, common.ExtractionError(err)
	}

	c.logger.Debug("tabula.extract.ok",
		"mode", p.Mode,
		"tables", len(raws),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return raws, nil
}

// args builds the tabula-java command line for p.
func (c *Client) args(p extract.Params) []string {
	// stderr stays on; engine failures are reported there.
	args := append([]string{}, c.cfg.JavaOpts...)
	args = append(args, "-jar", c.cfg.TabulaJar, "--format", "JSON", "--pages", p.Pages.String())

	if p.Mode == constants.Stream {
		args = append(args, "--stream")
	} else {
		args = append(args, "--lattice")
	}
	if p.Guess {
		args = append(args, "--guess")
	}
	if p.Area != nil {
		args = append(args, "--area", p.Area.String())
	}
	if len(p.Columns) > 0 {
		args = append(args, "--columns", extract.FormatList(p.Columns))
	}
	return append(args, p.Path)
}
