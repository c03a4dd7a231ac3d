package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type CSVOptions struct {
	Encoding string // WHATWG encoding label; "" means utf-8
	BOM      bool   // only honored for utf-8
}

type CSVWriter struct {
	opts   CSVOptions
	enc    encoding.Encoding // nil for utf-8
	name   string
	logger *slog.Logger
}

// NewCSVWriter resolves opts.Encoding. An unknown label is a malformed argument.
func NewCSVWriter(opts CSVOptions, logger *slog.Logger) (*CSVWriter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	label := strings.TrimSpace(opts.Encoding)
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, common.MalformedArgumentErrorf(`--encoding shift_jis`, "unknown encoding %q", opts.Encoding)
	}
	name, _ := htmlindex.Name(enc)

	w := &CSVWriter{opts: opts, name: name, logger: logger}
	if name != "utf-8" {
		w.enc = enc
		if opts.BOM {
			logger.Debug("export.csv.bom_ignored", "encoding", name)
		}
	}
	return w, nil
}

func (w *CSVWriter) Format() constants.Format { return constants.CSV }

// EncodingName is the canonical name of the output encoding.
func (w *CSVWriter) EncodingName() string { return w.name }

// Write creates path's parent directories and writes t to path. The file is written in
// place; a failure part way leaves a partial file behind.
func (w *CSVWriter) Write(path string, t table.Normalized) error {
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return common.WriteError(filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return common.WriteError(path, err)
	}

	if err := w.Encode(f, t); err != nil {
		_ = f.Close()
		return common.WriteError(path, err)
	}
	if err := f.Close(); err != nil {
		return common.WriteError(path, err)
	}

	w.logger.Debug("export.csv.ok",
		"path", path,
		"rows", len(t.Rows),
		"cols", t.Width(),
		"encoding", w.name,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Encode writes t as CSV to dst in the configured encoding.
func (w *CSVWriter) Encode(dst io.Writer, t table.Normalized) error {
	bw := bufio.NewWriter(dst)

	var out io.Writer = bw
	var tw io.WriteCloser
	if w.enc != nil {
		tw = transform.NewWriter(bw, w.enc.NewEncoder())
		out = tw
	} else if w.opts.BOM {
		if _, err := bw.Write(utf8BOM); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(out)
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("encode %s: %w", w.name, err)
		}
	}
	return bw.Flush()
}
