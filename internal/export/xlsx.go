package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

// SheetName is the worksheet every table is written to.
const SheetName = "Tables"

// XLSXWriter writes each table as a one-sheet workbook.
type XLSXWriter struct {
	logger *slog.Logger
}

func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger}
}

func (w *XLSXWriter) Format() constants.Format { return constants.XLSX }

func (w *XLSXWriter) Write(path string, t table.Normalized) error {
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return common.WriteError(filepath.Dir(path), err)
	}

	f, err := Workbook(t)
	if err != nil {
		return common.WriteError(path, err)
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return common.WriteError(path, fmt.Errorf("xlsx write: %w", err))
	}

	w.logger.Debug("export.xlsx.ok",
		"path", path,
		"rows", len(t.Rows),
		"cols", t.Width(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Workbook builds an in-memory workbook holding t on SheetName. Every cell is stored
// as a string so numeric-looking text keeps its exact form. On error the workbook is
// closed and nil is returned.
func Workbook(t table.Normalized) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillSheet(f, t); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillSheet(f *excelize.File, t table.Normalized) error {
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("row %d: %w", r+1, err)
		}
	}
	return nil
}
