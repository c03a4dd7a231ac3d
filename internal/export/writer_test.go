package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

func TestTableFileName(t *testing.T) {
	tests := []struct {
		mode  constants.Mode
		index int
		f     constants.Format
		want  string
	}{
		{constants.Lattice, 1, constants.CSV, "table_lattice_001.csv"},
		{constants.Stream, 12, constants.CSV, "table_stream_012.csv"},
		{constants.Lattice, 1000, constants.XLSX, "table_lattice_1000.xlsx"},
	}
	for _, tt := range tests {
		if got := TableFileName(tt.mode, tt.index, tt.f); got != tt.want {
			t.Errorf("TableFileName(%s, %d, %s) = %q, want %q", tt.mode, tt.index, tt.f, got, tt.want)
		}
	}
}

func TestMergedFileName(t *testing.T) {
	tests := []struct {
		outfile string
		f       constants.Format
		want    string
	}{
		{"tables.csv", constants.CSV, "tables.csv"},
		{"", constants.CSV, "tables.csv"},
		{"tables.csv", constants.XLSX, "tables.xlsx"},
		{"report.csv", constants.XLSX, "report.csv"},
		{"merged/all.csv", constants.CSV, "merged/all.csv"},
	}
	for _, tt := range tests {
		if got := MergedFileName(tt.outfile, tt.f); got != tt.want {
			t.Errorf("MergedFileName(%q, %s) = %q, want %q", tt.outfile, tt.f, got, tt.want)
		}
	}
}

func TestXLSXWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.xlsx")
	if err := NewXLSXWriter(nil).Write(path, sample); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 1 || got[0] != SheetName {
		t.Fatalf("expected a single %q sheet, got %v", SheetName, got)
	}
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// GetRows trims trailing empty cells, so pad back to the table width.
	for i := range rows {
		for len(rows[i]) < sample.Width() {
			rows[i] = append(rows[i], "")
		}
	}
	if diff := cmp.Diff(sample.Rows, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSXWriter_TooWideTable(t *testing.T) {
	// One column past the sheet limit.
	wide := table.Normalized{Rows: [][]string{make([]string, excelize.MaxColumns+1)}}

	f, err := Workbook(wide)
	if err == nil || f != nil {
		t.Fatalf("Workbook = (%v, %v), want nil workbook and an error", f, err)
	}

	path := filepath.Join(t.TempDir(), "wide.xlsx")
	err = NewXLSXWriter(nil).Write(path, wide)
	if !errors.Is(err, common.ErrWrite) {
		t.Fatalf("Write err = %v, want write failure", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("partial workbook left at %s", path)
	}
}
