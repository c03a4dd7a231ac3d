// Package pdfinfo inspects an input document before it is handed to the engine.
package pdfinfo

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/pdf2csv/internal/common"
)

// headerWindow is how far into the file the %PDF- marker may appear.
const headerWindow = 1024

// Info describes an input document.
type Info struct {
	Path  string
	Size  int64
	Pages int // 0 when the page tree could not be read
}

// Probe checks that path exists and looks like a PDF, then counts its pages. A missing
// file or missing PDF header is an InvalidInput error; a page tree the reader cannot
// walk only leaves Pages at 0, the engine gets the final say on such files.
func Probe(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, common.InvalidInputError(fmt.Sprintf("input file not found: %s", path), err)
	}
	if st.IsDir() {
		return Info{}, common.InvalidInputError(fmt.Sprintf("input is a directory: %s", path), nil)
	}
	info := Info{Path: path, Size: st.Size()}

	if err := checkHeader(path); err != nil {
		return info, err
	}

	pages, err := countPages(path)
	if err == nil {
		info.Pages = pages
	}
	return info, nil
}

func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return common.InvalidInputError(fmt.Sprintf("cannot open input: %s", path), err)
	}
	defer f.Close()

	buf := make([]byte, headerWindow)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return common.InvalidInputError(fmt.Sprintf("cannot read input: %s", path), err)
	}
	if !bytes.Contains(buf[:n], []byte("%PDF-")) {
		return common.InvalidInputError(fmt.Sprintf("input is not a PDF: %s", path), nil)
	}
	return nil
}

// countPages walks the page tree. The reader panics on some malformed files, so the
// panic is turned into an error.
func countPages(path string) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read page tree: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return r.NumPage(), nil
}
