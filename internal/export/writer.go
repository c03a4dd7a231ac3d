// Package export serializes normalized tables to disk.
package export

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

// Writer writes one table to one file, creating parent directories as needed.
type Writer interface {
	Write(path string, t table.Normalized) error
	Format() constants.Format
}

// TableFileName names the file for the index-th (1-based) table extracted in mode.
func TableFileName(mode constants.Mode, index int, f constants.Format) string {
	return fmt.Sprintf("table_%s_%03d%s", mode, index, f.Ext())
}

// MergedFileName returns the merged output name. The default name follows the format's
// extension; a name the user chose is kept verbatim.
func MergedFileName(outfile string, f constants.Format) string {
	if outfile == "" || outfile == constants.DefaultOutfile {
		return strings.TrimSuffix(constants.DefaultOutfile, ".csv") + f.Ext()
	}
	return outfile
}
