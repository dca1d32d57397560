// Package grid reads preference grids exported from spreadsheets and
// normalizes their cells before they reach the preference matrix.
package grid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrRead is returned when the grid source cannot be read or parsed as CSV.
var ErrRead = errors.New("read grid")

// utf8BOM is prepended by some spreadsheet exports.
const utf8BOM = "\uFEFF"

// Normalize trims every cell and converts it to Unicode NFC, so names typed
// with composed and decomposed accents compare equal. rows is not modified.
func Normalize(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = norm.NFC.String(strings.TrimSpace(cell))
		}
		out[i] = cells
	}
	if len(out) > 0 && len(out[0]) > 0 {
		out[0][0] = strings.TrimPrefix(out[0][0], utf8BOM)
	}
	return out
}

// ReadCSV reads every record from r. Rows may have different lengths.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return Normalize(rows), nil
}

// ReadFile reads a CSV grid from path; "-" reads from stdin.
func ReadFile(path string, stdin io.Reader) ([][]string, error) {
	if path == "-" || path == "" {
		return ReadCSV(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f)
}

// WriteCSV writes rows as CSV.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return nil
}
