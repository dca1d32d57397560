package preference

import (
	"strings"

	"github.com/okian/parabellum/internal/domain/model"
)

// HeaderMarker must be the first cell of a grid's header row.
const HeaderMarker = "PLAYERS"

// FromGrid builds a Matrix from rows of text cells. Row 0 is the header
// ("PLAYERS", then the roster); each following row is a participant record:
// the participant's identifier, then one code per roster position.
//
// Spreadsheet exports pad rows, so trailing blank cells and trailing blank
// rows are ignored.
func FromGrid(rows [][]string) (*Matrix, error) {
	const op = "preference.from_grid"
	if len(rows) == 0 {
		return nil, model.Errorf(op, model.ErrMalformedInput, "empty grid")
	}
	header := trimTrailingBlank(rows[0])
	if len(header) == 0 || strings.TrimSpace(header[0]) != HeaderMarker {
		return nil, model.Errorf(op, model.ErrMalformedInput, "first line of input should start with %q", HeaderMarker)
	}
	roster := make([]model.Participant, 0, len(header)-1)
	for _, cell := range header[1:] {
		roster = append(roster, strings.TrimSpace(cell))
	}
	b, err := NewBuilder(roster)
	if err != nil {
		return nil, err
	}

	n := len(roster)
	for line, raw := range rows[1:] {
		record := trimTrailingBlank(raw)
		want, expecting := b.Expected()
		if !expecting {
			if len(record) == 0 {
				continue
			}
			return nil, model.Errorf(op, model.ErrSequenceMismatch, "line %d: unexpected record for %q after the last player", line+2, strings.TrimSpace(record[0]))
		}
		id := ""
		if len(record) > 0 {
			id = strings.TrimSpace(record[0])
		}
		if id != want {
			return nil, model.Errorf(op, model.ErrSequenceMismatch, "line %d: found record for player %q, expected %q", line+2, id, want)
		}
		cells := record[1:]
		if len(cells) != n {
			return nil, model.Errorf(op, model.ErrMalformedInput, "line %d: player %q has %d codes, expected %d", line+2, id, len(cells), n)
		}
		codes := make([]Code, n)
		for j, cell := range cells {
			c, err := ParseCode(cell)
			if err != nil {
				return nil, model.Errorf(op, model.ErrInvalidCode, "line %d: player %q has unrecognized code %q for %q", line+2, id, strings.TrimSpace(cell), roster[j])
			}
			codes[j] = c
		}
		if err := b.AddRow(id, codes); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// trimTrailingBlank drops trailing cells that are empty after trimming.
func trimTrailingBlank(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}
