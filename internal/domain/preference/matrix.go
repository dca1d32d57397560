package preference

import (
	"strings"

	"github.com/okian/parabellum/internal/domain/model"
)

// Matrix maps ordered pairs of distinct participants to the code the first
// recorded for the second. It is safe for concurrent reads.
type Matrix struct {
	roster []model.Participant
	index  map[model.Participant]int
	codes  []Code // row-major, len(roster)^2, Self on the diagonal
}

// Len returns the number of participants.
func (m *Matrix) Len() int { return len(m.roster) }

// Roster returns the participants in roster order.
func (m *Matrix) Roster() []model.Participant {
	out := make([]model.Participant, len(m.roster))
	copy(out, m.roster)
	return out
}

// Lookup returns the code a recorded for b. Self-pairs and participants
// outside the roster fail with ErrUnknownPair.
func (m *Matrix) Lookup(a, b model.Participant) (Code, error) {
	const op = "preference.lookup"
	if a == b {
		return 0, model.Errorf(op, model.ErrUnknownPair, "self lookup for %q", a)
	}
	i, ok := m.index[a]
	if !ok {
		return 0, model.Errorf(op, model.ErrUnknownPair, "unknown participant %q", a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, model.Errorf(op, model.ErrUnknownPair, "unknown participant %q", b)
	}
	return m.codes[i*len(m.roster)+j], nil
}

// Preference is one entry of a participant's row.
type Preference struct {
	Other model.Participant
	Code  Code
}

// Row returns a's preferences toward every other participant, in roster order.
func (m *Matrix) Row(a model.Participant) ([]Preference, error) {
	i, ok := m.index[a]
	if !ok {
		return nil, model.Errorf("preference.row", model.ErrUnknownPair, "unknown participant %q", a)
	}
	n := len(m.roster)
	out := make([]Preference, 0, n-1)
	for j, other := range m.roster {
		if j == i {
			continue
		}
		out = append(out, Preference{Other: other, Code: m.codes[i*n+j]})
	}
	return out, nil
}

// Describe renders a's row as a short human-readable listing.
func (m *Matrix) Describe(a model.Participant) (string, error) {
	row, err := m.Row(a)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Player '")
	b.WriteString(a)
	b.WriteString("' likes:")
	for _, p := range row {
		b.WriteString("\n  ")
		b.WriteString(p.Other)
		b.WriteString(": ")
		b.WriteString(p.Code.String())
	}
	return b.String(), nil
}

// Builder assembles a Matrix one row at a time, in roster order.
type Builder struct {
	roster []model.Participant
	index  map[model.Participant]int
	codes  []Code
	next   int
	built  bool
}

// NewBuilder starts a matrix for the given roster. Identifiers must be
// non-empty and unique.
func NewBuilder(roster []model.Participant) (*Builder, error) {
	const op = "preference.new_builder"
	index := make(map[model.Participant]int, len(roster))
	for i, p := range roster {
		if p == "" {
			return nil, model.Errorf(op, model.ErrMalformedInput, "empty participant identifier at position %d", i+1)
		}
		if prev, dup := index[p]; dup {
			return nil, model.Errorf(op, model.ErrMalformedInput, "participant %q listed at positions %d and %d", p, prev+1, i+1)
		}
		index[p] = i
	}
	r := make([]model.Participant, len(roster))
	copy(r, roster)
	return &Builder{
		roster: r,
		index:  index,
		codes:  make([]Code, len(roster)*len(roster)),
	}, nil
}

// Expected returns the participant whose row AddRow expects next, and false
// once every row has been added.
func (b *Builder) Expected() (model.Participant, bool) {
	if b.next >= len(b.roster) {
		return "", false
	}
	return b.roster[b.next], true
}

// AddRow records id's codes toward every roster position. The row is only
// stored if it is valid as a whole.
func (b *Builder) AddRow(id model.Participant, codes []Code) error {
	const op = "preference.add_row"
	if b.built {
		return model.Errorf(op, model.ErrSequenceMismatch, "matrix already built, unexpected record for %q", id)
	}
	want, ok := b.Expected()
	if !ok {
		return model.Errorf(op, model.ErrSequenceMismatch, "found record for player %q after the last roster entry", id)
	}
	if id != want {
		return model.Errorf(op, model.ErrSequenceMismatch, "found record for player %q, expected %q", id, want)
	}
	n := len(b.roster)
	if len(codes) != n {
		return model.Errorf(op, model.ErrMalformedInput, "player %q has %d codes, expected %d", id, len(codes), n)
	}
	for j, c := range codes {
		if j == b.next {
			if c != Self {
				return model.Errorf(op, model.ErrMalformedInput, "player %q must mark self with the self marker %q, found %q", id, Self.String(), c.String())
			}
			continue
		}
		if !c.Ranked() {
			return model.Errorf(op, model.ErrInvalidCode, "player %q has code %q for %q", id, c.String(), b.roster[j])
		}
	}
	copy(b.codes[b.next*n:(b.next+1)*n], codes)
	b.next++
	return nil
}

// Build finalizes the matrix. Every roster participant must have a row.
func (b *Builder) Build() (*Matrix, error) {
	if want, ok := b.Expected(); ok {
		return nil, model.Errorf("preference.build", model.ErrSequenceMismatch, "missing record for player %q", want)
	}
	b.built = true
	return &Matrix{roster: b.roster, index: b.index, codes: b.codes}, nil
}
