// Package preference holds the directional preference matrix: who likes whom,
// and how much. Codes are decoded once when a grid is parsed; the matrix is
// immutable after Build.
package preference

import (
	"strings"

	"github.com/okian/parabellum/internal/domain/model"
)

// Code is a participant's rating of another participant.
type Code uint8

// Ranked codes come first, in increasing order of interest. Self is only
// valid on the diagonal.
const (
	None Code = iota
	Neutral
	Affinity
	Self
)

// RankedCodes lists the codes that may appear off the diagonal.
var RankedCodes = []Code{None, Neutral, Affinity}

// ParseCode decodes the single-character grid encoding of a code.
func ParseCode(s string) (Code, error) {
	switch strings.TrimSpace(s) {
	case "N":
		return None, nil
	case "0":
		return Neutral, nil
	case "A":
		return Affinity, nil
	case "X":
		return Self, nil
	}
	return 0, model.Errorf("preference.parse_code", model.ErrInvalidCode, "unrecognized code %q", s)
}

// Ranked reports whether c is one of None, Neutral or Affinity.
func (c Code) Ranked() bool { return c <= Affinity }

// Rank is the table index of a ranked code.
func (c Code) Rank() int { return int(c) }

// String returns the grid encoding of c.
func (c Code) String() string {
	switch c {
	case None:
		return "N"
	case Neutral:
		return "0"
	case Affinity:
		return "A"
	case Self:
		return "X"
	default:
		return "?"
	}
}
