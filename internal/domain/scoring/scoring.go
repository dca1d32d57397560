// Package scoring converts the two directional preference codes of a pair
// into a single compatibility score.
package scoring

import (
	"github.com/okian/parabellum/internal/domain/model"
	"github.com/okian/parabellum/internal/domain/preference"
)

// Table is indexed by (rank of a's code for b, rank of b's code for a), in
// the order None, Neutral, Affinity.
type Table [3][3]int

// DefaultTable vetoes any pair with a None on either side and rewards
// mutual affinity the most.
var DefaultTable = Table{ //nolint:gochecknoglobals // fixed scoring configuration
	{0, 0, 0},
	{0, 1, 2},
	{0, 2, 4},
}

// Symmetric reports whether swapping the axes leaves the table unchanged.
func (t Table) Symmetric() bool {
	for i := range t {
		for j := range t[i] {
			if t[i][j] != t[j][i] {
				return false
			}
		}
	}
	return true
}

// Max returns the highest pair score in the table.
func (t Table) Max() int {
	best := t[0][0]
	for i := range t {
		for _, v := range t[i] {
			if v > best {
				best = v
			}
		}
	}
	return best
}

// MaxTeamScore is the best total a team can reach: every pair at the table
// maximum.
func (t Table) MaxTeamScore() int {
	return t.Max() * model.TeamSize * (model.TeamSize - 1) / 2
}

// Scorer scores a pair from a's code for b and b's code for a.
type Scorer interface {
	Score(ab, ba preference.Code) (int, error)
}

// Option applies a configuration option to the TableScorer.
type Option func(*TableScorer)

// WithTable replaces the default table. Tests use it to probe the ranker
// with asymmetric tables; production code keeps DefaultTable.
func WithTable(t Table) Option {
	return func(s *TableScorer) {
		s.table = t
	}
}

// TableScorer implements Scorer with a fixed lookup table. It has no mutable
// state and is safe for concurrent use.
type TableScorer struct {
	table Table
}

// NewTableScorer creates a scorer backed by DefaultTable unless overridden.
func NewTableScorer(opts ...Option) *TableScorer {
	s := &TableScorer{table: DefaultTable}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the scorer's lookup table.
func (s *TableScorer) Table() Table { return s.table }

// Score looks up the pair score. The Self marker, or anything else outside
// the three ranked codes, fails with ErrInvalidCode.
func (s *TableScorer) Score(ab, ba preference.Code) (int, error) {
	const op = "scoring.score"
	if !ab.Ranked() {
		return 0, model.Errorf(op, model.ErrInvalidCode, "code %q cannot be scored", ab.String())
	}
	if !ba.Ranked() {
		return 0, model.Errorf(op, model.ErrInvalidCode, "code %q cannot be scored", ba.String())
	}
	return s.table[ab.Rank()][ba.Rank()], nil
}
