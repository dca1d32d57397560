// Package ranking enumerates every team of three from a preference matrix,
// scores it, drops vetoed teams and groups the rest by score.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/okian/parabellum/internal/domain/model"
	"github.com/okian/parabellum/internal/domain/preference"
	"github.com/okian/parabellum/internal/domain/scoring"
)

// DefaultReportLimit is the team count after which reporting stops. The
// group that reaches it is still reported in full.
const DefaultReportLimit = 9

// Group holds the teams that reached one total score, in enumeration order.
type Group struct {
	Score int
	Teams []model.Team
}

// Result is the outcome of one ranking pass.
type Result struct {
	Participants int
	Evaluated    int     // candidate teams scored
	Vetoed       int     // candidates with a zero-scoring pair
	Groups       []Group // qualifying teams, highest score first
}

// Qualified returns the number of teams that survived the veto.
func (r *Result) Qualified() int {
	return r.Evaluated - r.Vetoed
}

// Top returns whole groups from the highest score down until at least limit
// teams have been emitted. The cutoff is only checked between groups. A limit
// of zero or less returns every group.
func (r *Result) Top(limit int) []Group {
	if limit <= 0 {
		return r.Groups
	}
	count := 0
	for i, g := range r.Groups {
		count += len(g.Teams)
		if count >= limit {
			return r.Groups[:i+1]
		}
	}
	return r.Groups
}

// Ranker scores candidate teams against a matrix. It holds no per-run state
// and may be shared.
type Ranker struct {
	scorer  scoring.Scorer
	workers int
}

// New creates a Ranker with the default table scorer and a single worker.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		scorer:  scoring.NewTableScorer(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ScoreTeam sums the pair scores of t. The first vetoed pair short-circuits
// the whole team to 0.
func (r *Ranker) ScoreTeam(m *preference.Matrix, t model.Team) (int, error) {
	total := 0
	for x := 0; x < model.TeamSize; x++ {
		for y := x + 1; y < model.TeamSize; y++ {
			s, err := r.scorePair(m, t.Members[x], t.Members[y])
			if err != nil {
				return 0, err
			}
			if s == 0 {
				return 0, nil
			}
			total += s
		}
	}
	return total, nil
}

func (r *Ranker) scorePair(m *preference.Matrix, a, b model.Participant) (int, error) {
	ab, err := m.Lookup(a, b)
	if err != nil {
		return 0, err
	}
	ba, err := m.Lookup(b, a)
	if err != nil {
		return 0, err
	}
	return r.scorer.Score(ab, ba)
}

// partition is the scored share of the candidate space whose first index is
// fixed.
type partition struct {
	evaluated int
	vetoed    int
	teams     []model.ScoredTeam
}

// Rank scores every team of three in m and groups the survivors. Partitions
// are merged in index order, so the result does not depend on the number of
// workers.
func (r *Ranker) Rank(ctx context.Context, m *preference.Matrix) (*Result, error) {
	roster := m.Roster()
	n := len(roster)
	res := &Result{Participants: n}
	if n < model.TeamSize {
		return res, nil
	}

	parts := make([]partition, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := 0; i < n-2; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("ranking cancelled: %w", err)
			}
			return r.scorePartition(m, roster, i, &parts[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byScore := make(map[int][]model.Team)
	for i := range parts {
		p := &parts[i]
		res.Evaluated += p.evaluated
		res.Vetoed += p.vetoed
		for _, st := range p.teams {
			byScore[st.Score] = append(byScore[st.Score], st.Team)
		}
	}
	res.Groups = make([]Group, 0, len(byScore))
	for score, teams := range byScore {
		res.Groups = append(res.Groups, Group{Score: score, Teams: teams})
	}
	sort.Slice(res.Groups, func(a, b int) bool {
		return res.Groups[a].Score > res.Groups[b].Score
	})
	return res, nil
}

func (r *Ranker) scorePartition(m *preference.Matrix, roster []model.Participant, i int, out *partition) error {
	var err error
	eachTripleFrom(i, len(roster), func(i, j, k int) bool {
		t := model.Team{Members: [model.TeamSize]model.Participant{roster[i], roster[j], roster[k]}}
		var score int
		score, err = r.ScoreTeam(m, t)
		if err != nil {
			return false
		}
		out.evaluated++
		if score == 0 {
			out.vetoed++
			return true
		}
		out.teams = append(out.teams, model.ScoredTeam{Team: t, Score: score})
		return true
	})
	return err
}
