package loadtest

import (
	"context"
	"fmt"

	"github.com/okian/parabellum/internal/domain/preference"
	"github.com/okian/parabellum/internal/domain/ranking"
	"github.com/okian/parabellum/internal/domain/scoring"
	"github.com/okian/parabellum/internal/domain/types"
)

// expectedReport ranks rows locally, the way the service should.
func expectedReport(ctx context.Context, rows [][]string, limit int) (types.Report, error) {
	m, err := preference.FromGrid(rows)
	if err != nil {
		return types.Report{}, err
	}
	res, err := ranking.New().Rank(ctx, m)
	if err != nil {
		return types.Report{}, err
	}
	return types.NewReport("", res, limit, scoring.DefaultTable.MaxTeamScore()), nil
}

// compareReports checks that got ranks the same teams as want. Run ids are
// ignored.
func compareReports(want, got types.Report) error {
	switch {
	case got.Participants != want.Participants:
		return fmt.Errorf("participants: got %d, want %d", got.Participants, want.Participants)
	case got.Evaluated != want.Evaluated:
		return fmt.Errorf("evaluated: got %d, want %d", got.Evaluated, want.Evaluated)
	case got.Vetoed != want.Vetoed:
		return fmt.Errorf("vetoed: got %d, want %d", got.Vetoed, want.Vetoed)
	case len(got.Groups) != len(want.Groups):
		return fmt.Errorf("groups: got %d, want %d", len(got.Groups), len(want.Groups))
	}

	for i := range want.Groups {
		wg, gg := want.Groups[i], got.Groups[i]
		if gg.Score != wg.Score {
			return fmt.Errorf("group %d: score %d, want %d", i, gg.Score, wg.Score)
		}
		if len(gg.Teams) != len(wg.Teams) {
			return fmt.Errorf("group %d: %d teams, want %d", i, len(gg.Teams), len(wg.Teams))
		}
		for k := range wg.Teams {
			if gg.Teams[k].Name != wg.Teams[k].Name {
				return fmt.Errorf("group %d team %d: %q, want %q", i, k, gg.Teams[k].Name, wg.Teams[k].Name)
			}
		}
	}
	return nil
}
