// Package types contains the report shapes shared by the API and the CLI.
package types

import (
	"fmt"

	"github.com/okian/parabellum/internal/domain/ranking"
)

// Team is one reported team.
type Team struct {
	Members []string `json:"members"`
	Name    string   `json:"name"`
}

// Group is a score header and the teams that reached it.
type Group struct {
	Score    int    `json:"score"`
	MaxScore int    `json:"max_score"`
	Label    string `json:"label"` // "score/max"
	Teams    []Team `json:"teams"`
}

// Report is the outcome of one run after the reporting cutoff.
type Report struct {
	RunID        string  `json:"run_id"`
	Participants int     `json:"participants"`
	Evaluated    int     `json:"evaluated"`
	Vetoed       int     `json:"vetoed"`
	Qualified    int     `json:"qualified"`
	Reported     int     `json:"reported"`
	Limit        int     `json:"limit"`
	Groups       []Group `json:"groups"`
}

// NewReport converts a ranking result into a Report, keeping only the
// groups within limit.
func NewReport(runID string, res *ranking.Result, limit, maxScore int) Report {
	top := res.Top(limit)
	rep := Report{
		RunID:        runID,
		Participants: res.Participants,
		Evaluated:    res.Evaluated,
		Vetoed:       res.Vetoed,
		Qualified:    res.Qualified(),
		Limit:        limit,
		Groups:       make([]Group, 0, len(top)),
	}
	for _, g := range top {
		out := Group{
			Score:    g.Score,
			MaxScore: maxScore,
			Label:    fmt.Sprintf("%d/%d", g.Score, maxScore),
			Teams:    make([]Team, 0, len(g.Teams)),
		}
		for _, t := range g.Teams {
			members := make([]string, len(t.Members))
			copy(members, t.Members[:])
			out.Teams = append(out.Teams, Team{Members: members, Name: t.String()})
		}
		rep.Reported += len(out.Teams)
		rep.Groups = append(rep.Groups, out)
	}
	return rep
}
