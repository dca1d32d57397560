// Package model contains domain models and error kinds passed between layers.
package model

import "strings"

// TeamSize is the fixed number of members in a team.
const TeamSize = 3

// TeamSeparator joins member identifiers when a team is rendered.
const TeamSeparator = " + "

// Participant identifies a roster member. It is unique within a roster.
type Participant = string

// Team is an unordered set of three distinct participants. Members are kept
// in roster order so that rendering and comparisons are deterministic.
type Team struct {
	Members [TeamSize]Participant
}

// NewTeam builds a team from exactly TeamSize distinct participants.
func NewTeam(members ...Participant) (Team, error) {
	const op = "model.new_team"
	if len(members) != TeamSize {
		return Team{}, Errorf(op, ErrMalformedInput, "team should have size %d, not %d", TeamSize, len(members))
	}
	var t Team
	for i, m := range members {
		for _, prev := range members[:i] {
			if prev == m {
				return Team{}, Errorf(op, ErrMalformedInput, "participant %q appears twice", m)
			}
		}
		t.Members[i] = m
	}
	return t, nil
}

// Contains reports whether p is a member of the team.
func (t Team) Contains(p Participant) bool {
	for _, m := range t.Members {
		if m == p {
			return true
		}
	}
	return false
}

// String renders the team as its members joined by TeamSeparator.
func (t Team) String() string {
	return strings.Join(t.Members[:], TeamSeparator)
}

// ScoredTeam pairs a team with its total compatibility score.
type ScoredTeam struct {
	Team  Team
	Score int
}
