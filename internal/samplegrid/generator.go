// Package samplegrid generates random preference grids in the spreadsheet
// layout accepted by preference.FromGrid. It backs the gen-grid tool and
// property tests.
package samplegrid

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/okian/parabellum/internal/domain/preference"
)

// Default generator configuration constants.
const (
	defaultPlayers      = 12
	defaultSeed         = 42
	defaultVetoRate     = 0.15
	defaultAffinityRate = 0.4
)

// Generator produces grids. It is not safe for concurrent use.
type Generator struct {
	players      int
	seed         int64
	vetoRate     float64
	affinityRate float64
	uuidNames    bool
}

// New creates a generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		players:      defaultPlayers,
		seed:         defaultSeed,
		vetoRate:     defaultVetoRate,
		affinityRate: defaultAffinityRate,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a header row followed by one record per participant.
// The same options always produce the same grid.
func (g *Generator) Generate() ([][]string, error) {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // reproducible sample data

	roster, err := g.names(rng)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(roster)+1)
	header := append([]string{preference.HeaderMarker}, roster...)
	rows = append(rows, header)
	for i, name := range roster {
		row := make([]string, 0, len(roster)+1)
		row = append(row, name)
		for j := range roster {
			row = append(row, g.code(rng, i == j).String())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (g *Generator) names(rng *rand.Rand) ([]string, error) {
	roster := make([]string, g.players)
	for i := range roster {
		if !g.uuidNames {
			roster[i] = fmt.Sprintf("player-%02d", i+1)
			continue
		}
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("generate participant id: %w", err)
		}
		roster[i] = id.String()
	}
	return roster, nil
}

func (g *Generator) code(rng *rand.Rand, self bool) preference.Code {
	if self {
		return preference.Self
	}
	if rng.Float64() < g.vetoRate {
		return preference.None
	}
	if rng.Float64() < g.affinityRate {
		return preference.Affinity
	}
	return preference.Neutral
}
