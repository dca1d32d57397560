package samplegrid

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithPlayers sets the roster size.
func WithPlayers(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.players = n
		}
	}
}

// WithSeed makes generation reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithVetoRate sets the probability of an N code off the diagonal.
func WithVetoRate(p float64) Option {
	return func(g *Generator) {
		if p >= 0 && p <= 1 {
			g.vetoRate = p
		}
	}
}

// WithAffinityRate sets the probability of an A code among non-vetoing codes.
func WithAffinityRate(p float64) Option {
	return func(g *Generator) {
		if p >= 0 && p <= 1 {
			g.affinityRate = p
		}
	}
}

// WithUUIDNames names participants with (seeded) UUIDs instead of
// "player-NN".
func WithUUIDNames(enabled bool) Option {
	return func(g *Generator) {
		g.uuidNames = enabled
	}
}
