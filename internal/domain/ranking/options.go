package ranking

import "github.com/okian/parabellum/internal/domain/scoring"

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithScorer sets the pair scorer.
func WithScorer(s scoring.Scorer) Option {
	return func(r *Ranker) {
		if s != nil {
			r.scorer = s
		}
	}
}

// WithWorkers bounds how many partitions of the candidate space are scored
// concurrently. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.workers = n
		}
	}
}
