// Package service runs ranking requests for the HTTP API and the CLI: it
// builds the preference matrix, ranks it, applies the report limit and keeps
// run statistics.
package service

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/parabellum/internal/domain/model"
	"github.com/okian/parabellum/internal/domain/preference"
	"github.com/okian/parabellum/internal/domain/ranking"
	"github.com/okian/parabellum/internal/domain/scoring"
	"github.com/okian/parabellum/internal/domain/types"
	"github.com/okian/parabellum/pkg/logger"
	"github.com/okian/parabellum/pkg/metrics"
)

// UseDefaultLimit asks Rank and RankMatrix for the configured report limit.
const UseDefaultLimit = -1

// Service implements the API dependencies for the team ranker.
type Service struct {
	mu sync.RWMutex

	// Core components
	scorer *scoring.TableScorer
	ranker *ranking.Ranker

	// Configuration
	workerCount     int
	reportLimit     int
	maxParticipants int

	// State
	started bool

	// Statistics
	runs             atomic.Int64
	failures         atomic.Int64
	lastDuration     atomic.Int64 // nanoseconds
	lastParticipants atomic.Int64
	lastEvaluated    atomic.Int64
	lastQualified    atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of goroutines a single run fans out to.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithReportLimit sets the default team count after which reporting stops.
// Zero disables the cutoff.
func WithReportLimit(limit int) Option {
	return func(s *Service) {
		if limit >= 0 {
			s.reportLimit = limit
		}
	}
}

// WithMaxParticipants caps the roster size a single run accepts.
func WithMaxParticipants(n int) Option {
	return func(s *Service) {
		if n >= model.TeamSize {
			s.maxParticipants = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU(),
		reportLimit:     ranking.DefaultReportLimit,
		maxParticipants: 256,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.scorer = scoring.NewTableScorer()
	s.ranker = ranking.New(
		ranking.WithScorer(s.scorer),
		ranking.WithWorkers(s.workerCount),
	)

	return s
}

// Start marks the service ready to serve.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	s.logger.Info(ctx, "team ranking service started",
		logger.Int("workers", s.workerCount),
		logger.Int("reportLimit", s.reportLimit),
		logger.Int("maxParticipants", s.maxParticipants),
	)

	return nil
}

// Stop marks the service as no longer serving. Runs in flight finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "team ranking service stopped")
}

// Ready reports whether Start has been called and Stop has not.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// ReportLimit returns the configured default report limit.
func (s *Service) ReportLimit() int {
	return s.reportLimit
}

// MaxScore returns the highest total a team can reach.
func (s *Service) MaxScore() int {
	return s.scorer.Table().MaxTeamScore()
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get()
	}
	return l
}

// Matrix decodes rows into a preference matrix, refusing rosters larger than
// the configured maximum before any row is decoded.
func (s *Service) Matrix(rows [][]string) (*preference.Matrix, error) {
	if n := rosterWidth(rows); n > s.maxParticipants {
		return nil, model.Errorf("build matrix", model.ErrMalformedInput,
			"roster has %d participants, at most %d are accepted", n, s.maxParticipants)
	}
	return preference.FromGrid(rows)
}

// Rank builds the matrix from rows and ranks it. A negative limit selects
// the configured report limit.
func (s *Service) Rank(ctx context.Context, rows [][]string, limit int) (types.Report, error) {
	start := time.Now()
	m, err := s.Matrix(rows)
	if err != nil {
		s.fail(ctx, err)
		return types.Report{}, err
	}
	return s.rank(ctx, m, limit, start)
}

// RankMatrix ranks an already built matrix. A negative limit selects the
// configured report limit.
func (s *Service) RankMatrix(ctx context.Context, m *preference.Matrix, limit int) (types.Report, error) {
	return s.rank(ctx, m, limit, time.Now())
}

func (s *Service) rank(ctx context.Context, m *preference.Matrix, limit int, start time.Time) (types.Report, error) {
	if limit < 0 {
		limit = s.reportLimit
	}
	runID := uuid.NewString()

	res, err := s.ranker.Rank(ctx, m)
	if err != nil {
		s.fail(ctx, err, logger.String("runID", runID))
		return types.Report{}, err
	}

	rep := types.NewReport(runID, res, limit, s.MaxScore())
	elapsed := time.Since(start)

	s.runs.Add(1)
	s.lastDuration.Store(int64(elapsed))
	s.lastParticipants.Store(int64(res.Participants))
	s.lastEvaluated.Store(int64(res.Evaluated))
	s.lastQualified.Store(int64(res.Qualified()))
	metrics.RecordRun(elapsed, res.Participants, res.Evaluated, res.Vetoed, res.Qualified())

	s.log().Info(ctx, "teams ranked",
		logger.String("runID", runID),
		logger.Int("participants", res.Participants),
		logger.Int("evaluated", res.Evaluated),
		logger.Int("vetoed", res.Vetoed),
		logger.Int("reported", rep.Reported),
		logger.Duration("elapsed", elapsed),
	)

	return rep, nil
}

func (s *Service) fail(ctx context.Context, err error, fields ...logger.Field) {
	kind := model.KindName(err)
	s.failures.Add(1)
	metrics.RecordRunError(kind)
	fields = append(fields, logger.String("kind", kind), logger.Error(err))
	s.log().Warn(ctx, "ranking run failed", fields...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":          s.started,
		"workerCount":      s.workerCount,
		"reportLimit":      s.reportLimit,
		"maxParticipants":  s.maxParticipants,
		"runs":             s.runs.Load(),
		"failures":         s.failures.Load(),
		"lastDurationMs":   time.Duration(s.lastDuration.Load()).Milliseconds(),
		"lastParticipants": s.lastParticipants.Load(),
		"lastEvaluated":    s.lastEvaluated.Load(),
		"lastQualified":    s.lastQualified.Load(),
	}
}

// rosterWidth counts the participants named by the header row, ignoring
// trailing blank cells.
func rosterWidth(rows [][]string) int {
	if len(rows) == 0 {
		return 0
	}
	header := rows[0]
	n := len(header)
	for n > 0 && strings.TrimSpace(header[n-1]) == "" {
		n--
	}
	if n == 0 {
		return 0
	}
	return n - 1
}
