package loadtest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/parabellum/internal/samplegrid"
	"github.com/okian/parabellum/pkg/logger"
)

// Runner configuration constants.
const (
	workerChannelMultiplier = 2
	percentageMultiplier    = 100
)

// ErrMismatch is returned when the service failed or disagreed on any grid.
var ErrMismatch = errors.New("service answers did not match")

// Run executes the complete load test.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting parabellum load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("grids", config.Grids),
		logger.Int("players", config.Players),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate grids and their expected reports
	jobs, err := generateJobs(ctx, config)
	if err != nil {
		return stats, fmt.Errorf("grid generation failed: %w", err)
	}
	stats.GridsGenerated = len(jobs)

	// Step 3: Submit concurrently and verify each answer
	submitGrids(ctx, config, jobs, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Mismatched > 0 || stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d mismatched, %d failed", ErrMismatch, stats.Mismatched, stats.Failed)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	logger.Get().Info(ctx, "load test completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// generateJobs builds one grid per seed and ranks it locally.
func generateJobs(ctx context.Context, config *Config) ([]job, error) {
	jobs := make([]job, 0, config.Grids)
	for i := 0; i < config.Grids; i++ {
		seed := config.Seed + int64(i)
		rows, err := samplegrid.New(
			samplegrid.WithPlayers(config.Players),
			samplegrid.WithSeed(seed),
			samplegrid.WithVetoRate(config.VetoRate),
		).Generate()
		if err != nil {
			return nil, err
		}
		expected, err := expectedReport(ctx, rows, config.Limit)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		jobs = append(jobs, job{seed: seed, rows: rows, expected: expected})
	}
	return jobs, nil
}

// displayFinalStats logs the final test statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, gridsPerSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		gridsPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("gridsGenerated", stats.GridsGenerated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.String("successRate", fmt.Sprintf("%.1f%%", successRate)),
		logger.String("gridsPerSecond", fmt.Sprintf("%.1f", gridsPerSecond)))
}
