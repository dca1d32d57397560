// Command loadtest submits generated grids to a running parabellum service
// and verifies every report against a local ranking.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/parabellum/internal/loadtest"
	"github.com/okian/parabellum/pkg/logger"
)

// Default configuration constants.
const (
	defaultGrids       = 200
	defaultPlayers     = 24
	defaultSeed        = 1
	defaultVetoRate    = 0.15
	defaultLimit       = 9
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		grids    = flag.Int("grids", defaultGrids, "Number of grids to generate and submit")
		players  = flag.Int("players", defaultPlayers, "Participants per grid")
		seed     = flag.Int64("seed", defaultSeed, "Seed of the first grid")
		vetoRate = flag.Float64("veto-rate", defaultVetoRate, "Probability of an N code")
		limit    = flag.Int("limit", defaultLimit, "Report limit sent with every request")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Log every mismatching grid")
	)
	flag.Parse()

	if *limit < 0 || *workers < 1 || *grids < 0 {
		fmt.Fprintln(os.Stderr, "loadtest: limit and grids must not be negative and workers must be positive")
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &loadtest.Config{
		BaseURL:  *baseURL,
		Grids:    *grids,
		Players:  *players,
		Seed:     *seed,
		VetoRate: *vetoRate,
		Limit:    *limit,
		Workers:  *workers,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	if _, err := loadtest.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "load test failed", logger.Error(err))
		stop()
		cancel()
		os.Exit(1)
	}
}
