// Package loadtest drives a running parabellum service with generated grids
// and checks every answer against a local ranking of the same grid.
package loadtest

import (
	"time"

	"github.com/okian/parabellum/internal/domain/types"
)

// Config holds configuration for a load test.
type Config struct {
	BaseURL  string        // Base URL of the service
	Grids    int           // Number of grids to generate and submit
	Players  int           // Roster size of every grid
	Seed     int64         // Seed of the first grid; grid i uses Seed+i
	VetoRate float64       // Probability of an N code
	Limit    int           // Report limit sent with every request
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every mismatch
}

// job is one grid and the report the service is expected to return for it.
type job struct {
	seed     int64
	rows     [][]string
	expected types.Report
}

// Stats holds test statistics.
type Stats struct {
	GridsGenerated int
	Submitted      int
	Successful     int
	Mismatched     int
	Failed         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
