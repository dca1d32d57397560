// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers an optional YAML file and the environment on top.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
)

// Config contains process configuration shared by the HTTP service and the
// command-line tools.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ReportLimit is the team count after which reporting stops; the group
	// that reaches it is still reported in full. Zero disables the cutoff.
	ReportLimit int `koanf:"report_limit"`

	// WorkerCount bounds how many partitions of the candidate space are
	// scored concurrently.
	WorkerCount int `koanf:"worker_count"`

	// MaxParticipants caps the roster size accepted per run.
	MaxParticipants int `koanf:"max_participants"`

	// MaxBodyBytes caps the size of a grid submitted over HTTP.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		ReportLimit:     9,
		WorkerCount:     runtime.NumCPU(),
		MaxParticipants: 256,
		MaxBodyBytes:    1 << 20,
	}
}
