// Command teams ranks every team of three from a preference grid exported
// as CSV and prints the best-scoring teams.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/parabellum/internal/adapters/grid"
	app "github.com/okian/parabellum/internal/app"
	"github.com/okian/parabellum/internal/config"
	"github.com/okian/parabellum/internal/report"
	"github.com/okian/parabellum/pkg/logger"
)

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks errors caused by bad flags.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "teams:", err)
		stop()
		if errors.Is(err, errUsage) {
			os.Exit(exitUsage)
		}
		os.Exit(exitFailure)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("teams", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in       = fs.String("in", "-", "CSV grid to read; - reads stdin")
		format   = fs.String("format", report.FormatText, "output format: text or json")
		limit    = fs.Int("limit", cfg.ReportLimit, "stop reporting after the group that reaches this many teams; 0 reports all")
		workers  = fs.Int("workers", cfg.WorkerCount, "goroutines used to score candidate teams")
		explain  = fs.String("explain", "", "print this participant's preferences before the report")
		logLevel = fs.String("log-level", "warn", "log level: debug, info, warn, error")
		verbose  = fs.Bool("verbose", false, "shorthand for -log-level debug")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	if *format != report.FormatText && *format != report.FormatJSON {
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}
	if *limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", errUsage)
	}

	// Logs go to stderr so stdout carries only the report.
	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	if *verbose {
		*logLevel = "debug"
	}
	if err := logger.SetLevelString(*logLevel); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	log := logger.Named("teams")

	rows, err := grid.ReadFile(*in, stdin)
	if err != nil {
		return err
	}
	log.Debug(ctx, "grid read", logger.String("in", *in), logger.Int("rows", len(rows)))

	svc := app.New(
		app.WithLogger(log),
		app.WithWorkerCount(*workers),
		app.WithReportLimit(*limit),
		app.WithMaxParticipants(cfg.MaxParticipants),
	)

	m, err := svc.Matrix(rows)
	if err != nil {
		return err
	}

	if *explain != "" {
		desc, err := m.Describe(*explain)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(stdout, desc+"\n"); err != nil {
			return err
		}
	}

	rep, err := svc.RankMatrix(ctx, m, *limit)
	if err != nil {
		return err
	}
	return report.Write(stdout, *format, rep)
}
