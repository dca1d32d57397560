// Command gen-grid writes a random preference grid as CSV, in the layout
// the teams command and POST /teams accept.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okian/parabellum/internal/adapters/grid"
	"github.com/okian/parabellum/internal/samplegrid"
)

// Default configuration constants.
const (
	defaultPlayers      = 12
	defaultSeed         = 42
	defaultVetoRate     = 0.15
	defaultAffinityRate = 0.4
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "gen-grid:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen-grid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		players      = fs.Int("players", defaultPlayers, "number of participants")
		seed         = fs.Int64("seed", defaultSeed, "random seed; the same seed yields the same grid")
		vetoRate     = fs.Float64("veto-rate", defaultVetoRate, "probability of an N code")
		affinityRate = fs.Float64("affinity-rate", defaultAffinityRate, "probability of an A code among the codes that are not N")
		uuidNames    = fs.Bool("uuid-names", false, "name participants with UUIDs instead of player-NN")
		out          = fs.String("out", "-", "file to write; - writes stdout")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *vetoRate < 0 || *vetoRate > 1 || *affinityRate < 0 || *affinityRate > 1 {
		return errors.New("veto-rate and affinity-rate must be between 0 and 1")
	}

	rows, err := samplegrid.New(
		samplegrid.WithPlayers(*players),
		samplegrid.WithSeed(*seed),
		samplegrid.WithVetoRate(*vetoRate),
		samplegrid.WithAffinityRate(*affinityRate),
		samplegrid.WithUUIDNames(*uuidNames),
	).Generate()
	if err != nil {
		return err
	}

	if *out == "-" {
		return grid.WriteCSV(stdout, rows)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	if err := grid.WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
