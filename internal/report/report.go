// Package report renders a types.Report for humans or machines.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/parabellum/internal/domain/types"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders rep in the given format.
func Write(w io.Writer, format string, rep types.Report) error {
	switch format {
	case FormatText, "":
		return WriteText(w, rep)
	case FormatJSON:
		return WriteJSON(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText prints one header per score group followed by its teams, one
// per indented line.
func WriteText(w io.Writer, rep types.Report) error {
	bw := bufio.NewWriter(w)
	for _, g := range rep.Groups {
		fmt.Fprintf(bw, "Teams with score: %s\n", g.Label)
		for _, t := range g.Teams {
			fmt.Fprintf(bw, "  %s\n", t.Name)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteJSON encodes rep as indented JSON.
func WriteJSON(w io.Writer, rep types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
