package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for genmeta.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped output.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether genmeta should draw progress and colours.
//
// Returns ModeNonInteractive if:
//   - stdout is not a terminal (piped into jq, redirected to a file)
//   - GENMETA_NON_INTERACTIVE=1 is set
//   - CI is set
//   - NO_COLOR is set
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	if os.Getenv("GENMETA_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	// Progress is drawn on stdout; stdin only matters for the quit key.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
