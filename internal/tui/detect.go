package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how much terminal capability a command may use.
type OutputMode int

const (
	// OutputModePlain writes undecorated text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes colored text but stays non-interactive.
	OutputModeStyled
	// OutputModeInteractive runs a full-screen Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	case OutputModePlain:
		return "plain"
	default:
		return "unknown"
	}
}

// IsTTY reports whether both stdin and stdout are terminals.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// DetectOutputMode picks the richest mode the environment supports. plain
// and noColor force downgrades; forceColor keeps styling on non-terminals.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, IsTTY(), os.LookupEnv)
}

func detectOutputMode(forceColor, noColor, plain, tty bool, lookup func(string) (string, bool)) OutputMode {
	if plain {
		return OutputModePlain
	}
	if _, ok := lookup("NO_COLOR"); ok || noColor {
		return OutputModePlain
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return OutputModePlain
	}
	if _, ci := lookup("CI"); ci && !forceColor {
		return OutputModePlain
	}
	if tty {
		return OutputModeInteractive
	}
	if forceColor {
		return OutputModeStyled
	}
	return OutputModePlain
}
