package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain is uncoloured text, for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is coloured, non-interactive output.
	OutputModeStyled
	// OutputModeInteractive runs the full Bubble Tea program.
	OutputModeInteractive
)

// defaultTerminalWidth is used when the width cannot be detected.
const defaultTerminalWidth = 80

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks an output mode from the flags and the environment.
// NO_COLOR and TERM=dumb force plain output; CI disables interactivity.
func DetectOutputMode(forcePlain, noColor, nonInteractive bool) OutputMode {
	return detectOutputMode(forcePlain, noColor, nonInteractive, IsTTY(), os.LookupEnv)
}

func detectOutputMode(
	forcePlain, noColor, nonInteractive, tty bool,
	lookup func(string) (string, bool),
) OutputMode {
	if forcePlain || noColor || !tty {
		return OutputModePlain
	}
	if _, ok := lookup("NO_COLOR"); ok {
		return OutputModePlain
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return OutputModePlain
	}
	if v, _ := lookup("CI"); v != "" {
		return OutputModeStyled
	}
	if nonInteractive {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the stdout width, or a default when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
