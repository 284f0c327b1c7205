package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects between the interactive console and plain rendering.
type OutputMode int

// Output modes.
const (
	OutputModePlain OutputMode = iota
	OutputModeInteractive
)

// DetectOutputMode returns OutputModeInteractive only when both stdin and
// out are terminals, TERM is not "dumb" and plain output was not forced.
func DetectOutputMode(forcePlain bool, out *os.File) OutputMode {
	if forcePlain || out == nil {
		return OutputModePlain
	}
	if os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !term.IsTerminal(int(out.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return OutputModePlain
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of f, or fallback when it is not a
// terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
