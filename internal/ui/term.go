package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const fallbackWidth = 80

// Text roles used by the command-line output.
var (
	formatValid   = color.New(color.FgGreen).SprintFunc()
	formatInvalid = color.New(color.FgRed, color.Bold).SprintFunc()
	formatFormat  = color.New(color.FgCyan).SprintFunc()
	formatHeader  = color.New(color.Bold).SprintFunc()
	formatMuted   = color.New(color.FgWhite, color.Faint).SprintFunc()
)

// termWidth is the width of stdout, or fallbackWidth when stdout is not a
// terminal.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return fallbackWidth
}

// DisableColor turns off ANSI styling for the rest of the process.
func DisableColor() {
	color.NoColor = true
}
