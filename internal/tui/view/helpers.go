// Package view renders the fixed parts of the timeline screen.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Fit returns s cut or space-padded to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	return s + strings.Repeat(" ", max(0, width-ansi.StringWidth(s)))
}

// Canvas sizes content to a width x height block. Missing rows and the
// tail of short rows are filled with bg, long rows are clipped.
func Canvas(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)
	rows := strings.SplitN(content, "\n", height+1)
	out := make([]string, height)
	for i := range out {
		var row string
		if i < len(rows) && i < height {
			row = rows[i]
		}
		if w := ansi.StringWidth(row); w > width {
			row = ansi.Cut(row, 0, width)
		} else if w < width {
			row += fill.Render(strings.Repeat(" ", width-w))
		}
		out[i] = row
	}
	return strings.Join(out, "\n")
}
