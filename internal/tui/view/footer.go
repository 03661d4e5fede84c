package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterState holds the strings needed to render the footer section.
type FooterState struct {
	Width      int
	StatusLine string
	PromptLine string
	HelpLine   string // may span several lines
	ShowPrompt bool
	Bg         lipgloss.Color
}

// Height returns the number of lines the footer occupies.
func (s FooterState) Height() int {
	h := 1 + max(1, lipgloss.Height(s.HelpLine))
	if s.ShowPrompt {
		h++
	}
	return h
}

// RenderFooter renders prompt, status and help lines.
func RenderFooter(state FooterState) string {
	lines := make([]string, 0, 3)
	if state.ShowPrompt {
		lines = append(lines, state.PromptLine)
	}
	lines = append(lines, state.StatusLine, state.HelpLine)
	return Canvas(strings.Join(lines, "\n"), state.Width, state.Height(), state.Bg)
}
