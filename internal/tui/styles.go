// Package tui provides the terminal timeline for cinesched.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/duc19092005/cinesched/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Header
	TitleStyle        lipgloss.Style
	DateStyle         lipgloss.Style
	FilterStyle       lipgloss.Style
	DirtyStyle        lipgloss.Style
	ColumnHeaderStyle lipgloss.Style

	// Grid
	RulerStyle     lipgloss.Style
	EmptyCellStyle lipgloss.Style
	HourCellStyle  lipgloss.Style // empty cells starting an hour
	CursorStyle    lipgloss.Style
	GhostValid     lipgloss.Style
	GhostInvalid   lipgloss.Style

	// Sidebar
	SidebarStyle         lipgloss.Style
	SidebarHeaderStyle   lipgloss.Style
	SidebarSelectedStyle lipgloss.Style
	TrashStyle           lipgloss.Style
	TrashActiveStyle     lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	// Movie block styles keyed by color, lifted blocks under "~"+color
	movies map[string]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	return &Styles{
		palette: p,

		TitleStyle:        base.Foreground(p.Accent).Bold(true),
		DateStyle:         base.Bold(true),
		FilterStyle:       base.Foreground(p.FgMuted),
		DirtyStyle:        base.Foreground(p.Warning).Bold(true),
		ColumnHeaderStyle: base.Foreground(p.Accent).Bold(true),

		RulerStyle:     base.Foreground(p.Ruler),
		EmptyCellStyle: base.Foreground(p.FgMuted),
		HourCellStyle:  base.Foreground(p.BgSelection).Underline(true),
		CursorStyle:    lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg).Bold(true),
		GhostValid:     lipgloss.NewStyle().Background(p.ValidBg).Foreground(p.TextOnValid).Bold(true),
		GhostInvalid:   lipgloss.NewStyle().Background(p.InvalidBg).Foreground(p.TextOnInvalid).Bold(true),

		SidebarStyle:         lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Fg),
		SidebarHeaderStyle:   lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Accent).Bold(true),
		SidebarSelectedStyle: lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true),
		TrashStyle:           lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Trash),
		TrashActiveStyle:     lipgloss.NewStyle().Background(p.Trash).Foreground(p.TextOnTrash).Bold(true),

		StatusStyle: base.Foreground(p.Valid),
		ErrorStyle:  base.Foreground(p.Invalid).Bold(true),
		HelpStyle:   base.Foreground(p.FgMuted),
		PromptStyle: base.Foreground(p.Accent),

		movies: make(map[string]lipgloss.Style),
	}
}

// Movie returns the block style for a movie color.
func (s *Styles) Movie(color string, lifted bool) lipgloss.Style {
	key := color
	if lifted {
		key = "~" + color
	}
	if style, ok := s.movies[key]; ok {
		return style
	}

	p := s.palette
	style := lipgloss.NewStyle().Background(p.MovieBg(color)).Foreground(p.MovieText(color))
	if lifted {
		style = lipgloss.NewStyle().Background(p.MovieMutedBg(color)).Foreground(p.FgMuted).Italic(true)
	}
	s.movies[key] = style
	return style
}

// Swatch returns a one-cell color marker for the sidebar.
func (s *Styles) Swatch(color string) string {
	return lipgloss.NewStyle().Background(s.palette.BgHighlight).Foreground(lipgloss.Color(color)).Render("█")
}

// Ghost returns the ghost style for a placement validity.
func (s *Styles) Ghost(valid bool) lipgloss.Style {
	if valid {
		return s.GhostValid
	}
	return s.GhostInvalid
}

// Background returns the theme background color.
func (s *Styles) Background() lipgloss.Color {
	return s.palette.Bg
}
