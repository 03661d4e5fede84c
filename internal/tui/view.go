package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/duc19092005/cinesched/internal/drag"
	"github.com/duc19092005/cinesched/internal/tui/view"
)

// View renders the timeline.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < sidebarWidth+view.RulerWidth+minColWidth || m.height < headerHeight+minGridHeight+2 {
		return "Terminal too small"
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle(), m.renderColumnHeaders())
	lines = append(lines, m.renderGrid()...)
	lines = append(lines, view.RenderFooter(m.footerState()))
	return view.Canvas(strings.Join(lines, "\n"), m.width, m.height, m.styles.Background())
}

func (m Model) renderTitle() string {
	s := m.styles
	parts := []string{
		s.TitleStyle.Render(" cinesched "),
		s.DateStyle.Render(view.DateTitle(m.date, m.now())),
		s.FilterStyle.Render("Format: " + view.FilterLabel(m.catalog.Formats(), m.format)),
	}
	if m.store.HasChanges() {
		parts = append(parts, s.DirtyStyle.Render("● unsaved"))
	}
	if m.saving {
		parts = append(parts, s.FilterStyle.Render("saving…"))
	}
	if label := gestureLabel(m.controller.State()); label != "" {
		parts = append(parts, s.DirtyStyle.Render(label+" "+m.ghostTitle()))
	}
	return strings.Join(parts, s.FilterStyle.Render("  "))
}

func (m Model) renderColumnHeaders() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.SidebarHeaderStyle.Render(view.Fit(" Movies", sidebarWidth)))
	b.WriteString(s.RulerStyle.Render(view.Fit("", view.RulerWidth)))
	for i, a := range m.auditoriums {
		label := a.Name + " " + strings.Join(a.SupportedFormats, "/")
		style := s.ColumnHeaderStyle
		if m.focus == focusGrid && i == m.cursor.Column {
			style = style.Underline(true)
		}
		b.WriteString(style.Render(view.Fit(label, m.layout.ColW)))
		b.WriteString(s.EmptyCellStyle.Render(" "))
	}
	return b.String()
}

// renderGrid renders the sidebar, the ruler and the auditorium columns.
func (m Model) renderGrid() []string {
	rows := m.scale.Rows()
	labels := view.RulerLabels(m.scale.geometry.StartHour, m.scale.rowMinutes, rows)

	columns := make([][]cell, len(m.auditoriums))
	ghost, hasGhost := m.controller.Ghost()
	_, liftedID, _ := m.controller.DraggedSlot()
	for i, a := range m.auditoriums {
		var g *drag.Ghost
		if hasGhost && ghost.AuditoriumID == a.ID {
			g = &ghost
		}
		columns[i] = columnCells(m.scale, m.store.SlotsOn(a.ID, m.date), g, liftedID)
	}

	lines := make([]string, m.layout.GridH)
	for i := range lines {
		row := m.scroll + i
		var b strings.Builder
		b.WriteString(m.renderSidebarLine(i))
		if row >= rows {
			lines[i] = b.String()
			continue
		}
		b.WriteString(m.renderRuler(row, labels[row]))
		for col, cells := range columns {
			b.WriteString(m.renderCell(cells[row], col, row))
			b.WriteString(m.styles.EmptyCellStyle.Render(" "))
		}
		lines[i] = b.String()
	}
	return lines
}

func (m Model) renderSidebarLine(i int) string {
	s := m.styles
	if trashRow := i - (m.layout.GridH - trashHeight); trashRow >= 0 {
		style := s.TrashStyle
		if m.overTrash {
			style = s.TrashActiveStyle
		}
		text := ""
		if trashRow == 1 {
			text = "  ✕ Trash"
		}
		return style.Render(view.Fit(text, sidebarWidth))
	}
	if i >= len(m.catalog.Movies) {
		return s.SidebarStyle.Render(view.Fit("", sidebarWidth))
	}

	movie := m.catalog.Movies[i]
	style := s.SidebarStyle
	dragged, dragging := m.controller.DraggedMovie()
	if (m.focus == focusSidebar && i == m.movieCursor) || (dragging && dragged.ID == movie.ID) {
		style = s.SidebarSelectedStyle
	}
	label := fmt.Sprintf(" %s %s", view.Fit(movie.Title, sidebarWidth-8), fmt.Sprintf("%3dm", movie.DurationMinutes))
	return s.Swatch(movie.Color) + style.Render(view.Fit(label, sidebarWidth-1))
}

func (m Model) renderRuler(row int, label string) string {
	if label == "" && row == m.cursor.Row && m.mode != ModePrompt {
		return m.styles.PromptStyle.Render(view.Fit(view.RowClock(m.scale.geometry.StartHour, m.scale.rowMinutes, row), view.RulerWidth))
	}
	return m.styles.RulerStyle.Render(view.Fit(label, view.RulerWidth))
}

func (m Model) renderCell(c cell, col, row int) string {
	s := m.styles
	w := m.layout.ColW

	var (
		text  string
		style lipgloss.Style
	)
	switch c.kind {
	case cellSlot:
		text = " " + cellText(c, m.movieTitle(c.slot.MovieID))
		style = s.Movie(m.movieColor(c.slot.MovieID), c.lifted)
	case cellGhost:
		text = " " + cellText(c, m.ghostTitle())
		style = s.Ghost(c.ghost.Valid)
	default:
		style = s.EmptyCellStyle
		if (row*m.scale.rowMinutes)%60 == 0 {
			text = strings.Repeat("┈", w)
			style = s.HourCellStyle
		}
	}

	if m.mode == ModeNormal && m.focus == focusGrid && col == m.cursor.Column && row == m.cursor.Row {
		style = s.CursorStyle
		if c.kind == cellEmpty {
			text = " " + view.RowClock(m.scale.geometry.StartHour, m.scale.rowMinutes, row)
		}
	}
	return style.Render(view.Fit(text, w))
}

func (m Model) footerState() view.FooterState {
	status := m.statusMsg
	style := m.styles.StatusStyle
	if m.statusError {
		style = m.styles.ErrorStyle
	}
	if status == "" {
		style = m.styles.HelpStyle
		status = m.summaryLine()
	}

	return view.FooterState{
		Width:      m.width,
		StatusLine: style.Render(" " + status),
		PromptLine: m.prompt.View(),
		HelpLine:   m.help.View(m.helpBindings()),
		ShowPrompt: m.mode == ModePrompt,
		Bg:         m.styles.Background(),
	}
}

// summaryLine describes the displayed day when no status is pending.
func (m Model) summaryLine() string {
	count := 0
	for _, a := range m.auditoriums {
		count += len(m.store.SlotsOn(a.ID, m.date))
	}
	line := fmt.Sprintf("%d showtime(s) in %d auditorium(s)", count, len(m.auditoriums))
	if n := m.store.UndoCount(); n > 0 {
		line += fmt.Sprintf(" • %d undo", n)
	}
	return line
}
