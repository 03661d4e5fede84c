package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

const wheelRows = 3

// handleMouseMsg feeds pointer events to the gesture controller.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModePrompt {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelRows)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelRows)
		return m, nil
	}

	t := m.layout.HitTest(msg.X, msg.Y, m.scroll, len(m.catalog.Movies))
	logMouse(m.logger, msg, t)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m, m.pointerPress(t)
	case tea.MouseActionMotion:
		if m.pointerDown {
			m.pointerDrag(t, msg.Y)
		}
		return m, nil
	case tea.MouseActionRelease:
		if !m.pointerDown {
			return m, nil
		}
		return m, m.pointerRelease(t, msg.Y)
	}
	return m, nil
}

func (m *Model) pointerPress(t Target) tea.Cmd {
	if m.mode != ModeNormal {
		return nil
	}
	m.quitArmed = false

	switch t.Zone {
	case ZoneSidebar:
		m.movieCursor = t.Movie
		m.focus = focusSidebar
		cmd := m.beginNewDrag()
		m.controller.ClearGhost()
		m.pointerDown = m.mode == ModeDrag
		return cmd

	case ZoneGrid:
		m.focus = focusGrid
		m.cursor = Position{Column: t.Column, Row: t.Row}
		m.clampCursor()
		aud, ok := m.currentAuditorium()
		if !ok {
			return nil
		}
		_, onHandle, found := slotAt(m.scale, m.store.SlotsOn(aud.ID, m.date), m.cursor.Row)
		if !found {
			return nil
		}
		var cmd tea.Cmd
		if onHandle {
			cmd = m.beginResizeAt(aud.ID, m.slotIDAt(aud.ID, m.cursor.Row), m.cursor.Row)
		} else {
			cmd = m.beginExistingDrag()
		}
		m.pointerDown = m.mode != ModeNormal
		return cmd
	}
	return nil
}

func (m *Model) pointerDrag(t Target, y int) {
	switch m.mode {
	case ModeDrag:
		switch t.Zone {
		case ZoneGrid:
			m.overTrash = false
			m.cursor = Position{Column: t.Column, Row: t.Row}
			m.clampCursor()
			m.pointerMove()
		case ZoneTrash:
			m.hoverTrash()
		default:
			m.overTrash = false
			m.controller.ClearGhost()
		}
	case ModeResize:
		m.cursor.Row = m.pointerRow(y)
		m.clampCursor()
		m.controller.ResizeMove(m.scale.Offset(m.cursor.Row))
	}
}

func (m *Model) pointerRelease(t Target, y int) tea.Cmd {
	m.pointerDown = false

	switch m.mode {
	case ModeDrag:
		switch t.Zone {
		case ZoneGrid:
			m.cursor = Position{Column: t.Column, Row: t.Row}
			m.clampCursor()
			m.pointerMove()
			return m.drop()
		case ZoneTrash:
			return m.dropTrash()
		}
		return m.cancelGesture()
	case ModeResize:
		m.cursor.Row = m.pointerRow(y)
		m.clampCursor()
		return m.resizeEnd()
	}
	return nil
}

// pointerRow returns the grid row at screen line y, whatever the column.
func (m Model) pointerRow(y int) int {
	return m.scroll + y - m.layout.GridTop
}

func (m Model) slotIDAt(auditoriumID string, row int) string {
	slot, _, _ := slotAt(m.scale, m.store.SlotsOn(auditoriumID, m.date), row)
	return slot.ID
}
