package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/duc19092005/cinesched/internal/catalog"
	"github.com/duc19092005/cinesched/internal/drag"
	"github.com/duc19092005/cinesched/internal/schedule"
	"github.com/duc19092005/cinesched/internal/tui/commands"
)

// beginNewDrag picks up the movie selected in the sidebar.
func (m *Model) beginNewDrag() tea.Cmd {
	if m.movieCursor >= len(m.catalog.Movies) {
		return nil
	}
	movie := m.catalog.Movies[m.movieCursor]
	if !m.controller.Begin(drag.NewMoviePayload(movie.ID), 0) {
		return m.setError("Cannot place " + movie.Title)
	}
	m.mode = ModeDrag
	m.focus = focusGrid
	m.overTrash = false
	m.pointerMove()
	logGesture(m.logger, m.controller, "begin new")
	return nil
}

// beginExistingDrag picks up the showtime under the cursor, keeping the
// grab point so the ghost does not jump.
func (m *Model) beginExistingDrag() tea.Cmd {
	aud, ok := m.currentAuditorium()
	if !ok {
		return nil
	}
	slot, _, found := slotAt(m.scale, m.store.SlotsOn(aud.ID, m.date), m.cursor.Row)
	if !found {
		return nil
	}
	y := m.scale.Offset(m.cursor.Row)
	grab := y - m.scale.geometry.PixelsFromTimeOn(slot.Start, m.date)
	if !m.controller.Begin(drag.ExistingSlotPayload(aud.ID, slot.ID), grab) {
		return nil
	}
	m.mode = ModeDrag
	m.overTrash = false
	m.pointerMove()
	logGesture(m.logger, m.controller, "begin existing")
	return nil
}

// beginResize grabs the bottom edge of the showtime under the cursor.
func (m *Model) beginResize() tea.Cmd {
	aud, ok := m.currentAuditorium()
	if !ok {
		return nil
	}
	slot, _, found := slotAt(m.scale, m.store.SlotsOn(aud.ID, m.date), m.cursor.Row)
	if !found {
		return nil
	}
	_, last := m.scale.RowSpan(m.scale.geometry.Span(slot.Start, slot.End))
	m.cursor.Row = last
	m.ensureVisible()
	return m.beginResizeAt(aud.ID, slot.ID, m.cursor.Row)
}

func (m *Model) beginResizeAt(auditoriumID, slotID string, row int) tea.Cmd {
	y := m.scale.Offset(row)
	if !m.controller.BeginResize(auditoriumID, slotID, y) {
		return nil
	}
	m.mode = ModeResize
	m.controller.ResizeMove(y)
	logGesture(m.logger, m.controller, "begin resize")
	return nil
}

// trashUnderCursor deletes the showtime under the cursor.
func (m *Model) trashUnderCursor() tea.Cmd {
	if cmd := m.beginExistingDrag(); cmd != nil || m.mode != ModeDrag {
		return cmd
	}
	return m.dropTrash()
}

// pointerMove moves the ghost to the cursor.
func (m *Model) pointerMove() {
	aud, ok := m.currentAuditorium()
	if !ok {
		m.controller.ClearGhost()
		return
	}
	m.controller.PointerMove(aud.ID, m.scale.Offset(m.cursor.Row))
}

// hoverTrash moves the gesture over the trash target.
func (m *Model) hoverTrash() {
	m.overTrash = true
	m.controller.ClearGhost()
}

// drop ends a drag over the auditorium under the cursor.
func (m *Model) drop() tea.Cmd {
	aud, ok := m.currentAuditorium()
	state := m.controller.State()
	ghost, hasGhost := m.controller.Ghost()
	excludeID := ""
	if _, slotID, dragging := m.controller.DraggedSlot(); dragging {
		excludeID = slotID
	}
	title := m.ghostTitle()

	// Dropping a showtime where it was picked up is a click, not a move.
	if from, _, dragging := m.controller.DraggedSlot(); dragging && ok && hasGhost && from == aud.ID {
		if _, s, found := m.store.FindSlot(excludeID); found && s.Start.Equal(ghost.Start) {
			m.controller.Cancel()
			m.endGesture()
			return nil
		}
	}

	dropped := ok && m.controller.Drop(aud.ID)
	m.endGesture()
	if !ok || !hasGhost {
		m.controller.Cancel()
		return m.setError("Dropped outside the timeline")
	}
	if !dropped {
		return m.setError(fmt.Sprintf("Rejected %s %s-%s: %s",
			title, ghost.Start.Format(clockLayout), ghost.End.Format(clockLayout), m.rejectionReason(ghost, excludeID)))
	}

	verb := "Moved"
	if state == drag.DraggingNew {
		verb = "Placed"
	}
	return m.setStatus(fmt.Sprintf("%s %s %s-%s in %s",
		verb, title, ghost.Start.Format(clockLayout), ghost.End.Format(clockLayout), aud.Name))
}

// dropTrash deletes the showtime being dragged.
func (m *Model) dropTrash() tea.Cmd {
	title := m.ghostTitle()
	deleted := m.controller.DropTrash()
	m.endGesture()
	if !deleted {
		return m.setStatus("Cancelled")
	}
	return m.setStatus("Deleted " + title)
}

// resizeEnd commits a resize at the cursor row.
func (m *Model) resizeEnd() tea.Cmd {
	return m.resizeEndAt(m.cursor.Row)
}

func (m *Model) resizeEndAt(row int) tea.Cmd {
	ghost, _ := m.controller.ResizeMove(m.scale.Offset(row))
	aud, slotID, _ := m.controller.DraggedSlot()
	title := m.ghostTitle()
	resized := m.controller.ResizeEnd(m.scale.Offset(row))
	m.endGesture()
	if !resized {
		return m.setError(fmt.Sprintf("Rejected %s %s-%s: %s",
			title, ghost.Start.Format(clockLayout), ghost.End.Format(clockLayout), m.rejectionReason(ghost, slotID)))
	}
	name := aud
	if a, ok := m.catalog.Auditorium(aud); ok {
		name = a.Name
	}
	return m.setStatus(fmt.Sprintf("Resized %s to %s-%s in %s",
		title, ghost.Start.Format(clockLayout), ghost.End.Format(clockLayout), name))
}

func (m *Model) cancelGesture() tea.Cmd {
	m.controller.Cancel()
	m.endGesture()
	return m.setStatus("Cancelled")
}

func (m *Model) endGesture() {
	m.mode = ModeNormal
	m.overTrash = false
	m.pointerDown = false
	logGesture(m.logger, m.controller, "end")
}

// ghostTitle returns the title of the movie being dragged or resized.
func (m Model) ghostTitle() string {
	if movie, ok := m.controller.DraggedMovie(); ok {
		return movie.Title
	}
	if _, slotID, ok := m.controller.DraggedSlot(); ok {
		if _, slot, found := m.store.FindSlot(slotID); found {
			return m.movieTitle(slot.MovieID)
		}
	}
	return ""
}

func (m Model) movieTitle(movieID string) string {
	if movie, ok := m.catalog.Movie(movieID); ok {
		return movie.Title
	}
	return movieID
}

func (m Model) movieColor(movieID string) string {
	if movie, ok := m.catalog.Movie(movieID); ok {
		return movie.Color
	}
	return ""
}

// rejectionReason explains why ghost was not a valid placement.
func (m Model) rejectionReason(ghost drag.Ghost, excludeID string) string {
	if ghost.Format == "" {
		return "no format the auditorium supports"
	}
	if other, collides := schedule.FindCollision(ghost.Start, ghost.End, m.store.Slots(ghost.AuditoriumID), excludeID); collides {
		return fmt.Sprintf("overlaps %s %s-%s", m.movieTitle(other.MovieID),
			other.Start.Format(clockLayout), other.End.Format(clockLayout))
	}
	if aud, ok := m.catalog.Auditorium(ghost.AuditoriumID); ok && !aud.SupportsFormat(ghost.Format) {
		return fmt.Sprintf("%s does not support %s", aud.Name, ghost.Format)
	}
	return "invalid placement"
}

func (m *Model) undo() tea.Cmd {
	desc, err := m.store.Undo()
	if err != nil {
		return m.setError("Nothing to undo")
	}
	return m.setStatus("Undid " + desc)
}

// save persists a snapshot on the command goroutine.
func (m Model) save() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	if !m.store.HasChanges() {
		return m, m.setStatus("No changes to save")
	}
	m.saving = true
	m.quitArmed = false
	snapshot := m.store.Snapshot()
	return m, commands.Save(m.ctx, m.repo, snapshot, m.store.Version())
}

// yank copies the displayed day's listing to the clipboard.
func (m *Model) yank() tea.Cmd {
	groups := m.catalog.Listing(m.store.Snapshot(), m.date, m.format)
	text := catalog.FormatListing(m.date, groups)
	return commands.CopyToClipboard(text, "Copied showtimes for "+m.date.Format("Mon 2006-01-02"))
}
