package tui

import (
	"fmt"
	"strings"

	"github.com/duc19092005/cinesched/internal/drag"
	"github.com/duc19092005/cinesched/internal/schedule"
)

const clockLayout = "15:04"

type cellKind int

const (
	cellEmpty cellKind = iota
	cellSlot
	cellGhost
)

// cell is one row of one auditorium column.
type cell struct {
	kind   cellKind
	slot   schedule.Slot // cellSlot
	ghost  drag.Ghost    // cellGhost
	first  bool
	last   bool
	lifted bool // slot is being moved or resized
}

// columnCells lays out the slots of one auditorium and an optional ghost
// over all rows of the window. The ghost is painted over the slots.
func columnCells(scale rowScale, slots []schedule.Slot, ghost *drag.Ghost, liftedID string) []cell {
	cells := make([]cell, scale.Rows())
	g := scale.geometry

	for _, s := range slots {
		top, height := g.Span(s.Start, s.End)
		first, last := scale.RowSpan(top, height)
		for r := max(0, first); r <= last && r < len(cells); r++ {
			cells[r] = cell{
				kind:   cellSlot,
				slot:   s,
				first:  r == first,
				last:   r == last,
				lifted: s.ID == liftedID,
			}
		}
	}

	if ghost != nil {
		first, last := scale.RowSpan(ghost.Top, ghost.Height)
		for r := max(0, first); r <= last && r < len(cells); r++ {
			cells[r] = cell{
				kind:  cellGhost,
				ghost: *ghost,
				first: r == first,
				last:  r == last,
			}
		}
	}
	return cells
}

// slotAt returns the slot covering row. onHandle reports whether row is
// the resize handle, the last row of a slot spanning several rows.
func slotAt(scale rowScale, slots []schedule.Slot, row int) (slot schedule.Slot, onHandle, found bool) {
	g := scale.geometry
	for _, s := range slots {
		top, height := g.Span(s.Start, s.End)
		first, last := scale.RowSpan(top, height)
		if row >= first && row <= last {
			return s, row == last && last > first, true
		}
	}
	return schedule.Slot{}, false, false
}

// cellText returns the unstyled label of a cell. title is the movie title
// of the slot or ghost.
func cellText(c cell, title string) string {
	switch c.kind {
	case cellSlot:
		s := c.slot
		switch {
		case c.first:
			return s.Start.Format(clockLayout) + " " + title
		case c.last:
			return "══ " + s.End.Format(clockLayout)
		default:
			return s.Format + " " + fmt.Sprintf("%.0f", s.Price)
		}
	case cellGhost:
		g := c.ghost
		switch {
		case c.first:
			mark := "✓"
			if !g.Valid {
				mark = "✗"
			}
			return fmt.Sprintf("%s-%s %s", g.Start.Format(clockLayout), g.End.Format(clockLayout), mark)
		case c.last:
			return strings.Repeat("╌", 3)
		default:
			return title
		}
	}
	return ""
}
