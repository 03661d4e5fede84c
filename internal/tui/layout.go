package tui

import (
	"math"

	"github.com/duc19092005/cinesched/internal/timeline"
	"github.com/duc19092005/cinesched/internal/tui/view"
)

// Layout constants.
const (
	sidebarWidth   = 24
	minColWidth    = 10
	maxColWidth    = 28
	headerHeight   = 2 // title line + column headers
	trashHeight    = 3
	minGridHeight  = 4
	columnGapWidth = 1
)

// Zone identifies the area under a screen cell.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneSidebar
	ZoneTrash
	ZoneGrid
)

// Target is the result of a hit test.
type Target struct {
	Zone   Zone
	Movie  int // sidebar index, ZoneSidebar only
	Column int // auditorium column, ZoneGrid only
	Row    int // absolute grid row, ZoneGrid only
}

// Layout holds dimensions derived from the window size.
type Layout struct {
	Width   int
	Height  int
	Columns int
	ColW    int
	GridTop int
	GridH   int
	FooterH int
}

// gridLeft is the x of the first auditorium column.
func (l Layout) gridLeft() int {
	return sidebarWidth + view.RulerWidth
}

// ColumnX returns the x of column c.
func (l Layout) ColumnX(c int) int {
	return l.gridLeft() + c*(l.ColW+columnGapWidth)
}

// TrashTop returns the first screen row of the trash target.
func (l Layout) TrashTop() int {
	return l.GridTop + l.GridH - trashHeight
}

func buildLayout(width, height, columns, footerH int) Layout {
	l := Layout{
		Width:   width,
		Height:  height,
		Columns: columns,
		GridTop: headerHeight,
		FooterH: footerH,
	}
	l.GridH = max(minGridHeight, height-headerHeight-footerH)

	if columns > 0 {
		avail := width - l.gridLeft()
		colW := avail/columns - columnGapWidth
		l.ColW = min(maxColWidth, max(minColWidth, colW))
	}
	return l
}

// HitTest maps a screen cell to a target. scroll is the first visible row.
func (l Layout) HitTest(x, y, scroll, movies int) Target {
	if y < l.GridTop || y >= l.GridTop+l.GridH || x < 0 {
		return Target{}
	}
	if x < sidebarWidth {
		if y >= l.TrashTop() {
			return Target{Zone: ZoneTrash}
		}
		if idx := y - l.GridTop; idx < movies {
			return Target{Zone: ZoneSidebar, Movie: idx}
		}
		return Target{}
	}
	if x < l.gridLeft() || l.Columns == 0 {
		return Target{}
	}
	col := (x - l.gridLeft()) / (l.ColW + columnGapWidth)
	if col >= l.Columns {
		return Target{}
	}
	return Target{Zone: ZoneGrid, Column: col, Row: scroll + y - l.GridTop}
}

// rowScale maps grid rows to timeline pixels. One row spans one snap interval.
type rowScale struct {
	geometry   timeline.Geometry
	rowMinutes int
}

func newRowScale(g timeline.Geometry) rowScale {
	return rowScale{geometry: g, rowMinutes: max(1, g.SnapMinutes)}
}

// Rows returns the number of rows covering the window.
func (s rowScale) Rows() int {
	return (s.geometry.WindowMinutes() + s.rowMinutes - 1) / s.rowMinutes
}

func (s rowScale) pixelsPerRow() float64 {
	return float64(s.rowMinutes) * s.geometry.PixelsPerMinute
}

// Offset returns the pixel offset of the top of row.
func (s rowScale) Offset(row int) float64 {
	return float64(row) * s.pixelsPerRow()
}

// RowAt returns the row containing pixel offset y.
func (s rowScale) RowAt(y float64) int {
	return int(math.Floor(y / s.pixelsPerRow()))
}

// RowSpan returns the first and last row covered by a block at top with height.
func (s rowScale) RowSpan(top, height float64) (first, last int) {
	ppr := s.pixelsPerRow()
	first = int(math.Floor(top / ppr))
	last = int(math.Ceil((top+height)/ppr)) - 1
	if last < first {
		last = first
	}
	return first, min(last, s.Rows()-1)
}
