package tui

import (
	"testing"

	"github.com/duc19092005/cinesched/internal/timeline"
)

func TestBuildLayout(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		columns  int
		wantColW int
		wantGrid int
	}{
		{"four columns", 140, 40, 4, 26, 36},
		{"wide screen caps columns", 400, 40, 2, maxColWidth, 36},
		{"narrow screen floors columns", 60, 40, 4, minColWidth, 36},
		{"tiny height keeps minimum grid", 140, 5, 4, 26, minGridHeight},
		{"no columns", 140, 40, 0, 0, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := buildLayout(tt.width, tt.height, tt.columns, 2)
			if l.ColW != tt.wantColW {
				t.Errorf("ColW = %d, want %d", l.ColW, tt.wantColW)
			}
			if l.GridH != tt.wantGrid {
				t.Errorf("GridH = %d, want %d", l.GridH, tt.wantGrid)
			}
		})
	}
}

func TestLayout_HitTest(t *testing.T) {
	l := buildLayout(140, 40, 4, 2) // ColW 26, columns at x=30,57,84,111
	const scroll = 12

	tests := []struct {
		name string
		x, y int
		want Target
	}{
		{"title line", 40, 0, Target{}},
		{"column headers", 40, 1, Target{}},
		{"first movie", 3, 2, Target{Zone: ZoneSidebar, Movie: 0}},
		{"third movie", 3, 4, Target{Zone: ZoneSidebar, Movie: 2}},
		{"below movies", 3, 20, Target{}},
		{"trash", 3, 36, Target{Zone: ZoneTrash}},
		{"ruler", 26, 5, Target{}},
		{"first column top", 30, 2, Target{Zone: ZoneGrid, Column: 0, Row: 12}},
		{"second column", 60, 5, Target{Zone: ZoneGrid, Column: 1, Row: 15}},
		{"last column", 136, 10, Target{Zone: ZoneGrid, Column: 3, Row: 20}},
		{"right of columns", 139, 10, Target{}},
		{"footer", 40, 38, Target{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.HitTest(tt.x, tt.y, scroll, 5); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRowScale(t *testing.T) {
	s := newRowScale(timeline.Default()) // 08-24, 2 px/min, 10 min rows

	if rows := s.Rows(); rows != 96 {
		t.Errorf("Rows() = %d, want 96", rows)
	}
	if got := s.Offset(12); got != 240 {
		t.Errorf("Offset(12) = %v, want 240", got)
	}
	if got := s.RowAt(259); got != 12 {
		t.Errorf("RowAt(259) = %d, want 12", got)
	}

	tests := []struct {
		name      string
		top       float64
		height    float64
		wantFirst int
		wantLast  int
	}{
		{"Barbie 10:00-12:14", 240, 268, 12, 25},
		{"exact rows", 240, 40, 12, 13},
		{"shorter than a row", 240, 10, 12, 12},
		{"clamped at window end", 1900, 100, 95, 95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := s.RowSpan(tt.top, tt.height)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("RowSpan(%v, %v) = %d..%d, want %d..%d", tt.top, tt.height, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}

	if rows := newRowScale(timeline.Geometry{StartHour: 8, EndHour: 24, PixelsPerMinute: 2, SnapMinutes: 15}).Rows(); rows != 64 {
		t.Errorf("15 minute rows = %d, want 64", rows)
	}
}
