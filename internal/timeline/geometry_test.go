package timeline

import (
	"errors"
	"testing"
	"time"
)

func day() time.Time {
	return time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
}

func clock(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.Local)
}

func TestGeometry_PixelsFromTime(t *testing.T) {
	g := Default()

	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"window start", clock(8, 0), 0},
		{"before window", clock(6, 30), 0},
		{"ten o'clock", clock(10, 0), 240},
		{"with minutes", clock(12, 14), 508},
		{"last minute", clock(23, 59), 1918},
		{"midnight closes the window", clock(24, 0), 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.PixelsFromTime(tt.t); got != tt.want {
				t.Errorf("PixelsFromTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeometry_PixelsFromTime_ClampsPastEnd(t *testing.T) {
	g := Geometry{StartHour: 8, EndHour: 20, PixelsPerMinute: 2, SnapMinutes: 10}

	if got := g.PixelsFromTime(clock(21, 30)); got != g.TotalHeight() {
		t.Errorf("expected clamp to %v, got %v", g.TotalHeight(), got)
	}
}

func TestGeometry_TimeFromPixels(t *testing.T) {
	g := Default()

	tests := []struct {
		name   string
		offset float64
		want   time.Time
	}{
		{"zero", 0, clock(8, 0)},
		{"exact hour", 240, clock(10, 0)},
		{"rounds down to snap", 248, clock(10, 0)},
		{"rounds up to snap", 252, clock(10, 10)},
		{"negative clamps", -50, clock(8, 0)},
		{"past end clamps to last start", 5000, clock(23, 50)},
		{"rounding up to the window end", 1912, clock(23, 50)},
		{"window end", 1920, clock(23, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.TimeFromPixels(tt.offset, day().Add(15*time.Hour))
			if !got.Equal(tt.want) {
				t.Errorf("TimeFromPixels(%v) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestGeometry_RoundTrip(t *testing.T) {
	geometries := map[string]Geometry{
		"default":      Default(),
		"short window": {StartHour: 8, EndHour: 20, PixelsPerMinute: 1.5, SnapMinutes: 15},
		"whole day":    {StartHour: 0, EndHour: 24, PixelsPerMinute: 1, SnapMinutes: 5},
	}

	for name, g := range geometries {
		t.Run(name, func(t *testing.T) {
			for p := -10.0; p <= g.TotalHeight()+10; p += 0.5 {
				at := g.TimeFromPixels(p, day())
				if !at.Before(day().AddDate(0, 0, 1)) {
					t.Fatalf("TimeFromPixels(%v) = %v, left the grid's day", p, at)
				}
				if got, want := g.PixelsFromTime(at), g.SnapPixels(p); got != want {
					t.Fatalf("PixelsFromTime(TimeFromPixels(%v)) = %v, want %v", p, got, want)
				}
			}

			// Snapped times inside the window map back to themselves.
			for m := 0; m < g.WindowMinutes(); m += g.SnapMinutes {
				want := day().Add(time.Duration(g.StartHour*60+m) * time.Minute)
				if got := g.TimeFromPixels(g.PixelsFromTime(want), day()); !got.Equal(want) {
					t.Fatalf("round trip of %s gave %s", want.Format("15:04"), got.Format("15:04"))
				}
			}
		})
	}
}

func TestGeometry_PixelsFromTimeOn(t *testing.T) {
	g := Default()

	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"inside the window", clock(10, 0), 240},
		{"day before", clock(23, 0).AddDate(0, 0, -1), 0},
		{"early morning of the day", clock(1, 0), 0},
		{"midnight after the day", clock(24, 0), 1920},
		{"next morning", clock(25, 30), 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.PixelsFromTimeOn(tt.t, day()); got != tt.want {
				t.Errorf("PixelsFromTimeOn(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestGeometry_Span(t *testing.T) {
	g := Default()

	top, height := g.Span(clock(10, 0), clock(12, 14))
	if top != 240 || height != 268 {
		t.Errorf("expected top 240 height 268, got %v %v", top, height)
	}

	// Ending after midnight is cut at the window end.
	top, height = g.Span(clock(23, 0), clock(23, 0).Add(3*time.Hour))
	if top != 1800 || height != 120 {
		t.Errorf("expected top 1800 height 120, got %v %v", top, height)
	}
}

func TestGeometry_Durations(t *testing.T) {
	g := Default()

	if got := g.PixelsForDuration(134 * time.Minute); got != 268 {
		t.Errorf("expected 268px, got %v", got)
	}
	if got := g.DurationFromPixels(208); got != 104*time.Minute {
		t.Errorf("expected 104m, got %v", got)
	}
}

func TestGeometry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		g       Geometry
		wantErr error
	}{
		{"default", Default(), nil},
		{"inverted window", Geometry{StartHour: 20, EndHour: 8, PixelsPerMinute: 2, SnapMinutes: 10}, ErrInvalidWindow},
		{"end past midnight", Geometry{StartHour: 8, EndHour: 25, PixelsPerMinute: 2, SnapMinutes: 10}, ErrInvalidWindow},
		{"zero scale", Geometry{StartHour: 8, EndHour: 24, SnapMinutes: 10}, ErrInvalidScale},
		{"zero snap", Geometry{StartHour: 8, EndHour: 24, PixelsPerMinute: 2}, ErrInvalidSnap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.g.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
