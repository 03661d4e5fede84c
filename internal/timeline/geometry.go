// Package timeline converts between wall-clock times and vertical pixel
// offsets on the scheduling grid.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// DefaultStartHour is the first hour shown on the grid.
	DefaultStartHour = 8
	// DefaultEndHour is the hour the grid ends at (exclusive).
	DefaultEndHour = 24
	// DefaultPixelsPerMinute is the vertical scale.
	DefaultPixelsPerMinute = 2
	// DefaultSnapMinutes is the placement granularity.
	DefaultSnapMinutes = 10
)

// Geometry errors.
var (
	ErrInvalidWindow = errors.New("start hour must be before end hour, within 0..24")
	ErrInvalidScale  = errors.New("pixels per minute must be positive")
	ErrInvalidSnap   = errors.New("snap minutes must be positive")
)

// Geometry describes the visible time window and its vertical scale.
// It is a value type; all methods are pure.
type Geometry struct {
	StartHour       int
	EndHour         int
	PixelsPerMinute float64
	SnapMinutes     int
}

// Default returns the 08:00-24:00 window at 2px per minute with 10 minute snapping.
func Default() Geometry {
	return Geometry{
		StartHour:       DefaultStartHour,
		EndHour:         DefaultEndHour,
		PixelsPerMinute: DefaultPixelsPerMinute,
		SnapMinutes:     DefaultSnapMinutes,
	}
}

// Validate checks that the geometry is usable.
func (g Geometry) Validate() error {
	if g.StartHour < 0 || g.EndHour > 24 || g.StartHour >= g.EndHour {
		return fmt.Errorf("%w: %d..%d", ErrInvalidWindow, g.StartHour, g.EndHour)
	}
	if g.PixelsPerMinute <= 0 {
		return ErrInvalidScale
	}
	if g.SnapMinutes <= 0 {
		return ErrInvalidSnap
	}
	return nil
}

// WindowMinutes returns the length of the visible window in minutes.
func (g Geometry) WindowMinutes() int {
	return (g.EndHour - g.StartHour) * 60
}

// TotalHeight returns the pixel height of the whole window.
func (g Geometry) TotalHeight() float64 {
	return float64(g.WindowMinutes()) * g.PixelsPerMinute
}

// PixelsFromTime returns the vertical offset of t's wall-clock time.
// Times before the window clamp to 0, times at or past its end clamp to
// TotalHeight. Midnight closes a window that runs to 24:00 unless the
// window also opens at midnight.
func (g Geometry) PixelsFromTime(t time.Time) float64 {
	minutes := t.Hour()*60 + t.Minute()
	if minutes == 0 && g.EndHour == 24 && g.StartHour > 0 {
		minutes = 24 * 60
	}
	return float64(g.clampMinutes(minutes-g.StartHour*60)) * g.PixelsPerMinute
}

// PixelsFromTimeOn returns the offset of t measured from the window start on
// day's calendar day, so instants on later days clamp to TotalHeight.
func (g Geometry) PixelsFromTimeOn(t, day time.Time) float64 {
	return float64(g.clampMinutes(g.minutesOn(t, day))) * g.PixelsPerMinute
}

func (g Geometry) minutesOn(t, day time.Time) int {
	open := time.Date(day.Year(), day.Month(), day.Day(), g.StartHour, 0, 0, 0, day.Location())
	return int(math.Round(t.Sub(open).Minutes()))
}

// Span returns the top offset and height of [start, end) as drawn on start's day.
// An end past midnight is measured from start's day, then clamped to the window.
func (g Geometry) Span(start, end time.Time) (top, height float64) {
	top = g.PixelsFromTimeOn(start, start)
	bottom := g.PixelsFromTimeOn(end, start)
	if bottom < top {
		bottom = top
	}
	return top, bottom - top
}

// SnapMinutesFromPixels converts an offset to minutes past the window start,
// rounded to the nearest snap step. The result is clamped to the last step
// that starts inside the window, so a snapped start never reaches the window
// end and stays on the grid's day.
func (g Geometry) SnapMinutesFromPixels(offset float64) int {
	if g.PixelsPerMinute <= 0 || g.WindowMinutes() <= 0 {
		return 0
	}
	step := max(g.SnapMinutes, 1)
	snapped := int(math.Round(offset/g.PixelsPerMinute/float64(step))) * step
	return min(max(snapped, 0), g.lastStart())
}

// lastStart is the latest snapped minute before the window end.
func (g Geometry) lastStart() int {
	step := max(g.SnapMinutes, 1)
	return (g.WindowMinutes() - 1) / step * step
}

// SnapPixels returns offset snapped to the placement grid.
func (g Geometry) SnapPixels(offset float64) float64 {
	return float64(g.SnapMinutesFromPixels(offset)) * g.PixelsPerMinute
}

// TimeFromPixels converts an offset to a snapped wall-clock time on baseDate's calendar day.
func (g Geometry) TimeFromPixels(offset float64, baseDate time.Time) time.Time {
	minutes := g.SnapMinutesFromPixels(offset)
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(),
		g.StartHour, minutes, 0, 0, baseDate.Location())
}

// PixelsForDuration returns the height of a block lasting d.
func (g Geometry) PixelsForDuration(d time.Duration) float64 {
	return d.Minutes() * g.PixelsPerMinute
}

// DurationFromPixels returns the duration represented by a block height.
func (g Geometry) DurationFromPixels(height float64) time.Duration {
	if g.PixelsPerMinute <= 0 {
		return 0
	}
	return time.Duration(height / g.PixelsPerMinute * float64(time.Minute))
}

func (g Geometry) clampMinutes(m int) int {
	return min(max(m, 0), g.WindowMinutes())
}
