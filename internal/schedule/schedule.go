// Package schedule defines the core domain types for cinesched.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Validation errors.
var (
	ErrEmptyID        = errors.New("id cannot be empty")
	ErrEmptyMovie     = errors.New("movie id cannot be empty")
	ErrEmptyFormat    = errors.New("format cannot be empty")
	ErrEndBeforeStart = errors.New("end time must be after start time")
	ErrNegativePrice  = errors.New("price cannot be negative")
	ErrSlotOverlap    = errors.New("slot overlaps with another slot in the same auditorium")
	ErrDuplicateSlot  = errors.New("slot id is used more than once")
)

// Movie is catalog reference data. It is never mutated once loaded.
type Movie struct {
	ID              string
	Title           string
	DurationMinutes int
	Formats         []string // e.g. "2D", "3D", "IMAX"
	Color           string   // "#rrggbb"
}

// SupportsFormat returns true if the movie can be shown in format.
func (m Movie) SupportsFormat(format string) bool {
	return slices.Contains(m.Formats, format)
}

// Auditorium is a screening room. It is never mutated once loaded.
type Auditorium struct {
	ID               string
	Name             string
	SupportedFormats []string
}

// SupportsFormat returns true if the auditorium can project format.
func (a Auditorium) SupportsFormat(format string) bool {
	return slices.Contains(a.SupportedFormats, format)
}

// Slot is one scheduled screening inside one auditorium.
// Slots are values: every change produces a new Slot.
type Slot struct {
	ID      string
	MovieID string
	Format  string
	Start   time.Time
	End     time.Time
	Price   float64
}

// Validate checks the slot invariants that hold regardless of placement.
func (s Slot) Validate() error {
	if s.ID == "" {
		return ErrEmptyID
	}
	if s.MovieID == "" {
		return ErrEmptyMovie
	}
	if s.Format == "" {
		return ErrEmptyFormat
	}
	if !s.Start.Before(s.End) {
		return ErrEndBeforeStart
	}
	if s.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Duration returns End - Start.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// OnDate returns true if the slot starts on the calendar day of date.
func (s Slot) OnDate(date time.Time) bool {
	y1, m1, d1 := s.Start.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SlotPatch holds the fields to change on a slot. Nil fields are left untouched.
type SlotPatch struct {
	MovieID *string
	Format  *string
	Start   *time.Time
	End     *time.Time
	Price   *float64
}

// Apply returns a copy of s with the patch merged in.
func (p SlotPatch) Apply(s Slot) Slot {
	if p.MovieID != nil {
		s.MovieID = *p.MovieID
	}
	if p.Format != nil {
		s.Format = *p.Format
	}
	if p.Start != nil {
		s.Start = *p.Start
	}
	if p.End != nil {
		s.End = *p.End
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	return s
}

// AuditoriumSchedule holds the slots of one auditorium in insertion order.
// Order carries no meaning; rendering positions slots by time.
type AuditoriumSchedule struct {
	AuditoriumID string
	Slots        []Slot
}

// Data is the whole schedule of a cinema, one entry per auditorium.
type Data struct {
	CinemaID    string
	Auditoriums []AuditoriumSchedule
}

// NewData creates an empty schedule with one list per auditorium.
func NewData(cinemaID string, auditoriums []Auditorium) *Data {
	d := &Data{CinemaID: cinemaID}
	for _, a := range auditoriums {
		d.Auditoriums = append(d.Auditoriums, AuditoriumSchedule{AuditoriumID: a.ID})
	}
	return d
}

// Clone returns a deep copy of the schedule.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	c := &Data{
		CinemaID:    d.CinemaID,
		Auditoriums: make([]AuditoriumSchedule, len(d.Auditoriums)),
	}
	for i, a := range d.Auditoriums {
		c.Auditoriums[i] = AuditoriumSchedule{
			AuditoriumID: a.AuditoriumID,
			Slots:        slices.Clone(a.Slots),
		}
	}
	return c
}

// index returns the position of the auditorium entry, or -1.
func (d *Data) index(auditoriumID string) int {
	return slices.IndexFunc(d.Auditoriums, func(a AuditoriumSchedule) bool {
		return a.AuditoriumID == auditoriumID
	})
}

// Slots returns a copy of the slots of one auditorium.
// Returns nil if the auditorium has no entry.
func (d *Data) Slots(auditoriumID string) []Slot {
	if d == nil {
		return nil
	}
	i := d.index(auditoriumID)
	if i < 0 {
		return nil
	}
	return slices.Clone(d.Auditoriums[i].Slots)
}

// SlotsOn returns the slots of one auditorium that start on the given calendar day.
func (d *Data) SlotsOn(auditoriumID string, date time.Time) []Slot {
	var result []Slot
	for _, s := range d.Slots(auditoriumID) {
		if s.OnDate(date) {
			result = append(result, s)
		}
	}
	return result
}

// FindSlot returns the slot with the given id and the auditorium that holds it.
func (d *Data) FindSlot(slotID string) (auditoriumID string, slot Slot, found bool) {
	if d == nil {
		return "", Slot{}, false
	}
	for _, a := range d.Auditoriums {
		for _, s := range a.Slots {
			if s.ID == slotID {
				return a.AuditoriumID, s, true
			}
		}
	}
	return "", Slot{}, false
}

// Count returns the number of slots across all auditoriums.
func (d *Data) Count() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, a := range d.Auditoriums {
		n += len(a.Slots)
	}
	return n
}

// Validate checks every slot and that no two slots of one auditorium overlap.
func (d *Data) Validate() error {
	seen := make(map[string]bool)
	for _, a := range d.Auditoriums {
		for i, s := range a.Slots {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("slot %q in %s: %w", s.ID, a.AuditoriumID, err)
			}
			if seen[s.ID] {
				return fmt.Errorf("%w: %s", ErrDuplicateSlot, s.ID)
			}
			seen[s.ID] = true
			if other, found := FindCollision(s.Start, s.End, a.Slots[:i], s.ID); found {
				return fmt.Errorf("%w: %s and %s in %s", ErrSlotOverlap, s.ID, other.ID, a.AuditoriumID)
			}
		}
	}
	return nil
}
