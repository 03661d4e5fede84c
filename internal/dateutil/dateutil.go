// Package dateutil parses the dates and wall-clock times typed on the
// command line and in the TUI prompt.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Parsing errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClockFormat = errors.New("time must be in HH:MM format")
)

// ParseClock parses "HH:MM" and returns that wall-clock time on date's day.
// "24:00" is accepted and means midnight at the end of the day.
func ParseClock(s string, date time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	bad := fmt.Errorf("%w, got %q", ErrInvalidClockFormat, s)

	hh, mm, ok := strings.Cut(s, ":")
	if !ok || hh == "" || len(hh) > 2 || len(mm) != 2 {
		return time.Time{}, bad
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return time.Time{}, bad
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return time.Time{}, bad
	}
	if hour < 0 || minute < 0 || minute >= 60 || hour*60+minute > 24*60 {
		return time.Time{}, bad
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, date.Location()), nil
}

// TruncateToDay returns midnight of t's day in t's location.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	day := TruncateToDay(t)
	sinceMonday := (int(day.Weekday()) + 6) % 7
	monday = day.AddDate(0, 0, -sinceMonday)
	return monday, monday.AddDate(0, 0, 6)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ad == bd && am == bm && ay == by
}

// ParseRelativeDate resolves s against relativeTo. It understands, case
// insensitively:
//
//	""  today  tomorrow  yesterday  next-week
//	+N  -N                  day offsets
//	monday ... sunday       the next such day, never today
//	mon ... sun             same, abbreviated
//	next-monday             same as monday
//	2025-01-15              an absolute date
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	if offset, ok := keywordOffsets[input]; ok {
		return today.AddDate(0, 0, offset), nil
	}
	if input[0] == '+' || input[0] == '-' {
		n, err := strconv.Atoi(input)
		if err != nil {
			return time.Time{}, ErrInvalidDateFormat
		}
		return today.AddDate(0, 0, n), nil
	}
	if wd, ok := weekday(strings.TrimPrefix(input, "next-")); ok {
		return nextWeekday(today, wd), nil
	}

	date, err := time.ParseInLocation(dateLayout, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return date, nil
}

var keywordOffsets = map[string]int{
	"":          0,
	"today":     0,
	"tomorrow":  1,
	"yesterday": -1,
	"next-week": 7,
}

// weekday matches a full or three-letter English weekday name.
func weekday(name string) (time.Weekday, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if name == full || name == full[:3] {
			return wd, true
		}
	}
	return 0, false
}

// nextWeekday returns the first target weekday strictly after today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	days := (int(target)-int(today.Weekday())+6)%7 + 1
	return today.AddDate(0, 0, days)
}
