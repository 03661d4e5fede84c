package view

import (
	"strings"
	"time"
)

// DateTitle labels the displayed day, marking today.
func DateTitle(date, today time.Time) string {
	label := date.Format("Mon 02 Jan 2006")
	if sameDay(date, today) {
		label += " (today)"
	}
	return label
}

// FilterLabel renders the format filter, e.g. "[All] 2D 3D IMAX".
func FilterLabel(formats []string, active string) string {
	parts := make([]string, len(formats))
	for i, f := range formats {
		if f == active {
			parts[i] = "[" + f + "]"
			continue
		}
		parts[i] = f
	}
	return strings.Join(parts, " ")
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
