package view

import "fmt"

// RulerWidth is the width of the time ruler column.
const RulerWidth = 6

// RulerLabels returns one label per grid row. Rows starting a full hour
// carry "HH:00"; the others are blank.
func RulerLabels(startHour, rowMinutes, rows int) []string {
	labels := make([]string, rows)
	if rowMinutes <= 0 {
		return labels
	}
	for r := range labels {
		minutes := r * rowMinutes
		if minutes%60 != 0 {
			continue
		}
		labels[r] = fmt.Sprintf("%02d:00", (startHour+minutes/60)%24)
	}
	return labels
}

// RowClock returns the wall clock label of a row start.
func RowClock(startHour, rowMinutes, row int) string {
	minutes := startHour*60 + row*rowMinutes
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}
