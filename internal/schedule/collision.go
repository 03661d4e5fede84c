package schedule

import "time"

// TimesOverlap returns true if [start1, end1) and [start2, end2) intersect.
// Ranges that only touch at an endpoint do not overlap.
func TimesOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// FindCollision returns the first slot that overlaps [start, end).
// The slot with id excludeID is skipped; pass "" to check every slot.
func FindCollision(start, end time.Time, slots []Slot, excludeID string) (Slot, bool) {
	for _, s := range slots {
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if TimesOverlap(start, end, s.Start, s.End) {
			return s, true
		}
	}
	return Slot{}, false
}

// Collides returns true if [start, end) overlaps any slot other than excludeID.
func Collides(start, end time.Time, slots []Slot, excludeID string) bool {
	_, found := FindCollision(start, end, slots, excludeID)
	return found
}
