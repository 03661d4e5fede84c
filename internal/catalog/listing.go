package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/duc19092005/cinesched/internal/schedule"
)

// ListingEntry is one showtime with its movie resolved.
type ListingEntry struct {
	Slot  schedule.Slot
	Title string
	Color string
}

// ListingGroup holds the showtimes of one auditorium ordered by start.
type ListingGroup struct {
	Auditorium schedule.Auditorium
	Entries    []ListingEntry
}

// Listing resolves the showtimes starting on date for every auditorium
// matching format. Auditoriums present in data but missing from the
// catalog are listed by id after the known ones.
func (c *Catalog) Listing(data *schedule.Data, date time.Time, format string) []ListingGroup {
	auds := c.FilterAuditoriums(format)
	if data != nil && (format == "" || format == FormatAll) {
		for _, a := range data.Auditoriums {
			if _, ok := c.Auditorium(a.AuditoriumID); !ok {
				auds = append(auds, schedule.Auditorium{ID: a.AuditoriumID, Name: a.AuditoriumID})
			}
		}
	}

	groups := make([]ListingGroup, 0, len(auds))
	for _, a := range auds {
		g := ListingGroup{Auditorium: a}
		for _, s := range data.SlotsOn(a.ID, date) {
			e := ListingEntry{Slot: s, Title: s.MovieID}
			if m, ok := c.Movie(s.MovieID); ok {
				e.Title = m.Title
				e.Color = m.Color
			}
			g.Entries = append(g.Entries, e)
		}
		slices.SortFunc(g.Entries, func(x, y ListingEntry) int {
			return x.Slot.Start.Compare(y.Slot.Start)
		})
		groups = append(groups, g)
	}
	return groups
}

// FormatListing renders groups as plain text, one showtime per line.
func FormatListing(date time.Time, groups []ListingGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Showtimes for %s\n", date.Format("Mon 2006-01-02"))
	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s\n", g.Auditorium.Name)
		if len(g.Entries) == 0 {
			b.WriteString("  (no showtimes)\n")
			continue
		}
		for _, e := range g.Entries {
			fmt.Fprintf(&b, "  %s-%s  %-4s  %s  %.2f\n",
				e.Slot.Start.Format("15:04"),
				e.Slot.End.Format("15:04"),
				e.Slot.Format,
				e.Title,
				e.Slot.Price,
			)
		}
	}
	return b.String()
}
