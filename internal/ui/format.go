package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/duc19092005/cinesched/internal/catalog"
	"github.com/duc19092005/cinesched/internal/schedule"
)

const clockLayout = "15:04"

// renderListing formats the showtimes of a day for the terminal.
func renderListing(date time.Time, groups []catalog.ListingGroup, width int) string {
	var b strings.Builder

	title := fmt.Sprintf("Showtimes for %s", date.Format("Monday, 2006-01-02"))
	b.WriteString(formatHeader(title))
	b.WriteString("\n")
	b.WriteString(formatMuted(strings.Repeat("─", min(width, len(title)+10))))
	b.WriteString("\n")

	total := 0
	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s %s\n",
			formatHeader(g.Auditorium.Name),
			formatMuted("["+strings.Join(g.Auditorium.SupportedFormats, " ")+"]"))
		if len(g.Entries) == 0 {
			b.WriteString(formatMuted("  no showtimes"))
			b.WriteString("\n")
			continue
		}
		for _, e := range g.Entries {
			total++
			fmt.Fprintf(&b, "  %s-%s  %s  %s  %s  %s\n",
				e.Slot.Start.Format(clockLayout),
				e.Slot.End.Format(clockLayout),
				formatFormat(fmt.Sprintf("%-4s", e.Slot.Format)),
				truncate(e.Title, max(width-50, 12)),
				formatMuted(fmt.Sprintf("%.2f", e.Slot.Price)),
				formatMuted(shortID(e.Slot.ID)),
			)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", formatMuted(fmt.Sprintf("%d showtime(s)", total)))
	return b.String()
}

// describeSlot renders one slot for command feedback.
func describeSlot(cat *catalog.Catalog, audID string, s schedule.Slot) string {
	title := s.MovieID
	if m, ok := cat.Movie(s.MovieID); ok {
		title = m.Title
	}
	audName := audID
	if a, ok := cat.Auditorium(audID); ok {
		audName = a.Name
	}
	return fmt.Sprintf("%s %s %s-%s %s in %s (%s)",
		title,
		s.Start.Format("2006-01-02"),
		s.Start.Format(clockLayout),
		s.End.Format(clockLayout),
		s.Format,
		audName,
		s.ID,
	)
}

// shortID abbreviates uuids for listings. Any unique prefix is accepted by commands.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}
