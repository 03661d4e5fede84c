package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duc19092005/cinesched/internal/dateutil"
	"github.com/duc19092005/cinesched/internal/summary"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Summarize a week of showtimes",
		Long: `Display the showtimes of one ISO week, Monday through Sunday.

Shows the showtime count and screen time per day, how much of each
auditorium's timeline is booked, and the most programmed movies.`,
		Example: `  cinesched week
  cinesched week --date=next-week`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			ref, err := dateutil.ParseRelativeDate(date, nowFunc())
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			weekSummary, err := summary.BuildWeekSummary(cmd.Context(), a.repo, cat, a.config.Cinema.ID, ref, summary.Options{
				WindowMinutes: a.config.Geometry().WindowMinutes(),
			})
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			_, err = fmt.Fprint(a.out, renderWeek(weekSummary))
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week to show (defaults to today)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

const weekRule = 64

func renderWeek(w *summary.WeekSummary) string {
	var b strings.Builder

	header := fmt.Sprintf("WEEK: %s - %s", w.Start.Format("Mon Jan 2"), w.End.Format("Mon Jan 2, 2006"))
	fmt.Fprintf(&b, "\n  %s\n", formatHeader(header))
	b.WriteString(strings.Repeat("─", weekRule) + "\n")

	if w.Total == 0 {
		b.WriteString("  No showtimes scheduled for this week.\n\n")
		return b.String()
	}

	for _, d := range w.Days {
		line := fmt.Sprintf("  %-10s  %3d showtime(s)  %s", d.Date.Format("Mon Jan 2"), d.Showtimes, formatMinutes(d.Minutes))
		if d.Showtimes == 0 {
			line = formatMuted(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(strings.Repeat("─", weekRule) + "\n")
	for _, a := range w.Auditoriums {
		fmt.Fprintf(&b, "  %-20s  %3d  %s %s\n",
			truncate(a.Auditorium.Name, 20),
			a.Showtimes,
			utilizationBar(a.Utilization, 20),
			formatMuted(fmt.Sprintf("%3.0f%%", a.Utilization*100)))
	}

	b.WriteString(strings.Repeat("─", weekRule) + "\n")
	for _, m := range w.Movies {
		fmt.Fprintf(&b, "  %-20s  %3d  %s\n",
			truncate(m.Movie.Title, 20), m.Showtimes, formatFormat(strings.Join(m.Formats, " ")))
	}

	fmt.Fprintf(&b, "\n  %s\n\n", formatMuted(fmt.Sprintf("%d showtime(s), %s on screen", w.Total, formatMinutes(w.TotalMinutes()))))
	return b.String()
}

// utilizationBar renders ratio as a bar of width cells.
func utilizationBar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return formatValid(strings.Repeat("█", filled)) + formatMuted(strings.Repeat("░", width-filled))
}

// formatMinutes renders a duration as e.g. "3h34m".
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
