package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duc19092005/cinesched/internal/catalog"
	"github.com/duc19092005/cinesched/internal/dateutil"
	"github.com/duc19092005/cinesched/internal/schedule"
)

func (a *App) listCmd() *cobra.Command {
	var (
		date   string
		format string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the showtimes of a day",
		Long: `List the showtimes of one day, grouped by auditorium.

If no date is specified, lists today's showtimes. The date accepts
YYYY-MM-DD or relative forms such as "tomorrow", "friday" or "+2".`,
		Example: `  cinesched list
  cinesched list --date=2025-03-14
  cinesched list --date=tomorrow --format=IMAX`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateutil.ParseRelativeDate(date, nowFunc())
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

			byAud, err := a.repo.ListSlotsByDate(cmd.Context(), a.config.Cinema.ID, day)
			if err != nil {
				return fmt.Errorf("listing showtimes: %w", err)
			}
			data := &schedule.Data{CinemaID: a.config.Cinema.ID, Auditoriums: byAud}
			groups := cat.Listing(data, day, format)

			if plain {
				_, err = fmt.Fprint(a.out, catalog.FormatListing(day, groups))
				return err
			}
			_, err = fmt.Fprint(a.out, renderListing(day, groups, termWidth()))
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (defaults to today)")
	cmd.Flags().StringVar(&format, "format", catalog.FormatAll, "Only auditoriums supporting this format")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain text output without colors")

	return cmd
}
