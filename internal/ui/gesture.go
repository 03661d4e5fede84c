package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/duc19092005/cinesched/internal/dateutil"
	"github.com/duc19092005/cinesched/internal/drag"
	"github.com/duc19092005/cinesched/internal/schedule"
)

// Command errors.
var (
	ErrPlacementRejected = errors.New("placement rejected")
	ErrSlotNotFound      = errors.New("showtime not found")
	ErrAmbiguousSlot     = errors.New("showtime id prefix matches more than one showtime")
	ErrUnknownMovie      = errors.New("unknown movie")
	ErrUnknownAuditorium = errors.New("unknown auditorium")
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

func (a *App) placeCmd() *cobra.Command {
	var (
		auditorium string
		date       string
		start      string
	)

	cmd := &cobra.Command{
		Use:   "place <movie-id>",
		Short: "Place a new showtime of a movie",
		Long: `Place a new showtime as if the movie were dragged onto the timeline.

The start time is snapped to the timeline grid and the showtime lasts the
movie's duration plus the cleaning buffer. The format is the first movie
format the auditorium supports.`,
		Example: `  cinesched place m3 --auditorium=a1 --start=10:00
  cinesched place m2 --auditorium=a1 --date=2025-03-14 --start=12:20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dateutil.ParseRelativeDate(date, nowFunc())
			if err != nil {
				return err
			}
			at, err := dateutil.ParseClock(start, day)
			if err != nil {
				return err
			}

			s, err := a.openSession(cmd.Context(), day)
			if err != nil {
				return err
			}
			if _, ok := s.catalog.Auditorium(auditorium); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownAuditorium, auditorium)
			}

			c := s.controller
			if !c.BeginDragNew(args[0]) {
				return fmt.Errorf("%w: %s", ErrUnknownMovie, args[0])
			}
			ghost, _ := c.PointerMove(auditorium, c.Geometry().PixelsFromTimeOn(at, day))
			if !c.Drop(auditorium) {
				return a.rejection(s, ghost, "")
			}
			if err := a.commit(cmd.Context(), s); err != nil {
				return err
			}

			slots := s.store.SlotsOn(auditorium, day)
			for _, sl := range slots {
				if sl.Start.Equal(ghost.Start) && sl.MovieID == args[0] {
					_, _ = fmt.Fprintf(a.out, "%s %s\n", formatValid("Placed"), describeSlot(s.catalog, auditorium, sl))
					break
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&auditorium, "auditorium", "a", "", "Auditorium id")
	cmd.Flags().StringVar(&date, "date", "", "Day (defaults to today)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start time (HH:MM)")
	_ = cmd.MarkFlagRequired("auditorium")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) moveCmd() *cobra.Command {
	var (
		to    string
		date  string
		start string
	)

	cmd := &cobra.Command{
		Use:   "move <showtime-id>",
		Short: "Move a showtime to another time or auditorium",
		Long: `Move a showtime as if it were dragged on the timeline.

The duration is kept. --to defaults to the current auditorium and
--date to the showtime's current day.`,
		Example: `  cinesched move 3f2a --start=15:00
  cinesched move 3f2a --to=a2 --start=15:00 --date=tomorrow`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context(), nowFunc())
			if err != nil {
				return err
			}
			audID, slot, err := resolveSlot(s.store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			day := dateutil.TruncateToDay(slot.Start)
			if date != "" {
				if day, err = dateutil.ParseRelativeDate(date, nowFunc()); err != nil {
					return err
				}
			}
			target := audID
			if to != "" {
				if _, ok := s.catalog.Auditorium(to); !ok {
					return fmt.Errorf("%w: %s", ErrUnknownAuditorium, to)
				}
				target = to
			}
			at, err := dateutil.ParseClock(start, day)
			if err != nil {
				return err
			}

			c := s.controller
			c.SetDate(day)
			c.BeginDragExisting(audID, slot.ID, 0)
			ghost, _ := c.PointerMove(target, c.Geometry().PixelsFromTimeOn(at, day))
			if !c.Drop(target) {
				return a.rejection(s, ghost, slot.ID)
			}
			if err := a.commit(cmd.Context(), s); err != nil {
				return err
			}

			_, moved, _ := s.store.FindSlot(slot.ID)
			_, _ = fmt.Fprintf(a.out, "%s %s\n", formatValid("Moved"), describeSlot(s.catalog, target, moved))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target auditorium id (defaults to current)")
	cmd.Flags().StringVar(&date, "date", "", "Target day (defaults to current)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "New start time (HH:MM)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) resizeCmd() *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:   "resize <showtime-id>",
		Short: "Change when a showtime ends",
		Long: `Move the bottom edge of a showtime as if its resize handle were dragged.

The start stays fixed. The result cannot be shorter than the minimum
resize height and cannot overlap the next showtime.`,
		Example: `  cinesched resize 3f2a --end=11:44`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context(), nowFunc())
			if err != nil {
				return err
			}
			audID, slot, err := resolveSlot(s.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			newEnd, err := dateutil.ParseClock(end, slot.Start)
			if err != nil {
				return err
			}
			if !newEnd.After(slot.Start) {
				newEnd = newEnd.AddDate(0, 0, 1)
			}

			c := s.controller
			c.SetDate(slot.Start)
			g := c.Geometry()
			dy := g.PixelsForDuration(newEnd.Sub(slot.Start)) - g.PixelsForDuration(slot.Duration())
			c.BeginResize(audID, slot.ID, 0)
			ghost, _ := c.ResizeMove(dy)
			if !c.ResizeEnd(dy) {
				return a.rejection(s, ghost, slot.ID)
			}
			if err := a.commit(cmd.Context(), s); err != nil {
				return err
			}

			_, resized, _ := s.store.FindSlot(slot.ID)
			_, _ = fmt.Fprintf(a.out, "%s %s\n", formatValid("Resized"), describeSlot(s.catalog, audID, resized))
			return nil
		},
	}

	cmd.Flags().StringVarP(&end, "end", "e", "", "New end time (HH:MM)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <showtime-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a showtime",
		Long:    `Delete a showtime as if it were dropped on the trash.`,
		Example: `  cinesched delete 3f2a`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context(), nowFunc())
			if err != nil {
				return err
			}
			audID, slot, err := resolveSlot(s.store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			c := s.controller
			c.BeginDragExisting(audID, slot.ID, 0)
			if !c.DropTrash() {
				return fmt.Errorf("%w: %s", ErrSlotNotFound, args[0])
			}
			if err := a.commit(cmd.Context(), s); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(a.out, "%s %s\n", formatInvalid("Deleted"), describeSlot(s.catalog, audID, slot))
			return nil
		},
	}
}

// resolveSlot finds a slot by id or unique id prefix.
func resolveSlot(data *schedule.Data, idOrPrefix string) (string, schedule.Slot, error) {
	if audID, slot, ok := data.FindSlot(idOrPrefix); ok {
		return audID, slot, nil
	}

	var (
		matchAud  string
		matchSlot schedule.Slot
		matches   int
	)
	for _, a := range data.Auditoriums {
		for _, s := range a.Slots {
			if strings.HasPrefix(s.ID, idOrPrefix) {
				matchAud, matchSlot = a.AuditoriumID, s
				matches++
			}
		}
	}
	switch matches {
	case 0:
		return "", schedule.Slot{}, fmt.Errorf("%w: %s", ErrSlotNotFound, idOrPrefix)
	case 1:
		return matchAud, matchSlot, nil
	default:
		return "", schedule.Slot{}, fmt.Errorf("%w: %s", ErrAmbiguousSlot, idOrPrefix)
	}
}

// rejection explains why a gesture was discarded.
func (a *App) rejection(s *session, ghost drag.Ghost, excludeID string) error {
	reason := "outside the timeline"
	switch {
	case ghost.AuditoriumID == "":
	case ghost.Format == "":
		reason = "movie has no format"
	default:
		other, collides := schedule.FindCollision(ghost.Start, ghost.End, s.store.Slots(ghost.AuditoriumID), excludeID)
		aud, _ := s.catalog.Auditorium(ghost.AuditoriumID)
		switch {
		case collides:
			reason = "overlaps " + describeSlot(s.catalog, ghost.AuditoriumID, other)
		case !aud.SupportsFormat(ghost.Format):
			reason = fmt.Sprintf("%s does not support %s", aud.Name, ghost.Format)
		}
	}
	_, _ = fmt.Fprintf(a.out, "%s %s-%s: %s\n",
		formatInvalid("Rejected"),
		ghost.Start.Format(clockLayout),
		ghost.End.Format(clockLayout),
		reason,
	)
	return fmt.Errorf("%w: %s", ErrPlacementRejected, reason)
}
