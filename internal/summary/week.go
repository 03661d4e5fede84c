// Package summary provides week summaries of a cinema's showtimes.
package summary

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/duc19092005/cinesched/internal/catalog"
	"github.com/duc19092005/cinesched/internal/dateutil"
	"github.com/duc19092005/cinesched/internal/schedule"
)

// DaySummary aggregates the showtimes starting on one day.
type DaySummary struct {
	Date      time.Time
	Showtimes int
	Minutes   int
}

// AuditoriumSummary aggregates one auditorium over the week.
type AuditoriumSummary struct {
	Auditorium  schedule.Auditorium
	Showtimes   int
	Minutes     int
	Utilization float64 // share of the week's timeline window in use, 0..1
}

// MovieSummary counts the showtimes of one movie.
type MovieSummary struct {
	Movie     schedule.Movie
	Showtimes int
	Formats   []string
}

// WeekSummary holds aggregated week data, Monday to Sunday.
type WeekSummary struct {
	Start       time.Time
	End         time.Time
	Days        []DaySummary
	Auditoriums []AuditoriumSummary
	Movies      []MovieSummary
	Total       int
}

// TotalMinutes returns the screen time of the whole week.
func (w *WeekSummary) TotalMinutes() int {
	total := 0
	for _, d := range w.Days {
		total += d.Minutes
	}
	return total
}

// Options configures week summary statistics.
type Options struct {
	// WindowMinutes is the daily timeline length utilisation is measured
	// against. Zero leaves Utilization unset.
	WindowMinutes int
}

// SummarizeWeek aggregates the slots of data that start in the ISO week
// containing weekStart. Slots count on the day they start.
func SummarizeWeek(weekStart time.Time, cat *catalog.Catalog, data *schedule.Data, opts Options) *WeekSummary {
	start, end := dateutil.WeekRange(weekStart)
	w := &WeekSummary{Start: start, End: end, Days: make([]DaySummary, 7)}
	for i := range w.Days {
		w.Days[i].Date = start.AddDate(0, 0, i)
	}

	audIndex := make(map[string]int)
	for _, a := range cat.Auditoriums {
		audIndex[a.ID] = len(w.Auditoriums)
		w.Auditoriums = append(w.Auditoriums, AuditoriumSummary{Auditorium: a})
	}
	movieIndex := make(map[string]int)

	for _, as := range data.Auditoriums {
		ai, ok := audIndex[as.AuditoriumID]
		if !ok {
			ai = len(w.Auditoriums)
			audIndex[as.AuditoriumID] = ai
			w.Auditoriums = append(w.Auditoriums, AuditoriumSummary{
				Auditorium: schedule.Auditorium{ID: as.AuditoriumID, Name: as.AuditoriumID},
			})
		}

		for _, s := range as.Slots {
			day := dayIndex(start, s.Start)
			if day < 0 || day >= len(w.Days) {
				continue
			}
			minutes := int(s.Duration().Minutes())

			w.Total++
			w.Days[day].Showtimes++
			w.Days[day].Minutes += minutes
			w.Auditoriums[ai].Showtimes++
			w.Auditoriums[ai].Minutes += minutes

			mi, ok := movieIndex[s.MovieID]
			if !ok {
				movie, found := cat.Movie(s.MovieID)
				if !found {
					movie = schedule.Movie{ID: s.MovieID, Title: s.MovieID}
				}
				mi = len(w.Movies)
				movieIndex[s.MovieID] = mi
				w.Movies = append(w.Movies, MovieSummary{Movie: movie})
			}
			w.Movies[mi].Showtimes++
			if !slices.Contains(w.Movies[mi].Formats, s.Format) {
				w.Movies[mi].Formats = append(w.Movies[mi].Formats, s.Format)
			}
		}
	}

	if opts.WindowMinutes > 0 {
		capacity := float64(opts.WindowMinutes * len(w.Days))
		for i := range w.Auditoriums {
			w.Auditoriums[i].Utilization = min(1, float64(w.Auditoriums[i].Minutes)/capacity)
		}
	}

	slices.SortStableFunc(w.Movies, func(a, b MovieSummary) int {
		if c := cmp.Compare(b.Showtimes, a.Showtimes); c != 0 {
			return c
		}
		return cmp.Compare(a.Movie.Title, b.Movie.Title)
	})
	for i := range w.Movies {
		slices.Sort(w.Movies[i].Formats)
	}
	return w
}

// dayIndex returns the number of calendar days from monday to t's day.
func dayIndex(monday, t time.Time) int {
	day := dateutil.TruncateToDay(t)
	for i := 0; i < 7; i++ {
		if dateutil.SameDay(monday.AddDate(0, 0, i), day) {
			return i
		}
	}
	return -1
}

// BuildWeekSummary loads the showtimes of the requested week from repo.
func BuildWeekSummary(ctx context.Context, repo schedule.Repository, cat *catalog.Catalog, cinemaID string, weekStart time.Time, opts Options) (*WeekSummary, error) {
	if weekStart.IsZero() {
		weekStart = time.Now()
	}
	start, _ := dateutil.WeekRange(weekStart)

	data := schedule.NewData(cinemaID, cat.Auditoriums)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		groups, err := repo.ListSlotsByDate(ctx, cinemaID, day)
		if err != nil {
			return nil, fmt.Errorf("fetching showtimes for %s: %w", day.Format("2006-01-02"), err)
		}
		for _, g := range groups {
			idx := slices.IndexFunc(data.Auditoriums, func(a schedule.AuditoriumSchedule) bool {
				return a.AuditoriumID == g.AuditoriumID
			})
			if idx < 0 {
				data.Auditoriums = append(data.Auditoriums, schedule.AuditoriumSchedule{AuditoriumID: g.AuditoriumID})
				idx = len(data.Auditoriums) - 1
			}
			data.Auditoriums[idx].Slots = append(data.Auditoriums[idx].Slots, g.Slots...)
		}
	}

	return SummarizeWeek(start, cat, data, opts), nil
}
