package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duc19092005/cinesched/internal/catalog"
	"github.com/duc19092005/cinesched/internal/dateutil"
	"github.com/duc19092005/cinesched/internal/schedule"
)

func day(d, hour, minute int) time.Time {
	return time.Date(2025, 3, d, hour, minute, 0, 0, time.Local)
}

func slot(id, movieID, format string, start time.Time, minutes int) schedule.Slot {
	return schedule.Slot{
		ID:      id,
		MovieID: movieID,
		Format:  format,
		Start:   start,
		End:     start.Add(time.Duration(minutes) * time.Minute),
		Price:   100,
	}
}

func weekData(t *testing.T) (*catalog.Catalog, *schedule.Data) {
	t.Helper()
	cat := catalog.Seed()
	data := schedule.NewData("cinema-1", cat.Auditoriums)
	data.Auditoriums[0].Slots = []schedule.Slot{
		slot("s1", "m1", "IMAX", day(10, 10, 0), 212), // Monday
		slot("s2", "m3", "2D", day(14, 14, 0), 134),   // Friday
		slot("s3", "m1", "3D", day(14, 23, 0), 212),   // Friday, ends Saturday
	}
	data.Auditoriums[2].Slots = []schedule.Slot{
		slot("s4", "m3", "2D", day(16, 12, 0), 134), // Sunday
		slot("s5", "m3", "2D", day(17, 12, 0), 134), // next Monday
	}
	data.Auditoriums = append(data.Auditoriums, schedule.AuditoriumSchedule{
		AuditoriumID: "a9",
		Slots:        []schedule.Slot{slot("s6", "m9", "2D", day(12, 9, 0), 60)},
	})
	return cat, data
}

func TestSummarizeWeek(t *testing.T) {
	cat, data := weekData(t)

	w := SummarizeWeek(day(14, 9, 0), cat, data, Options{WindowMinutes: 16 * 60})

	if !w.Start.Equal(day(10, 0, 0)) || !w.End.Equal(day(16, 0, 0)) {
		t.Fatalf("range = %v..%v, want Mar 10..16", w.Start, w.End)
	}
	if w.Total != 5 {
		t.Errorf("total = %d, want 5", w.Total)
	}
	if w.TotalMinutes() != 212+134+212+134+60 {
		t.Errorf("total minutes = %d", w.TotalMinutes())
	}

	wantDays := []int{1, 0, 1, 0, 2, 0, 1}
	for i, d := range w.Days {
		if d.Showtimes != wantDays[i] {
			t.Errorf("%s: %d showtimes, want %d", d.Date.Format("Mon"), d.Showtimes, wantDays[i])
		}
	}

	tests := []struct {
		name      string
		showtimes int
		minutes   int
	}{
		{"Hall 1 (IMAX)", 3, 558},
		{"Hall 2 (Standard)", 0, 0},
		{"Hall 3 (Gold)", 1, 134},
		{"Hall 4 (Standard)", 0, 0},
		{"a9", 1, 60},
	}
	if len(w.Auditoriums) != len(tests) {
		t.Fatalf("got %d auditoriums, want %d", len(w.Auditoriums), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.Auditoriums[i]
			if got.Auditorium.Name != tt.name || got.Showtimes != tt.showtimes || got.Minutes != tt.minutes {
				t.Errorf("got %s %d/%d, want %s %d/%d",
					got.Auditorium.Name, got.Showtimes, got.Minutes, tt.name, tt.showtimes, tt.minutes)
			}
		})
	}
	if want := 558.0 / (16 * 60 * 7); w.Auditoriums[0].Utilization != want {
		t.Errorf("utilization = %v, want %v", w.Auditoriums[0].Utilization, want)
	}

	// Avatar and Barbie tie on two showtimes and sort by title
	if len(w.Movies) != 3 {
		t.Fatalf("got %d movies, want 3", len(w.Movies))
	}
	if w.Movies[0].Movie.Title != "Avatar" || w.Movies[1].Movie.Title != "Barbie" || w.Movies[2].Movie.Title != "m9" {
		t.Errorf("unexpected movie order %s, %s, %s", w.Movies[0].Movie.Title, w.Movies[1].Movie.Title, w.Movies[2].Movie.Title)
	}
	if got := w.Movies[0].Formats; len(got) != 2 || got[0] != "3D" || got[1] != "IMAX" {
		t.Errorf("Avatar formats = %v, want [3D IMAX]", got)
	}
}

func TestSummarizeWeek_NoWindow(t *testing.T) {
	cat, data := weekData(t)

	w := SummarizeWeek(day(14, 0, 0), cat, data, Options{})
	for _, a := range w.Auditoriums {
		if a.Utilization != 0 {
			t.Errorf("%s utilization = %v, want 0", a.Auditorium.ID, a.Utilization)
		}
	}
}

type dayRepo struct {
	schedule.Repository
	data *schedule.Data
	err  error
}

func (r dayRepo) ListSlotsByDate(_ context.Context, _ string, date time.Time) ([]schedule.AuditoriumSchedule, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []schedule.AuditoriumSchedule
	for _, a := range r.data.Auditoriums {
		if slots := r.data.SlotsOn(a.AuditoriumID, date); len(slots) > 0 {
			out = append(out, schedule.AuditoriumSchedule{AuditoriumID: a.AuditoriumID, Slots: slots})
		}
	}
	return out, nil
}

func TestBuildWeekSummary(t *testing.T) {
	cat, data := weekData(t)
	repo := dayRepo{data: data}

	w, err := BuildWeekSummary(context.Background(), repo, cat, "cinema-1", day(12, 0, 0), Options{})
	if err != nil {
		t.Fatalf("BuildWeekSummary: %v", err)
	}
	want := SummarizeWeek(day(12, 0, 0), cat, data, Options{})
	if w.Total != want.Total || len(w.Auditoriums) != len(want.Auditoriums) {
		t.Errorf("got %d showtimes in %d auditoriums, want %d in %d",
			w.Total, len(w.Auditoriums), want.Total, len(want.Auditoriums))
	}
	if monday, _ := dateutil.WeekRange(day(12, 0, 0)); !w.Start.Equal(monday) {
		t.Errorf("start = %v, want %v", w.Start, monday)
	}
}

func TestBuildWeekSummary_Error(t *testing.T) {
	cat := catalog.Seed()
	boom := errors.New("boom")

	_, err := BuildWeekSummary(context.Background(), dayRepo{err: boom}, cat, "cinema-1", day(12, 0, 0), Options{})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
