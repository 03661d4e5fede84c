package ui

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/duc19092005/cinesched/internal/config"
	"github.com/duc19092005/cinesched/internal/db"
	"github.com/duc19092005/cinesched/internal/schedule"
)

type cliEnv struct {
	repo *db.SQLite
	cfg  *config.Config
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	DisableColor()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.Default()
	cfg.Storage.DBPath = dbPath

	orig := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local) }
	t.Cleanup(func() { nowFunc = orig })

	return &cliEnv{repo: repo, cfg: cfg}
}

// run executes one command on a fresh App so flag values never leak between calls.
func (e *cliEnv) run(args ...string) (string, error) {
	var out bytes.Buffer
	app := NewApp(e.repo, e.cfg)
	app.SetOutput(&out)
	err := app.ExecuteArgs(args...)
	return out.String(), err
}

func (e *cliEnv) load(t *testing.T) *schedule.Data {
	t.Helper()
	data, err := e.repo.LoadSchedule(context.Background(), e.cfg.Cinema.ID)
	if err != nil {
		t.Fatalf("LoadSchedule failed: %v", err)
	}
	return data
}

func (e *cliEnv) slotOf(t *testing.T, movieID string) (string, schedule.Slot) {
	t.Helper()
	for _, a := range e.load(t).Auditoriums {
		for _, s := range a.Slots {
			if s.MovieID == movieID {
				return a.AuditoriumID, s
			}
		}
	}
	t.Fatalf("no showtime of %s stored", movieID)
	return "", schedule.Slot{}
}

func clock(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.Local)
}

func TestPlace(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run("place", "m3", "--auditorium", "a1", "--start", "10:00")
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if !strings.Contains(out, "Placed Barbie 2025-03-14 10:00-12:14 2D in Hall 1 (IMAX)") {
		t.Errorf("unexpected output: %s", out)
	}

	audID, s := e.slotOf(t, "m3")
	if audID != "a1" || !s.Start.Equal(clock(10, 0)) || !s.End.Equal(clock(12, 14)) {
		t.Errorf("unexpected stored slot %+v in %s", s, audID)
	}
	if s.Price != 100 {
		t.Errorf("expected default price, got %v", s.Price)
	}
}

func TestPlace_AtWindowEnd(t *testing.T) {
	for _, start := range []string{"23:55", "24:00"} {
		t.Run(start, func(t *testing.T) {
			e := newCLIEnv(t)

			out, err := e.run("place", "m3", "--auditorium", "a1", "--start", start)
			if err != nil {
				t.Fatalf("place failed: %v", err)
			}
			if !strings.Contains(out, "Placed Barbie 2025-03-14 23:50") {
				t.Errorf("unexpected output: %s", out)
			}
			if _, s := e.slotOf(t, "m3"); !s.Start.Equal(clock(23, 50)) {
				t.Errorf("stored start = %v, want 23:50 on the selected day", s.Start)
			}
		})
	}
}

func TestPlace_Overlap(t *testing.T) {
	e := newCLIEnv(t)

	if _, err := e.run("place", "m3", "--auditorium", "a1", "--start", "10:00"); err != nil {
		t.Fatalf("place failed: %v", err)
	}

	out, err := e.run("place", "m2", "--auditorium", "a1", "--start", "11:00")
	if !errors.Is(err, ErrPlacementRejected) {
		t.Fatalf("expected ErrPlacementRejected, got %v", err)
	}
	if !strings.Contains(out, "Rejected 11:00-14:20: overlaps Barbie") {
		t.Errorf("unexpected output: %s", out)
	}
	if n := e.load(t).Count(); n != 1 {
		t.Errorf("expected 1 stored showtime, got %d", n)
	}

	// After the buffer the slot is free
	if _, err := e.run("place", "m2", "--auditorium", "a1", "--start", "12:20"); err != nil {
		t.Fatalf("place after buffer failed: %v", err)
	}
	if n := e.load(t).Count(); n != 2 {
		t.Errorf("expected 2 stored showtimes, got %d", n)
	}
}

func TestPlace_Errors(t *testing.T) {
	e := newCLIEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown movie", []string{"place", "m99", "-a", "a1", "-s", "10:00"}, ErrUnknownMovie},
		{"unknown auditorium", []string{"place", "m1", "-a", "a9", "-s", "10:00"}, ErrUnknownAuditorium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.run(tt.args...); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := e.run("place", "m1", "-a", "a1", "-s", "25:00"); err == nil {
		t.Error("expected error for invalid clock")
	}
}

func TestResize(t *testing.T) {
	e := newCLIEnv(t)
	if _, err := e.run("place", "m3", "-a", "a1", "-s", "10:00"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	_, s := e.slotOf(t, "m3")

	if _, err := e.run("resize", s.ID, "--end", "11:44"); err != nil {
		t.Fatalf("resize failed: %v", err)
	}

	_, resized := e.slotOf(t, "m3")
	if !resized.End.Equal(clock(11, 44)) || !resized.Start.Equal(clock(10, 0)) {
		t.Errorf("expected 10:00-11:44, got %s-%s", resized.Start.Format("15:04"), resized.End.Format("15:04"))
	}
}

func TestMove(t *testing.T) {
	e := newCLIEnv(t)
	if _, err := e.run("place", "m3", "-a", "a1", "-s", "10:00"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	_, s := e.slotOf(t, "m3")

	// Short prefixes are accepted
	if _, err := e.run("move", s.ID[:8], "--to", "a3", "--start", "15:00", "--date", "tomorrow"); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	audID, moved := e.slotOf(t, "m3")
	if audID != "a3" {
		t.Errorf("expected slot in a3, got %s", audID)
	}
	want := time.Date(2025, 3, 15, 15, 0, 0, 0, time.Local)
	if !moved.Start.Equal(want) || moved.Duration() != 134*time.Minute {
		t.Errorf("unexpected moved slot %+v", moved)
	}
	if n := e.load(t).Count(); n != 1 {
		t.Errorf("move must not duplicate, got %d showtimes", n)
	}
}

func TestDelete(t *testing.T) {
	e := newCLIEnv(t)
	if _, err := e.run("place", "m3", "-a", "a1", "-s", "10:00"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	_, s := e.slotOf(t, "m3")

	if _, err := e.run("delete", s.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n := e.load(t).Count(); n != 0 {
		t.Errorf("expected no showtimes, got %d", n)
	}
	if _, err := e.run("delete", s.ID); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	e := newCLIEnv(t)
	if _, err := e.run("place", "m3", "-a", "a1", "-s", "10:00"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if _, err := e.run("place", "m5", "-a", "a2", "-s", "18:00", "--date", "tomorrow"); err != nil {
		t.Fatalf("place failed: %v", err)
	}

	out, err := e.run("list", "--plain")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "10:00-12:14  2D    Barbie") {
		t.Errorf("expected Barbie in listing:\n%s", out)
	}
	if strings.Contains(out, "Kung Fu Panda") {
		t.Errorf("tomorrow's showtime must not be listed today:\n%s", out)
	}

	out, err = e.run("list", "--date", "2025-03-15")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Kung Fu Panda 4") || !strings.Contains(out, "1 showtime(s)") {
		t.Errorf("expected tomorrow's showtime:\n%s", out)
	}
}

func TestCatalogAndVersion(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run("catalog")
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}
	for _, want := range []string{"Oppenheimer", "Hall 3 (Gold)", "2D IMAX"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in catalog output:\n%s", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "catalog.toml")
	if _, err := e.run("catalog", "--export", path); err != nil {
		t.Fatalf("catalog export failed: %v", err)
	}
	e.cfg.Cinema.CatalogPath = path
	if _, err := e.run("catalog"); err != nil {
		t.Errorf("loading exported catalog failed: %v", err)
	}

	out, err = e.run("version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "cinesched dev") {
		t.Errorf("unexpected version output: %s", out)
	}
}

func TestResolveSlot(t *testing.T) {
	data := schedule.NewData("c", []schedule.Auditorium{{ID: "a1"}})
	data.Auditoriums[0].Slots = []schedule.Slot{{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"}}

	tests := []struct {
		input   string
		wantID  string
		wantErr error
	}{
		{"abc", "abc123", nil},
		{"ab", "ab", nil},
		{"abd456", "abd456", nil},
		{"a", "", ErrAmbiguousSlot},
		{"zzz", "", ErrSlotNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			_, s, err := resolveSlot(data, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("resolveSlot(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}
			if s.ID != tc.wantID {
				t.Errorf("resolveSlot(%q) = %s, want %s", tc.input, s.ID, tc.wantID)
			}
		})
	}
}
