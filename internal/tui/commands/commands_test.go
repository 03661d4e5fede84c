package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duc19092005/cinesched/internal/schedule"
)

type fakeRepo struct {
	saved   *schedule.Data
	saveErr error
}

func (f *fakeRepo) SaveSchedule(_ context.Context, data *schedule.Data) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = data
	return nil
}

func (f *fakeRepo) LoadSchedule(context.Context, string) (*schedule.Data, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) ListSlotsByDate(context.Context, string, time.Time) ([]schedule.AuditoriumSchedule, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) Close() error {
	return nil
}

func testData() *schedule.Data {
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local)
	data := schedule.NewData("cinema-1", []schedule.Auditorium{{ID: "a1"}})
	data.Auditoriums[0].Slots = []schedule.Slot{{
		ID: "s1", MovieID: "m3", Format: "2D", Start: start, End: start.Add(134 * time.Minute), Price: 100,
	}}
	return data
}

func TestSave(t *testing.T) {
	repo := &fakeRepo{}
	data := testData()

	msg := Save(context.Background(), repo, data, 7)()
	saved, ok := msg.(SavedMsg)
	if !ok {
		t.Fatalf("expected SavedMsg, got %T", msg)
	}
	if saved.Version != 7 || saved.Count != 1 {
		t.Errorf("unexpected SavedMsg %+v", saved)
	}
	if repo.saved != data {
		t.Error("snapshot was not passed to the repository")
	}
}

func TestSave_Errors(t *testing.T) {
	boom := errors.New("disk full")

	tests := []struct {
		name string
		repo schedule.Repository
	}{
		{"repository error", &fakeRepo{saveErr: boom}},
		{"no repository", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Save(context.Background(), tt.repo, testData(), 1)()
			errMsg, ok := msg.(ErrMsg)
			if !ok {
				t.Fatalf("expected ErrMsg, got %T", msg)
			}
			if errMsg.Err == nil {
				t.Fatal("expected error")
			}
		})
	}

	msg := Save(context.Background(), &fakeRepo{saveErr: boom}, testData(), 1)()
	if !errors.Is(msg.(ErrMsg).Err, boom) {
		t.Errorf("expected wrapped repository error, got %v", msg)
	}
}

func TestNotifier_CollapsesBursts(t *testing.T) {
	n := NewNotifier()
	n.Notify(nil)
	n.Notify(nil)
	n.Notify(nil)

	if _, ok := n.Wait()().(ScheduleChangedMsg); !ok {
		t.Fatal("expected ScheduleChangedMsg")
	}

	select {
	case <-n.ch:
		t.Fatal("expected a single pending notification")
	default:
	}
}

func TestCopyToClipboard(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var copied string
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}

	msg := CopyToClipboard("listing", "Copied")()
	status, ok := msg.(StatusMsgCmd)
	if !ok || status.Msg != "Copied" {
		t.Fatalf("expected status message, got %#v", msg)
	}
	if copied != "listing" {
		t.Errorf("copied %q, want %q", copied, "listing")
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	if _, ok := CopyToClipboard("x", "Copied")().(ErrMsg); !ok {
		t.Error("expected ErrMsg when the clipboard is unavailable")
	}
}
