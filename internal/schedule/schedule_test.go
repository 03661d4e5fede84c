package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestSlot_Validate(t *testing.T) {
	valid := Slot{ID: "s1", MovieID: "m1", Format: "2D", Start: at(10, 0), End: at(12, 0), Price: 100}

	tests := []struct {
		name    string
		mutate  func(*Slot)
		wantErr error
	}{
		{"valid", func(*Slot) {}, nil},
		{"empty id", func(s *Slot) { s.ID = "" }, ErrEmptyID},
		{"empty movie", func(s *Slot) { s.MovieID = "" }, ErrEmptyMovie},
		{"empty format", func(s *Slot) { s.Format = "" }, ErrEmptyFormat},
		{"end equals start", func(s *Slot) { s.End = s.Start }, ErrEndBeforeStart},
		{"end before start", func(s *Slot) { s.End = s.Start.Add(-time.Minute) }, ErrEndBeforeStart},
		{"negative price", func(s *Slot) { s.Price = -1 }, ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlotPatch_Apply(t *testing.T) {
	orig := Slot{ID: "s1", MovieID: "m1", Format: "2D", Start: at(10, 0), End: at(12, 0), Price: 100}

	newEnd := at(11, 30)
	updated := SlotPatch{End: &newEnd}.Apply(orig)

	if !updated.End.Equal(newEnd) {
		t.Errorf("expected end %v, got %v", newEnd, updated.End)
	}
	if !updated.Start.Equal(orig.Start) {
		t.Errorf("start should be unchanged, got %v", updated.Start)
	}
	if !orig.End.Equal(at(12, 0)) {
		t.Error("Apply must not modify the original slot")
	}

	price := 85.5
	format := "3D"
	updated = SlotPatch{Price: &price, Format: &format}.Apply(orig)
	if updated.Price != 85.5 || updated.Format != "3D" {
		t.Errorf("expected price 85.5 and format 3D, got %v %s", updated.Price, updated.Format)
	}
	if updated.ID != "s1" {
		t.Errorf("id must never change, got %s", updated.ID)
	}
}

func TestSlot_OnDate(t *testing.T) {
	s := Slot{Start: at(23, 0), End: at(23, 0).Add(3 * time.Hour)}

	if !s.OnDate(time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)) {
		t.Error("slot should be on its start date")
	}
	if s.OnDate(time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)) {
		t.Error("slot spilling past midnight belongs to its start date only")
	}
}

func TestData_Lookups(t *testing.T) {
	auds := []Auditorium{{ID: "a1"}, {ID: "a2"}}
	d := NewData("cinema-1", auds)

	if len(d.Auditoriums) != 2 {
		t.Fatalf("expected 2 auditorium entries, got %d", len(d.Auditoriums))
	}

	d.Auditoriums[0].Slots = []Slot{
		{ID: "s1", Start: at(10, 0), End: at(12, 0)},
		{ID: "s2", Start: at(10, 0).AddDate(0, 0, 1), End: at(12, 0).AddDate(0, 0, 1)},
	}

	t.Run("slots returns a copy", func(t *testing.T) {
		slots := d.Slots("a1")
		slots[0].ID = "changed"
		if d.Auditoriums[0].Slots[0].ID != "s1" {
			t.Error("modifying the returned slice must not affect the schedule")
		}
	})

	t.Run("unknown auditorium", func(t *testing.T) {
		if d.Slots("nope") != nil {
			t.Error("expected nil for unknown auditorium")
		}
	})

	t.Run("slots on date", func(t *testing.T) {
		got := d.SlotsOn("a1", at(0, 0))
		if len(got) != 1 || got[0].ID != "s1" {
			t.Errorf("expected only s1, got %+v", got)
		}
	})

	t.Run("find slot", func(t *testing.T) {
		audID, s, found := d.FindSlot("s2")
		if !found {
			t.Fatal("expected to find s2")
		}
		if audID != "a1" || s.ID != "s2" {
			t.Errorf("expected s2 in a1, got %s in %s", s.ID, audID)
		}
		if _, _, found := d.FindSlot("missing"); found {
			t.Error("expected missing slot to not be found")
		}
	})

	t.Run("clone is deep", func(t *testing.T) {
		c := d.Clone()
		c.Auditoriums[0].Slots[0].ID = "other"
		if d.Auditoriums[0].Slots[0].ID != "s1" {
			t.Error("clone must not share slot storage")
		}
		if c.Count() != d.Count() {
			t.Errorf("expected count %d, got %d", d.Count(), c.Count())
		}
	})
}

func TestPickFormat(t *testing.T) {
	oppenheimer := Movie{ID: "m2", Formats: []string{"2D", "IMAX"}}
	barbie := Movie{ID: "m3", Formats: []string{"IMAX"}}

	hall := Auditorium{ID: "a1", SupportedFormats: []string{"2D", "3D"}}
	imax := Auditorium{ID: "a2", SupportedFormats: []string{"IMAX"}}

	tests := []struct {
		name  string
		movie Movie
		aud   Auditorium
		want  string
		ok    bool
	}{
		{"first compatible", oppenheimer, hall, "2D", true},
		{"later compatible", oppenheimer, imax, "IMAX", true},
		{"fallback to first format", barbie, hall, "IMAX", false},
		{"no formats", Movie{}, hall, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickFormat(tt.movie, tt.aud)
			if got != tt.want {
				t.Errorf("PickFormat() = %q, want %q", got, tt.want)
			}
			if ok := Compatible(got, tt.movie, tt.aud); ok != tt.ok {
				t.Errorf("Compatible(%q) = %v, want %v", got, ok, tt.ok)
			}
		})
	}
}

func TestData_Validate(t *testing.T) {
	base := func() *Data {
		d := NewData("cinema-1", []Auditorium{{ID: "a1"}, {ID: "a2"}})
		d.Auditoriums[0].Slots = []Slot{
			{ID: "s1", MovieID: "m3", Format: "2D", Start: at(10, 0), End: at(12, 14)},
			{ID: "s2", MovieID: "m2", Format: "2D", Start: at(12, 14), End: at(15, 34)},
		}
		d.Auditoriums[1].Slots = []Slot{
			{ID: "s3", MovieID: "m2", Format: "2D", Start: at(11, 0), End: at(14, 20)},
		}
		return d
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("expected valid schedule, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Data)
		wantErr error
	}{
		{"overlap", func(d *Data) { d.Auditoriums[0].Slots[1].Start = at(12, 0) }, ErrSlotOverlap},
		{"duplicate id", func(d *Data) { d.Auditoriums[1].Slots[0].ID = "s1" }, ErrDuplicateSlot},
		{"bad slot", func(d *Data) { d.Auditoriums[1].Slots[0].Format = "" }, ErrEmptyFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base()
			tt.mutate(d)
			if err := d.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
