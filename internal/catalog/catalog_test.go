package catalog

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSeed(t *testing.T) {
	c := Seed()

	if c.CinemaID != "cinema-1" {
		t.Errorf("expected cinema-1, got %s", c.CinemaID)
	}
	if len(c.Movies) != 5 || len(c.Auditoriums) != 4 {
		t.Errorf("expected 5 movies and 4 auditoriums, got %d and %d", len(c.Movies), len(c.Auditoriums))
	}
	if err := c.Validate(); err != nil {
		t.Errorf("seed should be valid: %v", err)
	}

	m, ok := c.Movie("m3")
	if !ok || m.Title != "Barbie" || m.DurationMinutes != 114 {
		t.Errorf("unexpected m3: %+v", m)
	}
	if _, ok := c.Movie("m99"); ok {
		t.Error("expected unknown movie to be missing")
	}
	a, ok := c.Auditorium("a3")
	if !ok || a.Name != "Hall 3 (Gold)" {
		t.Errorf("unexpected a3: %+v", a)
	}
}

func TestFilterAuditoriums(t *testing.T) {
	c := Seed()

	tests := []struct {
		format string
		want   []string
	}{
		{FormatAll, []string{"a1", "a2", "a3", "a4"}},
		{"", []string{"a1", "a2", "a3", "a4"}},
		{"2D", []string{"a1", "a2", "a3", "a4"}},
		{"3D", []string{"a1", "a2", "a4"}},
		{"IMAX", []string{"a1"}},
		{"4DX", nil},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got := c.FilterAuditoriums(tt.format)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d auditoriums", tt.want, len(got))
			}
			for i, a := range got {
				if a.ID != tt.want[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.want[i], a.ID)
				}
			}
		})
	}
}

func TestFormats(t *testing.T) {
	got := Seed().Formats()
	want := []string{FormatAll, "2D", "3D", "IMAX"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestParse(t *testing.T) {
	valid := `
cinema_id = "downtown"

[[movies]]
id = "x1"
title = "Metropolis"
duration_minutes = 153
formats = ["2D"]
color = "#112233"

[[auditoriums]]
id = "h1"
name = "Small"
formats = ["2D", "3D"]
`
	c, err := Parse([]byte(valid))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.CinemaID != "downtown" || len(c.Movies) != 1 || c.Auditoriums[0].SupportedFormats[1] != "3D" {
		t.Errorf("unexpected catalog: %+v", c)
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "missing movies",
			input:   "cinema_id = \"x\"\n[[auditoriums]]\nid = \"h1\"\nname = \"A\"\nformats = [\"2D\"]\n",
			wantErr: ErrInvalid,
		},
		{
			name: "unknown format",
			input: `cinema_id = "x"
[[movies]]
id = "x1"
title = "T"
duration_minutes = 90
formats = ["8K"]
[[auditoriums]]
id = "h1"
name = "A"
formats = ["2D"]
`,
			wantErr: ErrInvalid,
		},
		{
			name: "bad color",
			input: `cinema_id = "x"
[[movies]]
id = "x1"
title = "T"
duration_minutes = 90
formats = ["2D"]
color = "blue"
[[auditoriums]]
id = "h1"
name = "A"
formats = ["2D"]
`,
			wantErr: ErrInvalid,
		},
		{
			name: "duplicate movie",
			input: `cinema_id = "x"
[[movies]]
id = "x1"
title = "T"
duration_minutes = 90
formats = ["2D"]
[[movies]]
id = "x1"
title = "U"
duration_minutes = 90
formats = ["2D"]
[[auditoriums]]
id = "h1"
name = "A"
formats = ["2D"]
`,
			wantErr: ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Parse([]byte("not = [toml")); err == nil {
		t.Error("expected syntax error")
	}
}

func TestWriteFile_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.toml")

	if err := Seed().WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(c.Movies) != 5 || len(c.Auditoriums) != 4 {
		t.Errorf("expected seed contents, got %d movies %d auditoriums", len(c.Movies), len(c.Auditoriums))
	}
	if m, _ := c.Movie("m2"); m.Color != "#f97316" {
		t.Errorf("expected color to survive, got %q", m.Color)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
