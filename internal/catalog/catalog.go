// Package catalog provides the movies and auditoriums a schedule is built from.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/duc19092005/cinesched/internal/schedule"
)

// FormatAll is the filter value that matches every auditorium.
const FormatAll = "All"

// Catalog errors.
var (
	ErrDuplicateID = errors.New("duplicate id")
	ErrInvalid     = errors.New("invalid catalog")
)

var validate = validator.New()

// Catalog is read-only reference data for one cinema.
type Catalog struct {
	CinemaID    string
	Movies      []schedule.Movie
	Auditoriums []schedule.Auditorium
}

// Seed returns the built-in catalog.
func Seed() *Catalog {
	return &Catalog{
		CinemaID: "cinema-1",
		Movies: []schedule.Movie{
			{ID: "m1", Title: "Avatar: The Way of Water", DurationMinutes: 192, Formats: []string{"2D", "3D", "IMAX"}, Color: "#3b82f6"},
			{ID: "m2", Title: "Oppenheimer", DurationMinutes: 180, Formats: []string{"2D", "IMAX"}, Color: "#f97316"},
			{ID: "m3", Title: "Barbie", DurationMinutes: 114, Formats: []string{"2D"}, Color: "#ec4899"},
			{ID: "m4", Title: "Dune: Part Two", DurationMinutes: 166, Formats: []string{"2D", "IMAX"}, Color: "#d97706"},
			{ID: "m5", Title: "Kung Fu Panda 4", DurationMinutes: 94, Formats: []string{"2D", "3D"}, Color: "#ef4444"},
		},
		Auditoriums: []schedule.Auditorium{
			{ID: "a1", Name: "Hall 1 (IMAX)", SupportedFormats: []string{"2D", "3D", "IMAX"}},
			{ID: "a2", Name: "Hall 2 (Standard)", SupportedFormats: []string{"2D", "3D"}},
			{ID: "a3", Name: "Hall 3 (Gold)", SupportedFormats: []string{"2D"}},
			{ID: "a4", Name: "Hall 4 (Standard)", SupportedFormats: []string{"2D", "3D"}},
		},
	}
}

// Movie returns the movie with the given id.
func (c *Catalog) Movie(id string) (schedule.Movie, bool) {
	i := slices.IndexFunc(c.Movies, func(m schedule.Movie) bool { return m.ID == id })
	if i < 0 {
		return schedule.Movie{}, false
	}
	return c.Movies[i], true
}

// Auditorium returns the auditorium with the given id.
func (c *Catalog) Auditorium(id string) (schedule.Auditorium, bool) {
	i := slices.IndexFunc(c.Auditoriums, func(a schedule.Auditorium) bool { return a.ID == id })
	if i < 0 {
		return schedule.Auditorium{}, false
	}
	return c.Auditoriums[i], true
}

// FilterAuditoriums returns the auditoriums supporting format, in catalog order.
// FormatAll or "" returns all of them.
func (c *Catalog) FilterAuditoriums(format string) []schedule.Auditorium {
	if format == "" || format == FormatAll {
		return slices.Clone(c.Auditoriums)
	}
	var result []schedule.Auditorium
	for _, a := range c.Auditoriums {
		if a.SupportsFormat(format) {
			result = append(result, a)
		}
	}
	return result
}

// Formats returns the filter choices: FormatAll followed by every auditorium
// format in first-seen order.
func (c *Catalog) Formats() []string {
	result := []string{FormatAll}
	for _, a := range c.Auditoriums {
		for _, f := range a.SupportedFormats {
			if !slices.Contains(result, f) {
				result = append(result, f)
			}
		}
	}
	return result
}

// file is the on-disk TOML layout.
type file struct {
	CinemaID    string           `toml:"cinema_id" validate:"required"`
	Movies      []movieFile      `toml:"movies" validate:"required,min=1,dive"`
	Auditoriums []auditoriumFile `toml:"auditoriums" validate:"required,min=1,dive"`
}

type movieFile struct {
	ID              string   `toml:"id" validate:"required"`
	Title           string   `toml:"title" validate:"required,max=200"`
	DurationMinutes int      `toml:"duration_minutes" validate:"required,min=1,max=600"`
	Formats         []string `toml:"formats" validate:"required,min=1,dive,oneof=2D 3D IMAX 4DX"`
	Color           string   `toml:"color" validate:"omitempty,hexcolor"`
}

type auditoriumFile struct {
	ID      string   `toml:"id" validate:"required"`
	Name    string   `toml:"name" validate:"required,max=100"`
	Formats []string `toml:"formats" validate:"required,min=1,dive,oneof=2D 3D IMAX 4DX"`
}

// LoadFile reads and validates a catalog from a TOML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a TOML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c := &Catalog{CinemaID: f.CinemaID}
	for _, m := range f.Movies {
		c.Movies = append(c.Movies, schedule.Movie{
			ID:              m.ID,
			Title:           m.Title,
			DurationMinutes: m.DurationMinutes,
			Formats:         m.Formats,
			Color:           m.Color,
		})
	}
	for _, a := range f.Auditoriums {
		c.Auditoriums = append(c.Auditoriums, schedule.Auditorium{
			ID:               a.ID,
			Name:             a.Name,
			SupportedFormats: a.Formats,
		})
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that movie and auditorium ids are unique.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, m := range c.Movies {
		if seen["m:"+m.ID] {
			return fmt.Errorf("%w: movie %q", ErrDuplicateID, m.ID)
		}
		seen["m:"+m.ID] = true
	}
	for _, a := range c.Auditoriums {
		if seen["a:"+a.ID] {
			return fmt.Errorf("%w: auditorium %q", ErrDuplicateID, a.ID)
		}
		seen["a:"+a.ID] = true
	}
	return nil
}

// Marshal encodes the catalog in the on-disk TOML layout.
func (c *Catalog) Marshal() ([]byte, error) {
	f := file{CinemaID: c.CinemaID}
	for _, m := range c.Movies {
		f.Movies = append(f.Movies, movieFile{
			ID:              m.ID,
			Title:           m.Title,
			DurationMinutes: m.DurationMinutes,
			Formats:         m.Formats,
			Color:           m.Color,
		})
	}
	for _, a := range c.Auditoriums {
		f.Auditoriums = append(f.Auditoriums, auditoriumFile{
			ID:      a.ID,
			Name:    a.Name,
			Formats: a.SupportedFormats,
		})
	}
	return toml.Marshal(f)
}

// WriteFile saves the catalog to path, creating parent directories.
func (c *Catalog) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
