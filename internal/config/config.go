// Package config loads cinesched settings from a TOML file, environment
// variables and built-in defaults, in increasing order of precedence:
// defaults < file < environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/duc19092005/cinesched/internal/timeline"
)

const appName = "cinesched"

var validate = validator.New()

// Config holds the application configuration.
type Config struct {
	Timeline TimelineConfig `toml:"timeline"`
	Cinema   CinemaConfig   `toml:"cinema"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// TimelineConfig holds the grid window and placement rules.
type TimelineConfig struct {
	StartHour       int     `toml:"start_hour"`
	EndHour         int     `toml:"end_hour"`
	PixelsPerMinute float64 `toml:"pixels_per_minute"`
	SnapMinutes     int     `toml:"snap_minutes"`
	CleaningMinutes int     `toml:"cleaning_minutes" validate:"gte=0"` // added after each new showtime
	MinResizePixels float64 `toml:"min_resize_pixels" validate:"gt=0"` // smallest resize height
	DefaultPrice    float64 `toml:"default_price" validate:"gte=0"`    // price of a new showtime
}

// CinemaConfig selects the cinema and its catalog.
type CinemaConfig struct {
	ID          string `toml:"id" validate:"required"`
	CatalogPath string `toml:"catalog_path"` // empty uses the built-in catalog
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path" validate:"required"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			StartHour:       timeline.DefaultStartHour,
			EndHour:         timeline.DefaultEndHour,
			PixelsPerMinute: timeline.DefaultPixelsPerMinute,
			SnapMinutes:     timeline.DefaultSnapMinutes,
			CleaningMinutes: 20,
			MinResizePixels: 30,
			DefaultPrice:    100,
		},
		Cinema:  CinemaConfig{ID: "cinema-1"},
		Storage: StorageConfig{DBPath: homePath(appName+".db", ".local", "share", appName, appName+".db")},
		UI:      UIConfig{Theme: "frappe"},
	}
}

// homePath joins parts under the user's home directory, or returns
// fallback when there is none.
func homePath(fallback string, parts ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(append([]string{home}, parts...)...)
}

// DefaultConfigPath is ~/.config/cinesched/config.toml.
func DefaultConfigPath() string {
	return homePath("config.toml", ".config", appName, "config.toml")
}

// Load reads the configuration from DefaultConfigPath.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom reads the configuration at path. A missing file is not an
// error; the defaults and environment still apply.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	for _, o := range cfg.envOverrides() {
		v, ok := os.LookupEnv(o.name)
		if !ok || v == "" {
			continue
		}
		if err := o.set(v); err != nil {
			return nil, fmt.Errorf("%s: %w", o.name, err)
		}
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Cinema.CatalogPath = expandPath(cfg.Cinema.CatalogPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

type envOverride struct {
	name string
	set  func(string) error
}

func (c *Config) envOverrides() []envOverride {
	return []envOverride{
		{"CINESCHED_START_HOUR", intSetter(&c.Timeline.StartHour)},
		{"CINESCHED_END_HOUR", intSetter(&c.Timeline.EndHour)},
		{"CINESCHED_SNAP_MINUTES", intSetter(&c.Timeline.SnapMinutes)},
		{"CINESCHED_CLEANING_MINUTES", intSetter(&c.Timeline.CleaningMinutes)},
		{"CINESCHED_DEFAULT_PRICE", floatSetter(&c.Timeline.DefaultPrice)},
		{"CINESCHED_CINEMA_ID", stringSetter(&c.Cinema.ID)},
		{"CINESCHED_CATALOG_PATH", stringSetter(&c.Cinema.CatalogPath)},
		{"CINESCHED_DB_PATH", stringSetter(&c.Storage.DBPath)},
		{"CINESCHED_UI_THEME", stringSetter(&c.UI.Theme)},
	}
}

func intSetter(dst *int) func(string) error {
	return func(s string) (err error) {
		*dst, err = strconv.Atoi(s)
		return err
	}
}

func floatSetter(dst *float64) func(string) error {
	return func(s string) (err error) {
		*dst, err = strconv.ParseFloat(s, 64)
		return err
	}
}

func stringSetter(dst *string) func(string) error {
	return func(s string) error {
		*dst = s
		return nil
	}
}

func expandPath(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// Validate checks the timeline geometry and the remaining settings.
func (c *Config) Validate() error {
	if err := c.Geometry().Validate(); err != nil {
		return err
	}
	return validate.Struct(c)
}

// Geometry returns the timeline geometry described by the config.
func (c *Config) Geometry() timeline.Geometry {
	return timeline.Geometry{
		StartHour:       c.Timeline.StartHour,
		EndHour:         c.Timeline.EndHour,
		PixelsPerMinute: c.Timeline.PixelsPerMinute,
		SnapMinutes:     c.Timeline.SnapMinutes,
	}
}

// Save writes the configuration to DefaultConfigPath.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
