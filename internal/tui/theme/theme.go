package theme

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

// ErrUnknownTheme is returned when an embedded theme file cannot be read.
var ErrUnknownTheme = errors.New("unknown theme")

var validate = validator.New()

// Theme is the set of colors a TUI theme file declares. Ruler, Trash and
// BgSelection may be left out and are derived from the other colors.
type Theme struct {
	Name        string `toml:"name" validate:"required"`
	Bg          string `toml:"bg" validate:"required,hexcolor"`
	BgHighlight string `toml:"bg_highlight" validate:"required,hexcolor"`
	BgSelection string `toml:"bg_selection" validate:"omitempty,hexcolor"`
	Fg          string `toml:"fg" validate:"required,hexcolor"`
	FgMuted     string `toml:"fg_muted" validate:"required,hexcolor"`
	Accent      string `toml:"accent" validate:"required,hexcolor"`
	Valid       string `toml:"valid" validate:"required,hexcolor"`   // ghost over a free range
	Invalid     string `toml:"invalid" validate:"required,hexcolor"` // ghost over a taken range
	Warning     string `toml:"warning" validate:"required,hexcolor"`

	Ruler string `toml:"ruler" validate:"omitempty,hexcolor"`
	Trash string `toml:"trash" validate:"omitempty,hexcolor"`
}

// Parse decodes and validates a theme file.
func Parse(data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if err := validate.Struct(&t); err != nil {
		return nil, err
	}
	t.applyDefaults()
	return &t, nil
}

// Load returns the embedded theme called name. Unknown names fall back
// to the default theme.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(name)
	if !IsAvailable(name) {
		name = DefaultName
	}
	data, err := embeddedThemes.ReadFile(themeFile(name))
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownTheme, name)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}
	return t, nil
}

func (t *Theme) applyDefaults() {
	if t.Ruler == "" {
		t.Ruler = t.FgMuted
	}
	if t.Trash == "" {
		t.Trash = firstSet(t.Warning, t.Invalid)
	}
	if t.BgSelection == "" {
		t.BgSelection = firstSet(t.BgHighlight, t.Accent)
	}
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func themeFile(name string) string {
	return path.Join("embedded", name+".toml")
}

// Available lists the embedded theme names, default first.
func Available() []string {
	entries, _ := fs.Glob(embeddedThemes, "embedded/*.toml")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(path.Base(e), ".toml")
		if name != DefaultName {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{DefaultName}, names...)
}

// IsAvailable reports whether name is an embedded theme, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
