// Package theme provides color themes for the TUI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Block shading on dark themes: channels are scaled down with a floor so
// that dark movie colors stay visible against the background.
const (
	blockScale      = 0.50
	blockFloor      = 40.0 / 255
	liftedScale     = 0.30
	liftedFloor     = 30.0 / 255
	lightBlockBlend = 0.75
	lightLiftBlend  = 0.88
	lightThreshold  = 0.55
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Valid       lipgloss.Color
	Invalid     lipgloss.Color
	Warning     lipgloss.Color
	Ruler       lipgloss.Color
	Trash       lipgloss.Color

	ValidBg   lipgloss.Color
	InvalidBg lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnValid   lipgloss.Color
	TextOnInvalid lipgloss.Color
	TextOnTrash   lipgloss.Color

	bg, fg colorful.Color
	light  bool
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	p := &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Valid:       lipgloss.Color(t.Valid),
		Invalid:     lipgloss.Color(t.Invalid),
		Warning:     lipgloss.Color(t.Warning),
		Ruler:       lipgloss.Color(t.Ruler),
		Trash:       lipgloss.Color(t.Trash),
	}
	p.bg, _ = parseColor(t.Bg)
	p.fg, _ = parseColor(t.Fg)
	p.light = luminance(p.bg) > lightThreshold

	p.ValidBg = p.block(t.Valid, false)
	p.InvalidBg = p.block(t.Invalid, false)

	p.TextOnAccent = p.textOn(string(p.Accent))
	p.TextOnValid = p.textOn(string(p.ValidBg))
	p.TextOnInvalid = p.textOn(string(p.InvalidBg))
	p.TextOnTrash = p.textOn(string(p.Trash))
	return p
}

// MovieBg returns the block background for a movie color.
// Colors that are not hex fall back to the highlight background.
func (p *Palette) MovieBg(hex string) lipgloss.Color {
	if _, ok := parseColor(hex); !ok {
		return p.BgHighlight
	}
	return p.block(hex, false)
}

// MovieMutedBg returns the background of a showtime that is being dragged away.
func (p *Palette) MovieMutedBg(hex string) lipgloss.Color {
	if _, ok := parseColor(hex); !ok {
		return p.BgHighlight
	}
	return p.block(hex, true)
}

// MovieText returns the text color with the best contrast on MovieBg(hex).
func (p *Palette) MovieText(hex string) lipgloss.Color {
	return p.textOn(string(p.MovieBg(hex)))
}

// block shades hex for use as a block background. Light themes blend the
// color into the background, dark themes scale it down.
func (p *Palette) block(hex string, lifted bool) lipgloss.Color {
	c, ok := parseColor(hex)
	if !ok {
		return lipgloss.Color(hex)
	}
	switch {
	case p.light && lifted:
		c = c.BlendRgb(p.bg, lightLiftBlend)
	case p.light:
		c = c.BlendRgb(p.bg, lightBlockBlend)
	case lifted:
		c = scaleChannels(c, liftedScale, liftedFloor)
	default:
		c = scaleChannels(c, blockScale, blockFloor)
	}
	return lipgloss.Color(c.Clamped().Hex())
}

// textOn picks whichever of the theme background and foreground reads
// better on hex.
func (p *Palette) textOn(hex string) lipgloss.Color {
	c, _ := parseColor(hex)
	if contrast(c, p.bg) >= contrast(c, p.fg) {
		return lipgloss.Color(p.bg.Hex())
	}
	return lipgloss.Color(p.fg.Hex())
}

// parseColor accepts "#rgb" and "#rrggbb".
func parseColor(hex string) (colorful.Color, bool) {
	if !strings.HasPrefix(hex, "#") {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func scaleChannels(c colorful.Color, factor, floor float64) colorful.Color {
	return colorful.Color{
		R: max(floor, c.R*factor),
		G: max(floor, c.G*factor),
		B: max(floor, c.B*factor),
	}
}

// luminance is the WCAG relative luminance of c.
func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// contrast is the WCAG contrast ratio between a and b.
func contrast(a, b colorful.Color) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}
