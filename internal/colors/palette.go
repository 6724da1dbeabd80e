package colors

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSpec describes how tile colors are generated in CIE-LCh space.
// Chroma and lightness are in [0, 1], hues in degrees.
type PaletteSpec struct {
	Steps               int
	HueOffset           float64
	BackgroundChroma    float64
	BackgroundLightness float64
	ForegroundHue       float64
	ForegroundChroma    float64
	ForegroundLightness float64
}

// DefaultPaletteSpec returns the classic palette parameters.
func DefaultPaletteSpec() PaletteSpec {
	return PaletteSpec{
		Steps:               11,
		HueOffset:           0,
		BackgroundChroma:    0.9,
		BackgroundLightness: 0.8,
		ForegroundHue:       208,
		ForegroundChroma:    0.5,
		ForegroundLightness: 0.2,
	}
}

// CardColors is the background and foreground pair for one tile value.
type CardColors struct {
	Background Rgb
	Foreground Rgb
}

// Palette maps tile values to colors.
type Palette struct {
	cards    map[uint16]CardColors
	fallback CardColors
}

// NewPalette generates a palette for the values 2^0 .. 2^(Steps-1).
func NewPalette(spec PaletteSpec) *Palette {
	steps := max(spec.Steps, 1)
	fg := FromColorful(colorful.Hcl(spec.ForegroundHue, spec.ForegroundChroma, spec.ForegroundLightness))

	cards := make(map[uint16]CardColors, steps)
	for i := 0; i < steps && i < 16; i++ {
		hue := math.Mod(spec.HueOffset+float64(i)*360.0/float64(max(steps-1, 1)), 360)
		bg := FromColorful(colorful.Hcl(hue, spec.BackgroundChroma, spec.BackgroundLightness))
		cards[uint16(1)<<i] = CardColors{Background: bg, Foreground: fg}
	}

	return &Palette{
		cards: cards,
		fallback: CardColors{
			Background: NewRgb(255, 255, 255),
			Foreground: NewRgb(90, 0, 0),
		},
	}
}

// Card returns the colors for a tile value, or the fallback pair for values
// outside the palette.
func (p *Palette) Card(value uint16) CardColors {
	if c, ok := p.cards[value]; ok {
		return c
	}
	return p.fallback
}

// Len returns the number of generated entries.
func (p *Palette) Len() int {
	return len(p.cards)
}
