// Package colors provides RGB values and the tile palette.
package colors

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Rgb is an sRGB color.
type Rgb struct {
	color colorful.Color
}

// NewRgb creates a color from 8-bit channels.
func NewRgb(r, g, b uint8) Rgb {
	return Rgb{color: colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}}
}

// FromHex parses "#rrggbb" into a color.
func FromHex(hex string) (Rgb, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Rgb{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return Rgb{color: c}, nil
}

// FromColorful wraps a go-colorful color, clamping it into the sRGB gamut.
func FromColorful(c colorful.Color) Rgb {
	return Rgb{color: c.Clamped()}
}

// R returns the red channel.
func (c Rgb) R() uint8 {
	r, _, _ := c.color.Clamped().RGB255()
	return r
}

// G returns the green channel.
func (c Rgb) G() uint8 {
	_, g, _ := c.color.Clamped().RGB255()
	return g
}

// B returns the blue channel.
func (c Rgb) B() uint8 {
	_, _, b := c.color.Clamped().RGB255()
	return b
}

// RGB255 returns all three 8-bit channels.
func (c Rgb) RGB255() (uint8, uint8, uint8) {
	return c.color.Clamped().RGB255()
}

// Hex returns the "#rrggbb" form of the color.
func (c Rgb) Hex() string {
	return c.color.Clamped().Hex()
}

// Lighten blends the color toward white by factor. Factors are clamped to [0, 1].
func (c Rgb) Lighten(factor float64) Rgb {
	factor = min(max(factor, 0), 1)
	return Rgb{color: c.color.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, factor).Clamped()}
}

// String implements fmt.Stringer.
func (c Rgb) String() string {
	return c.Hex()
}
