package gamedata

import (
	"fmt"
	"strings"

	"github.com/samdwyer/tui48/internal/colors"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to an RGB color.
func ParseHexColor(hex string) (colors.Rgb, error) {
	// Remove leading # if present
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return colors.Rgb{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colors.FromHex("#" + hex)
	if err != nil {
		return colors.Rgb{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return c, nil
}

// MustParseHexColor converts a hex color string to an RGB color, panicking on error.
func MustParseHexColor(hex string) colors.Rgb {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
