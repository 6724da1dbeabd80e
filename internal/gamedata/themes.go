package gamedata

import (
	"fmt"

	"github.com/samdwyer/tui48/internal/colors"
)

// SurfaceDef is the color scheme of one fixed board element.
type SurfaceDef struct {
	Background        string  `json:"background"`        // Hex color code
	Foreground        string  `json:"foreground"`        // Hex color code
	BackgroundLighten float64 `json:"backgroundLighten"` // Blend toward white, 0 to 1
	ForegroundLighten float64 `json:"foregroundLighten"` // Blend toward white, 0 to 1
}

// Colors parses the surface's background and foreground.
func (s *SurfaceDef) Colors() (bg, fg colors.Rgb, err error) {
	bg, err = ParseHexColor(s.Background)
	if err != nil {
		return bg, fg, fmt.Errorf("background: %w", err)
	}
	fg, err = ParseHexColor(s.Foreground)
	if err != nil {
		return bg, fg, fmt.Errorf("foreground: %w", err)
	}
	return bg, fg, nil
}

// CardsDef holds the parameters of the generated card palette.
type CardsDef struct {
	Steps               int     `json:"steps"`
	HueOffset           float64 `json:"hueOffset"`
	BackgroundChroma    float64 `json:"backgroundChroma"`
	BackgroundLightness float64 `json:"backgroundLightness"`
	ForegroundHue       float64 `json:"foregroundHue"`
	ForegroundChroma    float64 `json:"foregroundChroma"`
	ForegroundLightness float64 `json:"foregroundLightness"`
}

// PaletteSpec converts the definition for colors.NewPalette.
func (c *CardsDef) PaletteSpec() colors.PaletteSpec {
	return colors.PaletteSpec{
		Steps:               c.Steps,
		HueOffset:           c.HueOffset,
		BackgroundChroma:    c.BackgroundChroma,
		BackgroundLightness: c.BackgroundLightness,
		ForegroundHue:       c.ForegroundHue,
		ForegroundChroma:    c.ForegroundChroma,
		ForegroundLightness: c.ForegroundLightness,
	}
}

// ThemeDef defines a color theme loaded from JSON.
type ThemeDef struct {
	ID    string     `json:"id"`   // Unique identifier (e.g., "classic")
	Name  string     `json:"name"` // Display name (e.g., "Classic")
	Board SurfaceDef `json:"board"`
	Score SurfaceDef `json:"score"`
	Cards CardsDef   `json:"cards"`
}

// Validate checks that every color in the theme parses.
func (t *ThemeDef) Validate() error {
	if _, _, err := t.Board.Colors(); err != nil {
		return fmt.Errorf("theme %s board: %w", t.ID, err)
	}
	if _, _, err := t.Score.Colors(); err != nil {
		return fmt.Errorf("theme %s score: %w", t.ID, err)
	}
	if t.Cards.Steps <= 0 {
		return fmt.Errorf("theme %s cards: steps must be positive, got %d", t.ID, t.Cards.Steps)
	}
	return nil
}

// ThemesFile represents the structure of themes.json.
type ThemesFile struct {
	Themes []ThemeDef `json:"themes"`
}

// LoadThemes loads theme definitions from the embedded themes.json file.
func LoadThemes() ([]ThemeDef, error) {
	file, err := Load[ThemesFile]("themes.json")
	if err != nil {
		return nil, err
	}
	for i := range file.Themes {
		if err := file.Themes[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Themes, nil
}
