package gamedata

import (
	"errors"
	"math/rand"
)

// ThemeRegistry holds loaded theme definitions and provides lookup utilities.
type ThemeRegistry struct {
	themes []ThemeDef
	byID   map[string]*ThemeDef
}

// NewThemeRegistry creates a registry from loaded theme definitions.
func NewThemeRegistry(themes []ThemeDef) *ThemeRegistry {
	registry := &ThemeRegistry{
		themes: themes,
		byID:   make(map[string]*ThemeDef, len(themes)),
	}
	for i := range themes {
		registry.byID[themes[i].ID] = &themes[i]
	}
	return registry
}

// LoadThemeRegistry loads and creates a registry from the embedded themes.json.
func LoadThemeRegistry() (*ThemeRegistry, error) {
	themes, err := LoadThemes()
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return nil, errors.New("no themes loaded from themes.json")
	}
	return NewThemeRegistry(themes), nil
}

// GetByID returns the theme with the given ID, or nil if not found.
func (r *ThemeRegistry) GetByID(id string) *ThemeDef {
	return r.byID[id]
}

// Default returns the first theme in the file.
func (r *ThemeRegistry) Default() *ThemeDef {
	if len(r.themes) == 0 {
		return nil
	}
	return &r.themes[0]
}

// Random picks a theme uniformly.
func (r *ThemeRegistry) Random(rng *rand.Rand) *ThemeDef {
	if len(r.themes) == 0 {
		return nil
	}
	return &r.themes[rng.Intn(len(r.themes))]
}

// Resolve returns the theme named id. "random" picks one with rng, and an
// empty or unknown id falls back to the default theme.
func (r *ThemeRegistry) Resolve(id string, rng *rand.Rand) (*ThemeDef, bool) {
	switch id {
	case "":
		return r.Default(), true
	case "random":
		return r.Random(rng), true
	}
	if t := r.GetByID(id); t != nil {
		return t, true
	}
	return r.Default(), false
}

// IDs returns every theme id in file order.
func (r *ThemeRegistry) IDs() []string {
	ids := make([]string, len(r.themes))
	for i := range r.themes {
		ids[i] = r.themes[i].ID
	}
	return ids
}

// Count returns the number of themes in the registry.
func (r *ThemeRegistry) Count() int {
	return len(r.themes)
}
