package tui

import (
	"sync"

	"github.com/samdwyer/tui48/internal/colors"
)

// ModifierKind identifies a deferred color transform.
type ModifierKind int

const (
	// ModSetForeground replaces the foreground color.
	ModSetForeground ModifierKind = iota
	// ModSetBackground replaces the background color.
	ModSetBackground
	// ModLightenForeground lightens the foreground by Factor.
	ModLightenForeground
	// ModLightenBackground lightens the background by Factor.
	ModLightenBackground
)

// Modifier is a color transform queued on a DrawBuffer and applied at render
// time, so palette changes do not rewrite every tuxel.
type Modifier struct {
	Kind   ModifierKind
	Color  colors.Rgb
	Factor float64
}

// SetForeground returns a modifier that replaces the foreground color.
func SetForeground(c colors.Rgb) Modifier {
	return Modifier{Kind: ModSetForeground, Color: c}
}

// SetBackground returns a modifier that replaces the background color.
func SetBackground(c colors.Rgb) Modifier {
	return Modifier{Kind: ModSetBackground, Color: c}
}

// LightenForeground returns a modifier that lightens the foreground.
func LightenForeground(factor float64) Modifier {
	return Modifier{Kind: ModLightenForeground, Factor: factor}
}

// LightenBackground returns a modifier that lightens the background.
func LightenBackground(factor float64) Modifier {
	return Modifier{Kind: ModLightenBackground, Factor: factor}
}

// Apply transforms a foreground/background pair. Lightening a nil color is a
// no-op.
func (m Modifier) Apply(fg, bg *colors.Rgb) (*colors.Rgb, *colors.Rgb) {
	switch m.Kind {
	case ModSetForeground:
		c := m.Color
		return &c, bg
	case ModSetBackground:
		c := m.Color
		return fg, &c
	case ModLightenForeground:
		if fg != nil {
			c := fg.Lighten(m.Factor)
			fg = &c
		}
	case ModLightenBackground:
		if bg != nil {
			c := bg.Lighten(m.Factor)
			bg = &c
		}
	}
	return fg, bg
}

// modifierSet is shared by a buffer and its tuxels. It is separate from the
// DrawBuffer so tuxels held by the canvas never keep the buffer reachable.
type modifierSet struct {
	mu   sync.RWMutex
	mods []Modifier
}

func (s *modifierSet) push(m Modifier) {
	s.mu.Lock()
	s.mods = append(s.mods, m)
	s.mu.Unlock()
}

func (s *modifierSet) reset() {
	s.mu.Lock()
	s.mods = nil
	s.mu.Unlock()
}

func (s *modifierSet) list() []Modifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Modifier, len(s.mods))
	copy(out, s.mods)
	return out
}

func (s *modifierSet) apply(fg, bg *colors.Rgb) (*colors.Rgb, *colors.Rgb) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.mods {
		fg, bg = m.Apply(fg, bg)
	}
	return fg, bg
}
