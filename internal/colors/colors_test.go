package colors

import "testing"

func TestNewRgbChannels(t *testing.T) {
	c := NewRgb(12, 200, 255)
	if c.R() != 12 || c.G() != 200 || c.B() != 255 {
		t.Errorf("NewRgb(12, 200, 255) channels = (%d,%d,%d)", c.R(), c.G(), c.B())
	}
	if got := c.Hex(); got != "#0cc8ff" {
		t.Errorf("Hex() = %q, want %q", got, "#0cc8ff")
	}
}

func TestFromHex(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"#00ff00", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", true}, // go-colorful accepts the short form
		{"", false},
	}

	for _, tt := range tests {
		_, err := FromHex(tt.input)
		if tt.valid && err != nil {
			t.Errorf("FromHex(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("FromHex(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestLighten(t *testing.T) {
	black := NewRgb(0, 0, 0)

	if got := black.Lighten(0); got.Hex() != "#000000" {
		t.Errorf("Lighten(0) = %s, want unchanged", got)
	}
	if got := black.Lighten(1); got.Hex() != "#ffffff" {
		t.Errorf("Lighten(1) = %s, want white", got)
	}
	if got := black.Lighten(7); got.Hex() != "#ffffff" {
		t.Errorf("Lighten(7) = %s, want clamped to white", got)
	}

	half := black.Lighten(0.5)
	if half.R() < 120 || half.R() > 135 {
		t.Errorf("Lighten(0.5).R() = %d, want about 128", half.R())
	}
}

func TestPaletteCards(t *testing.T) {
	p := NewPalette(DefaultPaletteSpec())

	if p.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", p.Len())
	}

	seen := make(map[string]bool)
	for i := 0; i < 11; i++ {
		value := uint16(1) << i
		c := p.Card(value)
		seen[c.Background.Hex()] = true
	}
	if len(seen) < 6 {
		t.Errorf("palette produced only %d distinct backgrounds", len(seen))
	}

	fallback := p.Card(4096)
	if fallback.Background.Hex() != "#ffffff" || fallback.Foreground.Hex() != "#5a0000" {
		t.Errorf("Card(4096) = %s/%s, want fallback", fallback.Background, fallback.Foreground)
	}
}
