package tftsim

import "testing"

func TestResolveColor(t *testing.T) {
	tests := []struct {
		token    string
		expected RGB
	}{
		{"0xF800", RGB{255, 0, 0}},
		{"0x07E0", RGB{0, 255, 0}},
		{"0x001F", RGB{0, 0, 255}},
		{"0xFFFF", RGB{255, 255, 255}},
		{"0x0000", RGB{0, 0, 0}},
		{"0xFF0000", RGB{255, 0, 0}},
		{"0x00FF00", RGB{0, 255, 0}},
		{"0X123456", RGB{0x12, 0x34, 0x56}},
		{"TFT_RED", RGB{255, 0, 0}},
		{"TFT_ORANGE", RGB{255, 165, 0}},
		{" TFT_NAVY ", RGB{0, 0, 128}},
		{"bogus", White},
		{"0xZZ", White},
		{"0x", White},
		{"", White},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := ResolveColor(tt.token); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestUnpack565Scaling(t *testing.T) {
	// channel * 255 / max with floor division
	got := Unpack565(0x8410)
	expected := RGB{R: 16 * 255 / 31, G: 32 * 255 / 63, B: 16 * 255 / 31}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPaletteOverridesBuiltins(t *testing.T) {
	p := Palette{"TFT_RED": {1, 2, 3}, "ACCENT": {10, 20, 30}}

	if got := p.Resolve("TFT_RED"); got != (RGB{1, 2, 3}) {
		t.Errorf("Expected palette override, got %v", got)
	}
	if got := p.Resolve("ACCENT"); got != (RGB{10, 20, 30}) {
		t.Errorf("Expected ACCENT, got %v", got)
	}
	if _, ok := p.Lookup("MISSING"); ok {
		t.Error("Expected MISSING to be unresolved")
	}
	if got := p.Resolve("TFT_BLUE"); got != (RGB{0, 0, 255}) {
		t.Errorf("Expected builtin blue, got %v", got)
	}
}

func TestColorNames(t *testing.T) {
	names := ColorNames()
	if len(names) != 20 {
		t.Errorf("Expected 20 color names, got %d", len(names))
	}
	for _, name := range names {
		if _, ok := Palette(nil).Lookup(name); !ok {
			t.Errorf("Expected %s to resolve", name)
		}
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{255, 0, 16}).String(); got != "#ff0010" {
		t.Errorf("Expected #ff0010, got %s", got)
	}
}
