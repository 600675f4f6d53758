package tftsim

import (
	"strconv"
	"strings"
)

// tftColors holds the TFT_eSPI named color constants
var tftColors = map[string]RGB{
	"TFT_BLACK":       {0, 0, 0},
	"TFT_WHITE":       {255, 255, 255},
	"TFT_RED":         {255, 0, 0},
	"TFT_GREEN":       {0, 255, 0},
	"TFT_BLUE":        {0, 0, 255},
	"TFT_YELLOW":      {255, 255, 0},
	"TFT_CYAN":        {0, 255, 255},
	"TFT_MAGENTA":     {255, 0, 255},
	"TFT_ORANGE":      {255, 165, 0},
	"TFT_PINK":        {255, 192, 203},
	"TFT_PURPLE":      {128, 0, 128},
	"TFT_NAVY":        {0, 0, 128},
	"TFT_DARKGREEN":   {0, 128, 0},
	"TFT_DARKCYAN":    {0, 128, 128},
	"TFT_MAROON":      {128, 0, 0},
	"TFT_OLIVE":       {128, 128, 0},
	"TFT_LIGHTGREY":   {211, 211, 211},
	"TFT_DARKGREY":    {128, 128, 128},
	"TFT_GREENYELLOW": {173, 255, 47},
	"TFT_BROWN":       {150, 75, 0},
}

// ColorNames returns the built-in color constant names
func ColorNames() []string {
	names := make([]string, 0, len(tftColors))
	for name := range tftColors {
		names = append(names, name)
	}
	return names
}

// Palette holds additional named colors that take precedence over the
// built-in constants.
type Palette map[string]RGB

// Lookup resolves a color token, reporting whether it was understood
func (p Palette) Lookup(token string) (RGB, bool) {
	token = strings.TrimSpace(token)
	if c, ok := p[token]; ok {
		return c, true
	}
	if c, ok := tftColors[token]; ok {
		return c, true
	}

	if len(token) > 2 && (token[:2] == "0x" || token[:2] == "0X") {
		value, err := strconv.ParseUint(token[2:], 16, 64)
		if err != nil {
			return White, false
		}
		if value <= 0xFFFF {
			return Unpack565(uint16(value)), true
		}
		return Unpack888(uint32(value)), true
	}

	return White, false
}

// Resolve resolves a color token, falling back to white
func (p Palette) Resolve(token string) RGB {
	c, _ := p.Lookup(token)
	return c
}

// ResolveColor maps a symbolic color name or 0x literal to RGB.
// Literals up to 0xFFFF are 5-6-5 packed, larger ones 8-8-8.
// Anything else resolves to white.
func ResolveColor(token string) RGB {
	return Palette(nil).Resolve(token)
}

// Unpack565 expands a 16-bit RRRRRGGGGGGBBBBB color to 8 bits per channel
func Unpack565(v uint16) RGB {
	r := int(v>>11) & 0x1F
	g := int(v>>5) & 0x3F
	b := int(v) & 0x1F
	return RGB{
		R: uint8(r * 255 / 31),
		G: uint8(g * 255 / 63),
		B: uint8(b * 255 / 31),
	}
}

// Unpack888 splits a 24-bit packed color into its channels
func Unpack888(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}
