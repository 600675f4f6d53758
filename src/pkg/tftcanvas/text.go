package tftcanvas

import (
	"image"
	"image/draw"

	"github.com/phroun/tftsim"
)

func (fb *Framebuffer) SetCursor(x, y, font int) {
	fb.text.CursorX = x
	fb.text.CursorY = y
	if font != tftsim.FontUnchanged {
		fb.text.Font = font
	}
}

func (fb *Framebuffer) SetTextColor(c tftsim.RGB) {
	fb.text.Color = c
}

func (fb *Framebuffer) SetTextFont(font int) {
	fb.text.Font = font
}

// MaxTextSize is the largest text size multiplier, as on the device
const MaxTextSize = 7

func clampTextSize(size int) int {
	return min(max(size, 1), MaxTextSize)
}

// SetTextSize sets the size multiplier, clamped to 1..MaxTextSize
func (fb *Framebuffer) SetTextSize(size int) {
	fb.text.Size = clampTextSize(size)
}

// Print draws text at the cursor and advances the cursor by its width
func (fb *Framebuffer) Print(text string) {
	if text == "" {
		return
	}
	mask, err := fb.fonts.Render(text, fb.text.Font, fb.text.Size)
	if err != nil {
		// fall back to the built-in face
		mask = renderBasic(text, fb.fonts.Height(fb.text.Font, fb.text.Size))
	}

	mb := mask.Bounds()
	dr := image.Rect(fb.text.CursorX, fb.text.CursorY, fb.text.CursorX+mb.Dx(), fb.text.CursorY+mb.Dy())
	draw.DrawMask(fb.img, dr, &image.Uniform{C: fb.text.Color.RGBA()}, image.Point{}, mask, mb.Min, draw.Over)

	fb.text.CursorX += mb.Dx()
}

// Println prints text, then returns the cursor to x 0 on the next line
func (fb *Framebuffer) Println(text string) {
	fb.Print(text)
	fb.text.CursorX = 0
	fb.text.CursorY += fb.fonts.LineAdvance(fb.text.Font)
}

// DrawString prints text at x, y and restores the cursor and font
func (fb *Framebuffer) DrawString(text string, x, y, font int) {
	saved := fb.text
	defer func() { fb.text = saved }()

	fb.SetCursor(x, y, font)
	fb.Print(text)
}
