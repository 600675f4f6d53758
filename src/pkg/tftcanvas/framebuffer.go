// Package tftcanvas provides an in-memory implementation of the tftsim
// Canvas: an RGBA framebuffer with TFT_eSPI style primitives, text cursor
// state, rotation and image export.
package tftcanvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/phroun/tftsim"
)

// TextState is the text cursor and style carried between print calls
type TextState struct {
	CursorX int
	CursorY int
	Color   tftsim.RGB
	Font    int
	Size    int
}

// DefaultTextState is the text state of a fresh framebuffer
var DefaultTextState = TextState{Color: tftsim.White, Font: 1, Size: 1}

// Framebuffer is a Canvas backed by an *image.RGBA. Pixels outside the
// logical display are clipped. It is not safe for concurrent use; Flush
// hands listeners an independent copy.
type Framebuffer struct {
	img *image.RGBA
	// width and height are the unrotated display size
	width    int
	height   int
	rotation int
	text     TextState
	fonts    *FontSet
	frames   int
	onFlush  func(*image.RGBA)
}

// New creates a black framebuffer of the given unrotated size. A nil
// FontSet uses the built-in face with the default size table.
func New(width, height int, fonts *FontSet) *Framebuffer {
	if fonts == nil {
		fonts = NewFontSet()
	}
	fb := &Framebuffer{
		text:  DefaultTextState,
		fonts: fonts,
	}
	fb.SetDimensions(width, height)
	return fb
}

// OnFlush registers a callback that receives a copy of every flushed frame
func (fb *Framebuffer) OnFlush(fn func(*image.RGBA)) {
	fb.onFlush = fn
}

// Width returns the logical width for the current rotation
func (fb *Framebuffer) Width() int {
	return fb.img.Rect.Dx()
}

// Height returns the logical height for the current rotation
func (fb *Framebuffer) Height() int {
	return fb.img.Rect.Dy()
}

// Rotation returns the current rotation, 0 to 3
func (fb *Framebuffer) Rotation() int {
	return fb.rotation
}

// Text returns the current text state
func (fb *Framebuffer) Text() TextState {
	return fb.text
}

// Frames returns how many times Flush has been called
func (fb *Framebuffer) Frames() int {
	return fb.frames
}

// Fonts returns the font set used for text
func (fb *Framebuffer) Fonts() *FontSet {
	return fb.fonts
}

// Image returns the live surface
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// Snapshot returns a copy of the surface
func (fb *Framebuffer) Snapshot() *image.RGBA {
	out := image.NewRGBA(fb.img.Rect)
	copy(out.Pix, fb.img.Pix)
	return out
}

// At returns the color of one logical pixel, black outside the surface
func (fb *Framebuffer) At(x, y int) tftsim.RGB {
	if !image.Pt(x, y).In(fb.img.Rect) {
		return tftsim.Black
	}
	c := fb.img.RGBAAt(x, y)
	return tftsim.RGB{R: c.R, G: c.G, B: c.B}
}

// reset reallocates the surface for the current rotation and clears it
func (fb *Framebuffer) reset() {
	w, h := fb.width, fb.height
	if fb.rotation%2 == 1 {
		w, h = h, w
	}
	fb.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	fb.clear(tftsim.Black)
}

func (fb *Framebuffer) clear(c tftsim.RGB) {
	draw.Draw(fb.img, fb.img.Rect, &image.Uniform{C: c.RGBA()}, image.Point{}, draw.Src)
}

// maxDimension bounds each side of the surface
const maxDimension = tftsim.MaxDimension

// SetDimensions sets the unrotated display size and clears the surface.
// Each side is clamped to 0..tftsim.MaxDimension.
func (fb *Framebuffer) SetDimensions(width, height int) {
	fb.width = min(max(width, 0), maxDimension)
	fb.height = min(max(height, 0), maxDimension)
	fb.reset()
}

// SetRotation selects rotation r modulo 4. Odd rotations swap width and
// height; the surface is recreated and cleared.
func (fb *Framebuffer) SetRotation(r int) {
	fb.rotation = ((r % 4) + 4) % 4
	fb.reset()
}

func (fb *Framebuffer) FillScreen(c tftsim.RGB) {
	fb.clear(c)
}

// Flush counts the frame and passes a snapshot to the flush listener
func (fb *Framebuffer) Flush() {
	fb.frames++
	if fb.onFlush != nil {
		fb.onFlush(fb.Snapshot())
	}
}

func (fb *Framebuffer) set(x, y int, c color.RGBA) {
	if image.Pt(x, y).In(fb.img.Rect) {
		fb.img.SetRGBA(x, y, c)
	}
}

// DrawBitmap paints a 1-bit-per-pixel, MSB first bitmap. Rows are not
// padded: pixel (col, row) is bit row*w+col of the data.
func (fb *Framebuffer) DrawBitmap(x, y int, bitmap []byte, w, h int, fg tftsim.RGB, bg *tftsim.RGB) {
	fc := fg.RGBA()
	var bc color.RGBA
	if bg != nil {
		bc = bg.RGBA()
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			bit := row*w + col
			idx := bit / 8
			if idx >= len(bitmap) {
				return
			}
			if bitmap[idx]>>(7-uint(bit%8))&1 == 1 {
				fb.set(x+col, y+row, fc)
			} else if bg != nil {
				fb.set(x+col, y+row, bc)
			}
		}
	}
}

var _ tftsim.Canvas = (*Framebuffer)(nil)
