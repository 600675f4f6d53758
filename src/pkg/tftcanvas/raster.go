package tftcanvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/phroun/tftsim"
)

// Primitives follow the Adafruit GFX algorithms TFT_eSPI is built on, so
// outlines land on the same pixels as on the device.

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (fb *Framebuffer) fillRect(x, y, w, h int, c color.RGBA) {
	if w < 0 {
		x, w = x+w+1, -w
	}
	if h < 0 {
		y, h = y+h+1, -h
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(fb.img.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(fb.img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (fb *Framebuffer) hline(x, y, w int, c color.RGBA) {
	fb.fillRect(x, y, w, 1, c)
}

func (fb *Framebuffer) vline(x, y, h int, c color.RGBA) {
	fb.fillRect(x, y, 1, h, c)
}

func (fb *Framebuffer) FillRect(x, y, w, h int, c tftsim.RGB) {
	fb.fillRect(x, y, w, h, c.RGBA())
}

func (fb *Framebuffer) DrawRect(x, y, w, h int, c tftsim.RGB) {
	if w == 0 || h == 0 {
		return
	}
	if w < 0 {
		x, w = x+w+1, -w
	}
	if h < 0 {
		y, h = y+h+1, -h
	}
	col := c.RGBA()
	fb.hline(x, y, w, col)
	fb.hline(x, y+h-1, w, col)
	fb.vline(x, y, h, col)
	fb.vline(x+w-1, y, h, col)
}

func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c tftsim.RGB) {
	col := c.RGBA()
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	err := dx / 2
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	for ; x0 <= x1; x0++ {
		if steep {
			fb.set(y0, x0, col)
		} else {
			fb.set(x0, y0, col)
		}
		err -= dy
		if err < 0 {
			y0 += ystep
			err += dx
		}
	}
}

func (fb *Framebuffer) DrawCircle(x0, y0, r int, c tftsim.RGB) {
	if r < 0 {
		return
	}
	col := c.RGBA()
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x, y := 0, r

	fb.set(x0, y0+r, col)
	fb.set(x0, y0-r, col)
	fb.set(x0+r, y0, col)
	fb.set(x0-r, y0, col)

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		fb.set(x0+x, y0+y, col)
		fb.set(x0-x, y0+y, col)
		fb.set(x0+x, y0-y, col)
		fb.set(x0-x, y0-y, col)
		fb.set(x0+y, y0+x, col)
		fb.set(x0-y, y0+x, col)
		fb.set(x0+y, y0-x, col)
		fb.set(x0-y, y0-x, col)
	}
}

func (fb *Framebuffer) FillCircle(x0, y0, r int, c tftsim.RGB) {
	if r < 0 {
		return
	}
	col := c.RGBA()
	fb.vline(x0, y0-r, 2*r+1, col)
	fb.fillCircleHelper(x0, y0, r, 3, 0, col)
}

// drawCircleHelper draws the quarter arcs selected by corners:
// 1 top left, 2 top right, 4 bottom right, 8 bottom left
func (fb *Framebuffer) drawCircleHelper(x0, y0, r int, corners uint8, col color.RGBA) {
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x, y := 0, r

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		if corners&0x4 != 0 {
			fb.set(x0+x, y0+y, col)
			fb.set(x0+y, y0+x, col)
		}
		if corners&0x2 != 0 {
			fb.set(x0+x, y0-y, col)
			fb.set(x0+y, y0-x, col)
		}
		if corners&0x8 != 0 {
			fb.set(x0-y, y0+x, col)
			fb.set(x0-x, y0+y, col)
		}
		if corners&0x1 != 0 {
			fb.set(x0-y, y0-x, col)
			fb.set(x0-x, y0-y, col)
		}
	}
}

// fillCircleHelper fills the right (1) and/or left (2) half of a circle,
// stretched vertically by delta
func (fb *Framebuffer) fillCircleHelper(x0, y0, r int, corners uint8, delta int, col color.RGBA) {
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x, y := 0, r
	px, py := x, y

	delta++

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		if x < y+1 {
			if corners&1 != 0 {
				fb.vline(x0+x, y0-y, 2*y+delta, col)
			}
			if corners&2 != 0 {
				fb.vline(x0-x, y0-y, 2*y+delta, col)
			}
		}
		if y != py {
			if corners&1 != 0 {
				fb.vline(x0+py, y0-px, 2*px+delta, col)
			}
			if corners&2 != 0 {
				fb.vline(x0-py, y0-px, 2*px+delta, col)
			}
			py = y
		}
		px = x
	}
}

func clampRadius(w, h, r int) int {
	if r < 0 {
		return 0
	}
	if m := min(w, h) / 2; r > m {
		return m
	}
	return r
}

func (fb *Framebuffer) DrawRoundRect(x, y, w, h, r int, c tftsim.RGB) {
	if w <= 0 || h <= 0 {
		return
	}
	col := c.RGBA()
	r = clampRadius(w, h, r)

	fb.hline(x+r, y, w-2*r, col)
	fb.hline(x+r, y+h-1, w-2*r, col)
	fb.vline(x, y+r, h-2*r, col)
	fb.vline(x+w-1, y+r, h-2*r, col)

	fb.drawCircleHelper(x+r, y+r, r, 1, col)
	fb.drawCircleHelper(x+w-r-1, y+r, r, 2, col)
	fb.drawCircleHelper(x+w-r-1, y+h-r-1, r, 4, col)
	fb.drawCircleHelper(x+r, y+h-r-1, r, 8, col)
}

func (fb *Framebuffer) FillRoundRect(x, y, w, h, r int, c tftsim.RGB) {
	if w <= 0 || h <= 0 {
		return
	}
	col := c.RGBA()
	r = clampRadius(w, h, r)

	fb.fillRect(x+r, y, w-2*r, h, col)
	fb.fillCircleHelper(x+w-r-1, y+r, r, 1, h-2*r-1, col)
	fb.fillCircleHelper(x+r, y+r, r, 2, h-2*r-1, col)
}

func (fb *Framebuffer) DrawTriangle(x0, y0, x1, y1, x2, y2 int, c tftsim.RGB) {
	fb.DrawLine(x0, y0, x1, y1, c)
	fb.DrawLine(x1, y1, x2, y2, c)
	fb.DrawLine(x2, y2, x0, y0, c)
}

// FillTriangle fills by horizontal spans, splitting at the middle vertex
func (fb *Framebuffer) FillTriangle(x0, y0, x1, y1, x2, y2 int, c tftsim.RGB) {
	col := c.RGBA()

	// Sort vertices by y
	if y0 > y1 {
		y0, y1 = y1, y0
		x0, x1 = x1, x0
	}
	if y1 > y2 {
		y2, y1 = y1, y2
		x2, x1 = x1, x2
	}
	if y0 > y1 {
		y0, y1 = y1, y0
		x0, x1 = x1, x0
	}

	if y0 == y2 {
		a, b := x0, x0
		if x1 < a {
			a = x1
		} else if x1 > b {
			b = x1
		}
		if x2 < a {
			a = x2
		} else if x2 > b {
			b = x2
		}
		fb.hline(a, y0, b-a+1, col)
		return
	}

	dx01, dy01 := x1-x0, y1-y0
	dx02, dy02 := x2-x0, y2-y0
	dx12, dy12 := x2-x1, y2-y1
	sa, sb := 0, 0

	// The upper part includes y1 only when the lower edge is flat
	last := y1 - 1
	if y1 == y2 {
		last = y1
	}

	y := y0
	for ; y <= last; y++ {
		a := x0 + sa/dy01
		b := x0 + sb/dy02
		sa += dx01
		sb += dx02
		if a > b {
			a, b = b, a
		}
		fb.hline(a, y, b-a+1, col)
	}

	sa = dx12 * (y - y1)
	sb = dx02 * (y - y0)
	for ; y <= y2; y++ {
		a := x1 + sa/dy12
		b := x0 + sb/dy02
		sa += dx12
		sb += dx02
		if a > b {
			a, b = b, a
		}
		fb.hline(a, y, b-a+1, col)
	}
}
