package tftsim

import (
	"fmt"
	"strings"
)

// FontUnchanged is passed as the font argument of SetCursor and DrawString
// when the call did not name a font. Font 0 is a valid font number.
const FontUnchanged = -1

// Canvas is the drawing surface commands are issued to. It owns pixel
// storage, the text cursor, the active text color, font and size, and the
// display rotation.
type Canvas interface {
	// SetDimensions sets the unrotated display size
	SetDimensions(width, height int)
	FillScreen(c RGB)
	DrawRect(x, y, w, h int, c RGB)
	FillRect(x, y, w, h int, c RGB)
	DrawRoundRect(x, y, w, h, r int, c RGB)
	FillRoundRect(x, y, w, h, r int, c RGB)
	DrawCircle(x, y, r int, c RGB)
	FillCircle(x, y, r int, c RGB)
	DrawLine(x0, y0, x1, y1 int, c RGB)
	DrawTriangle(x0, y0, x1, y1, x2, y2 int, c RGB)
	FillTriangle(x0, y0, x1, y1, x2, y2 int, c RGB)
	// DrawBitmap paints set bits with fg; unset bits are painted with bg
	// when it is non-nil and left transparent otherwise
	DrawBitmap(x, y int, bitmap []byte, w, h int, fg RGB, bg *RGB)
	SetCursor(x, y, font int)
	SetTextColor(c RGB)
	SetTextFont(font int)
	SetTextSize(size int)
	Print(text string)
	Println(text string)
	// DrawString prints text at x, y and then restores the cursor and font
	DrawString(text string, x, y, font int)
	SetRotation(rotation int)
	// Flush signals that a complete frame has been drawn
	Flush()
}

// Recorder is a Canvas that records every call as one line of text.
// It backs the -trace output and the interpreter tests.
type Recorder struct {
	Calls []string
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(name string, args ...interface{}) {
	parts := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			parts[i] = fmt.Sprintf("%q", v)
		case *RGB:
			if v == nil {
				parts[i] = "nil"
			} else {
				parts[i] = v.String()
			}
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	r.Calls = append(r.Calls, fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", ")))
}

// Reset discards recorded calls
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Drawing returns the recorded calls except SetDimensions and Flush
func (r *Recorder) Drawing() []string {
	var out []string
	for _, c := range r.Calls {
		if strings.HasPrefix(c, "setDimensions(") || c == "flush()" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (r *Recorder) SetDimensions(width, height int) { r.record("setDimensions", width, height) }
func (r *Recorder) FillScreen(c RGB) { r.record("fillScreen", c) }
func (r *Recorder) DrawRect(x, y, w, h int, c RGB) { r.record("drawRect", x, y, w, h, c) }
func (r *Recorder) FillRect(x, y, w, h int, c RGB) { r.record("fillRect", x, y, w, h, c) }

func (r *Recorder) DrawRoundRect(x, y, w, h, rad int, c RGB) {
	r.record("drawRoundRect", x, y, w, h, rad, c)
}

func (r *Recorder) FillRoundRect(x, y, w, h, rad int, c RGB) {
	r.record("fillRoundRect", x, y, w, h, rad, c)
}

func (r *Recorder) DrawCircle(x, y, rad int, c RGB) { r.record("drawCircle", x, y, rad, c) }
func (r *Recorder) FillCircle(x, y, rad int, c RGB) { r.record("fillCircle", x, y, rad, c) }

func (r *Recorder) DrawLine(x0, y0, x1, y1 int, c RGB) { r.record("drawLine", x0, y0, x1, y1, c) }

func (r *Recorder) DrawTriangle(x0, y0, x1, y1, x2, y2 int, c RGB) {
	r.record("drawTriangle", x0, y0, x1, y1, x2, y2, c)
}

func (r *Recorder) FillTriangle(x0, y0, x1, y1, x2, y2 int, c RGB) {
	r.record("fillTriangle", x0, y0, x1, y1, x2, y2, c)
}

func (r *Recorder) DrawBitmap(x, y int, bitmap []byte, w, h int, fg RGB, bg *RGB) {
	r.record("drawBitmap", x, y, fmt.Sprintf("%d bytes", len(bitmap)), w, h, fg, bg)
}

func (r *Recorder) SetCursor(x, y, font int) { r.record("setCursor", x, y, font) }
func (r *Recorder) SetTextColor(c RGB) { r.record("setTextColor", c) }
func (r *Recorder) SetTextFont(font int) { r.record("setTextFont", font) }
func (r *Recorder) SetTextSize(size int) { r.record("setTextSize", size) }
func (r *Recorder) Print(text string) { r.record("print", text) }
func (r *Recorder) Println(text string) { r.record("println", text) }
func (r *Recorder) SetRotation(rotation int) { r.record("setRotation", rotation) }
func (r *Recorder) Flush() { r.record("flush") }
func (r *Recorder) DrawString(text string, x, y, font int) {
	r.record("drawString", text, x, y, font)
}

// Tee fans every call out to several canvases in order
type Tee []Canvas

func (t Tee) SetDimensions(width, height int) {
	for _, c := range t {
		c.SetDimensions(width, height)
	}
}

func (t Tee) FillScreen(col RGB) {
	for _, c := range t {
		c.FillScreen(col)
	}
}

func (t Tee) DrawRect(x, y, w, h int, col RGB) {
	for _, c := range t {
		c.DrawRect(x, y, w, h, col)
	}
}

func (t Tee) FillRect(x, y, w, h int, col RGB) {
	for _, c := range t {
		c.FillRect(x, y, w, h, col)
	}
}

func (t Tee) DrawRoundRect(x, y, w, h, r int, col RGB) {
	for _, c := range t {
		c.DrawRoundRect(x, y, w, h, r, col)
	}
}

func (t Tee) FillRoundRect(x, y, w, h, r int, col RGB) {
	for _, c := range t {
		c.FillRoundRect(x, y, w, h, r, col)
	}
}

func (t Tee) DrawCircle(x, y, r int, col RGB) {
	for _, c := range t {
		c.DrawCircle(x, y, r, col)
	}
}

func (t Tee) FillCircle(x, y, r int, col RGB) {
	for _, c := range t {
		c.FillCircle(x, y, r, col)
	}
}

func (t Tee) DrawLine(x0, y0, x1, y1 int, col RGB) {
	for _, c := range t {
		c.DrawLine(x0, y0, x1, y1, col)
	}
}

func (t Tee) DrawTriangle(x0, y0, x1, y1, x2, y2 int, col RGB) {
	for _, c := range t {
		c.DrawTriangle(x0, y0, x1, y1, x2, y2, col)
	}
}

func (t Tee) FillTriangle(x0, y0, x1, y1, x2, y2 int, col RGB) {
	for _, c := range t {
		c.FillTriangle(x0, y0, x1, y1, x2, y2, col)
	}
}

func (t Tee) DrawBitmap(x, y int, bitmap []byte, w, h int, fg RGB, bg *RGB) {
	for _, c := range t {
		c.DrawBitmap(x, y, bitmap, w, h, fg, bg)
	}
}

func (t Tee) SetCursor(x, y, font int) {
	for _, c := range t {
		c.SetCursor(x, y, font)
	}
}

func (t Tee) SetTextColor(col RGB) {
	for _, c := range t {
		c.SetTextColor(col)
	}
}

func (t Tee) SetTextFont(font int) {
	for _, c := range t {
		c.SetTextFont(font)
	}
}

func (t Tee) SetTextSize(size int) {
	for _, c := range t {
		c.SetTextSize(size)
	}
}

func (t Tee) Print(text string) {
	for _, c := range t {
		c.Print(text)
	}
}

func (t Tee) Println(text string) {
	for _, c := range t {
		c.Println(text)
	}
}

func (t Tee) DrawString(text string, x, y, font int) {
	for _, c := range t {
		c.DrawString(text, x, y, font)
	}
}

func (t Tee) SetRotation(rotation int) {
	for _, c := range t {
		c.SetRotation(rotation)
	}
}

func (t Tee) Flush() {
	for _, c := range t {
		c.Flush()
	}
}
