package tftsim

import "fmt"

// Command is one fully resolved drawing call. Each call form of the
// supported vocabulary has its own type; Apply issues it to a Canvas.
type Command interface {
	// Name returns the call name as written in a sketch
	Name() string
	Apply(c Canvas)
	String() string
}

// FillScreen paints the whole canvas
type FillScreen struct {
	Color RGB
}

func (FillScreen) Name() string { return "fillScreen" }
func (f FillScreen) Apply(c Canvas) { c.FillScreen(f.Color) }
func (f FillScreen) String() string { return fmt.Sprintf("fillScreen(%s)", f.Color) }

// Rect is drawRect or fillRect
type Rect struct {
	Filled     bool
	X, Y, W, H int
	Color      RGB
}

func (r Rect) Name() string {
	if r.Filled {
		return "fillRect"
	}
	return "drawRect"
}

func (r Rect) Apply(c Canvas) {
	if r.Filled {
		c.FillRect(r.X, r.Y, r.W, r.H, r.Color)
	} else {
		c.DrawRect(r.X, r.Y, r.W, r.H, r.Color)
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("%s(%d, %d, %d, %d, %s)", r.Name(), r.X, r.Y, r.W, r.H, r.Color)
}

// RoundRect is drawRoundRect or fillRoundRect
type RoundRect struct {
	Filled        bool
	X, Y, W, H, R int
	Color         RGB
}

func (r RoundRect) Name() string {
	if r.Filled {
		return "fillRoundRect"
	}
	return "drawRoundRect"
}

func (r RoundRect) Apply(c Canvas) {
	if r.Filled {
		c.FillRoundRect(r.X, r.Y, r.W, r.H, r.R, r.Color)
	} else {
		c.DrawRoundRect(r.X, r.Y, r.W, r.H, r.R, r.Color)
	}
}

func (r RoundRect) String() string {
	return fmt.Sprintf("%s(%d, %d, %d, %d, %d, %s)", r.Name(), r.X, r.Y, r.W, r.H, r.R, r.Color)
}

// Circle is drawCircle or fillCircle
type Circle struct {
	Filled  bool
	X, Y, R int
	Color   RGB
}

func (ci Circle) Name() string {
	if ci.Filled {
		return "fillCircle"
	}
	return "drawCircle"
}

func (ci Circle) Apply(c Canvas) {
	if ci.Filled {
		c.FillCircle(ci.X, ci.Y, ci.R, ci.Color)
	} else {
		c.DrawCircle(ci.X, ci.Y, ci.R, ci.Color)
	}
}

func (ci Circle) String() string {
	return fmt.Sprintf("%s(%d, %d, %d, %s)", ci.Name(), ci.X, ci.Y, ci.R, ci.Color)
}

// Line is drawLine
type Line struct {
	X0, Y0, X1, Y1 int
	Color          RGB
}

func (Line) Name() string { return "drawLine" }
func (l Line) Apply(c Canvas) { c.DrawLine(l.X0, l.Y0, l.X1, l.Y1, l.Color) }

func (l Line) String() string {
	return fmt.Sprintf("drawLine(%d, %d, %d, %d, %s)", l.X0, l.Y0, l.X1, l.Y1, l.Color)
}

// Triangle is drawTriangle or fillTriangle
type Triangle struct {
	Filled                 bool
	X0, Y0, X1, Y1, X2, Y2 int
	Color                  RGB
}

func (t Triangle) Name() string {
	if t.Filled {
		return "fillTriangle"
	}
	return "drawTriangle"
}

func (t Triangle) Apply(c Canvas) {
	if t.Filled {
		c.FillTriangle(t.X0, t.Y0, t.X1, t.Y1, t.X2, t.Y2, t.Color)
	} else {
		c.DrawTriangle(t.X0, t.Y0, t.X1, t.Y1, t.X2, t.Y2, t.Color)
	}
}

func (t Triangle) String() string {
	return fmt.Sprintf("%s(%d, %d, %d, %d, %d, %d, %s)", t.Name(), t.X0, t.Y0, t.X1, t.Y1, t.X2, t.Y2, t.Color)
}

// Bitmap is drawBitmap with the bitmap data already looked up
type Bitmap struct {
	Ident  string
	Data   []byte
	X, Y   int
	W, H   int
	Color  RGB
	// Background paints unset bits when non-nil
	Background *RGB
}

func (Bitmap) Name() string { return "drawBitmap" }

func (b Bitmap) Apply(c Canvas) {
	c.DrawBitmap(b.X, b.Y, b.Data, b.W, b.H, b.Color, b.Background)
}

func (b Bitmap) String() string {
	if b.Background != nil {
		return fmt.Sprintf("drawBitmap(%d, %d, %s, %d, %d, %s, %s)", b.X, b.Y, b.Ident, b.W, b.H, b.Color, *b.Background)
	}
	return fmt.Sprintf("drawBitmap(%d, %d, %s, %d, %d, %s)", b.X, b.Y, b.Ident, b.W, b.H, b.Color)
}

// SetCursor moves the text cursor, optionally selecting a font
type SetCursor struct {
	X, Y int
	Font int
}

func (SetCursor) Name() string { return "setCursor" }
func (s SetCursor) Apply(c Canvas) { c.SetCursor(s.X, s.Y, s.Font) }

func (s SetCursor) String() string {
	if s.Font != FontUnchanged {
		return fmt.Sprintf("setCursor(%d, %d, %d)", s.X, s.Y, s.Font)
	}
	return fmt.Sprintf("setCursor(%d, %d)", s.X, s.Y)
}

// SetTextColor selects the text foreground
type SetTextColor struct {
	Color RGB
}

func (SetTextColor) Name() string { return "setTextColor" }
func (s SetTextColor) Apply(c Canvas) { c.SetTextColor(s.Color) }
func (s SetTextColor) String() string { return fmt.Sprintf("setTextColor(%s)", s.Color) }

// SetTextFont selects the active font number
type SetTextFont struct {
	Font int
}

func (SetTextFont) Name() string { return "setTextFont" }
func (s SetTextFont) Apply(c Canvas) { c.SetTextFont(s.Font) }
func (s SetTextFont) String() string { return fmt.Sprintf("setTextFont(%d)", s.Font) }

// SetTextSize selects the text size multiplier
type SetTextSize struct {
	Size int
}

func (SetTextSize) Name() string { return "setTextSize" }
func (s SetTextSize) Apply(c Canvas) { c.SetTextSize(s.Size) }
func (s SetTextSize) String() string { return fmt.Sprintf("setTextSize(%d)", s.Size) }

// PrintText is print or println at the cursor
type PrintText struct {
	Text    string
	Newline bool
}

func (p PrintText) Name() string {
	if p.Newline {
		return "println"
	}
	return "print"
}

func (p PrintText) Apply(c Canvas) {
	if p.Newline {
		c.Println(p.Text)
	} else {
		c.Print(p.Text)
	}
}

func (p PrintText) String() string { return fmt.Sprintf("%s(%q)", p.Name(), p.Text) }

// DrawString prints at an absolute position without moving the cursor
type DrawString struct {
	Text string
	X, Y int
	Font int
}

func (DrawString) Name() string { return "drawString" }
func (d DrawString) Apply(c Canvas) { c.DrawString(d.Text, d.X, d.Y, d.Font) }

func (d DrawString) String() string {
	if d.Font != FontUnchanged {
		return fmt.Sprintf("drawString(%q, %d, %d, %d)", d.Text, d.X, d.Y, d.Font)
	}
	return fmt.Sprintf("drawString(%q, %d, %d)", d.Text, d.X, d.Y)
}

// SetRotation selects display rotation 0 to 3
type SetRotation struct {
	Rotation int
}

func (SetRotation) Name() string { return "setRotation" }
func (s SetRotation) Apply(c Canvas) { c.SetRotation(s.Rotation) }
func (s SetRotation) String() string { return fmt.Sprintf("setRotation(%d)", s.Rotation) }
