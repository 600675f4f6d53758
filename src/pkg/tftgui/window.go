package tftgui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// WindowTitle is the title of the presentation window
const WindowTitle = "TFT_eSPI Simulator"

// Window presents framebuffer snapshots, magnified with nearest neighbor
// scaling. Escape or closing the window ends Run.
type Window struct {
	app   fyne.App
	win   fyne.Window
	image *canvas.Image
	scale float64
}

// NewWindow creates the presentation window on a new Fyne application
func NewWindow(scale float64) *Window {
	return NewWindowForApp(app.New(), scale)
}

// NewWindowForApp creates the presentation window on an existing
// application
func NewWindowForApp(a fyne.App, scale float64) *Window {
	if scale <= 0 {
		scale = DefaultScale
	}

	w := &Window{
		app:   a,
		win:   a.NewWindow(WindowTitle),
		scale: scale,
	}

	w.image = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	w.image.ScaleMode = canvas.ImageScalePixels
	w.image.FillMode = canvas.ImageFillContain
	w.win.SetContent(w.image)

	w.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			w.win.Close()
		}
	})
	return w
}

// Scale returns the magnification factor
func (w *Window) Scale() float64 {
	return w.scale
}

// Image returns the canvas object showing the frame
func (w *Window) Image() *canvas.Image {
	return w.image
}

// setFrame shows img and sizes the window to it. Must run on the Fyne
// goroutine.
func (w *Window) setFrame(img *image.RGBA) {
	b := img.Bounds()
	size := fyne.NewSize(float32(float64(b.Dx())*w.scale), float32(float64(b.Dy())*w.scale))

	w.image.Image = img
	w.image.SetMinSize(size)
	w.image.Refresh()
	w.win.Resize(size)
}

// Update shows a new frame. It is safe to call from any goroutine and is
// meant to be registered as the framebuffer's flush listener.
func (w *Window) Update(img *image.RGBA) {
	fyne.Do(func() {
		w.setFrame(img)
	})
}

// Run starts render on its own goroutine and blocks in the window loop
// until the window is closed.
func (w *Window) Run(render func()) {
	go render()
	w.win.ShowAndRun()
}
