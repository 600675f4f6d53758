package tftcanvas

import (
	"fmt"
	"image"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSizes maps TFT_eSPI font numbers to glyph heights in pixels
var DefaultFontSizes = map[int]int{
	1: 8,
	2: 16,
	3: 24,
	4: 26,
	5: 32,
	6: 48,
	7: 75,
	8: 90,
}

const (
	// fallbackHeight is used for font numbers missing from the size table
	fallbackHeight = 16
	// fallbackLineHeight is the println advance base for unknown fonts
	fallbackLineHeight = 8
	// MaxFontHeight bounds a configured font height
	MaxFontHeight = 256
	// maxMaskHeight and maxMaskWidth bound one rendered text mask
	maxMaskHeight = MaxFontHeight * MaxTextSize
	maxMaskWidth  = 2 * maxDimension
)

type faceKey struct {
	font   int
	height int
}

// FontSet resolves font numbers to rendered glyph masks. Without custom
// fonts every number uses the built-in 7x13 face scaled to the size table.
type FontSet struct {
	sizes       map[int]int
	custom      map[int]*opentype.Font
	defaultFont *opentype.Font
	faces       map[faceKey]font.Face
}

// NewFontSet creates a font set with DefaultFontSizes
func NewFontSet() *FontSet {
	sizes := make(map[int]int, len(DefaultFontSizes))
	for k, v := range DefaultFontSizes {
		sizes[k] = v
	}
	return &FontSet{
		sizes:  sizes,
		custom: make(map[int]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// SetSize overrides the pixel height of one font number. Heights above
// MaxFontHeight are clamped.
func (fs *FontSet) SetSize(number, height int) {
	if height > 0 {
		fs.sizes[number] = min(height, MaxFontHeight)
	}
}

// Size returns the pixel height of a font number at size multiplier 1
func (fs *FontSet) Size(number int) int {
	if h, ok := fs.sizes[number]; ok {
		return h
	}
	return fallbackHeight
}

// Height returns the rendered glyph height for a font number and size
func (fs *FontSet) Height(number, size int) int {
	return min(fs.Size(number)*clampTextSize(size), maxMaskHeight)
}

// LineAdvance is how far println moves the cursor down: 1.2 times the
// font height, without the size multiplier
func (fs *FontSet) LineAdvance(number int) int {
	h, ok := fs.sizes[number]
	if !ok {
		h = fallbackLineHeight
	}
	return h * 12 / 10
}

func loadOpenType(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// LoadCustomFont uses a TTF or OTF file for one font number
func (fs *FontSet) LoadCustomFont(number int, path string) error {
	f, err := loadOpenType(path)
	if err != nil {
		return err
	}
	fs.custom[number] = f
	fs.dropFaces(number)
	return nil
}

// LoadDefaultFont uses a TTF or OTF file for every font number without a
// custom font of its own
func (fs *FontSet) LoadDefaultFont(path string) error {
	f, err := loadOpenType(path)
	if err != nil {
		return err
	}
	fs.defaultFont = f
	fs.dropFaces(-1)
	return nil
}

// dropFaces forgets cached faces for one number, or all when number < 0
func (fs *FontSet) dropFaces(number int) {
	for k, face := range fs.faces {
		if number < 0 || k.font == number {
			_ = face.Close()
			delete(fs.faces, k)
		}
	}
}

// Close releases cached font faces
func (fs *FontSet) Close() error {
	fs.dropFaces(-1)
	return nil
}

func (fs *FontSet) outline(number int) *opentype.Font {
	if f, ok := fs.custom[number]; ok {
		return f
	}
	return fs.defaultFont
}

// Render returns the alpha mask of text in the given font number and size.
// The mask width is the horizontal advance of the text.
func (fs *FontSet) Render(text string, number, size int) (*image.Alpha, error) {
	height := fs.Height(number, size)
	if f := fs.outline(number); f != nil {
		return fs.renderOutline(f, text, number, height)
	}
	return renderBasic(text, height), nil
}

func (fs *FontSet) renderOutline(f *opentype.Font, text string, number, height int) (*image.Alpha, error) {
	key := faceKey{font: number, height: height}
	face, ok := fs.faces[key]
	if !ok {
		var err error
		face, err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(height),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, err
		}
		fs.faces[key] = face
	}
	return drawMask(face, text), nil
}

// drawMask renders text with its top at y 0
func drawMask(face font.Face, text string) *image.Alpha {
	metrics := face.Metrics()
	width := min(font.MeasureString(face, text).Ceil(), maxMaskWidth)
	height := min((metrics.Ascent + metrics.Descent).Ceil(), maxMaskHeight)
	mask := image.NewAlpha(image.Rect(0, 0, max(width, 0), max(height, 0)))

	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)
	return mask
}

// renderBasic draws with the 7x13 bitmap face and scales the result with
// nearest neighbor so glyphs stay blocky like the device fonts
func renderBasic(text string, height int) *image.Alpha {
	src := drawMask(basicfont.Face7x13, text)
	sb := src.Bounds()
	if sb.Empty() || height <= 0 {
		return src
	}
	height = min(height, maxMaskHeight)
	width := min(max(sb.Dx()*height/sb.Dy(), 1), maxMaskWidth)
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	return dst
}
