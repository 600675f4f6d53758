package tftgui

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/phroun/tftsim"
	"github.com/phroun/tftsim/src/pkg/tftcanvas"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	fc, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fc.Width != 0 || fc.Scale != 0 {
		t.Errorf("Expected an empty config on first run, got %+v", fc)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected the default file to be created: %v", err)
	}
	if !strings.Contains(string(content), "entry_routine: setup") {
		t.Errorf("Default file is missing entry_routine:\n%s", content)
	}

	// The generated file must parse back to the documented defaults
	fc, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected generated file to parse, got %v", err)
	}
	if fc.Width != 480 || fc.Height != 320 || fc.EntryRoutine != "setup" || fc.MaxLoopIterations != 1000000 {
		t.Errorf("Unexpected defaults: %+v", fc)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	fc, err := LoadConfig("")
	if err != nil || fc == nil {
		t.Fatalf("Expected empty config, got %+v, %v", fc, err)
	}
}

func TestLoadConfigParseError(t *testing.T) {
	path := writeConfig(t, "width: [not a number\n")
	fc, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected a parse error")
	}
	if fc == nil || fc.Width != 0 {
		t.Errorf("Expected an empty fallback config, got %+v", fc)
	}
}

func TestApplyConfig(t *testing.T) {
	path := writeConfig(t, `
width: 160
height: 128
scale: 3
entry_routine: draw
display_object: screen
max_loop_iterations: 50
colors:
  TFT_BRAND: "0x1E90FF"
  TFT_BROKEN: "teal"
`)
	fc, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	config := tftsim.DefaultConfig()
	errs := fc.Apply(config)

	if config.DefaultWidth != 160 || config.DefaultHeight != 128 {
		t.Errorf("Expected 160x128, got %dx%d", config.DefaultWidth, config.DefaultHeight)
	}
	if config.EntryRoutine != "draw" || config.DisplayObject != "screen" {
		t.Errorf("Expected draw/screen, got %s/%s", config.EntryRoutine, config.DisplayObject)
	}
	if config.MaxLoopIterations != 50 {
		t.Errorf("Expected 50 iterations, got %d", config.MaxLoopIterations)
	}
	if fc.WindowScale() != 3 {
		t.Errorf("Expected scale 3, got %v", fc.WindowScale())
	}

	want := tftsim.RGB{R: 0x1E, G: 0x90, B: 0xFF}
	if got := config.Palette["TFT_BRAND"]; got != want {
		t.Errorf("Expected TFT_BRAND %s, got %s", want, got)
	}
	if _, ok := config.Palette["TFT_BROKEN"]; ok {
		t.Error("Expected unresolvable color to be skipped")
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "TFT_BROKEN") {
		t.Errorf("Expected one error naming TFT_BROKEN, got %v", errs)
	}
}

func TestApplyKeepsDefaults(t *testing.T) {
	config := tftsim.DefaultConfig()
	if errs := (&FileConfig{}).Apply(config); len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if config.DefaultWidth != 480 || config.EntryRoutine != "setup" || config.Palette != nil {
		t.Errorf("Expected defaults to survive, got %+v", config)
	}
	if (&FileConfig{}).WindowScale() != DefaultScale {
		t.Error("Expected default scale")
	}
}

func TestApplyFonts(t *testing.T) {
	fc := &FileConfig{
		FontSizes:   map[int]int{2: 20, 9: 40},
		CustomFonts: map[int]string{4: filepath.Join(t.TempDir(), "missing.ttf")},
	}
	fonts := tftcanvas.NewFontSet()
	errs := fc.ApplyFonts(fonts)

	if fonts.Size(2) != 20 || fonts.Size(9) != 40 {
		t.Errorf("Expected sizes 20 and 40, got %d and %d", fonts.Size(2), fonts.Size(9))
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "font 4") {
		t.Errorf("Expected one error for font 4, got %v", errs)
	}
}

func TestApplyLogging(t *testing.T) {
	logger := tftsim.NewLogger(true)
	logger.EnableAllCategories()

	fc := &FileConfig{DebugCategories: []string{"loop", "bogus"}}
	errs := fc.ApplyLogging(logger)

	if !logger.IsCategoryEnabled(tftsim.CatLoop) {
		t.Error("Expected loop category enabled")
	}
	if logger.IsCategoryEnabled(tftsim.CatCommand) {
		t.Error("Expected command category disabled")
	}
	if len(errs) != 1 {
		t.Errorf("Expected one error, got %v", errs)
	}

	logger = tftsim.NewLogger(true)
	logger.EnableAllCategories()
	if errs := (&FileConfig{}).ApplyLogging(logger); errs != nil {
		t.Errorf("Expected no errors, got %v", errs)
	}
	if !logger.IsCategoryEnabled(tftsim.CatCommand) {
		t.Error("Expected categories untouched without configuration")
	}
}

func TestWindowSetFrame(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := NewWindowForApp(a, 2)
	frame := image.NewRGBA(image.Rect(0, 0, 40, 30))
	w.setFrame(frame)

	if w.Image().Image != frame {
		t.Error("Expected the frame to be shown")
	}
	if size := w.Image().MinSize(); size.Width != 80 || size.Height != 60 {
		t.Errorf("Expected 80x60 min size, got %vx%v", size.Width, size.Height)
	}
}

func TestWindowDefaultScale(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	if w := NewWindowForApp(a, 0); w.Scale() != DefaultScale {
		t.Errorf("Expected scale %v, got %v", DefaultScale, w.Scale())
	}
}
