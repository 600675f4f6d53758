// Package tftgui holds the simulator's file configuration and its Fyne
// presentation window.
package tftgui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/phroun/tftsim"
	"github.com/phroun/tftsim/src/pkg/tftcanvas"
	"gopkg.in/yaml.v3"
)

// FileConfig is the content of ~/.tftsim/config.yaml. Zero values mean
// "not set" and leave the built-in defaults alone.
type FileConfig struct {
	Width             int               `yaml:"width"`
	Height            int               `yaml:"height"`
	Scale             float64           `yaml:"scale"`
	EntryRoutine      string            `yaml:"entry_routine"`
	DisplayObject     string            `yaml:"display_object"`
	MaxLoopIterations int               `yaml:"max_loop_iterations"`
	FontSizes         map[int]int       `yaml:"font_sizes"`
	CustomFonts       map[int]string    `yaml:"custom_fonts"`
	DefaultFont       string            `yaml:"default_font"`
	Colors            map[string]string `yaml:"colors"`
	DebugCategories   []string          `yaml:"debug_categories"`
}

// DefaultScale is the window scale used when none is configured
const DefaultScale = 1.0

const defaultConfigContent = `# TFT_eSPI Simulator configuration
# This file is automatically created on first run

# Canvas size used when the sketch declares no displayWidth/displayHeight
width: 480
height: 320

# Window magnification (nearest neighbor)
scale: 1

# Routine whose body is interpreted, and the display object's name
entry_routine: setup
display_object: tft

# Total loop iterations allowed per run
max_loop_iterations: 1000000

# Pixel height per font number
# font_sizes:
#   1: 8
#   2: 16

# TTF/OTF files per font number, and for every other font number
# custom_fonts:
#   4: /usr/share/fonts/truetype/dejavu/DejaVuSans.ttf
# default_font: ""

# Extra color names, as 0xRRGGBB or 16-bit 0xRGB565 literals
# colors:
#   TFT_BRAND: "0x1E90FF"

# Debug categories enabled with -d (parse, expr, color, decl, block,
# command, loop, canvas, bitmap, system, app)
# debug_categories: [command, loop]
`

// ConfigDir returns the path to the ~/.tftsim directory
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tftsim")
}

// ConfigPath returns the path to ~/.tftsim/config.yaml
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadConfig reads a config file. A missing file is created with commented
// defaults and yields an empty FileConfig, as does an empty path.
func LoadConfig(path string) (*FileConfig, error) {
	fc := &FileConfig{}
	if path == "" {
		return fc, nil
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		createDefaultConfig(path)
		return fc, nil
	}
	if err != nil {
		return fc, err
	}

	if err := yaml.Unmarshal(content, fc); err != nil {
		return &FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// createDefaultConfig writes the commented default file
func createDefaultConfig(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return // Graceful failure
	}
	_ = os.WriteFile(path, []byte(defaultConfigContent), 0644)
}

// WindowScale returns the configured scale, or DefaultScale
func (fc *FileConfig) WindowScale() float64 {
	if fc.Scale > 0 {
		return fc.Scale
	}
	return DefaultScale
}

// Apply copies the set values onto an interpreter config. Color tokens that
// do not resolve are returned as errors and skipped.
func (fc *FileConfig) Apply(config *tftsim.Config) []error {
	var errs []error
	if fc.Width > 0 {
		config.DefaultWidth = fc.Width
	}
	if fc.Height > 0 {
		config.DefaultHeight = fc.Height
	}
	if fc.EntryRoutine != "" {
		config.EntryRoutine = fc.EntryRoutine
	}
	if fc.DisplayObject != "" {
		config.DisplayObject = fc.DisplayObject
	}
	if fc.MaxLoopIterations > 0 {
		config.MaxLoopIterations = fc.MaxLoopIterations
	}

	names := make([]string, 0, len(fc.Colors))
	for name := range fc.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		token := fc.Colors[name]
		c, ok := tftsim.Palette(nil).Lookup(token)
		if !ok {
			errs = append(errs, fmt.Errorf("color %s: cannot resolve %q", name, token))
			continue
		}
		if config.Palette == nil {
			config.Palette = tftsim.Palette{}
		}
		config.Palette[name] = c
	}
	return errs
}

// ApplyFonts configures a font set. Fonts that fail to load are returned as
// errors; the font number keeps the built-in face.
func (fc *FileConfig) ApplyFonts(fonts *tftcanvas.FontSet) []error {
	var errs []error
	for number, height := range fc.FontSizes {
		fonts.SetSize(number, height)
	}
	if fc.DefaultFont != "" {
		if err := fonts.LoadDefaultFont(fc.DefaultFont); err != nil {
			errs = append(errs, fmt.Errorf("default font: %w", err))
		}
	}

	numbers := make([]int, 0, len(fc.CustomFonts))
	for n := range fc.CustomFonts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		if err := fonts.LoadCustomFont(n, fc.CustomFonts[n]); err != nil {
			errs = append(errs, fmt.Errorf("font %d: %w", n, err))
		}
	}
	return errs
}

// ApplyLogging restricts debug output to the configured categories. With
// none configured the logger is left as it is. Unknown names are returned
// as errors.
func (fc *FileConfig) ApplyLogging(logger *tftsim.Logger) []error {
	if len(fc.DebugCategories) == 0 {
		return nil
	}
	for _, cat := range tftsim.AllCategories {
		logger.DisableCategory(cat)
	}

	var errs []error
	for _, name := range fc.DebugCategories {
		cat, ok := categoryByName(name)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown debug category %q", name))
			continue
		}
		logger.EnableCategory(cat)
	}
	return errs
}

func categoryByName(name string) (tftsim.LogCategory, bool) {
	for _, cat := range tftsim.AllCategories {
		if string(cat) == name {
			return cat, true
		}
	}
	return tftsim.CatNone, false
}
