package tftsim

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
)

// SourcePosition tracks the position of code in the sketch source
type SourcePosition struct {
	Line         int
	Column       int
	Length       int
	OriginalText string
	Filename     string
}

// RGB is a resolved color with 8 bits per channel
type RGB struct {
	R, G, B uint8
}

// White is the fallback for any color token that cannot be resolved
var White = RGB{255, 255, 255}

// Black is the initial content of every canvas
var Black = RGB{0, 0, 0}

// String formats the color as #rrggbb
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA converts the color to an opaque color.RGBA
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// SymbolTable maps integer variable names to their values.
// Loop bodies never mutate a table; they shadow it with With.
type SymbolTable map[string]int

// With returns a copy of the table with name bound to value
func (s SymbolTable) With(name string, value int) SymbolTable {
	out := make(SymbolTable, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[name] = value
	return out
}

// Names returns the variable names in sorted order
func (s SymbolTable) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// BitmapRegistry maps bitmap identifiers to their 1-bit-per-pixel data
type BitmapRegistry map[string][]byte

// Config holds configuration for the interpreter
type Config struct {
	Debug             bool
	Filename          string
	EntryRoutine      string
	DisplayObject     string
	DefaultWidth      int
	DefaultHeight     int
	MaxLoopIterations int
	Palette           Palette
	ShowErrorContext  bool
	ContextLines      int
}

// MaxDimension is the largest display side a sketch may declare
const MaxDimension = 4096

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		Filename:          "<sketch>",
		EntryRoutine:      "setup",
		DisplayObject:     "tft",
		DefaultWidth:      480,
		DefaultHeight:     320,
		MaxLoopIterations: 1000000,
		ShowErrorContext:  true,
		ContextLines:      1,
	}
}

var (
	// ErrEntryNotFound is returned by Run when the entry routine is missing
	ErrEntryNotFound = errors.New("entry routine not found")
	// ErrUnknownCall marks a call outside the supported drawing vocabulary
	ErrUnknownCall = errors.New("unsupported call")
	// ErrBadArguments marks a recognized call whose arguments are malformed
	ErrBadArguments = errors.New("malformed arguments")
	// ErrUnknownBitmap marks a drawBitmap that names an unregistered bitmap
	ErrUnknownBitmap = errors.New("bitmap not found")
	// ErrLoopBudget marks a loop stopped by the iteration budget
	ErrLoopBudget = errors.New("loop iteration budget exhausted")
	// ErrExpression marks an expression that could not be evaluated
	ErrExpression = errors.New("invalid expression")
)

// SketchError represents an error with position information
type SketchError struct {
	Message  string
	Position *SourcePosition
	Context  []string
	Err      error
}

func (e *SketchError) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("%s:%d: %s", e.Position.Filename, e.Position.Line, e.Message)
	}
	return e.Message
}

func (e *SketchError) Unwrap() error {
	return e.Err
}

// Diagnostic is one recoverable problem reported while interpreting a sketch
type Diagnostic struct {
	Level    LogLevel
	Category LogCategory
	Message  string
	Position *SourcePosition
}

func (d Diagnostic) String() string {
	if d.Position != nil {
		return fmt.Sprintf("line %d: %s", d.Position.Line, d.Message)
	}
	return d.Message
}

// Report summarizes one interpretation run
type Report struct {
	Commands    int
	Bitmaps     int
	Variables   SymbolTable
	Width       int
	Height      int
	Diagnostics []Diagnostic
}

// Count returns how many diagnostics were reported at or above level
func (r *Report) Count(level LogLevel) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Level >= level {
			n++
		}
	}
	return n
}
