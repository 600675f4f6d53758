// Package tftsim interprets TFT_eSPI display sketches and replays their
// drawing calls onto a canvas, without compiling the sketch.
//
// This package re-exports the public API from the implementation in src/.
// For full documentation, see the implementation package.
//
// Basic usage:
//
//	rec := tftsim.NewRecorder()
//	it := tftsim.New(tftsim.DefaultConfig(), rec)
//	report, err := it.Run(source)
//	for _, call := range rec.Drawing() {
//		fmt.Println(call)
//	}
package tftsim

import (
	impl "github.com/phroun/tftsim/src"
)

// =============================================================================
// CORE TYPES
// =============================================================================

// Interpreter replays the drawing calls of a sketch onto a Canvas.
type Interpreter = impl.Interpreter

// Config holds configuration options for the interpreter.
type Config = impl.Config

// Report summarizes one interpretation run.
type Report = impl.Report

// Diagnostic is one recoverable problem found while interpreting.
type Diagnostic = impl.Diagnostic

// SourcePosition tracks location in source code for error reporting.
type SourcePosition = impl.SourcePosition

// SketchError is an error with position information.
type SketchError = impl.SketchError

// =============================================================================
// VALUES
// =============================================================================

// RGB is a resolved color.
type RGB = impl.RGB

// Palette holds additional named colors.
type Palette = impl.Palette

// SymbolTable maps integer variable names to values.
type SymbolTable = impl.SymbolTable

// BitmapRegistry maps bitmap identifiers to 1-bit-per-pixel data.
type BitmapRegistry = impl.BitmapRegistry

// Well known colors.
var (
	White = impl.White
	Black = impl.Black
)

// =============================================================================
// CANVAS
// =============================================================================

// Canvas is the drawing surface commands are issued to.
type Canvas = impl.Canvas

// Recorder is a Canvas that records calls as text.
type Recorder = impl.Recorder

// Tee fans every call out to several canvases.
type Tee = impl.Tee

// FontUnchanged is the font argument of calls that name no font.
const FontUnchanged = impl.FontUnchanged

// MaxDimension is the largest display side a sketch may declare.
const MaxDimension = impl.MaxDimension

// =============================================================================
// PARSING
// =============================================================================

// Declarations is the result of scanning a sketch's declarations.
type Declarations = impl.Declarations

// DeclaredVariable is one integer declaration found in a sketch.
type DeclaredVariable = impl.DeclaredVariable

// EntryBlock is the body of the entry routine.
type EntryBlock = impl.EntryBlock

// StatementEnv carries what statement parsing needs besides variables.
type StatementEnv = impl.StatementEnv

// LoopFrame is a counted loop resolved against its enclosing scope.
type LoopFrame = impl.LoopFrame

// =============================================================================
// COMMANDS
// =============================================================================

// Command is one parsed drawing call.
type Command = impl.Command

type (
	FillScreen   = impl.FillScreen
	Rect         = impl.Rect
	RoundRect    = impl.RoundRect
	Circle       = impl.Circle
	Line         = impl.Line
	Triangle     = impl.Triangle
	Bitmap       = impl.Bitmap
	SetCursor    = impl.SetCursor
	SetTextColor = impl.SetTextColor
	SetTextFont  = impl.SetTextFont
	SetTextSize  = impl.SetTextSize
	PrintText    = impl.PrintText
	DrawString   = impl.DrawString
	SetRotation  = impl.SetRotation
)

// =============================================================================
// LOGGING
// =============================================================================

// Logger is the leveled, categorized logger.
type Logger = impl.Logger

// LogLevel represents log severity.
type LogLevel = impl.LogLevel

// Log level constants.
const (
	LevelTrace  = impl.LevelTrace
	LevelInfo   = impl.LevelInfo
	LevelDebug  = impl.LevelDebug
	LevelNotice = impl.LevelNotice
	LevelWarn   = impl.LevelWarn
	LevelError  = impl.LevelError
	LevelFatal  = impl.LevelFatal
)

// LogCategory identifies the logging subsystem.
type LogCategory = impl.LogCategory

// Log category constants.
const (
	CatNone    = impl.CatNone
	CatParse   = impl.CatParse
	CatExpr    = impl.CatExpr
	CatColor   = impl.CatColor
	CatDecl    = impl.CatDecl
	CatBlock   = impl.CatBlock
	CatCommand = impl.CatCommand
	CatLoop    = impl.CatLoop
	CatCanvas  = impl.CatCanvas
	CatBitmap  = impl.CatBitmap
	CatSystem  = impl.CatSystem
	CatApp     = impl.CatApp
)

// AllCategories lists every log category.
var AllCategories = impl.AllCategories

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrEntryNotFound = impl.ErrEntryNotFound
	ErrUnknownCall   = impl.ErrUnknownCall
	ErrBadArguments  = impl.ErrBadArguments
	ErrUnknownBitmap = impl.ErrUnknownBitmap
	ErrLoopBudget    = impl.ErrLoopBudget
	ErrExpression    = impl.ErrExpression
)

// =============================================================================
// CONSTRUCTORS AND FUNCTIONS
// =============================================================================

// New creates an interpreter drawing onto canvas.
func New(config *Config, canvas Canvas) *Interpreter {
	return impl.New(config, canvas)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return impl.DefaultConfig()
}

// NewRecorder creates an empty recording canvas.
func NewRecorder() *Recorder {
	return impl.NewRecorder()
}

// NewLogger creates a logger.
func NewLogger(enabled bool) *Logger {
	return impl.NewLogger(enabled)
}

// Evaluate evaluates an integer expression, yielding 0 on any error.
func Evaluate(expr string, vars SymbolTable) int {
	return impl.Evaluate(expr, vars)
}

// ResolveColor maps a color token to RGB, falling back to white.
func ResolveColor(token string) RGB {
	return impl.ResolveColor(token)
}

// Unpack565 expands a 16-bit 5-6-5 color.
func Unpack565(v uint16) RGB {
	return impl.Unpack565(v)
}

// Unpack888 splits a 24-bit packed color.
func Unpack888(v uint32) RGB {
	return impl.Unpack888(v)
}

// ColorNames returns the built-in color constant names.
func ColorNames() []string {
	return impl.ColorNames()
}

// CallNames returns the supported drawing call names.
func CallNames() []string {
	return impl.CallNames()
}

// StripComments blanks out comments, keeping line structure.
func StripComments(source string) string {
	return impl.StripComments(source)
}

// ExtractDeclarations scans a sketch for bitmaps, dimensions and integers.
func ExtractDeclarations(source string) *Declarations {
	return impl.ExtractDeclarations(source)
}

// ExtractEntryBlock returns the body of the named routine.
func ExtractEntryBlock(source, routine string) (*EntryBlock, error) {
	return impl.ExtractEntryBlock(source, routine)
}

// ParseStatement parses one statement into a Command.
func ParseStatement(line string, vars SymbolTable, env *StatementEnv) (Command, error) {
	return impl.ParseStatement(line, vars, env)
}
