package tftsim

import (
	"errors"
	"fmt"
	"strings"
)

// Interpreter replays the drawing calls of a sketch onto a Canvas
type Interpreter struct {
	config *Config
	canvas Canvas
	logger *Logger

	// per-run state
	report      *Report
	env         *StatementEnv
	sourceLines []string
	current     *SourcePosition
	seen        map[string]bool
	iterations  int
	exhausted   bool
}

// New creates an interpreter drawing onto canvas
func New(config *Config, canvas Canvas) *Interpreter {
	if config == nil {
		config = DefaultConfig()
	}

	logger := NewLogger(config.Debug)
	logger.SetContextLines(config.ContextLines)
	if config.Debug {
		logger.EnableAllCategories()
	}

	return &Interpreter{
		config: config,
		canvas: canvas,
		logger: logger,
	}
}

// Logger returns the interpreter's logger
func (it *Interpreter) Logger() *Logger {
	return it.logger
}

// Config returns the interpreter's configuration
func (it *Interpreter) Config() *Config {
	return it.config
}

// Run interprets source: declarations are harvested, the canvas is sized,
// then every top-level statement of the entry routine runs in source order
// followed by every loop of the entry routine. The returned error is
// non-nil only when the entry routine is missing; every other problem is
// reported as a diagnostic and skipped.
func (it *Interpreter) Run(source string) (*Report, error) {
	it.report = &Report{}
	it.sourceLines = strings.Split(source, "\n")
	it.current = nil
	it.seen = make(map[string]bool)
	it.iterations = 0
	it.exhausted = false

	clean := StripComments(source)
	decls := ExtractDeclarations(clean)

	for _, dv := range decls.Declared {
		if dv.Err != nil {
			it.diagnose(LevelDebug, CatDecl, fmt.Sprintf("skipping int %s: %v", dv.Name, dv.Err), it.lineColumn(dv.Line, dv.Name))
		}
	}
	for _, name := range decls.BitmapOrder {
		it.logger.InfoCat(CatBitmap, "Bitmap '%s' loaded: %d bytes", name, len(decls.Bitmaps[name]))
	}

	width, height := it.config.DefaultWidth, it.config.DefaultHeight
	if decls.HasDimensions {
		if validDimension(decls.Width) && validDimension(decls.Height) {
			width, height = decls.Width, decls.Height
		} else {
			it.diagnose(LevelWarn, CatDecl,
				fmt.Sprintf("display size %dx%d outside 1..%d, using %dx%d",
					decls.Width, decls.Height, MaxDimension, width, height),
				it.lineColumn(decls.WidthLine, "displayWidth"))
		}
	}
	it.canvas.SetDimensions(width, height)

	it.report.Width = width
	it.report.Height = height
	it.report.Variables = decls.Variables
	it.report.Bitmaps = len(decls.Bitmaps)

	block, err := ExtractEntryBlock(clean, it.config.EntryRoutine)
	if err != nil {
		it.diagnose(LevelFatal, CatBlock, err.Error(), nil)
		return it.report, err
	}
	if block.Unterminated {
		it.diagnose(LevelWarn, CatBlock,
			fmt.Sprintf("%s() is never closed, running to end of file", block.Routine),
			it.lineColumn(block.StartLine, ""))
	}

	it.env = &StatementEnv{
		Bitmaps:       decls.Bitmaps,
		Palette:       it.config.Palette,
		DisplayObject: it.config.DisplayObject,
		Notify: func(level LogLevel, cat LogCategory, message string) {
			it.diagnose(level, cat, message, it.current)
		},
	}

	it.runBlock(block.Body, block.StartLine, decls.Variables)
	it.canvas.Flush()

	return it.report, nil
}

func validDimension(n int) bool {
	return n > 0 && n <= MaxDimension
}

// runBlock is the two-phase scheduler: all statements outside loop spans
// first, then all loop spans, each phase in source order.
func (it *Interpreter) runBlock(block string, firstLine int, vars SymbolTable) {
	segs := segmentBlock(block, firstLine)
	it.runStatements(segs, vars)
	it.runLoops(segs, vars)
}

func (it *Interpreter) runStatements(segs []segment, vars SymbolTable) {
	for _, seg := range segs {
		if seg.kind == segStatement {
			it.dispatch(seg, vars)
		}
	}
}

func (it *Interpreter) runLoops(segs []segment, vars SymbolTable) {
	for _, seg := range segs {
		if it.exhausted {
			return
		}
		switch seg.kind {
		case segLoop:
			it.runLoop(seg, vars)
		case segMalformedLoop:
			it.diagnose(LevelWarn, CatLoop, "loop header without '{', body skipped", it.lineColumn(seg.line, "for"))
		case segUnsupportedLoop:
			it.diagnose(LevelWarn, CatLoop, "unsupported loop, only counted loops are run", it.lineColumn(seg.line, "for"))
		}
	}
}

// hasLoop reports whether any segment is a loop span
func hasLoop(segs []segment) bool {
	for _, seg := range segs {
		if seg.kind != segStatement {
			return true
		}
	}
	return false
}

// dispatch parses and applies every statement on one line
func (it *Interpreter) dispatch(seg segment, vars SymbolTable) {
	for _, stmt := range splitStatements(seg.text) {
		pos := it.lineColumn(seg.line, stmt)
		it.current = pos

		cmd, err := ParseStatement(stmt, vars, it.env)
		if err != nil {
			level := LevelWarn
			if errors.Is(err, ErrUnknownCall) {
				level = LevelDebug
			}
			it.diagnose(level, CatCommand, err.Error(), pos)
			continue
		}
		if cmd == nil {
			continue
		}

		cmd.Apply(it.canvas)
		it.report.Commands++
		it.logger.DebugCat(CatCommand, "%s", cmd)
	}
	it.current = nil
}

// frame resolves a loop header against the enclosing scope
func (it *Interpreter) frame(seg segment, vars SymbolTable) LoopFrame {
	h := seg.header
	pos := it.lineColumn(seg.line, "for")

	f := LoopFrame{Var: h.Var, Body: seg.body}
	var err error
	if f.Start, err = evalExpr(h.Start, vars); err != nil {
		it.diagnose(LevelWarn, CatExpr, fmt.Sprintf("loop start %q evaluates to 0: %v", h.Start, err), pos)
	}
	if f.End, err = evalExpr(h.Bound, vars); err != nil {
		it.diagnose(LevelWarn, CatExpr, fmt.Sprintf("loop bound %q evaluates to 0: %v", h.Bound, err), pos)
	}
	if h.Inclusive {
		f.End++
	}
	f.Step = loopStep(h.Increment, vars)
	return f
}

// runLoop runs one counted loop. Each iteration interprets the body with
// a copy of vars in which the loop variable is bound. A body that holds a
// loop of its own runs only its loops; its other statements are reported
// and dropped.
func (it *Interpreter) runLoop(seg segment, vars SymbolTable) {
	f := it.frame(seg, vars)
	if f.Step <= 0 {
		it.diagnose(LevelWarn, CatLoop,
			fmt.Sprintf("loop over %s has step %d and never ends, skipped", f.Var, f.Step),
			it.lineColumn(seg.line, "for"))
		return
	}
	it.logger.DebugCat(CatLoop, "for %s = %d; %s < %d; step %d", f.Var, f.Start, f.Var, f.End, f.Step)

	// A body holding a loop runs only its loops
	body := segmentBlock(f.Body, seg.bodyLine)
	nested := hasLoop(body)
	if nested {
		for _, s := range body {
			if s.kind == segStatement {
				it.diagnose(LevelNotice, CatLoop, "statement beside a nested loop is not run", it.lineColumn(s.line, s.text))
			}
		}
	}

	for v := f.Start; v < f.End; v += f.Step {
		if it.config.MaxLoopIterations > 0 && it.iterations >= it.config.MaxLoopIterations {
			it.exhausted = true
			it.diagnose(LevelError, CatLoop,
				fmt.Sprintf("%v after %d iterations", ErrLoopBudget, it.iterations),
				it.lineColumn(seg.line, "for"))
			return
		}
		it.iterations++
		scope := vars.With(f.Var, v)
		if nested {
			it.runLoops(body, scope)
		} else {
			it.runStatements(body, scope)
		}
		if it.exhausted {
			return
		}
	}
}

// lineColumn builds a position for line, pointing at the first occurrence
// of text on it when text is found
func (it *Interpreter) lineColumn(line int, text string) *SourcePosition {
	pos := &SourcePosition{
		Line:     line,
		Column:   1,
		Filename: it.config.Filename,
	}
	if line < 1 || line > len(it.sourceLines) {
		return pos
	}
	src := it.sourceLines[line-1]
	pos.OriginalText = src
	if text != "" {
		if idx := strings.Index(src, text); idx >= 0 {
			pos.Column = idx + 1
			pos.Length = len(text)
			return pos
		}
	}
	pos.Column = len(src) - len(strings.TrimLeft(src, " \t")) + 1
	return pos
}

// diagnose records a diagnostic once per source location and logs it
func (it *Interpreter) diagnose(level LogLevel, cat LogCategory, message string, pos *SourcePosition) {
	key := message
	if pos != nil {
		key = fmt.Sprintf("%d:%d:%s", pos.Line, pos.Column, message)
	}
	if it.seen[key] {
		return
	}
	it.seen[key] = true

	it.report.Diagnostics = append(it.report.Diagnostics, Diagnostic{
		Level:    level,
		Category: cat,
		Message:  message,
		Position: pos,
	})

	var context []string
	if it.config.ShowErrorContext && pos != nil {
		context = it.sourceLines
	}
	it.logger.Log(level, cat, message, pos, context)
}
