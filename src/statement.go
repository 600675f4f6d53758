package tftsim

import (
	"fmt"
	"regexp"
	"strings"
)

// callPattern matches the start of a call statement, with an optional
// `receiver.` or `receiver->` prefix
var callPattern = regexp.MustCompile(`^(?:([A-Za-z_]\w*)\s*(?:\.|->)\s*)?([A-Za-z_]\w*)\s*\(`)

// leadingNamePattern matches the callee of a statement that lacks its
// argument list
var leadingNamePattern = regexp.MustCompile(`^(?:([A-Za-z_]\w*)\s*(?:\.|->)\s*)?([A-Za-z_]\w*)\b`)

var identPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// StatementEnv carries what the dispatcher needs besides variable bindings
type StatementEnv struct {
	Bitmaps BitmapRegistry
	Palette Palette
	// DisplayObject is the receiver print and println must be called on
	DisplayObject string
	// Notify receives recoverable problems found while resolving arguments;
	// it may be nil
	Notify func(level LogLevel, cat LogCategory, message string)
}

func (env *StatementEnv) notify(level LogLevel, cat LogCategory, format string, args ...interface{}) {
	if env == nil || env.Notify == nil {
		return
	}
	env.Notify(level, cat, fmt.Sprintf(format, args...))
}

// argResolver turns raw argument text into values, degrading to defaults
type argResolver struct {
	args []string
	vars SymbolTable
	env  *StatementEnv
}

func (r *argResolver) num(i int) int {
	v, err := evalExpr(r.args[i], r.vars)
	if err != nil {
		r.env.notify(LevelWarn, CatExpr, "argument %d %q evaluates to 0: %v", i+1, r.args[i], err)
		return 0
	}
	return v
}

func (r *argResolver) color(i int) RGB {
	var palette Palette
	if r.env != nil {
		palette = r.env.Palette
	}
	c, ok := palette.Lookup(r.args[i])
	if !ok {
		r.env.notify(LevelDebug, CatColor, "unknown color %q, using white", r.args[i])
	}
	return c
}

// text resolves a printable argument: a string literal is used as is, a
// bare identifier prints its value or, when unbound, its own name, and any
// other expression prints its value.
func (r *argResolver) text(i int) string {
	arg := r.args[i]
	if s, ok := unquote(arg); ok {
		return s
	}
	if identPattern.MatchString(arg) {
		if v, ok := r.vars[arg]; ok {
			return fmt.Sprint(v)
		}
		return arg
	}
	if v, err := evalExpr(arg, r.vars); err == nil {
		return fmt.Sprint(v)
	}
	return arg
}

// font resolves an optional trailing font argument
func (r *argResolver) font(i int) int {
	if i >= len(r.args) {
		return FontUnchanged
	}
	return r.num(i)
}

// callRule describes one call form of the vocabulary
type callRule struct {
	minArgs, maxArgs int
	// displayOnly requires the call to be made on the display object
	displayOnly bool
	build       func(r *argResolver) (Command, error)
}

var callRules = map[string]callRule{
	"fillScreen": {1, 1, false, func(r *argResolver) (Command, error) {
		return FillScreen{Color: r.color(0)}, nil
	}},
	"drawRect": {5, 5, false, func(r *argResolver) (Command, error) {
		return Rect{X: r.num(0), Y: r.num(1), W: r.num(2), H: r.num(3), Color: r.color(4)}, nil
	}},
	"fillRect": {5, 5, false, func(r *argResolver) (Command, error) {
		return Rect{Filled: true, X: r.num(0), Y: r.num(1), W: r.num(2), H: r.num(3), Color: r.color(4)}, nil
	}},
	"drawRoundRect": {6, 6, false, func(r *argResolver) (Command, error) {
		return RoundRect{X: r.num(0), Y: r.num(1), W: r.num(2), H: r.num(3), R: r.num(4), Color: r.color(5)}, nil
	}},
	"fillRoundRect": {6, 6, false, func(r *argResolver) (Command, error) {
		return RoundRect{Filled: true, X: r.num(0), Y: r.num(1), W: r.num(2), H: r.num(3), R: r.num(4), Color: r.color(5)}, nil
	}},
	"drawCircle": {4, 4, false, func(r *argResolver) (Command, error) {
		return Circle{X: r.num(0), Y: r.num(1), R: r.num(2), Color: r.color(3)}, nil
	}},
	"fillCircle": {4, 4, false, func(r *argResolver) (Command, error) {
		return Circle{Filled: true, X: r.num(0), Y: r.num(1), R: r.num(2), Color: r.color(3)}, nil
	}},
	"drawLine": {5, 5, false, func(r *argResolver) (Command, error) {
		return Line{X0: r.num(0), Y0: r.num(1), X1: r.num(2), Y1: r.num(3), Color: r.color(4)}, nil
	}},
	"drawTriangle": {7, 7, false, func(r *argResolver) (Command, error) {
		return Triangle{X0: r.num(0), Y0: r.num(1), X1: r.num(2), Y1: r.num(3), X2: r.num(4), Y2: r.num(5), Color: r.color(6)}, nil
	}},
	"fillTriangle": {7, 7, false, func(r *argResolver) (Command, error) {
		return Triangle{Filled: true, X0: r.num(0), Y0: r.num(1), X1: r.num(2), Y1: r.num(3), X2: r.num(4), Y2: r.num(5), Color: r.color(6)}, nil
	}},
	"drawBitmap": {6, 7, false, buildBitmap},
	"setCursor": {2, 3, false, func(r *argResolver) (Command, error) {
		return SetCursor{X: r.num(0), Y: r.num(1), Font: r.font(2)}, nil
	}},
	// setTextColor(fg, bg) keeps only the foreground
	"setTextColor": {1, 2, false, func(r *argResolver) (Command, error) {
		return SetTextColor{Color: r.color(0)}, nil
	}},
	"setTextFont": {1, 1, false, func(r *argResolver) (Command, error) {
		return SetTextFont{Font: r.num(0)}, nil
	}},
	"setTextSize": {1, 1, false, func(r *argResolver) (Command, error) {
		return SetTextSize{Size: r.num(0)}, nil
	}},
	"print": {1, 1, true, func(r *argResolver) (Command, error) {
		return PrintText{Text: r.text(0)}, nil
	}},
	"println": {0, 1, true, func(r *argResolver) (Command, error) {
		if len(r.args) == 0 {
			return PrintText{Newline: true}, nil
		}
		return PrintText{Text: r.text(0), Newline: true}, nil
	}},
	"drawString": {3, 4, false, func(r *argResolver) (Command, error) {
		return DrawString{Text: r.text(0), X: r.num(1), Y: r.num(2), Font: r.font(3)}, nil
	}},
	"setRotation": {1, 1, false, func(r *argResolver) (Command, error) {
		return SetRotation{Rotation: r.num(0)}, nil
	}},
}

func buildBitmap(r *argResolver) (Command, error) {
	name := r.args[2]
	if !identPattern.MatchString(name) {
		return nil, fmt.Errorf("%w: drawBitmap expects a bitmap name, got %q", ErrBadArguments, name)
	}
	var data []byte
	found := false
	if r.env != nil {
		data, found = r.env.Bitmaps[name]
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBitmap, name)
	}
	cmd := Bitmap{
		Ident: name,
		Data:  data,
		X:     r.num(0),
		Y:     r.num(1),
		W:     r.num(3),
		H:     r.num(4),
		Color: r.color(5),
	}
	if len(r.args) == 7 {
		bg := r.color(6)
		cmd.Background = &bg
	}
	return cmd, nil
}

// CallNames returns the call names the dispatcher recognizes
func CallNames() []string {
	names := make([]string, 0, len(callRules))
	for name := range callRules {
		names = append(names, name)
	}
	return names
}

// ParseStatement parses one statement into a Command. Calls are identified
// by their exact name, so fillRect can never be mistaken for drawRect.
// It returns a nil Command and nil error for lines that are not calls,
// such as declarations and stray braces. Unknown calls wrap ErrUnknownCall;
// recognized calls with the wrong argument count or shape wrap
// ErrBadArguments; drawBitmap of an unregistered name wraps ErrUnknownBitmap.
func ParseStatement(line string, vars SymbolTable, env *StatementEnv) (Command, error) {
	stmt := strings.TrimSpace(line)
	stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))
	if stmt == "" || strings.HasPrefix(stmt, "//") {
		return nil, nil
	}

	m := callPattern.FindStringSubmatchIndex(stmt)
	if m == nil {
		// A vocabulary name without an argument list is a malformed call
		lm := leadingNamePattern.FindStringSubmatch(stmt)
		if lm == nil {
			return nil, nil
		}
		if _, ok := callRules[lm[2]]; !ok {
			return nil, nil
		}
		if _, err := lookupRule(lm[1], lm[2], env); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: missing argument list", ErrBadArguments, lm[2])
	}
	receiver := ""
	if m[2] >= 0 {
		receiver = stmt[m[2]:m[3]]
	}
	name := stmt[m[4]:m[5]]

	rule, err := lookupRule(receiver, name, env)
	if err != nil {
		return nil, err
	}

	openIdx := m[1] - 1
	closeIdx := findClosing(stmt, openIdx, '(', ')')
	if closeIdx < 0 {
		return nil, fmt.Errorf("%w: %s: unclosed argument list", ErrBadArguments, name)
	}
	if rest := strings.TrimSpace(stmt[closeIdx+1:]); rest != "" {
		return nil, fmt.Errorf("%w: %s: unexpected %q after call", ErrBadArguments, name, rest)
	}

	args := splitArguments(stmt[openIdx+1 : closeIdx])
	if len(args) < rule.minArgs || len(args) > rule.maxArgs {
		return nil, fmt.Errorf("%w: %s takes %s, got %d", ErrBadArguments, name, arity(rule), len(args))
	}
	for i, a := range args {
		if a == "" {
			return nil, fmt.Errorf("%w: %s: argument %d is empty", ErrBadArguments, name, i+1)
		}
	}

	return rule.build(&argResolver{args: args, vars: vars, env: env})
}

// lookupRule finds the rule for a call on receiver
func lookupRule(receiver, name string, env *StatementEnv) (callRule, error) {
	rule, ok := callRules[name]
	if !ok {
		return rule, fmt.Errorf("%w: %s", ErrUnknownCall, name)
	}
	if rule.displayOnly && env != nil && env.DisplayObject != "" && receiver != env.DisplayObject {
		return rule, fmt.Errorf("%w: %s on %q", ErrUnknownCall, name, receiver)
	}
	return rule, nil
}

func arity(rule callRule) string {
	if rule.minArgs == rule.maxArgs {
		return fmt.Sprintf("%d arguments", rule.minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", rule.minArgs, rule.maxArgs)
}
