package tftsim

import (
	"regexp"
	"strconv"
)

var (
	bitmapDeclPattern = regexp.MustCompile(
		`(?s)\bconst\s+(?:unsigned\s+char|uint8_t|byte)\s+(?:PROGMEM\s+)?([A-Za-z_]\w*)\s*\[[^\]]*\]\s*(?:PROGMEM\s*)?=\s*\{([^}]*)\}`)
	bitmapBytePattern = regexp.MustCompile(`0[xX]([0-9A-Fa-f]{2})`)

	displayWidthPattern  = regexp.MustCompile(`\bint\s+displayWidth\s*=\s*(\d+)`)
	displayHeightPattern = regexp.MustCompile(`\bint\s+displayHeight\s*=\s*(\d+)`)

	intDeclPattern = regexp.MustCompile(`\bint\s+([A-Za-z_]\w*)\s*=\s*([^;]+);`)
)

// DeclaredVariable records one integer declaration in source order
type DeclaredVariable struct {
	Name  string
	Expr  string
	Value int
	Line  int
	Err   error
}

// Declarations is everything harvested from one pass over the source
type Declarations struct {
	Variables SymbolTable
	Bitmaps   BitmapRegistry
	// BitmapOrder lists bitmap names in the order they were declared
	BitmapOrder []string
	Width       int
	Height      int
	// HasDimensions is true only when both displayWidth and displayHeight were found
	HasDimensions bool
	// WidthLine is the source line of the displayWidth declaration
	WidthLine int
	// Declared lists every integer declaration, including the skipped ones
	Declared []DeclaredVariable
}

// ExtractDeclarations scans source once for bitmap literals, the display
// dimension constants and integer declarations. Each declaration is
// evaluated with the variables declared before it; one that fails to
// evaluate is left out of the table. Declarations of loop induction
// variables inside a for header are not harvested.
func ExtractDeclarations(source string) *Declarations {
	decls := &Declarations{
		Variables: make(SymbolTable),
		Bitmaps:   make(BitmapRegistry),
	}

	for _, m := range bitmapDeclPattern.FindAllStringSubmatch(source, -1) {
		name := m[1]
		hexValues := bitmapBytePattern.FindAllStringSubmatch(m[2], -1)
		data := make([]byte, 0, len(hexValues))
		for _, hv := range hexValues {
			b, _ := strconv.ParseUint(hv[1], 16, 8)
			data = append(data, byte(b))
		}
		if _, exists := decls.Bitmaps[name]; !exists {
			decls.BitmapOrder = append(decls.BitmapOrder, name)
		}
		decls.Bitmaps[name] = data
	}

	wm := displayWidthPattern.FindStringSubmatchIndex(source)
	hm := displayHeightPattern.FindStringSubmatchIndex(source)
	if wm != nil && hm != nil {
		w, werr := strconv.Atoi(source[wm[2]:wm[3]])
		h, herr := strconv.Atoi(source[hm[2]:hm[3]])
		if werr == nil && herr == nil {
			decls.Width, decls.Height = w, h
			decls.HasDimensions = true
			decls.WidthLine = lineAt(source, wm[0])
		}
	}

	for _, loc := range intDeclPattern.FindAllStringSubmatchIndex(source, -1) {
		if insideParens(source, loc[0]) {
			continue
		}
		dv := DeclaredVariable{
			Name: source[loc[2]:loc[3]],
			Expr: source[loc[4]:loc[5]],
			Line: lineAt(source, loc[0]),
		}
		dv.Value, dv.Err = evalExpr(dv.Expr, decls.Variables)
		if dv.Err == nil {
			decls.Variables[dv.Name] = dv.Value
		}
		decls.Declared = append(decls.Declared, dv)
	}

	return decls
}

// insideParens reports whether offset sits inside an unclosed '(' on its
// line, which is where a for header declares its loop variable.
func insideParens(source string, offset int) bool {
	lineStart := offset
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}
	depth := 0
	i := lineStart
	for i < offset {
		switch source[i] {
		case '"', '\'':
			i = skipQuoted(source, i)
			continue
		case '(':
			depth++
		case ')':
			depth--
		}
		i++
	}
	return depth > 0
}
