package tftsim

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// loopStartPattern matches the first line of any loop statement
	loopStartPattern = regexp.MustCompile(`^(for|while)\s*\(|^(do)\b`)

	// loopHeaderPattern matches the text between the parentheses of a
	// counted loop: `int i = start; i < bound; increment`
	loopHeaderPattern = regexp.MustCompile(
		`^\s*(?:int|unsigned(?:\s+int)?|long|short|byte|size_t|u?int(?:8|16|32)_t)\s+([A-Za-z_]\w*)\s*=\s*([^;]+?)\s*;` +
			`\s*([A-Za-z_]\w*)\s*(<=|<)\s*([^;]+?)\s*;\s*(.*?)\s*$`)

	stepAddPattern          = regexp.MustCompile(`\+=\s*(\w+)\s*$`)
	stepPlusLiteralPattern  = regexp.MustCompile(`=\s*\w+\s*\+\s*(\d+)`)
	stepPlusVariablePattern = regexp.MustCompile(`=\s*\w+\s*\+\s*(\w+)`)
)

// loopHeader is a parsed counted loop header. The expressions are kept as
// text and evaluated once on loop entry.
type loopHeader struct {
	Var       string
	Start     string
	Bound     string
	Inclusive bool
	Increment string
}

// parseLoopHeader parses the text between a for statement's parentheses.
// It reports false for anything that is not a counted loop over one
// declared variable.
func parseLoopHeader(inner string) (*loopHeader, bool) {
	m := loopHeaderPattern.FindStringSubmatch(inner)
	if m == nil || m[1] != m[3] {
		return nil, false
	}
	return &loopHeader{
		Var:       m[1],
		Start:     m[2],
		Inclusive: m[4] == "<=",
		Bound:     m[5],
		Increment: m[6],
	}, true
}

// loopStep resolves the increment clause. Only `v += literal|variable` and
// `v = v + literal|variable` are understood; every other form steps by 1.
func loopStep(increment string, vars SymbolTable) int {
	if strings.Contains(increment, "+=") {
		if m := stepAddPattern.FindStringSubmatch(increment); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return v
			}
			if v, ok := vars[m[1]]; ok {
				return v
			}
		}
		return 1
	}
	if strings.Contains(increment, "=") && strings.Contains(increment, "+") {
		if m := stepPlusLiteralPattern.FindStringSubmatch(increment); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return v
			}
		}
		if m := stepPlusVariablePattern.FindStringSubmatch(increment); m != nil {
			if v, ok := vars[m[1]]; ok {
				return v
			}
		}
	}
	return 1
}

// LoopFrame is a counted loop resolved against its enclosing scope
type LoopFrame struct {
	Var   string
	Start int
	// End is exclusive
	End  int
	Step int
	Body string
}

// segmentKind tags the pieces an entry block is split into
type segmentKind int

const (
	segStatement segmentKind = iota
	segLoop
	// segMalformedLoop is a counted loop header without an opening brace
	segMalformedLoop
	// segUnsupportedLoop is any other for, while or do loop
	segUnsupportedLoop
)

// segment is one statement line or one whole loop span of a block
type segment struct {
	kind segmentKind
	// line is the 1-based source line of the statement or loop header
	line   int
	text   string
	header *loopHeader
	body   string
	// bodyLine is the source line on which body starts
	bodyLine int
}

// scanState is the state of the block segmenter
type scanState int

const (
	stateScanning scanState = iota
	stateInHeader
	stateInBody
	// stateSkipBody passes over the braced body of a header that did not
	// open it on its own line
	stateSkipBody
)

// segmentBlock splits a block into statement lines and loop spans, in
// source order. Loop spans run from the header to the brace closing the
// loop body and are never split into statements.
func segmentBlock(block string, firstLine int) []segment {
	var segs []segment
	lines := strings.Split(block, "\n")

	state := stateScanning
	var cur segment
	var body []string
	depth := 0

	for idx, raw := range lines {
		lineNo := firstLine + idx
		trimmed := strings.TrimSpace(raw)

		switch state {
		case stateScanning:
			if trimmed == "" {
				continue
			}
			m := loopStartPattern.FindStringSubmatch(trimmed)
			if m == nil {
				segs = append(segs, segment{kind: segStatement, line: lineNo, text: trimmed})
				continue
			}

			cur = segment{kind: segUnsupportedLoop, line: lineNo, text: trimmed, bodyLine: lineNo}
			var rest string
			if m[2] == "do" {
				rest = strings.TrimSpace(trimmed[2:])
			} else {
				openIdx := strings.IndexByte(trimmed, '(')
				closeIdx := findClosing(trimmed, openIdx, '(', ')')
				if closeIdx < 0 {
					segs = append(segs, cur)
					continue
				}
				if h, ok := parseLoopHeader(trimmed[openIdx+1 : closeIdx]); ok && m[1] == "for" {
					cur.kind = segLoop
					cur.header = h
				}
				rest = strings.TrimSpace(trimmed[closeIdx+1:])
			}

			switch {
			case rest == "":
				if cur.kind == segLoop {
					cur.kind = segMalformedLoop
				}
				state = stateInHeader
			case rest[0] != '{':
				if cur.kind == segLoop {
					cur.kind = segMalformedLoop
				}
				segs = append(segs, cur)
			default:
				depth = braceDelta(rest)
				if depth <= 0 {
					cur.body = rest[1:closingBraceIndex(rest, 0)]
					segs = append(segs, cur)
					continue
				}
				body = body[:0]
				if inline := strings.TrimSpace(rest[1:]); inline != "" {
					body = append(body, inline)
				} else {
					cur.bodyLine = lineNo + 1
				}
				state = stateInBody
			}

		case stateInHeader:
			if trimmed == "" {
				continue
			}
			// The header is dropped together with the single statement or
			// braced body that follows it
			segs = append(segs, cur)
			state = stateScanning
			if trimmed[0] == '{' {
				if depth = braceDelta(trimmed); depth > 0 {
					state = stateSkipBody
				} else {
					depth = 0
				}
			}

		case stateSkipBody:
			depth += braceDelta(raw)
			if depth <= 0 {
				state = stateScanning
				depth = 0
			}

		case stateInBody:
			delta := braceDelta(raw)
			if depth+delta > 0 {
				body = append(body, raw)
				depth += delta
				continue
			}
			if head := strings.TrimSpace(raw[:closingBraceIndex(raw, depth)]); head != "" {
				body = append(body, head)
			}
			cur.body = strings.Join(body, "\n")
			segs = append(segs, cur)
			state = stateScanning
			depth = 0
		}
	}

	// A loop left open at the end of the block runs what it collected
	switch state {
	case stateInHeader:
		segs = append(segs, cur)
	case stateInBody:
		cur.body = strings.Join(body, "\n")
		segs = append(segs, cur)
	}

	return segs
}

// closingBraceIndex returns the index in line of the '}' that brings an
// open depth back to zero, or len(line) when none does. A depth of 0 means
// the line itself opens the block with its first '{'.
func closingBraceIndex(line string, depth int) int {
	i := 0
	for i < len(line) {
		switch line[i] {
		case '"', '\'':
			i = skipQuoted(line, i)
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return len(line)
}
