package tftsim

import (
	"strconv"
	"strings"
)

// StripComments blanks out // and /* */ comments while keeping every
// newline and column in place, so offsets into the result map one-to-one
// onto the original source. Comment markers inside string and character
// literals are left alone.
func StripComments(source string) string {
	out := []byte(source)
	length := len(out)
	i := 0

	for i < length {
		char := out[i]

		// Quoted strings and character literals
		if char == '"' || char == '\'' {
			quoteChar := char
			i++
			for i < length && out[i] != quoteChar && out[i] != '\n' {
				if out[i] == '\\' && i+1 < length {
					i++
				}
				i++
			}
			i++
			continue
		}

		if char == '/' && i+1 < length && out[i+1] == '/' {
			for i < length && out[i] != '\n' {
				out[i] = ' '
				i++
			}
			continue
		}

		if char == '/' && i+1 < length && out[i+1] == '*' {
			out[i], out[i+1] = ' ', ' '
			i += 2
			for i < length && !(out[i] == '*' && i+1 < length && out[i+1] == '/') {
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			if i < length {
				out[i], out[i+1] = ' ', ' '
				i += 2
			}
			continue
		}

		i++
	}

	return string(out)
}

// skipQuoted returns the index just past the literal that opens at s[i].
// An unterminated literal ends at the end of its line.
func skipQuoted(s string, i int) int {
	quoteChar := s[i]
	i++
	for i < len(s) && s[i] != quoteChar && s[i] != '\n' {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		i++
	}
	return i + 1
}

// findClosing returns the index of the delimiter closing the one at
// s[openIdx], counting nesting depth and skipping literals. It returns -1
// when the delimiter is never closed.
func findClosing(s string, openIdx int, open, close byte) int {
	depth := 0
	i := openIdx
	for i < len(s) {
		switch s[i] {
		case '"', '\'':
			i = skipQuoted(s, i)
			continue
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// braceDelta returns the number of '{' minus the number of '}' in line,
// ignoring any inside string or character literals.
func braceDelta(line string) int {
	delta := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case '"', '\'':
			i = skipQuoted(line, i)
			continue
		case '{':
			delta++
		case '}':
			delta--
		}
		i++
	}
	return delta
}

// splitArguments splits an argument list on top-level commas
func splitArguments(argsStr string) []string {
	var args []string
	var currentArg strings.Builder
	inQuote := false
	var quoteChar byte
	depth := 0

	for i := 0; i < len(argsStr); i++ {
		char := argsStr[i]

		if inQuote {
			currentArg.WriteByte(char)
			if char == '\\' && i+1 < len(argsStr) {
				i++
				currentArg.WriteByte(argsStr[i])
			} else if char == quoteChar {
				inQuote = false
			}
			continue
		}

		switch char {
		case '"', '\'':
			inQuote = true
			quoteChar = char
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(currentArg.String()))
				currentArg.Reset()
				continue
			}
		}
		currentArg.WriteByte(char)
	}

	trimmed := strings.TrimSpace(currentArg.String())
	if trimmed != "" || len(args) > 0 {
		args = append(args, trimmed)
	}

	return args
}

// unquote returns the content of a "..." or '...' literal with escapes
// processed, and false when arg is not a complete literal.
func unquote(arg string) (string, bool) {
	if len(arg) < 2 {
		return "", false
	}
	first, last := arg[0], arg[len(arg)-1]
	if (first != '"' && first != '\'') || last != first {
		return "", false
	}
	return parseStringLiteral(arg[1 : len(arg)-1]), true
}

// parseStringLiteral handles C escape sequences in strings
func parseStringLiteral(str string) string {
	var result strings.Builder
	runes := []rune(str)
	i := 0

	for i < len(runes) {
		if runes[i] != '\\' || i+1 >= len(runes) {
			result.WriteRune(runes[i])
			i++
			continue
		}

		nextChar := runes[i+1]
		switch nextChar {
		case '0':
			result.WriteRune('\x00')
		case 'a':
			result.WriteRune('\x07')
		case 'b':
			result.WriteRune('\x08')
		case 'f':
			result.WriteRune('\x0C')
		case 'n':
			result.WriteRune('\n')
		case 'r':
			result.WriteRune('\r')
		case 't':
			result.WriteRune('\t')
		case 'x':
			// \xHH
			if i+3 < len(runes) {
				if val, err := strconv.ParseUint(string(runes[i+2:i+4]), 16, 8); err == nil {
					result.WriteRune(rune(val))
					i += 4
					continue
				}
			}
			result.WriteRune(nextChar)
		default:
			// \\, \', \" and anything unknown drop the backslash
			result.WriteRune(nextChar)
		}
		i += 2
	}

	return result.String()
}

// lineAt returns the 1-based line number of offset in s
func lineAt(s string, offset int) int {
	if offset > len(s) {
		offset = len(s)
	}
	return strings.Count(s[:offset], "\n") + 1
}

// splitStatements splits a line on semicolons outside literals and
// parentheses, dropping empty pieces
func splitStatements(line string) []string {
	var stmts []string
	depth := 0
	start := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case '"', '\'':
			i = skipQuoted(line, i)
			continue
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			if depth == 0 {
				if s := strings.TrimSpace(line[start:i]); s != "" {
					stmts = append(stmts, s)
				}
				start = i + 1
			}
		}
		i++
	}
	if start < len(line) {
		if s := strings.TrimSpace(line[start:]); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
