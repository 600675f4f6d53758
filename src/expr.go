package tftsim

import (
	"fmt"
	"strconv"
	"strings"
)

// exprTokenType represents the lexical tokens of an integer expression
type exprTokenType int

const (
	exprEOF exprTokenType = iota
	exprNumber
	exprIdent
	exprOperator
	exprLParen
	exprRParen
	exprIllegal
)

type exprToken struct {
	Type  exprTokenType
	Value string
	Num   int64
	Pos   int
}

// exprLexer tokenizes an integer expression. Identifiers are always read
// whole, so a variable named "x" never matches inside "x2" or "0x10".
type exprLexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

func newExprLexer(input string) *exprLexer {
	l := &exprLexer{input: input}
	l.readChar()
	return l
}

func (l *exprLexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *exprLexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *exprLexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// twoCharOperators are matched before their one-character prefixes
var twoCharOperators = []string{"<<", ">>", "<=", ">=", "==", "!=", "&&", "||"}

// NextToken returns the next token from the input
func (l *exprLexer) NextToken() exprToken {
	l.skipWhitespace()
	start := l.position

	switch {
	case l.ch == 0:
		return exprToken{Type: exprEOF, Pos: start}
	case l.ch == '(':
		l.readChar()
		return exprToken{Type: exprLParen, Value: "(", Pos: start}
	case l.ch == ')':
		l.readChar()
		return exprToken{Type: exprRParen, Value: ")", Pos: start}
	case l.ch >= '0' && l.ch <= '9':
		return l.readNumber()
	case l.ch == '\'':
		return l.readCharLiteral()
	case isIdentStart(l.ch):
		for isIdentChar(l.ch) {
			l.readChar()
		}
		return exprToken{Type: exprIdent, Value: l.input[start:l.position], Pos: start}
	}

	pair := string([]byte{l.ch, l.peekChar()})
	for _, op := range twoCharOperators {
		if pair == op {
			l.readChar()
			l.readChar()
			return exprToken{Type: exprOperator, Value: op, Pos: start}
		}
	}

	switch l.ch {
	case '+', '-', '*', '/', '%', '<', '>', '&', '|', '^', '~', '!':
		op := string(l.ch)
		l.readChar()
		return exprToken{Type: exprOperator, Value: op, Pos: start}
	}

	illegal := string(l.ch)
	l.readChar()
	return exprToken{Type: exprIllegal, Value: illegal, Pos: start}
}

// readNumber reads a C integer literal: decimal, 0x hex, 0b binary or
// leading-zero octal, with optional u/U/l/L suffixes.
func (l *exprLexer) readNumber() exprToken {
	start := l.position
	for isIdentChar(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.position]
	if l.ch == '.' {
		l.readChar()
		return exprToken{Type: exprIllegal, Value: text + ".", Pos: start}
	}

	digits := strings.TrimRight(text, "uUlL")
	base := 10
	switch {
	case len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X"):
		base, digits = 16, digits[2:]
	case len(digits) > 2 && (digits[:2] == "0b" || digits[:2] == "0B"):
		base, digits = 2, digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base, digits = 8, digits[1:]
	}

	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return exprToken{Type: exprIllegal, Value: text, Pos: start}
	}
	return exprToken{Type: exprNumber, Value: text, Num: int64(n), Pos: start}
}

// readCharLiteral reads 'c' or a simple escape like '\n'
func (l *exprLexer) readCharLiteral() exprToken {
	start := l.position
	l.readChar()
	var value int64
	if l.ch == '\\' {
		l.readChar()
		switch l.ch {
		case 'n':
			value = '\n'
		case 't':
			value = '\t'
		case 'r':
			value = '\r'
		case '0':
			value = 0
		default:
			value = int64(l.ch)
		}
	} else {
		value = int64(l.ch)
	}
	l.readChar()
	if l.ch != '\'' {
		return exprToken{Type: exprIllegal, Value: l.input[start:l.position], Pos: start}
	}
	l.readChar()
	return exprToken{Type: exprNumber, Value: l.input[start:l.position], Num: value, Pos: start}
}

// Precedence levels, lowest binding first (C operator precedence)
const (
	precLowest = iota
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

var binaryPrecedence = map[string]int{
	"||": precLogicalOr,
	"&&": precLogicalAnd,
	"|":  precBitOr,
	"^":  precBitXor,
	"&":  precBitAnd,
	"==": precEquality,
	"!=": precEquality,
	"<":  precRelational,
	">":  precRelational,
	"<=": precRelational,
	">=": precRelational,
	"<<": precShift,
	">>": precShift,
	"+":  precAdditive,
	"-":  precAdditive,
	"*":  precMultiplicative,
	"/":  precMultiplicative,
	"%":  precMultiplicative,
}

// exprParser evaluates while it parses; there is no intermediate tree
type exprParser struct {
	lex  *exprLexer
	cur  exprToken
	vars SymbolTable
}

func (p *exprParser) nextToken() {
	p.cur = p.lex.NextToken()
}

func (p *exprParser) parseExpression(minPrec int) (int64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for p.cur.Type == exprOperator {
		op := p.cur.Value
		prec, ok := binaryPrecedence[op]
		if !ok || prec <= minPrec {
			break
		}
		p.nextToken()
		right, err := p.parseExpression(prec)
		if err != nil {
			return 0, err
		}
		left, err = applyBinary(op, left, right)
		if err != nil {
			return 0, err
		}
	}
	return left, nil
}

func (p *exprParser) parseUnary() (int64, error) {
	if p.cur.Type == exprOperator {
		op := p.cur.Value
		switch op {
		case "-", "+", "~", "!":
			p.nextToken()
			v, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			switch op {
			case "-":
				return -v, nil
			case "~":
				return ^v, nil
			case "!":
				return boolToInt(v == 0), nil
			}
			return v, nil
		}
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (int64, error) {
	tok := p.cur
	switch tok.Type {
	case exprNumber:
		p.nextToken()
		return tok.Num, nil
	case exprIdent:
		p.nextToken()
		v, ok := p.vars[tok.Value]
		if !ok {
			return 0, fmt.Errorf("%w: unknown identifier %q", ErrExpression, tok.Value)
		}
		return int64(v), nil
	case exprLParen:
		p.nextToken()
		v, err := p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
		if p.cur.Type != exprRParen {
			return 0, fmt.Errorf("%w: expected ')' at offset %d", ErrExpression, p.cur.Pos)
		}
		p.nextToken()
		return v, nil
	case exprEOF:
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrExpression)
	default:
		return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrExpression, tok.Value, tok.Pos)
	}
}

func applyBinary(op string, a, b int64) (int64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrExpression)
		}
		return a / b, nil
	case "%":
		if b == 0 {
			return 0, fmt.Errorf("%w: modulo by zero", ErrExpression)
		}
		return a % b, nil
	case "<<", ">>":
		if b < 0 || b > 63 {
			return 0, fmt.Errorf("%w: shift count %d out of range", ErrExpression, b)
		}
		if op == "<<" {
			return a << uint(b), nil
		}
		return a >> uint(b), nil
	case "&":
		return a & b, nil
	case "|":
		return a | b, nil
	case "^":
		return a ^ b, nil
	case "==":
		return boolToInt(a == b), nil
	case "!=":
		return boolToInt(a != b), nil
	case "<":
		return boolToInt(a < b), nil
	case ">":
		return boolToInt(a > b), nil
	case "<=":
		return boolToInt(a <= b), nil
	case ">=":
		return boolToInt(a >= b), nil
	case "&&":
		return boolToInt(a != 0 && b != 0), nil
	case "||":
		return boolToInt(a != 0 || b != 0), nil
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrExpression, op)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// evalExpr evaluates an integer expression against vars, reporting why it
// failed when it does.
func evalExpr(expr string, vars SymbolTable) (int, error) {
	p := &exprParser{lex: newExprLexer(strings.TrimSpace(expr)), vars: vars}
	p.nextToken()
	v, err := p.parseExpression(precLowest)
	if err != nil {
		return 0, err
	}
	if p.cur.Type != exprEOF {
		return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrExpression, p.cur.Value, p.cur.Pos)
	}
	return int(v), nil
}

// Evaluate evaluates an integer expression such as "x + w/2" against vars.
// Any malformed expression, unknown identifier or division by zero yields 0.
func Evaluate(expr string, vars SymbolTable) int {
	v, err := evalExpr(expr, vars)
	if err != nil {
		return 0
	}
	return v
}
