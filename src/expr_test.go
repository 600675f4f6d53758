package tftsim

import (
	"errors"
	"testing"
)

func TestEvaluateArithmetic(t *testing.T) {
	vars := SymbolTable{"a": 3, "b": 4, "w": 480, "x": 7, "x2": 100}

	tests := []struct {
		expr     string
		expected int
	}{
		{"a+b*2", 11},
		{"(a+b)*2", 14},
		{"w/2 - 10", 230},
		{"-a + 10", 7},
		{"17 % 5", 2},
		{"-7 / 2", -3},
		{"-7 % 3", -1},
		{"1 << 4", 16},
		{"0xFF >> 4", 15},
		{"0x10", 16},
		{"0b101", 5},
		{"010", 8},
		{"100UL", 100},
		{"'A'", 65},
		{"a < b", 1},
		{"a == b || b == 4", 1},
		{"~0 & 0xF", 15},
		{"!a", 0},
		{"x2 - x", 93},
		{"  42  ", 42},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := Evaluate(tt.expr, vars)
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestEvaluateFailsToZero(t *testing.T) {
	vars := SymbolTable{"a": 3}

	for _, expr := range []string{
		"unknown + 1",
		"a / 0",
		"a % 0",
		"(a + 1",
		"a +",
		"",
		"1.5",
		"a b",
		"1 << 64",
		"a $ 2",
	} {
		t.Run(expr, func(t *testing.T) {
			if got := Evaluate(expr, vars); got != 0 {
				t.Errorf("Expected 0 for %q, got %d", expr, got)
			}
			if _, err := evalExpr(expr, vars); !errors.Is(err, ErrExpression) {
				t.Errorf("Expected ErrExpression for %q, got %v", expr, err)
			}
		})
	}
}

func TestEvaluateWholeIdentifiers(t *testing.T) {
	// substituting "i" textually would corrupt "idx" and "0x1i"
	vars := SymbolTable{"i": 2, "idx": 10}

	if got := Evaluate("idx + i", vars); got != 12 {
		t.Errorf("Expected 12, got %d", got)
	}
	if got := Evaluate("0x1F + i", vars); got != 33 {
		t.Errorf("Expected 33, got %d", got)
	}
}

func TestEvaluateNilVars(t *testing.T) {
	if got := Evaluate("2 * (3 + 4)", nil); got != 14 {
		t.Errorf("Expected 14, got %d", got)
	}
}
