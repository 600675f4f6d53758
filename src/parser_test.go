package tftsim

import (
	"reflect"
	"testing"
)

func TestStripComments(t *testing.T) {
	source := "int a = 1; // trailing\n/* block\n comment */int b = 2;\ntft.print(\"// not a comment\");"
	got := StripComments(source)

	expected := "int a = 1;            \n        \n           int b = 2;\ntft.print(\"// not a comment\");"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	if len(got) != len(source) {
		t.Errorf("Expected length %d, got %d", len(source), len(got))
	}
}

func TestSplitArguments(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"10, 20, 30", []string{"10", "20", "30"}},
		{"(a + b) * 2, max(1, 2)", []string{"(a + b) * 2", "max(1, 2)"}},
		{`"a, b", 5`, []string{`"a, b"`, "5"}},
		{"", nil},
		{"1, ", []string{"1", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitArguments(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements(`tft.print("a;b"); tft.setCursor(0, 0);;`)
	expected := []string{`tft.print("a;b")`, "tft.setCursor(0, 0)"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{`"Hello"`, "Hello", true},
		{`'x'`, "x", true},
		{`"tab\there"`, "tab\there", true},
		{`"quote \" inside"`, `quote " inside`, true},
		{`"\x41"`, "A", true},
		{`Hello`, "", false},
		{`"open`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := unquote(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestBraceDelta(t *testing.T) {
	if got := braceDelta(`for (int i = 0; i < 3; i++) {`); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
	if got := braceDelta(`tft.print("{{"); }`); got != -1 {
		t.Errorf("Expected -1, got %d", got)
	}
}
