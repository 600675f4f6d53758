package tftsim

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevelNames(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelTrace, "TRACE"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelNotice, "NOTICE"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestMissingEntryLogsFatal(t *testing.T) {
	var out, errOut bytes.Buffer
	it := New(nil, NewRecorder())
	it.Logger().SetOutput(&out, &errOut)

	if _, err := it.Run("int a = 1;\n"); err == nil {
		t.Fatal("Expected a missing entry routine error")
	}
	if !strings.Contains(errOut.String(), "[TFTSim:block FATAL]") {
		t.Errorf("Expected a fatal prefix, got %q", errOut.String())
	}
}

func TestDebugOutputNeedsCategory(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLogger(true)
	logger.SetOutput(&out, &errOut)

	logger.DebugCat(CatLoop, "hidden %d", 1)
	if out.Len() != 0 {
		t.Errorf("Expected no output for a disabled category, got %q", out.String())
	}

	logger.EnableCategory(CatLoop)
	logger.DebugCat(CatLoop, "shown %d", 2)
	if !strings.Contains(out.String(), "[DEBUG:loop] shown 2") {
		t.Errorf("Expected debug line, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("Expected nothing on the error stream, got %q", errOut.String())
	}
}
