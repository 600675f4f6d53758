package tftsim

import (
	"errors"
	"testing"
)

func testEnv() *StatementEnv {
	return &StatementEnv{
		Bitmaps:       BitmapRegistry{"logo": {0xF0, 0x0F}},
		DisplayObject: "tft",
	}
}

func TestParseStatementCalls(t *testing.T) {
	vars := SymbolTable{"x": 10, "y": 20, "count": 3}
	red := RGB{255, 0, 0}
	blue := RGB{0, 0, 255}

	tests := []struct {
		line     string
		expected string
	}{
		{"tft.fillScreen(TFT_BLACK);", "fillScreen(#000000)"},
		{"tft.drawRect(x, y, 30, 40, TFT_RED);", "drawRect(10, 20, 30, 40, #ff0000)"},
		{"tft.fillRect(x, y, 30, 40, 0xF800);", "fillRect(10, 20, 30, 40, #ff0000)"},
		{"tft.drawRoundRect(0, 0, 50, 20, 5, TFT_BLUE);", "drawRoundRect(0, 0, 50, 20, 5, #0000ff)"},
		{"tft.fillRoundRect(0, 0, 50, 20, 5, TFT_BLUE);", "fillRoundRect(0, 0, 50, 20, 5, #0000ff)"},
		{"tft.drawCircle(x + 5, y * 2, 8, TFT_RED);", "drawCircle(15, 40, 8, #ff0000)"},
		{"tft.fillCircle(1, 2, 3, TFT_RED);", "fillCircle(1, 2, 3, #ff0000)"},
		{"tft.drawLine(0, 0, x, y, TFT_WHITE);", "drawLine(0, 0, 10, 20, #ffffff)"},
		{"tft.drawTriangle(0, 0, 10, 0, 5, 8, TFT_RED);", "drawTriangle(0, 0, 10, 0, 5, 8, #ff0000)"},
		{"tft.fillTriangle(0, 0, 10, 0, 5, 8, TFT_RED);", "fillTriangle(0, 0, 10, 0, 5, 8, #ff0000)"},
		{"tft.drawBitmap(5, 6, logo, 8, 2, TFT_RED);", "drawBitmap(5, 6, logo, 8, 2, #ff0000)"},
		{"tft.drawBitmap(5, 6, logo, 8, 2, TFT_RED, TFT_BLUE);", "drawBitmap(5, 6, logo, 8, 2, #ff0000, #0000ff)"},
		{"tft.setCursor(x, y);", "setCursor(10, 20)"},
		{"tft.setCursor(x, y, 4);", "setCursor(10, 20, 4)"},
		{"tft.setCursor(x, y, 0);", "setCursor(10, 20, 0)"},
		{"tft.setTextColor(TFT_RED, TFT_BLACK);", "setTextColor(#ff0000)"},
		{"tft.setTextFont(2);", "setTextFont(2)"},
		{"tft.setTextSize(count);", "setTextSize(3)"},
		{`tft.print("Hello, world");`, `print("Hello, world")`},
		{`tft.println("Line");`, `println("Line")`},
		{"tft.println();", `println("")`},
		{"tft.print(count);", `print("3")`},
		{"tft.print(label);", `print("label")`},
		{"tft.print(count * 2);", `print("6")`},
		{`tft.drawString("Hi", x, y);`, `drawString("Hi", 10, 20)`},
		{`tft.drawString("Hi", x, y, 2);`, `drawString("Hi", 10, 20, 2)`},
		{"tft.setRotation(1);", "setRotation(1)"},
		{"tft->fillScreen(TFT_RED)", "fillScreen(#ff0000)"},
		{"sprite.fillRect(0, 0, 1, 1, TFT_RED);", "fillRect(0, 0, 1, 1, #ff0000)"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseStatement(tt.line, vars, testEnv())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cmd == nil {
				t.Fatal("Expected a command")
			}
			if cmd.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, cmd.String())
			}
		})
	}

	cmd, _ := ParseStatement("tft.fillRect(1, 2, 3, 4, TFT_RED);", vars, testEnv())
	if rect, ok := cmd.(Rect); !ok || !rect.Filled || rect.Color != red {
		t.Errorf("Expected filled red Rect, got %#v", cmd)
	}
	cmd, _ = ParseStatement("tft.drawBitmap(0, 0, logo, 8, 2, TFT_RED, TFT_BLUE);", vars, testEnv())
	if bm, ok := cmd.(Bitmap); !ok || bm.Background == nil || *bm.Background != blue || len(bm.Data) != 2 {
		t.Errorf("Expected bitmap with blue background, got %#v", cmd)
	}
}

func TestParseStatementLongerNamesDoNotCollide(t *testing.T) {
	// drawRect is a substring of drawRoundRect and fillRect of fillRoundRect
	cmd, err := ParseStatement("tft.fillRoundRect(1, 2, 3, 4, 5, TFT_RED);", nil, testEnv())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := cmd.(RoundRect); !ok {
		t.Errorf("Expected RoundRect, got %T", cmd)
	}

	cmd, err = ParseStatement("tft.println(\"x\");", nil, testEnv())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p, ok := cmd.(PrintText); !ok || !p.Newline {
		t.Errorf("Expected println, got %#v", cmd)
	}
}

func TestParseStatementSkipsNonCalls(t *testing.T) {
	for _, line := range []string{
		"",
		"   ",
		"// comment",
		"int a = 5;",
		"}",
		"{",
		"a = 4;",
	} {
		t.Run(line, func(t *testing.T) {
			cmd, err := ParseStatement(line, nil, testEnv())
			if cmd != nil || err != nil {
				t.Errorf("Expected (nil, nil), got (%v, %v)", cmd, err)
			}
		})
	}
}

func TestParseStatementErrors(t *testing.T) {
	tests := []struct {
		line     string
		expected error
	}{
		{"delay(100);", ErrUnknownCall},
		{"tft.drawPixel(1, 2, TFT_RED);", ErrUnknownCall},
		{"Serial.print(\"x\");", ErrUnknownCall},
		{"tft.fillRect(1, 2, TFT_RED);", ErrBadArguments},
		{"tft.fillRect(1, 2, 3, 4, TFT_RED", ErrBadArguments},
		{"tft.fillRect(1, , 3, 4, TFT_RED);", ErrBadArguments},
		{"tft.fillScreen(TFT_RED) + 1;", ErrBadArguments},
		{"tft.drawBitmap(0, 0, missing, 8, 8, TFT_RED);", ErrUnknownBitmap},
		{"tft.drawBitmap(0, 0, \"logo\", 8, 8, TFT_RED);", ErrBadArguments},
		{"tft.fillRect 10, 20, 5, 5, TFT_RED;", ErrBadArguments},
		{"tft.fillScreen;", ErrBadArguments},
		{"Serial.println \"x\";", ErrUnknownCall},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseStatement(tt.line, nil, testEnv())
			if cmd != nil {
				t.Errorf("Expected no command, got %v", cmd)
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestParseStatementArgumentDefaults(t *testing.T) {
	var notes []string
	env := testEnv()
	env.Notify = func(level LogLevel, cat LogCategory, message string) {
		notes = append(notes, string(cat))
	}

	cmd, err := ParseStatement("tft.fillRect(unknown, 2, 3, 4, bogus);", nil, env)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rect := cmd.(Rect)
	if rect.X != 0 {
		t.Errorf("Expected X to fail to 0, got %d", rect.X)
	}
	if rect.Color != White {
		t.Errorf("Expected white fallback, got %v", rect.Color)
	}
	if len(notes) != 2 || notes[0] != string(CatExpr) || notes[1] != string(CatColor) {
		t.Errorf("Expected expr and color notes, got %v", notes)
	}
}

func TestParseStatementPaletteColors(t *testing.T) {
	env := testEnv()
	env.Palette = Palette{"BRAND": {1, 2, 3}}

	cmd, err := ParseStatement("tft.fillScreen(BRAND);", nil, env)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cmd.(FillScreen).Color != (RGB{1, 2, 3}) {
		t.Errorf("Expected palette color, got %v", cmd)
	}
}

func TestParseStatementPrintNeedsDisplayObject(t *testing.T) {
	_, err := ParseStatement("sprite.print(\"x\");", nil, testEnv())
	if !errors.Is(err, ErrUnknownCall) {
		t.Errorf("Expected ErrUnknownCall, got %v", err)
	}
}

func TestCommandApply(t *testing.T) {
	rec := NewRecorder()
	cmds := []Command{
		FillScreen{Color: Black},
		Rect{Filled: true, X: 1, Y: 2, W: 3, H: 4, Color: White},
		PrintText{Text: "hi", Newline: true},
		DrawString{Text: "s", X: 1, Y: 2, Font: FontUnchanged},
	}
	for _, c := range cmds {
		c.Apply(rec)
	}

	expected := []string{
		"fillScreen(#000000)",
		"fillRect(1, 2, 3, 4, #ffffff)",
		`println("hi")`,
		`drawString("s", 1, 2, -1)`,
	}
	if len(rec.Calls) != len(expected) {
		t.Fatalf("Expected %d calls, got %d", len(expected), len(rec.Calls))
	}
	for i := range expected {
		if rec.Calls[i] != expected[i] {
			t.Errorf("Call %d: expected %s, got %s", i, expected[i], rec.Calls[i])
		}
	}
}
