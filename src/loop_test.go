package tftsim

import "testing"

func TestParseLoopHeader(t *testing.T) {
	tests := []struct {
		inner     string
		ok        bool
		variable  string
		start     string
		bound     string
		inclusive bool
		increment string
	}{
		{"int i = 0; i < 5; i++", true, "i", "0", "5", false, "i++"},
		{"int i=0;i<count;i+=2", true, "i", "0", "count", false, "i+=2"},
		{"int row = margin; row <= rows - 1; row = row + step", true, "row", "margin", "rows - 1", true, "row = row + step"},
		{"uint8_t k = 1; k < 4; ++k", true, "k", "1", "4", false, "++k"},
		{"int i = 0; j < 5; i++", false, "", "", "", false, ""},
		{"i = 0; i < 5; i++", false, "", "", "", false, ""},
		{"int i = 10; i > 0; i--", false, "", "", "", false, ""},
		{";;", false, "", "", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.inner, func(t *testing.T) {
			h, ok := parseLoopHeader(tt.inner)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if h.Var != tt.variable || h.Start != tt.start || h.Bound != tt.bound ||
				h.Inclusive != tt.inclusive || h.Increment != tt.increment {
				t.Errorf("Unexpected header %+v", *h)
			}
		})
	}
}

func TestLoopStep(t *testing.T) {
	vars := SymbolTable{"step": 4, "n": 2}

	tests := []struct {
		increment string
		expected  int
	}{
		{"i++", 1},
		{"++i", 1},
		{"i += 2", 2},
		{"i += step", 4},
		{"i += n * 3", 1},
		{"i += -1", 1},
		{"i += (2)", 1},
		{"i += 0", 0},
		{"i += missing", 1},
		{"i = i + 3", 3},
		{"i = i + step", 4},
		{"i = i + missing", 1},
		{"i = i * 2", 1},
		{"i--", 1},
		{"", 1},
	}

	for _, tt := range tests {
		t.Run(tt.increment, func(t *testing.T) {
			if got := loopStep(tt.increment, vars); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestSegmentBlock(t *testing.T) {
	block := `
  tft.fillScreen(TFT_BLACK);
  for (int i = 0; i < 3; i++) {
    tft.drawLine(i, 0, i, 10, TFT_RED);
    for (int j = 0; j < 2; j++) {
      tft.drawPixel(i, j, TFT_RED);
    }
  }
  tft.setCursor(0, 0);
  for (int k = 0; k < 2; k++) { tft.print(k); }
  for (int m = 0; m < 2; m++)
    tft.print(m);
  while (true) {
    tft.print("never");
  }
  tft.println("done");`

	segs := segmentBlock(block, 10)

	kinds := []segmentKind{
		segStatement, segLoop, segStatement, segLoop, segMalformedLoop, segUnsupportedLoop, segStatement,
	}
	if len(segs) != len(kinds) {
		for _, s := range segs {
			t.Logf("%d %d %q", s.kind, s.line, s.text)
		}
		t.Fatalf("Expected %d segments, got %d", len(kinds), len(segs))
	}
	for i, k := range kinds {
		if segs[i].kind != k {
			t.Errorf("Segment %d: expected kind %d, got %d", i, k, segs[i].kind)
		}
	}

	if segs[0].line != 11 {
		t.Errorf("Expected first statement on line 11, got %d", segs[0].line)
	}

	outer := segs[1]
	if outer.header.Var != "i" || outer.bodyLine != 13 {
		t.Errorf("Unexpected outer loop %+v", outer)
	}
	expectedBody := "    tft.drawLine(i, 0, i, 10, TFT_RED);\n" +
		"    for (int j = 0; j < 2; j++) {\n" +
		"      tft.drawPixel(i, j, TFT_RED);\n" +
		"    }"
	if outer.body != expectedBody {
		t.Errorf("Expected body %q, got %q", expectedBody, outer.body)
	}

	inline := segs[3]
	if inline.body != " tft.print(k); " || inline.bodyLine != inline.line {
		t.Errorf("Unexpected inline loop body %q at %d", inline.body, inline.bodyLine)
	}

	if segs[6].text != `tft.println("done");` {
		t.Errorf("Expected trailing statement, got %q", segs[6].text)
	}
}

func TestSegmentBlockClosingBraceWithContent(t *testing.T) {
	block := "for (int i = 0; i < 2; i++) {\n  tft.print(i);\n  tft.println(); }\ntft.print(\"after\");"
	segs := segmentBlock(block, 1)

	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segs))
	}
	if segs[0].body != "  tft.print(i);\ntft.println();" {
		t.Errorf("Unexpected body %q", segs[0].body)
	}
	if segs[1].kind != segStatement {
		t.Errorf("Expected a statement after the loop, got kind %d", segs[1].kind)
	}
}

func TestSegmentBlockAllmanBraces(t *testing.T) {
	block := `
  for (int i = 0; i < 3; i++)
  {
    tft.fillRect(i * 10, 0, 5, 5, TFT_RED);
    if (i) { tft.print(i); }
  }
  while (ready)

  {
    tft.print("never");
  }
  tft.println("done");`

	segs := segmentBlock(block, 1)

	kinds := []segmentKind{segMalformedLoop, segUnsupportedLoop, segStatement}
	if len(segs) != len(kinds) {
		for _, s := range segs {
			t.Logf("%d %d %q", s.kind, s.line, s.text)
		}
		t.Fatalf("Expected %d segments, got %d", len(kinds), len(segs))
	}
	for i, k := range kinds {
		if segs[i].kind != k {
			t.Errorf("Segment %d: expected kind %d, got %d", i, k, segs[i].kind)
		}
	}
	if segs[2].text != `tft.println("done");` || segs[2].line != 12 {
		t.Errorf("Expected trailing statement on line 12, got %q on %d", segs[2].text, segs[2].line)
	}
}
