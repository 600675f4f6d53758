package main

// This is an example of using tftsim as a library in a Go application

import (
	"fmt"
	"os"

	"github.com/phroun/tftsim"
	"github.com/phroun/tftsim/src/pkg/tftcanvas"
)

const sketch = `
#include <TFT_eSPI.h>

TFT_eSPI tft = TFT_eSPI();

int displayWidth = 160;
int displayHeight = 128;
int bars = 6;
int barWidth = displayWidth / bars;

const unsigned char heart[] PROGMEM = {
  0x66, 0xFF, 0xFF, 0x7E, 0x3C, 0x18
};

void setup() {
  tft.init();
  tft.fillScreen(TFT_NAVY);
  for (int i = 0; i < bars; i++) {
    tft.fillRect(i * barWidth, 100 - i * 10, barWidth - 2, 28 + i * 10, 0x07E0);
  }
  tft.setTextColor(TFT_YELLOW);
  tft.drawString("Hello", 8, 8, 2);
  tft.drawBitmap(140, 8, heart, 8, 6, TFT_RED);
}

void loop() {
}
`

func main() {
	// Record the drawing calls and render them at the same time
	rec := tftsim.NewRecorder()
	fb := tftcanvas.New(0, 0, nil)

	config := tftsim.DefaultConfig()
	config.Palette = tftsim.Palette{"TFT_BRAND": tftsim.ResolveColor("0x1E90FF")}

	it := tftsim.New(config, tftsim.Tee{fb, rec})
	report, err := it.Run(sketch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, call := range rec.Drawing() {
		fmt.Println(call)
	}
	fmt.Printf("%d commands, %d diagnostics, %dx%d\n",
		report.Commands, len(report.Diagnostics), report.Width, report.Height)
	for _, d := range report.Diagnostics {
		fmt.Printf("  %s %s\n", d.Level, d)
	}

	// Evaluate expressions against the sketch's variables
	fmt.Printf("barWidth * 2 = %d\n", tftsim.Evaluate("barWidth * 2", report.Variables))

	if err := fb.WriteFile("example.png"); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing image: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Wrote example.png")
}
