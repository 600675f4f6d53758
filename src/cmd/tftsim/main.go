package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/phroun/tftsim"
	"github.com/phroun/tftsim/src/pkg/tftcanvas"
	"github.com/phroun/tftsim/src/pkg/tftgui"
	"github.com/sqweek/dialog"
	"golang.org/x/term"
)

var version = "dev" // set via -ldflags at build time

// ANSI color codes for terminal output
const (
	colorYellow = "\x1b[93m"
	colorReset  = "\x1b[0m"
)

// stderrSupportsColor checks if stderr is a terminal that supports color
func stderrSupportsColor() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// errorPrintf prints to stderr, in yellow when stderr is a terminal
func errorPrintf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if stderrSupportsColor() {
		fmt.Fprint(os.Stderr, colorYellow+msg+colorReset)
	} else {
		fmt.Fprint(os.Stderr, msg)
	}
}

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug output")
	flag.BoolVar(debugFlag, "d", false, "Enable debug output (short)")
	outputFlag := flag.String("o", "", "Render headless and write the image to this file (.png, .bmp, .tif)")
	traceFlag := flag.Bool("trace", false, "Print the recorded drawing calls")
	configFlag := flag.String("config", tftgui.ConfigPath(), "Configuration file")
	openFlag := flag.Bool("open", false, "Choose the sketch with a file dialog")
	scaleFlag := flag.Float64("scale", 0, "Window magnification (overrides the config file)")
	entryFlag := flag.String("entry", "", "Entry routine (overrides the config file)")
	versionFlag := flag.Bool("version", false, "Show version")

	flag.Usage = showUsage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("tftsim %s\n", version)
		os.Exit(0)
	}

	fileConfig, err := tftgui.LoadConfig(*configFlag)
	if err != nil {
		errorPrintf("Warning: %v (using defaults)\n", err)
	}

	sketchFile, err := chooseSketch(flag.Args(), *openFlag)
	if err != nil {
		errorPrintf("Error: %v\n", err)
		if !errors.Is(err, dialog.ErrCancelled) {
			showUsage()
		}
		os.Exit(1)
	}

	content, err := os.ReadFile(sketchFile)
	if err != nil {
		errorPrintf("Error reading sketch file: %v\n", err)
		os.Exit(1)
	}
	source := string(content)

	config := tftsim.DefaultConfig()
	config.Debug = *debugFlag
	config.Filename = sketchFile
	for _, e := range fileConfig.Apply(config) {
		errorPrintf("Warning: %v\n", e)
	}
	if *entryFlag != "" {
		config.EntryRoutine = *entryFlag
	}

	fonts := tftcanvas.NewFontSet()
	defer fonts.Close()
	for _, e := range fileConfig.ApplyFonts(fonts) {
		errorPrintf("Warning: %v (using built-in font)\n", e)
	}

	fb := tftcanvas.New(config.DefaultWidth, config.DefaultHeight, fonts)
	recorder := tftsim.NewRecorder()
	var canvas tftsim.Canvas = fb
	if *traceFlag {
		canvas = tftsim.Tee{fb, recorder}
	}

	interp := tftsim.New(config, canvas)
	for _, e := range fileConfig.ApplyLogging(interp.Logger()) {
		errorPrintf("Warning: %v\n", e)
	}

	render := func() error {
		report, err := interp.Run(source)
		if *traceFlag {
			for _, call := range recorder.Drawing() {
				fmt.Println(call)
			}
		}
		printSummary(fb, report)
		return err
	}

	if *outputFlag != "" {
		if err := render(); err != nil {
			os.Exit(1)
		}
		if err := fb.WriteFile(*outputFlag); err != nil {
			errorPrintf("Error writing %s: %v\n", *outputFlag, err)
			os.Exit(1)
		}
		return
	}

	scale := fileConfig.WindowScale()
	if *scaleFlag > 0 {
		scale = *scaleFlag
	}
	win := tftgui.NewWindow(scale)
	fb.OnFlush(win.Update)
	win.Run(func() {
		if err := render(); err != nil {
			// show the blank canvas
			win.Update(fb.Snapshot())
		}
	})
}

// chooseSketch returns the sketch path from the arguments, or from a file
// dialog when -open is given without one
func chooseSketch(args []string, open bool) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !open {
		return "", errors.New("no sketch file given")
	}
	return dialog.File().
		Filter("Arduino sketch", "ino", "cpp", "txt").
		Title("Open TFT_eSPI sketch").
		Load()
}

func printSummary(fb *tftcanvas.Framebuffer, report *tftsim.Report) {
	fmt.Printf("Dimensions: %dx%d (rotation: %d)\n", fb.Width(), fb.Height(), fb.Rotation())
	if report == nil {
		return
	}
	fmt.Printf("Commands: %d, bitmaps: %d", report.Commands, report.Bitmaps)
	if n := report.Count(tftsim.LevelWarn); n > 0 {
		fmt.Printf(", warnings: %d", n)
	}
	fmt.Println()
}

func showUsage() {
	usage := `Usage: tftsim [options] sketch.ino

Interprets the setup() routine of a TFT_eSPI sketch and shows the result.

Options:
  -d, -debug          Enable debug output
  -o FILE             Render headless and write FILE (.png, .bmp, .tif)
  -trace              Print the recorded drawing calls
  -config FILE        Configuration file (default ~/.tftsim/config.yaml)
  -open               Choose the sketch with a file dialog
  -scale N            Window magnification
  -entry NAME         Entry routine (default setup)
  -version            Show version

Examples:
  tftsim demo.ino                  # Show the sketch in a window
  tftsim -scale 2 demo.ino         # Twice the size
  tftsim -o demo.png demo.ino      # Write a PNG without a window
  tftsim -trace -o x.png demo.ino  # Also list every drawing call

Press Escape or close the window to exit.
`
	fmt.Fprint(os.Stderr, usage)
}
