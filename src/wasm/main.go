// src/wasm/main.go
//go:build js && wasm
// +build js,wasm

package main

import (
	"bytes"
	"fmt"
	"syscall/js"

	"github.com/phroun/tftsim"
	"github.com/phroun/tftsim/src/pkg/tftcanvas"
)

// wasmSim keeps the configuration shared by every render call
type wasmSim struct {
	config *tftsim.Config
}

// wasmRender is called from JS: tftsim_render(source: string)
// It returns {png: Uint8Array, calls: string[], diagnostics: string[],
// width, height, error}.
func (w *wasmSim) wasmRender(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "missing sketch source"}
	}
	source := args[0].String()

	fb := tftcanvas.New(w.config.DefaultWidth, w.config.DefaultHeight, nil)
	rec := tftsim.NewRecorder()
	it := tftsim.New(w.config, tftsim.Tee{fb, rec})

	result := map[string]interface{}{}
	report, err := it.Run(source)
	if err != nil {
		result["error"] = err.Error()
	}

	calls := make([]interface{}, 0, len(rec.Calls))
	for _, c := range rec.Drawing() {
		calls = append(calls, c)
	}
	result["calls"] = calls

	diags := make([]interface{}, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		diags = append(diags, fmt.Sprintf("%s %s", d.Level, d))
	}
	result["diagnostics"] = diags
	result["width"] = fb.Width()
	result["height"] = fb.Height()

	var buf bytes.Buffer
	if err := tftcanvas.Encode(&buf, fb.Image(), tftcanvas.FormatPNG); err == nil {
		png := js.Global().Get("Uint8Array").New(buf.Len())
		js.CopyBytesToJS(png, buf.Bytes())
		result["png"] = png
	}
	return result
}

// wasmSetColor is called from JS: tftsim_set_color(name: string, token: string)
func (w *wasmSim) wasmSetColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return false
	}
	if w.config.Palette == nil {
		w.config.Palette = tftsim.Palette{}
	}
	w.config.Palette[args[0].String()] = tftsim.ResolveColor(args[1].String())
	return true
}

// --- Main entrypoint ---
func main() {
	cfg := tftsim.DefaultConfig()
	cfg.ContextLines = 2

	wasm := &wasmSim{config: cfg}

	// Expose JS functions
	js.Global().Set("tftsim_render", js.FuncOf(wasm.wasmRender))
	js.Global().Set("tftsim_set_color", js.FuncOf(wasm.wasmSetColor))

	fmt.Println("TFT_eSPI simulator WASM ready!")

	// Keep the WASM runtime alive
	select {}
}
