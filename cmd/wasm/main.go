//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/shapeforge/shapeforge/backend-go/internal/clip"
	"github.com/shapeforge/shapeforge/backend-go/internal/scene"
)

var eng *scene.Engine

func main() {
	eng = scene.NewEngine(clip.NewEngine())

	// Create the engine API object
	shapeEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	shapeEngine.Set("loadDocument", js.FuncOf(loadDocument))
	shapeEngine.Set("updateDocument", js.FuncOf(updateDocument))
	shapeEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	shapeEngine.Set("setScene", js.FuncOf(setScene))
	shapeEngine.Set("setView", js.FuncOf(setView))
	shapeEngine.Set("setSelection", js.FuncOf(setSelection))
	shapeEngine.Set("combineSelection", js.FuncOf(combineSelection))

	// --- Queries (frontend ← backend) ---
	shapeEngine.Set("render", js.FuncOf(render))
	shapeEngine.Set("hitTest", js.FuncOf(hitTest))
	shapeEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	shapeEngine.Set("getScene", js.FuncOf(getScene))
	shapeEngine.Set("getDocument", js.FuncOf(getDocument))
	shapeEngine.Set("getSelection", js.FuncOf(getSelection))

	// Register on global scope
	js.Global().Set("shapeforgeEngine", shapeEngine)

	// Signal that WASM is ready
	js.Global().Set("shapeforgeWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	jsonData := args[0].String()
	if err := eng.LoadDocument(jsonData); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func updateDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	jsonData := args[0].String()
	if err := eng.UpdateDocument(jsonData); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	projectID := "proj_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		projectID = args[0].String()
	}

	eng.LoadSampleDocument(projectID)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetScene(args[0].String())
	return nil
}

// setView takes the six view matrix entries and the device pixel ratio.
func setView(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}

	arr := args[0]
	if arr.Type() != js.TypeObject || arr.Length() < 6 {
		return nil
	}

	var m [6]float64
	for i := 0; i < 6; i++ {
		m[i] = arr.Index(i).Float()
	}
	eng.SetView(m, args[1].Float())
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	if arr.Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func combineSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CombineSelection())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTest(x, y))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getScene(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetScene())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}
