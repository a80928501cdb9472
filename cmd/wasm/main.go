//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/render"
	"github.com/drawshapes/drawshapes/internal/shape"
)

var (
	eng   *engine.Engine
	scene engine.Scene
)

var style = render.DefaultStyle()

func main() {
	eng = engine.NewEngine(engine.WithRenderer(engine.RendererFunc(onRender)))
	scene = eng.Scene()

	// Create the engine API object
	api := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	api.Set("tap", js.FuncOf(tap))
	api.Set("pan", js.FuncOf(pan))
	api.Set("setShapeType", js.FuncOf(setShapeType))
	api.Set("setRectMode", js.FuncOf(setRectMode))
	api.Set("deleteSelected", js.FuncOf(deleteSelected))
	api.Set("setBackground", js.FuncOf(setBackground))
	api.Set("setCanvasSize", js.FuncOf(setCanvasSize))
	api.Set("loadSample", js.FuncOf(loadSample))

	// --- Queries (frontend ← engine) ---
	api.Set("render", js.FuncOf(renderCommands))
	api.Set("getState", js.FuncOf(getState))
	api.Set("getShapes", js.FuncOf(getShapes))

	// Register on global scope
	js.Global().Set("drawshapesEngine", api)

	// Signal that WASM is ready
	js.Global().Set("drawshapesWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// onRender keeps the latest scene and notifies the page, if it registered
// a drawshapesOnRender callback.
func onRender(sc engine.Scene) {
	scene = sc
	if cb := js.Global().Get("drawshapesOnRender"); cb.Type() == js.TypeFunction {
		cb.Invoke()
	}
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

// --- Command Handlers ---

func tap(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("tap needs x and y")
	}
	eng.Tap(geom.Pt(args[0].Float(), args[1].Float()))
	return nil
}

// pan takes (phase, startX, startY, translationX, translationY).
func pan(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return errorResult("pan needs phase, start and translation")
	}
	phase, err := engine.ParsePhase(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	eng.Pan(engine.PanEvent{
		Phase:       phase,
		Start:       geom.Pt(args[1].Float(), args[2].Float()),
		Translation: geom.V(args[3].Float(), args[4].Float()),
	})
	return nil
}

func setShapeType(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing shape type")
	}
	kind, err := shape.ParseKind(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	eng.SetShapeType(kind)
	return nil
}

func setRectMode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing rect mode")
	}
	mode, err := hittest.ParseRectMode(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	eng.SetRectMode(mode)
	return nil
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.DeleteSelected())
}

func setBackground(this js.Value, args []js.Value) interface{} {
	assetID := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		assetID = args[0].String()
	}
	eng.SetBackground(assetID)
	return nil
}

func setCanvasSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	style.Width = args[0].Float()
	style.Height = args[1].Float()
	onRender(eng.Scene())
	return nil
}

func loadSample(this js.Value, args []js.Value) interface{} {
	eng.LoadSample()
	return nil
}

// --- Query Handlers ---

func renderCommands(this js.Value, args []js.Value) interface{} {
	out, err := render.DrawCommandsToJSON(render.Compile(scene, style))
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(out)
}

func getState(this js.Value, args []js.Value) interface{} {
	state := map[string]interface{}{
		"state":       scene.State.String(),
		"shapeType":   eng.ShapeType().String(),
		"rectMode":    eng.RectMode().String(),
		"showDelete":  scene.ShowDelete,
		"showOptions": scene.ShowOptions,
		"selection":   "",
	}
	if sel := eng.Selection(); sel.Found() {
		state["selection"] = sel.ID
	}
	data, _ := json.Marshal(state)
	return js.ValueOf(string(data))
}

func getShapes(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(scene.Shapes)
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}
