package scene

import (
	"encoding/json"

	"github.com/shapeforge/shapeforge/backend-go/internal/boolean"
	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/document"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
	"github.com/shapeforge/shapeforge/backend-go/internal/typeid"
)

// Engine owns the document and retained scene graph state. It processes
// commands from the frontend and returns query results as JSON strings.
type Engine struct {
	doc     *document.Document
	sceneID string

	graph *Graph

	// View state: the camera matrix and device pixel ratio are applied
	// together, once, when compiling draw commands.
	view       geom.Matrix2D
	pixelRatio float64

	combiner curve.Combiner

	// Selection state (backend owns this)
	selection []string

	// Dirty flag - scene graph needs rebuild
	dirty bool
}

// NewEngine creates a new engine instance.
func NewEngine(combiner curve.Combiner) *Engine {
	return &Engine{
		view:       geom.Identity(),
		pixelRatio: 1,
		combiner:   combiner,
		dirty:      true,
	}
}

// --- Commands (frontend → backend) ---

// LoadDocument loads a document from JSON.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc document.Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}

	e.doc = &doc
	if len(doc.Project.Scenes) > 0 {
		e.sceneID = doc.Project.Scenes[0]
	}

	e.selection = nil
	e.dirty = true
	return nil
}

// UpdateDocument reloads a document from JSON while preserving the
// selection and view. Used when the document changes during editing.
func (e *Engine) UpdateDocument(jsonData string) error {
	var doc document.Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}

	e.doc = &doc
	if len(doc.Project.Scenes) > 0 {
		e.sceneID = doc.Project.Scenes[0]
	}

	e.dirty = true
	return nil
}

// LoadSampleDocument loads the built-in sample document.
func (e *Engine) LoadSampleDocument(projectID string) {
	e.doc = document.NewSampleDocument(projectID)
	if len(e.doc.Project.Scenes) > 0 {
		e.sceneID = e.doc.Project.Scenes[0]
	}

	e.selection = nil
	e.dirty = true
}

// SetScene switches the active scene.
func (e *Engine) SetScene(sceneID string) {
	if e.sceneID != sceneID {
		e.sceneID = sceneID
		e.dirty = true
	}
}

// SetView updates the camera matrix and device pixel ratio.
func (e *Engine) SetView(m [6]float64, pixelRatio float64) {
	e.view = geom.Matrix2D(m)
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	e.pixelRatio = pixelRatio
}

// SetSelection sets the selected object IDs.
func (e *Engine) SetSelection(ids []string) {
	e.selection = ids
}

// CombineSelection merges the selected objects into a single vector
// path and returns the new object's ID as JSON, or an error object.
func (e *Engine) CombineSelection() string {
	if e.doc == nil || len(e.selection) < 2 {
		return `{"error":"select at least two objects"}`
	}

	shape, err := boolean.CombineObjects(e.doc, e.selection, e.combiner)
	if err != nil {
		return errorJSON(err.Error())
	}
	if shape == nil {
		return `{"error":"nothing to combine"}`
	}

	newID := typeid.NewObjectID()
	if err := boolean.ApplyToDocument(e.doc, e.selection, newID, shape); err != nil {
		return errorJSON(err.Error())
	}

	e.selection = []string{newID}
	e.dirty = true

	data, _ := json.Marshal(map[string]string{"objectId": newID})
	return string(data)
}

// --- Queries (frontend ← backend) ---

// Render evaluates the scene graph and returns draw commands as JSON.
func (e *Engine) Render() string {
	if e.doc == nil {
		return "[]"
	}

	e.rebuild()

	commands := DrawCommands(e.graph, e.sharedView())
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// HitTest performs a hit test at device coordinates. The point is
// mapped back through the view before testing world bounds. Returns
// the object ID of the topmost hit, or empty string.
func (e *Engine) HitTest(x, y float64) string {
	e.rebuild()
	if e.graph == nil {
		return ""
	}

	p := e.sharedView().Invert().Apply(geom.Pt(x, y))
	return HitTest(e.graph, p.X, p.Y)
}

// GetSelectionBounds returns the world-space bounding box of the
// current selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	e.rebuild()
	if e.graph == nil || len(e.selection) == 0 {
		return rectJSON(geom.Rect{})
	}
	bounds, ok := SelectionBounds(e.graph, e.selection)
	if !ok {
		return rectJSON(geom.Rect{})
	}
	return rectJSON(bounds)
}

// GetScene returns the current scene metadata as JSON.
func (e *Engine) GetScene() string {
	if e.doc == nil || e.sceneID == "" {
		return "{}"
	}

	scene, ok := e.doc.Scenes[e.sceneID]
	if !ok {
		return "{}"
	}

	data, _ := json.Marshal(scene)
	return string(data)
}

// GetDocument returns the full document as JSON (for debugging/sync).
func (e *Engine) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc)
	return string(data)
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

func (e *Engine) rebuild() {
	if e.doc == nil || !e.dirty {
		return
	}
	e.graph = Build(e.doc, e.sceneID)
	e.dirty = false
}

func (e *Engine) sharedView() geom.Matrix2D {
	return e.view.ScaleComponents(e.pixelRatio)
}

func rectJSON(r geom.Rect) string {
	data, _ := json.Marshal(map[string]float64{
		"x":      r.MinX,
		"y":      r.MinY,
		"width":  r.Width(),
		"height": r.Height(),
	})
	return string(data)
}

func errorJSON(msg string) string {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return string(data)
}
