// Package scene evaluates the document's object tree into a render-ready
// scene graph: world transforms composed down the hierarchy, resolved
// styles, world-space bounds, hit testing and draw-command compilation.
package scene

import "github.com/shapeforge/shapeforge/backend-go/internal/geom"

// Graph is the evaluated, render-ready state of a document scene.
type Graph struct {
	Root      *Node
	NodesByID map[string]*Node
}

// Node is a resolved object ready for rendering. All transforms are
// computed and inherited properties are resolved.
type Node struct {
	ID   string
	Type string // "group" or "shape"

	WorldTransform geom.Matrix2D // parent * local
	LocalTransform geom.Matrix2D

	Opacity float64 // inherited * local
	Visible bool

	Parent   *Node
	Children []*Node

	// Render data, resolved from the document
	Path        []geom.PathCommand
	Fill        string
	Stroke      string
	StrokeWidth float64

	// Axis-aligned bounding box in world space; HasBounds distinguishes
	// "no renderable content" from a genuine zero-size box.
	Bounds    geom.Rect
	HasBounds bool
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{NodesByID: make(map[string]*Node)}
}
