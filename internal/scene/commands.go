package scene

import (
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// DrawCommand is a single drawing operation for the frontend canvas.
type DrawCommand struct {
	Op          string          `json:"op"` // "path"
	ObjectID    string          `json:"objectId,omitempty"`
	Transform   []float64       `json:"transform,omitempty"`
	Path        [][]interface{} `json:"path,omitempty"`
	Fill        string          `json:"fill,omitempty"`
	Stroke      string          `json:"stroke,omitempty"`
	StrokeWidth float64         `json:"strokeWidth,omitempty"`
	Opacity     float64         `json:"opacity,omitempty"`
}

// DrawCommands compiles the graph into painter's-order draw commands.
// The view matrix (already scaled for the device pixel ratio) is folded
// into each command's transform so the canvas renders in shared space.
func DrawCommands(g *Graph, view geom.Matrix2D) []DrawCommand {
	if g == nil || g.Root == nil {
		return nil
	}

	var commands []DrawCommand
	compileNode(g.Root, view, &commands)
	return commands
}

func compileNode(node *Node, view geom.Matrix2D, commands *[]DrawCommand) {
	if node == nil || !node.Visible {
		return
	}

	if len(node.Path) > 0 {
		*commands = append(*commands, DrawCommand{
			Op:          "path",
			ObjectID:    node.ID,
			Transform:   view.Multiply(node.WorldTransform).ToSlice(),
			Path:        geom.EncodeCommands(node.Path),
			Fill:        node.Fill,
			Stroke:      node.Stroke,
			StrokeWidth: node.StrokeWidth,
			Opacity:     node.Opacity,
		})
	}

	for _, child := range node.Children {
		compileNode(child, view, commands)
	}
}

// HitTest returns the ID of the topmost object whose world bounds
// contain the point, or an empty string.
func HitTest(g *Graph, x, y float64) string {
	if g == nil || g.Root == nil {
		return ""
	}
	return hitTestNode(g.Root, x, y)
}

// hitTestNode tests children first: they are on top in painter's order.
func hitTestNode(node *Node, x, y float64) string {
	if node == nil || !node.Visible {
		return ""
	}

	for i := len(node.Children) - 1; i >= 0; i-- {
		if hit := hitTestNode(node.Children[i], x, y); hit != "" {
			return hit
		}
	}

	if len(node.Path) > 0 && node.HasBounds && node.Bounds.Contains(x, y) {
		return node.ID
	}
	return ""
}

// SelectionBounds returns the combined world-space bounding box of the
// given objects. The second result is false when no object contributed
// bounds.
func SelectionBounds(g *Graph, objectIDs []string) (geom.Rect, bool) {
	if g == nil || len(objectIDs) == 0 {
		return geom.Rect{}, false
	}

	var result geom.Rect
	found := false
	for _, id := range objectIDs {
		node, ok := g.NodesByID[id]
		if !ok || !node.HasBounds {
			continue
		}
		if !found {
			result = node.Bounds
			found = true
		} else {
			result = result.Union(node.Bounds)
		}
	}
	return result, found
}
