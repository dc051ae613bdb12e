package scene

import (
	"log/slog"

	"github.com/shapeforge/shapeforge/backend-go/internal/document"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// Build evaluates the document's object tree for the given scene into a
// render-ready graph.
func Build(doc *document.Document, sceneID string) *Graph {
	g := NewGraph()

	sc, ok := doc.Scenes[sceneID]
	if !ok {
		return g
	}
	rootObj, ok := doc.Objects[sc.Root]
	if !ok {
		return g
	}

	g.Root = buildNode(doc, &rootObj, nil, geom.Identity(), 1.0, g)
	return g
}

// buildNode recursively builds a Node from a document ObjectNode.
func buildNode(
	doc *document.Document,
	obj *document.ObjectNode,
	parent *Node,
	parentWorld geom.Matrix2D,
	parentOpacity float64,
	g *Graph,
) *Node {
	if !obj.Visible {
		return nil
	}

	t := obj.Transform
	local := geom.FromTransform(t.X, t.Y, t.SX, t.SY, t.R, t.AX, t.AY)
	world := parentWorld.Multiply(local)

	node := &Node{
		ID:             obj.ID,
		Type:           nodeType(obj.Type),
		LocalTransform: local,
		WorldTransform: world,
		Opacity:        parentOpacity * obj.Style.Opacity,
		Visible:        true,
		Parent:         parent,
		Fill:           obj.Style.Fill,
		Stroke:         obj.Style.Stroke,
		StrokeWidth:    obj.Style.StrokeWidth,
	}

	if commands, ok := shapeCommands(obj); ok {
		node.Path = commands
		if len(commands) > 0 {
			node.Bounds = geom.CommandBounds(geom.TransformCommands(commands, world))
			node.HasBounds = true
		}
	}

	g.NodesByID[obj.ID] = node

	for _, childID := range obj.Children {
		childObj, ok := doc.Objects[childID]
		if !ok {
			continue
		}
		child := buildNode(doc, &childObj, node, world, node.Opacity, g)
		if child == nil {
			continue
		}
		node.Children = append(node.Children, child)

		if child.HasBounds {
			if node.HasBounds {
				node.Bounds = node.Bounds.Union(child.Bounds)
			} else {
				node.Bounds = child.Bounds
				node.HasBounds = true
			}
		}
	}

	return node
}

func nodeType(t document.ObjectType) string {
	if t == document.ObjectTypeGroup {
		return "group"
	}
	return "shape"
}

// shapeCommands resolves an object's shape payload into path commands in
// object-local coordinates. Groups have no shape of their own.
func shapeCommands(obj *document.ObjectNode) ([]geom.PathCommand, bool) {
	switch obj.Type {
	case document.ObjectTypeShapeRect:
		d, err := document.DecodeRect(obj.Data)
		if err != nil {
			slog.Warn("bad rect payload", "object", obj.ID, "error", err)
			return nil, false
		}
		return document.RectCommands(d), true

	case document.ObjectTypeShapeEllipse:
		d, err := document.DecodeEllipse(obj.Data)
		if err != nil {
			slog.Warn("bad ellipse payload", "object", obj.ID, "error", err)
			return nil, false
		}
		return document.EllipseCommands(d.RX, d.RY), true

	case document.ObjectTypeShapePoly:
		d, err := document.DecodePoly(obj.Data)
		if err != nil {
			slog.Warn("bad poly payload", "object", obj.ID, "error", err)
			return nil, false
		}
		if len(d.Points) == 0 {
			return nil, false
		}
		return document.PolyCommands(d.Pts(), d.Closed), true

	case document.ObjectTypeVectorPath:
		commands, err := document.DecodePath(obj.Data)
		if err != nil {
			slog.Warn("bad path payload", "object", obj.ID, "error", err)
			return nil, false
		}
		return commands, true
	}

	return nil, false
}
