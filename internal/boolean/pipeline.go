package boolean

import (
	"fmt"

	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/document"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// CombinedShape is the outcome of a boolean combine: exported commands
// recentered around the shape's own centroid, the shared-space placement
// offset, and the style copied from the first input shape.
type CombinedShape struct {
	Commands []geom.PathCommand
	OffsetX  float64
	OffsetY  float64
	Style    document.Style
}

// CombineObjects runs the full pipeline over the selected document
// objects: normalize each shape to path commands, import through its
// local-to-shared transform into an engine curve, fold the curves with
// the combiner, and export the result.
//
// Fewer than two usable shapes is a no-op returning (nil, nil); the UI
// treats it as "nothing to combine". An object that cannot be converted
// to a path aborts with ErrUnsupportedShape; silently dropping part of a
// selection would union the wrong set.
func CombineObjects(doc *document.Document, objectIDs []string, combiner curve.Combiner) (*CombinedShape, error) {
	if len(objectIDs) < 2 {
		return nil, nil
	}

	scope := curve.NewScope()
	defer scope.Close()

	var curves []*curve.Curve
	var style document.Style
	styleSet := false

	for _, id := range objectIDs {
		obj, ok := doc.Objects[id]
		if !ok {
			return nil, fmt.Errorf("%w: object %s not found", ErrUnsupportedShape, id)
		}

		prim, err := primitiveForObject(obj)
		if err != nil {
			return nil, err
		}

		commands, err := Normalize(prim)
		if err != nil {
			return nil, err
		}

		c := ImportPath(commands, LocalToShared(doc, id), scope)
		if c == nil {
			// A shape with no commands contributes nothing.
			continue
		}
		curves = append(curves, c)

		if !styleSet {
			style = obj.Style
			styleSet = true
		}
	}

	if len(curves) < 2 {
		return nil, nil
	}

	combined, err := Union(scope, combiner, curves)
	if err != nil {
		return nil, err
	}
	if combined == nil {
		return nil, nil
	}

	exported := ExportPath(scope, combined)
	if exported == nil {
		return nil, nil
	}

	return &CombinedShape{
		Commands: exported.Commands,
		OffsetX:  exported.OffsetX,
		OffsetY:  exported.OffsetY,
		Style:    style,
	}, nil
}

// primitiveForObject maps a document object onto a normalizer primitive.
func primitiveForObject(obj document.ObjectNode) (Primitive, error) {
	switch obj.Type {
	case document.ObjectTypeShapeRect:
		d, err := document.DecodeRect(obj.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
		}
		return RectPrimitive{
			Width:   d.Width,
			Height:  d.Height,
			OriginX: Origin(d.OriginX),
			OriginY: Origin(d.OriginY),
		}, nil

	case document.ObjectTypeShapePoly:
		d, err := document.DecodePoly(obj.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
		}
		pts := make([]geom.Point, len(d.Points))
		for i, p := range d.Points {
			pts[i] = geom.Pt(p[0], p[1])
		}
		return PolygonPrimitive{Points: pts, Closed: d.Closed}, nil

	case document.ObjectTypeShapeEllipse:
		d, err := document.DecodeEllipse(obj.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
		}
		return PathPrimitive{Commands: document.EllipseCommands(d.RX, d.RY)}, nil

	case document.ObjectTypeVectorPath:
		commands, err := document.DecodePath(obj.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
		}
		return PathPrimitive{Commands: commands}, nil

	default:
		return nil, fmt.Errorf("%w: object %s has type %s", ErrUnsupportedShape, obj.ID, obj.Type)
	}
}

// ApplyToDocument commits a combined shape: a new VectorPath object is
// created at the first input's draw-order position with an
// identity-scaled translation transform at the centroid offset, and the
// input objects are removed.
func ApplyToDocument(doc *document.Document, objectIDs []string, newID string, shape *CombinedShape) error {
	if len(objectIDs) == 0 {
		return fmt.Errorf("apply combine: no input objects")
	}

	first, ok := doc.Objects[objectIDs[0]]
	if !ok {
		return fmt.Errorf("apply combine: object %s not found", objectIDs[0])
	}
	if first.Parent == nil {
		return fmt.Errorf("apply combine: object %s has no parent", objectIDs[0])
	}
	parentID := *first.Parent

	parent, ok := doc.Objects[parentID]
	if !ok {
		return fmt.Errorf("apply combine: parent %s not found", parentID)
	}

	data, err := document.EncodePath(shape.Commands)
	if err != nil {
		return fmt.Errorf("apply combine: %w", err)
	}

	doc.Objects[newID] = document.ObjectNode{
		ID:        newID,
		Type:      document.ObjectTypeVectorPath,
		Parent:    &parentID,
		Children:  []string{},
		Transform: document.Transform{X: shape.OffsetX, Y: shape.OffsetY, SX: 1, SY: 1},
		Style:     shape.Style,
		Visible:   true,
		Data:      data,
	}

	removed := make(map[string]bool, len(objectIDs))
	for _, id := range objectIDs {
		removed[id] = true
	}

	// Replace the first input in draw order; drop the rest.
	children := make([]string, 0, len(parent.Children))
	inserted := false
	for _, childID := range parent.Children {
		if childID == objectIDs[0] {
			children = append(children, newID)
			inserted = true
			continue
		}
		if removed[childID] {
			continue
		}
		children = append(children, childID)
	}
	if !inserted {
		children = append(children, newID)
	}
	parent.Children = children
	doc.Objects[parentID] = parent

	// Inputs nested under other parents still need unlinking there.
	for _, id := range objectIDs {
		obj, ok := doc.Objects[id]
		if ok && obj.Parent != nil && *obj.Parent != parentID {
			if p, ok := doc.Objects[*obj.Parent]; ok {
				kept := p.Children[:0]
				for _, childID := range p.Children {
					if !removed[childID] {
						kept = append(kept, childID)
					}
				}
				p.Children = kept
				doc.Objects[*obj.Parent] = p
			}
		}
		delete(doc.Objects, id)
	}

	return nil
}
