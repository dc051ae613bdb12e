package boolean

import (
	"fmt"

	"github.com/shapeforge/shapeforge/backend-go/internal/document"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// Origin selects where a primitive's local origin sits along one axis.
type Origin string

const (
	OriginStart  Origin = "start"
	OriginCenter Origin = "center"
	OriginEnd    Origin = "end"
)

// Primitive is a host shape the normalizer can promote to path commands.
// The concrete types are RectPrimitive, PolygonPrimitive and
// PathPrimitive.
type Primitive interface {
	isPrimitive()
}

// RectPrimitive is an axis-aligned rectangle with an anchor origin.
type RectPrimitive struct {
	Width   float64
	Height  float64
	OriginX Origin
	OriginY Origin
}

func (RectPrimitive) isPrimitive() {}

// PolygonPrimitive is a point list, closed (polygon) or open (polyline).
type PolygonPrimitive struct {
	Points []geom.Point
	Closed bool
}

func (PolygonPrimitive) isPrimitive() {}

// PathPrimitive is a shape that already carries path commands.
type PathPrimitive struct {
	Commands []geom.PathCommand
}

func (PathPrimitive) isPrimitive() {}

// Normalize converts a primitive into path commands in object-local
// coordinates. Unknown primitive types are rejected with
// ErrUnsupportedShape; whether to skip or abort is the caller's call.
func Normalize(p Primitive) ([]geom.PathCommand, error) {
	switch prim := p.(type) {
	case RectPrimitive:
		return normalizeRect(prim), nil
	case PolygonPrimitive:
		return normalizePolygon(prim), nil
	case PathPrimitive:
		return prim.Commands, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, p)
	}
}

func normalizeRect(r RectPrimitive) []geom.PathCommand {
	return document.RectCommands(document.RectData{
		Width:   r.Width,
		Height:  r.Height,
		OriginX: string(r.OriginX),
		OriginY: string(r.OriginY),
	})
}

func normalizePolygon(p PolygonPrimitive) []geom.PathCommand {
	return document.PolyCommands(p.Points, p.Closed)
}
