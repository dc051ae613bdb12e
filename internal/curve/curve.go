// Package curve holds the geometry-engine path model: curves made of
// anchor points with tangent handles, grouped into subpaths, plus the
// scope that tracks engine-side curve lifetimes for one operation.
package curve

import "github.com/shapeforge/shapeforge/backend-go/internal/geom"

// Anchor is a point on a curve together with its tangent handles.
// HandleIn and HandleOut are vectors relative to Point; a zero vector
// means no curvature on that side.
type Anchor struct {
	Point     geom.Point
	HandleIn  geom.Point
	HandleOut geom.Point
}

// Subpath is an ordered anchor sequence with a closed flag.
type Subpath struct {
	Anchors []Anchor
	Closed  bool
}

// Curve is one or more subpaths. A curve with multiple subpaths is
// compound (outer boundary plus holes, or a grouped boolean result).
type Curve struct {
	Subpaths []Subpath
}

// IsEmpty reports whether the curve has no anchors at all.
func (c *Curve) IsEmpty() bool {
	if c == nil {
		return true
	}
	for _, sp := range c.Subpaths {
		if len(sp.Anchors) > 0 {
			return false
		}
	}
	return true
}

// Combiner is the delegated boolean-set capability: it merges two closed
// curve sets into one. Implementations report geometry errors instead of
// returning partial results.
type Combiner interface {
	Combine(a, b *Curve) (*Curve, error)
}
