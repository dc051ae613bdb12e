package boolean

import (
	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// ImportPath converts one shape's path commands, mapped through the
// shared transform, into one engine curve. Each MoveTo after the first
// starts a new subpath within the same compound curve. The returned curve
// is tracked in scope and owned by the caller.
//
// Returns nil for an empty command sequence.
//
// A curve or line command with no established current point is a
// malformed path; it is repaired locally by degrading to a line to the
// target point rather than failing the operation.
func ImportPath(commands []geom.PathCommand, shared geom.Matrix2D, scope *curve.Scope) *curve.Curve {
	if len(commands) == 0 {
		return nil
	}

	c := &curve.Curve{}
	var sp *curve.Subpath

	// last returns the previous anchor of the open subpath, or nil.
	last := func() *curve.Anchor {
		if sp == nil || len(sp.Anchors) == 0 {
			return nil
		}
		return &sp.Anchors[len(sp.Anchors)-1]
	}

	startSubpath := func() {
		c.Subpaths = append(c.Subpaths, curve.Subpath{})
		sp = &c.Subpaths[len(c.Subpaths)-1]
	}

	appendAnchor := func(a curve.Anchor) {
		if sp == nil {
			startSubpath()
		}
		sp.Anchors = append(sp.Anchors, a)
	}

	for _, cmd := range commands {
		switch e := cmd.(type) {
		case geom.MoveTo:
			startSubpath()
			appendAnchor(curve.Anchor{Point: shared.Apply(e.Point)})

		case geom.LineTo:
			appendAnchor(curve.Anchor{Point: shared.Apply(e.Point)})

		case geom.CubicTo:
			cp1 := shared.Apply(e.Control1)
			cp2 := shared.Apply(e.Control2)
			end := shared.Apply(e.Point)

			prev := last()
			if prev == nil {
				appendAnchor(curve.Anchor{Point: end})
				continue
			}
			prev.HandleOut = cp1.Sub(prev.Point)
			appendAnchor(curve.Anchor{Point: end, HandleIn: cp2.Sub(end)})

		case geom.QuadTo:
			q := shared.Apply(e.Control)
			end := shared.Apply(e.Point)

			prev := last()
			if prev == nil {
				appendAnchor(curve.Anchor{Point: end})
				continue
			}

			// Exact degree elevation: the quadratic control point maps
			// to two cubic control points at 2/3 of the way from each
			// endpoint.
			cp1 := prev.Point.Add(q.Sub(prev.Point).Scale(2.0 / 3.0))
			cp2 := end.Add(q.Sub(end).Scale(2.0 / 3.0))

			prev.HandleOut = cp1.Sub(prev.Point)
			appendAnchor(curve.Anchor{Point: end, HandleIn: cp2.Sub(end)})

		case geom.ClosePath:
			if sp != nil {
				sp.Closed = true
			}
		}
	}

	return scope.Track(c)
}
