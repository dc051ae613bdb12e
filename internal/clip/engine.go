// Package clip implements the boolean-set capability on top of polygon
// clipping. Curves are flattened at a fixed precision, clipped with the
// Vatti algorithm, and the solution is rebuilt as closed polygonal
// subpaths.
package clip

import (
	"errors"
	"fmt"

	clipper "github.com/ctessum/go.clipper"

	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// ErrClipFailed is reported when the clipping engine cannot produce a
// result for a pair of curves.
var ErrClipFailed = errors.New("clip: boolean operation failed")

const (
	// coordScale converts shared-space floats to the engine's integer
	// grid: three decimal digits of sub-unit precision.
	coordScale = 1000.0

	// flattenTolerance is the max chord distance when flattening curved
	// segments, in shared-space units.
	flattenTolerance = 0.05
)

// Engine performs boolean set operations between curves. The zero value
// is not usable; construct with NewEngine.
type Engine struct {
	op clipper.ClipType
}

// NewEngine returns an engine that computes unions.
func NewEngine() *Engine {
	return &Engine{op: clipper.CtUnion}
}

// NewEngineOp returns an engine for an arbitrary clip operation.
func NewEngineOp(op clipper.ClipType) *Engine {
	return &Engine{op: op}
}

// Combine merges curves a and b into one compound curve. The inputs are
// not modified or released; lifetime bookkeeping stays with the caller.
func (e *Engine) Combine(a, b *curve.Curve) (*curve.Curve, error) {
	if a.IsEmpty() || b.IsEmpty() {
		return nil, fmt.Errorf("%w: empty operand", ErrClipFailed)
	}

	cl := clipper.NewClipper(clipper.IoNone)
	if !cl.AddPaths(toClipperPaths(a), clipper.PtSubject, true) {
		return nil, fmt.Errorf("%w: degenerate subject", ErrClipFailed)
	}
	if !cl.AddPaths(toClipperPaths(b), clipper.PtClip, true) {
		return nil, fmt.Errorf("%w: degenerate clip", ErrClipFailed)
	}

	solution, ok := cl.Execute1(e.op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, ErrClipFailed
	}

	return fromClipperPaths(solution), nil
}

// toClipperPaths flattens every subpath to the engine's integer grid.
func toClipperPaths(c *curve.Curve) clipper.Paths {
	polylines := c.Flatten(flattenTolerance)
	paths := make(clipper.Paths, 0, len(polylines))
	for _, poly := range polylines {
		if len(poly) < 3 {
			continue
		}
		path := make(clipper.Path, len(poly))
		for i, pt := range poly {
			path[i] = &clipper.IntPoint{
				X: clipper.CInt(roundCoord(pt.X)),
				Y: clipper.CInt(roundCoord(pt.Y)),
			}
		}
		paths = append(paths, path)
	}
	return paths
}

// fromClipperPaths rebuilds a compound curve from the solution polygons.
// Every anchor has zero handles; the subpaths are closed by construction.
func fromClipperPaths(paths clipper.Paths) *curve.Curve {
	result := &curve.Curve{Subpaths: make([]curve.Subpath, 0, len(paths))}
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		anchors := make([]curve.Anchor, len(path))
		for i, ip := range path {
			anchors[i] = curve.Anchor{
				Point: geom.Pt(float64(ip.X)/coordScale, float64(ip.Y)/coordScale),
			}
		}
		result.Subpaths = append(result.Subpaths, curve.Subpath{
			Anchors: anchors,
			Closed:  true,
		})
	}
	return result
}

func roundCoord(v float64) int64 {
	if v >= 0 {
		return int64(v*coordScale + 0.5)
	}
	return int64(v*coordScale - 0.5)
}
