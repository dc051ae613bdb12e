package boolean

import (
	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// ExportResult is an exported path recentered around its bounding-box
// center, plus the shared-space offset that places it back.
type ExportResult struct {
	Commands []geom.PathCommand
	OffsetX  float64
	OffsetY  float64
}

// ExportPath flattens an engine curve into host path commands, recenters
// the coordinates around the bounding-box center, and returns the path
// together with the centroid offset. The caller places the result at
// shared-space (OffsetX, OffsetY) so the shape's local origin sits at its
// own centroid, so subsequent scaling and rotation pivot around the middle
// of the shape instead of an arbitrary corner.
//
// ExportPath takes ownership of the curve and releases it in scope once
// flattened. A curve with no anchors yields nil ("no result", not an
// error). A subpath of length 1 yields a degenerate single-MoveTo path,
// which is valid output.
func ExportPath(scope *curve.Scope, c *curve.Curve) *ExportResult {
	defer scope.Release(c)

	if c.IsEmpty() {
		return nil
	}

	var commands []geom.PathCommand
	for _, sp := range c.Subpaths {
		commands = appendSubpathCommands(commands, sp)
	}
	if len(commands) == 0 {
		return nil
	}

	bounds := geom.CommandBounds(commands)
	center := bounds.Center()

	return &ExportResult{
		Commands: geom.TranslateCommands(commands, -center.X, -center.Y),
		OffsetX:  center.X,
		OffsetY:  center.Y,
	}
}

// appendSubpathCommands emits one subpath. A segment becomes a LineTo
// only when the adjoining handles on both sides are exactly zero; any
// curvature is preserved as a CubicTo.
func appendSubpathCommands(commands []geom.PathCommand, sp curve.Subpath) []geom.PathCommand {
	if len(sp.Anchors) == 0 {
		return commands
	}

	commands = append(commands, geom.MoveTo{Point: sp.Anchors[0].Point})
	for i := 1; i < len(sp.Anchors); i++ {
		commands = appendSegmentCommand(commands, sp.Anchors[i-1], sp.Anchors[i])
	}
	if sp.Closed {
		first := sp.Anchors[0]
		last := sp.Anchors[len(sp.Anchors)-1]
		// The closing segment only needs an explicit curve when it
		// carries curvature; ClosePath implies the straight edge.
		if !last.HandleOut.IsZero() || !first.HandleIn.IsZero() {
			commands = appendSegmentCommand(commands, last, first)
		}
		commands = append(commands, geom.ClosePath{})
	}
	return commands
}

func appendSegmentCommand(commands []geom.PathCommand, prev, cur curve.Anchor) []geom.PathCommand {
	if prev.HandleOut.IsZero() && cur.HandleIn.IsZero() {
		return append(commands, geom.LineTo{Point: cur.Point})
	}
	return append(commands, geom.CubicTo{
		Control1: prev.Point.Add(prev.HandleOut),
		Control2: cur.Point.Add(cur.HandleIn),
		Point:    cur.Point,
	})
}
