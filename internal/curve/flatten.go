package curve

import "github.com/shapeforge/shapeforge/backend-go/internal/geom"

// Flatten converts every subpath of the curve to a polyline. Curved
// segments are subdivided until the control points sit within tolerance
// of the chord. Each returned polyline starts at the subpath's first
// anchor; closed subpaths do not repeat the start point.
func (c *Curve) Flatten(tolerance float64) [][]geom.Point {
	if tolerance <= 0 {
		tolerance = 0.1
	}

	var out [][]geom.Point
	for _, sp := range c.Subpaths {
		if len(sp.Anchors) == 0 {
			continue
		}

		pts := []geom.Point{sp.Anchors[0].Point}
		for i := 1; i < len(sp.Anchors); i++ {
			pts = appendSegment(pts, sp.Anchors[i-1], sp.Anchors[i], tolerance)
		}
		if sp.Closed && len(sp.Anchors) > 1 {
			pts = appendSegment(pts, sp.Anchors[len(sp.Anchors)-1], sp.Anchors[0], tolerance)
			// drop the duplicated start point
			if len(pts) > 1 {
				pts = pts[:len(pts)-1]
			}
		}
		out = append(out, pts)
	}
	return out
}

// appendSegment flattens the segment between two anchors onto pts,
// excluding the segment's start point.
func appendSegment(pts []geom.Point, from, to Anchor, tolerance float64) []geom.Point {
	if from.HandleOut.IsZero() && to.HandleIn.IsZero() {
		return append(pts, to.Point)
	}

	c1 := from.Point.Add(from.HandleOut)
	c2 := to.Point.Add(to.HandleIn)
	return flattenCubic(pts, from.Point, c1, c2, to.Point, tolerance*tolerance, 0)
}

// flattenCubic recursively subdivides a cubic Bezier until flat enough,
// appending everything after p0.
func flattenCubic(pts []geom.Point, p0, p1, p2, p3 geom.Point, tolSq float64, depth int) []geom.Point {
	const maxDepth = 24

	if depth >= maxDepth || cubicFlatnessSq(p0, p1, p2, p3) <= tolSq*16 {
		return append(pts, p3)
	}

	// de Casteljau split at t = 0.5
	ab := p0.Lerp(p1, 0.5)
	bc := p1.Lerp(p2, 0.5)
	cd := p2.Lerp(p3, 0.5)
	abc := ab.Lerp(bc, 0.5)
	bcd := bc.Lerp(cd, 0.5)
	mid := abc.Lerp(bcd, 0.5)

	pts = flattenCubic(pts, p0, ab, abc, mid, tolSq, depth+1)
	return flattenCubic(pts, mid, bcd, cd, p3, tolSq, depth+1)
}

// cubicFlatnessSq returns the squared max distance metric of the control
// points from the chord.
func cubicFlatnessSq(p0, p1, p2, p3 geom.Point) float64 {
	ux := 3.0*p1.X - 2.0*p0.X - p3.X
	uy := 3.0*p1.Y - 2.0*p0.Y - p3.Y
	vx := 3.0*p2.X - p0.X - 2.0*p3.X
	vy := 3.0*p2.Y - p0.Y - 2.0*p3.Y

	a := ux*ux + uy*uy
	b := vx*vx + vy*vy
	if a > b {
		return a
	}
	return b
}
