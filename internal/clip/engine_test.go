package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

func square(x, y, size float64) *curve.Curve {
	return &curve.Curve{Subpaths: []curve.Subpath{{
		Anchors: []curve.Anchor{
			{Point: geom.Pt(x, y)},
			{Point: geom.Pt(x+size, y)},
			{Point: geom.Pt(x+size, y+size)},
			{Point: geom.Pt(x, y+size)},
		},
		Closed: true,
	}}}
}

func curveBounds(c *curve.Curve) geom.Rect {
	var r geom.Rect
	first := true
	for _, sp := range c.Subpaths {
		for _, a := range sp.Anchors {
			if first {
				r = geom.Rect{MinX: a.Point.X, MinY: a.Point.Y, MaxX: a.Point.X, MaxY: a.Point.Y}
				first = false
				continue
			}
			r = r.Expand(a.Point)
		}
	}
	return r
}

func TestUnionOverlappingSquares(t *testing.T) {
	e := NewEngine()

	merged, err := e.Combine(square(0, 0, 10), square(5, 5, 10))
	require.NoError(t, err)
	require.Len(t, merged.Subpaths, 1, "overlapping squares union to one contour")
	assert.True(t, merged.Subpaths[0].Closed)

	bounds := curveBounds(merged)
	assert.InDelta(t, 0, bounds.MinX, 1e-3)
	assert.InDelta(t, 0, bounds.MinY, 1e-3)
	assert.InDelta(t, 15, bounds.MaxX, 1e-3)
	assert.InDelta(t, 15, bounds.MaxY, 1e-3)
}

func TestUnionDisjointSquares(t *testing.T) {
	e := NewEngine()

	merged, err := e.Combine(square(0, 0, 10), square(100, 100, 10))
	require.NoError(t, err)
	assert.Len(t, merged.Subpaths, 2, "disjoint shapes stay separate contours")
	for _, sp := range merged.Subpaths {
		assert.True(t, sp.Closed)
	}
}

func TestUnionContainedSquare(t *testing.T) {
	e := NewEngine()

	merged, err := e.Combine(square(0, 0, 20), square(5, 5, 5))
	require.NoError(t, err)
	require.Len(t, merged.Subpaths, 1, "a fully contained shape is absorbed")

	bounds := curveBounds(merged)
	assert.InDelta(t, 20, bounds.MaxX, 1e-3)
	assert.InDelta(t, 20, bounds.MaxY, 1e-3)
}

func TestCombineEmptyOperand(t *testing.T) {
	e := NewEngine()

	_, err := e.Combine(&curve.Curve{}, square(0, 0, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClipFailed)

	_, err = e.Combine(square(0, 0, 10), &curve.Curve{})
	assert.ErrorIs(t, err, ErrClipFailed)
}

func TestCombineResultAnchorsHaveZeroHandles(t *testing.T) {
	e := NewEngine()

	merged, err := e.Combine(square(0, 0, 10), square(5, 0, 10))
	require.NoError(t, err)
	for _, sp := range merged.Subpaths {
		for _, a := range sp.Anchors {
			assert.True(t, a.HandleIn.IsZero())
			assert.True(t, a.HandleOut.IsZero())
		}
	}
}
