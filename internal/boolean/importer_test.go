package boolean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

func TestImportPathEmpty(t *testing.T) {
	scope := curve.NewScope()
	assert.Nil(t, ImportPath(nil, geom.Identity(), scope))
	assert.Equal(t, 0, scope.Live())
}

func TestImportPathLines(t *testing.T) {
	scope := curve.NewScope()
	c := ImportPath([]geom.PathCommand{
		geom.MoveTo{Point: geom.Pt(0, 0)},
		geom.LineTo{Point: geom.Pt(10, 0)},
		geom.LineTo{Point: geom.Pt(10, 10)},
		geom.ClosePath{},
	}, geom.Identity(), scope)

	require.NotNil(t, c)
	assert.Equal(t, 1, scope.Live())
	require.Len(t, c.Subpaths, 1)

	sp := c.Subpaths[0]
	assert.True(t, sp.Closed)
	require.Len(t, sp.Anchors, 3)
	for _, a := range sp.Anchors {
		assert.True(t, a.HandleIn.IsZero())
		assert.True(t, a.HandleOut.IsZero())
	}
}

func TestImportPathCubicHandles(t *testing.T) {
	scope := curve.NewScope()
	c := ImportPath([]geom.PathCommand{
		geom.MoveTo{Point: geom.Pt(0, 0)},
		geom.CubicTo{Control1: geom.Pt(2, 4), Control2: geom.Pt(8, 4), Point: geom.Pt(10, 0)},
	}, geom.Identity(), scope)

	require.NotNil(t, c)
	anchors := c.Subpaths[0].Anchors
	require.Len(t, anchors, 2)

	// Handles are stored relative to their anchors.
	assert.Equal(t, geom.Pt(2, 4), anchors[0].HandleOut)
	assert.Equal(t, geom.Pt(-2, 4), anchors[1].HandleIn)
}

func TestImportPathQuadElevation(t *testing.T) {
	scope := curve.NewScope()
	c := ImportPath([]geom.PathCommand{
		geom.MoveTo{Point: geom.Pt(0, 0)},
		geom.QuadTo{Control: geom.Pt(3, 6), Point: geom.Pt(6, 0)},
	}, geom.Identity(), scope)

	require.NotNil(t, c)
	anchors := c.Subpaths[0].Anchors
	require.Len(t, anchors, 2)

	// Degree elevation is exact: cp1 = p0 + 2/3 (q - p0),
	// cp2 = p1 + 2/3 (q - p1).
	assert.InDelta(t, 2, anchors[0].HandleOut.X, 1e-9)
	assert.InDelta(t, 4, anchors[0].HandleOut.Y, 1e-9)
	assert.InDelta(t, -2, anchors[1].HandleIn.X, 1e-9)
	assert.InDelta(t, 4, anchors[1].HandleIn.Y, 1e-9)
}

func TestImportPathAppliesTransform(t *testing.T) {
	scope := curve.NewScope()
	shared := geom.Translate(100, 0).Multiply(geom.Scale(2, 2))
	c := ImportPath([]geom.PathCommand{
		geom.MoveTo{Point: geom.Pt(1, 1)},
		geom.LineTo{Point: geom.Pt(2, 2)},
	}, shared, scope)

	require.NotNil(t, c)
	anchors := c.Subpaths[0].Anchors
	assert.Equal(t, geom.Pt(102, 2), anchors[0].Point)
	assert.Equal(t, geom.Pt(104, 4), anchors[1].Point)
}

func TestImportPathQuadCommutesWithTransform(t *testing.T) {
	// Elevating then transforming equals transforming then elevating;
	// the affine map distributes over the 2/3 interpolation.
	commands := []geom.PathCommand{
		geom.MoveTo{Point: geom.Pt(1, 2)},
		geom.QuadTo{Control: geom.Pt(4, 8), Point: geom.Pt(7, 2)},
	}
	shared := geom.Translate(-3, 5).Multiply(geom.Scale(2, 0.5))

	scope := curve.NewScope()
	transformed := ImportPath(geom.TransformCommands(commands, shared), geom.Identity(), scope)
	imported := ImportPath(commands, shared, scope)

	ta := transformed.Subpaths[0].Anchors
	ia := imported.Subpaths[0].Anchors
	require.Len(t, ia, len(ta))
	for i := range ta {
		assert.InDelta(t, ta[i].HandleOut.X, ia[i].HandleOut.X, 1e-9)
		assert.InDelta(t, ta[i].HandleOut.Y, ia[i].HandleOut.Y, 1e-9)
		assert.InDelta(t, ta[i].HandleIn.X, ia[i].HandleIn.X, 1e-9)
		assert.InDelta(t, ta[i].HandleIn.Y, ia[i].HandleIn.Y, 1e-9)
	}
}

func TestImportPathMultipleSubpaths(t *testing.T) {
	scope := curve.NewScope()
	c := ImportPath([]geom.PathCommand{
		geom.MoveTo{Point: geom.Pt(0, 0)},
		geom.LineTo{Point: geom.Pt(1, 0)},
		geom.ClosePath{},
		geom.MoveTo{Point: geom.Pt(10, 10)},
		geom.LineTo{Point: geom.Pt(11, 10)},
	}, geom.Identity(), scope)

	require.NotNil(t, c)
	require.Len(t, c.Subpaths, 2)
	assert.True(t, c.Subpaths[0].Closed)
	assert.False(t, c.Subpaths[1].Closed)
}

func TestImportPathMalformedDegradesToLine(t *testing.T) {
	// A curve command with no current point repairs to a line.
	scope := curve.NewScope()
	c := ImportPath([]geom.PathCommand{
		geom.CubicTo{Control1: geom.Pt(1, 1), Control2: geom.Pt(2, 2), Point: geom.Pt(3, 3)},
	}, geom.Identity(), scope)

	require.NotNil(t, c)
	anchors := c.Subpaths[0].Anchors
	require.Len(t, anchors, 1)
	assert.Equal(t, geom.Pt(3, 3), anchors[0].Point)
	assert.True(t, anchors[0].HandleIn.IsZero())
}
