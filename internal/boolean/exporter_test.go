package boolean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

func TestExportPathEmpty(t *testing.T) {
	scope := curve.NewScope()
	c := scope.Track(&curve.Curve{})

	assert.Nil(t, ExportPath(scope, c))
	assert.Equal(t, 0, scope.Live(), "export owns and releases its input")
}

func TestExportPathRecentersSquare(t *testing.T) {
	scope := curve.NewScope()
	c := scope.Track(&curve.Curve{Subpaths: []curve.Subpath{{
		Anchors: []curve.Anchor{
			{Point: geom.Pt(10, 10)},
			{Point: geom.Pt(20, 10)},
			{Point: geom.Pt(20, 20)},
			{Point: geom.Pt(10, 20)},
		},
		Closed: true,
	}}})

	result := ExportPath(scope, c)
	require.NotNil(t, result)
	assert.Equal(t, 0, scope.Live())

	// The offset is the bounding-box center; the emitted path is
	// recentered so its own bounds center on the origin.
	assert.InDelta(t, 15, result.OffsetX, 1e-9)
	assert.InDelta(t, 15, result.OffsetY, 1e-9)

	bounds := geom.CommandBounds(result.Commands)
	assert.InDelta(t, -5, bounds.MinX, 1e-9)
	assert.InDelta(t, 5, bounds.MaxX, 1e-9)
	assert.InDelta(t, -5, bounds.MinY, 1e-9)
	assert.InDelta(t, 5, bounds.MaxY, 1e-9)

	// Zero-handle anchors round-trip as line segments.
	require.Len(t, result.Commands, 5)
	assert.IsType(t, geom.MoveTo{}, result.Commands[0])
	assert.IsType(t, geom.LineTo{}, result.Commands[1])
	assert.IsType(t, geom.ClosePath{}, result.Commands[4])
}

func TestExportPathCurvedSegment(t *testing.T) {
	scope := curve.NewScope()
	c := scope.Track(&curve.Curve{Subpaths: []curve.Subpath{{
		Anchors: []curve.Anchor{
			{Point: geom.Pt(0, 0), HandleOut: geom.Pt(0, 5)},
			{Point: geom.Pt(10, 0), HandleIn: geom.Pt(0, 5)},
		},
	}}})

	result := ExportPath(scope, c)
	require.NotNil(t, result)
	require.Len(t, result.Commands, 2)
	assert.IsType(t, geom.CubicTo{}, result.Commands[1])
}

func TestExportPathLineNeedsBothHandlesZero(t *testing.T) {
	// One nonzero handle on either side forces a cubic.
	scope := curve.NewScope()
	c := scope.Track(&curve.Curve{Subpaths: []curve.Subpath{{
		Anchors: []curve.Anchor{
			{Point: geom.Pt(0, 0)},
			{Point: geom.Pt(10, 0), HandleIn: geom.Pt(-1e-9, 0)},
		},
	}}})

	result := ExportPath(scope, c)
	require.NotNil(t, result)
	assert.IsType(t, geom.CubicTo{}, result.Commands[1])
}

func TestExportPathClosedCurvedSeamEmitsExplicitSegment(t *testing.T) {
	scope := curve.NewScope()
	c := scope.Track(&curve.Curve{Subpaths: []curve.Subpath{{
		Anchors: []curve.Anchor{
			{Point: geom.Pt(0, 0), HandleIn: geom.Pt(-2, 0)},
			{Point: geom.Pt(10, 0), HandleOut: geom.Pt(2, 0)},
		},
		Closed: true,
	}}})

	result := ExportPath(scope, c)
	require.NotNil(t, result)

	// MoveTo, segment, explicit closing cubic, ClosePath.
	require.Len(t, result.Commands, 4)
	assert.IsType(t, geom.CubicTo{}, result.Commands[2])
	assert.IsType(t, geom.ClosePath{}, result.Commands[3])
}

func TestExportPathSingleAnchor(t *testing.T) {
	// A lone MoveTo is valid output, centered at the origin.
	scope := curve.NewScope()
	c := scope.Track(&curve.Curve{Subpaths: []curve.Subpath{{
		Anchors: []curve.Anchor{{Point: geom.Pt(42, 17)}},
	}}})

	result := ExportPath(scope, c)
	require.NotNil(t, result)
	require.Len(t, result.Commands, 1)
	assert.Equal(t, geom.MoveTo{Point: geom.Pt(0, 0)}, result.Commands[0])
	assert.InDelta(t, 42, result.OffsetX, 1e-9)
	assert.InDelta(t, 17, result.OffsetY, 1e-9)
}
