package boolean

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shapeforge/shapeforge/backend-go/internal/document"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

func TestSharedViewMatrixScalesByPixelRatio(t *testing.T) {
	view := geom.Translate(100, 50).Multiply(geom.Scale(2, 2))
	m := SharedViewMatrix(view, 2)

	p := m.Apply(geom.Pt(1, 0))
	assert.InDelta(t, 204, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)
}

func TestSharedViewMatrixInvalidRatio(t *testing.T) {
	view := geom.Scale(3, 3)
	assert.Equal(t, view, SharedViewMatrix(view, 0))
	assert.Equal(t, view, SharedViewMatrix(view, -1))
}

func strPtr(s string) *string { return &s }

func chainDoc() *document.Document {
	return &document.Document{
		Objects: map[string]document.ObjectNode{
			"root": {
				ID:        "root",
				Type:      document.ObjectTypeGroup,
				Transform: document.Transform{X: 100, Y: 0, SX: 1, SY: 1},
				Children:  []string{"group"},
			},
			"group": {
				ID:        "group",
				Type:      document.ObjectTypeGroup,
				Parent:    strPtr("root"),
				Transform: document.Transform{X: 0, Y: 0, SX: 2, SY: 2},
				Children:  []string{"leaf"},
			},
			"leaf": {
				ID:        "leaf",
				Type:      document.ObjectTypeShapeRect,
				Parent:    strPtr("group"),
				Transform: document.Transform{X: 5, Y: 5, SX: 1, SY: 1},
			},
		},
	}
}

func TestLocalToSharedComposesParentChain(t *testing.T) {
	m := LocalToShared(chainDoc(), "leaf")

	// leaf local (0,0) -> leaf offset (5,5) -> group scale x2 (10,10)
	// -> root offset (110,10).
	p := m.Apply(geom.Pt(0, 0))
	assert.InDelta(t, 110, p.X, 1e-9)
	assert.InDelta(t, 10, p.Y, 1e-9)
}

func TestLocalToSharedExcludesView(t *testing.T) {
	// The chain product is pure object space; the same document yields
	// the same matrix no matter what the camera does.
	doc := chainDoc()
	assert.Equal(t, LocalToShared(doc, "leaf"), LocalToShared(doc, "leaf"))

	root := LocalToShared(doc, "root")
	p := root.Apply(geom.Pt(0, 0))
	assert.InDelta(t, 100, p.X, 1e-9)
}

func TestLocalToSharedUnknownObject(t *testing.T) {
	m := LocalToShared(chainDoc(), "missing")
	assert.Equal(t, geom.Identity(), m)
}

func TestLocalToSharedCycleTerminates(t *testing.T) {
	doc := &document.Document{
		Objects: map[string]document.ObjectNode{
			"a": {ID: "a", Parent: strPtr("b"), Transform: document.Transform{SX: 1, SY: 1, X: 1}},
			"b": {ID: "b", Parent: strPtr("a"), Transform: document.Transform{SX: 1, SY: 1, Y: 1}},
		},
	}

	// Must not hang; both links applied once.
	m := LocalToShared(doc, "a")
	p := m.Apply(geom.Pt(0, 0))
	assert.InDelta(t, 1, p.X, 1e-9)
	assert.InDelta(t, 1, p.Y, 1e-9)
}
