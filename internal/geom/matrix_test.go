package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTransformIdentity(t *testing.T) {
	m := FromTransform(0, 0, 1, 1, 0, 0, 0)
	p := m.Apply(Pt(3, 4))
	assert.InDelta(t, 3, p.X, 1e-9)
	assert.InDelta(t, 4, p.Y, 1e-9)
}

func TestFromTransformTranslate(t *testing.T) {
	m := FromTransform(10, 20, 1, 1, 0, 0, 0)
	p := m.Apply(Pt(1, 2))
	assert.InDelta(t, 11, p.X, 1e-9)
	assert.InDelta(t, 22, p.Y, 1e-9)
}

func TestFromTransformScaleAboutAnchor(t *testing.T) {
	// Scale 2x about anchor (5, 5): the anchor stays fixed.
	m := FromTransform(0, 0, 2, 2, 0, 5, 5)
	p := m.Apply(Pt(5, 5))
	assert.InDelta(t, 5, p.X, 1e-9)
	assert.InDelta(t, 5, p.Y, 1e-9)

	q := m.Apply(Pt(6, 5))
	assert.InDelta(t, 7, q.X, 1e-9)
}

func TestFromTransformRotate(t *testing.T) {
	// Rotate 90 degrees about the origin: (1, 0) -> (0, 1).
	m := FromTransform(0, 0, 1, 1, 90, 0, 0)
	p := m.Apply(Pt(1, 0))
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 1, p.Y, 1e-9)
}

func TestMultiplyOrder(t *testing.T) {
	// Translate then scale is not scale then translate.
	ts := Translate(10, 0).Multiply(Scale(2, 2))
	st := Scale(2, 2).Multiply(Translate(10, 0))

	p := Pt(1, 1)
	assert.Equal(t, Pt(12, 2), ts.Apply(p))
	assert.Equal(t, Pt(22, 2), st.Apply(p))
}

func TestInvertRoundTrip(t *testing.T) {
	m := FromTransform(30, -12, 2, 0.5, 45, 3, 4)
	inv := m.Invert()

	p := Pt(7, -3)
	back := inv.Apply(m.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestInvertSingular(t *testing.T) {
	m := Scale(0, 0)
	assert.Equal(t, Identity(), m.Invert())
}

func TestScaleComponents(t *testing.T) {
	m := Translate(10, 20).Multiply(Scale(2, 2))
	scaled := m.ScaleComponents(2)

	// Every entry doubles, translation included.
	p := scaled.Apply(Pt(1, 1))
	assert.InDelta(t, 24, p.X, 1e-9)
	assert.InDelta(t, 44, p.Y, 1e-9)
}
