package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeTrackRelease(t *testing.T) {
	s := NewScope()
	c := s.Track(&Curve{})

	assert.Equal(t, 1, s.Live())
	assert.True(t, s.Release(c))
	assert.Equal(t, 0, s.Live())
}

func TestScopeDoubleReleaseIsNoop(t *testing.T) {
	s := NewScope()
	c := s.Track(&Curve{})

	assert.True(t, s.Release(c))
	assert.False(t, s.Release(c))
	assert.False(t, s.Release(nil))
	assert.Equal(t, 0, s.Live())
}

func TestScopeReleaseUntracked(t *testing.T) {
	s := NewScope()
	assert.False(t, s.Release(&Curve{}))
}

func TestScopeClose(t *testing.T) {
	s := NewScope()
	s.Track(&Curve{})
	s.Track(&Curve{})

	assert.Equal(t, 2, s.Close())
	assert.Equal(t, 0, s.Live())
	assert.Equal(t, 0, s.Close())
}

func TestScopeTrackNil(t *testing.T) {
	s := NewScope()
	assert.Nil(t, s.Track(nil))
	assert.Equal(t, 0, s.Live())
}
