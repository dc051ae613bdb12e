package geom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandBoundsIncludesControls(t *testing.T) {
	commands := []PathCommand{
		MoveTo{Point: Pt(0, 0)},
		CubicTo{Control1: Pt(-5, 20), Control2: Pt(15, -8), Point: Pt(10, 10)},
	}

	bounds := CommandBounds(commands)
	assert.Equal(t, Rect{MinX: -5, MinY: -8, MaxX: 15, MaxY: 20}, bounds)
}

func TestCommandBoundsEmpty(t *testing.T) {
	assert.Equal(t, Rect{}, CommandBounds(nil))
	assert.Equal(t, Rect{}, CommandBounds([]PathCommand{ClosePath{}}))
}

func TestCommandBoundsSinglePoint(t *testing.T) {
	bounds := CommandBounds([]PathCommand{MoveTo{Point: Pt(3, 4)}})
	assert.Equal(t, Rect{MinX: 3, MinY: 4, MaxX: 3, MaxY: 4}, bounds)
	assert.Equal(t, 0.0, bounds.Width())
}

func TestTranslateCommands(t *testing.T) {
	commands := []PathCommand{
		MoveTo{Point: Pt(1, 1)},
		LineTo{Point: Pt(2, 2)},
		ClosePath{},
	}

	moved := TranslateCommands(commands, -1, 1)
	assert.Equal(t, MoveTo{Point: Pt(0, 2)}, moved[0])
	assert.Equal(t, LineTo{Point: Pt(1, 3)}, moved[1])
	assert.Equal(t, ClosePath{}, moved[2])
}

func TestParseCommandsJSON(t *testing.T) {
	data := json.RawMessage(`[["M",0,0],["L",10,0],["Q",15,5,10,10],["C",8,12,2,12,0,10],["Z"]]`)

	commands, err := ParseCommandsJSON(data)
	require.NoError(t, err)
	require.Len(t, commands, 5)

	assert.Equal(t, MoveTo{Point: Pt(0, 0)}, commands[0])
	assert.Equal(t, LineTo{Point: Pt(10, 0)}, commands[1])
	assert.Equal(t, QuadTo{Control: Pt(15, 5), Point: Pt(10, 10)}, commands[2])
	assert.Equal(t, CubicTo{Control1: Pt(8, 12), Control2: Pt(2, 12), Point: Pt(0, 10)}, commands[3])
	assert.Equal(t, ClosePath{}, commands[4])
}

func TestDecodeCommandsSkipsMalformed(t *testing.T) {
	data := json.RawMessage(`[["M",0],["X",1,2],["L",5,5]]`)

	commands, err := ParseCommandsJSON(data)
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, LineTo{Point: Pt(5, 5)}, commands[0])
}

func TestEncodeCommandsRoundTrip(t *testing.T) {
	commands := []PathCommand{
		MoveTo{Point: Pt(0, 0)},
		CubicTo{Control1: Pt(1, 2), Control2: Pt(3, 4), Point: Pt(5, 6)},
		ClosePath{},
	}

	encoded := EncodeCommands(commands)
	data, err := json.Marshal(encoded)
	require.NoError(t, err)

	decoded, err := ParseCommandsJSON(data)
	require.NoError(t, err)
	assert.Equal(t, commands, decoded)
}
