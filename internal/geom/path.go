package geom

import (
	"encoding/json"
	"fmt"
)

// PathCommand is a single element of a vector path. The concrete types are
// MoveTo, LineTo, QuadTo, CubicTo and ClosePath.
type PathCommand interface {
	isPathCommand()
}

// MoveTo starts a new subpath at an anchor point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathCommand() {}

// LineTo draws a straight segment to an anchor point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathCommand() {}

// QuadTo draws a quadratic Bezier curve to an anchor point.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathCommand() {}

// CubicTo draws a cubic Bezier curve to an anchor point. Control1 relates
// to the previous anchor, Control2 to this one.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathCommand() {}

// ClosePath marks the current subpath closed. It adds no point.
type ClosePath struct{}

func (ClosePath) isPathCommand() {}

// TransformCommands maps every coordinate pair of every command through m.
// ClosePath carries no coordinates and passes through unchanged.
func TransformCommands(commands []PathCommand, m Matrix2D) []PathCommand {
	out := make([]PathCommand, len(commands))
	for i, cmd := range commands {
		switch c := cmd.(type) {
		case MoveTo:
			out[i] = MoveTo{Point: m.Apply(c.Point)}
		case LineTo:
			out[i] = LineTo{Point: m.Apply(c.Point)}
		case QuadTo:
			out[i] = QuadTo{Control: m.Apply(c.Control), Point: m.Apply(c.Point)}
		case CubicTo:
			out[i] = CubicTo{
				Control1: m.Apply(c.Control1),
				Control2: m.Apply(c.Control2),
				Point:    m.Apply(c.Point),
			}
		default:
			out[i] = cmd
		}
	}
	return out
}

// TranslateCommands shifts every coordinate pair of every command by (dx, dy).
func TranslateCommands(commands []PathCommand, dx, dy float64) []PathCommand {
	return TransformCommands(commands, Translate(dx, dy))
}

// CommandBounds computes the bounding box over every coordinate pair
// appearing in any command, control points included. A path with no
// coordinates yields a single-point box at the origin rather than a box
// with infinite extents.
func CommandBounds(commands []PathCommand) Rect {
	var bounds Rect
	first := true

	expand := func(pts ...Point) {
		for _, pt := range pts {
			if first {
				bounds = Rect{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
				first = false
				continue
			}
			bounds = bounds.Expand(pt)
		}
	}

	for _, cmd := range commands {
		switch c := cmd.(type) {
		case MoveTo:
			expand(c.Point)
		case LineTo:
			expand(c.Point)
		case QuadTo:
			expand(c.Control, c.Point)
		case CubicTo:
			expand(c.Control1, c.Control2, c.Point)
		case ClosePath:
			// no point
		}
	}

	if first {
		return Rect{}
	}
	return bounds
}

// --- wire codec ---
//
// Paths travel over the document and WebSocket protocol as Canvas2D-style
// arrays: ["M", x, y], ["L", x, y], ["Q", cx, cy, x, y],
// ["C", c1x, c1y, c2x, c2y, x, y], ["Z"].

// DecodeCommands parses wire-format commands into typed path commands.
// Unknown opcodes and short arrays are skipped, matching the tolerant
// handling the canvas renderer applies.
func DecodeCommands(raw [][]json.RawMessage) []PathCommand {
	commands := make([]PathCommand, 0, len(raw))
	for _, arr := range raw {
		if len(arr) == 0 {
			continue
		}
		var op string
		if err := json.Unmarshal(arr[0], &op); err != nil {
			continue
		}

		nums := make([]float64, 0, len(arr)-1)
		for _, m := range arr[1:] {
			var v float64
			if err := json.Unmarshal(m, &v); err != nil {
				continue
			}
			nums = append(nums, v)
		}

		switch op {
		case "M":
			if len(nums) >= 2 {
				commands = append(commands, MoveTo{Point: Pt(nums[0], nums[1])})
			}
		case "L":
			if len(nums) >= 2 {
				commands = append(commands, LineTo{Point: Pt(nums[0], nums[1])})
			}
		case "Q":
			if len(nums) >= 4 {
				commands = append(commands, QuadTo{
					Control: Pt(nums[0], nums[1]),
					Point:   Pt(nums[2], nums[3]),
				})
			}
		case "C":
			if len(nums) >= 6 {
				commands = append(commands, CubicTo{
					Control1: Pt(nums[0], nums[1]),
					Control2: Pt(nums[2], nums[3]),
					Point:    Pt(nums[4], nums[5]),
				})
			}
		case "Z":
			commands = append(commands, ClosePath{})
		}
	}
	return commands
}

// EncodeCommands converts typed path commands back to the wire format.
func EncodeCommands(commands []PathCommand) [][]interface{} {
	out := make([][]interface{}, 0, len(commands))
	for _, cmd := range commands {
		switch c := cmd.(type) {
		case MoveTo:
			out = append(out, []interface{}{"M", c.Point.X, c.Point.Y})
		case LineTo:
			out = append(out, []interface{}{"L", c.Point.X, c.Point.Y})
		case QuadTo:
			out = append(out, []interface{}{"Q", c.Control.X, c.Control.Y, c.Point.X, c.Point.Y})
		case CubicTo:
			out = append(out, []interface{}{
				"C",
				c.Control1.X, c.Control1.Y,
				c.Control2.X, c.Control2.Y,
				c.Point.X, c.Point.Y,
			})
		case ClosePath:
			out = append(out, []interface{}{"Z"})
		}
	}
	return out
}

// ParseCommandsJSON decodes a raw JSON array of wire-format commands.
func ParseCommandsJSON(data json.RawMessage) ([]PathCommand, error) {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse path commands: %w", err)
	}
	return DecodeCommands(raw), nil
}
