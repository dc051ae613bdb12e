package document

import (
	"encoding/json"
	"fmt"

	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

type Document struct {
	Project Project               `json:"project"`
	Scenes  map[string]Scene      `json:"scenes"`
	Objects map[string]ObjectNode `json:"objects"`
}

type Project struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Version   int      `json:"version"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Scenes    []string `json:"scenes"`
}

type Scene struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
	Root       string `json:"root"`
}

type ObjectType string

const (
	ObjectTypeGroup        ObjectType = "Group"
	ObjectTypeShapeRect    ObjectType = "ShapeRect"
	ObjectTypeShapeEllipse ObjectType = "ShapeEllipse"
	ObjectTypeShapePoly    ObjectType = "ShapePoly"
	ObjectTypeVectorPath   ObjectType = "VectorPath"
)

type Transform struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	SX float64 `json:"sx"`
	SY float64 `json:"sy"`
	R  float64 `json:"r"`
	AX float64 `json:"ax"`
	AY float64 `json:"ay"`
}

type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

type ObjectNode struct {
	ID        string          `json:"id"`
	Type      ObjectType      `json:"type"`
	Parent    *string         `json:"parent"`
	Children  []string        `json:"children"`
	Transform Transform       `json:"transform"`
	Style     Style           `json:"style"`
	Visible   bool            `json:"visible"`
	Locked    bool            `json:"locked"`
	Data      json.RawMessage `json:"data"`
}

// RectData is the shape payload for ShapeRect objects. Origin keywords
// (start/center/end per axis) choose where the local origin sits; empty
// means start.
type RectData struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OriginX string  `json:"originX,omitempty"`
	OriginY string  `json:"originY,omitempty"`
}

// EllipseData is the shape payload for ShapeEllipse objects.
type EllipseData struct {
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

// PolyData is the shape payload for ShapePoly objects: a point list,
// closed (polygon) or open (polyline).
type PolyData struct {
	Points [][2]float64 `json:"points"`
	Closed bool         `json:"closed"`
}

// PathData is the shape payload for VectorPath objects: Canvas2D-style
// command arrays.
type PathData struct {
	Commands [][]json.RawMessage `json:"commands"`
}

// DecodeRect parses a ShapeRect payload.
func DecodeRect(data json.RawMessage) (RectData, error) {
	var d RectData
	if err := json.Unmarshal(data, &d); err != nil {
		return RectData{}, fmt.Errorf("decode rect data: %w", err)
	}
	return d, nil
}

// DecodeEllipse parses a ShapeEllipse payload.
func DecodeEllipse(data json.RawMessage) (EllipseData, error) {
	var d EllipseData
	if err := json.Unmarshal(data, &d); err != nil {
		return EllipseData{}, fmt.Errorf("decode ellipse data: %w", err)
	}
	return d, nil
}

// DecodePoly parses a ShapePoly payload.
func DecodePoly(data json.RawMessage) (PolyData, error) {
	var d PolyData
	if err := json.Unmarshal(data, &d); err != nil {
		return PolyData{}, fmt.Errorf("decode poly data: %w", err)
	}
	return d, nil
}

// DecodePath parses a VectorPath payload into typed commands.
func DecodePath(data json.RawMessage) ([]geom.PathCommand, error) {
	var d PathData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode path data: %w", err)
	}
	return geom.DecodeCommands(d.Commands), nil
}

// EncodePath builds a VectorPath payload from typed commands.
func EncodePath(commands []geom.PathCommand) (json.RawMessage, error) {
	payload := struct {
		Commands [][]interface{} `json:"commands"`
	}{Commands: geom.EncodeCommands(commands)}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode path data: %w", err)
	}
	return data, nil
}

// RectCommands produces the closed rectangle path for a rect payload,
// honoring the anchor origin keywords.
func RectCommands(d RectData) []geom.PathCommand {
	ox := originOffset(d.OriginX, d.Width)
	oy := originOffset(d.OriginY, d.Height)

	return []geom.PathCommand{
		geom.MoveTo{Point: geom.Pt(-ox, -oy)},
		geom.LineTo{Point: geom.Pt(d.Width-ox, -oy)},
		geom.LineTo{Point: geom.Pt(d.Width-ox, d.Height-oy)},
		geom.LineTo{Point: geom.Pt(-ox, d.Height-oy)},
		geom.ClosePath{},
	}
}

func originOffset(keyword string, size float64) float64 {
	switch keyword {
	case "center":
		return size / 2
	case "end":
		return size
	default: // "start" and unset
		return 0
	}
}

// PolyCommands produces the path for a point list, closed only for
// polygons. An empty list yields no commands.
func PolyCommands(points []geom.Point, closed bool) []geom.PathCommand {
	if len(points) == 0 {
		return nil
	}

	commands := make([]geom.PathCommand, 0, len(points)+1)
	commands = append(commands, geom.MoveTo{Point: points[0]})
	for _, p := range points[1:] {
		commands = append(commands, geom.LineTo{Point: p})
	}
	if closed {
		commands = append(commands, geom.ClosePath{})
	}
	return commands
}

// Pts converts the payload's coordinate pairs to points.
func (d PolyData) Pts() []geom.Point {
	pts := make([]geom.Point, len(d.Points))
	for i, p := range d.Points {
		pts[i] = geom.Pt(p[0], p[1])
	}
	return pts
}

// EllipseCommands approximates an ellipse with four cubic Bezier curves
// centered on the local origin.
func EllipseCommands(rx, ry float64) []geom.PathCommand {
	// k = 4 * (sqrt(2) - 1) / 3
	const k = 0.5522847498307936
	kx, ky := rx*k, ry*k

	return []geom.PathCommand{
		geom.MoveTo{Point: geom.Pt(rx, 0)},
		geom.CubicTo{Control1: geom.Pt(rx, ky), Control2: geom.Pt(kx, ry), Point: geom.Pt(0, ry)},
		geom.CubicTo{Control1: geom.Pt(-kx, ry), Control2: geom.Pt(-rx, ky), Point: geom.Pt(-rx, 0)},
		geom.CubicTo{Control1: geom.Pt(-rx, -ky), Control2: geom.Pt(-kx, -ry), Point: geom.Pt(0, -ry)},
		geom.CubicTo{Control1: geom.Pt(kx, -ry), Control2: geom.Pt(rx, -ky), Point: geom.Pt(rx, 0)},
		geom.ClosePath{},
	}
}

// NewEmptyDocument creates an empty document for a new project.
func NewEmptyDocument(projectID, projectName, sceneID, rootID string) *Document {
	return &Document{
		Project: Project{
			ID:      projectID,
			Name:    projectName,
			Version: 1,
			Scenes:  []string{sceneID},
		},
		Scenes: map[string]Scene{
			sceneID: {
				ID:         sceneID,
				Name:       "Scene 1",
				Width:      1280,
				Height:     720,
				Background: "#1a1a2e",
				Root:       rootID,
			},
		},
		Objects: map[string]ObjectNode{
			rootID: {
				ID:        rootID,
				Type:      ObjectTypeGroup,
				Parent:    nil,
				Children:  []string{},
				Transform: Transform{SX: 1, SY: 1},
				Style:     Style{Opacity: 1},
				Visible:   true,
				Data:      json.RawMessage(`{}`),
			},
		},
	}
}
