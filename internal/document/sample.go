package document

import (
	"encoding/json"
	"time"

	"github.com/shapeforge/shapeforge/backend-go/internal/typeid"
)

// NewSampleDocument builds the demo document loaded into new playground
// sessions: two overlapping rectangles, a polygon and an ellipse, laid
// out so the combine tool has something to chew on.
func NewSampleDocument(projectID string) *Document {
	now := time.Now().UTC().Format(time.RFC3339)

	sceneID := typeid.NewSceneID()
	rootID := typeid.NewObjectID()
	rectAID := typeid.NewObjectID()
	rectBID := typeid.NewObjectID()
	starID := typeid.NewObjectID()
	dotID := typeid.NewObjectID()

	rootIDPtr := &rootID

	return &Document{
		Project: Project{
			ID:        projectID,
			Name:      "Untitled",
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
			Scenes:    []string{sceneID},
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
				Children:  []string{rectAID, rectBID, starID, dotID},
				Transform: Transform{SX: 1, SY: 1},
				Style:     Style{Opacity: 1},
				Visible:   true,
				Data:      json.RawMessage(`{}`),
			},
			rectAID: {
				ID:        rectAID,
				Type:      ObjectTypeShapeRect,
				Parent:    rootIDPtr,
				Children:  []string{},
				Transform: Transform{X: 300, Y: 200, SX: 1, SY: 1},
				Style:     Style{Fill: "#e94560", Stroke: "#000000", StrokeWidth: 2, Opacity: 1},
				Visible:   true,
				Data:      json.RawMessage(`{"width": 200, "height": 150}`),
			},
			rectBID: {
				ID:        rectBID,
				Type:      ObjectTypeShapeRect,
				Parent:    rootIDPtr,
				Children:  []string{},
				Transform: Transform{X: 400, Y: 280, SX: 1, SY: 1},
				Style:     Style{Fill: "#f5a623", Stroke: "#c78400", StrokeWidth: 2, Opacity: 1},
				Visible:   true,
				Data:      json.RawMessage(`{"width": 200, "height": 150}`),
			},
			starID: {
				ID:        starID,
				Type:      ObjectTypeShapePoly,
				Parent:    rootIDPtr,
				Children:  []string{},
				Transform: Transform{X: 800, Y: 250, SX: 1, SY: 1},
				Style:     Style{Fill: "#53d769", Stroke: "#2d6a4f", StrokeWidth: 2, Opacity: 1},
				Visible:   true,
				Data:      json.RawMessage(`{"points": [[0, -80], [24, -24], [80, -24], [36, 12], [48, 72], [0, 36], [-48, 72], [-36, 12], [-80, -24], [-24, -24]], "closed": true}`),
			},
			dotID: {
				ID:        dotID,
				Type:      ObjectTypeShapeEllipse,
				Parent:    rootIDPtr,
				Children:  []string{},
				Transform: Transform{X: 640, Y: 450, SX: 1, SY: 1},
				Style:     Style{Fill: "#0f3460", Stroke: "#16213e", StrokeWidth: 2, Opacity: 1},
				Visible:   true,
				Data:      json.RawMessage(`{"rx": 90, "ry": 60}`),
			},
		},
	}
}
