package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapeforge/shapeforge/backend-go/internal/clip"
	"github.com/shapeforge/shapeforge/backend-go/internal/document"
)

func strPtr(s string) *string { return &s }

func rectNode(id, parent string, x, y, w, h float64) document.ObjectNode {
	return document.ObjectNode{
		ID:        id,
		Type:      document.ObjectTypeShapeRect,
		Parent:    strPtr(parent),
		Transform: document.Transform{X: x, Y: y, SX: 1, SY: 1},
		Style:     document.Style{Fill: "#123456", Opacity: 1},
		Visible:   true,
		Data:      json.RawMessage(fmt.Sprintf(`{"width":%g,"height":%g}`, w, h)),
	}
}

func newState(nodes ...document.ObjectNode) *DocumentState {
	root := document.ObjectNode{
		ID:        "root",
		Type:      document.ObjectTypeGroup,
		Transform: document.Transform{SX: 1, SY: 1},
		Style:     document.Style{Opacity: 1},
		Visible:   true,
	}
	objects := map[string]document.ObjectNode{}
	for _, n := range nodes {
		root.Children = append(root.Children, n.ID)
		objects[n.ID] = n
	}
	objects["root"] = root

	doc := &document.Document{
		Project: document.Project{ID: "proj_test", Name: "Test", Scenes: []string{"scene1"}},
		Scenes:  map[string]document.Scene{"scene1": {ID: "scene1", Name: "Scene 1", Width: 1280, Height: 720, Root: "root"}},
		Objects: objects,
	}
	return NewDocumentState(doc, clip.NewEngine())
}

func TestApplyTransform(t *testing.T) {
	ds := newState(rectNode("a", "root", 0, 0, 10, 10))

	_, seq, err := ds.ApplyOperation(Operation{
		ID:        "op1",
		Type:      "object.transform",
		ObjectID:  "a",
		Transform: json.RawMessage(`{"x":42,"r":90}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	obj := ds.GetDocument().Objects["a"]
	assert.Equal(t, 42.0, obj.Transform.X)
	assert.Equal(t, 90.0, obj.Transform.R)
	assert.Equal(t, 1.0, obj.Transform.SX, "untouched fields keep their values")
}

func TestApplyStyle(t *testing.T) {
	ds := newState(rectNode("a", "root", 0, 0, 10, 10))

	_, _, err := ds.ApplyOperation(Operation{
		Type:     "object.style",
		ObjectID: "a",
		Style:    json.RawMessage(`{"fill":"#00ff00","strokeWidth":3}`),
	})
	require.NoError(t, err)

	obj := ds.GetDocument().Objects["a"]
	assert.Equal(t, "#00ff00", obj.Style.Fill)
	assert.Equal(t, 3.0, obj.Style.StrokeWidth)
}

func TestApplyCreateAndDelete(t *testing.T) {
	ds := newState(rectNode("a", "root", 0, 0, 10, 10))

	newObj := rectNode("b", "root", 20, 0, 5, 5)
	objJSON, _ := json.Marshal(newObj)

	_, _, err := ds.ApplyOperation(Operation{
		Type:     "object.create",
		Object:   objJSON,
		ParentID: "root",
	})
	require.NoError(t, err)

	doc := ds.GetDocument()
	assert.Contains(t, doc.Objects, "b")
	assert.Equal(t, []string{"a", "b"}, doc.Objects["root"].Children)

	_, _, err = ds.ApplyOperation(Operation{Type: "object.delete", ObjectID: "b"})
	require.NoError(t, err)
	assert.NotContains(t, ds.GetDocument().Objects, "b")
	assert.Equal(t, []string{"a"}, ds.GetDocument().Objects["root"].Children)
}

func TestApplyDeleteUnknownObject(t *testing.T) {
	ds := newState()
	_, _, err := ds.ApplyOperation(Operation{Type: "object.delete", ObjectID: "nope"})
	assert.Error(t, err)
}

func TestApplyUnknownType(t *testing.T) {
	ds := newState()
	_, _, err := ds.ApplyOperation(Operation{Type: "object.frobnicate"})
	assert.Error(t, err)
}

func TestApplyCombine(t *testing.T) {
	ds := newState(
		rectNode("a", "root", 0, 0, 10, 10),
		rectNode("b", "root", 5, 5, 10, 10),
	)

	applied, seq, err := ds.ApplyOperation(Operation{
		ID:          "op1",
		Type:        "object.combine",
		ObjectIDs:   []string{"a", "b"},
		NewObjectID: "merged",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	doc := ds.GetDocument()
	assert.NotContains(t, doc.Objects, "a")
	assert.NotContains(t, doc.Objects, "b")

	merged, ok := doc.Objects["merged"]
	require.True(t, ok)
	assert.Equal(t, document.ObjectTypeVectorPath, merged.Type)
	assert.InDelta(t, 7.5, merged.Transform.X, 1e-3)
	assert.InDelta(t, 7.5, merged.Transform.Y, 1e-3)
	assert.Equal(t, "#123456", merged.Style.Fill)
	assert.Equal(t, []string{"merged"}, doc.Objects["root"].Children)

	// The applied op carries the merged object for broadcast.
	require.NotEmpty(t, applied.Object)
	var obj document.ObjectNode
	require.NoError(t, json.Unmarshal(applied.Object, &obj))
	assert.Equal(t, "merged", obj.ID)
}

func TestApplyCombineGeneratesID(t *testing.T) {
	ds := newState(
		rectNode("a", "root", 0, 0, 10, 10),
		rectNode("b", "root", 5, 5, 10, 10),
	)

	applied, _, err := ds.ApplyOperation(Operation{Type: "object.combine", ObjectIDs: []string{"a", "b"}})
	require.NoError(t, err)

	require.NotEmpty(t, applied.NewObjectID)
	assert.Contains(t, ds.GetDocument().Objects, applied.NewObjectID)
}

func TestApplyCombineTooFewObjects(t *testing.T) {
	ds := newState(rectNode("a", "root", 0, 0, 10, 10))

	_, _, err := ds.ApplyOperation(Operation{Type: "object.combine", ObjectIDs: []string{"a"}})
	assert.Error(t, err)
	assert.Contains(t, ds.GetDocument().Objects, "a", "failed combine leaves the document untouched")
}

func TestApplyCombineFailureKeepsSeq(t *testing.T) {
	ds := newState(rectNode("a", "root", 0, 0, 10, 10))

	_, _, err := ds.ApplyOperation(Operation{Type: "object.combine", ObjectIDs: []string{"a", "missing"}})
	require.Error(t, err)

	_, seq, err := ds.ApplyOperation(Operation{
		Type:      "object.transform",
		ObjectID:  "a",
		Transform: json.RawMessage(`{"x":1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq, "rejected operations do not consume sequence numbers")
}

func TestApplySceneUpdate(t *testing.T) {
	ds := newState()

	_, _, err := ds.ApplyOperation(Operation{
		Type:    "scene.update",
		SceneID: "scene1",
		Changes: json.RawMessage(`{"name":"Renamed","width":1920}`),
	})
	require.NoError(t, err)

	scene := ds.GetDocument().Scenes["scene1"]
	assert.Equal(t, "Renamed", scene.Name)
	assert.Equal(t, 1920, scene.Width)
	assert.Equal(t, 720, scene.Height)
}

func TestApplyProjectRename(t *testing.T) {
	ds := newState()

	_, _, err := ds.ApplyOperation(Operation{Type: "project.rename", Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", ds.GetDocument().Project.Name)
}

func TestApplyReparent(t *testing.T) {
	group := document.ObjectNode{
		ID:        "g",
		Type:      document.ObjectTypeGroup,
		Parent:    strPtr("root"),
		Transform: document.Transform{SX: 1, SY: 1},
		Style:     document.Style{Opacity: 1},
		Visible:   true,
	}
	ds := newState(rectNode("a", "root", 0, 0, 10, 10), group)

	_, _, err := ds.ApplyOperation(Operation{
		Type:        "object.reparent",
		ObjectID:    "a",
		NewParentID: "g",
		NewIndex:    0,
	})
	require.NoError(t, err)

	doc := ds.GetDocument()
	assert.Equal(t, []string{"g"}, doc.Objects["root"].Children)
	assert.Equal(t, []string{"a"}, doc.Objects["g"].Children)
	assert.Equal(t, "g", *doc.Objects["a"].Parent)
}

func TestApplyVisibilityAndLocked(t *testing.T) {
	ds := newState(rectNode("a", "root", 0, 0, 10, 10))

	hidden := false
	_, _, err := ds.ApplyOperation(Operation{Type: "object.visibility", ObjectID: "a", Visible: &hidden})
	require.NoError(t, err)
	assert.False(t, ds.GetDocument().Objects["a"].Visible)

	locked := true
	_, _, err = ds.ApplyOperation(Operation{Type: "object.locked", ObjectID: "a", Locked: &locked})
	require.NoError(t, err)
	assert.True(t, ds.GetDocument().Objects["a"].Locked)
}

func TestApplyOperationConcurrentReturnsOwnOp(t *testing.T) {
	ds := newState(rectNode("a", "root", 0, 0, 10, 10))

	const workers = 16
	seqs := make([]int64, workers)
	ids := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("op%d", i)
			applied, seq, err := ds.ApplyOperation(Operation{
				ID:        id,
				Type:      "object.transform",
				ObjectID:  "a",
				Transform: json.RawMessage(fmt.Sprintf(`{"x":%d}`, i)),
			})
			require.NoError(t, err)
			ids[i] = applied.ID
			seqs[i] = seq
			assert.Equal(t, id, applied.ID, "ack must carry the submitter's own op")
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, workers)
	for i := 0; i < workers; i++ {
		assert.Equal(t, fmt.Sprintf("op%d", i), ids[i])
		assert.False(t, seen[seqs[i]], "server sequences must be unique")
		seen[seqs[i]] = true
	}
}
