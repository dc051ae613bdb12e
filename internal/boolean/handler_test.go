package boolean

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapeforge/shapeforge/backend-go/internal/clip"
	"github.com/shapeforge/shapeforge/backend-go/internal/document"
)

func previewServer(doc *document.Document) http.Handler {
	h := NewHandler(func(projectID string) (*document.Document, error) {
		return doc, nil
	}, clip.NewEngine())

	r := mux.NewRouter()
	r.HandleFunc("/api/projects/{projectId}/combine", h.Preview).Methods("POST")
	return r
}

func TestPreviewCombine(t *testing.T) {
	doc := testDoc(
		rectNode("a", "root", 0, 0, 10, 10),
		rectNode("b", "root", 5, 5, 10, 10),
	)
	srv := previewServer(doc)

	body := `{"objectIds":["a","b"],"view":[1,0,0,1,0,0],"pixelRatio":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj_test/combine", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Commands   [][]interface{} `json:"commands"`
		OffsetX    float64         `json:"offsetX"`
		OffsetY    float64         `json:"offsetY"`
		EngineView []float64       `json:"engineView"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Commands)
	assert.InDelta(t, 7.5, resp.OffsetX, 1e-3)
	assert.InDelta(t, 7.5, resp.OffsetY, 1e-3)

	// The identity view at pixel ratio 2 replicates as a x2 engine view.
	require.Len(t, resp.EngineView, 6)
	assert.InDelta(t, 2, resp.EngineView[0], 1e-9)
	assert.InDelta(t, 2, resp.EngineView[3], 1e-9)
}

func TestPreviewTooFewObjects(t *testing.T) {
	doc := testDoc(rectNode("a", "root", 0, 0, 10, 10))
	srv := previewServer(doc)

	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj_test/combine",
		strings.NewReader(`{"objectIds":["a"]}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPreviewUnsupportedShape(t *testing.T) {
	doc := testDoc(
		rectNode("a", "root", 0, 0, 10, 10),
		rectNode("b", "root", 5, 5, 10, 10),
	)
	doc.Objects["g"] = document.ObjectNode{ID: "g", Type: document.ObjectTypeGroup, Parent: strPtr("root"), Visible: true}
	srv := previewServer(doc)

	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj_test/combine",
		strings.NewReader(`{"objectIds":["a","g","b"]}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPreviewBadBody(t *testing.T) {
	srv := previewServer(testDoc())

	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj_test/combine",
		strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
