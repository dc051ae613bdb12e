package boolean

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/document"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// DocumentLoader fetches the latest authoritative document for a project.
type DocumentLoader func(projectID string) (*document.Document, error)

// Handler serves boolean combine previews. A preview never mutates the
// document; the client commits the result through an object.combine
// collaboration operation once the user confirms.
type Handler struct {
	loadDocument DocumentLoader
	combiner     curve.Combiner
}

func NewHandler(loadDocument DocumentLoader, combiner curve.Combiner) *Handler {
	return &Handler{loadDocument: loadDocument, combiner: combiner}
}

type previewRequest struct {
	ObjectIDs  []string    `json:"objectIds"`
	View       *[6]float64 `json:"view,omitempty"`
	PixelRatio float64     `json:"pixelRatio,omitempty"`
}

type previewResponse struct {
	Commands   [][]interface{} `json:"commands"`
	OffsetX    float64         `json:"offsetX"`
	OffsetY    float64         `json:"offsetY"`
	Style      document.Style  `json:"style"`
	EngineView []float64       `json:"engineView"`
}

// Preview handles POST /api/projects/{projectId}/combine.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	doc, err := h.loadDocument(projectID)
	if err != nil {
		slog.Error("load document for combine", "project", projectID, "error", err)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project document not found"})
		return
	}

	shape, err := CombineObjects(doc, req.ObjectIDs, h.combiner)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedShape):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrCombineFailed):
			slog.Warn("combine failed", "project", projectID, "error", err)
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "combine failed"})
		default:
			slog.Error("combine error", "project", projectID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return
	}
	if shape == nil {
		// Fewer than two usable shapes: no result, not an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	view := geom.Identity()
	if req.View != nil {
		view = geom.Matrix2D(*req.View)
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Commands:   geom.EncodeCommands(shape.Commands),
		OffsetX:    shape.OffsetX,
		OffsetY:    shape.OffsetY,
		Style:      shape.Style,
		EngineView: SharedViewMatrix(view, req.PixelRatio).ToSlice(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
