package boolean

import (
	"github.com/shapeforge/shapeforge/backend-go/internal/document"
	"github.com/shapeforge/shapeforge/backend-go/internal/geom"
)

// SharedViewMatrix replicates the host's view transform (pan, zoom) into
// the geometry engine's view, scaling each component by the device pixel
// ratio. Shared-space coordinates agree between host and engine exactly
// when the view transform is applied once, here, at the view level;
// composing it again per object double-applies panning and zoom.
func SharedViewMatrix(view geom.Matrix2D, pixelRatio float64) geom.Matrix2D {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return view.ScaleComponents(pixelRatio)
}

// LocalToShared returns the object's full local-to-shared transform: the
// product of local matrices up the parent chain. The view transform is
// deliberately not part of this: shared space is pre-view object space.
func LocalToShared(doc *document.Document, objectID string) geom.Matrix2D {
	m := geom.Identity()
	seen := make(map[string]bool)

	cur := objectID
	for cur != "" && !seen[cur] {
		seen[cur] = true
		obj, ok := doc.Objects[cur]
		if !ok {
			break
		}
		m = localMatrix(obj.Transform).Multiply(m)
		if obj.Parent == nil {
			break
		}
		cur = *obj.Parent
	}
	return m
}

func localMatrix(t document.Transform) geom.Matrix2D {
	return geom.FromTransform(t.X, t.Y, t.SX, t.SY, t.R, t.AX, t.AY)
}
