package boolean

import "errors"

var (
	// ErrUnsupportedShape is reported when a selected object cannot be
	// converted to a path (groups, images, unknown shape payloads).
	ErrUnsupportedShape = errors.New("boolean: unsupported shape")

	// ErrCombineFailed is reported when the geometry engine fails for
	// a pair of curves. The whole operation aborts; a partial result is
	// never returned.
	ErrCombineFailed = errors.New("boolean: combine failed")
)
