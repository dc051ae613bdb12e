package boolean

import (
	"fmt"

	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
)

// Union folds an ordered list of engine curves into one combined curve
// via repeated pairwise combines. The fold owns every input: each operand
// is released as soon as it is consumed, so an N-way combine retains one
// live intermediate instead of N.
//
// An empty input returns nil. A single-element input returns that element
// unreleased, with no combine call made.
//
// If the engine fails for any pair, the fold aborts: the current
// accumulator and every not-yet-consumed input are released and the error
// is propagated. A partial accumulator is never returned; it is not a
// safe approximation of the union of all inputs.
func Union(scope *curve.Scope, combiner curve.Combiner, curves []*curve.Curve) (*curve.Curve, error) {
	if len(curves) == 0 {
		return nil, nil
	}
	if len(curves) == 1 {
		return curves[0], nil
	}

	acc := curves[0]
	for i, next := range curves[1:] {
		merged, err := combiner.Combine(acc, next)
		if err != nil {
			scope.Release(acc)
			for _, rest := range curves[i+1:] {
				scope.Release(rest)
			}
			return nil, fmt.Errorf("%w: pair %d: %v", ErrCombineFailed, i, err)
		}

		scope.Release(acc)
		scope.Release(next)
		acc = scope.Track(merged)
	}

	return acc, nil
}
