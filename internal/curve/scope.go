package curve

// Scope tracks the engine-side curves allocated during one boolean
// operation. Each curve is owned by whichever component last produced it;
// owners release curves as soon as they are consumed so an N-way combine
// retains O(1) live curves instead of O(N).
//
// A Scope is not safe for concurrent use. Callers that run combines
// concurrently use one Scope per call.
type Scope struct {
	live map[*Curve]struct{}
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{live: make(map[*Curve]struct{})}
}

// Track registers a curve as live in this scope and returns it.
func (s *Scope) Track(c *Curve) *Curve {
	if c != nil {
		s.live[c] = struct{}{}
	}
	return c
}

// Release frees a curve. Releasing nil or an already-released curve is a
// no-op; it reports whether the curve was live.
func (s *Scope) Release(c *Curve) bool {
	if c == nil {
		return false
	}
	if _, ok := s.live[c]; !ok {
		return false
	}
	delete(s.live, c)
	return true
}

// Live returns the number of curves currently tracked.
func (s *Scope) Live() int {
	return len(s.live)
}

// Close releases every remaining curve. Returns how many were still live.
func (s *Scope) Close() int {
	n := len(s.live)
	s.live = make(map[*Curve]struct{})
	return n
}
