package component

// Energy is the player's ability resource. Every change is clamped to
// [0, Max].
type Energy struct {
	Current, Max int
}

// Change applies delta and clamps the result.
func (e *Energy) Change(delta int) {
	e.Current = max(0, min(e.Current+delta, e.Max))
}

// Has reports whether at least n energy is available.
func (e Energy) Has(n int) bool { return e.Current >= n }
