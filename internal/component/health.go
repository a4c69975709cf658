package component

// Health is a bounded hit-point counter.
type Health struct {
	Current, Max int
}

// NewHealth returns a full Health of max points.
func NewHealth(max int) Health { return Health{Current: max, Max: max} }

// Damage subtracts n and reports whether the owner died. Damage at or above
// the remaining points kills and leaves Current at zero.
func (h *Health) Damage(n int) (killed bool) {
	if n <= 0 {
		return h.Current <= 0
	}
	if n >= h.Current {
		h.Current = 0
		return true
	}
	h.Current -= n
	return false
}

// Heal adds n, capped at Max.
func (h *Health) Heal(n int) {
	h.Current = min(h.Current+n, h.Max)
}

// Dead reports whether no points remain.
func (h Health) Dead() bool { return h.Current <= 0 }
