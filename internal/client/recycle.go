package client

// RecycleTracker derives the transient "just recycled" cue from the
// pilesToRecycleCount sequence. Purely visual; no effect on legality.
type RecycleTracker struct {
	prev int
}

// Observe feeds the tracker a new count and reports whether the pulse
// should fire: the previous value was ≥2 and the new one is 0.
func (rt *RecycleTracker) Observe(count int) bool {
	pulse := rt.prev >= 2 && count == 0
	rt.prev = count
	return pulse
}
