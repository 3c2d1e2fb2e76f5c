package outcome

// Gate is the debug switch that suppresses all contact handling.
// It belongs to the session, not to a level, so it survives level changes.
type Gate struct {
	disabled bool
}

// NewGate returns an enabled gate.
func NewGate() *Gate {
	return &Gate{}
}

// Enabled reports whether contacts are processed.
func (g *Gate) Enabled() bool {
	return g == nil || !g.disabled
}

// Toggle flips the gate and returns the new state.
func (g *Gate) Toggle() bool {
	g.disabled = !g.disabled
	return !g.disabled
}
