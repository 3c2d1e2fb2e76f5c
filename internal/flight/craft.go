// Package flight turns per-tick player input into forces on the craft.
//
// The package is a leaf: it knows nothing about goals, hazards or levels.
// Whoever owns the outcome of a flight locks the craft through
// SetControllable and switches the controller off through Disable.
package flight

import "github.com/vovakirdan/tui-rocket/internal/core"

// Craft is the player-controlled body.
// Rotation is in degrees, clockwise, with 0 pointing to the top of the screen.
type Craft struct {
	Position        core.Vec2
	Velocity        core.Vec2 // cells per second
	Rotation        float64   // degrees
	AngularVelocity float64   // degrees per second, from collisions

	controllable   bool
	spinSuppressed bool
}

// NewCraft creates a controllable craft at rest.
func NewCraft(pos core.Vec2) *Craft {
	return &Craft{
		Position:     pos,
		controllable: true,
	}
}

// Controllable reports whether player input may act on the craft.
func (c *Craft) Controllable() bool {
	return c.controllable
}

// SetControllable locks or unlocks player control.
func (c *Craft) SetControllable(v bool) {
	c.controllable = v
}

// Forward returns the unit vector the main engine pushes along.
func (c *Craft) Forward() core.Vec2 {
	return core.Heading(c.Rotation)
}

// SuppressSpin stops the physics integrator from applying AngularVelocity
// for the current tick. The stored angular velocity is kept.
func (c *Craft) SuppressSpin() {
	c.spinSuppressed = true
}

// SpinSuppressed reports whether manual rotation owns this tick.
func (c *Craft) SpinSuppressed() bool {
	return c.spinSuppressed
}

// ReleaseSpin lifts the suppression; called by the integrator at the end of a tick.
func (c *Craft) ReleaseSpin() {
	c.spinSuppressed = false
}
