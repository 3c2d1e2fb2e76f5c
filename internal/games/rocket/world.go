package rocket

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/flight"
	"github.com/vovakirdan/tui-rocket/internal/levels"
	"github.com/vovakirdan/tui-rocket/internal/outcome"
)

// Physics tunes the world integrator.
type Physics struct {
	Gravity        float64 // cells per second squared, pulls toward the bottom of the screen
	MaxSpeed       float64 // cells per second
	AngularDamping float64 // fraction of spin lost per second
	ImpactSpin     float64 // degrees per second of spin per cell per second of sideways speed at impact
}

const (
	edge      = 1e-3 // keeps a craft resting against a wall inside its own cell
	maxStride = 0.5  // cells moved per sub-step
)

// World moves the craft through a level and reports collider contacts.
// The craft is a point collider occupying one cell.
type World struct {
	level   *levels.Level
	craft   *flight.Craft
	physics Physics
	elapsed float64

	touching map[colliderKey]bool
}

// colliderKey identifies one collider: a map tile or an oscillator.
type colliderKey struct {
	osc  int // oscillator index + 1, zero for tiles
	x, y int
}

// contact is a collider the craft pressed against this tick.
type contact struct {
	key colliderKey
	tag string
}

// NewWorld places the craft in the level.
func NewWorld(level *levels.Level, craft *flight.Craft, physics Physics) *World {
	return &World{
		level:    level,
		craft:    craft,
		physics:  physics,
		touching: make(map[colliderKey]bool),
	}
}

// Elapsed returns the simulated seconds since the level loaded.
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// Level returns the level being simulated.
func (w *World) Level() *levels.Level {
	return w.level
}

// Oscillators returns the current rectangles of the moving obstacles.
func (w *World) Oscillators() []core.Rect {
	rects := make([]core.Rect, len(w.level.Oscillators))
	for i, o := range w.level.Oscillators {
		rects[i] = o.RectAt(w.elapsed)
	}
	return rects
}

// Step integrates one tick and calls report for every collider the craft
// started touching. Colliders the craft keeps resting on are not reported
// again. Reports arrive in row-major tile order, then oscillators.
func (w *World) Step(dt float64, report func(outcome.Contact)) {
	w.elapsed += dt
	c := w.craft

	c.Velocity.Y += w.physics.Gravity * dt
	if speed := c.Velocity.Length(); w.physics.MaxSpeed > 0 && speed > w.physics.MaxSpeed {
		c.Velocity = c.Velocity.Scale(w.physics.MaxSpeed / speed)
	}

	w.spin(dt)

	// Sub-step so the craft never skips over a cell at low tick rates
	steps := int(math.Ceil(c.Velocity.Length() * dt / maxStride))
	if steps < 1 {
		steps = 1
	}
	sub := dt / float64(steps)

	var hits []contact
	for i := 0; i < steps; i++ {
		hits = append(hits, w.moveX(sub)...)
		hits = append(hits, w.moveY(sub)...)
	}
	hits = append(hits, w.overlaps()...)

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i].key, hits[j].key
		if a.osc != b.osc {
			return a.osc < b.osc
		}
		if a.y != b.y {
			return a.y < b.y
		}
		return a.x < b.x
	})

	current := make(map[colliderKey]bool, len(hits))
	for _, h := range hits {
		if current[h.key] {
			continue
		}
		current[h.key] = true
		if w.touching[h.key] || report == nil {
			continue
		}
		report(outcome.Contact{
			Classification: outcome.Classify(h.tag),
			Collider:       h.describe(),
		})
	}
	w.touching = current
}

// spin applies collision spin unless manual rotation owns this tick.
func (w *World) spin(dt float64) {
	c := w.craft
	if !c.SpinSuppressed() {
		c.Rotation += c.AngularVelocity * dt
		c.AngularVelocity *= math.Max(0, 1-w.physics.AngularDamping*dt)
	}
	c.Rotation = core.NormalizeDegrees(c.Rotation)
	c.ReleaseSpin()
}

func (w *World) moveX(dt float64) []contact {
	c := w.craft
	next := c.Position.X + c.Velocity.X*dt
	_, cy := c.Position.Cell()
	nx := int(math.Floor(next))

	if hit, ok := w.blocking(nx, cy); ok {
		cx, _ := c.Position.Cell()
		if nx > cx {
			c.Position.X = float64(cx+1) - edge
		} else if nx < cx {
			c.Position.X = float64(cx) + edge
		}
		w.impact(hit, -c.Velocity.Y)
		c.Velocity.X = 0
		return []contact{hit}
	}
	c.Position.X = next
	return nil
}

func (w *World) moveY(dt float64) []contact {
	c := w.craft
	next := c.Position.Y + c.Velocity.Y*dt
	cx, _ := c.Position.Cell()
	ny := int(math.Floor(next))

	if hit, ok := w.blocking(cx, ny); ok {
		_, cy := c.Position.Cell()
		if ny > cy {
			c.Position.Y = float64(cy+1) - edge
		} else if ny < cy {
			c.Position.Y = float64(cy) + edge
		}
		w.impact(hit, c.Velocity.X)
		c.Velocity.Y = 0
		return []contact{hit}
	}
	c.Position.Y = next
	return nil
}

// impact adds spin from a new, glancing hit. Resting contacts add nothing.
func (w *World) impact(hit contact, tangential float64) {
	if w.touching[hit.key] {
		return
	}
	w.craft.AngularVelocity += w.physics.ImpactSpin * tangential
}

// overlaps reports oscillators that moved onto the craft.
func (w *World) overlaps() []contact {
	x, y := w.craft.Position.Cell()
	var hits []contact
	for i, o := range w.level.Oscillators {
		if o.RectAt(w.elapsed).Contains(x, y) {
			hits = append(hits, contact{key: colliderKey{osc: i + 1}, tag: o.Tag})
		}
	}
	return hits
}

// blocking returns the collider occupying a cell, if any.
// Map tiles take precedence over oscillators.
func (w *World) blocking(x, y int) (contact, bool) {
	if t := w.level.TileAt(x, y); t.Solid() {
		return contact{key: colliderKey{x: x, y: y}, tag: t.Tag}, true
	}
	for i, o := range w.level.Oscillators {
		if o.RectAt(w.elapsed).Contains(x, y) {
			return contact{key: colliderKey{osc: i + 1}, tag: o.Tag}, true
		}
	}
	return contact{}, false
}

func (c contact) describe() string {
	if c.key.osc > 0 {
		return fmt.Sprintf("%s oscillator %d", c.tag, c.key.osc-1)
	}
	return fmt.Sprintf("%s at %d,%d", c.tag, c.key.x, c.key.y)
}
