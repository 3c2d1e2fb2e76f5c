package flight

// Side identifies which attitude thruster is firing.
type Side int

const (
	SideNone  Side = iota
	SideLeft       // Left thruster, pushes the nose clockwise
	SideRight      // Right thruster, pushes the nose counter-clockwise
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Effects receives engine feedback. Calls are fire-and-forget.
type Effects interface {
	PlayEngineLoop()
	StopEngineLoop()
	DirectionalEffect(side Side)
}

// Input is one tick of player intent.
type Input struct {
	Thrust   bool
	Rotation float64 // [-1, 1]; negative turns counter-clockwise
}

// Settings tunes the controller.
type Settings struct {
	ThrustStrength   float64 // cells per second squared
	RotationStrength float64 // degrees per second
}

// Controller applies input to a craft once per tick.
type Controller struct {
	settings Settings
	effects  Effects
	enabled  bool

	engineOn bool
	side     Side
}

// NewController creates an enabled controller. A nil Effects is allowed.
func NewController(s Settings, fx Effects) *Controller {
	if fx == nil {
		fx = noEffects{}
	}
	return &Controller{
		settings: s,
		effects:  fx,
		enabled:  true,
	}
}

// Enabled reports whether Tick has any effect.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Disable switches the controller off and silences the engines.
func (c *Controller) Disable() {
	c.enabled = false
	c.stopEffects()
}

// Side returns the attitude thruster currently signalled as active.
func (c *Controller) Side() Side {
	return c.side
}

// EngineRunning reports whether the main engine is signalled as running.
func (c *Controller) EngineRunning() bool {
	return c.engineOn
}

// Tick applies one step of input to the craft. dt is in seconds.
func (c *Controller) Tick(craft *Craft, in Input, dt float64) {
	if !c.enabled || !craft.Controllable() {
		c.stopEffects()
		return
	}

	c.thrust(craft, in.Thrust, dt)
	c.rotate(craft, in.Rotation, dt)
}

func (c *Controller) thrust(craft *Craft, active bool, dt float64) {
	if !active {
		c.setEngine(false)
		return
	}

	craft.Velocity = craft.Velocity.Add(craft.Forward().Scale(c.settings.ThrustStrength * dt))
	c.setEngine(true)
}

func (c *Controller) rotate(craft *Craft, axis float64, dt float64) {
	switch {
	case axis < 0:
		c.applyRotation(craft, -c.settings.RotationStrength*dt)
		c.setSide(SideRight)
	case axis > 0:
		c.applyRotation(craft, c.settings.RotationStrength*dt)
		c.setSide(SideLeft)
	default:
		c.setSide(SideNone)
	}
}

// applyRotation turns the craft directly. Physics spin is held off for the
// rest of this tick so the two never fight.
func (c *Controller) applyRotation(craft *Craft, deg float64) {
	craft.SuppressSpin()
	craft.Rotation += deg
}

func (c *Controller) setEngine(on bool) {
	if on == c.engineOn {
		return
	}
	c.engineOn = on
	if on {
		c.effects.PlayEngineLoop()
	} else {
		c.effects.StopEngineLoop()
	}
}

// setSide switches attitude thrusters, always stopping the old one first.
func (c *Controller) setSide(s Side) {
	if s == c.side {
		return
	}
	if c.side != SideNone {
		c.effects.DirectionalEffect(SideNone)
	}
	c.side = s
	if s != SideNone {
		c.effects.DirectionalEffect(s)
	}
}

func (c *Controller) stopEffects() {
	c.setEngine(false)
	c.setSide(SideNone)
}

type noEffects struct{}

func (noEffects) PlayEngineLoop()        {}
func (noEffects) StopEngineLoop()        {}
func (noEffects) DirectionalEffect(Side) {}
