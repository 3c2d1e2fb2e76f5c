package outcome

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rocket/internal/schedule"
)

// DefaultLevelLoadDelay is the pause between an outcome and the level change.
const DefaultLevelLoadDelay = 2 * time.Second

// Craft is the part of the craft the machine writes.
type Craft interface {
	SetControllable(bool)
}

// Controls is the flight controller as seen by the machine.
type Controls interface {
	Disable()
}

// Feedback plays outcome cues. Calls are fire-and-forget.
type Feedback interface {
	StopEngineLoop()
	PlaySuccessCue()
	PlayFailureCue()
	PlaySuccessVisual()
	PlayFailureVisual()
}

// Sequencer changes levels. It is owned outside the machine.
type Sequencer interface {
	AdvanceLevel()
	RestartLevel()
}

// Options wires a Machine to its collaborators.
// Craft, Controls and Levels are required.
type Options struct {
	Craft    Craft
	Controls Controls
	Feedback Feedback
	Levels   Sequencer
	Gate     *Gate
	Clock    *schedule.Scheduler // Owned by the machine, cleared on Teardown
	Delay    time.Duration
	Logger   *log.Logger
}

// Machine owns the single terminal transition of one level.
type Machine struct {
	state    State
	craft    Craft
	controls Controls
	feedback Feedback
	levels   Sequencer
	gate     *Gate
	clock    *schedule.Scheduler
	delay    time.Duration
	logger   *log.Logger

	pending *schedule.Task
}

// New creates a machine in the Flying state.
func New(opts Options) *Machine {
	m := &Machine{
		state:    Flying,
		craft:    opts.Craft,
		controls: opts.Controls,
		feedback: opts.Feedback,
		levels:   opts.Levels,
		gate:     opts.Gate,
		clock:    opts.Clock,
		delay:    opts.Delay,
		logger:   opts.Logger,
	}
	if m.feedback == nil {
		m.feedback = silentFeedback{}
	}
	if m.gate == nil {
		m.gate = NewGate()
	}
	if m.clock == nil {
		m.clock = schedule.New()
	}
	if m.delay <= 0 {
		m.delay = DefaultLevelLoadDelay
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

// State returns the current outcome state.
func (m *Machine) State() State {
	return m.state
}

// Gate returns the collision gate the machine consults.
func (m *Machine) Gate() *Gate {
	return m.gate
}

// Pending reports whether a level change is scheduled.
func (m *Machine) Pending() bool {
	return m.pending.Pending()
}

// HandleContact classifies a contact and, on the first goal or hazard,
// starts the matching sequence. Contacts in a terminal state or with the
// gate disabled are ignored.
func (m *Machine) HandleContact(c Contact) {
	if m.state.Terminal() || !m.gate.Enabled() {
		return
	}

	switch c.Classification {
	case Benign:
		m.logger.Info("everything is looking good", "collider", c.Collider)
	case Goal:
		m.enter(Succeeding, c)
	default:
		m.enter(Failing, c)
	}
}

// ToggleCollisions flips the collision gate. Always available.
func (m *Machine) ToggleCollisions() bool {
	enabled := m.gate.Toggle()
	m.logger.Debug("collision gate toggled", "enabled", enabled)
	return enabled
}

// SkipLevel advances immediately without passing through Succeeding.
func (m *Machine) SkipLevel() {
	m.logger.Debug("skipping level", "state", m.state)
	m.levels.AdvanceLevel()
}

// Advance moves the machine's clock; a due level change fires here.
func (m *Machine) Advance(dt time.Duration) {
	m.clock.Advance(dt)
}

// Teardown cancels a pending level change and anything else left on the
// level's clock. Call when the level is destroyed.
func (m *Machine) Teardown() {
	if m.pending.Pending() {
		m.logger.Debug("cancelling pending level change", "state", m.state)
	}
	m.clock.CancelAll()
	m.pending = nil
}

func (m *Machine) enter(s State, c Contact) {
	m.state = s
	m.craft.SetControllable(false)
	m.controls.Disable()

	next := m.levels.RestartLevel
	if s == Succeeding {
		next = m.levels.AdvanceLevel
	}
	m.pending = m.clock.After(m.delay, next)

	m.logger.Info("flight resolved", "state", s, "collider", c.Collider, "classification", c.Classification)

	m.play(m.feedback.StopEngineLoop)
	if s == Succeeding {
		m.play(m.feedback.PlaySuccessCue)
		m.play(m.feedback.PlaySuccessVisual)
	} else {
		m.play(m.feedback.PlayFailureCue)
		m.play(m.feedback.PlayFailureVisual)
	}
}

// play runs one feedback call; a failing sink never blocks the outcome.
func (m *Machine) play(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("feedback failed", "error", r)
		}
	}()
	fn()
}

type silentFeedback struct{}

func (silentFeedback) StopEngineLoop()    {}
func (silentFeedback) PlaySuccessCue()    {}
func (silentFeedback) PlayFailureCue()    {}
func (silentFeedback) PlaySuccessVisual() {}
func (silentFeedback) PlayFailureVisual() {}
