// Package rocket implements a lunar-lander style game.
// The player flies a rocket from its launch pad to a finish pad, dodging
// walls and moving obstacles. Touching anything but a pad crashes the
// rocket and restarts the level; landing on the finish pad advances the
// campaign.
package rocket

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rocket/internal/config"
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/flight"
	"github.com/vovakirdan/tui-rocket/internal/levels"
	"github.com/vovakirdan/tui-rocket/internal/outcome"
	"github.com/vovakirdan/tui-rocket/internal/registry"
	"github.com/vovakirdan/tui-rocket/internal/schedule"
)

// ID is the registry identifier of the game.
const ID = "rocket"

// loadRequest is a level change waiting for the end of the tick.
type loadRequest int

const (
	loadNone loadRequest = iota
	loadAdvance
	loadRestart
)

// Options configures a Game. Zero values fall back to the embedded defaults.
type Options struct {
	Config     *config.RocketConfig
	Levels     []*levels.Level
	StartLevel int
	Logger     *log.Logger
}

// Game ties the flight controller, the outcome machine and the world together.
type Game struct {
	settings config.RocketConfig
	campaign []*levels.Level
	start    int
	logger   *log.Logger
	runtime  core.RuntimeConfig

	// Session state, survives level changes
	seq    *levels.Sequence
	gate   *outcome.Gate
	fx     *feedback
	score  int
	paused bool

	// Level state, rebuilt on every load
	craft      *flight.Craft
	controller *flight.Controller
	machine    *outcome.Machine
	world      *World
	ticks      int
	request    loadRequest
	events     []core.Event
}

// New creates a game with the embedded campaign and default settings.
func New() *Game {
	g, err := NewWithOptions(Options{})
	if err != nil {
		// Embedded levels are validated by tests
		panic(err)
	}
	return g
}

// NewWithOptions creates a game with custom settings or levels.
func NewWithOptions(opts Options) (*Game, error) {
	settings := config.DefaultRocketConfig()
	if opts.Config != nil {
		settings = *opts.Config
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	campaign := opts.Levels
	if len(campaign) == 0 {
		var err error
		campaign, err = levels.Defaults()
		if err != nil {
			return nil, err
		}
	}
	if opts.StartLevel < 0 || opts.StartLevel >= len(campaign) {
		return nil, fmt.Errorf("rocket: start level %d out of range [0, %d)", opts.StartLevel, len(campaign))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		settings: settings,
		campaign: campaign,
		start:    opts.StartLevel,
		logger:   logger,
		gate:     outcome.NewGate(),
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Rocket Boost"
}

// Reset starts the campaign over from the configured level.
// The collision gate keeps its setting.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	if g.machine != nil {
		g.machine.Teardown()
	}

	// Range was checked by NewWithOptions
	g.seq, _ = levels.NewSequence(g.campaign, g.start)
	g.fx = newFeedback(nil, cfg.Seed)
	g.score = 0
	g.paused = false
	g.events = nil
	g.load()
}

// load builds the current level of the sequence from scratch.
func (g *Game) load() {
	level := g.seq.Current()
	p := g.settings.Physics

	g.craft = flight.NewCraft(level.Spawn)
	g.fx.attach(g.craft)
	g.controller = flight.NewController(flight.Settings{
		ThrustStrength:   p.ThrustStrength,
		RotationStrength: p.RotationStrength,
	}, g.fx)
	g.world = NewWorld(level, g.craft, Physics{
		Gravity:        p.Gravity,
		MaxSpeed:       p.MaxSpeed,
		AngularDamping: p.AngularDamping,
		ImpactSpin:     p.ImpactSpin,
	})
	g.machine = outcome.New(outcome.Options{
		Craft:    g.craft,
		Controls: g.controller,
		Feedback: g.fx,
		Levels:   levelRequests{g},
		Gate:     g.gate,
		Clock:    schedule.New(),
		Delay:    g.settings.Gameplay.LevelLoadDelayDuration(),
		Logger:   g.logger.With("level", level.ID),
	})
	g.ticks = 0
	g.request = loadNone

	if !level.HasTag(outcome.TagFinish) {
		g.logger.Warn("level has no finish pad", "level", level.ID)
	}
	g.logger.Debug("level loaded", "level", level.ID, "index", g.seq.Index())
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	// Debug keys work while paused. Skip wins when both arrive together
	switch {
	case in.Has(core.ActionSkipLevel):
		g.emit(core.EventLevelSkipped)
		g.machine.SkipLevel()
	case in.Has(core.ActionToggleCollisions):
		g.machine.ToggleCollisions()
	}

	if !g.paused && g.request == loadNone {
		g.simulate(in)
	}
	g.applyRequest()

	return core.StepResult{State: g.State(), Events: g.events}
}

// simulate runs one fixed tick of the current level.
func (g *Game) simulate(in core.InputFrame) {
	dt := g.runtime.TickSeconds()
	g.ticks++

	// The clock moves first so a contact's delay starts at the end of its tick
	g.machine.Advance(secondsToDuration(dt))
	if g.request != loadNone {
		return
	}

	g.controller.Tick(g.craft, flight.Input{
		Thrust:   in.Has(core.ActionThrust),
		Rotation: in.Axis(core.ActionRotateLeft, core.ActionRotateRight),
	}, dt)

	before := g.machine.State()
	g.world.Step(dt, g.machine.HandleContact)
	if before == outcome.Flying {
		switch g.machine.State() {
		case outcome.Succeeding:
			g.score++
			g.emit(core.EventLevelComplete)
		case outcome.Failing:
			g.emit(core.EventCrash)
		}
	}

	g.fx.tick(dt)
}

// applyRequest performs a level change requested during this tick.
func (g *Game) applyRequest() {
	switch g.request {
	case loadAdvance:
		g.machine.Teardown()
		g.seq.Advance()
		g.load()
	case loadRestart:
		g.machine.Teardown()
		g.seq.Restart()
		g.load()
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (g *Game) emit(kind core.EventKind) {
	g.events = append(g.events, core.Event{
		Kind:       kind,
		LevelID:    g.seq.Current().ID,
		LevelIndex: g.seq.Index(),
		Ticks:      g.ticks,
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{
		Score:  g.score,
		Paused: g.paused,
	}
	if g.seq != nil {
		s.Level = g.seq.Index()
		s.LevelID = g.seq.Current().ID
	}
	return s
}

// Outcome returns the outcome state of the current level.
func (g *Game) Outcome() outcome.State {
	return g.machine.State()
}

// CollisionsEnabled reports the session collision gate.
func (g *Game) CollisionsEnabled() bool {
	return g.gate.Enabled()
}

// Craft returns the current level's craft.
func (g *Game) Craft() *flight.Craft {
	return g.craft
}

// levelRequests turns the outcome machine's level changes into requests the
// game applies between ticks, so a level is never rebuilt mid-step.
type levelRequests struct {
	g *Game
}

func (r levelRequests) AdvanceLevel() { r.g.request = loadAdvance }
func (r levelRequests) RestartLevel() {
	if r.g.request == loadNone {
		r.g.request = loadRestart
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
