package rocket

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rocket/internal/config"
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/levels"
	"github.com/vovakirdan/tui-rocket/internal/outcome"
	"github.com/vovakirdan/tui-rocket/internal/registry"
)

func landingLevel(t *testing.T, id string) *levels.Level {
	return mustLevel(t, id,
		"#####",
		"#.S.#",
		"#...#",
		"#FFF#",
		"#####",
	)
}

func crashLevel(t *testing.T, id string) *levels.Level {
	return mustLevel(t, id,
		"#####",
		"#.S.#",
		"#...#",
		"#...#",
		"#####",
	)
}

func newTestGame(t *testing.T, start int, campaign ...*levels.Level) *Game {
	t.Helper()

	cfg := config.DefaultRocketConfig()
	cfg.Gameplay.LevelLoadDelay = 0.5

	g, err := NewWithOptions(Options{Config: &cfg, Levels: campaign, StartLevel: start})
	if err != nil {
		t.Fatalf("NewWithOptions() error: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// runUntil steps with the same input until done reports true.
func runUntil(t *testing.T, g *Game, in core.InputFrame, limit int, done func() bool) []core.Event {
	t.Helper()
	var events []core.Event
	for i := 0; i < limit; i++ {
		res := g.Step(in)
		events = append(events, res.Events...)
		if done() {
			return events
		}
	}
	t.Fatalf("condition not reached after %d ticks", limit)
	return nil
}

func run(g *Game, in core.InputFrame, ticks int) []core.Event {
	var events []core.Event
	for i := 0; i < ticks; i++ {
		events = append(events, g.Step(in).Events...)
	}
	return events
}

func TestDefaultGame(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	if g.ID() != "rocket" {
		t.Errorf("ID() = %q, expected rocket", g.ID())
	}
	state := g.State()
	if state.Level != 0 || state.LevelID != "01-first-hop" {
		t.Errorf("State() = %+v, expected the first embedded level", state)
	}
	if g.Outcome() != outcome.Flying {
		t.Errorf("Outcome() = %v, expected flying", g.Outcome())
	}

	// Idle for a while on the launch pad
	run(g, core.NewInputFrame(), 120)
	if g.Outcome() != outcome.Flying {
		t.Errorf("resting on the launch pad should not end the flight, got %v", g.Outcome())
	}
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("registry.Create() error: %v", err)
	}
	if g.Title() != "Rocket Boost" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestNewWithOptionsErrors(t *testing.T) {
	bad := config.DefaultRocketConfig()
	bad.Physics.ThrustStrength = 0

	tests := []struct {
		name string
		opts Options
	}{
		{"invalid config", Options{Config: &bad}},
		{"start out of range", Options{StartLevel: 10}},
		{"negative start", Options{StartLevel: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewWithOptions(tc.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLandingAdvancesLevel(t *testing.T) {
	g := newTestGame(t, 0, landingLevel(t, "a"), crashLevel(t, "b"))

	events := runUntil(t, g, core.NewInputFrame(), 200, func() bool {
		return g.Outcome() != outcome.Flying
	})
	if g.Outcome() != outcome.Succeeding {
		t.Fatalf("Outcome() = %v, expected succeeding", g.Outcome())
	}
	if len(events) != 1 || events[0].Kind != core.EventLevelComplete || events[0].LevelIndex != 0 {
		t.Errorf("events = %+v, expected one completion for level 0", events)
	}
	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected 1", g.State().Score)
	}

	// Still on the level until the delay passes
	if g.State().Level != 0 {
		t.Fatal("level changed before the delay")
	}
	run(g, core.NewInputFrame(), 35)

	if state := g.State(); state.Level != 1 || state.LevelID != "b" {
		t.Errorf("State() = %+v, expected level b", state)
	}
	if g.Outcome() != outcome.Flying {
		t.Errorf("new level should start flying, got %v", g.Outcome())
	}
}

func TestLandingOnLastLevelWraps(t *testing.T) {
	g := newTestGame(t, 2, landingLevel(t, "a"), landingLevel(t, "b"), landingLevel(t, "c"))

	runUntil(t, g, core.NewInputFrame(), 200, func() bool {
		return g.Outcome() == outcome.Succeeding
	})
	run(g, core.NewInputFrame(), 35)

	if g.State().Level != 0 {
		t.Errorf("Level = %d, expected wrap to 0", g.State().Level)
	}
}

func TestCrashRestartsLevel(t *testing.T) {
	crash := crashLevel(t, "b")
	g := newTestGame(t, 1, landingLevel(t, "a"), crash)
	first := g.Craft()

	events := runUntil(t, g, core.NewInputFrame(), 200, func() bool {
		return g.Outcome() != outcome.Flying
	})
	if g.Outcome() != outcome.Failing {
		t.Fatalf("Outcome() = %v, expected failing", g.Outcome())
	}
	if len(events) != 1 || events[0].Kind != core.EventCrash || events[0].LevelID != "b" {
		t.Errorf("events = %+v, expected one crash on b", events)
	}

	// A restart spawns a fresh craft
	runUntil(t, g, core.NewInputFrame(), 60, func() bool {
		return g.Craft() != first
	})

	if g.State().Level != 1 {
		t.Errorf("Level = %d, expected restart at 1", g.State().Level)
	}
	if g.Craft().Position != crash.Spawn {
		t.Errorf("craft at %v, expected spawn %v", g.Craft().Position, crash.Spawn)
	}
	if g.State().Score != 0 {
		t.Errorf("Score = %d, expected 0", g.State().Score)
	}
}

func TestControlsLockedAfterCrash(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"))

	runUntil(t, g, core.NewInputFrame(), 200, func() bool {
		return g.Outcome() == outcome.Failing
	})

	// Thrust would lift the craft if it were still controllable
	before := g.Craft().Velocity
	g.Step(press(core.ActionThrust, core.ActionRotateLeft))
	after := g.Craft().Velocity

	if after.Y < before.Y {
		t.Errorf("Velocity.Y went from %v to %v, thrust should be ignored", before.Y, after.Y)
	}
	if g.Craft().Controllable() {
		t.Error("craft should not be controllable")
	}
	if g.fx.engineOn {
		t.Error("engine should be silent after a crash")
	}
}

func TestThrustLifts(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"))
	start := g.Craft().Position

	run(g, press(core.ActionThrust), 10)

	if g.Craft().Position.Y >= start.Y {
		t.Errorf("Position.Y = %v, expected to rise above %v", g.Craft().Position.Y, start.Y)
	}
	if !g.fx.engineOn {
		t.Error("engine loop should be playing")
	}

	run(g, core.NewInputFrame(), 1)
	if g.fx.engineOn {
		t.Error("engine loop should stop when thrust is released")
	}
}

func TestRotationInput(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"))

	g.Step(press(core.ActionRotateRight))
	if r := g.Craft().Rotation; r <= 0 || r > 90 {
		t.Errorf("Rotation = %v, expected a small clockwise turn", r)
	}

	// Both keys cancel out
	before := g.Craft().Rotation
	g.Step(press(core.ActionRotateLeft, core.ActionRotateRight))
	if g.Craft().Rotation != before {
		t.Errorf("Rotation = %v, expected unchanged %v", g.Craft().Rotation, before)
	}
}

func TestCollisionToggleSurvivesLevels(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"), crashLevel(t, "b"))

	g.Step(press(core.ActionToggleCollisions))
	if g.CollisionsEnabled() {
		t.Fatal("collisions should be off")
	}

	run(g, core.NewInputFrame(), 200)
	if g.Outcome() != outcome.Flying {
		t.Errorf("Outcome() = %v with collisions off, expected flying", g.Outcome())
	}

	g.Step(press(core.ActionSkipLevel))
	if g.State().Level != 1 {
		t.Fatalf("Level = %d, expected 1", g.State().Level)
	}
	if g.CollisionsEnabled() {
		t.Error("collision gate should survive the level change")
	}

	g.Step(press(core.ActionToggleCollisions))
	if !g.CollisionsEnabled() {
		t.Error("collisions should be back on")
	}
}

func TestSkipLevel(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"), crashLevel(t, "b"))

	res := g.Step(press(core.ActionSkipLevel))

	if res.State.Level != 1 {
		t.Errorf("Level = %d, expected immediate skip to 1", res.State.Level)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventLevelSkipped || res.Events[0].LevelIndex != 0 {
		t.Errorf("events = %+v, expected a skip of level 0", res.Events)
	}
	if res.State.Score != 0 {
		t.Errorf("skipping should not score, got %d", res.State.Score)
	}
}

func TestSkipWinsOverToggle(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"), crashLevel(t, "b"))

	g.Step(press(core.ActionSkipLevel, core.ActionToggleCollisions))

	if g.State().Level != 1 {
		t.Errorf("Level = %d, expected 1", g.State().Level)
	}
	if !g.CollisionsEnabled() {
		t.Error("toggle should be ignored in the same tick as a skip")
	}
}

func TestSkipCancelsPendingAdvance(t *testing.T) {
	g := newTestGame(t, 0, landingLevel(t, "a"), crashLevel(t, "b"), crashLevel(t, "c"))

	runUntil(t, g, core.NewInputFrame(), 200, func() bool {
		return g.Outcome() == outcome.Succeeding
	})
	g.Step(press(core.ActionSkipLevel))
	if g.State().Level != 1 {
		t.Fatalf("Level = %d, expected 1", g.State().Level)
	}

	// The landing's own advance must not fire on the new level
	run(g, core.NewInputFrame(), 60)
	if g.State().Level != 1 {
		t.Errorf("Level = %d, expected to stay on 1", g.State().Level)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"))
	start := g.Craft().Position

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	run(g, press(core.ActionThrust), 60)
	if g.Craft().Position != start {
		t.Errorf("craft moved while paused: %v -> %v", start, g.Craft().Position)
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestDebugKeysWhilePaused(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"), crashLevel(t, "b"))
	g.Step(press(core.ActionPause))

	g.Step(press(core.ActionToggleCollisions))
	if g.CollisionsEnabled() {
		t.Error("toggle should work while paused")
	}

	res := g.Step(press(core.ActionSkipLevel))
	if res.State.Level != 1 {
		t.Errorf("Level = %d, expected skip to 1 while paused", res.State.Level)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventLevelSkipped {
		t.Errorf("events = %+v, expected a skip", res.Events)
	}
	if !res.State.Paused {
		t.Error("skip should not unpause")
	}

	start := g.Craft().Position
	run(g, press(core.ActionThrust), 10)
	if g.Craft().Position != start {
		t.Error("new level should stay frozen while paused")
	}
}

func TestLevelChangeWaitsFullDelay(t *testing.T) {
	cfg := config.DefaultRocketConfig()
	cfg.Gameplay.LevelLoadDelay = 1
	g, err := NewWithOptions(Options{
		Config: &cfg,
		Levels: []*levels.Level{landingLevel(t, "a"), crashLevel(t, "b")},
	})
	if err != nil {
		t.Fatalf("NewWithOptions() error: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 1})

	runUntil(t, g, core.NewInputFrame(), 300, func() bool {
		return g.Outcome() == outcome.Succeeding
	})

	// The contact tick does not count toward the delay
	ticks := 0
	for g.State().Level == 0 && ticks < 200 {
		g.Step(core.NewInputFrame())
		ticks++
	}
	if ticks != 50 {
		t.Errorf("level changed %d ticks after the landing, expected 50", ticks)
	}
}

func TestWarnsOnLevelWithoutFinish(t *testing.T) {
	var buf bytes.Buffer
	g, err := NewWithOptions(Options{
		Levels: []*levels.Level{crashLevel(t, "nofinish")},
		Logger: log.New(&buf),
	})
	if err != nil {
		t.Fatalf("NewWithOptions() error: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	if !strings.Contains(buf.String(), "level has no finish pad") {
		t.Errorf("log = %q, expected a missing finish warning", buf.String())
	}

	buf.Reset()
	g, _ = NewWithOptions(Options{
		Levels: []*levels.Level{landingLevel(t, "a")},
		Logger: log.New(&buf),
	})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if strings.Contains(buf.String(), "finish") {
		t.Errorf("log = %q, expected no warning for a level with a finish pad", buf.String())
	}
}

func TestResetKeepsGate(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"), crashLevel(t, "b"))

	g.Step(press(core.ActionToggleCollisions))
	g.Step(press(core.ActionSkipLevel))
	g.Reset(core.DefaultConfig())

	if g.State().Level != 0 {
		t.Errorf("Level = %d after reset, expected 0", g.State().Level)
	}
	if g.CollisionsEnabled() {
		t.Error("reset should keep the session gate")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"), crashLevel(t, "b"))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Level 1/2") {
		t.Errorf("HUD missing from render:\n%s", out)
	}
	if !strings.ContainsRune(out, '▲') {
		t.Error("craft missing from render")
	}
	if strings.Contains(out, "COLLISIONS OFF") {
		t.Error("collision warning shown while collisions are on")
	}

	g.Step(press(core.ActionToggleCollisions))
	g.Render(screen)
	if !strings.Contains(screen.String(), "COLLISIONS OFF") {
		t.Error("expected collision warning")
	}
}

func TestRenderCrashBanner(t *testing.T) {
	g := newTestGame(t, 0, crashLevel(t, "a"))
	runUntil(t, g, core.NewInputFrame(), 200, func() bool {
		return g.Outcome() == outcome.Failing
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "CRASHED") {
		t.Errorf("crash banner missing:\n%s", out)
	}
	if len(g.fx.particles) == 0 {
		t.Error("crash should emit debris")
	}
}

func TestCraftGlyph(t *testing.T) {
	tests := []struct {
		rotation float64
		expected rune
	}{
		{0, '▲'},
		{44, '◥'},
		{90, '▶'},
		{180, '▼'},
		{270, '◀'},
		{-45, '◤'},
		{359, '▲'},
	}
	for _, tc := range tests {
		if got := craftGlyph(tc.rotation); got != tc.expected {
			t.Errorf("craftGlyph(%v) = %q, expected %q", tc.rotation, got, tc.expected)
		}
	}
}
