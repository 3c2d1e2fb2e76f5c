package rocket

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/flight"
	"github.com/vovakirdan/tui-rocket/internal/levels"
	"github.com/vovakirdan/tui-rocket/internal/outcome"
)

var testLegend = map[rune]string{
	'=': outcome.TagFriendly,
	'F': outcome.TagFinish,
	'#': levels.TagObstacle,
}

func mustLevel(t *testing.T, id string, rows ...string) *levels.Level {
	t.Helper()
	l, err := levels.ParseMap(id, "", rows, testLegend)
	if err != nil {
		t.Fatalf("ParseMap(%s) error: %v", id, err)
	}
	return l
}

// collect steps the world n times and returns every reported contact.
func collect(w *World, n int, dt float64) []outcome.Contact {
	var contacts []outcome.Contact
	for i := 0; i < n; i++ {
		w.Step(dt, func(c outcome.Contact) {
			contacts = append(contacts, c)
		})
	}
	return contacts
}

func TestWorldRestingContactReportedOnce(t *testing.T) {
	level := mustLevel(t, "pad",
		"#####",
		"#.S.#",
		"#===#",
		"#####",
	)
	craft := flight.NewCraft(level.Spawn)
	w := NewWorld(level, craft, Physics{Gravity: 6, MaxSpeed: 20})

	contacts := collect(w, 300, 1.0/60)

	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, expected 1: %v", len(contacts), contacts)
	}
	if contacts[0].Classification != outcome.Benign {
		t.Errorf("Classification = %v, expected benign", contacts[0].Classification)
	}
	if _, y := craft.Position.Cell(); y != 1 {
		t.Errorf("craft cell row = %d, expected to rest on the pad in row 1", y)
	}
	if craft.Velocity.Y > 0.2 {
		t.Errorf("Velocity.Y = %v, expected the pad to stop the fall", craft.Velocity.Y)
	}
}

func TestWorldLeavingAndReturningReportsAgain(t *testing.T) {
	level := mustLevel(t, "pad",
		"#####",
		"#...#",
		"#...#",
		"#.S.#",
		"#===#",
		"#####",
	)
	craft := flight.NewCraft(level.Spawn)
	w := NewWorld(level, craft, Physics{Gravity: 6, MaxSpeed: 20})

	if n := len(collect(w, 60, 1.0/60)); n != 1 {
		t.Fatalf("first landing reported %d contacts, expected 1", n)
	}

	// Hop off the pad and fall back onto it
	craft.Velocity.Y = -4
	if n := len(collect(w, 120, 1.0/60)); n != 1 {
		t.Errorf("second landing reported %d contacts, expected 1", n)
	}
}

func TestWorldContactOrderIsRowMajor(t *testing.T) {
	level := mustLevel(t, "corner",
		"#####",
		"#SF.#",
		"##..#",
		"#####",
	)
	craft := flight.NewCraft(level.Spawn)
	craft.Velocity = core.Vec2{X: 40, Y: 40}
	w := NewWorld(level, craft, Physics{})

	var contacts []outcome.Contact
	w.Step(1.0/60, func(c outcome.Contact) {
		contacts = append(contacts, c)
	})

	if len(contacts) != 2 {
		t.Fatalf("got %d contacts, expected 2: %v", len(contacts), contacts)
	}
	if contacts[0].Classification != outcome.Goal || contacts[1].Classification != outcome.Hazard {
		t.Errorf("contact order = %v, %v, expected goal then hazard",
			contacts[0].Classification, contacts[1].Classification)
	}

	// First delivered wins
	m := outcome.New(outcome.Options{
		Craft:    craft,
		Controls: flight.NewController(flight.Settings{ThrustStrength: 1, RotationStrength: 1}, nil),
		Levels:   levelRequests{&Game{}},
	})
	for _, c := range contacts {
		m.HandleContact(c)
	}
	if m.State() != outcome.Succeeding {
		t.Errorf("State() = %v, expected succeeding", m.State())
	}
}

func TestWorldSpinSuppression(t *testing.T) {
	level := mustLevel(t, "box",
		"#######",
		"#.....#",
		"#..S..#",
		"#.....#",
		"#######",
	)
	craft := flight.NewCraft(level.Spawn)
	craft.AngularVelocity = 90
	w := NewWorld(level, craft, Physics{})

	craft.SuppressSpin()
	w.Step(0.1, nil)
	if craft.Rotation != 0 {
		t.Errorf("Rotation = %v while suppressed, expected 0", craft.Rotation)
	}
	if craft.SpinSuppressed() {
		t.Error("suppression should be lifted after one tick")
	}
	if craft.AngularVelocity != 90 {
		t.Errorf("AngularVelocity = %v, expected the stored spin to be kept", craft.AngularVelocity)
	}

	w.Step(0.1, nil)
	if math.Abs(craft.Rotation-9) > 1e-9 {
		t.Errorf("Rotation = %v, expected 9", craft.Rotation)
	}
}

func TestWorldAngularDamping(t *testing.T) {
	level := mustLevel(t, "box",
		"#####",
		"#.S.#",
		"#####",
	)
	craft := flight.NewCraft(level.Spawn)
	craft.AngularVelocity = 100
	w := NewWorld(level, craft, Physics{AngularDamping: 0.5})

	w.Step(1, nil)
	if craft.AngularVelocity != 50 {
		t.Errorf("AngularVelocity = %v, expected 50", craft.AngularVelocity)
	}
}

func TestWorldMaxSpeed(t *testing.T) {
	level := mustLevel(t, "tall",
		"###",
		"#S#",
		"#.#",
		"#.#",
		"#.#",
		"#.#",
		"#.#",
		"###",
	)
	craft := flight.NewCraft(level.Spawn)
	craft.Velocity = core.Vec2{Y: 100}
	w := NewWorld(level, craft, Physics{MaxSpeed: 5})

	w.Step(0.01, nil)
	if got := craft.Velocity.Length(); math.Abs(got-5) > 1e-9 {
		t.Errorf("speed = %v, expected clamp to 5", got)
	}
}

func TestWorldImpactSpin(t *testing.T) {
	level := mustLevel(t, "floor",
		"#######",
		"#..S..#",
		"#.....#",
		"#######",
	)
	craft := flight.NewCraft(level.Spawn)
	craft.Velocity = core.Vec2{X: 2, Y: 10}
	w := NewWorld(level, craft, Physics{ImpactSpin: 30})

	collect(w, 12, 1.0/60)
	if craft.AngularVelocity != 60 {
		t.Errorf("AngularVelocity = %v, expected 2 cells/s * 30", craft.AngularVelocity)
	}
}

func TestWorldOscillatorMovesOntoCraft(t *testing.T) {
	level := mustLevel(t, "osc",
		"######",
		"#....#",
		"#..S.#",
		"#....#",
		"######",
	)
	level.Oscillators = []levels.Oscillator{{
		Glyph:  '#',
		Tag:    levels.TagObstacle,
		Start:  core.NewRect(1, 2, 1, 1),
		Offset: core.Vec2{X: 2},
		Speed:  1,
	}}
	craft := flight.NewCraft(level.Spawn)
	w := NewWorld(level, craft, Physics{})

	contacts := collect(w, 20, 0.05)
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, expected 1: %v", len(contacts), contacts)
	}
	if contacts[0].Classification != outcome.Hazard {
		t.Errorf("Classification = %v, expected hazard", contacts[0].Classification)
	}
	if contacts[0].Collider != "Obstacle oscillator 0" {
		t.Errorf("Collider = %q", contacts[0].Collider)
	}
}

func TestWorldBordersAreSolid(t *testing.T) {
	// A map without walls still keeps the craft inside
	level := mustLevel(t, "open",
		"...",
		".S.",
		"...",
	)
	craft := flight.NewCraft(level.Spawn)
	craft.Velocity = core.Vec2{X: -30}
	w := NewWorld(level, craft, Physics{})

	contacts := collect(w, 30, 1.0/60)
	if len(contacts) != 1 || contacts[0].Classification != outcome.Hazard {
		t.Errorf("contacts = %v, expected one hazard at the border", contacts)
	}
	if x, _ := craft.Position.Cell(); x != 0 {
		t.Errorf("craft column = %d, expected 0", x)
	}
}
