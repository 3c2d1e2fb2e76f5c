package rocket

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/flight"
)

// Particle constants
const (
	burstSize     = 24
	burstSpeed    = 9.0 // cells per second
	particleLife  = 1.2 // seconds
	cueDuration   = 2.0 // seconds a banner stays up
	exhaustLength = 2   // cells of flame behind the nozzle
)

type particle struct {
	pos   core.Vec2
	vel   core.Vec2
	life  float64
	glyph rune
	color core.Color
}

// cue is a banner standing in for a sound clip.
type cue struct {
	text  string
	color core.Color
	left  float64
}

// feedback is the terminal stand-in for audio and particle systems.
// It implements both flight.Effects and outcome.Feedback.
type feedback struct {
	craft *flight.Craft
	rng   *rand.Rand

	engineOn  bool
	side      flight.Side
	banner    cue
	particles []particle
}

func newFeedback(craft *flight.Craft, seed int64) *feedback {
	return &feedback{
		craft: craft,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (f *feedback) PlayEngineLoop() { f.engineOn = true }
func (f *feedback) StopEngineLoop() { f.engineOn = false }

func (f *feedback) DirectionalEffect(side flight.Side) { f.side = side }

func (f *feedback) PlaySuccessCue() {
	f.banner = cue{text: "TOUCHDOWN", color: core.ColorBrightGreen, left: cueDuration}
}

func (f *feedback) PlayFailureCue() {
	f.banner = cue{text: "CRASHED", color: core.ColorBrightRed, left: cueDuration}
}

func (f *feedback) PlaySuccessVisual() {
	f.burst([]rune{'*', '+', '.'}, []core.Color{core.ColorBrightGreen, core.ColorBrightYellow, core.ColorBrightCyan})
}

func (f *feedback) PlayFailureVisual() {
	f.burst([]rune{'#', '*', '%', '.'}, []core.Color{core.ColorBrightRed, core.ColorOrange, core.ColorYellow})
}

// burst spawns a ring of debris at the craft.
func (f *feedback) burst(glyphs []rune, colors []core.Color) {
	for i := 0; i < burstSize; i++ {
		angle := f.rng.Float64() * 2 * math.Pi
		speed := burstSpeed * (0.3 + 0.7*f.rng.Float64())
		f.particles = append(f.particles, particle{
			pos:   f.craft.Position,
			vel:   core.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed * 0.5},
			life:  particleLife * (0.5 + 0.5*f.rng.Float64()),
			glyph: glyphs[f.rng.Intn(len(glyphs))],
			color: colors[f.rng.Intn(len(colors))],
		})
	}
}

// tick ages particles and banners by dt seconds.
func (f *feedback) tick(dt float64) {
	alive := f.particles[:0]
	for _, p := range f.particles {
		p.life -= dt
		if p.life <= 0 {
			continue
		}
		p.pos = p.pos.Add(p.vel.Scale(dt))
		alive = append(alive, p)
	}
	f.particles = alive

	if f.banner.left > 0 {
		f.banner.left -= dt
	}
}

// bannerText returns the active cue, if any.
func (f *feedback) bannerText() (string, core.Color, bool) {
	if f.banner.left <= 0 {
		return "", core.ColorDefault, false
	}
	return f.banner.text, f.banner.color, true
}

// attach follows a freshly spawned craft and drops the previous level's effects.
func (f *feedback) attach(craft *flight.Craft) {
	f.craft = craft
	f.engineOn = false
	f.side = flight.SideNone
	f.banner = cue{}
	f.particles = f.particles[:0]
}
