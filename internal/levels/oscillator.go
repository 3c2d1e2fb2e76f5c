package levels

import (
	"math"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// Oscillator is a block of geometry sliding back and forth between its
// start position and start+Offset.
type Oscillator struct {
	Glyph  rune
	Tag    string
	Start  core.Rect
	Offset core.Vec2
	Speed  float64 // a full round trip takes 2/Speed seconds
}

// Factor returns how far along the path the block is at time t (seconds), in [0, 1].
func (o Oscillator) Factor(t float64) float64 {
	return core.PingPong(t*o.Speed, 1)
}

// RectAt returns the occupied cells at time t.
func (o Oscillator) RectAt(t float64) core.Rect {
	f := o.Factor(t)
	return core.NewRect(
		o.Start.X+int(math.Round(o.Offset.X*f)),
		o.Start.Y+int(math.Round(o.Offset.Y*f)),
		o.Start.W,
		o.Start.H,
	)
}
