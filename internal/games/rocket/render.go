package rocket

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/flight"
	"github.com/vovakirdan/tui-rocket/internal/levels"
	"github.com/vovakirdan/tui-rocket/internal/outcome"
)

// craftGlyphs holds the rocket sprite for each 45 degree heading, starting at up.
var craftGlyphs = [8]rune{'▲', '◥', '▶', '◢', '▼', '◣', '◀', '◤'}

// Rows reserved around the map
const (
	hudRows  = 1
	helpRows = 1
)

const helpLine = "↑/w thrust  ←/→ rotate  p pause  c collisions  l skip  tab stats  q quit"

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	level := g.world.Level()
	ox, oy := g.origin(dst, level)

	g.drawLevel(dst, level, ox, oy)
	g.drawOscillators(dst, ox, oy)
	g.drawCraft(dst, ox, oy)
	g.drawParticles(dst, ox, oy)
	g.drawHUD(dst, level)

	if text, color, ok := g.fx.bannerText(); ok {
		drawCenteredMessage(dst, text, g.bannerSubtitle(), color)
	}
	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	}
}

// origin centers the map in the space between the HUD and the help line.
func (g *Game) origin(dst *core.Screen, level *levels.Level) (int, int) {
	ox := (dst.Width() - level.Width) / 2
	oy := hudRows + (dst.Height()-hudRows-helpRows-level.Height)/2
	return core.Max(ox, 0), core.Max(oy, hudRows)
}

func (g *Game) drawLevel(dst *core.Screen, level *levels.Level, ox, oy int) {
	for y, row := range level.Tiles {
		for x, t := range row {
			if !t.Solid() {
				continue
			}
			dst.SetColored(ox+x, oy+y, t.Glyph, tagColor(t.Tag))
		}
	}
}

func (g *Game) drawOscillators(dst *core.Screen, ox, oy int) {
	level := g.world.Level()
	for i, r := range g.world.Oscillators() {
		o := level.Oscillators[i]
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				dst.SetColored(ox+x, oy+y, o.Glyph, core.ColorMagenta)
			}
		}
	}
}

func (g *Game) drawCraft(dst *core.Screen, ox, oy int) {
	c := g.craft
	x, y := c.Position.Cell()

	if g.fx.engineOn {
		back := c.Forward().Scale(-1)
		for i := 1; i <= exhaustLength; i++ {
			fx, fy := c.Position.Add(back.Scale(float64(i))).Cell()
			glyph, color := '*', core.ColorOrange
			if i > 1 {
				glyph, color = '·', core.ColorYellow
			}
			dst.SetColored(ox+fx, oy+fy, glyph, color)
		}
	}

	// Attitude thrusters puff from the side opposite the turn
	if g.fx.side != flight.SideNone {
		deg := c.Rotation - 90
		if g.fx.side == flight.SideRight {
			deg = c.Rotation + 90
		}
		px, py := c.Position.Add(core.Heading(deg)).Cell()
		dst.SetColored(ox+px, oy+py, '\'', core.ColorBrightCyan)
	}

	color := core.ColorBrightWhite
	switch g.machine.State() {
	case outcome.Failing:
		color = core.ColorRed
	case outcome.Succeeding:
		color = core.ColorBrightGreen
	}
	dst.SetColored(ox+x, oy+y, craftGlyph(c.Rotation), color)
}

func (g *Game) drawParticles(dst *core.Screen, ox, oy int) {
	for _, p := range g.fx.particles {
		x, y := p.pos.Cell()
		dst.SetColored(ox+x, oy+y, p.glyph, p.color)
	}
}

func (g *Game) drawHUD(dst *core.Screen, level *levels.Level) {
	name := level.Name
	if name == "" {
		name = level.ID
	}
	hud := fmt.Sprintf(" Level %d/%d %s  Landings: %d ", g.seq.Index()+1, g.seq.Len(), name, g.score)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	if !g.gate.Enabled() {
		text := " COLLISIONS OFF "
		dst.DrawTextColored(dst.Width()-len(text), 0, text, core.ColorBrightYellow)
	}

	if g.settings.Debug.Enabled {
		c := g.craft
		debug := fmt.Sprintf(" pos %.1f,%.1f vel %.1f,%.1f rot %.0f spin %.0f %s ",
			c.Position.X, c.Position.Y, c.Velocity.X, c.Velocity.Y,
			c.Rotation, c.AngularVelocity, g.machine.State())
		dst.DrawTextColored(0, dst.Height()-1, debug, core.ColorGray)
		return
	}
	dst.DrawTextColored(0, dst.Height()-1, " "+helpLine, core.ColorGray)
}

func (g *Game) bannerSubtitle() string {
	if g.machine.State() == outcome.Succeeding {
		return "Next level incoming"
	}
	return "Restarting level"
}

// craftGlyph picks the sprite closest to the heading.
func craftGlyph(rotation float64) rune {
	i := int(math.Round(core.NormalizeDegrees(rotation)/45)) % len(craftGlyphs)
	return craftGlyphs[i]
}

func tagColor(tag string) core.Color {
	switch outcome.Classify(tag) {
	case outcome.Benign:
		return core.ColorBrightGreen
	case outcome.Goal:
		return core.ColorBrightYellow
	default:
		return core.ColorGray
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, color core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, color)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
