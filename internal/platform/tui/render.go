package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// Palette maps cell colors to terminal styles.
type Palette map[core.Color]lipgloss.Style

// ansi builds a foreground-only style.
func ansi(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// DefaultPalette uses the ANSI colors plus two 256-color extras.
func DefaultPalette() Palette {
	return Palette{
		core.ColorDefault:      lipgloss.NewStyle(),
		core.ColorRed:          ansi("1"),
		core.ColorYellow:       ansi("3"),
		core.ColorMagenta:      ansi("5"),
		core.ColorOrange:       ansi("208"),
		core.ColorGray:         ansi("245"),
		core.ColorBrightRed:    ansi("9"),
		core.ColorBrightGreen:  ansi("10"),
		core.ColorBrightYellow: ansi("11"),
		core.ColorBrightCyan:   ansi("14"),
		core.ColorBrightWhite:  ansi("15"),
	}
}

// MonochromePalette keeps hazards and pads apart by brightness only.
func MonochromePalette() Palette {
	p := Palette{core.ColorDefault: lipgloss.NewStyle()}
	bright := ansi("255").Bold(true)
	dim := ansi("245")
	for c := core.ColorRed; c <= core.ColorBrightWhite; c++ {
		if c.Bright() {
			p[c] = bright
		} else {
			p[c] = dim
		}
	}
	return p
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single style run.
func RenderScreen(s *core.Screen, palette Palette) string {
	var sb strings.Builder
	// Extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := palette[color]
			if !ok {
				style = palette[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
