package core

// Color is the foreground of a screen cell. The platform maps each value to
// a terminal style; games only pick from this set.
type Color uint8

// Colors used by the playfield. The zero value is the terminal default.
const (
	ColorDefault      Color = iota
	ColorRed                // Crashed craft
	ColorYellow             // Engine flame tip
	ColorMagenta            // Moving obstacles
	ColorOrange             // Exhaust, burst particles
	ColorGray               // Walls and hazards
	ColorBrightRed          // Failure banner
	ColorBrightGreen        // Launch pads, success banner
	ColorBrightYellow       // Finish pads
	ColorBrightCyan         // Craft in flight
	ColorBrightWhite        // HUD
)

// Bright reports whether the color stands out on its own, which lets a
// monochrome palette keep pads and banners apart from hazards.
func (c Color) Bright() bool {
	return c >= ColorBrightRed || c == ColorOrange
}
