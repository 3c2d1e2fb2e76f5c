package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles of the menus and the stats screen.
// Palette colors the playfield cell by cell.
type Theme struct {
	Palette Palette

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	// Stats screen styles
	StatsTitle  lipgloss.Style
	StatsBorder lipgloss.Style
	StatsEmpty  lipgloss.Style
	StatsGood   lipgloss.Style
	StatsBad    lipgloss.Style

	// Shared
	Help lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: DefaultPalette(),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true), // Exhaust orange
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		StatsTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true).MarginBottom(1),
		StatsBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		StatsEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		StatsGood:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		StatsBad:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme for low-color terminals.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Palette = MonochromePalette()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.StatsGood = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.StatsBad = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return theme
}

// ThemeByName resolves a theme flag value. Unknown names use the default.
func ThemeByName(name string) Theme {
	if name == "mono" || name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}
