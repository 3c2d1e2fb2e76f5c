package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/levels"
)

// LevelSelection holds the user's choice from the level menu.
type LevelSelection struct {
	Level int // Index into the campaign
}

// LevelMenuModel lets users pick the level the campaign starts from.
type LevelMenuModel struct {
	levels    []*levels.Level
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	theme     Theme
	keyMapper *KeyMapper
	selected  *LevelSelection
	stats     bool
	quitting  bool
}

// NewLevelMenuModel creates a level menu for the campaign.
func NewLevelMenuModel(campaign []*levels.Level, cfg core.RuntimeConfig, theme Theme) LevelMenuModel {
	return LevelMenuModel{
		levels:    campaign,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		theme:     theme,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selected = &LevelSelection{Level: m.cursor}
			return m, tea.Quit
		}
	case MenuActionStats:
		m.stats = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level list.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("R O C K E T   B O O S T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a starting level"), m.width))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		name := l.Name
		if name == "" {
			name = l.ID
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, name)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Help.Render("Enter: Fly  |  Tab: Stats  |  Esc/Q: Quit"), m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	return m.selected
}

// WantsStats returns true if user asked for the stats screen.
func (m LevelMenuModel) WantsStats() bool {
	return m.stats
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m LevelMenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the level menu.
type MenuResult struct {
	Selection  *LevelSelection
	Config     core.RuntimeConfig
	WantsStats bool
}

// RunLevelMenu shows the level menu and returns what the user picked.
// A nil Selection without WantsStats means the user quit.
func RunLevelMenu(campaign []*levels.Level, cfg core.RuntimeConfig, theme Theme) (MenuResult, error) {
	p := tea.NewProgram(
		NewLevelMenuModel(campaign, cfg, theme),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return MenuResult{Config: cfg}, nil
	}

	return MenuResult{
		Selection:  m.Selected(),
		Config:     m.Config(),
		WantsStats: m.WantsStats(),
	}, nil
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
