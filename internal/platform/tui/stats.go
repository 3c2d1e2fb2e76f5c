package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rocket/internal/storage"
)

// Stats layout constants
const (
	statsChrome = 9  // Rows used by title, borders, summary and help
	recentRuns  = 5  // Runs listed under the table
	levelColMin = 16 // Minimum width of the level column
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc", "b"),
			key.WithHelp("tab/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel shows the flight log aggregated per level.
type StatsModel struct {
	store     *storage.Store
	runID     string // Highlighted run, may be empty
	levels    []storage.LevelStats
	runs      []storage.RunSummary
	loadErr   error
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	theme     Theme
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewStatsModel creates a stats screen and loads the flight log.
func NewStatsModel(store *storage.Store, runID string, width, height int, theme Theme) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		store:  store,
		runID:  runID,
		help:   h,
		keys:   DefaultStatsKeyMap(),
		theme:  theme,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.Refresh()
	return m
}

// createTable creates a table sized to the screen.
func (m *StatsModel) createTable() table.Model {
	levelWidth := m.width - 4 - 6*9 // Margins and six numeric columns
	if levelWidth < levelColMin {
		levelWidth = levelColMin
	}
	if levelWidth > 28 {
		levelWidth = 28
	}

	columns := []table.Column{
		{Title: "Level", Width: levelWidth},
		{Title: "Tries", Width: 7},
		{Title: "Landed", Width: 7},
		{Title: "Crashed", Width: 8},
		{Title: "Skipped", Width: 8},
		{Title: "Rate", Width: 6},
		{Title: "Best", Width: 8},
	}

	height := m.height - statsChrome - recentRuns
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Refresh reloads the flight log from the store.
func (m *StatsModel) Refresh() {
	m.levels, m.runs, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.levels, m.loadErr = m.store.AllLevelStats()
		if m.loadErr == nil {
			m.runs, m.loadErr = m.store.RecentRuns(recentRuns)
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded stats.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, s := range m.levels {
		best := "-"
		if s.BestTicks > 0 {
			best = fmt.Sprintf("%d", s.BestTicks)
		}
		rows[i] = table.Row{
			s.LevelID,
			fmt.Sprintf("%d", s.Attempts),
			fmt.Sprintf("%d", s.Successes),
			fmt.Sprintf("%d", s.Crashes),
			fmt.Sprintf("%d", s.Skips),
			fmt.Sprintf("%.0f%%", s.SuccessRate()*100),
			best,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.Refresh()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.theme.StatsTitle.Render(centerText("FLIGHT LOG", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.StatsBorder.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(m.renderRuns())
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m StatsModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return m.theme.StatsEmpty.Render("Flight log unavailable.\nNo database is open.")
	case m.loadErr != nil:
		return m.theme.StatsBad.Render(fmt.Sprintf("Cannot read flight log: %v", m.loadErr))
	case len(m.levels) == 0:
		return m.theme.StatsEmpty.Render("No flights recorded yet.\nLand on a finish pad to log one!")
	}
	return m.table.View()
}

// renderRuns lists the latest runs, marking the current one.
func (m StatsModel) renderRuns() string {
	if len(m.runs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.MenuDescription.Render("Recent runs"))
	b.WriteString("\n")
	for _, r := range m.runs {
		marker := "  "
		if r.RunID == m.runID {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  %s  %s",
			marker,
			shortRunID(r.RunID),
			m.theme.StatsGood.Render(fmt.Sprintf("%d landed", r.Landings)),
			m.theme.StatsBad.Render(fmt.Sprintf("%d crashed", r.Crashes)),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// shortRunID trims a UUID to its first group for display.
func shortRunID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// IsGoingBack returns true if user wants to return to the previous screen.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats screen as its own program.
func RunStats(store *storage.Store, width, height int, theme Theme) error {
	p := tea.NewProgram(
		statsProgram{NewStatsModel(store, "", width, height, theme)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// statsProgram quits on back when the stats screen runs standalone.
type statsProgram struct {
	StatsModel
}

func (p statsProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.StatsModel.Update(msg)
	if sm, ok := next.(StatsModel); ok {
		p.StatsModel = sm
	}
	if p.IsGoingBack() {
		return p, tea.Quit
	}
	return p, cmd
}
