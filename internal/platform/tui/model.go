package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/registry"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

// ModelOptions tunes the game model. Zero values are valid.
type ModelOptions struct {
	Hold       time.Duration // How long a key press counts as held
	RunID      string        // Flight log run, generated when empty
	Logger     *log.Logger
	QuitToMenu bool   // Quit keys return to the caller's menu instead of exiting
	Theme      *Theme // Nil uses DefaultTheme
}

// Model is the Bubble Tea model that drives a game at a fixed tick rate.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	holds      *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	runID      string
	logger     *log.Logger
	theme      Theme
	stats      StatsModel
	showStats  bool
	quitToMenu bool
	backToMenu bool
	quitting   bool
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		holds:      NewHoldTracker(opts.Hold),
		inputFrame: core.NewInputFrame(),
		runID:      runID,
		logger:     logger.With("run", runID),
		theme:      theme,
		quitToMenu: opts.QuitToMenu,
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showStats {
			return m.updateStats(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		if m.quitToMenu && msg.String() != "ctrl+c" {
			// The owner of the model notices and shows its menu
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.openStats()
		return m, nil
	case action == core.ActionNone:
		return m, nil
	case m.keys.IsHeld(action):
		m.holds.Press(action, m.now())
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// openStats pauses the simulation behind the stats screen.
func (m *Model) openStats() {
	m.stats = NewStatsModel(m.store, m.runID, m.config.ScreenW, m.config.ScreenH, m.theme)
	m.showStats = true
	m.holds.Reset()
	m.inputFrame.Clear()
}

// updateStats forwards keys to the stats screen while it is open.
func (m Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, _ := m.stats.Update(msg)
	if sm, ok := next.(StatsModel); ok {
		m.stats = sm
	}
	switch {
	case m.stats.IsQuitting():
		m.showStats = false
		m.quitting = true
		return m, tea.Quit
	case m.stats.IsGoingBack():
		m.showStats = false
	}
	return m, nil
}

// handleResize processes window resize events.
// The flight in progress is kept; only the drawing surface changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if m.showStats {
		next, _ := m.stats.Update(msg)
		if sm, ok := next.(StatsModel); ok {
			m.stats = sm
		}
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.showStats {
		return m, tickCmd(m.config.TickRate)
	}

	m.holds.Apply(&m.inputFrame, m.now())
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recordEvents(result.Events)

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordEvents writes resolved outcomes to the flight log.
// Saving is best effort; the game continues regardless.
func (m *Model) recordEvents(events []core.Event) {
	for _, ev := range events {
		m.logger.Info("flight resolved", "outcome", ev.Kind, "level", ev.LevelID, "ticks", ev.Ticks)
		if m.store == nil {
			continue
		}
		_, err := m.store.SaveFlight(storage.Flight{
			RunID:      m.runID,
			LevelID:    ev.LevelID,
			LevelIndex: ev.LevelIndex,
			Outcome:    ev.Kind.String(),
			Ticks:      ev.Ticks,
		})
		if err != nil {
			m.logger.Warn("could not save flight", "err", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := m.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	if m.showStats {
		return m.stats.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.theme.Palette)
}

// IsQuitting returns true if the user asked to leave entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the level menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunID returns the flight log run of this model.
func (m Model) RunID() string {
	return m.runID
}

// Run starts the Bubble Tea program with the given game.
// It reports whether the user asked to return to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) (bool, error) {
	p := tea.NewProgram(
		standalone{NewModel(game, store, cfg, opts)},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(standalone)
	return ok && m.BackToMenu(), nil
}

// standalone ends the program when a model run on its own goes back to the menu.
type standalone struct {
	Model
}

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.Model.Update(msg)
	if m, ok := next.(Model); ok {
		s.Model = m
	}
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}
