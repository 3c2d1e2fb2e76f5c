package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/platform/tui"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

var (
	flagLevel   int
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly the campaign",
	Long: `Pick a starting level and fly. Landing on the finish pad moves on to
the next level; touching anything but a pad restarts the current one.

Controls:
  Space/W/Up   - Main engine
  A/Left       - Rotate counter-clockwise
  D/Right      - Rotate clockwise
  P            - Pause
  Tab          - Flight log
  C            - Debug: toggle collisions
  L            - Debug: skip level
  Q/Esc        - Back to level menu
  Ctrl+C       - Quit

Difficulty options:
  easy   - Weaker gravity, stronger engine, gentler impacts
  normal - Values from the config file
  hard   - Stronger gravity, weaker engine

Examples:
  rocket play
  rocket play --level 3
  rocket play --difficulty hard --log rocket.log
  rocket play --config ./my-rocket.yaml --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start at this level (1-based) without showing the menu")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
}

func runPlay(cmd *cobra.Command, args []string) {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	campaign, err := loadCampaign()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel < 0 || flagLevel > len(campaign) {
		fmt.Fprintf(os.Stderr, "Error: level %d out of range 1-%d\n", flagLevel, len(campaign))
		fmt.Fprintln(os.Stderr, "Run 'rocket levels' to see the campaign.")
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	logOut, closeLog, err := openLog(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := newLogger(logOut)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open flight log
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open flight log: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	theme := tui.ThemeByName(flagTheme)
	newGame := gameFactory(settings, campaign, logger)
	opts := tui.ModelOptions{
		Hold:       settings.Gameplay.HoldDuration(),
		Logger:     logger,
		QuitToMenu: flagLevel == 0,
		Theme:      &theme,
	}

	start := flagLevel - 1
	for {
		if start < 0 {
			result, menuErr := tui.RunLevelMenu(campaign, cfg, theme)
			if menuErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
				os.Exit(1)
			}
			cfg = result.Config

			if result.WantsStats {
				if statsErr := tui.RunStats(store, cfg.ScreenW, cfg.ScreenH, theme); statsErr != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", statsErr)
					os.Exit(1)
				}
				continue
			}
			if result.Selection == nil {
				return
			}
			start = result.Selection.Level
		}

		game, gameErr := newGame(start)
		if gameErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", gameErr)
			os.Exit(1)
		}

		backToMenu, runErr := tui.Run(game, store, cfg, opts)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		if !backToMenu {
			return
		}
		start = -1
	}
}
