// rocket is a lunar-lander style game played in the terminal.
//
// Usage:
//
//	rocket play             - Pick a level and fly
//	rocket levels           - List the campaign
//	rocket stats            - Show the flight log per level
//	rocket serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible particles
//	--db <path>           - Set database path (default: ~/.arcade/rocket.db)
//	--config <path>       - Load a custom rocket.yaml
//	--difficulty <preset> - easy, normal or hard
//	--levels <dir>        - Load levels from a directory instead of the built-in campaign
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rocket/internal/config"
	"github.com/vovakirdan/tui-rocket/internal/games/rocket"
	"github.com/vovakirdan/tui-rocket/internal/levels"
	"github.com/vovakirdan/tui-rocket/internal/platform/tui"
	"github.com/vovakirdan/tui-rocket/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagDebug      bool
	flagTheme      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rocket",
	Short: "Rocket Boost - Fly a rocket through your terminal",
	Long: `Rocket Boost is a physics game: lift off from the launch pad, steer
around the walls and set the rocket down on the finish pad.

Available commands:
  play     - Pick a level and fly
  levels   - List the campaign
  stats    - Show the flight log
  serve    - Start SSH server for remote play

Examples:
  rocket play
  rocket play --level 2 --difficulty easy
  rocket levels --levels ./my-levels
  rocket stats
  rocket serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/rocket.db", "Path to flight log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rocket config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level YAML files")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Show flight telemetry and log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings resolves the config file, the difficulty preset and --debug.
func loadSettings() (config.RocketConfig, error) {
	cfg, err := config.LoadRocket(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyRocketPreset(&cfg, config.ParsePreset(flagDifficulty))
	if flagDebug {
		cfg.Debug.Enabled = true
	}
	return cfg, cfg.Validate()
}

// loadCampaign returns the levels from --levels or the built-in campaign.
func loadCampaign() ([]*levels.Level, error) {
	return levels.Load(flagLevelsDir)
}

// gameFactory builds rocket games sharing one config, campaign and logger.
func gameFactory(cfg config.RocketConfig, campaign []*levels.Level, logger *log.Logger) tui.GameFactory {
	return func(start int) (registry.Game, error) {
		return rocket.NewWithOptions(rocket.Options{
			Config:     &cfg,
			Levels:     campaign,
			StartLevel: start,
			Logger:     logger,
		})
	}
}

// newLogger builds the game logger at the level chosen by --debug.
func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "rocket",
		Level:           level,
	})
}

// openLog opens path for appending, or discards when path is empty.
// The returned close function is always safe to call.
func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, func() {}, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
