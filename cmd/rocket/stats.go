package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rocket/internal/platform/tui"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the flight log",
	Long: `Display attempts, landings, crashes and best landing time per level,
followed by the most recent runs.

Examples:
  rocket stats
  rocket stats --interactive
  rocket stats --clear`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the flight log in a TUI")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded flight")
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening flight log: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearFlights(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Flight log cleared.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunStats(store, width, height, tui.ThemeByName(flagTheme)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	all, err := store.AllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Flight Log - Rocket Boost")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No flights recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rocket play' to log the first one!")
		return
	}

	maxIDLen := 5 // "Level" header
	for _, s := range all {
		if len(s.LevelID) > maxIDLen {
			maxIDLen = len(s.LevelID)
		}
	}

	fmt.Printf("  %-*s  %5s  %6s  %7s  %7s  %5s  %s\n", maxIDLen, "Level", "Tries", "Landed", "Crashed", "Skipped", "Rate", "Best")
	fmt.Printf("  %-*s  %5s  %6s  %7s  %7s  %5s  %s\n", maxIDLen, "-----", "-----", "------", "-------", "-------", "----", "----")

	for _, s := range all {
		best := "-"
		if s.BestTicks > 0 {
			best = fmt.Sprintf("%d ticks", s.BestTicks)
		}
		fmt.Printf("  %-*s  %5d  %6d  %7d  %7d  %4.0f%%  %s\n",
			maxIDLen, s.LevelID, s.Attempts, s.Successes, s.Crashes, s.Skips, s.SuccessRate()*100, best)
	}

	runs, err := store.RecentRuns(5)
	if err != nil || len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	for _, r := range runs {
		fmt.Printf("  %s  %s  %d landed, %d crashed\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.RunID, r.Landings, r.Crashes)
	}
}
