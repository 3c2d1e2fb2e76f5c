package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign",
	Long:  `Shows the levels in flight order, from --levels or the built-in campaign.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	campaign, err := loadCampaign()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Campaign:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range campaign {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-7s  %s\n", "#", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-3s  %-*s  %-7s  %s\n", "-", maxIDLen, "--", "----", "----")

	for i, l := range campaign {
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-3d  %-*s  %-7s  %s\n", i+1, maxIDLen, l.ID, size, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'rocket play --level <#>' to start at a level.")
}
