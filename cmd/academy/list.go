package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all lessons",
	Long:  `Shows the built-in lessons and any lessons loaded with --lessons.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	all := app.catalog.List()

	if len(all) == 0 {
		fmt.Println("No lessons available.")
		return
	}

	fmt.Println("Available lessons:")
	fmt.Println()

	// Calculate column widths
	maxTitleLen := len("Title")
	for _, l := range all {
		if len(l.Title) > maxTitleLen {
			maxTitleLen = len(l.Title)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-5s  %-6s  %s\n", "ID", maxTitleLen, "Title", "Grid", "Blocks", "Source")
	fmt.Printf("  %-3s  %-*s  %-5s  %-6s  %s\n", "--", maxTitleLen, "-----", "----", "------", "------")

	for _, l := range all {
		blocks := "-"
		if l.MaxBlocks > 0 {
			blocks = strconv.Itoa(l.MaxBlocks)
		}
		fmt.Printf("  %-3d  %-*s  %-5d  %-6s  %s\n", l.ID, maxTitleLen, l.Title, l.Size(app.cfg.Board.GridSize), blocks, l.Source)
	}

	fmt.Println()
	fmt.Println("Run 'academy play <id>' to start a lesson.")
}
