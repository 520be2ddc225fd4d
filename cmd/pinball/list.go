package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built-in scenarios",
	Long:  `Shows a list of all scenarios registered with the viewer.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, s := range scenarios {
		maxIDLen = max(maxIDLen, len(s.ID))
		maxTitleLen = max(maxTitleLen, len(s.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Shapes")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")
	for _, s := range scenarios {
		fmt.Printf("  %-*s  %-*s  %d\n", maxIDLen, s.ID, maxTitleLen, s.Title, s.Shapes)
	}

	fmt.Println()
	fmt.Println("Run 'pinball play <id>' to watch a scenario.")
}
