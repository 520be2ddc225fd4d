package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/platform/tui"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/sim"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenarios from a menu",
	Long: `Start the viewer in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to run a table.
Closing the viewer returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Run table
  Tab          - Stored runs
  Q            - Quit

Examples:
  pinball menu
  pinball menu --fps 30
  pinball menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	simCfg := loadSimConfig()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var (
		saver    sim.Saver
		runStore tui.RunStore
	)
	if store != nil {
		saver, runStore = store, store
	}

	cfg := runtimeConfig(simCfg.Run.Seed)

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRuns {
			goBack, runsErr := tui.RunRuns(runStore, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.ScenarioID == "" {
			return
		}
		sc, err := registry.Create(menuResult.ScenarioID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scenario: %v\n", err)
			continue
		}

		if _, err := tui.Run(sc, simCfg, saver, cfg, 0, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
			return
		}
	}
}
