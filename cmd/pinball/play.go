package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/platform/tui"
	"github.com/vovakirdan/tui-pinball/internal/sim"
)

var flagPlaySteps int

var playCmd = &cobra.Command{
	Use:   "play <scenario|file.yaml>",
	Short: "Watch a scenario",
	Long: `Run the specified scenario in the terminal viewer.

Controls:
  P/Space    - Pause
  N          - Single step (while paused)
  R          - Restart
  J/K        - Move plungers down/up
  Ctrl+S     - Save a screenshot to ~/.pinball/screenshots
  ?          - Toggle help
  Q/Ctrl+C   - Quit

The run is stored in the database when the viewer closes.

Examples:
  pinball play pinball
  pinball play cradle --preset damped
  pinball play pegboard --steps 2000`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlaySteps, "steps", 0, "Stop after this many steps (0 = unlimited)")
}

func runPlay(_ *cobra.Command, args []string) {
	simCfg := loadSimConfig()
	sc := resolveScenario(args[0])
	cfg := runtimeConfig(simCfg.Run.Seed)

	store := openStore()

	var saver sim.Saver
	if store != nil {
		saver = store
	}
	// Viewer logs would land on the alternate screen
	res, runErr := tui.Run(sc, simCfg, saver, cfg, flagPlaySteps, nil)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
		os.Exit(1)
	}
	printResult(res)
}
