// pinball runs 2D collision scenarios headless or in the terminal.
//
// Usage:
//
//	pinball list                 - List built-in scenarios
//	pinball run <scenario|file>  - Run a scenario headless and print stats
//	pinball play <scenario|file> - Watch a scenario in the terminal
//	pinball menu                 - Pick scenarios interactively
//	pinball serve                - Start SSH server for remote viewing
//	pinball runs [scenario]      - Show stored runs
//	pinball bench                - Run every built-in concurrently
//	pinball export <scenario>    - Print a scenario as YAML
//	pinball config               - Print or write the simulation config
//
// Global flags:
//
//	--config <path>  - Simulation config YAML
//	--preset <name>  - Physics preset: default, elastic, damped, proximity
//	--seed <value>   - Particle RNG seed
//	--db <path>      - Set database path (default: ~/.pinball/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/scenario"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagPreset  string
	flagSeed    int64
	flagDBPath  string
	flagFPS     int
	flagVerbose bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "pinball",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pinball",
	Short: "TUI Pinball - 2D collision scenarios in your terminal",
	Long: `TUI Pinball steps balls through boxes, pegs, ramps and plungers
and shows them in your terminal.

Available commands:
  list     - Show all built-in scenarios
  run      - Run a scenario headless
  play     - Watch a scenario
  menu     - Interactive scenario picker
  serve    - Start SSH server for remote viewing
  runs     - View stored runs
  bench    - Run every built-in scenario concurrently
  export   - Print a scenario as YAML
  config   - Print or write the simulation config

Examples:
  pinball list
  pinball run pinball --steps 600 --save
  pinball play pegboard --preset damped
  pinball serve --ssh :2222
  pinball runs cradle`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Physics preset: default, elastic, damped, proximity")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Particle RNG seed (0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pinball/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Viewer tick rate (frames per second)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSimConfig loads the config named by --config and applies --preset
// and --seed on top.
func loadSimConfig() config.SimConfig {
	cfg, err := config.LoadSim(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&cfg, preset)

	if flagSeed != 0 {
		cfg.Run.Seed = flagSeed
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// resolveScenario accepts a registered scenario ID or a path to a scenario file.
func resolveScenario(arg string) scenario.Scenario {
	if scenario.IsScenarioFile(arg) {
		if _, err := os.Stat(arg); err == nil {
			sc, err := scenario.NewLoader("").LoadFile(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return sc
		}
	}

	if !registry.Exists(arg) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", arg)
		fmt.Fprintln(os.Stderr, "Run 'pinball list' to see available scenarios.")
		os.Exit(1)
	}
	sc, err := registry.Create(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scenario: %v\n", err)
		os.Exit(1)
	}
	return sc
}

// openStore opens the runs database. Failures are reported and a nil store
// is returned so callers can continue without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the viewer to the current terminal.
func runtimeConfig(seed int64) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}
