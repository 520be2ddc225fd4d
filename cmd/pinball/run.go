package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/physics"
	"github.com/vovakirdan/tui-pinball/internal/sim"
)

var (
	flagSteps int
	flagSave  bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario|file.yaml>",
	Short: "Run a scenario headless",
	Long: `Step a scenario without a display and print run statistics.

Runs use a step-derived clock, so the same scenario, config and seed
always produce the same final hash.

Examples:
  pinball run pinball
  pinball run pegboard --steps 10000 --save
  pinball run ./tables/custom.yaml --preset proximity`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagSteps, "steps", 0, "Number of steps (0 = config value)")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Store the run in the database")
}

func runRun(_ *cobra.Command, args []string) {
	cfg := loadSimConfig()
	sc := resolveScenario(args[0])

	steps := cfg.Run.Steps
	if flagSteps > 0 {
		steps = flagSteps
	}

	arena, err := sc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	runner, err := sim.New(sc.ID, arena, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, runErr := runner.Run(ctx, steps)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}

	res := runner.Result()
	if flagSave {
		if store := openStore(); store != nil {
			if err := res.Save(store); err != nil {
				logger.Warn("could not save run", "error", err)
			}
			store.Close()
		}
	}

	printResult(res)
}

func printResult(res sim.Result) {
	fmt.Printf("Scenario   %s\n", res.Scenario)
	if res.RunID != "" {
		fmt.Printf("Run        %s\n", res.RunID)
	}
	fmt.Printf("Steps      %d\n", res.Stats.Steps)
	fmt.Printf("Balls      %d\n", res.Balls)
	fmt.Printf("Ceiling    %d\n", res.Stats.CeilingHits)
	if res.Stats.ActivatedAt > 0 {
		fmt.Printf("Plungers   active from step %d\n", res.Stats.ActivatedAt)
	}
	fmt.Printf("Particles  peak %d\n", res.Stats.PeakParticles)
	fmt.Printf("Elapsed    %s\n", res.Elapsed)
	fmt.Printf("Hash       %016x\n", res.Hash)
	fmt.Println()

	fmt.Printf("  %-13s  %s\n", "Contact", "Count")
	fmt.Printf("  %-13s  %s\n", "-------", "-----")
	for k := 0; k < physics.NumEventKinds; k++ {
		kind := physics.EventKind(k) //#nosec G115 -- k < NumEventKinds
		fmt.Printf("  %-13s  %d\n", kind, res.Stats.ContactsBy(kind))
	}
	fmt.Printf("  %-13s  %d\n", "total", res.Stats.TotalContacts())
}
