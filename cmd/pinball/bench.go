package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/sim"
)

var (
	flagBenchSteps   int
	flagBenchWorkers int
	flagBenchRepeat  int
)

var benchCmd = &cobra.Command{
	Use:   "bench [scenario...]",
	Short: "Run scenarios concurrently and report timings",
	Long: `Run every built-in scenario (or the ones named) on its own arena,
several at a time, and report per-run timings and final hashes.

Each arena is stepped by a single goroutine; only independent runs
execute in parallel. Repeated runs of one scenario must report the
same hash.

Examples:
  pinball bench
  pinball bench --steps 5000 --workers 4
  pinball bench pegboard --repeat 8`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchSteps, "steps", 0, "Steps per run (0 = config value)")
	benchCmd.Flags().IntVar(&flagBenchWorkers, "workers", runtime.NumCPU(), "Concurrent runs")
	benchCmd.Flags().IntVar(&flagBenchRepeat, "repeat", 1, "Runs per scenario")
}

func runBench(_ *cobra.Command, args []string) {
	cfg := loadSimConfig()
	steps := cfg.Run.Steps
	if flagBenchSteps > 0 {
		steps = flagBenchSteps
	}

	ids := args
	if len(ids) == 0 {
		ids = registry.IDs()
	}

	var jobs []sim.Job
	for _, id := range ids {
		sc := resolveScenario(id)
		for i := 0; i < max(flagBenchRepeat, 1); i++ {
			jobs = append(jobs, sim.Job{Scenario: sc.Clone(), Config: cfg, Steps: steps})
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results, err := sim.RunBatch(ctx, jobs, flagBenchWorkers, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	wall := time.Since(start)

	fmt.Printf("  %-10s  %7s  %8s  %12s  %s\n", "Scenario", "Steps", "Contacts", "Elapsed", "Hash")
	fmt.Printf("  %-10s  %7s  %8s  %12s  %s\n", "--------", "-----", "--------", "-------", "----")

	var total time.Duration
	hashes := make(map[string]uint64)
	mismatch := false
	for _, r := range results {
		total += r.Elapsed
		if h, ok := hashes[r.Scenario]; ok && h != r.Hash {
			mismatch = true
		}
		hashes[r.Scenario] = r.Hash
		fmt.Printf("  %-10s  %7d  %8d  %12s  %016x\n",
			r.Scenario, r.Stats.Steps, r.Stats.TotalContacts(), r.Elapsed.Round(time.Microsecond), r.Hash)
	}

	fmt.Println()
	fmt.Printf("%d runs on %d workers in %s (sum of runs %s)\n",
		len(results), max(flagBenchWorkers, 1), wall.Round(time.Millisecond), total.Round(time.Millisecond))

	if mismatch {
		fmt.Fprintln(os.Stderr, "Error: repeated runs produced different hashes")
		os.Exit(1)
	}
}
