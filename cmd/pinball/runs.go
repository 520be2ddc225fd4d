package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scenario]",
	Short: "Show stored runs",
	Long: `Display recent stored runs, optionally for a single scenario.

Without a scenario, a per-scenario summary is printed first.

Examples:
  pinball runs
  pinball runs pinball --limit 20
  pinball runs cradle --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the stored runs instead of listing them")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scenarioID := ""
	if len(args) == 1 {
		scenarioID = args[0]
	}

	if flagRunsClear {
		if scenarioID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a scenario")
			os.Exit(1)
		}
		if err := store.ClearRuns(scenarioID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Runs cleared.")
		return
	}

	var runs []storage.Run
	if scenarioID == "" {
		printSummary(store)
		runs, err = store.RecentRuns(flagRunsLimit)
	} else {
		runs, err = store.RunsByScenario(scenarioID, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Use 'pinball run <scenario> --save' to record one.")
		return
	}

	fmt.Printf("  %-36s  %-10s  %7s  %7s  %8s  %-16s  %s\n",
		"Run", "Scenario", "Steps", "Ceiling", "Contacts", "Hash", "Date")
	fmt.Printf("  %-36s  %-10s  %7s  %7s  %8s  %-16s  %s\n",
		"---", "--------", "-----", "-------", "--------", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-10s  %7d  %7d  %8d  %016x  %s\n",
			r.RunID, r.Scenario, r.Steps, r.CeilingHits, r.Contacts, r.FinalHash,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printSummary(store *storage.Store) {
	all, err := store.AllScenarioStats()
	if err != nil || len(all) == 0 {
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-10s  %5s  %10s  %12s  %12s\n", "Scenario", "Runs", "Steps", "Best ceiling", "Avg contacts")
	fmt.Printf("  %-10s  %5s  %10s  %12s  %12s\n", "--------", "----", "-----", "------------", "------------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-10s  %5d  %10d  %12d  %12.1f\n", id, s.RunsCount, s.TotalSteps, s.MaxCeilingHits, s.AvgContacts)
	}
	fmt.Println()
}
