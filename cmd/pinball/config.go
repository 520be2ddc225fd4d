package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

var flagConfigWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the effective simulation config",
	Long: `Print the config after the search order, --preset and --seed are
applied. With --write, save it as a YAML file instead.

Search order:
  --config path -> ~/.pinball/configs/sim.yaml -> ./configs/sim.yaml -> built-in

Examples:
  pinball config
  pinball config --preset damped
  pinball config --write ~/.pinball/configs/sim.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigWrite, "write", "", "Write the config to this path")
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg := loadSimConfig()

	if flagConfigWrite != "" {
		if err := config.Write(flagConfigWrite, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", flagConfigWrite)
		return
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)

	fmt.Println()
	for _, p := range config.Presets {
		fmt.Printf("# preset %-10s %s\n", p, p.Description())
	}
}
