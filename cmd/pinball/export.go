package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <scenario>",
	Short: "Print a scenario as YAML",
	Long: `Write a scenario in the YAML file format, ready to edit and load with
'pinball run <file>'.

Examples:
  pinball export pinball
  pinball export pegboard -o ./tables/pegboard.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Write to file instead of stdout")
}

func runExport(_ *cobra.Command, args []string) {
	sc := resolveScenario(args[0])

	data, err := yaml.Marshal(&sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding scenario: %v\n", err)
		os.Exit(1)
	}

	if flagExportOut == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", flagExportOut, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", flagExportOut)
}
