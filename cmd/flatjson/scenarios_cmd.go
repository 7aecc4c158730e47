package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/scenarios"
)

func (a *app) newScenariosCmd() *cobra.Command {
	var (
		outDir string
		file   string
		only   []string
	)
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Write input.json and output.csv for each scenario",
		Example: `  flatjson scenarios --out out/scenarios
  flatjson scenarios --file my_scenarios.yaml --only orders`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := scenarios.Builtin()
			if file != "" {
				handle, err := os.Open(file)
				if err != nil {
					return err
				}
				all, err = scenarios.Load(handle)
				handle.Close()
				if err != nil {
					return err
				}
			}
			if len(only) > 0 {
				selected := make([]scenarios.Scenario, 0, len(only))
				for _, name := range only {
					scenario, ok := scenarios.Find(all, name)
					if !ok {
						return fmt.Errorf("%w: unknown scenario %q", errUsage, name)
					}
					selected = append(selected, scenario)
				}
				all = selected
			}

			events := newZapEventLogger(a.logger)
			results, err := scenarios.WriteAll(cmd.Context(), outDir, all, flatten.WithLogger(events))
			for _, result := range results {
				fmt.Fprintf(a.stdout, "%s: wrote %s (%d records)\n", result.Name, result.OutputPath, result.Records)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "out/scenarios", "output directory")
	cmd.Flags().StringVar(&file, "file", "", "YAML scenario list replacing the built-in catalog")
	cmd.Flags().StringArrayVar(&only, "only", nil, "run only the named scenario (repeatable)")
	return cmd
}
