package main

import (
	"github.com/spf13/cobra"

	flatten "github.com/goliatone/go-flatten"
)

func (a *app) newFlattenCmd() *cobra.Command {
	flags := &layerFlags{}
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Flatten a JSON document into a single record",
		Example: `  flatjson flatten --input order.json --output order.csv
  cat order.json | flatjson flatten --list-policy join`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings(flags.layer(cmd))
			if err != nil {
				return err
			}
			flattener, err := flatten.New(
				flatten.WithSeparator(settings.Separator),
				flatten.WithListPolicy(settings.ListPolicy),
			)
			if err != nil {
				return err
			}

			root, err := a.readInput(flags.input)
			if err != nil {
				return err
			}
			record := flattener.Flatten(root)
			return a.writeRecords(cmd.Context(), output{
				path:     flags.output,
				single:   true,
				settings: settings,
			}, []flatten.Record{record})
		},
	}
	flags.register(cmd)
	return cmd
}
