package main

import (
	"github.com/spf13/cobra"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/internal/config"
	"github.com/goliatone/go-flatten/pkg/activity"
)

func (a *app) newRecordsCmd() *cobra.Command {
	flags := &layerFlags{}
	var (
		explode []string
		filter  string
		engine  string
		table   string
	)
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Explode arrays and flatten every candidate into its own record",
		Example: `  flatjson records -i order.json -o lines.csv --explode items --explode discounts
  flatjson records -i order.json -o orders.db --table lines --explode items --filter 'items.qty > 1'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layer := flags.layer(cmd)
			if cmd.Flags().Changed("explode") {
				layer.Explode = explode
			}
			if cmd.Flags().Changed("filter") {
				layer.Filter = config.String(filter)
			}
			if cmd.Flags().Changed("engine") {
				layer.Engine = config.String(engine)
			}
			if cmd.Flags().Changed("table") {
				layer.Table = config.String(table)
			}
			settings, err := a.settings(layer)
			if err != nil {
				return err
			}

			opts, err := settings.FlattenOptions(flatten.StandardFunctions())
			if err != nil {
				return err
			}
			events := newZapEventLogger(a.logger)
			opts = append(opts,
				flatten.WithLogger(events),
				flatten.WithActivityHooks(activity.Hooks{activityLogHook(a.logger)}),
			)
			flattener, err := flatten.New(opts...)
			if err != nil {
				return err
			}

			root, err := a.readInput(flags.input)
			if err != nil {
				return err
			}
			records, err := flattener.Records(cmd.Context(), root)
			if err != nil {
				return err
			}
			return a.writeRecords(cmd.Context(), output{
				path:     flags.output,
				runID:    events.RunID(),
				settings: settings,
			}, records)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVarP(&explode, "explode", "e", nil, "path of an array to explode (repeatable, applied in order)")
	cmd.Flags().StringVar(&filter, "filter", "", "keep records for which this expression is true")
	cmd.Flags().StringVar(&engine, "engine", "", "filter engine: expr, cel or js")
	cmd.Flags().StringVar(&table, "table", "", "table name for SQLite outputs")
	return cmd
}
