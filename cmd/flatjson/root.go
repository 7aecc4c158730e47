package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-flatten/internal/config"
)

// errUsage marks command-line mistakes cobra does not report itself.
var errUsage = errors.New("usage error")

type app struct {
	stdin     io.Reader
	stdout    io.Writer
	lookupEnv func(string) (string, bool)

	configPath string
	verbose    bool
	logger     *zap.Logger
}

func newRootCmd(stdin io.Reader, stdout io.Writer, lookupEnv func(string) (string, bool)) *cobra.Command {
	return newApp(stdin, stdout, lookupEnv).rootCmd()
}

func newApp(stdin io.Reader, stdout io.Writer, lookupEnv func(string) (string, bool)) *app {
	return &app{stdin: stdin, stdout: stdout, lookupEnv: lookupEnv}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flatjson",
		Short: "Flatten nested JSON into tabular records",
		Long: `flatjson turns nested JSON documents into flat records keyed by dotted
paths, optionally exploding arrays into one record per element.

Settings come from --config (YAML), FLATJSON_* environment variables and
flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML settings file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log pipeline stages at debug level")

	root.AddCommand(
		a.newFlattenCmd(),
		a.newRecordsCmd(),
		a.newScenariosCmd(),
	)
	return root
}

// settings resolves configuration with the flags a command changed.
func (a *app) settings(flags config.Layer) (config.Settings, error) {
	settings, err := config.Load(a.configPath, a.lookupEnv, flags)
	if err != nil {
		return config.Settings{}, err
	}
	a.logger.Debug("settings resolved",
		zap.String("separator", settings.Separator),
		zap.String("list_policy", string(settings.ListPolicy)),
		zap.Strings("explode", settings.Explode),
		zap.String("engine", settings.Engine),
		zap.Any("origins", originNames(settings.Origins)),
	)
	return settings, nil
}

func originNames(origins map[string]config.SourceLevel) map[string]string {
	out := make(map[string]string, len(origins))
	for field, level := range origins {
		out[field] = level.String()
	}
	return out
}

// layerFlags holds the flags shared by flatten and records.
type layerFlags struct {
	input      string
	output     string
	separator  string
	listPolicy string
	delimiter  string
}

func (f *layerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "-", "input JSON file, - for stdin")
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "output file (.csv, .json, .jsonl, .db), - for stdout")
	cmd.Flags().StringVar(&f.separator, "sep", "", "key separator (default \".\")")
	cmd.Flags().StringVar(&f.listPolicy, "list-policy", "", "list handling: index or join")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV field delimiter")
}

func (f *layerFlags) layer(cmd *cobra.Command) config.Layer {
	var layer config.Layer
	if cmd.Flags().Changed("sep") {
		layer.Separator = config.String(f.separator)
	}
	if cmd.Flags().Changed("list-policy") {
		layer.ListPolicy = config.String(f.listPolicy)
	}
	if cmd.Flags().Changed("delimiter") {
		layer.Delimiter = config.String(f.delimiter)
	}
	return layer
}
