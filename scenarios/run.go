package scenarios

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/pkg/sink"
)

// Run flattens s. Dict mode yields one record; records mode explodes the
// scenario's paths. opts are applied before the scenario's own settings.
func Run(ctx context.Context, s Scenario, opts ...flatten.Option) ([]flatten.Record, error) {
	settings, err := s.options()
	if err != nil {
		return nil, err
	}
	flattener, err := flatten.New(append(append([]flatten.Option(nil), opts...), settings...)...)
	if err != nil {
		return nil, fmt.Errorf("scenarios: %s: %w", s.Name, err)
	}

	switch s.Mode {
	case "", ModeDict:
		return []flatten.Record{flattener.Flatten(s.Data)}, nil
	default:
		records, err := flattener.Records(ctx, s.Data)
		if err != nil {
			return nil, fmt.Errorf("scenarios: %s: %w", s.Name, err)
		}
		return records, nil
	}
}

func (s Scenario) options() ([]flatten.Option, error) {
	opts := []flatten.Option{}
	switch s.Mode {
	case "", ModeDict:
	case ModeRecords:
		if len(s.ExplodePaths) > 0 {
			opts = append(opts, flatten.WithExplodePaths(s.ExplodePaths...))
		}
	default:
		return nil, &flatten.InvalidArgumentError{Field: "mode", Value: string(s.Mode), Reason: "must be 'dict' or 'records'"}
	}
	if s.ListPolicy != "" {
		policy, err := flatten.ParseListPolicy(s.ListPolicy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, flatten.WithListPolicy(policy))
	}
	return opts, nil
}

// Result describes the files written for one scenario.
type Result struct {
	Name       string
	InputPath  string
	OutputPath string
	Records    int
}

// WriteAll writes <dir>/<name>/input.json and output.csv for every
// scenario, stopping at the first failure.
func WriteAll(ctx context.Context, dir string, all []Scenario, opts ...flatten.Option) ([]Result, error) {
	results := make([]Result, 0, len(all))
	for _, scenario := range all {
		scenarioDir := filepath.Join(dir, scenario.Name)
		if err := os.MkdirAll(scenarioDir, 0o755); err != nil {
			return results, fmt.Errorf("scenarios: %s: %w", scenario.Name, err)
		}

		input, err := json.MarshalIndent(scenario.Data, "", "  ")
		if err != nil {
			return results, fmt.Errorf("scenarios: %s: encode input: %w", scenario.Name, err)
		}
		inputPath := filepath.Join(scenarioDir, "input.json")
		if err := os.WriteFile(inputPath, input, 0o644); err != nil {
			return results, fmt.Errorf("scenarios: %s: %w", scenario.Name, err)
		}

		records, err := Run(ctx, scenario, opts...)
		if err != nil {
			return results, err
		}
		outputPath := filepath.Join(scenarioDir, "output.csv")
		csvSink := &sink.CSVSink{Path: outputPath}
		if _, err := csvSink.Write(ctx, records); err != nil {
			return results, fmt.Errorf("scenarios: %s: %w", scenario.Name, err)
		}

		results = append(results, Result{
			Name:       scenario.Name,
			InputPath:  inputPath,
			OutputPath: outputPath,
			Records:    len(records),
		})
	}
	return results, nil
}
