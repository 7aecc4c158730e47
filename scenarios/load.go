package scenarios

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Load parses a YAML list of scenarios. Mapping keys that are not strings
// are converted with fmt.Sprint so documents stay JSON-like.
func Load(r io.Reader) ([]Scenario, error) {
	var loaded []Scenario
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&loaded); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scenarios: decode yaml: %w", err)
	}

	seen := map[string]struct{}{}
	for i := range loaded {
		scenario := &loaded[i]
		if scenario.Name == "" {
			return nil, fmt.Errorf("scenarios: entry %d has no name", i)
		}
		if _, dup := seen[scenario.Name]; dup {
			return nil, fmt.Errorf("scenarios: duplicate name %q", scenario.Name)
		}
		seen[scenario.Name] = struct{}{}
		scenario.Data = normalize(scenario.Data)
	}
	if loaded == nil {
		loaded = []Scenario{}
	}
	return loaded, nil
}

func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, child := range typed {
			typed[key] = normalize(child)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, child := range typed {
			out[fmt.Sprint(key)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range typed {
			typed[i] = normalize(child)
		}
		return typed
	default:
		return value
	}
}
