package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/pkg/activity"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FLATJSON_"

// Layer is one source's view of the settings. Nil means "not set here".
type Layer struct {
	Separator  *string        `yaml:"separator"`
	ListPolicy *string        `yaml:"list_policy"`
	Explode    []string       `yaml:"explode"`
	Filter     *string        `yaml:"filter"`
	Engine     *string        `yaml:"engine"`
	Delimiter  *string        `yaml:"delimiter"`
	Table      *string        `yaml:"table"`
	Activity   *ActivityLayer `yaml:"activity"`
}

type ActivityLayer struct {
	Enabled *bool   `yaml:"enabled"`
	Channel *string `yaml:"channel"`
}

// Settings is the resolved configuration.
type Settings struct {
	Separator  string
	ListPolicy flatten.ListPolicy
	Explode    []string
	Filter     string
	Engine     string
	Delimiter  rune
	Table      string
	Activity   activity.Config
	// Origins maps each yaml field name to the source that supplied it.
	Origins map[string]SourceLevel
}

// Defaults is the weakest layer.
func Defaults() Layer {
	enabled := true
	return Layer{
		Separator:  ptr(flatten.DefaultSeparator),
		ListPolicy: ptr(string(flatten.ListPolicyIndex)),
		Explode:    []string{},
		Filter:     ptr(""),
		Engine:     ptr("expr"),
		Delimiter:  ptr(","),
		Table:      ptr("records"),
		Activity: &ActivityLayer{
			Enabled: &enabled,
			Channel: ptr(activity.DefaultChannel),
		},
	}
}

// ReadFile parses a YAML layer from path. An empty path yields an empty
// layer.
func ReadFile(path string) (Layer, error) {
	if strings.TrimSpace(path) == "" {
		return Layer{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	layer, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Layer{}, fmt.Errorf("config: %q: %w", path, err)
	}
	return layer, nil
}

// Parse decodes a YAML layer. Unknown keys are rejected.
func Parse(r io.Reader) (Layer, error) {
	var layer Layer
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&layer); err != nil && !errors.Is(err, io.EOF) {
		return Layer{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	return layer, nil
}

// FromEnv builds a layer from FLATJSON_* variables using lookup (os.LookupEnv
// when nil).
func FromEnv(lookup func(string) (string, bool)) Layer {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var layer Layer
	if value, ok := lookup(EnvPrefix + "SEPARATOR"); ok {
		layer.Separator = ptr(value)
	}
	if value, ok := lookup(EnvPrefix + "LIST_POLICY"); ok {
		layer.ListPolicy = ptr(value)
	}
	if value, ok := lookup(EnvPrefix + "EXPLODE"); ok {
		layer.Explode = splitList(value)
	}
	if value, ok := lookup(EnvPrefix + "FILTER"); ok {
		layer.Filter = ptr(value)
	}
	if value, ok := lookup(EnvPrefix + "ENGINE"); ok {
		layer.Engine = ptr(value)
	}
	return layer
}

// Resolve merges layers by source level and validates the result.
func Resolve(layers ...SourcedLayer) (Settings, error) {
	ordered := slices.Clone(layers)
	slices.SortStableFunc(ordered, func(a, b SourcedLayer) int {
		return int(b.Source) - int(a.Source)
	})

	values := make([]Layer, len(ordered))
	for i, sourced := range ordered {
		values[i] = sourced.Layer
	}
	merged := MergeLayers(values...)

	settings := Settings{
		Separator: deref(merged.Separator),
		Explode:   merged.Explode,
		Filter:    deref(merged.Filter),
		Engine:    strings.ToLower(strings.TrimSpace(deref(merged.Engine))),
		Table:     deref(merged.Table),
		Origins:   origins(ordered),
	}
	if settings.Explode == nil {
		settings.Explode = []string{}
	}
	for _, path := range settings.Explode {
		if path == "" {
			return Settings{}, &flatten.InvalidArgumentError{Field: "explode", Value: path, Reason: "paths must not be empty"}
		}
	}

	policy, err := flatten.ParseListPolicy(deref(merged.ListPolicy))
	if err != nil {
		return Settings{}, err
	}
	settings.ListPolicy = policy

	if settings.Separator == "" {
		return Settings{}, &flatten.InvalidArgumentError{Field: "separator", Value: "", Reason: "must not be empty"}
	}

	delimiter := deref(merged.Delimiter)
	if delimiter == "" {
		delimiter = ","
	}
	if utf8.RuneCountInString(delimiter) != 1 {
		return Settings{}, &flatten.InvalidArgumentError{Field: "delimiter", Value: delimiter, Reason: "must be a single character"}
	}
	settings.Delimiter, _ = utf8.DecodeRuneInString(delimiter)

	settings.Activity = activity.Config{Enabled: true, Channel: activity.DefaultChannel}
	if merged.Activity != nil {
		if merged.Activity.Enabled != nil {
			settings.Activity.Enabled = *merged.Activity.Enabled
		}
		if merged.Activity.Channel != nil && *merged.Activity.Channel != "" {
			settings.Activity.Channel = *merged.Activity.Channel
		}
	}
	return settings, nil
}

// Load resolves defaults, the YAML file at path, the environment and flags.
func Load(path string, lookup func(string) (string, bool), flags Layer) (Settings, error) {
	file, err := ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(
		SourcedLayer{Source: SourceDefaults, Layer: Defaults()},
		SourcedLayer{Source: SourceFile, Layer: file},
		SourcedLayer{Source: SourceEnv, Layer: FromEnv(lookup)},
		SourcedLayer{Source: SourceFlags, Layer: flags},
	)
}

// FlattenOptions converts settings into library options. registry may be
// nil.
func (s Settings) FlattenOptions(registry *flatten.FunctionRegistry) ([]flatten.Option, error) {
	opts := []flatten.Option{
		flatten.WithSeparator(s.Separator),
		flatten.WithListPolicy(s.ListPolicy),
		flatten.WithActivityConfig(s.Activity),
	}
	if len(s.Explode) > 0 {
		opts = append(opts, flatten.WithExplodePaths(s.Explode...))
	}
	if s.Filter != "" {
		evaluator, err := flatten.NewEvaluatorByName(s.Engine, flatten.NewMemoryProgramCache(), registry)
		if err != nil {
			return nil, err
		}
		opts = append(opts, flatten.WithEvaluator(evaluator), flatten.WithFilter(s.Filter))
	}
	return opts, nil
}

// origins records, per top-level field, the strongest source that set it.
// layers must be ordered strongest first.
func origins(layers []SourcedLayer) map[string]SourceLevel {
	out := map[string]SourceLevel{}
	layerType := reflect.TypeOf(Layer{})
	for i := 0; i < layerType.NumField(); i++ {
		name := strings.Split(layerType.Field(i).Tag.Get("yaml"), ",")[0]
		for _, sourced := range layers {
			if !reflect.ValueOf(sourced.Layer).Field(i).IsNil() {
				out[name] = sourced.Source
				break
			}
		}
	}
	return out
}

// splitList splits a comma separated value. Blank segments are kept so that
// Resolve rejects them; a blank value yields an empty list.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func ptr[T any](value T) *T {
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// String returns a pointer to value, for building flag layers.
func String(value string) *string {
	return &value
}
