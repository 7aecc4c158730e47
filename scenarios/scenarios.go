// Package scenarios catalogues JSON shapes that are awkward to flatten and
// runs them through the flattener.
package scenarios

import (
	"fmt"
	"time"
)

// Mode selects how a scenario is flattened.
type Mode string

const (
	// ModeDict flattens the whole document into one record.
	ModeDict Mode = "dict"
	// ModeRecords explodes the document into many records.
	ModeRecords Mode = "records"
)

// Scenario is a named input document plus the settings used to flatten it.
type Scenario struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Data         any      `yaml:"data" json:"data"`
	Mode         Mode     `yaml:"mode,omitempty" json:"mode,omitempty"`
	ListPolicy   string   `yaml:"list_policy,omitempty" json:"list_policy,omitempty"`
	ExplodePaths []string `yaml:"explode_paths,omitempty" json:"explode_paths,omitempty"`
}

// Builtin returns the bundled scenarios. Each call returns fresh data.
func Builtin() []Scenario {
	return []Scenario{
		{
			Name:        "nested_objects",
			Description: "Nested objects with scalar fields.",
			Data: map[string]any{
				"order":    map[string]any{"id": 42, "meta": map[string]any{"source": "api"}},
				"customer": "acme",
			},
		},
		{
			Name:        "list_of_primitives",
			Description: "Array of primitives joined into a single field.",
			Data: map[string]any{
				"tags":   []any{"blue", "green", "red"},
				"active": true,
			},
			ListPolicy: "join",
		},
		{
			Name:        "list_of_objects_explode",
			Description: "Explode list of objects into multiple records.",
			Data: map[string]any{
				"order_id": 1001,
				"items": []any{
					map[string]any{"sku": "A1", "qty": 2},
					map[string]any{"sku": "B2", "qty": 1},
				},
			},
			Mode:         ModeRecords,
			ExplodePaths: []string{"items"},
		},
		{
			Name:        "multi_path_explosion",
			Description: "Explode multiple list paths for cartesian expansion.",
			Data: map[string]any{
				"order_id":  2001,
				"items":     []any{map[string]any{"sku": "A1"}, map[string]any{"sku": "B2"}},
				"discounts": []any{map[string]any{"code": "NEW10"}, map[string]any{"code": "VIP"}},
			},
			Mode:         ModeRecords,
			ExplodePaths: []string{"items", "discounts"},
		},
		{
			Name:        "mixed_types",
			Description: "Mixed types and null values across nested fields.",
			Data: map[string]any{
				"profile": map[string]any{"age": nil, "score": 9.5},
				"flags":   []any{true, false},
			},
		},
		{
			Name:        "deep_nesting",
			Description: "Deeply nested structures with optional fields.",
			Data: map[string]any{
				"a":        map[string]any{"b": map[string]any{"c": map[string]any{"d": 7}}},
				"optional": map[string]any{},
			},
		},
		{
			Name:        "nested_arrays",
			Description: "Arrays containing nested arrays and objects.",
			Data: map[string]any{
				"user_id": 123,
				"transactions": []any{
					map[string]any{
						"id": "t1",
						"items": []any{
							map[string]any{"name": "apple", "price": 1.5},
							map[string]any{"name": "banana", "price": 0.8},
						},
						"tags": []any{"food", "grocery"},
					},
					map[string]any{
						"id":    "t2",
						"items": []any{map[string]any{"name": "book", "price": 15.0}},
						"tags":  []any{"education"},
					},
				},
			},
			Mode:         ModeRecords,
			ExplodePaths: []string{"transactions"},
		},
		{
			Name:        "complex_mixed_types",
			Description: "Complex structure with arrays mixing objects and primitives.",
			Data: map[string]any{
				"event_id": "evt_001",
				"metadata": map[string]any{
					"sources":    []any{"api", "webhook", "batch"},
					"timestamps": []any{at(2024, time.January, 1, 12, 0)},
					"nested": map[string]any{
						"values": []any{1, 2, map[string]any{"special": true}},
					},
				},
				"status": "active",
			},
		},
		{
			Name:        "empty_and_null_handling",
			Description: "Handling of empty arrays, null values, and missing keys.",
			Data: map[string]any{
				"id":         1,
				"name":       "test",
				"empty_list": []any{},
				"null_field": nil,
				"nested":     map[string]any{"present": "value", "missing": nil},
				"optional":   map[string]any{},
			},
		},
		{
			Name:        "date_and_datetime",
			Description: "Structures containing date and datetime values.",
			Data: map[string]any{
				"order_id":   5001,
				"created_at": at(2024, time.January, 15, 10, 30),
				"events": []any{
					map[string]any{"type": "created", "timestamp": at(2024, time.January, 15, 10, 30)},
					map[string]any{"type": "updated", "timestamp": at(2024, time.January, 15, 11, 0)},
				},
			},
			Mode:         ModeRecords,
			ExplodePaths: []string{"events"},
		},
		{
			Name:        "large_cartesian_product",
			Description: "Large cartesian product from multiple array explosions.",
			Data: map[string]any{
				"batch_id": "batch_001",
				"products": numbered("id", "p", 3),
				"regions":  numbered("code", "R", 2),
				"channels": numbered("name", "C", 2),
			},
			Mode:         ModeRecords,
			ExplodePaths: []string{"products", "regions", "channels"},
		},
	}
}

// Find returns the scenario called name.
func Find(all []Scenario, name string) (Scenario, bool) {
	for _, scenario := range all {
		if scenario.Name == name {
			return scenario, true
		}
	}
	return Scenario{}, false
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func numbered(key, prefix string, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = map[string]any{key: fmt.Sprintf("%s%d", prefix, i+1)}
	}
	return out
}
