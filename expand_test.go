package flatten

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandCartesianProduct(t *testing.T) {
	root := map[string]any{
		"id": 1,
		"a":  []any{1, 2, 3},
		"b":  []any{"x", "y"},
	}
	got, err := Expand(root, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []any{
		map[string]any{"id": 1, "a": 1, "b": "x"},
		map[string]any{"id": 1, "a": 1, "b": "y"},
		map[string]any{"id": 1, "a": 2, "b": "x"},
		map[string]any{"id": 1, "a": 2, "b": "y"},
		map[string]any{"id": 1, "a": 3, "b": "x"},
		map[string]any{"id": 1, "a": 3, "b": "y"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandEdgeCases(t *testing.T) {
	cases := []struct {
		name  string
		root  any
		paths []string
		want  []any
	}{
		{
			name:  "empty list keeps candidate with null",
			root:  map[string]any{"id": 1, "items": []any{}},
			paths: []string{"items"},
			want:  []any{map[string]any{"id": 1, "items": nil}},
		},
		{
			name:  "missing path passes through",
			root:  map[string]any{"id": 1},
			paths: []string{"items"},
			want:  []any{map[string]any{"id": 1}},
		},
		{
			name:  "non-list path passes through",
			root:  map[string]any{"items": "none"},
			paths: []string{"items"},
			want:  []any{map[string]any{"items": "none"}},
		},
		{
			name:  "nested path",
			root:  map[string]any{"order": map[string]any{"lines": []any{"a", "b"}}},
			paths: []string{"order.lines"},
			want: []any{
				map[string]any{"order": map[string]any{"lines": "a"}},
				map[string]any{"order": map[string]any{"lines": "b"}},
			},
		},
		{
			name:  "list root yields each element",
			root:  []any{map[string]any{"id": 1}, map[string]any{"id": 2}},
			paths: nil,
			want:  []any{map[string]any{"id": 1}, map[string]any{"id": 2}},
		},
		{
			name:  "empty list root yields nothing",
			root:  []any{},
			paths: []string{"items"},
			want:  []any{},
		},
		{
			name:  "typed slice explodes",
			root:  map[string]any{"id": 1, "items": []string{"x", "y"}},
			paths: []string{"items"},
			want: []any{
				map[string]any{"id": 1, "items": "x"},
				map[string]any{"id": 1, "items": "y"},
			},
		},
		{
			name:  "typed list root yields each element",
			root:  []map[string]string{{"id": "a"}, {"id": "b"}},
			paths: nil,
			want:  []any{map[string]string{"id": "a"}, map[string]string{"id": "b"}},
		},
		{
			name:  "scalar root",
			root:  "x",
			paths: []string{"items"},
			want:  []any{"x"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Expand(tc.root, tc.paths)
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandCandidatesDoNotAlias(t *testing.T) {
	root := map[string]any{
		"meta":  map[string]any{"k": "v"},
		"items": []any{map[string]any{"sku": "A"}, map[string]any{"sku": "B"}},
	}
	got, err := Expand(root, []string{"items"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	first := got[0].(map[string]any)
	first["meta"].(map[string]any)["k"] = "changed"
	first["items"].(map[string]any)["sku"] = "Z"

	if v := got[1].(map[string]any)["meta"].(map[string]any)["k"]; v != "v" {
		t.Fatalf("sibling shares meta: %v", v)
	}
	if v := root["meta"].(map[string]any)["k"]; v != "v" {
		t.Fatalf("input shares meta: %v", v)
	}
	if v := root["items"].([]any)[0].(map[string]any)["sku"]; v != "A" {
		t.Fatalf("input item mutated: %v", v)
	}
}

func TestExpandRejectsEmptyPath(t *testing.T) {
	_, err := Expand(map[string]any{}, []string{""})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestExpandUsesConfiguredSeparator(t *testing.T) {
	root := map[string]any{"order": map[string]any{"lines": []any{1, 2}}}
	got, err := Expand(root, []string{"order/lines"}, WithSeparator("/"))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}
