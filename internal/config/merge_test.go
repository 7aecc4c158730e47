package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nested struct {
	Name  *string
	Tags  []string
	Attrs map[string]string
}

type sample struct {
	Level  *int
	Nested *nested
	Plain  string
}

func TestMergeLayersPrefersStrongerValues(t *testing.T) {
	strong := sample{Level: ptr(3), Nested: &nested{Tags: []string{"a"}}}
	weak := sample{
		Level:  ptr(1),
		Nested: &nested{Name: ptr("weak"), Tags: []string{"x", "y"}, Attrs: map[string]string{"k": "v"}},
		Plain:  "weak",
	}

	merged := MergeLayers(strong, weak)

	require.NotNil(t, merged.Level)
	assert.Equal(t, 3, *merged.Level)
	require.NotNil(t, merged.Nested)
	assert.Equal(t, "weak", *merged.Nested.Name)
	assert.Equal(t, []string{"a"}, merged.Nested.Tags, "slices replace")
	assert.Equal(t, map[string]string{"k": "v"}, merged.Nested.Attrs)
	assert.Equal(t, "", merged.Plain, "plain values always come from the strongest layer")
}

func TestMergeLayersDoesNotShareMemory(t *testing.T) {
	weak := sample{Nested: &nested{Tags: []string{"x"}, Attrs: map[string]string{"k": "v"}}}

	merged := MergeLayers(sample{}, weak)
	merged.Nested.Tags[0] = "changed"
	merged.Nested.Attrs["k"] = "changed"

	assert.Equal(t, "x", weak.Nested.Tags[0])
	assert.Equal(t, "v", weak.Nested.Attrs["k"])
}

func TestMergeLayersMergesMapsKeyByKey(t *testing.T) {
	strong := nested{Attrs: map[string]string{"a": "strong"}}
	weak := nested{Attrs: map[string]string{"a": "weak", "b": "weak"}}

	merged := MergeLayers(strong, weak)

	assert.Equal(t, map[string]string{"a": "strong", "b": "weak"}, merged.Attrs)
}

func TestMergeLayersEmpty(t *testing.T) {
	assert.Equal(t, sample{}, MergeLayers[sample]())
}
