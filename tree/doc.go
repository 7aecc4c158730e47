// Package tree reads, writes and copies JSON-like values: trees built from
// map[string]any, []any and scalars, as produced by encoding/json.
//
// Paths address nested mappings by key, joined with a separator (default
// "."). Sequences are never indexed by a path: a path that crosses a
// sequence does not resolve.
package tree
