// Package flatten converts nested JSON-like values into flat records keyed
// by dotted paths, suitable for tabular sinks such as CSV files or SQL
// tables.
//
// A JSON-like value is a tree of map[string]any, []any and scalars (nil,
// bool, numbers, json.Number, string, time.Time), which is what
// encoding/json produces when decoding into an `any`.
//
// Flatten walks one value and emits exactly one Record:
//
//	flatten.Flatten(map[string]any{"a": map[string]any{"b": 1}})
//	// Record{"a.b": 1}
//
// Sequences follow a ListPolicy. ListPolicyIndex emits one key per element
// ("tags.0", "tags.1"). ListPolicyJoin collapses a sequence whose elements
// are all scalars into one comma separated string, with nil rendered as the
// empty string; a sequence holding any mapping or sequence falls back to
// index keys even under ListPolicyJoin. Empty sequences emit no key under
// either policy. A bare scalar root is emitted under the empty key "".
//
// Records explodes sequences found at explode paths before flattening. Each
// path multiplies the candidate set: a candidate holding N elements at the
// path is replaced by N copies, each carrying one element at that path.
// Several paths produce the cartesian product of their elements. A path
// that does not resolve to a sequence leaves the candidate unchanged, and an
// empty sequence keeps the candidate with nil at the path. Candidates are
// deep copies and never share mutable state with each other or with the
// input.
//
// The number of records grows multiplicatively with the number of explode
// paths and the sizes of the sequences they address. Bounding that growth
// is left to the caller.
package flatten
