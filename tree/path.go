package tree

import "strings"

// DefaultSeparator joins path segments when no separator is supplied.
const DefaultSeparator = "."

// Split breaks path into its segments. An empty separator falls back to
// DefaultSeparator.
func Split(path, sep string) []string {
	if sep == "" {
		sep = DefaultSeparator
	}
	return strings.Split(path, sep)
}

// Join appends segment to prefix using sep, returning segment alone when the
// prefix is empty.
func Join(prefix, segment, sep string) string {
	if prefix == "" {
		return segment
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	return prefix + sep + segment
}

// Get walks path segment by segment. Every step must land on a mapping that
// holds the segment as a key; otherwise ok is false. A key holding nil
// resolves with ok set to true.
func Get(root any, path, sep string) (value any, ok bool) {
	current := root
	for _, segment := range Split(path, sep) {
		node, isMap := current.(map[string]any)
		if !isMap {
			return nil, false
		}
		next, exists := node[segment]
		if !exists {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Set assigns value at path inside root, mutating it in place. Missing
// intermediate segments are created as empty mappings and intermediate
// nodes that are not mappings are replaced by one. Set reports false and
// leaves root untouched when root is not a mapping.
func Set(root any, path string, value any, sep string) bool {
	current, ok := root.(map[string]any)
	if !ok || current == nil {
		return false
	}
	segments := Split(path, sep)
	for _, segment := range segments[:len(segments)-1] {
		next, isMap := current[segment].(map[string]any)
		if !isMap || next == nil {
			next = map[string]any{}
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
	return true
}
