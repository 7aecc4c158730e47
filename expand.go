package flatten

import (
	"github.com/goliatone/go-flatten/tree"
)

// Expand returns the candidate values produced by applying every configured
// explode path, in order, to root.
//
// A sequence root contributes each element as an initial candidate; any
// other root is the sole initial candidate. Every candidate is a deep copy,
// so mutating one never affects its siblings or root.
func (f *Flattener) Expand(root any) []any {
	candidates := initialCandidates(root)
	for _, path := range f.cfg.explodePaths {
		candidates = f.explode(candidates, path)
	}
	return candidates
}

func initialCandidates(root any) []any {
	if KindOf(root) != KindSequence {
		return []any{tree.Clone(root)}
	}
	items := sequenceItems(root)
	candidates := make([]any, len(items))
	for i, item := range items {
		candidates[i] = tree.Clone(item)
	}
	return candidates
}

// explode replaces each candidate holding a non-empty sequence at path with
// one copy per element. Candidates are owned by the expansion, so they are
// modified in place before being copied.
func (f *Flattener) explode(candidates []any, path string) []any {
	sep := f.cfg.separator
	out := make([]any, 0, len(candidates))
	for _, candidate := range candidates {
		node, ok := tree.Get(candidate, path, sep)
		if !ok || KindOf(node) != KindSequence {
			out = append(out, candidate)
			continue
		}
		items := sequenceItems(node)
		tree.Set(candidate, path, nil, sep)
		if len(items) == 0 {
			out = append(out, candidate)
			continue
		}
		for _, item := range items {
			clone := tree.Clone(candidate)
			tree.Set(clone, path, item, sep)
			out = append(out, clone)
		}
	}
	return out
}

// Expand is a convenience wrapper that explodes paths on root.
func Expand(root any, paths []string, opts ...Option) ([]any, error) {
	opts = append(append([]Option(nil), opts...), WithExplodePaths(paths...))
	flattener, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return flattener.Expand(root), nil
}
