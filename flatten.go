package flatten

import (
	"strconv"

	"github.com/goliatone/go-flatten/tree"
)

// Flattener turns JSON-like values into flat records. It holds no mutable
// state and is safe for concurrent use.
type Flattener struct {
	cfg    config
	filter *recordFilter
}

// Flatten produces exactly one record from value.
//
// Mappings contribute their keys joined to the current prefix with the
// separator. Sequences contribute their zero-based indexes, except under
// ListPolicyJoin where an all-scalar sequence collapses into one joined
// string. A sequence with at least one non-scalar element keeps index keys
// under either policy. Scalars are emitted at the current prefix, so a bare
// scalar root is keyed by "".
func (f *Flattener) Flatten(value any) Record {
	record := Record{}
	f.walk(record, value, "")
	return record
}

func (f *Flattener) walk(record Record, node any, prefix string) {
	switch KindOf(node) {
	case KindMapping:
		for key, child := range mappingEntries(node) {
			f.walk(record, child, tree.Join(prefix, key, f.cfg.separator))
		}
	case KindSequence:
		items := sequenceItems(node)
		if len(items) == 0 {
			return
		}
		if f.cfg.listPolicy == ListPolicyJoin && allScalars(items) {
			record[prefix] = joinScalars(items)
			return
		}
		for idx, item := range items {
			f.walk(record, item, tree.Join(prefix, strconv.Itoa(idx), f.cfg.separator))
		}
	default:
		record[prefix] = scalarValue(node)
	}
}

// Flatten is a convenience wrapper around New(opts...).Flatten(value).
func Flatten(value any, opts ...Option) (Record, error) {
	flattener, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return flattener.Flatten(value), nil
}
