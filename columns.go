package flatten

import "sort"

// Column describes one flat key across a set of records.
type Column struct {
	Name string
	// Kind is the kind of the first non-null value, KindNull when every
	// record holds nil or lacks the key.
	Kind Kind
	// Sample is the first non-null value.
	Sample any
}

// Columns returns the sorted union of keys across records, the header
// layout used by tabular sinks.
func Columns(records []Record) []string {
	seen := map[string]struct{}{}
	for _, record := range records {
		for key := range record {
			seen[key] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for key := range seen {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// DescribeColumns returns one Column per key in Columns order.
func DescribeColumns(records []Record) []Column {
	names := Columns(records)
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name, Kind: KindNull}
		for _, record := range records {
			value, ok := record[name]
			if !ok || value == nil {
				continue
			}
			columns[i].Kind = KindOf(value)
			columns[i].Sample = value
			break
		}
	}
	return columns
}
