// Package sink delivers flat records to tabular destinations.
//
// A Sink accepts an ordered batch of records and reports how many it
// stored. File sinks (CSV, JSON, JSON Lines) rewrite their destination on
// every Write; the SQLite sink appends rows to a table, creating the table
// and any missing columns on demand.
//
// Open picks an implementation from the destination's file extension:
//
//	.csv                      CSVSink
//	.jsonl, .ndjson           JSONLinesSink
//	.db, .sqlite, .sqlite3    SQLiteSink (table from WithTable)
//	anything else             JSONSink
//
// Column headers are the sorted union of record keys, as returned by
// flatten.Columns. Cells for keys a record lacks are left empty.
package sink
