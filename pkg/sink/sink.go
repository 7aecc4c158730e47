package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flatten "github.com/goliatone/go-flatten"
)

// ErrInvalidTable reports a table name that is not a plain SQL identifier.
var ErrInvalidTable = errors.New("sink: invalid table name")

// Sink stores a batch of records and returns the number stored.
type Sink interface {
	Write(ctx context.Context, records []flatten.Record) (int, error)
}

// Option configures sinks built by Open.
type Option func(*options)

type options struct {
	delimiter rune
	table     string
	single    bool
}

// WithDelimiter sets the CSV field delimiter (default ',').
func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithTable names the SQLite table records are inserted into (default
// "records").
func WithTable(table string) Option {
	return func(o *options) {
		o.table = table
	}
}

// WithSingle makes JSON sinks write a lone record as an object instead of a
// one-element array.
func WithSingle(single bool) Option {
	return func(o *options) {
		o.single = single
	}
}

// Open returns the sink matching path's extension. Sinks holding resources
// implement io.Closer.
func Open(path string, opts ...Option) (Sink, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sink: destination path is required")
	}
	cfg := options{delimiter: ',', table: DefaultTable}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVSink{Path: path, Delimiter: cfg.delimiter}, nil
	case ".jsonl", ".ndjson":
		return &JSONLinesSink{Path: path}, nil
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path, cfg.table)
	default:
		return &JSONSink{Path: path, Single: cfg.single}, nil
	}
}

// createFile truncates path, creating parent directories as needed.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sink: create directory %q: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: create %q: %w", path, err)
	}
	return file, nil
}
