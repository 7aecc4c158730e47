package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	flatten "github.com/goliatone/go-flatten"
)

// JSONSink writes records as an indented JSON array, or as a single object
// when Single is set and exactly one record is written.
type JSONSink struct {
	Path   string
	Single bool
}

func (s *JSONSink) Write(_ context.Context, records []flatten.Record) (int, error) {
	file, err := createFile(s.Path)
	if err != nil {
		return 0, err
	}
	if err := WriteJSON(file, records, s.Single); err != nil {
		file.Close()
		return 0, fmt.Errorf("sink: write json %q: %w", s.Path, err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("sink: close %q: %w", s.Path, err)
	}
	return len(records), nil
}

// WriteJSON encodes records with two-space indentation.
func WriteJSON(w io.Writer, records []flatten.Record, single bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if single && len(records) == 1 {
		return encoder.Encode(records[0])
	}
	if records == nil {
		records = []flatten.Record{}
	}
	return encoder.Encode(records)
}

// JSONLinesSink writes one compact JSON object per line.
type JSONLinesSink struct {
	Path string
}

func (s *JSONLinesSink) Write(_ context.Context, records []flatten.Record) (int, error) {
	file, err := createFile(s.Path)
	if err != nil {
		return 0, err
	}
	encoder := json.NewEncoder(file)
	for i, record := range records {
		if err := encoder.Encode(record); err != nil {
			file.Close()
			return i, fmt.Errorf("sink: write json line %d to %q: %w", i+1, s.Path, err)
		}
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("sink: close %q: %w", s.Path, err)
	}
	return len(records), nil
}
