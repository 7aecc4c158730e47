package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	flatten "github.com/goliatone/go-flatten"
)

// CSVSink writes records to a delimited file with a header row.
type CSVSink struct {
	Path      string
	Delimiter rune
}

// Write replaces the file at Path with records. No records produce an empty
// file without a header.
func (s *CSVSink) Write(_ context.Context, records []flatten.Record) (int, error) {
	file, err := createFile(s.Path)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(file, records, s.Delimiter); err != nil {
		file.Close()
		return 0, fmt.Errorf("sink: write csv %q: %w", s.Path, err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("sink: close %q: %w", s.Path, err)
	}
	return len(records), nil
}

// WriteCSV encodes records with the sorted union of their keys as header.
// Values are rendered with flatten.ScalarString, so nil and missing keys
// become empty cells. A zero delimiter means ','.
func WriteCSV(w io.Writer, records []flatten.Record, delimiter rune) error {
	if len(records) == 0 {
		return nil
	}
	writer := csv.NewWriter(w)
	if delimiter != 0 {
		writer.Comma = delimiter
	}

	header := flatten.Columns(records)
	if err := writer.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, record := range records {
		for i, key := range header {
			row[i] = flatten.ScalarString(record[key])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV decodes a delimited stream with a header row into one map per
// row. A zero delimiter means ','.
func ReadCSV(r io.Reader, delimiter rune) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	header, err := reader.Read()
	if err == io.EOF {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sink: read csv header: %w", err)
	}

	var rows []map[string]string
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sink: read csv row %d: %w", len(rows)+1, err)
		}
		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(fields) {
				row[key] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	if rows == nil {
		rows = []map[string]string{}
	}
	return rows, nil
}
