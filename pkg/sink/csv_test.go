package sink_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/pkg/sink"
)

func TestWriteCSVUsesSortedUnionHeader(t *testing.T) {
	records := []flatten.Record{
		{"name": "a", "tags.0": "x", "active": true},
		{"name": "b", "score": json.Number("2.5"), "tags.0": nil},
	}

	var buf bytes.Buffer
	if err := sink.WriteCSV(&buf, records, 0); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "active,name,score,tags.0\ntrue,a,,x\n,b,2.5,\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSVEmptyRecordsWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := sink.WriteCSV(&buf, nil, 0); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestCSVRoundTripWithDelimiter(t *testing.T) {
	records := []flatten.Record{
		{"id": float64(1), "note": "semi;colon"},
		{"id": float64(2)},
	}
	var buf bytes.Buffer
	if err := sink.WriteCSV(&buf, records, ';'); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := sink.ReadCSV(&buf, ';')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := []map[string]string{
		{"id": "1", "note": "semi;colon"},
		{"id": "2", "note": ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	rows, err := sink.ReadCSV(bytes.NewReader(nil), 0)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestCSVSinkCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	s := &sink.CSVSink{Path: path}

	n, err := s.Write(context.Background(), []flatten.Record{{"a": "1"}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 record written, got %d", n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "a\n1\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}
