package sink_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/pkg/sink"
)

func TestOpenSelectsSinkByExtension(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		path string
		want string
	}{
		{"out.csv", "csv"},
		{"out.CSV", "csv"},
		{"out.jsonl", "jsonl"},
		{"out.ndjson", "jsonl"},
		{"out.json", "json"},
		{"out", "json"},
		{"out.sqlite", "sqlite"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			s, err := sink.Open(filepath.Join(dir, tc.path))
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if closer, ok := s.(io.Closer); ok {
				defer closer.Close()
			}
			if got := sinkKind(s); got != tc.want {
				t.Fatalf("expected %s sink, got %s", tc.want, got)
			}
		})
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := sink.Open("  "); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestOpenAppliesOptions(t *testing.T) {
	s, err := sink.Open(filepath.Join(t.TempDir(), "out.db"), sink.WithTable("events"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sqlite := s.(*sink.SQLiteSink)
	defer sqlite.Close()
	if sqlite.Table() != "events" {
		t.Fatalf("expected table events, got %q", sqlite.Table())
	}

	csvSink, err := sink.Open("x.csv", sink.WithDelimiter('\t'))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if csvSink.(*sink.CSVSink).Delimiter != '\t' {
		t.Fatalf("expected tab delimiter")
	}

	jsonSink, err := sink.Open("x.json", sink.WithSingle(true))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !jsonSink.(*sink.JSONSink).Single {
		t.Fatalf("expected single-object JSON sink")
	}
}

func TestMemorySinkCopiesRecords(t *testing.T) {
	s := sink.NewMemorySink()
	record := flatten.Record{"a": "1"}
	if _, err := s.Write(context.Background(), []flatten.Record{record}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	record["a"] = "changed"

	got := s.Records()
	if len(got) != 1 || got[0]["a"] != "1" {
		t.Fatalf("expected stored copy, got %v", got)
	}
	got[0]["a"] = "mutated"
	if s.Records()[0]["a"] != "1" {
		t.Fatalf("Records must return copies")
	}
}

func sinkKind(s sink.Sink) string {
	switch s.(type) {
	case *sink.CSVSink:
		return "csv"
	case *sink.JSONLinesSink:
		return "jsonl"
	case *sink.JSONSink:
		return "json"
	case *sink.SQLiteSink:
		return "sqlite"
	default:
		return "unknown"
	}
}
