package sink_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/pkg/sink"
)

func TestWriteJSONArray(t *testing.T) {
	var buf bytes.Buffer
	records := []flatten.Record{{"b": float64(2), "a": "x"}}
	if err := sink.WriteJSON(&buf, records, false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	want := "[\n  {\n    \"a\": \"x\",\n    \"b\": 2\n  }\n]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONSingleObject(t *testing.T) {
	var buf bytes.Buffer
	if err := sink.WriteJSON(&buf, []flatten.Record{{"a": nil}}, true); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := buf.String(); got != "{\n  \"a\": null\n}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := sink.WriteJSON(&buf, nil, true); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestJSONLinesSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	s := &sink.JSONLinesSink{Path: path}
	n, err := s.Write(context.Background(), []flatten.Record{{"a": "1"}, {"a": "2"}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 records written, got %d", n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "{\"a\":\"1\"}\n{\"a\":\"2\"}\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}
