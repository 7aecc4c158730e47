package activity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildRecordsExpandedEvent(t *testing.T) {
	paths := []string{"items", "discounts"}
	event := BuildRecordsExpandedEvent(RunEventInput{
		RunID:        " run-42 ",
		ListPolicy:   "index",
		Separator:    ".",
		ExplodePaths: paths,
		Filter:       `items.sku == "A"`,
		Candidates:   4,
		Records:      2,
	})

	if event.Verb != VerbRecordsExpanded || event.ObjectType != ObjectTypeRun || event.ObjectID != "run-42" {
		t.Fatalf("unexpected identity: %+v", event)
	}
	want := map[string]any{
		"candidates":    4,
		"records":       2,
		"list_policy":   "index",
		"separator":     ".",
		"explode_paths": []string{"items", "discounts"},
		"filter":        `items.sku == "A"`,
	}
	if diff := cmp.Diff(want, event.Metadata); diff != "" {
		t.Fatalf("unexpected metadata (-want +got):\n%s", diff)
	}

	paths[0] = "changed"
	if event.Metadata["explode_paths"].([]string)[0] != "items" {
		t.Fatalf("expected explode paths to be copied")
	}
}

func TestBuildRecordsWrittenEventFallsBackToObjectType(t *testing.T) {
	event := BuildRecordsWrittenEvent(RunEventInput{Destination: "out.csv", Records: 3})
	if event.Verb != VerbRecordsWritten {
		t.Fatalf("unexpected verb %q", event.Verb)
	}
	if event.ObjectID != ObjectTypeRun {
		t.Fatalf("expected object id fallback, got %q", event.ObjectID)
	}
	if event.Metadata["destination"] != "out.csv" {
		t.Fatalf("expected destination metadata, got %+v", event.Metadata)
	}
}
