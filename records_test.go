package flatten

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-flatten/pkg/activity"
)

func orderFixture() map[string]any {
	return map[string]any{
		"order_id":  2001,
		"items":     []any{map[string]any{"sku": "A", "qty": json.Number("2")}, map[string]any{"sku": "B", "qty": json.Number("1")}},
		"discounts": []any{map[string]any{"code": "NEW10"}, map[string]any{"code": "VIP"}},
	}
}

func TestRecordsMultiPathExplosion(t *testing.T) {
	records, err := Records(orderFixture(), WithExplodePaths("items", "discounts"))
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	want := Record{"order_id": 2001, "items.sku": "B", "items.qty": json.Number("1"), "discounts.code": "VIP"}
	if diff := cmp.Diff(want, records[3]); diff != "" {
		t.Fatalf("last record mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordsWithoutExplodeYieldsOneRecord(t *testing.T) {
	records, err := Records(orderFixture())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0]["items.1.sku"] != "B" {
		t.Fatalf("unexpected records %v", records)
	}
}

func TestRecordsFilterEngines(t *testing.T) {
	cases := []struct {
		name      string
		evaluator Evaluator
		filter    string
		want      int
	}{
		{"expr element field", nil, `items.sku == "A"`, 2},
		{"expr flat record", nil, `record["discounts.code"] == "VIP"`, 2},
		{"expr index", nil, `index % 2 == 0`, 2},
		{"expr json number", nil, `items.qty > 1`, 2},
		{"cel element field", NewCELEvaluator(), `items.sku == "A"`, 2},
		{"cel flat record", NewCELEvaluator(), `record["items.sku"] == "B" && discounts.code == "VIP"`, 1},
		{"cel json number", NewCELEvaluator(), `items.qty > 1`, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := []Option{WithExplodePaths("items", "discounts"), WithFilter(tc.filter)}
			if tc.evaluator != nil {
				opts = append(opts, WithEvaluator(tc.evaluator))
			}
			records, err := Records(orderFixture(), opts...)
			if err != nil {
				t.Fatalf("Records: %v", err)
			}
			if len(records) != tc.want {
				t.Fatalf("expected %d records, got %d: %v", tc.want, len(records), records)
			}
		})
	}
}

func TestRecordsFilterNonBoolFails(t *testing.T) {
	_, err := Records(orderFixture(), WithExplodePaths("items"), WithFilter(`items.sku`))
	var filterErr *FilterError
	if !errors.As(err, &filterErr) {
		t.Fatalf("expected *FilterError, got %v", err)
	}
	if filterErr.Engine != "expr" || filterErr.Expr != "items.sku" || filterErr.Index != 0 {
		t.Fatalf("unexpected filter error metadata %+v", filterErr)
	}
}

func TestRecordsCustomFunction(t *testing.T) {
	isA := func(args ...any) (any, error) {
		return len(args) == 1 && args[0] == "A", nil
	}
	records, err := Records(orderFixture(),
		WithExplodePaths("items"),
		WithCustomFunction("isa", isA),
		WithFilter(`isa(items.sku)`),
	)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0]["items.sku"] != "A" {
		t.Fatalf("unexpected records %v", records)
	}
}

func TestRecordsLogsStages(t *testing.T) {
	var events []Event
	logger := LoggerFunc(func(event Event) { events = append(events, event) })
	capture := &activity.CaptureHook{}

	_, err := Records(orderFixture(),
		WithExplodePaths("items", "discounts"),
		WithFilter(`items.sku == "A"`),
		WithLogger(logger),
		WithActivityHooks(activity.Hooks{capture}),
	)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}

	stages := make([]Stage, len(events))
	for i, event := range events {
		stages[i] = event.Stage
		if event.RunID == "" || event.RunID != events[0].RunID {
			t.Fatalf("events must share a run id: %+v", events)
		}
	}
	wantStages := []Stage{StageExplode, StageExplode, StageFlatten, StageFilter, StageActivity}
	if diff := cmp.Diff(wantStages, stages); diff != "" {
		t.Fatalf("stages mismatch (-want +got):\n%s", diff)
	}
	if events[0].Path != "items" || events[0].Input != 1 || events[0].Output != 2 {
		t.Fatalf("unexpected first explode event %+v", events[0])
	}
	if events[3].Input != 4 || events[3].Output != 2 {
		t.Fatalf("unexpected filter event %+v", events[3])
	}

	captured := capture.Events()
	if len(captured) != 1 {
		t.Fatalf("expected one activity event, got %d", len(captured))
	}
	event := captured[0]
	if event.Verb != activity.VerbRecordsExpanded || event.ObjectID != events[0].RunID || event.Channel != activity.DefaultChannel {
		t.Fatalf("unexpected activity event %+v", event)
	}
	if event.Metadata["candidates"] != 4 || event.Metadata["records"] != 2 {
		t.Fatalf("unexpected activity metadata %+v", event.Metadata)
	}
}

func TestRecordsActivityHookErrorIsLogged(t *testing.T) {
	var activityErr error
	logger := LoggerFunc(func(event Event) {
		if event.Stage == StageActivity {
			activityErr = event.Err
		}
	})
	boom := errors.New("boom")

	records, err := Records(orderFixture(),
		WithLogger(logger),
		WithActivityHooks(activity.Hooks{&activity.CaptureHook{Err: boom}}),
	)
	if err != nil {
		t.Fatalf("hook failures must not fail the run: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !errors.Is(activityErr, boom) {
		t.Fatalf("expected hook error in log event, got %v", activityErr)
	}
}

func TestRecordsActivityDisabled(t *testing.T) {
	capture := &activity.CaptureHook{}
	_, err := Records(orderFixture(),
		WithActivityHooks(activity.Hooks{capture}),
		WithActivityConfig(activity.Config{Enabled: false}),
	)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(capture.Events()) != 0 {
		t.Fatalf("expected no events when disabled")
	}
}

func TestActivityHooksAreCloned(t *testing.T) {
	hook := activity.HookFunc(func(context.Context, activity.Event) error { return nil })
	f, err := New(WithActivityHooks(activity.Hooks{nil, hook}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hooks := f.ActivityHooks()
	if len(hooks) != 1 {
		t.Fatalf("expected nil hooks dropped, got %d", len(hooks))
	}
	hooks[0] = nil
	if again := f.ActivityHooks(); again[0] == nil {
		t.Fatalf("ActivityHooks must return a copy")
	}

	plain, _ := New()
	if plain.ActivityHooks() != nil {
		t.Fatalf("expected nil hooks by default")
	}
}

func TestMatchWithoutFilter(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := f.Match(RecordContext{})
	if err != nil || !ok {
		t.Fatalf("expected match without filter, got %v %v", ok, err)
	}
}
