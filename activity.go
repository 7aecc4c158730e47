package flatten

import (
	"context"
	"time"

	"github.com/goliatone/go-flatten/pkg/activity"
)

// ActivityHooks returns a copy of the configured activity hooks.
func (f *Flattener) ActivityHooks() activity.Hooks {
	if f == nil {
		return nil
	}
	return cloneActivityHooks(f.cfg.activityHooks)
}

// emitActivity notifies hooks about a finished run. Hook failures are
// logged and never fail the run.
func (f *Flattener) emitActivity(ctx context.Context, runID string, candidates, records int) {
	emitter := activity.NewEmitter(f.cfg.activityHooks, f.cfg.activity)
	if !emitter.Enabled() {
		return
	}
	start := time.Now()
	event := activity.BuildRecordsExpandedEvent(activity.RunEventInput{
		RunID:        runID,
		Separator:    f.cfg.separator,
		ListPolicy:   string(f.cfg.listPolicy),
		ExplodePaths: f.cfg.explodePaths,
		Filter:       f.cfg.filter,
		Candidates:   candidates,
		Records:      records,
	})
	err := emitter.Emit(ctx, event)
	f.logger().LogEvent(Event{
		RunID:    runID,
		Stage:    StageActivity,
		Input:    records,
		Output:   records,
		Duration: time.Since(start),
		Err:      err,
	})
}
