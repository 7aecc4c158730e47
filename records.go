package flatten

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Records expands root along the configured explode paths, flattens every
// candidate and applies the configured filter. Each run gets an id that is
// attached to log and activity events.
func (f *Flattener) Records(ctx context.Context, root any) ([]Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	logger := f.logger()

	candidates := initialCandidates(root)
	for _, path := range f.cfg.explodePaths {
		start := time.Now()
		before := len(candidates)
		candidates = f.explode(candidates, path)
		logger.LogEvent(Event{
			RunID:    runID,
			Stage:    StageExplode,
			Path:     path,
			Input:    before,
			Output:   len(candidates),
			Duration: time.Since(start),
		})
	}

	start := time.Now()
	records := make([]Record, len(candidates))
	for i, candidate := range candidates {
		records[i] = f.Flatten(candidate)
	}
	logger.LogEvent(Event{
		RunID:    runID,
		Stage:    StageFlatten,
		Input:    len(candidates),
		Output:   len(records),
		Duration: time.Since(start),
	})

	if f.filter != nil {
		start = time.Now()
		kept := make([]Record, 0, len(records))
		for i, record := range records {
			keep, err := f.filter.match(RecordContext{
				Candidate: candidates[i],
				Record:    record,
				Index:     i,
				RunID:     runID,
			})
			if err != nil {
				logger.LogEvent(Event{RunID: runID, Stage: StageFilter, Input: len(records), Duration: time.Since(start), Err: err})
				return nil, err
			}
			if keep {
				kept = append(kept, record)
			}
		}
		logger.LogEvent(Event{
			RunID:    runID,
			Stage:    StageFilter,
			Input:    len(records),
			Output:   len(kept),
			Duration: time.Since(start),
		})
		records = kept
	}

	f.emitActivity(ctx, runID, len(candidates), len(records))
	return records, nil
}

// Records is a convenience wrapper around New(opts...).Records.
func Records(root any, opts ...Option) ([]Record, error) {
	flattener, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return flattener.Records(context.Background(), root)
}
