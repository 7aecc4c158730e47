package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/internal/config"
	"github.com/goliatone/go-flatten/internal/hydrate"
	"github.com/goliatone/go-flatten/pkg/activity"
	"github.com/goliatone/go-flatten/pkg/sink"
)

const stdio = "-"

func (a *app) readInput(path string) (any, error) {
	decoder := hydrate.NewDecoder(hydrate.WithUseNumber())
	if path == "" || path == stdio {
		return decoder.Decode(hydrate.Source{Name: "stdin"}, a.stdin)
	}
	return decoder.DecodeFile(path)
}

// output describes where and how a run's records are written.
type output struct {
	path     string
	single   bool
	runID    string
	settings config.Settings
}

func (a *app) writeRecords(ctx context.Context, out output, records []flatten.Record) error {
	written := len(records)
	if out.path == "" || out.path == stdio {
		if err := sink.WriteJSON(a.stdout, records, out.single); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
	} else {
		dest, err := sink.Open(out.path,
			sink.WithDelimiter(out.settings.Delimiter),
			sink.WithTable(out.settings.Table),
			sink.WithSingle(out.single),
		)
		if err != nil {
			return err
		}
		if closer, ok := dest.(io.Closer); ok {
			defer closer.Close()
		}
		if written, err = dest.Write(ctx, records); err != nil {
			return err
		}
	}

	runID := out.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	a.logger.Info("records written",
		zap.String("run_id", runID),
		zap.String("destination", out.path),
		zap.Int("records", written),
	)

	emitter := activity.NewEmitter(activity.Hooks{activityLogHook(a.logger)}, out.settings.Activity)
	event := activity.BuildRecordsWrittenEvent(activity.RunEventInput{
		RunID:        runID,
		Separator:    out.settings.Separator,
		ListPolicy:   string(out.settings.ListPolicy),
		ExplodePaths: out.settings.Explode,
		Filter:       out.settings.Filter,
		Records:      written,
		Destination:  out.path,
	})
	if err := emitter.Emit(ctx, event); err != nil {
		a.logger.Warn("activity hook failed", zap.Error(err))
	}
	return nil
}
