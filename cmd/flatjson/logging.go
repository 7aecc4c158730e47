package main

import (
	"context"
	"sync"

	"go.uber.org/zap"

	flatten "github.com/goliatone/go-flatten"
	"github.com/goliatone/go-flatten/pkg/activity"
)

// zapEventLogger adapts flatten pipeline events to zap and remembers the
// current run id.
type zapEventLogger struct {
	logger *zap.Logger

	mu    sync.Mutex
	runID string
}

func newZapEventLogger(logger *zap.Logger) *zapEventLogger {
	return &zapEventLogger{logger: logger}
}

func (l *zapEventLogger) LogEvent(event flatten.Event) {
	l.mu.Lock()
	if event.RunID != "" {
		l.runID = event.RunID
	}
	l.mu.Unlock()

	fields := []zap.Field{
		zap.String("run_id", event.RunID),
		zap.String("stage", string(event.Stage)),
		zap.Int("input", event.Input),
		zap.Int("output", event.Output),
		zap.Duration("duration", event.Duration),
	}
	if event.Path != "" {
		fields = append(fields, zap.String("path", event.Path))
	}
	if event.Err != nil {
		l.logger.Warn("stage failed", append(fields, zap.Error(event.Err))...)
		return
	}
	l.logger.Debug("stage complete", fields...)
}

// RunID returns the id of the most recent run.
func (l *zapEventLogger) RunID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runID
}

// activityLogHook records activity events in the log.
func activityLogHook(logger *zap.Logger) activity.HookFunc {
	return func(_ context.Context, event activity.Event) error {
		logger.Info("activity",
			zap.String("verb", event.Verb),
			zap.String("object_type", event.ObjectType),
			zap.String("object_id", event.ObjectID),
			zap.String("channel", event.Channel),
			zap.Any("metadata", event.Metadata),
		)
		return nil
	}
}
