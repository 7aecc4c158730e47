package flatten

import "time"

// Stage names a step of a Records run.
type Stage string

const (
	StageExplode  Stage = "explode"
	StageFlatten  Stage = "flatten"
	StageFilter   Stage = "filter"
	StageActivity Stage = "activity"
)

// Event describes one step of a Records run for logging.
type Event struct {
	RunID    string
	Stage    Stage
	Path     string
	Input    int
	Output   int
	Duration time.Duration
	Err      error
}

// Logger records run events.
type Logger interface {
	LogEvent(Event)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(Event)

// LogEvent implements Logger.
func (f LoggerFunc) LogEvent(event Event) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogEvent(Event) {}

// WithLogger attaches a logger to the Flattener.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

func (f *Flattener) logger() Logger {
	if f.cfg.logger != nil {
		return f.cfg.logger
	}
	return noopLogger{}
}
