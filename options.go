package flatten

import (
	"github.com/goliatone/go-flatten/pkg/activity"
)

// New validates opts and constructs a Flattener. Every argument error is
// reported here, before any value is traversed.
func New(opts ...Option) (*Flattener, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	f := &Flattener{cfg: cfg}
	if cfg.filter != "" {
		filter, err := newRecordFilter(cfg)
		if err != nil {
			return nil, err
		}
		f.filter = filter
	}
	return f, nil
}

func (cfg config) validate() error {
	if cfg.separator == "" {
		return &InvalidArgumentError{Field: "separator", Value: cfg.separator, Reason: "must not be empty"}
	}
	if _, err := ParseListPolicy(string(cfg.listPolicy)); err != nil {
		return err
	}
	for _, path := range cfg.explodePaths {
		if path == "" {
			return &InvalidArgumentError{Field: "explode_paths", Value: path, Reason: "must contain non-empty paths"}
		}
	}
	return nil
}

// WithSeparator sets the string joining path segments, both in output keys
// and in explode paths.
func WithSeparator(sep string) Option {
	return func(cfg *config) {
		cfg.separator = sep
	}
}

// WithListPolicy selects the sequence policy. Values other than "index" and
// "join" make New fail.
func WithListPolicy(policy ListPolicy) Option {
	return func(cfg *config) {
		cfg.listPolicy = policy
	}
}

// WithExplodePaths appends paths to the explode list. Paths apply left to
// right.
func WithExplodePaths(paths ...string) Option {
	return func(cfg *config) {
		cfg.explodePaths = append(cfg.explodePaths, paths...)
	}
}

// WithFilter keeps only records for which expression evaluates to true.
func WithFilter(expression string) Option {
	return func(cfg *config) {
		cfg.filter = expression
	}
}

// WithEvaluator sets the engine used for filter expressions. The expr
// engine is used when none is configured.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}

// WithProgramCache registers a cache for compiled filter programs.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *config) {
		cfg.programCache = cache
	}
}

// WithActivityHooks attaches hooks notified once per Records run. Nil hooks
// are dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *config) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig overrides the activity emission defaults (enabled, on
// channel "flatten").
func WithActivityConfig(activityCfg activity.Config) Option {
	return func(cfg *config) {
		cfg.activity = activityCfg
	}
}

// Separator returns the configured separator.
func (f *Flattener) Separator() string {
	return f.cfg.separator
}

// ListPolicy returns the configured list policy.
func (f *Flattener) ListPolicy() ListPolicy {
	return f.cfg.listPolicy
}

// ExplodePaths returns a copy of the configured explode paths.
func (f *Flattener) ExplodePaths() []string {
	return append([]string(nil), f.cfg.explodePaths...)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
