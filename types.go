package flatten

import (
	"sort"

	"github.com/goliatone/go-flatten/pkg/activity"
)

// Record is a flat mapping of dotted paths to scalar values.
type Record map[string]any

// Keys returns the record keys sorted alphabetically.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ListPolicy selects how sequences are flattened.
type ListPolicy string

const (
	// ListPolicyIndex emits one key per element, suffixed with its index.
	ListPolicyIndex ListPolicy = "index"
	// ListPolicyJoin collapses all-scalar sequences into a comma separated
	// string and falls back to ListPolicyIndex otherwise.
	ListPolicyJoin ListPolicy = "join"
)

// ParseListPolicy validates value as a ListPolicy.
func ParseListPolicy(value string) (ListPolicy, error) {
	switch ListPolicy(value) {
	case ListPolicyIndex, ListPolicyJoin:
		return ListPolicy(value), nil
	default:
		return "", &InvalidArgumentError{
			Field:  "list_policy",
			Value:  value,
			Reason: "must be 'index' or 'join'",
		}
	}
}

// DefaultSeparator joins path segments unless WithSeparator overrides it.
const DefaultSeparator = "."

// RecordContext carries the inputs a filter expression is evaluated against.
type RecordContext struct {
	// Candidate is the exploded, not yet flattened value.
	Candidate any
	// Record is the flattened form of Candidate.
	Record Record
	// Index is the candidate position within the run.
	Index int
	RunID string
}

// binding returns the variables exposed to expressions: the top-level keys
// of the candidate plus record and index.
func (ctx RecordContext) binding() map[string]any {
	env := map[string]any{}
	if candidate, ok := nativeNumbers(ctx.Candidate).(map[string]any); ok {
		for key, value := range candidate {
			env[key] = value
		}
	}
	env["record"] = nativeNumbers(map[string]any(ctx.Record))
	env["index"] = ctx.Index
	return env
}

// Evaluator executes filter expressions against a record context.
type Evaluator interface {
	Evaluate(ctx RecordContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RecordContext) (any, error)
}

// Option configures a Flattener.
type Option func(*config)

type config struct {
	separator     string
	listPolicy    ListPolicy
	explodePaths  []string
	filter        string
	evaluator     Evaluator
	programCache  ProgramCache
	functions     *FunctionRegistry
	logger        Logger
	activityHooks activity.Hooks
	activity      activity.Config
}

func defaultConfig() config {
	return config{
		separator:  DefaultSeparator,
		listPolicy: ListPolicyIndex,
		activity:   activity.Config{Enabled: true, Channel: "flatten"},
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
