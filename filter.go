package flatten

import (
	"encoding/json"
	"fmt"
)

type recordFilter struct {
	engine string
	expr   string
	rule   CompiledRule
}

func newRecordFilter(cfg config) (*recordFilter, error) {
	evaluator := cfg.evaluator
	if evaluator == nil {
		var exprOpts []ExprEvaluatorOption
		if cfg.programCache != nil {
			exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
		}
		if cfg.functions != nil {
			exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
		}
		evaluator = NewExprEvaluator(exprOpts...)
	}
	rule, err := evaluator.Compile(cfg.filter)
	if err != nil {
		return nil, &InvalidArgumentError{
			Field:  "filter",
			Value:  cfg.filter,
			Reason: "does not compile",
			Err:    err,
		}
	}
	return &recordFilter{
		engine: evaluatorEngineName(evaluator),
		expr:   cfg.filter,
		rule:   rule,
	}, nil
}

func (r *recordFilter) match(ctx RecordContext) (bool, error) {
	value, err := r.rule.Evaluate(ctx)
	if err != nil {
		return false, wrapFilterError(r.engine, r.expr, ctx.Index, err)
	}
	keep, ok := value.(bool)
	if !ok {
		return false, wrapFilterError(r.engine, r.expr, ctx.Index, fmt.Errorf("expression returned %T, want bool", value))
	}
	return keep, nil
}

// Match reports whether ctx passes the configured filter. Without a filter
// every record matches.
func (f *Flattener) Match(ctx RecordContext) (bool, error) {
	if f.filter == nil {
		return true, nil
	}
	return f.filter.match(ctx)
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	if named, ok := e.(interface{ engine() string }); ok {
		return named.engine()
	}
	return "custom"
}

// NewEvaluatorByName builds one of the bundled engines: "expr", "cel" or
// "js". The js engine requires the js_eval build tag.
func NewEvaluatorByName(name string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	switch name {
	case "", "expr":
		return NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(registry)), nil
	case "cel":
		return NewCELEvaluator(CELWithProgramCache(cache), CELWithFunctionRegistry(registry)), nil
	case "js":
		if !jsEvaluatorAvailable() {
			return nil, &InvalidArgumentError{Field: "engine", Value: name, Reason: "requires the js_eval build tag"}
		}
		return NewJSEvaluator(JSWithProgramCache(cache), JSWithFunctionRegistry(registry)), nil
	default:
		return nil, &InvalidArgumentError{Field: "engine", Value: name, Reason: "must be 'expr', 'cel' or 'js'"}
	}
}

// nativeNumbers converts json.Number leaves to int64 or float64 so that
// expression engines compare them as numbers.
func nativeNumbers(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return n
		}
		if f, err := typed.Float64(); err == nil {
			return f
		}
		return typed.String()
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = nativeNumbers(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = nativeNumbers(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = nativeNumbers(item)
		}
		return out
	default:
		return value
	}
}
