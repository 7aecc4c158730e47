package flatten

import (
	"fmt"
	"sort"
	"strings"

	celgo "github.com/google/cel-go/cel"
	functions "github.com/google/cel-go/common/functions"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL evaluator.
// Registered functions are reachable through call("name", args...).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. Every variable
// is declared dynamically typed; a program is checked once per distinct set
// of top-level candidate keys.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) engine() string { return "cel" }

func (e *celEvaluator) Evaluate(ctx RecordContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	activation := e.activation(ctx)
	program, err := e.loadOrCompile(expression, activation)
	if err != nil {
		return nil, wrapFilterError("cel", expression, ctx.Index, err)
	}
	out, _, err := program.program.Eval(activation)
	if err != nil {
		return nil, wrapFilterError("cel", expression, ctx.Index, err)
	}
	return out.Value(), nil
}

// Compile parses expression up front. Type checking needs the candidate's
// variables and happens on first evaluation.
func (e *celEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	env, err := celgo.NewEnv()
	if err != nil {
		return nil, wrapEvaluatorError("cel", err)
	}
	if _, issues := env.Parse(expression); issues != nil && issues.Err() != nil {
		return nil, wrapEvaluatorError("cel", issues.Err())
	}
	return &celCompiledRule{
		evaluator:  e,
		expression: expression,
	}, nil
}

func (e *celEvaluator) loadOrCompile(expression string, activation map[string]any) (*celProgram, error) {
	names := make([]string, 0, len(activation))
	for name := range activation {
		names = append(names, name)
	}
	sort.Strings(names)
	cacheKey := "cel:" + expression + "\x00" + strings.Join(names, ",")

	if e.cache != nil {
		if cached, ok := e.cache.Get(cacheKey); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv(names)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, err
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if e.cache != nil {
		e.cache.Set(cacheKey, bundle)
	}
	return bundle, nil
}

func (e *celEvaluator) buildEnv(names []string) (*celgo.Env, error) {
	opts := make([]celgo.EnvOption, 0, len(names)+1)
	for _, name := range names {
		opts = append(opts, celgo.Variable(name, celgo.DynType))
	}
	if e.registry != nil {
		opts = append(opts, celgo.Function("call", celgo.Overload(
			"call_dyn",
			[]*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)},
			celgo.DynType,
			celgo.BinaryBinding(e.callBinding()),
		)))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) activation(ctx RecordContext) map[string]any {
	return ctx.binding()
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	expression string
}

func (r *celCompiledRule) Evaluate(ctx RecordContext) (any, error) {
	if r.evaluator == nil {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("compiled rule missing evaluator"))
	}
	return r.evaluator.Evaluate(ctx, r.expression)
}

// callBinding dispatches call("name", [args...]) to the function registry.
func (e *celEvaluator) callBinding() functions.BinaryOp {
	return func(nameVal, argsVal ref.Val) ref.Val {
		name, ok := nameVal.Value().(string)
		if !ok {
			return types.NewErr("flatten: call name must be string")
		}
		var args []any
		if list, ok := argsVal.(traits.Lister); ok {
			size, _ := list.Size().Value().(int64)
			for i := int64(0); i < size; i++ {
				args = append(args, list.Get(types.Int(i)).Value())
			}
		}
		result, err := e.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
