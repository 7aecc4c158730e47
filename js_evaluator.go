//go:build js_eval

package flatten

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewJSEvaluator constructs an Evaluator backed by goja.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	cfg := applyJSEvaluatorOptions(opts)
	return &jsEvaluator{
		cache:    cfg.cache,
		registry: cfg.registry,
	}
}

func (e *jsEvaluator) engine() string { return "js" }

func (e *jsEvaluator) Evaluate(ctx RecordContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("js", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, expression, program)
}

func (e *jsEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("js", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &jsCompiledRule{
		evaluator:  e,
		expression: expression,
		program:    program,
	}, nil
}

func (e *jsEvaluator) loadOrCompile(expression string) (*goja.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get("js:" + expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", e.wrapExpression(expression), false)
	if err != nil {
		return nil, wrapEvaluatorError("js", err)
	}
	if e.cache != nil {
		e.cache.Set("js:"+expression, program)
	}
	return program, nil
}

// run executes program in a fresh runtime so records never observe state
// left behind by a previous evaluation.
func (e *jsEvaluator) run(ctx RecordContext, expression string, program *goja.Program) (any, error) {
	vm := goja.New()
	if err := e.injectContext(vm, ctx); err != nil {
		return nil, wrapFilterError("js", expression, ctx.Index, err)
	}
	value, err := vm.RunProgram(program)
	if err != nil {
		return nil, wrapFilterError("js", expression, ctx.Index, err)
	}
	return value.Export(), nil
}

func (e *jsEvaluator) injectContext(vm *goja.Runtime, ctx RecordContext) error {
	for key, value := range ctx.binding() {
		if err := vm.Set(key, value); err != nil {
			return err
		}
	}
	if e.registry == nil {
		return nil
	}
	if err := vm.Set("call", func(name string, arguments ...any) (any, error) {
		return e.registry.Call(name, arguments...)
	}); err != nil {
		return err
	}
	for _, name := range e.registry.Names() {
		fn := name
		if err := vm.Set(fn, func(arguments ...any) (any, error) {
			return e.registry.Call(fn, arguments...)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *jsEvaluator) wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsCompiledRule struct {
	evaluator  *jsEvaluator
	expression string
	program    *goja.Program
}

func (r *jsCompiledRule) Evaluate(ctx RecordContext) (any, error) {
	if r.evaluator == nil {
		return nil, wrapEvaluatorError("js", fmt.Errorf("js compiled rule missing evaluator"))
	}
	return r.evaluator.run(ctx, r.expression, r.program)
}

func jsEvaluatorAvailable() bool {
	return true
}
