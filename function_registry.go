package flatten

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Function is a callable exposed to filter expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores filter functions keyed by lower-cased name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// StandardFunctions returns a registry preloaded with record helpers:
//
//	str(v)             the joined-list rendering of a scalar
//	coalesce(a, b...)  the first argument that is not nil
//	blank(v)           true for nil and the empty string
func StandardFunctions() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("str", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("str expects 1 argument, got %d", len(args))
		}
		return ScalarString(args[0]), nil
	})
	_ = registry.Register("coalesce", func(args ...any) (any, error) {
		for _, arg := range args {
			if arg != nil {
				return arg, nil
			}
		}
		return nil, nil
	})
	_ = registry.Register("blank", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("blank expects 1 argument, got %d", len(args))
		}
		return args[0] == nil || args[0] == "", nil
	})
	return registry
}

// Register stores fn under name, rejecting duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("flatten: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("flatten: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("flatten: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("flatten: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("flatten: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithFunctionRegistry makes registry available to the default filter
// engine.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for the default filter engine.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
