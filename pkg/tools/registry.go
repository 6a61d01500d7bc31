package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// HandlerFunc is an in-process tool implementation. Registered
// functions are the only code "function" type tools can run.
type HandlerFunc func(ctx context.Context, args map[string]interface{}) (string, error)

// FunctionRegistry maps function names to handlers. Tools of type
// "function" bind to a name here at invocation time; registering the
// binding is a deploy-time decision, not user input.
type FunctionRegistry struct {
	mu    sync.RWMutex
	funcs map[string]HandlerFunc
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		funcs: make(map[string]HandlerFunc),
	}
}

func (r *FunctionRegistry) Register(name string, fn HandlerFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("function %q already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

func (r *FunctionRegistry) Get(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]
	return fn, ok
}

func (r *FunctionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
