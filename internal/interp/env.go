// Package interp evaluates compiled snippet statements against a mutable
// environment of name bindings.
package interp

import "rill/internal/types"

// Env is a flat mapping of names to values. It is the single shared mutable
// resource of a run: every snippet execution and every per-line refresh
// mutates it in place.
type Env struct {
	vars map[string]types.Value
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]types.Value)}
}

// Get returns the value bound to name.
func (e *Env) Get(name string) (types.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to value, overwriting any previous binding.
func (e *Env) Set(name string, v types.Value) {
	e.vars[name] = v
}

// Pop removes and returns the value bound to name.
func (e *Env) Pop(name string) (types.Value, bool) {
	v, ok := e.vars[name]
	if ok {
		delete(e.vars, name)
	}
	return v, ok
}

// Len returns the number of bindings.
func (e *Env) Len() int {
	return len(e.vars)
}
