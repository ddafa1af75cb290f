package rill

import (
	"fmt"
	"strings"

	"rill/internal/interp"
	"rill/internal/modules"
	"rill/internal/types"
)

// lineTrimCutset is what right-trimming removes from the raw line before it
// is bound to l and tokenized.
const lineTrimCutset = " \t\r\n\v\f"

// Context is the shared mutable state of one run: a flat mapping of names to
// values, refreshed per line. The accumulator t and the capability bindings
// persist across refreshes unless a snippet overwrites them.
type Context struct {
	env *interp.Env
	fs  string // input field delimiter ("" = whitespace runs)
}

// newContext builds the initial bindings for a run: the accumulator, the
// match slot, the universal builtins, flattened explicit imports, whole-table
// bindings for auto-detected modules, and pre-seeded variables, in that
// order (later layers shadow earlier ones).
func newContext(config *Config, autoMods []string) (*Context, error) {
	env := interp.NewEnv()
	env.Set("t", types.Str(""))
	env.Set("m", types.List([]types.Value{}))

	for name, fn := range modules.Universal() {
		env.Set(name, fn)
	}

	for _, name := range config.Imports {
		mod, ok := modules.Lookup(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown module %q", strings.TrimSpace(name))
		}
		for member, value := range mod.Members() {
			env.Set(member, value)
		}
	}

	for _, name := range autoMods {
		if mod, ok := modules.Lookup(name); ok {
			env.Set(name, mod)
		}
	}

	for name, value := range config.Variables {
		env.Set(name, types.Str(value))
	}

	return &Context{env: env, fs: config.FS}, nil
}

// refresh overwrites the per-line bindings for the given 1-based line index
// and raw line text. Persistent bindings are untouched.
func (c *Context) refresh(n int, line string) {
	l := strings.TrimRight(line, lineTrimCutset)
	tokens := c.split(l)

	c.env.Set("line", types.Str(line))
	c.env.Set("l", types.Str(l))
	c.env.Set("f", types.StrList(tokens))
	c.env.Set("nf", types.Num(float64(len(tokens))))
	c.env.Set("n", types.Num(float64(n)))
}

// split tokenizes a right-trimmed line on the configured delimiter,
// discarding empty tokens.
func (c *Context) split(l string) []string {
	if c.fs == "" {
		return strings.Fields(l)
	}
	parts := strings.Split(l, c.fs)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// setMatch binds the match slot to m.
func (c *Context) setMatch(m types.Value) {
	c.env.Set("m", m)
}

// Env exposes the underlying environment to snippet execution.
func (c *Context) Env() *interp.Env {
	return c.env
}
