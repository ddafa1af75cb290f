package rill

import "io"

// Config holds configuration options for a rill run.
type Config struct {
	// Begin is an optional expression evaluated before the first line,
	// against the fresh context.
	Begin string

	// End is an optional expression evaluated after the last line, against
	// the final context state. Configuring End also changes the default
	// rule command from "l" to "t += line".
	End string

	// FS is the input field delimiter.
	// When empty, runs of whitespace are treated as separators. Otherwise
	// the line is split on each occurrence of the string; empty tokens are
	// dropped either way, so delimiter-sensitive formats with empty fields
	// lose them (long-standing behavior, kept deliberately).
	FS string

	// OFS is the output join delimiter used when a snippet's value is a
	// list (default: single space).
	OFS string

	// Strict makes runtime evaluation faults fatal. By default a fault
	// only suppresses the current line's output for that rule.
	Strict bool

	// Imports lists capability modules whose members are flattened by name
	// into the context before the run starts. Later imports shadow earlier
	// ones.
	Imports []string

	// Variables contains pre-seeded string bindings.
	// These are set before begin-expression evaluation.
	Variables map[string]string

	// Output is the writer for formatted results.
	// If nil, output is captured and returned from Run.
	Output io.Writer

	// Stderr receives diagnostics for evaluation faults swallowed in
	// non-strict mode. If nil, they are discarded.
	Stderr io.Writer
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.OFS == "" {
		c.OFS = " "
	}
}
