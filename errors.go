package rill

import (
	"fmt"
)

// ParseError represents a syntax error in rule, begin or end text.
// Always fatal, raised before any line is processed.
type ParseError struct {
	Line    int    // 1-based line number within the snippet
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// PatternError represents a malformed rule pattern.
// Always fatal, raised at rule construction.
type PatternError struct {
	Pattern string // Offending pattern text
	Message string // Error description
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("bad pattern /%s/: %s", e.Pattern, e.Message)
}

// EvalError represents a runtime fault while executing a compiled snippet.
// Recovered per line by default; fatal when Config.Strict is set. Begin and
// end expressions always propagate.
type EvalError struct {
	Message string // Error description
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("eval error: %s", e.Message)
}
