package interp

import (
	"fmt"

	"rill/internal/token"
)

// EvalError represents a runtime fault raised while executing a snippet.
// It implements the error interface and includes source position information.
type EvalError struct {
	Pos     token.Position // Position of the failing node
	Message string         // Human-readable error message
}

// Error returns a formatted error message with position information.
func (e *EvalError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// errf creates an EvalError at the given position with a formatted message.
func errf(pos token.Position, format string, args ...any) *EvalError {
	return &EvalError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}
