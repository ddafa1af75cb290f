// Package compiler turns snippet source text into an executable Snippet with
// last-expression capture.
package compiler

import (
	"rill/internal/ast"
	"rill/internal/interp"
	"rill/internal/parser"
	"rill/internal/token"
	"rill/internal/types"
)

// captureName is the reserved environment slot the capture transform writes
// to. Run removes it from the environment after every execution.
const captureName = "__capture"

// Snippet is a compiled rule, begin or end body.
// Created once at rule-construction time and reused for every line.
type Snippet struct {
	source string
	stmts  []ast.Stmt
}

// Compile parses src and applies the capture transform: the capture slot is
// pre-initialized to the unset sentinel before any statement runs, and a
// trailing bare-expression statement is rewritten into an assignment to the
// slot. All preceding statements execute unmodified, in order.
func Compile(src string) (*Snippet, error) {
	stmts, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return &Snippet{
		source: src,
		stmts:  transform(stmts),
	}, nil
}

// MustCompile is like Compile but panics on error.
// It simplifies construction of the built-in default snippets.
func MustCompile(src string) *Snippet {
	s, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return s
}

// Source returns the original snippet text.
func (s *Snippet) Source() string {
	return s.source
}

// Run executes the compiled snippet against the environment, then removes
// and returns the capture slot's value. Other mutations the snippet makes to
// the environment are retained, including those applied before a fault.
func (s *Snippet) Run(env *interp.Env) (types.Value, error) {
	err := interp.ExecStmts(env, s.stmts)
	captured, _ := env.Pop(captureName)
	if err != nil {
		return types.Null(), err
	}
	return captured, nil
}

// transform prepends the capture slot initialization and rewrites a trailing
// bare expression into a capture assignment. A snippet whose final statement
// is not a bare expression leaves the slot unset.
func transform(stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts)+1)
	out = append(out, initCaptureStmt())
	out = append(out, stmts...)

	if len(stmts) > 0 {
		if last, ok := stmts[len(stmts)-1].(*ast.ExprStmt); ok {
			out[len(out)-1] = &ast.AssignStmt{
				BaseStmt: ast.MakeBaseStmt(last.Pos(), last.End()),
				Target:   captureIdent(last),
				Op:       token.ASSIGN,
				Value:    last.Expr,
			}
		}
	}
	return out
}

// initCaptureStmt builds the `__capture = nil` prologue statement.
func initCaptureStmt() ast.Stmt {
	return &ast.AssignStmt{
		Target: &ast.Ident{Name: captureName},
		Op:     token.ASSIGN,
		Value:  &ast.NilLit{},
	}
}

// captureIdent builds the capture slot identifier at the statement's position.
func captureIdent(at ast.Stmt) *ast.Ident {
	return &ast.Ident{
		BaseExpr: ast.MakeBaseExpr(at.Pos(), at.End()),
		Name:     captureName,
	}
}
