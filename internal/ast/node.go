// Package ast defines the abstract syntax tree for rill snippets.
//
// A snippet is an ordered sequence of statements; the compiler's capture
// transform rewrites a trailing bare-expression statement so its value lands
// in a reserved slot.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── NumLit, StrLit, BoolLit, NilLit, ListLit - literals
//	│   ├── Ident, DotExpr, IndexExpr - references
//	│   ├── BinaryExpr, UnaryExpr, TernaryExpr - operations
//	│   ├── CallExpr - calls
//	│   └── GroupExpr - grouping
//	└── Stmt (interface) - statements that perform actions
//	    ├── ExprStmt, AssignStmt - basic
//	    ├── IfStmt, WhileStmt, ForInStmt - control flow
//	    └── BlockStmt - compound
package ast

import "rill/internal/token"

// Node is the interface implemented by all AST nodes.
// It provides source position information for error reporting.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// Expr is the interface for all expression nodes.
// Expressions are AST nodes that evaluate to a value.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Stmt is the interface for all statement nodes.
// Statements are AST nodes that perform actions.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// BaseExpr provides common fields for all expression nodes.
// Embedded in concrete expression types for position tracking.
type BaseExpr struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// BaseStmt provides common fields for all statement nodes.
// Embedded in concrete statement types for position tracking.
type BaseStmt struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseStmt) Pos() token.Position { return b.StartPos }
func (b *BaseStmt) End() token.Position { return b.EndPos }
func (b *BaseStmt) stmtNode()           {}

// IsLValue returns true if the expression can be used as an assignment target.
func IsLValue(e Expr) bool {
	switch e.(type) {
	case *Ident, *IndexExpr:
		return true
	default:
		return false
	}
}

// MakeBaseExpr creates a BaseExpr with the given positions.
func MakeBaseExpr(start, end token.Position) BaseExpr {
	return BaseExpr{StartPos: start, EndPos: end}
}

// MakeBaseStmt creates a BaseStmt with the given positions.
func MakeBaseStmt(start, end token.Position) BaseStmt {
	return BaseStmt{StartPos: start, EndPos: end}
}
