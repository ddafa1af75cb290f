package ast

import "rill/internal/token"

// ExprStmt represents an expression used as a statement.
// A trailing ExprStmt is what the capture transform rewrites.
type ExprStmt struct {
	BaseStmt
	Expr Expr // Expression to evaluate
}

// AssignStmt represents an assignment or augmented assignment.
// Examples: t = "", t += line, f[0] = "x"
type AssignStmt struct {
	BaseStmt
	Target Expr        // Target (must be lvalue: *Ident or *IndexExpr)
	Op     token.Token // Assignment operator (ASSIGN, ADD_ASSIGN, ...)
	Value  Expr        // Value expression
}

// BlockStmt represents a braced block of statements.
// Example: { t += l; n }
type BlockStmt struct {
	BaseStmt
	Stmts []Stmt // Statements in the block (may be empty)
}

// IfStmt represents an if or if-else statement.
// Example: if nf > 2 { t += l } else { t += "-" }
type IfStmt struct {
	BaseStmt
	Cond Expr // Condition expression
	Then Stmt // Then branch (*BlockStmt)
	Else Stmt // Else branch (nil, *BlockStmt, or *IfStmt for else-if)
}

// WhileStmt represents a while loop.
// Example: while i < nf { t += f[i]; i += 1 }
type WhileStmt struct {
	BaseStmt
	Cond Expr // Loop condition
	Body Stmt // Loop body (*BlockStmt)
}

// ForInStmt represents iteration over a list or string.
// Example: for w in f { t += w }
type ForInStmt struct {
	BaseStmt
	Var  *Ident // Loop variable (receives each element)
	Seq  Expr   // Sequence to iterate over
	Body Stmt   // Loop body (*BlockStmt)
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

// Ensure all statement types implement Stmt interface.
var (
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ForInStmt)(nil)
)
