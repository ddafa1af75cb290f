package ast

import "rill/internal/token"

// -----------------------------------------------------------------------------
// Literals
// -----------------------------------------------------------------------------

// NumLit represents a numeric literal (integer or float).
// Examples: 42, 3.14, 1e10, 0x1F
type NumLit struct {
	BaseExpr
	Value float64 // Parsed numeric value
	Raw   string  // Original source text
}

// StrLit represents a string literal.
// Examples: "hello", 'world\n'
type StrLit struct {
	BaseExpr
	Value string // Unescaped string value
}

// BoolLit represents the true and false literals.
type BoolLit struct {
	BaseExpr
	Value bool
}

// NilLit represents the nil literal (the unset sentinel).
type NilLit struct {
	BaseExpr
}

// ListLit represents a list literal.
// Example: [1, "two", f[0]]
type ListLit struct {
	BaseExpr
	Elems []Expr // Element expressions (may be empty)
}

// -----------------------------------------------------------------------------
// References
// -----------------------------------------------------------------------------

// Ident represents an identifier (variable name).
// Examples: t, line, nf
type Ident struct {
	BaseExpr
	Name string // Identifier name
}

// DotExpr represents member access on a capability module.
// Example: strings.upper
type DotExpr struct {
	BaseExpr
	Recv Expr   // Receiver expression (usually *Ident)
	Name string // Member name
}

// IndexExpr represents a subscript expression.
// Indexing is 0-based; negative indexes count from the end.
// Examples: f[0], m[1], f[nf-1]
type IndexExpr struct {
	BaseExpr
	Recv  Expr // Receiver expression (list or string)
	Index Expr // Subscript expression
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// BinaryExpr represents a binary operation.
// Examples: a + b, x == y, n < nf
type BinaryExpr struct {
	BaseExpr
	Left  Expr        // Left operand
	Op    token.Token // Operator token
	Right Expr        // Right operand
}

// UnaryExpr represents a unary operation.
// Examples: -x, !flag
type UnaryExpr struct {
	BaseExpr
	Op   token.Token // Operator token (SUB or NOT)
	Expr Expr        // Operand
}

// TernaryExpr represents a conditional expression.
// Example: cond ? then_val : else_val
type TernaryExpr struct {
	BaseExpr
	Cond Expr // Condition expression
	Then Expr // Value if condition is true
	Else Expr // Value if condition is false
}

// GroupExpr represents a parenthesized expression.
// Example: (a + b)
type GroupExpr struct {
	BaseExpr
	Expr Expr // Inner expression
}

// -----------------------------------------------------------------------------
// Calls
// -----------------------------------------------------------------------------

// CallExpr represents a call to a bound callable.
// Examples: len(f), strings.upper(l)
type CallExpr struct {
	BaseExpr
	Fn   Expr   // Callee expression (*Ident or *DotExpr)
	Args []Expr // Arguments (may be empty)
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

// Ensure all expression types implement Expr interface.
var (
	_ Expr = (*NumLit)(nil)
	_ Expr = (*StrLit)(nil)
	_ Expr = (*BoolLit)(nil)
	_ Expr = (*NilLit)(nil)
	_ Expr = (*ListLit)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*DotExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*TernaryExpr)(nil)
	_ Expr = (*GroupExpr)(nil)
	_ Expr = (*CallExpr)(nil)
)
