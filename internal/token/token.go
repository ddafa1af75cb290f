// Package token defines lexical tokens for the rill snippet language.
package token

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF
	NEWLINE              // <newline>

	// Operators and delimiters
	operatorStart
	ADD        // +
	ADD_ASSIGN // +=
	SUB        // -
	SUB_ASSIGN // -=
	MUL        // *
	MUL_ASSIGN // *=
	DIV        // /
	DIV_ASSIGN // /=
	MOD        // %
	MOD_ASSIGN // %=

	ASSIGN     // =
	EQUALS     // ==
	NOT_EQUALS // !=
	LESS       // <
	LTE        // <=
	GREATER    // >
	GTE        // >=

	AND // &&
	OR  // ||
	NOT // !

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	QUESTION  // ?
	DOT       // .
	operatorEnd

	// Keywords
	keywordStart
	IF    // if
	ELSE  // else
	WHILE // while
	FOR   // for
	IN    // in
	TRUE  // true
	FALSE // false
	NIL   // nil
	keywordEnd

	// Literals
	NAME   // name
	NUMBER // number
	STRING // string
)

// IsOperator returns true if the token is an operator.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal (name, number, string).
func (t Token) IsLiteral() bool {
	return t == NAME || t == NUMBER || t == STRING
}

// IsAssignOp returns true for = and the augmented assignment operators.
func (t Token) IsAssignOp() bool {
	switch t {
	case ASSIGN, ADD_ASSIGN, SUB_ASSIGN, MUL_ASSIGN, DIV_ASSIGN, MOD_ASSIGN:
		return true
	default:
		return false
	}
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Token{
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"for":   FOR,
	"in":    IN,
	"true":  TRUE,
	"false": FALSE,
	"nil":   NIL,
}

// LookupIdent returns the token type for a given identifier.
// Returns a keyword token if found, otherwise NAME.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}
