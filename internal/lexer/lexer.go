// Package lexer provides snippet source tokenization.
package lexer

import (
	"rill/internal/token"
)

// Lexer tokenizes rill snippet source text.
type Lexer struct {
	src     []byte         // Source text
	ch      byte           // Current character (0 at EOF)
	offset  int            // Current byte offset
	pos     token.Position // Current position
	nextPos token.Position // Position of next character
}

// New creates a new Lexer for the given source text.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 1,
		},
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	// Skip comments
	if l.ch == '#' {
		l.skipComment()
	}

	// Record position
	pos := l.pos

	// EOF
	if l.ch == 0 {
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '\n':
		l.next()
		return Token{Type: token.NEWLINE, Pos: pos}

	case '+':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.ADD_ASSIGN, Pos: pos, Value: "+="}
		}
		return Token{Type: token.ADD, Pos: pos, Value: "+"}

	case '-':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.SUB_ASSIGN, Pos: pos, Value: "-="}
		}
		return Token{Type: token.SUB, Pos: pos, Value: "-"}

	case '*':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.MUL_ASSIGN, Pos: pos, Value: "*="}
		}
		return Token{Type: token.MUL, Pos: pos, Value: "*"}

	case '/':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.DIV_ASSIGN, Pos: pos, Value: "/="}
		}
		return Token{Type: token.DIV, Pos: pos, Value: "/"}

	case '%':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.MOD_ASSIGN, Pos: pos, Value: "%="}
		}
		return Token{Type: token.MOD, Pos: pos, Value: "%"}

	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.EQUALS, Pos: pos, Value: "=="}
		}
		return Token{Type: token.ASSIGN, Pos: pos, Value: "="}

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.NOT_EQUALS, Pos: pos, Value: "!="}
		}
		return Token{Type: token.NOT, Pos: pos, Value: "!"}

	case '<':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.LTE, Pos: pos, Value: "<="}
		}
		return Token{Type: token.LESS, Pos: pos, Value: "<"}

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.GTE, Pos: pos, Value: ">="}
		}
		return Token{Type: token.GREATER, Pos: pos, Value: ">"}

	case '&':
		l.next()
		if l.ch == '&' {
			l.next()
			return Token{Type: token.AND, Pos: pos, Value: "&&"}
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected '&'"}

	case '|':
		l.next()
		if l.ch == '|' {
			l.next()
			return Token{Type: token.OR, Pos: pos, Value: "||"}
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected '|'"}

	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	case '{':
		l.next()
		return Token{Type: token.LBRACE, Pos: pos, Value: "{"}
	case '}':
		l.next()
		return Token{Type: token.RBRACE, Pos: pos, Value: "}"}
	case '[':
		l.next()
		return Token{Type: token.LBRACKET, Pos: pos, Value: "["}
	case ']':
		l.next()
		return Token{Type: token.RBRACKET, Pos: pos, Value: "]"}
	case ',':
		l.next()
		return Token{Type: token.COMMA, Pos: pos, Value: ","}
	case ';':
		l.next()
		return Token{Type: token.SEMICOLON, Pos: pos, Value: ";"}
	case ':':
		l.next()
		return Token{Type: token.COLON, Pos: pos, Value: ":"}
	case '?':
		l.next()
		return Token{Type: token.QUESTION, Pos: pos, Value: "?"}

	case '.':
		// Could be member access or a leading-dot number like .5
		if l.offset < len(l.src) && isDigit(l.src[l.offset]) {
			return l.scanNumber(pos)
		}
		l.next()
		return Token{Type: token.DOT, Pos: pos, Value: "."}

	case '"', '\'':
		return l.scanString(pos)

	default:
		if isDigit(l.ch) {
			return l.scanNumber(pos)
		}
		if isIdentStart(l.ch) {
			return l.scanIdent(pos)
		}
		ch := l.ch
		l.next()
		return Token{Type: token.ILLEGAL, Pos: pos, Value: string(ch)}
	}
}

func (l *Lexer) scanString(pos token.Position) Token {
	quote := l.ch
	l.next() // consume opening quote

	var sb []byte
	for l.ch != 0 && l.ch != quote && l.ch != '\n' {
		if l.ch == '\\' {
			l.next()
			switch l.ch {
			case 'n':
				sb = append(sb, '\n')
			case 't':
				sb = append(sb, '\t')
			case 'r':
				sb = append(sb, '\r')
			case '\\':
				sb = append(sb, '\\')
			case '"':
				sb = append(sb, '"')
			case '\'':
				sb = append(sb, '\'')
			case '0':
				sb = append(sb, 0)
			default:
				sb = append(sb, l.ch)
			}
			l.next()
		} else {
			sb = append(sb, l.ch)
			l.next()
		}
	}

	if l.ch != quote {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated string"}
	}
	l.next() // consume closing quote

	return Token{Type: token.STRING, Pos: pos, Value: string(sb)}
}

func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset // Use position offset to include first character

	// Check for hex
	if l.ch == '0' && l.offset < len(l.src) && (l.src[l.offset] == 'x' || l.src[l.offset] == 'X') {
		l.next() // 0
		l.next() // x
		for isHexDigit(l.ch) {
			l.next()
		}
		return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.endOffset()])}
	}

	// Decimal number
	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}
	// Check for exponent: only consume e/E if followed by digit or +/- then digit
	if l.ch == 'e' || l.ch == 'E' {
		if l.hasValidExponent() {
			l.next() // consume e/E
			if l.ch == '+' || l.ch == '-' {
				l.next()
			}
			for isDigit(l.ch) {
				l.next()
			}
		}
	}

	return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentContinue(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.endOffset()])
	return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
}

// endOffset returns the correct end offset for slicing l.src.
// At EOF, l.pos is not updated, so we use len(l.src); otherwise l.pos.Offset.
func (l *Lexer) endOffset() int {
	if l.ch == 0 {
		return len(l.src)
	}
	return l.pos.Offset
}

// hasValidExponent checks if current e/E is followed by a valid exponent.
func (l *Lexer) hasValidExponent() bool {
	idx := l.offset // Next char position (after e/E)
	if idx >= len(l.src) {
		return false
	}
	ch := l.src[idx]
	if isDigit(ch) {
		return true
	}
	if ch == '+' || ch == '-' {
		idx++
		if idx < len(l.src) && isDigit(l.src[idx]) {
			return true
		}
	}
	return false
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\\' {
		if l.ch == '\\' {
			// Line continuation. A backslash not followed by a line break
			// is left in place for Scan to reject as ILLEGAL.
			if !l.continuesLine() {
				return
			}
			l.next()
			if l.ch == '\r' {
				l.next()
			}
		}
		l.next()
	}
}

// continuesLine reports whether the backslash at l.ch starts a
// backslash-newline (or backslash-CRLF) line continuation.
func (l *Lexer) continuesLine() bool {
	idx := l.offset
	if idx < len(l.src) && l.src[idx] == '\r' {
		idx++
	}
	return idx < len(l.src) && l.src[idx] == '\n'
}

func (l *Lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.next()
	}
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}

	l.pos = l.nextPos
	l.ch = l.src[l.offset]
	l.offset++
	l.nextPos.Column++
	l.nextPos.Offset = l.offset

	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	}
}

// Helper functions

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
