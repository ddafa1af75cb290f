package parser

import (
	"strconv"

	"rill/internal/ast"
	"rill/internal/lexer"
	"rill/internal/token"
)

// tokenName returns a human-readable name for a token type.
func tokenName(t token.Token) string {
	switch t {
	case token.ILLEGAL:
		return "illegal"
	case token.EOF:
		return "end of snippet"
	case token.NEWLINE:
		return "newline"
	case token.ADD:
		return "+"
	case token.SUB:
		return "-"
	case token.MUL:
		return "*"
	case token.DIV:
		return "/"
	case token.MOD:
		return "%"
	case token.ASSIGN:
		return "="
	case token.ADD_ASSIGN:
		return "+="
	case token.SUB_ASSIGN:
		return "-="
	case token.MUL_ASSIGN:
		return "*="
	case token.DIV_ASSIGN:
		return "/="
	case token.MOD_ASSIGN:
		return "%="
	case token.EQUALS:
		return "=="
	case token.NOT_EQUALS:
		return "!="
	case token.LESS:
		return "<"
	case token.LTE:
		return "<="
	case token.GREATER:
		return ">"
	case token.GTE:
		return ">="
	case token.AND:
		return "&&"
	case token.OR:
		return "||"
	case token.NOT:
		return "!"
	case token.LPAREN:
		return "("
	case token.RPAREN:
		return ")"
	case token.LBRACE:
		return "{"
	case token.RBRACE:
		return "}"
	case token.LBRACKET:
		return "["
	case token.RBRACKET:
		return "]"
	case token.COMMA:
		return ","
	case token.SEMICOLON:
		return ";"
	case token.COLON:
		return ":"
	case token.QUESTION:
		return "?"
	case token.DOT:
		return "."
	case token.IF:
		return "if"
	case token.ELSE:
		return "else"
	case token.WHILE:
		return "while"
	case token.FOR:
		return "for"
	case token.IN:
		return "in"
	case token.TRUE:
		return "true"
	case token.FALSE:
		return "false"
	case token.NIL:
		return "nil"
	case token.NAME:
		return "name"
	case token.NUMBER:
		return "number"
	case token.STRING:
		return "string"
	default:
		return "token"
	}
}

// Parser is a recursive descent parser for rill snippets.
type Parser struct {
	lexer  *lexer.Lexer // Lexer instance
	tok    lexer.Token  // Current token
	errors ErrorList    // Accumulated errors
}

// Parse parses a snippet from source text.
// Returns the statement list and any parse errors encountered.
func Parse(src string) ([]ast.Stmt, error) {
	return ParseBytes([]byte(src))
}

// ParseBytes parses a snippet from a byte slice.
func ParseBytes(src []byte) ([]ast.Stmt, error) {
	p := &Parser{
		lexer: lexer.New(src),
	}
	p.next() // Initialize first token

	stmts := p.parseStmts(token.EOF)

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (ast.Expr, error) {
	p := &Parser{
		lexer: lexer.New([]byte(src)),
	}
	p.next()

	expr := p.parseExpr()
	if p.tok.Type != token.EOF && len(p.errors) == 0 {
		p.errorf("unexpected %s after expression", p.tokenDesc())
	}

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.lexer.Scan()
}

// expect checks that the current token is tok and advances.
// If not, it records an error.
func (p *Parser) expect(tok token.Token) bool {
	if p.tok.Type != tok {
		p.error(expectedError(p.tok.Pos, tokenName(tok), p.tokenDesc()))
		return false
	}
	p.next()
	return true
}

// match returns true if current token matches any of the given types.
func (p *Parser) match(types ...token.Token) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.NAME, token.NUMBER, token.STRING:
		return p.tok.Value
	case token.ILLEGAL:
		// ILLEGAL token's Value contains the actual error message
		return p.tok.Value
	case token.NEWLINE:
		return "newline"
	case token.EOF:
		return "end of snippet"
	default:
		return tokenName(p.tok.Type)
	}
}

// error records a parse error.
func (p *Parser) error(err *ParseError) {
	p.errors = append(p.errors, err)
}

// errorf records a formatted parse error at current position.
func (p *Parser) errorf(format string, args ...any) {
	p.error(errorf(p.tok.Pos, format, args...))
}

// skipTerminators skips newlines and semicolons.
func (p *Parser) skipTerminators() {
	for p.match(token.NEWLINE, token.SEMICOLON) {
		p.next()
	}
}

// isTerminator returns true if current token ends a statement.
func (p *Parser) isTerminator() bool {
	return p.match(token.NEWLINE, token.SEMICOLON, token.RBRACE, token.EOF)
}

// -----------------------------------------------------------------------------
// Statement parsing
// -----------------------------------------------------------------------------

// parseStmts parses statements until the closing token.
func (p *Parser) parseStmts(close token.Token) []ast.Stmt {
	var stmts []ast.Stmt
	p.skipTerminators()
	for p.tok.Type != close && p.tok.Type != token.EOF {
		stmt := p.parseStmt()
		if stmt == nil {
			// Parse error; stop rather than loop on the offending token.
			break
		}
		stmts = append(stmts, stmt)
		if !p.isTerminator() {
			p.errorf("expected ; or newline after statement, got %s", p.tokenDesc())
			break
		}
		p.skipTerminators()
	}
	return stmts
}

// parseStmt parses a single statement.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Type {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseForIn()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseSimpleStmt()
	}
}

// parseBlock parses a braced statement block.
func (p *Parser) parseBlock() *ast.BlockStmt {
	startPos := p.tok.Pos
	if !p.expect(token.LBRACE) {
		return nil
	}
	stmts := p.parseStmts(token.RBRACE)
	endPos := p.tok.Pos
	p.expect(token.RBRACE)
	return &ast.BlockStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, endPos),
		Stmts:    stmts,
	}
}

// parseIf parses an if statement with optional else / else-if chain.
func (p *Parser) parseIf() ast.Stmt {
	startPos := p.tok.Pos
	p.next() // consume 'if'

	cond := p.parseExpr()
	then := p.parseBlock()
	if then == nil {
		return nil
	}

	var els ast.Stmt
	if p.tok.Type == token.ELSE {
		p.next()
		if p.tok.Type == token.IF {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}

	endPos := then.End()
	if els != nil {
		endPos = els.End()
	}
	return &ast.IfStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, endPos),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

// parseWhile parses a while loop.
func (p *Parser) parseWhile() ast.Stmt {
	startPos := p.tok.Pos
	p.next() // consume 'while'

	cond := p.parseExpr()
	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &ast.WhileStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, body.End()),
		Cond:     cond,
		Body:     body,
	}
}

// parseForIn parses a for-in loop over a list or string.
func (p *Parser) parseForIn() ast.Stmt {
	startPos := p.tok.Pos
	p.next() // consume 'for'

	namePos := p.tok.Pos
	name := p.tok.Value
	if !p.expect(token.NAME) {
		return nil
	}
	if !p.expect(token.IN) {
		return nil
	}
	seq := p.parseExpr()

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &ast.ForInStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, body.End()),
		Var: &ast.Ident{
			BaseExpr: ast.MakeBaseExpr(namePos, namePos),
			Name:     name,
		},
		Seq:  seq,
		Body: body,
	}
}

// parseSimpleStmt parses an expression or assignment statement.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	startPos := p.tok.Pos
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if p.tok.Type.IsAssignOp() {
		op := p.tok.Type
		if !ast.IsLValue(expr) {
			p.errorf("cannot assign to %T", expr)
			return nil
		}
		p.next()
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		return &ast.AssignStmt{
			BaseStmt: ast.MakeBaseStmt(startPos, value.End()),
			Target:   expr,
			Op:       op,
			Value:    value,
		}
	}

	return &ast.ExprStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, expr.End()),
		Expr:     expr,
	}
}

// -----------------------------------------------------------------------------
// Expression parsing (precedence climbing)
// -----------------------------------------------------------------------------

// parseExpr parses a full expression.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseTernary()
}

// parseTernary parses cond ? then : else expressions.
func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseOr()
	if cond == nil || p.tok.Type != token.QUESTION {
		return cond
	}
	p.next()
	then := p.parseTernary()
	if !p.expect(token.COLON) {
		return cond
	}
	els := p.parseTernary()
	if then == nil || els == nil {
		return cond
	}
	return &ast.TernaryExpr{
		BaseExpr: ast.MakeBaseExpr(cond.Pos(), els.End()),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

// parseOr parses || expressions.
func (p *Parser) parseOr() ast.Expr {
	return p.parseBinaryLeft(p.parseAnd, token.OR)
}

// parseAnd parses && expressions.
func (p *Parser) parseAnd() ast.Expr {
	return p.parseBinaryLeft(p.parseCompare, token.AND)
}

// parseCompare parses comparison expressions (non-associative).
func (p *Parser) parseCompare() ast.Expr {
	left := p.parseAdd()
	if left == nil {
		return nil
	}
	if p.match(token.EQUALS, token.NOT_EQUALS, token.LESS, token.LTE, token.GREATER, token.GTE) {
		op := p.tok.Type
		p.next()
		right := p.parseAdd()
		if right == nil {
			return nil
		}
		return &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
	return left
}

// parseAdd parses + and - expressions.
func (p *Parser) parseAdd() ast.Expr {
	return p.parseBinaryLeft(p.parseMul, token.ADD, token.SUB)
}

// parseMul parses *, / and % expressions.
func (p *Parser) parseMul() ast.Expr {
	return p.parseBinaryLeft(p.parseUnary, token.MUL, token.DIV, token.MOD)
}

// parseBinaryLeft parses a left-associative binary expression level.
func (p *Parser) parseBinaryLeft(higher func() ast.Expr, ops ...token.Token) ast.Expr {
	expr := higher()
	if expr == nil {
		return nil
	}
	for p.match(ops...) {
		op := p.tok.Type
		p.next()
		right := higher()
		if right == nil {
			return nil
		}
		expr = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

// parseUnary parses unary - and ! expressions.
func (p *Parser) parseUnary() ast.Expr {
	if p.match(token.SUB, token.NOT) {
		op := p.tok.Type
		startPos := p.tok.Pos
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			BaseExpr: ast.MakeBaseExpr(startPos, operand.End()),
			Op:       op,
			Expr:     operand,
		}
	}
	return p.parsePostfix()
}

// parsePostfix parses calls, indexing and member access.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch p.tok.Type {
		case token.LPAREN:
			p.next()
			var args []ast.Expr
			for p.tok.Type != token.RPAREN && p.tok.Type != token.EOF {
				if len(args) > 0 && !p.expect(token.COMMA) {
					return nil
				}
				arg := p.parseExpr()
				if arg == nil {
					return nil
				}
				args = append(args, arg)
			}
			endPos := p.tok.Pos
			if !p.expect(token.RPAREN) {
				return nil
			}
			expr = &ast.CallExpr{
				BaseExpr: ast.MakeBaseExpr(expr.Pos(), endPos),
				Fn:       expr,
				Args:     args,
			}

		case token.LBRACKET:
			p.next()
			index := p.parseExpr()
			if index == nil {
				return nil
			}
			endPos := p.tok.Pos
			if !p.expect(token.RBRACKET) {
				return nil
			}
			expr = &ast.IndexExpr{
				BaseExpr: ast.MakeBaseExpr(expr.Pos(), endPos),
				Recv:     expr,
				Index:    index,
			}

		case token.DOT:
			p.next()
			namePos := p.tok.Pos
			name := p.tok.Value
			if !p.expect(token.NAME) {
				return nil
			}
			expr = &ast.DotExpr{
				BaseExpr: ast.MakeBaseExpr(expr.Pos(), namePos),
				Recv:     expr,
				Name:     name,
			}

		default:
			return expr
		}
	}
}

// parsePrimary parses literals, identifiers and grouping.
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.tok.Pos

	switch p.tok.Type {
	case token.NUMBER:
		raw := p.tok.Value
		value, err := parseNumber(raw)
		if err != nil {
			p.errorf("invalid number %q", raw)
			return nil
		}
		p.next()
		return &ast.NumLit{
			BaseExpr: ast.MakeBaseExpr(pos, pos),
			Value:    value,
			Raw:      raw,
		}

	case token.STRING:
		value := p.tok.Value
		p.next()
		return &ast.StrLit{
			BaseExpr: ast.MakeBaseExpr(pos, pos),
			Value:    value,
		}

	case token.TRUE, token.FALSE:
		value := p.tok.Type == token.TRUE
		p.next()
		return &ast.BoolLit{
			BaseExpr: ast.MakeBaseExpr(pos, pos),
			Value:    value,
		}

	case token.NIL:
		p.next()
		return &ast.NilLit{
			BaseExpr: ast.MakeBaseExpr(pos, pos),
		}

	case token.NAME:
		name := p.tok.Value
		p.next()
		return &ast.Ident{
			BaseExpr: ast.MakeBaseExpr(pos, pos),
			Name:     name,
		}

	case token.LPAREN:
		p.next()
		inner := p.parseExpr()
		if inner == nil {
			return nil
		}
		endPos := p.tok.Pos
		if !p.expect(token.RPAREN) {
			return nil
		}
		return &ast.GroupExpr{
			BaseExpr: ast.MakeBaseExpr(pos, endPos),
			Expr:     inner,
		}

	case token.LBRACKET:
		p.next()
		var elems []ast.Expr
		for p.tok.Type != token.RBRACKET && p.tok.Type != token.EOF {
			if len(elems) > 0 && !p.expect(token.COMMA) {
				return nil
			}
			elem := p.parseExpr()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
		}
		endPos := p.tok.Pos
		if !p.expect(token.RBRACKET) {
			return nil
		}
		return &ast.ListLit{
			BaseExpr: ast.MakeBaseExpr(pos, endPos),
			Elems:    elems,
		}

	default:
		p.errorf("unexpected %s", p.tokenDesc())
		return nil
	}
}

// parseNumber converts a NUMBER token value to float64.
// Hex literals come through as 0x... and need integer parsing.
func parseNumber(raw string) (float64, error) {
	if len(raw) > 2 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X') {
		n, err := strconv.ParseUint(raw[2:], 16, 64)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
	return strconv.ParseFloat(raw, 64)
}
