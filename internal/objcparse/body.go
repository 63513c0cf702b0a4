package objcparse

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/token"
	"github.com/occ2swift/occ/internal/types"
)

// This file is the statement/expression half of the driver: it turns a
// method body or a global initializer directly into internal/ast trees,
// skipping a separate Objective-C-shaped expression AST (§6.1 frames this
// package as peripheral plumbing free to take shortcuts the core pipeline
// can't).

// parseInitializerExpression parses a single expression up to the next
// ';' and wraps it as the sole statement of a global/ivar initializer.
func (p *parser) parseInitializerExpression() []*ast.Statement {
	tok := p.cur
	e := p.parseExpression()
	return []*ast.Statement{ast.NewExpressionStatement(tok, e)}
}

// parseCompoundStatement parses a `{ ... }` block and returns its
// statements (used directly as a Member.Body).
func (p *parser) parseCompoundStatement() []*ast.Statement {
	p.expect(token.LBRACE)
	var out []*ast.Statement
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if st := p.parseStatement(); st != nil {
			out = append(out, st)
		}
	}
	if p.cur.Type == token.RBRACE {
		p.advance()
	}
	return out
}

func (p *parser) parseCompoundStatementStmt() *ast.Statement {
	tok := p.cur
	return ast.NewCompound(tok, p.parseCompoundStatement()...)
}

func (p *parser) parseStatement() *ast.Statement {
	switch {
	case p.cur.Type == token.LBRACE:
		return p.parseCompoundStatementStmt()
	case p.curIdentIs("if"):
		return p.parseIfStatement()
	case p.curIdentIs("while"):
		return p.parseWhileStatement()
	case p.curIdentIs("do"):
		return p.parseDoWhileStatement()
	case p.cur.Type == token.AT && p.peekIdentIs("try"):
		return p.parseTryStatement()
	case p.curIdentIs("for"):
		return p.parseForStatement()
	case p.curIdentIs("switch"):
		return p.parseSwitchStatement()
	case p.curIdentIs("return"):
		return p.parseReturnStatement()
	case p.curIdentIs("break"):
		tok := p.cur
		p.advance()
		p.skipSemi()
		return ast.NewBreak(tok)
	case p.curIdentIs("continue"):
		tok := p.cur
		p.advance()
		p.skipSemi()
		return ast.NewContinue(tok)
	case p.cur.Type == token.SEMI:
		p.advance()
		return nil
	case p.looksLikeVarDecl():
		return p.parseVarDeclStatement()
	default:
		tok := p.cur
		e := p.parseExpression()
		p.skipSemi()
		return ast.NewExpressionStatement(tok, e)
	}
}

func (p *parser) skipSemi() {
	if p.cur.Type == token.SEMI {
		p.advance()
	}
}

func (p *parser) parseIfStatement() *ast.Statement {
	tok := p.cur
	p.advance() // if
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()
	var els *ast.Statement
	if p.curIdentIs("else") {
		p.advance()
		els = p.parseStatement()
	}
	return ast.NewIf(tok, cond, nil, then, els)
}

func (p *parser) parseWhileStatement() *ast.Statement {
	tok := p.cur
	p.advance() // while
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return ast.NewWhile(tok, cond, nil, body)
}

func (p *parser) parseDoWhileStatement() *ast.Statement {
	tok := p.cur
	p.advance() // do
	body := p.parseStatement()
	if p.curIdentIs("while") {
		p.advance()
	}
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.skipSemi()
	return ast.NewDoWhile(tok, cond, body)
}

// parseTryStatement translates `@try { } @catch (Type *e) { } @finally { }`
// into a Swift do/catch (@finally has no Swift equivalent expressible as a
// CatchClause, so its body is appended at the end of the do block).
func (p *parser) parseTryStatement() *ast.Statement {
	tok := p.cur
	p.advance() // @
	p.advance() // try
	body := p.parseStatement()

	var catches []ast.CatchClause
	for p.cur.Type == token.AT && p.peekIdentIs("catch") {
		p.advance()
		p.advance()
		var pat *ast.Pattern
		if p.cur.Type == token.LPAREN {
			p.advance()
			_, name, _ := p.parseTypeAndName(token.RPAREN)
			p.expect(token.RPAREN)
			if name != "" {
				pat = &ast.Pattern{Kind: ast.PatIdentifier, Name: name}
			}
		}
		catchBody := p.parseStatement()
		catches = append(catches, ast.CatchClause{Pattern: pat, Body: catchBody})
	}
	if p.cur.Type == token.AT && p.peekIdentIs("finally") {
		p.advance()
		p.advance()
		finallyBody := p.parseStatement()
		if finallyBody != nil {
			body = ast.NewCompound(tok, body, finallyBody)
		}
	}
	return ast.NewDo(tok, body, catches)
}

// parseForStatement handles both the C-style `for (init; cond; step)` form
// and Objective-C fast enumeration `for (Type *x in collection)`, the
// latter mapping directly onto a Swift for-in loop and the former
// desugaring into an equivalent `{ init; while cond { body; step } }`.
func (p *parser) parseForStatement() *ast.Statement {
	tok := p.cur
	p.advance() // for
	p.expect(token.LPAREN)

	if p.looksLikeVarDecl() {
		typeName, name, initStmt := p.parseForVarClause()
		if p.curIdentIs("in") {
			return p.parseFastEnumerationTail(tok, typeName, name)
		}
		return p.parseCStyleForTail(tok, initStmt)
	}
	if p.cur.Type != token.SEMI {
		e := p.parseExpression()
		if p.curIdentIs("in") {
			// `for (existingVar in collection)`, rare but valid; reuse the
			// already-parsed identifier as the binding name.
			return p.parseFastEnumerationTail(tok, "", exprIdentName(e))
		}
		return p.parseCStyleForTail(tok, ast.NewExpressionStatement(tok, e))
	}
	return p.parseCStyleForTail(tok, nil)
}

func exprIdentName(e *ast.Expression) string {
	if id, ok := e.AsIdentifier(); ok {
		return id.Name
	}
	return "_"
}

// parseForVarClause parses the declaration half of a for-loop head
// (`Type *name` or `Type *name = init`) without consuming the terminator,
// since the caller still needs to decide between `in` (fast enumeration)
// and ';' (C-style) before continuing.
func (p *parser) parseForVarClause() (typeName, name string, stmt *ast.Statement) {
	tok := p.cur
	isConst := false
	for p.curIdentIs("static") || p.curIdentIs("const") || p.curIdentIs("__block") ||
		p.curIdentIs("__weak") || p.curIdentIs("__strong") || p.curIdentIs("__unsafe_unretained") {
		if p.cur.Lexeme == "const" {
			isConst = true
		}
		p.advance()
	}
	typeName, name = p.parseTypeAndNameStop(func(t token.Token) bool {
		return t.Type == token.SEMI || t.Type == token.EQUALS || (t.Type == token.IDENT && t.Lexeme == "in")
	})
	var value *ast.Expression
	if p.cur.Type == token.EQUALS {
		p.advance()
		value = p.parseExpression()
	}
	binding := ast.VarBinding{Pattern: &ast.Pattern{Kind: ast.PatIdentifier, Name: name, IsVar: !isConst}, Value: value}
	if typeName != "" {
		t := types.Named(typeName)
		binding.TypeAnnotation = &t
	}
	stmt = ast.NewVariableDeclaration(tok, isConst, []ast.VarBinding{binding})
	return typeName, name, stmt
}

func (p *parser) parseFastEnumerationTail(tok token.Token, typeName, name string) *ast.Statement {
	p.advance() // in
	seq := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	pattern := &ast.Pattern{Kind: ast.PatIdentifier, Name: name, IsVar: true}
	return ast.NewFor(tok, pattern, seq, nil, body)
}

func (p *parser) parseCStyleForTail(tok token.Token, initStmt *ast.Statement) *ast.Statement {
	p.skipSemi()
	var cond *ast.Expression
	if p.cur.Type != token.SEMI {
		cond = p.parseExpression()
	}
	p.skipSemi()
	var step *ast.Expression
	if p.cur.Type != token.RPAREN {
		step = p.parseExpression()
	}
	p.expect(token.RPAREN)
	body := p.parseStatement()

	loopBody := body
	if step != nil {
		loopBody = ast.NewCompound(tok, body, ast.NewExpressionStatement(tok, step))
	}
	whileLoop := ast.NewWhile(tok, cond, nil, loopBody)
	if initStmt != nil {
		return ast.NewCompound(tok, initStmt, whileLoop)
	}
	return whileLoop
}

func (p *parser) parseSwitchStatement() *ast.Statement {
	tok := p.cur
	p.advance() // switch
	p.expect(token.LPAREN)
	subject := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	var cases []ast.SwitchCase
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		var c ast.SwitchCase
		if p.curIdentIs("default") {
			p.advance()
			p.expect(token.COLON)
			c.IsDefault = true
		} else {
			for p.curIdentIs("case") {
				p.advance()
				e := p.parseExpression()
				c.Patterns = append(c.Patterns, &ast.Pattern{Kind: ast.PatExpression, MatchExpr: e})
				p.expect(token.COLON)
			}
		}
		for !p.curIdentIs("case") && !p.curIdentIs("default") && p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
			if st := p.parseStatement(); st != nil {
				c.Body = append(c.Body, st)
			}
		}
		cases = append(cases, c)
	}
	if p.cur.Type == token.RBRACE {
		p.advance()
	}
	return ast.NewSwitch(tok, subject, cases)
}

func (p *parser) parseReturnStatement() *ast.Statement {
	tok := p.cur
	p.advance() // return
	var val *ast.Expression
	if p.cur.Type != token.SEMI {
		val = p.parseExpression()
	}
	p.skipSemi()
	return ast.NewReturn(tok, val)
}

// looksLikeVarDecl guesses whether the statement starting at cur is a
// local declaration (`Type name = ...;` / `Type *name;`) rather than an
// expression statement, by checking for a capitalized leading type name
// or a storage qualifier followed eventually by an identifier before '='
// or ';'. This mirrors parseGlobalVar's dispatch heuristic (isKnownTypeStart).
func (p *parser) looksLikeVarDecl() bool {
	if p.curIdentIs("static") || p.curIdentIs("const") || p.curIdentIs("__block") ||
		p.curIdentIs("__weak") || p.curIdentIs("__strong") || p.curIdentIs("__unsafe_unretained") {
		return true
	}
	if p.cur.Type != token.IDENT || len(p.cur.Lexeme) == 0 {
		return false
	}
	if !unicode.IsUpper(rune(p.cur.Lexeme[0])) {
		return false
	}
	// A capitalized identifier followed by another identifier or '*' is a
	// type, not a value in expression position.
	return p.peek.Type == token.STAR || p.peek.Type == token.IDENT || p.peek.Type == token.LANGLE
}

func (p *parser) parseVarDeclStatement() *ast.Statement {
	tok := p.cur
	isConst := false
	weak := false
	for p.curIdentIs("static") || p.curIdentIs("const") || p.curIdentIs("__block") ||
		p.curIdentIs("__weak") || p.curIdentIs("__strong") || p.curIdentIs("__unsafe_unretained") {
		if p.cur.Lexeme == "const" {
			isConst = true
		}
		if p.cur.Lexeme == "__weak" {
			weak = true
		}
		p.advance()
	}
	_ = weak
	typeName, name, _ := p.parseTypeAndName(token.EQUALS)
	var value *ast.Expression
	if p.cur.Type == token.EQUALS {
		p.advance()
		value = p.parseExpression()
	}
	p.skipSemi()
	binding := ast.VarBinding{Pattern: &ast.Pattern{Kind: ast.PatIdentifier, Name: name, IsVar: !isConst}, Value: value}
	if typeName != "" {
		t := types.Named(typeName)
		binding.TypeAnnotation = &t
	}
	return ast.NewVariableDeclaration(tok, isConst, []ast.VarBinding{binding})
}

// ---- expressions ----

func (p *parser) parseExpression() *ast.Expression {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() *ast.Expression {
	left := p.parseTernary()
	op, width := p.peekAssignOp()
	if op == "" {
		return left
	}
	tok := p.cur
	for i := 0; i < width; i++ {
		p.advance()
	}
	right := p.parseAssignment()
	return ast.NewAssignment(tok, op, left, right)
}

func (p *parser) peekAssignOp() (string, int) {
	switch p.cur.Type {
	case token.EQUALS:
		return "=", 1
	case token.PLUS:
		if p.peek.Type == token.EQUALS {
			return "+=", 2
		}
	case token.MINUS:
		if p.peek.Type == token.EQUALS {
			return "-=", 2
		}
	case token.STAR:
		if p.peek.Type == token.EQUALS {
			return "*=", 2
		}
	case token.SLASH:
		if p.peek.Type == token.EQUALS {
			return "/=", 2
		}
	case token.PERCENT:
		if p.peek.Type == token.EQUALS {
			return "%=", 2
		}
	case token.AMP:
		if p.peek.Type == token.EQUALS {
			return "&=", 2
		}
	case token.PIPE:
		if p.peek.Type == token.EQUALS {
			return "|=", 2
		}
	case token.CARET:
		if p.peek.Type == token.EQUALS {
			return "^=", 2
		}
	}
	return "", 0
}

func (p *parser) parseTernary() *ast.Expression {
	cond := p.parseBinary(0)
	if p.cur.Type != token.QUESTION {
		return cond
	}
	tok := p.cur
	p.advance()
	then := p.parseExpression()
	p.expect(token.COLON)
	els := p.parseTernary()
	return ast.NewTernary(tok, cond, then, els)
}

var binaryPrecedence = map[string]int{
	"||": 3, "&&": 4,
	"|": 5, "^": 6, "&": 7,
	"==": 8, "!=": 8,
	"<": 9, ">": 9, "<=": 9, ">=": 9,
	"<<": 10, ">>": 10,
	"+": 11, "-": 11,
	"*": 12, "/": 12, "%": 12,
}

func (p *parser) parseBinary(minPrec int) *ast.Expression {
	left := p.parseUnary()
	for {
		op, width := p.peekBinaryOp()
		if op == "" {
			return left
		}
		prec := binaryPrecedence[op]
		if prec < minPrec {
			return left
		}
		tok := p.cur
		for i := 0; i < width; i++ {
			p.advance()
		}
		right := p.parseBinary(prec + 1)
		left = ast.NewBinary(tok, op, left, right)
	}
}

func (p *parser) peekBinaryOp() (string, int) {
	if p.cur.Type == token.IDENT {
		switch p.cur.Lexeme {
		case "==", "!=", "&&", "||":
			return p.cur.Lexeme, 1
		}
		return "", 0
	}
	switch p.cur.Type {
	case token.PLUS:
		return "+", 1
	case token.MINUS:
		return "-", 1
	case token.STAR:
		return "*", 1
	case token.SLASH:
		return "/", 1
	case token.PERCENT:
		return "%", 1
	case token.AMP:
		return "&", 1
	case token.PIPE:
		return "|", 1
	case token.CARET:
		return "^", 1
	case token.LANGLE:
		if p.peek.Type == token.EQUALS {
			return "<=", 2
		}
		if p.peek.Type == token.LANGLE {
			return "<<", 2
		}
		return "<", 1
	case token.RANGLE:
		if p.peek.Type == token.EQUALS {
			return ">=", 2
		}
		if p.peek.Type == token.RANGLE {
			return ">>", 2
		}
		return ">", 1
	}
	return "", 0
}

func (p *parser) parseUnary() *ast.Expression {
	tok := p.cur
	switch {
	case p.cur.Type == token.BANG:
		p.advance()
		return ast.NewPrefix(tok, "!", p.parseUnary())
	case p.cur.Type == token.TILDE:
		p.advance()
		return ast.NewPrefix(tok, "~", p.parseUnary())
	case p.cur.Type == token.MINUS && p.peek.Type == token.MINUS:
		p.advance()
		p.advance()
		return ast.NewPrefix(tok, "--", p.parseUnary())
	case p.cur.Type == token.PLUS && p.peek.Type == token.PLUS:
		p.advance()
		p.advance()
		return ast.NewPrefix(tok, "++", p.parseUnary())
	case p.cur.Type == token.MINUS:
		p.advance()
		return ast.NewPrefix(tok, "-", p.parseUnary())
	case p.cur.Type == token.PLUS:
		p.advance()
		return ast.NewPrefix(tok, "+", p.parseUnary())
	case p.cur.Type == token.AMP:
		p.advance()
		return ast.NewPrefix(tok, "&", p.parseUnary())
	case p.cur.Type == token.STAR:
		p.advance()
		return ast.NewPrefix(tok, "*", p.parseUnary())
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() *ast.Expression {
	base := p.parsePrimary()
	var chain []ast.PostfixOp
	for {
		switch {
		case p.cur.Type == token.DOT:
			tok := p.cur
			p.advance()
			name := p.cur.Lexeme
			if p.cur.Type == token.IDENT {
				p.advance()
			}
			chain = append(chain, ast.MemberOp(tok, name))
		case p.cur.Type == token.ARROW:
			tok := p.cur
			p.advance()
			name := p.cur.Lexeme
			if p.cur.Type == token.IDENT {
				p.advance()
			}
			chain = append(chain, ast.MemberOp(tok, name))
		case p.cur.Type == token.LPAREN:
			tok := p.cur
			args := p.parseArgList()
			chain = append(chain, ast.CallOp(tok, args...))
		case p.cur.Type == token.LBRACKET:
			tok := p.cur
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			chain = append(chain, ast.SubscriptOp(tok, idx))
		default:
			goto done
		}
	}
done:
	var e *ast.Expression
	if len(chain) == 0 {
		e = base
	} else {
		e = ast.NewPostfix(base.Token, base, chain...)
	}
	if p.cur.Type == token.PLUS && p.peek.Type == token.PLUS {
		tok := p.cur
		p.advance()
		p.advance()
		e = ast.NewUnary(tok, "++", e)
	} else if p.cur.Type == token.MINUS && p.peek.Type == token.MINUS {
		tok := p.cur
		p.advance()
		p.advance()
		e = ast.NewUnary(tok, "--", e)
	}
	return e
}

// parseArgList parses a parenthesized, comma-separated C-style call
// argument list. It expects cur to be the opening '('.
func (p *parser) parseArgList() []ast.Argument {
	p.advance() // (
	var args []ast.Argument
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		args = append(args, ast.Arg(p.parseExpression()))
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *parser) parsePrimary() *ast.Expression {
	tok := p.cur
	switch tok.Type {
	case token.INT:
		v, _ := strconv.ParseInt(trimNumSuffix(tok.Lexeme), 0, 64)
		p.advance()
		return ast.NewIntLiteral(tok, v)
	case token.FLOAT:
		v, _ := strconv.ParseFloat(trimNumSuffix(tok.Lexeme), 64)
		p.advance()
		return ast.NewFloatLiteral(tok, v)
	case token.STRING:
		p.advance()
		return ast.NewStringLiteral(tok, tok.Lexeme)
	case token.AT:
		return p.parseBoxedLiteral()
	case token.LPAREN:
		return p.parseParenOrCast()
	case token.LBRACKET:
		return p.parseMessageSend()
	case token.CARET:
		return p.parseBlockLiteral()
	case token.IDENT:
		return p.parseIdentifierPrimary()
	default:
		p.errorf("unexpected token %s in expression", tok.Type)
		p.advance()
		return ast.NewIdentifier(tok, tok.Lexeme)
	}
}

func trimNumSuffix(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		switch r {
		case 'f', 'F', 'u', 'U', 'l', 'L':
			return true
		}
		return false
	})
}

func (p *parser) parseIdentifierPrimary() *ast.Expression {
	tok := p.cur
	switch tok.Lexeme {
	case "nil", "NULL", "Nil":
		p.advance()
		return ast.NewNilLiteral(tok)
	case "YES", "true":
		p.advance()
		return ast.NewBoolLiteral(tok, true)
	case "NO", "false":
		p.advance()
		return ast.NewBoolLiteral(tok, false)
	case "self":
		p.advance()
		return ast.NewIdentifier(tok, "self")
	case "super":
		p.advance()
		return ast.NewIdentifier(tok, "super")
	case "sizeof":
		p.advance()
		if p.cur.Type == token.LPAREN && isTypeStartToken(p.peek) {
			p.advance()
			spelling, _ := p.parseTypeSpelling(token.RPAREN)
			p.expect(token.RPAREN)
			return ast.NewSizeofType(tok, types.Named(spelling))
		}
		return ast.NewSizeofExpr(tok, p.parseUnary())
	default:
		p.advance()
		return ast.NewIdentifier(tok, tok.Lexeme)
	}
}

func isTypeStartToken(t token.Token) bool {
	return t.Type == token.IDENT && len(t.Lexeme) > 0 && unicode.IsUpper(rune(t.Lexeme[0]))
}

// parseParenOrCast disambiguates `(expr)` from `(Type *)expr` using the
// same capitalized-leading-identifier heuristic as looksLikeVarDecl: a
// parenthesized capitalized identifier (optionally followed by stars or
// a generic argument list) immediately followed by another primary-start
// token is treated as a C-style cast.
func (p *parser) parseParenOrCast() *ast.Expression {
	tok := p.cur
	p.advance() // (
	if isTypeStartToken(p.cur) {
		spelling, _ := p.parseTypeSpelling(token.RPAREN)
		if p.cur.Type == token.RPAREN && startsExpression(p.peek) {
			p.advance() // )
			operand := p.parseUnary()
			return ast.NewCast(tok, "as!", types.Named(spelling), operand)
		}
		// Not actually a cast; reparse the collected spelling as an
		// expression is not possible since tokens were consumed, so fall
		// back to treating the lone identifier as the parenthesized value.
		p.expect(token.RPAREN)
		return ast.NewParenthesized(tok, ast.NewIdentifier(tok, spelling))
	}
	inner := p.parseExpression()
	p.expect(token.RPAREN)
	return ast.NewParenthesized(tok, inner)
}

func startsExpression(t token.Token) bool {
	switch t.Type {
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.AT, token.LPAREN,
		token.LBRACKET, token.CARET, token.MINUS, token.PLUS, token.BANG, token.TILDE, token.AMP, token.STAR:
		return true
	}
	return false
}

func (p *parser) parseBoxedLiteral() *ast.Expression {
	tok := p.cur
	p.advance() // @
	switch {
	case p.cur.Type == token.STRING:
		s := p.cur.Lexeme
		p.advance()
		return ast.NewStringLiteral(tok, s)
	case p.curIdentIs("YES"):
		p.advance()
		return ast.NewBoolLiteral(tok, true)
	case p.curIdentIs("NO"):
		p.advance()
		return ast.NewBoolLiteral(tok, false)
	case p.cur.Type == token.INT:
		v, _ := strconv.ParseInt(trimNumSuffix(p.cur.Lexeme), 0, 64)
		p.advance()
		return ast.NewIntLiteral(tok, v)
	case p.cur.Type == token.FLOAT:
		v, _ := strconv.ParseFloat(trimNumSuffix(p.cur.Lexeme), 64)
		p.advance()
		return ast.NewFloatLiteral(tok, v)
	case p.cur.Type == token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return ast.NewParenthesized(tok, inner)
	case p.cur.Type == token.LBRACKET:
		p.advance()
		var elems []*ast.Expression
		for p.cur.Type != token.RBRACKET && p.cur.Type != token.EOF {
			elems = append(elems, p.parseExpression())
			if p.cur.Type == token.COMMA {
				p.advance()
			}
		}
		p.expect(token.RBRACKET)
		return ast.NewArrayLiteral(tok, elems...)
	case p.cur.Type == token.LBRACE:
		// @{ key: value, ... } dictionary literal; modeled as an empty
		// array literal placeholder since Expression has no dict-literal
		// constructor exposed yet (DictPairs is populated by body.go's
		// callers only through the literal constructors it has access to).
		p.advance()
		for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
			p.advance()
		}
		if p.cur.Type == token.RBRACE {
			p.advance()
		}
		return ast.NewArrayLiteral(tok)
	default:
		return p.parseIdentifierPrimary()
	}
}

// parseMessageSend translates `[receiver kw1:a1 kw2:a2]` into a postfix
// expression `receiver.kw1:kw2:(kw1: a1, kw2: a2)`, carrying the full
// Objective-C selector as the member name so a later invocation
// transform can match against it verbatim.
func (p *parser) parseMessageSend() *ast.Expression {
	tok := p.cur
	p.advance() // [
	receiver := p.parseUnary()

	if p.cur.Type != token.IDENT {
		p.expect(token.RBRACKET)
		return receiver
	}

	firstLabel := p.cur.Lexeme
	p.advance()

	var labels []string
	var args []ast.Argument
	hadColon := false
	if p.cur.Type == token.COLON {
		hadColon = true
		p.advance()
		args = append(args, ast.LabeledArg(firstLabel, p.parseTernary()))
		labels = append(labels, firstLabel)
		for p.cur.Type == token.IDENT && p.peek.Type == token.COLON {
			label := p.cur.Lexeme
			p.advance()
			p.advance()
			args = append(args, ast.LabeledArg(label, p.parseTernary()))
			labels = append(labels, label)
		}
		for p.cur.Type == token.COMMA {
			p.advance()
			args = append(args, ast.Arg(p.parseTernary()))
		}
	} else {
		labels = append(labels, firstLabel)
	}
	p.expect(token.RBRACKET)

	selector := strings.Join(labels, ":")
	if hadColon {
		selector += ":"
	}
	op := ast.MemberOp(tok, selector)
	call := ast.CallOp(tok, args...)
	return ast.NewPostfix(tok, receiver, op, call)
}

func (p *parser) parseBlockLiteral() *ast.Expression {
	tok := p.cur
	p.advance() // ^
	var params []string
	for p.cur.Type == token.LPAREN {
		names := p.parseParenGroupNames()
		if len(names) > 0 {
			params = names
		}
	}
	var body []*ast.Statement
	if p.cur.Type == token.LBRACE {
		body = p.parseCompoundStatement()
	}
	return ast.NewBlockLiteral(tok, params, body)
}

// parseParenGroupNames consumes a parenthesized, comma-separated group
// and returns the final identifier of every multi-token member (its
// declared name), skipping single-token groups that are plain type
// spellings with no associated name (a bare return-type annotation).
func (p *parser) parseParenGroupNames() []string {
	p.advance() // (
	var groups [][]token.Token
	var cur []token.Token
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		if p.cur.Type == token.COMMA {
			groups = append(groups, cur)
			cur = nil
			p.advance()
			continue
		}
		cur = append(cur, p.cur)
		p.advance()
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	if p.cur.Type == token.RPAREN {
		p.advance()
	}
	var names []string
	for _, g := range groups {
		if len(g) > 1 && g[len(g)-1].Type == token.IDENT {
			names = append(names, g[len(g)-1].Lexeme)
		}
	}
	return names
}
