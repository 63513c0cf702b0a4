package objcparse

import (
	"strconv"
	"strings"

	"github.com/occ2swift/occ/internal/diagnostics"
	"github.com/occ2swift/occ/internal/token"
)

// parser is a hand-written recursive-descent parser over the scanner's
// token stream, grounded on the teacher's own two-token-lookahead
// Parser/curToken/peekToken shape (internal/parser/processor.go).
type parser struct {
	sc   *scanner
	cur  token.Token
	peek token.Token
	diag diagnostics.Bag

	assumeNonnull bool // current NS_ASSUME_NONNULL_BEGIN/END region (§6.1)
	inOptional    bool // inside a protocol's @optional section

	lastScannedNullability NullabilityKind // set by parseTypeAndNameStop, read by parseTypeAndName
}

// ParseFile scans and parses a single Objective-C translation unit.
// Parse errors are collected in the returned diagnostics rather than
// aborting; the parser resynchronizes at the next recognizable top-level
// marker, matching the teacher's own "continue on errors" philosophy.
func ParseFile(src string) (*File, []*diagnostics.Error) {
	p := &parser{sc: newScanner(src)}
	p.cur = p.sc.next()
	p.peek = p.sc.next()

	f := &File{}
	for p.cur.Type != token.EOF {
		if d, ok := p.parseTopLevel(); ok {
			f.Decls = append(f.Decls, d)
		}
	}
	return f, p.diag.Errors
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.sc.next()
}

func (p *parser) errorf(format string, args ...any) {
	p.diag.Add(diagnostics.NewError(diagnostics.ErrParseUnexpectedToken, p.cur, format, args...))
}

func (p *parser) curIdentIs(name string) bool {
	return p.cur.Type == token.IDENT && p.cur.Lexeme == name
}

func (p *parser) peekIdentIs(name string) bool {
	return p.peek.Type == token.IDENT && p.peek.Lexeme == name
}

func (p *parser) expect(tt token.Type) bool {
	if p.cur.Type != tt {
		p.errorf("expected %s, got %s", tt, p.cur.Type)
		return false
	}
	p.advance()
	return true
}

// parseTopLevel handles one file-scope construct: an @interface / @implementation
// / @protocol block, a @property or @property-less global, a typedef, a
// preprocessor line, an NS_ASSUME_NONNULL region marker, or a static global.
func (p *parser) parseTopLevel() (Decl, bool) {
	switch {
	case p.cur.Type == token.PREPROCESSOR:
		d := Decl{Kind: DeclPreprocessor, Token: p.cur, Text: p.cur.Lexeme}
		p.advance()
		return d, true

	case p.curIdentIs("NS_ASSUME_NONNULL_BEGIN"):
		p.assumeNonnull = true
		p.advance()
		return Decl{}, false

	case p.curIdentIs("NS_ASSUME_NONNULL_END"):
		p.assumeNonnull = false
		p.advance()
		return Decl{}, false

	case p.cur.Type == token.AT && p.peekIdentIs("interface"):
		return p.parseInterfaceOrImplementation(DeclInterface)

	case p.cur.Type == token.AT && p.peekIdentIs("implementation"):
		return p.parseInterfaceOrImplementation(DeclImplementation)

	case p.cur.Type == token.AT && p.peekIdentIs("protocol"):
		return p.parseProtocol()

	case p.curIdentIs("typedef"):
		return p.parseTypedef()

	case p.curIdentIs("static") || p.curIdentIs("extern") || p.curIdentIs("const") ||
		isKnownTypeStart(p.cur):
		return p.parseGlobalVar()

	default:
		p.errorf("unexpected top-level token %s(%s)", p.cur.Type, p.cur.Lexeme)
		p.advance()
		return Decl{}, false
	}
}

// isKnownTypeStart is a conservative guess that the current identifier
// begins a type (and therefore a global declaration), used only as a
// last-resort dispatch when nothing else matched.
func isKnownTypeStart(t token.Token) bool {
	return t.Type == token.IDENT && t.Lexeme != "" && t.Lexeme[0] >= 'A' && t.Lexeme[0] <= 'Z'
}

func (p *parser) parseInterfaceOrImplementation(kind DeclKind) (Decl, bool) {
	tok := p.cur
	p.advance() // @
	p.advance() // interface | implementation

	d := Decl{Kind: kind, Token: tok, AssumeNonnull: p.assumeNonnull}
	if p.cur.Type != token.IDENT {
		p.errorf("expected class name after @interface/@implementation")
		return Decl{}, false
	}
	d.Name = p.cur.Lexeme
	p.advance()

	if p.cur.Type == token.LPAREN {
		p.advance()
		if p.cur.Type == token.RPAREN {
			d.IsClassExt = true
		} else if p.cur.Type == token.IDENT {
			d.CategoryName = p.cur.Lexeme
			p.advance()
		}
		p.expect(token.RPAREN)
	} else if p.cur.Type == token.COLON {
		p.advance()
		if p.cur.Type == token.IDENT {
			d.Superclass = p.cur.Lexeme
			p.advance()
		}
	}

	if p.cur.Type == token.LANGLE {
		d.Protocols = p.parseProtocolList()
	}

	// Optional ivar block immediately after the header.
	if p.cur.Type == token.LBRACE {
		d.Members = append(d.Members, p.parseIvarBlock()...)
	}

	for !p.atEnd() {
		if m, ok := p.parseMember(); ok {
			d.Members = append(d.Members, m)
		} else {
			break
		}
	}
	p.consumeEnd()
	return d, true
}

func (p *parser) parseProtocol() (Decl, bool) {
	tok := p.cur
	p.advance() // @
	p.advance() // protocol

	d := Decl{Kind: DeclProtocol, Token: tok, AssumeNonnull: p.assumeNonnull}
	if p.cur.Type == token.IDENT {
		d.Name = p.cur.Lexeme
		p.advance()
	}
	if p.cur.Type == token.LANGLE {
		d.Protocols = p.parseProtocolList()
	}

	prevOptional := p.inOptional
	p.inOptional = false
	for !p.atEnd() {
		if p.cur.Type == token.AT && p.peekIdentIs("optional") {
			p.inOptional = true
			p.advance()
			p.advance()
			continue
		}
		if p.cur.Type == token.AT && p.peekIdentIs("required") {
			p.inOptional = false
			p.advance()
			p.advance()
			continue
		}
		if m, ok := p.parseMember(); ok {
			d.Members = append(d.Members, m)
		} else {
			break
		}
	}
	p.inOptional = prevOptional
	p.consumeEnd()
	return d, true
}

func (p *parser) parseProtocolList() []string {
	p.advance() // <
	var out []string
	for p.cur.Type != token.RANGLE && p.cur.Type != token.EOF {
		if p.cur.Type == token.IDENT {
			out = append(out, p.cur.Lexeme)
			p.advance()
		}
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	if p.cur.Type == token.RANGLE {
		p.advance()
	}
	return out
}

func (p *parser) atEnd() bool {
	return p.cur.Type == token.AT && p.peekIdentIs("end")
}

func (p *parser) consumeEnd() {
	if p.atEnd() {
		p.advance()
		p.advance()
	}
}

// parseIvarBlock parses `{ visibility-sections ivar-decls }`.
func (p *parser) parseIvarBlock() []Member {
	p.advance() // {
	visibility := "private"
	var out []Member
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		switch {
		case p.cur.Type == token.AT && p.peekIdentIs("private"):
			visibility = "private"
			p.advance()
			p.advance()
		case p.cur.Type == token.AT && p.peekIdentIs("protected"):
			visibility = "protected"
			p.advance()
			p.advance()
		case p.cur.Type == token.AT && p.peekIdentIs("public"):
			visibility = "public"
			p.advance()
			p.advance()
		case p.cur.Type == token.AT && p.peekIdentIs("package"):
			visibility = "package"
			p.advance()
			p.advance()
		default:
			m := p.parseIvarDecl()
			m.Visibility = visibility
			out = append(out, m)
		}
	}
	if p.cur.Type == token.RBRACE {
		p.advance()
	}
	return out
}

func (p *parser) parseIvarDecl() Member {
	tok := p.cur
	weak := false
	for p.curIdentIs("__weak") || p.curIdentIs("__unsafe_unretained") || p.curIdentIs("__strong") {
		if p.cur.Lexeme == "__weak" {
			weak = true
		}
		p.advance()
	}
	typeName, name, nullable := p.parseTypeAndName(token.SEMI)
	if p.cur.Type == token.SEMI {
		p.advance()
	}
	return Member{Kind: MemberIVar, Token: tok, TypeName: typeName, Name: name, IsWeak: weak, Nullable: nullable, AssumeNonnull: p.assumeNonnull}
}

// parseMember dispatches one @property / method declaration inside an
// interface/implementation/protocol body.
func (p *parser) parseMember() (Member, bool) {
	switch {
	case p.cur.Type == token.AT && p.peekIdentIs("property"):
		return p.parseProperty(), true
	case p.cur.Type == token.PLUS || p.cur.Type == token.MINUS:
		return p.parseMethod(), true
	case p.cur.Type == token.SEMI:
		p.advance()
		return Member{}, false
	default:
		return Member{}, false
	}
}

func (p *parser) parseProperty() Member {
	tok := p.cur
	p.advance() // @
	p.advance() // property

	m := Member{Kind: MemberProperty, Token: tok, AssumeNonnull: p.assumeNonnull}
	if p.cur.Type == token.LPAREN {
		p.advance()
		for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
			attr := p.cur.Lexeme
			p.advance()
			if attr == "getter" || attr == "setter" {
				if p.cur.Type == token.EQUALS {
					p.advance()
				}
				name := p.cur.Lexeme
				p.advance()
				if attr == "getter" {
					m.GetterName = strings.TrimSuffix(name, ":")
				} else {
					m.SetterName = strings.TrimSuffix(name, ":")
				}
			} else {
				m.PropertyAttrs = append(m.PropertyAttrs, attr)
				if attr == "readonly" {
					m.IsReadonly = true
				}
			}
			if p.cur.Type == token.COMMA {
				p.advance()
			}
		}
		p.expect(token.RPAREN)
	}
	m.TypeName, m.Name, m.Nullable = p.parseTypeAndName(token.SEMI)
	if p.cur.Type == token.SEMI {
		p.advance()
	}
	return m
}

func (p *parser) parseMethod() Member {
	tok := p.cur
	isClass := p.cur.Type == token.PLUS
	p.advance() // + or -

	m := Member{Kind: MemberMethod, Token: tok, IsClassMethod: isClass, IsOptional: p.inOptional, AssumeNonnull: p.assumeNonnull}

	p.expect(token.LPAREN)
	m.ReturnType, m.ReturnNullable = p.parseTypeSpelling(token.RPAREN)
	p.expect(token.RPAREN)

	for p.cur.Type == token.IDENT {
		label := p.cur.Lexeme
		p.advance()
		if p.cur.Type == token.COLON {
			p.advance()
			var typeName string
			var nullable NullabilityKind
			if p.cur.Type == token.LPAREN {
				p.advance()
				typeName, nullable = p.parseTypeSpelling(token.RPAREN)
				p.expect(token.RPAREN)
			}
			paramName := ""
			if p.cur.Type == token.IDENT {
				paramName = p.cur.Lexeme
				p.advance()
			}
			m.Selector = append(m.Selector, SelectorPart{Label: label, ParamName: paramName, TypeName: typeName, Nullable: nullable})
			continue
		}
		// Zero-argument selector: the label alone is the whole name.
		m.Selector = append(m.Selector, SelectorPart{Label: label})
		break
	}

	// Skip a variadic ellipsis or trailing attribute keywords before the terminator.
	for p.cur.Type != token.SEMI && p.cur.Type != token.LBRACE && p.cur.Type != token.EOF {
		p.advance()
	}

	if p.cur.Type == token.LBRACE {
		m.Body = p.parseCompoundStatement()
	} else if p.cur.Type == token.SEMI {
		p.advance()
	}
	return m
}

// parseTypeAndName scans tokens up to (but not including) terminator,
// treating the final identifier as the declared name and everything else
// as the type spelling (§6.1's minimal type-grammar handling: enough to
// carry stars, generics, and nullability qualifiers through, not a full
// C type grammar).
func (p *parser) parseTypeAndName(terminator token.Type) (typeName, name string, nullable NullabilityKind) {
	typeName, name = p.parseTypeAndNameStop(func(t token.Token) bool { return t.Type == terminator })
	nullable = p.lastScannedNullability
	return typeName, name, nullable
}

// parseTypeAndNameStop is parseTypeAndName generalized to an arbitrary
// stop predicate, for call sites (a for-loop's head) where the terminator
// isn't a single fixed token type. It also records the nullability
// qualifier it observed in p.lastScannedNullability for parseTypeAndName
// to pick up.
func (p *parser) parseTypeAndNameStop(stop func(token.Token) bool) (typeName, name string) {
	var parts []string
	var lastIdent string
	p.lastScannedNullability = NullabilityUnspecified
	depth := 0
	for {
		if depth == 0 && stop(p.cur) {
			break
		}
		if p.cur.Type == token.EOF {
			break
		}
		if p.cur.Type == token.LANGLE {
			depth++
		}
		if p.cur.Type == token.RANGLE {
			depth--
		}
		switch p.cur.Lexeme {
		case "_Nonnull", "__nonnull", "nonnull":
			p.lastScannedNullability = NullabilityNonnull
		case "_Nullable", "__nullable", "nullable":
			p.lastScannedNullability = NullabilityNullable
		default:
			if p.cur.Type == token.IDENT {
				lastIdent = p.cur.Lexeme
			}
			parts = append(parts, p.cur.Lexeme)
		}
		p.advance()
	}
	if lastIdent != "" && len(parts) > 0 && parts[len(parts)-1] == lastIdent {
		parts = parts[:len(parts)-1]
		name = lastIdent
	}
	return strings.TrimSpace(strings.Join(parts, " ")), name
}

// parseTypeSpelling is parseTypeAndName without a trailing name, used for
// return types and parameter types that are already inside their own
// parens.
func (p *parser) parseTypeSpelling(terminator token.Type) (string, NullabilityKind) {
	var parts []string
	nullable := NullabilityUnspecified
	depth := 0
	for {
		if depth == 0 && p.cur.Type == terminator {
			break
		}
		if p.cur.Type == token.EOF {
			break
		}
		if p.cur.Type == token.LANGLE {
			depth++
		}
		if p.cur.Type == token.RANGLE {
			depth--
		}
		switch p.cur.Lexeme {
		case "_Nonnull", "__nonnull", "nonnull":
			nullable = NullabilityNonnull
		case "_Nullable", "__nullable", "nullable":
			nullable = NullabilityNullable
		default:
			parts = append(parts, p.cur.Lexeme)
		}
		p.advance()
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nullable
}

func (p *parser) parseTypedef() (Decl, bool) {
	tok := p.cur
	p.advance() // typedef

	if p.curIdentIs("NS_ENUM") || p.curIdentIs("NS_OPTIONS") {
		return p.parseEnumMacro(tok, p.cur.Lexeme == "NS_OPTIONS")
	}
	if p.curIdentIs("struct") {
		return p.parseStructTypedef(tok)
	}

	// Block or function-pointer typedef: `typedef R (^Name)(P...);` or
	// `typedef R (*Name)(P...);`
	retType, _ := p.parseTypeSpellingUntilParen()
	if p.cur.Type == token.LPAREN {
		p.advance()
		isBlock := p.cur.Type == token.CARET
		if isBlock || p.cur.Type == token.STAR {
			p.advance()
		}
		name := ""
		if p.cur.Type == token.IDENT {
			name = p.cur.Lexeme
			p.advance()
		}
		p.expect(token.RPAREN)
		var params []string
		if p.cur.Type == token.LPAREN {
			p.advance()
			for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
				t, _ := p.parseTypeAndNameStop(func(tok token.Token) bool {
					return tok.Type == token.COMMA || tok.Type == token.RPAREN
				})
				if t != "" {
					params = append(params, t)
				}
				if p.cur.Type == token.COMMA {
					p.advance()
				}
			}
			p.expect(token.RPAREN)
		}
		p.skipToSemi()
		kind := DeclFuncPointerTypedef
		if isBlock {
			kind = DeclBlockTypedef
		}
		return Decl{Kind: kind, Token: tok, Name: name, ReturnType: retType, ParamTypes: params, AssumeNonnull: p.assumeNonnull}, true
	}

	// A plain scalar typedef (`typedef NSInteger MyInt;`) — modeled as a
	// struct typedef with a single unnamed underlying field for simplicity.
	// parseTypeSpellingUntilParen stops at the ';', so the typedef's name is
	// the last word of retType.
	name := ""
	if p.cur.Type == token.IDENT {
		name = p.cur.Lexeme
		p.advance()
	} else if i := strings.LastIndex(retType, " "); i >= 0 {
		name = retType[i+1:]
		retType = strings.TrimSpace(retType[:i])
	}
	p.skipToSemi()
	return Decl{Kind: DeclStructTypedef, Token: tok, Name: name, Fields: []Field{{TypeName: retType}}, AssumeNonnull: p.assumeNonnull}, true
}

func (p *parser) parseTypeSpellingUntilParen() (string, NullabilityKind) {
	var parts []string
	nullable := NullabilityUnspecified
	for p.cur.Type != token.LPAREN && p.cur.Type != token.EOF && p.cur.Type != token.SEMI {
		switch p.cur.Lexeme {
		case "_Nonnull", "__nonnull", "nonnull":
			nullable = NullabilityNonnull
		case "_Nullable", "__nullable", "nullable":
			nullable = NullabilityNullable
		default:
			parts = append(parts, p.cur.Lexeme)
		}
		p.advance()
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nullable
}

func (p *parser) parseEnumMacro(tok token.Token, isOptions bool) (Decl, bool) {
	p.advance() // NS_ENUM | NS_OPTIONS
	p.expect(token.LPAREN)
	underlying := ""
	if p.cur.Type == token.IDENT {
		underlying = p.cur.Lexeme
		p.advance()
	}
	p.expect(token.COMMA)
	name := ""
	if p.cur.Type == token.IDENT {
		name = p.cur.Lexeme
		p.advance()
	}
	p.expect(token.RPAREN)

	d := Decl{Kind: DeclEnum, Token: tok, Name: name, UnderlyingType: underlying, IsOptionSet: isOptions, AssumeNonnull: p.assumeNonnull}
	if p.cur.Type == token.LBRACE {
		p.advance()
		d.Cases = p.parseEnumCases()
		p.expect(token.RBRACE)
	}
	// `typedef NS_ENUM(...) { ... } Name;` binds the type name after the
	// closing brace instead of inside the macro call; prefer that spelling
	// when present.
	if p.cur.Type == token.IDENT {
		d.Name = p.cur.Lexeme
		p.advance()
	}
	p.skipToSemi()
	return d, true
}

func (p *parser) parseEnumCases() []EnumCase {
	var out []EnumCase
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if p.cur.Type != token.IDENT {
			p.advance()
			continue
		}
		c := EnumCase{Name: p.cur.Lexeme}
		p.advance()
		if p.cur.Type == token.EQUALS {
			p.advance()
			if p.cur.Type == token.INT {
				if v, err := strconv.ParseInt(p.cur.Lexeme, 0, 64); err == nil {
					c.HasRawValue = true
					c.RawValue = v
				}
				p.advance()
			} else {
				// Non-literal initializer (e.g. `1 << 2`); skip to the
				// next comma/brace without modeling the arithmetic.
				for p.cur.Type != token.COMMA && p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
					p.advance()
				}
			}
		}
		out = append(out, c)
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	return out
}

func (p *parser) parseStructTypedef(tok token.Token) (Decl, bool) {
	p.advance() // struct
	if p.cur.Type == token.IDENT {
		p.advance() // optional tag name, discarded
	}
	d := Decl{Kind: DeclStructTypedef, Token: tok, AssumeNonnull: p.assumeNonnull}
	if p.cur.Type == token.LBRACE {
		p.advance()
		for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
			t, n, _ := p.parseTypeAndName(token.SEMI)
			if n != "" {
				d.Fields = append(d.Fields, Field{TypeName: t, Name: n})
			}
			if p.cur.Type == token.SEMI {
				p.advance()
			}
		}
		p.expect(token.RBRACE)
	}
	if p.cur.Type == token.IDENT {
		d.Name = p.cur.Lexeme
		p.advance()
	}
	p.skipToSemi()
	return d, true
}

func (p *parser) parseGlobalVar() (Decl, bool) {
	tok := p.cur
	d := Decl{Kind: DeclGlobalVar, Token: tok, AssumeNonnull: p.assumeNonnull}
	for p.curIdentIs("static") || p.curIdentIs("extern") || p.curIdentIs("const") {
		if p.cur.Lexeme == "static" {
			d.IsStatic = true
		}
		if p.cur.Lexeme == "const" {
			d.IsConst = true
		}
		p.advance()
	}
	d.VarType, d.Name = p.parseTypeAndNameStop(func(t token.Token) bool {
		return t.Type == token.EQUALS || t.Type == token.SEMI
	})
	d.Nullable = p.lastScannedNullability
	if p.cur.Type == token.EQUALS {
		p.advance()
		d.Init = p.parseInitializerExpression()
	}
	p.skipToSemi()
	return d, true
}

func (p *parser) skipToSemi() {
	for p.cur.Type != token.SEMI && p.cur.Type != token.EOF {
		p.advance()
	}
	if p.cur.Type == token.SEMI {
		p.advance()
	}
}
