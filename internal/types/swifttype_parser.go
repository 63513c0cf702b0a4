package types

import "github.com/occ2swift/occ/internal/token"

// Parse is the pure function string → Result<SwiftType, ParseError> of
// §4.1, grounded on the teacher's internal/parser/parser_kind.go
// (recursive descent over its own ":Kind" grammar).
func Parse(s string) (SwiftType, *ParseError) {
	p := &typeParser{sc: newScanner(s)}
	p.cur = p.sc.next()
	p.peek = p.sc.next()
	t, err := p.parseType()
	if err != nil {
		return SwiftType{}, err
	}
	if p.cur.Type != token.EOF {
		return SwiftType{}, newParseError(p.cur.Column, "unexpected trailing input %q", p.cur.Lexeme)
	}
	return t, nil
}

type typeParser struct {
	sc   *scanner
	cur  token.Token
	peek token.Token
}

func (p *typeParser) advance() {
	p.cur = p.peek
	p.peek = p.sc.next()
}

func (p *typeParser) expect(tt token.Type, what string) (token.Token, *ParseError) {
	if p.cur.Type != tt {
		return token.Token{}, newParseError(p.cur.Column, "expected %s, got %q", what, p.cur.Lexeme)
	}
	t := p.cur
	p.advance()
	return t, nil
}

// parseType := primary ('?' | '!' | '.Type' | '.Protocol')*
func (p *typeParser) parseType() (SwiftType, *ParseError) {
	t, err := p.parsePrimary()
	if err != nil {
		return SwiftType{}, err
	}
	for {
		switch {
		case p.cur.Type == token.QUESTION:
			p.advance()
			t = Optional(t)
		case p.cur.Type == token.BANG:
			p.advance()
			t = IUO(t)
		case p.cur.Type == token.DOT && p.peek.Type == token.IDENT && p.peek.Lexeme == "Type":
			p.advance()
			p.advance()
			t = Metatype(t)
		case p.cur.Type == token.DOT && p.peek.Type == token.IDENT && p.peek.Lexeme == "Protocol":
			p.advance()
			p.advance()
			t = ProtocolMetatype(t)
		default:
			return t, nil
		}
	}
}

// primary := nominal | tupleOrBlock | array | dictionary
// A nominal primary additionally folds into a protocol composition when
// followed by '&' nominal+.
func (p *typeParser) parsePrimary() (SwiftType, *ParseError) {
	switch p.cur.Type {
	case token.LPAREN:
		return p.parseTupleOrBlock()
	case token.LBRACKET:
		return p.parseArrayOrDict()
	case token.IDENT:
		return p.parseNominalOrComposition()
	default:
		return SwiftType{}, newParseError(p.cur.Column, "expected a type, got %q", p.cur.Lexeme)
	}
}

func (p *typeParser) parseNominalOrComposition() (SwiftType, *ParseError) {
	first, err := p.parseNominalChain()
	if err != nil {
		return SwiftType{}, err
	}
	if p.cur.Type != token.AMP {
		if len(first.path) == 1 {
			if first.path[0].Name == "Void" && first.path[0].Kind == NominalTypeName {
				return Void(), nil
			}
			return Nominal(first.path[0]), nil
		}
		return Nested(first.path...), nil
	}
	members := []ProtoCompMember{toMember(first)}
	for p.cur.Type == token.AMP {
		p.advance()
		next, err := p.parseNominalChain()
		if err != nil {
			return SwiftType{}, err
		}
		members = append(members, toMember(next))
	}
	return ProtocolComposition(members...), nil
}

type nominalChain struct{ path []NominalType }

func toMember(c nominalChain) ProtoCompMember {
	if len(c.path) == 1 {
		n := c.path[0]
		return ProtoCompMember{Nominal: &n}
	}
	return ProtoCompMember{Nested: c.path}
}

// nominal := IDENT genericClause? ('.' nominal)?
// Stops before a trailing '.Type' / '.Protocol', which belong to the outer
// `type` suffix loop rather than to the dotted nominal chain.
func (p *typeParser) parseNominalChain() (nominalChain, *ParseError) {
	var chain nominalChain
	for {
		id, err := p.expect(token.IDENT, "identifier")
		if err != nil {
			return nominalChain{}, err
		}
		n := TypeName(id.Lexeme)
		if p.cur.Type == token.LANGLE {
			args, err := p.parseGenericClause()
			if err != nil {
				return nominalChain{}, err
			}
			n = Generic(id.Lexeme, args...)
		}
		chain.path = append(chain.path, n)

		if p.cur.Type == token.DOT && p.peek.Type == token.IDENT &&
			(p.peek.Lexeme == "Type" || p.peek.Lexeme == "Protocol") {
			return chain, nil
		}
		if p.cur.Type != token.DOT {
			return chain, nil
		}
		p.advance()
	}
}

func (p *typeParser) parseGenericClause() ([]SwiftType, *ParseError) {
	if _, err := p.expect(token.LANGLE, "'<'"); err != nil {
		return nil, err
	}
	var args []SwiftType
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RANGLE, "'>'"); err != nil {
		return nil, err
	}
	return args, nil
}

// array := '[' type ']'
// dictionary := '[' type ':' type ']'
func (p *typeParser) parseArrayOrDict() (SwiftType, *ParseError) {
	if _, err := p.expect(token.LBRACKET, "'['"); err != nil {
		return SwiftType{}, err
	}
	key, err := p.parseType()
	if err != nil {
		return SwiftType{}, err
	}
	if p.cur.Type == token.COLON {
		p.advance()
		val, err := p.parseType()
		if err != nil {
			return SwiftType{}, err
		}
		if _, err := p.expect(token.RBRACKET, "']'"); err != nil {
			return SwiftType{}, err
		}
		return DictionaryOf(key, val), nil
	}
	if _, err := p.expect(token.RBRACKET, "']'"); err != nil {
		return SwiftType{}, err
	}
	return ArrayOf(key), nil
}

// tupleOrBlock := '(' [elem (',' elem)* ['...']] ')' ['->' type]
// elem         := [IDENT [IDENT] ':'] attr* ['inout'] type
// attr         := '@' IDENT ['(' … ')']
func (p *typeParser) parseTupleOrBlock() (SwiftType, *ParseError) {
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return SwiftType{}, err
	}

	var elemTypes []SwiftType
	hasEllipsis := false

	if p.cur.Type != token.RPAREN {
		for {
			t, ellipsis, err := p.parseElem()
			if err != nil {
				return SwiftType{}, err
			}
			elemTypes = append(elemTypes, t)
			if ellipsis {
				hasEllipsis = true
			}
			if p.cur.Type == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return SwiftType{}, err
	}

	if p.cur.Type == token.ARROW {
		p.advance()
		ret, err := p.parseType()
		if err != nil {
			return SwiftType{}, err
		}
		if hasEllipsis && len(elemTypes) > 0 {
			elemTypes[len(elemTypes)-1] = ArrayOf(elemTypes[len(elemTypes)-1])
		}
		return Block(ret, elemTypes...), nil
	}

	if hasEllipsis {
		return SwiftType{}, newParseError(p.cur.Column, "expected block type")
	}
	return Tuple(elemTypes...), nil
}

// parseElem parses one tuple/block element, skipping any label, attributes
// and 'inout' per §4.1 ("labels ... and attributes ... are skipped without
// affecting the resulting parameter type"). Returns whether this element
// was followed by '...'.
func (p *typeParser) parseElem() (SwiftType, bool, *ParseError) {
	p.skipOptionalLabel()

	for p.cur.Type == token.AT {
		p.advance()
		attr, err := p.expect(token.IDENT, "attribute name")
		if err != nil {
			return SwiftType{}, false, err
		}
		// Only a '(' written right after the name is an argument list;
		// in `@escaping (Int) -> Void` it opens the parameter's own type.
		if p.cur.Type == token.LPAREN && p.cur.Column == attr.Column+len(attr.Lexeme) {
			depth := 0
			for {
				if p.cur.Type == token.LPAREN {
					depth++
				} else if p.cur.Type == token.RPAREN {
					depth--
					if depth == 0 {
						p.advance()
						break
					}
				} else if p.cur.Type == token.EOF {
					return SwiftType{}, false, newParseError(p.cur.Column, "unterminated attribute argument list")
				}
				p.advance()
			}
		}
	}
	if p.cur.Type == token.IDENT && p.cur.Lexeme == "inout" {
		p.advance()
	}

	t, err := p.parseType()
	if err != nil {
		return SwiftType{}, false, err
	}
	if p.cur.Type == token.ELLIPSIS {
		p.advance()
		return t, true, nil
	}
	return t, false, nil
}

// skipOptionalLabel consumes `label:` or `outer inner:` prefixes, which
// this parser does not retain (§4.1).
func (p *typeParser) skipOptionalLabel() {
	if p.cur.Type != token.IDENT {
		return
	}
	// `IDENT ':'`
	if p.peek.Type == token.COLON {
		p.advance()
		p.advance()
		return
	}
	// `IDENT IDENT ':'` — need one more token of lookahead than cur/peek
	// provide; reconstructed via a local scan since the parser only keeps
	// a 2-token window. p.sc is a *scanner, so snapshotting *p alone only
	// copies the pointer, not its read position — advance() below already
	// pulled a fresh token out of the shared scanner, so the scanner's
	// own state has to be saved and restored alongside cur/peek or a
	// failed probe permanently drops a token.
	save := *p
	savedScanner := *p.sc
	p.advance()
	if p.cur.Type == token.IDENT && p.peek.Type == token.COLON {
		p.advance()
		p.advance()
		return
	}
	*p.sc = savedScanner
	*p = save
}
