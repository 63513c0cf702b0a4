package emit

import "github.com/occ2swift/occ/internal/ast"

func (p *Printer) VisitIf(s *ast.Statement) {
	p.write("if ")
	p.printCondition(s)
	p.write(" ")
	p.printBlock(s.Then)
	if s.Else != nil {
		p.write(" else ")
		if s.Else.Kind == ast.StmtIf {
			s.Else.Accept(p)
		} else {
			p.printBlock(s.Else)
		}
	}
}

func (p *Printer) VisitWhile(s *ast.Statement) {
	p.write("while ")
	p.printCondition(s)
	p.write(" ")
	p.printBlock(s.Then)
}

func (p *Printer) VisitDoWhile(s *ast.Statement) {
	p.write("repeat ")
	p.printBlock(s.Then)
	p.write(" while ")
	p.printExprOrPlaceholder(s.Condition)
}

// printCondition writes either a plain boolean expression or an
// `if`/`while`-let binding, the two shapes StmtIf/StmtWhile/StmtDoWhile
// share via the same Condition/IfLet fields.
func (p *Printer) printCondition(s *ast.Statement) {
	if s.IfLet == nil {
		p.printExprOrPlaceholder(s.Condition)
		return
	}
	p.printBindingPattern(s.IfLet)
	p.write(" = ")
	p.printExprOrPlaceholder(s.Condition)
}

func (p *Printer) VisitFor(s *ast.Statement) {
	p.write("for ")
	p.printPattern(s.ForPattern, false)
	p.write(" in ")
	p.printExprOrPlaceholder(s.ForSequence)
	if s.ForWhere != nil {
		p.write(" where ")
		p.printExprOrPlaceholder(s.ForWhere)
	}
	p.write(" ")
	p.printBlock(s.ForBody)
}

func (p *Printer) VisitSwitch(s *ast.Statement) {
	p.write("switch ")
	p.printExprOrPlaceholder(s.SwitchSubject)
	p.write(" {")
	p.writeln()
	for _, c := range s.Cases {
		p.writeIndent()
		if c.IsDefault {
			p.write("default:")
		} else {
			p.write("case ")
			for i, pat := range c.Patterns {
				if i > 0 {
					p.write(", ")
				}
				p.printPattern(pat, true)
			}
			if c.Where != nil {
				p.write(" where ")
				p.printExprOrPlaceholder(c.Where)
			}
			p.write(":")
		}
		p.writeln()
		p.indent++
		for _, stmt := range c.Body {
			p.printStatement(stmt)
		}
		p.indent--
	}
	p.writeIndent()
	p.write("}")
}

func (p *Printer) VisitDo(s *ast.Statement) {
	p.write("do ")
	p.printBlock(s.DoBody)
	for _, c := range s.Catches {
		p.write(" catch")
		if c.Pattern != nil {
			p.write(" ")
			p.printPattern(c.Pattern, false)
		}
		p.write(" ")
		p.printBlock(c.Body)
	}
}

func (p *Printer) VisitDefer(s *ast.Statement) {
	p.write("defer ")
	p.printBlock(s.DeferBody)
}

func (p *Printer) VisitReturn(s *ast.Statement) {
	p.write("return")
	if s.ReturnValue != nil {
		p.write(" ")
		p.printExprOrPlaceholder(s.ReturnValue)
	}
}

func (p *Printer) VisitBreak(s *ast.Statement) {
	p.write("break")
}

func (p *Printer) VisitContinue(s *ast.Statement) {
	p.write("continue")
}

func (p *Printer) VisitExpressionStatement(s *ast.Statement) {
	p.printExprOrPlaceholder(s.Expr)
}

func (p *Printer) VisitVariableDeclaration(s *ast.Statement) {
	if s.IsConst {
		p.write("let ")
	} else {
		p.write("var ")
	}
	for i, b := range s.Bindings {
		if i > 0 {
			p.write(", ")
		}
		p.printPattern(b.Pattern, false)
		if b.TypeAnnotation != nil {
			p.write(": ")
			p.write(p.typeString(b.TypeAnnotation))
		}
		if b.Value != nil {
			p.write(" = ")
			p.printExprOrPlaceholder(b.Value)
		}
	}
}

func (p *Printer) VisitCompound(s *ast.Statement) {
	p.printBlock(s)
}

func (p *Printer) VisitUnknown(s *ast.Statement) {
	p.write("// unrecognized construct: ")
	p.write(s.Context)
}

// printBindingPattern writes the `let`/`var` keyword an if/while-let
// binding needs, unwrapping the PatOptional sugar the parser wraps a
// bound name in.
func (p *Printer) printBindingPattern(pat *ast.Pattern) {
	if pat == nil {
		p.write("<???>")
		return
	}
	inner := pat
	if pat.Kind == ast.PatOptional {
		inner = pat.Inner
	}
	p.printPattern(inner, true)
}

// printPattern writes a pattern. needsBindingKeyword controls whether a
// bare identifier gets a `let`/`var` prefix — true for if/while-let
// bindings and switch-case value bindings, false for for-in loop
// variables and plain declaration targets (whose let/var already comes
// from the enclosing statement).
func (p *Printer) printPattern(pat *ast.Pattern, needsBindingKeyword bool) {
	if pat == nil {
		p.write("<???>")
		return
	}
	switch pat.Kind {
	case ast.PatIdentifier:
		if needsBindingKeyword {
			if pat.IsVar {
				p.write("var ")
			} else {
				p.write("let ")
			}
		}
		p.write(pat.Name)
	case ast.PatWildcard:
		p.write("_")
	case ast.PatOptional:
		p.printBindingPattern(pat)
	case ast.PatTuple:
		p.write("(")
		for i, el := range pat.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printPattern(el, needsBindingKeyword)
		}
		p.write(")")
	case ast.PatExpression:
		p.printExprOrPlaceholder(pat.MatchExpr)
	case ast.PatTypeCheck:
		p.write("is ")
		p.write(p.typeString(pat.CheckType))
	default:
		p.write("<???>")
	}
}
