package emit

import (
	"strconv"

	"github.com/occ2swift/occ/internal/ast"
)

// printExpr is the precedence-aware entry point every composite
// expression recurses through, so a BinaryExpression's operands only get
// wrapped in parentheses when the grammar actually requires it.
func (p *Printer) printExpr(e *ast.Expression, parentPrec int, isRight bool) {
	if e == nil {
		p.write("<???>")
		return
	}
	if e.Kind == ast.ExprBinary {
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec
		if prec == parentPrec && isRight && !rightAssoc[e.Operator] {
			needParens = true
		}
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
		return
	}
	e.Accept(p)
}

func (p *Printer) VisitIdentifier(e *ast.Expression) {
	p.write(e.Name)
}

func (p *Printer) VisitLiteral(e *ast.Expression) {
	switch e.LiteralKind {
	case ast.LitInteger:
		p.write(strconv.FormatInt(e.IntValue, 10))
	case ast.LitFloat:
		p.write(strconv.FormatFloat(e.FloatValue, 'g', -1, 64))
	case ast.LitString:
		p.write(strconv.Quote(e.StringValue))
	case ast.LitBoolean:
		if e.BoolValue {
			p.write("true")
		} else {
			p.write("false")
		}
	case ast.LitNil:
		p.write("nil")
	case ast.LitArray:
		p.write("[")
		for i, el := range e.ArrayElems {
			if i > 0 {
				p.write(", ")
			}
			p.printExprOrPlaceholder(el)
		}
		p.write("]")
	case ast.LitDictionary:
		if len(e.DictPairs) == 0 {
			p.write("[:]")
			return
		}
		p.write("[")
		for i, pair := range e.DictPairs {
			if i > 0 {
				p.write(", ")
			}
			p.printExprOrPlaceholder(pair.Key)
			p.write(": ")
			p.printExprOrPlaceholder(pair.Value)
		}
		p.write("]")
	default:
		p.write("<???>")
	}
}

func (p *Printer) VisitBinary(e *ast.Expression) {
	p.printExpr(e, 0, false)
}

func (p *Printer) VisitUnary(e *ast.Expression) {
	p.printExprOrPlaceholder(e.Operand)
	p.write(e.Operator)
}

func (p *Printer) VisitPrefix(e *ast.Expression) {
	p.write(e.Operator)
	p.printExpr(e.Operand, 100, false)
}

// VisitPostfix writes a member/call/subscript chain. The one idiom
// decision made at print time rather than by a pass (DESIGN.md open
// question 3): a chain's first `.member` link spells as `?.` when the
// base is a failable cast (`as?`), since Swift's optional chaining
// already threads the optionality through every later link without
// needing another `?`.
func (p *Printer) VisitPostfix(e *ast.Expression) {
	baseIsFailableCast := e.Base != nil && e.Base.Kind == ast.ExprCast && e.Base.CastKind == "as?"
	needsBaseParens := e.Base != nil && (e.Base.Kind == ast.ExprBinary || e.Base.Kind == ast.ExprTernary || e.Base.Kind == ast.ExprAssignment)
	if needsBaseParens {
		p.write("(")
	}
	p.printExprOrPlaceholder(e.Base)
	if needsBaseParens {
		p.write(")")
	}
	chained := false
	for _, op := range e.PostfixChain {
		switch op.Kind {
		case ast.PostfixMember:
			if !chained && baseIsFailableCast {
				p.write("?.")
			} else {
				p.write(".")
			}
			p.write(op.Name)
		case ast.PostfixCall:
			p.write("(")
			for i, a := range op.Arguments {
				if i > 0 {
					p.write(", ")
				}
				if a.Label != nil {
					p.write(*a.Label)
					p.write(": ")
				}
				p.printExprOrPlaceholder(a.Value)
			}
			p.write(")")
		case ast.PostfixSubscript:
			p.write("[")
			p.printExprOrPlaceholder(op.Index)
			p.write("]")
		}
		chained = true
	}
}

func (p *Printer) VisitTernary(e *ast.Expression) {
	p.printExprOrPlaceholder(e.Condition)
	p.write(" ? ")
	p.printExprOrPlaceholder(e.Then)
	p.write(" : ")
	p.printExprOrPlaceholder(e.Else)
}

func (p *Printer) VisitCast(e *ast.Expression) {
	p.printExprOrPlaceholder(e.Subject)
	p.write(" ")
	p.write(e.CastKind)
	p.write(" ")
	p.write(p.typeString(e.TargetType))
}

func (p *Printer) VisitAssignment(e *ast.Expression) {
	p.printExprOrPlaceholder(e.Left)
	p.write(" " + e.Operator + " ")
	p.printExprOrPlaceholder(e.Right)
}

func (p *Printer) VisitParenthesized(e *ast.Expression) {
	p.write("(")
	p.printExprOrPlaceholder(e.Inner)
	p.write(")")
}

func (p *Printer) VisitBlockLiteral(e *ast.Expression) {
	p.write("{ ")
	if len(e.BlockParams) > 0 {
		for i, name := range e.BlockParams {
			if i > 0 {
				p.write(", ")
			}
			p.write(name)
		}
		p.write(" in")
		p.write(" ")
	}
	if len(e.BlockBody) == 1 {
		p.writeln()
		p.indent++
		p.printStatement(e.BlockBody[0])
		p.indent--
		p.writeIndent()
		p.write("}")
		return
	}
	p.writeln()
	p.indent++
	for _, s := range e.BlockBody {
		p.printStatement(s)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) VisitTypeCheck(e *ast.Expression) {
	p.printExprOrPlaceholder(e.Subject)
	p.write(" is ")
	p.write(p.typeString(e.TargetType))
}

func (p *Printer) VisitConstant(e *ast.Expression) {
	p.write(e.ConstantName)
}

func (p *Printer) VisitSizeof(e *ast.Expression) {
	if e.SizeofType != nil {
		p.write("MemoryLayout<")
		p.write(p.typeString(e.SizeofType))
		p.write(">.size")
		return
	}
	p.write("MemoryLayout.size(ofValue: ")
	p.printExprOrPlaceholder(e.SizeofExpr)
	p.write(")")
}
