package ast

import (
	"github.com/occ2swift/occ/internal/token"
	"github.com/occ2swift/occ/internal/types"
)

// Small per-variant constructors, per §9's guidance to prefer these over
// an inheritance hierarchy. Each attaches children immediately so the
// tree is always parent-consistent by construction.

func NewIdentifier(tok token.Token, name string) *Expression {
	return &Expression{Kind: ExprIdentifier, Token: tok, Name: name}
}

func NewIntLiteral(tok token.Token, v int64) *Expression {
	return &Expression{Kind: ExprLiteral, Token: tok, LiteralKind: LitInteger, IntValue: v}
}

func NewFloatLiteral(tok token.Token, v float64) *Expression {
	return &Expression{Kind: ExprLiteral, Token: tok, LiteralKind: LitFloat, FloatValue: v}
}

func NewStringLiteral(tok token.Token, v string) *Expression {
	return &Expression{Kind: ExprLiteral, Token: tok, LiteralKind: LitString, StringValue: v}
}

func NewBoolLiteral(tok token.Token, v bool) *Expression {
	return &Expression{Kind: ExprLiteral, Token: tok, LiteralKind: LitBoolean, BoolValue: v}
}

func NewNilLiteral(tok token.Token) *Expression {
	return &Expression{Kind: ExprLiteral, Token: tok, LiteralKind: LitNil}
}

func NewArrayLiteral(tok token.Token, elems ...*Expression) *Expression {
	e := &Expression{Kind: ExprLiteral, Token: tok, LiteralKind: LitArray}
	for _, el := range elems {
		e.ArrayElems = append(e.ArrayElems, e.attach(el))
	}
	return e
}

func NewBinary(tok token.Token, op string, left, right *Expression) *Expression {
	e := &Expression{Kind: ExprBinary, Token: tok, Operator: op}
	e.Left = e.attach(left)
	e.Right = e.attach(right)
	return e
}

func NewAssignment(tok token.Token, op string, left, right *Expression) *Expression {
	e := &Expression{Kind: ExprAssignment, Token: tok, Operator: op}
	e.Left = e.attach(left)
	e.Right = e.attach(right)
	return e
}

func NewUnary(tok token.Token, op string, operand *Expression) *Expression {
	e := &Expression{Kind: ExprUnary, Token: tok, Operator: op}
	e.Operand = e.attach(operand)
	return e
}

func NewPrefix(tok token.Token, op string, operand *Expression) *Expression {
	e := &Expression{Kind: ExprPrefix, Token: tok, Operator: op}
	e.Operand = e.attach(operand)
	return e
}

func NewParenthesized(tok token.Token, inner *Expression) *Expression {
	e := &Expression{Kind: ExprParenthesized, Token: tok}
	e.Inner = e.attach(inner)
	return e
}

func NewTernary(tok token.Token, cond, then, els *Expression) *Expression {
	e := &Expression{Kind: ExprTernary, Token: tok}
	e.Condition = e.attach(cond)
	e.Then = e.attach(then)
	e.Else = e.attach(els)
	return e
}

func NewCast(tok token.Token, kind string, target types.SwiftType, subject *Expression) *Expression {
	e := &Expression{Kind: ExprCast, Token: tok, CastKind: kind, TargetType: &target}
	e.Subject = e.attach(subject)
	return e
}

func NewTypeCheck(tok token.Token, target types.SwiftType, subject *Expression) *Expression {
	e := &Expression{Kind: ExprTypeCheck, Token: tok, TargetType: &target}
	e.Subject = e.attach(subject)
	return e
}

func NewSizeofType(tok token.Token, t types.SwiftType) *Expression {
	return &Expression{Kind: ExprSizeof, Token: tok, SizeofType: &t}
}

func NewSizeofExpr(tok token.Token, inner *Expression) *Expression {
	e := &Expression{Kind: ExprSizeof, Token: tok}
	e.SizeofExpr = e.attach(inner)
	return e
}

func NewConstant(tok token.Token, name string) *Expression {
	return &Expression{Kind: ExprConstant, Token: tok, ConstantName: name}
}

// NewBlockLiteral builds a closure literal from its declared parameter
// names and body statements, attaching each statement's parent pointer
// to the expression (GLOSSARY: block literal).
func NewBlockLiteral(tok token.Token, params []string, body []*Statement) *Expression {
	e := &Expression{Kind: ExprBlockLiteral, Token: tok, BlockParams: params}
	for _, st := range body {
		e.BlockBody = append(e.BlockBody, attachStmt(e, st))
	}
	return e
}

// NewPostfix builds a postfix expression from a base and a chain of
// trailing operations, attaching every expression reachable from the
// chain (GLOSSARY: postfix expression).
func NewPostfix(tok token.Token, base *Expression, chain ...PostfixOp) *Expression {
	e := &Expression{Kind: ExprPostfix, Token: tok}
	e.Base = e.attach(base)
	for _, op := range chain {
		e.PostfixChain = append(e.PostfixChain, attachPostfixOp(e, op))
	}
	return e
}

func attachPostfixOp(parent *Expression, op PostfixOp) PostfixOp {
	for i := range op.Arguments {
		op.Arguments[i].Value = parent.attach(op.Arguments[i].Value)
	}
	op.Index = parent.attach(op.Index)
	return op
}

func MemberOp(tok token.Token, name string) PostfixOp {
	return PostfixOp{Kind: PostfixMember, Token: tok, Name: name}
}

func CallOp(tok token.Token, args ...Argument) PostfixOp {
	return PostfixOp{Kind: PostfixCall, Token: tok, Arguments: args}
}

func SubscriptOp(tok token.Token, index *Expression) PostfixOp {
	return PostfixOp{Kind: PostfixSubscript, Token: tok, Index: index}
}

func Arg(value *Expression) Argument { return Argument{Value: value} }

func LabeledArg(label string, value *Expression) Argument {
	return Argument{Label: &label, Value: value}
}

// Statement constructors.

func NewExpressionStatement(tok token.Token, expr *Expression) *Statement {
	s := &Statement{Kind: StmtExpression, Token: tok}
	s.Expr = s.attach(expr)
	return s
}

func NewReturn(tok token.Token, value *Expression) *Statement {
	s := &Statement{Kind: StmtReturn, Token: tok}
	s.ReturnValue = s.attach(value)
	return s
}

func NewBreak(tok token.Token) *Statement    { return &Statement{Kind: StmtBreak, Token: tok} }
func NewContinue(tok token.Token) *Statement { return &Statement{Kind: StmtContinue, Token: tok} }

func NewCompound(tok token.Token, stmts ...*Statement) *Statement {
	s := &Statement{Kind: StmtCompound, Token: tok}
	for _, st := range stmts {
		s.Statements = append(s.Statements, s.attachStmt(st))
	}
	return s
}

func NewIf(tok token.Token, cond *Expression, ifLet *Pattern, then, els *Statement) *Statement {
	s := &Statement{Kind: StmtIf, Token: tok, IfLet: ifLet}
	s.Condition = s.attach(cond)
	s.Then = s.attachStmt(then)
	s.Else = s.attachStmt(els)
	return s
}

func NewWhile(tok token.Token, cond *Expression, ifLet *Pattern, body *Statement) *Statement {
	s := &Statement{Kind: StmtWhile, Token: tok, IfLet: ifLet}
	s.Condition = s.attach(cond)
	s.Then = s.attachStmt(body)
	return s
}

func NewUnknown(tok token.Token, context string) *Statement {
	return &Statement{Kind: StmtUnknown, Token: tok, Context: context}
}

func NewDoWhile(tok token.Token, cond *Expression, body *Statement) *Statement {
	s := &Statement{Kind: StmtDoWhile, Token: tok}
	s.Condition = s.attach(cond)
	s.Then = s.attachStmt(body)
	return s
}

// NewFor builds a Swift for-in loop (`for pattern in sequence where w { body }`).
func NewFor(tok token.Token, pattern *Pattern, sequence, where *Expression, body *Statement) *Statement {
	s := &Statement{Kind: StmtFor, Token: tok, ForPattern: pattern}
	s.ForSequence = s.attach(sequence)
	s.ForWhere = s.attach(where)
	s.ForBody = s.attachStmt(body)
	return s
}

func NewSwitch(tok token.Token, subject *Expression, cases []SwitchCase) *Statement {
	s := &Statement{Kind: StmtSwitch, Token: tok}
	s.SwitchSubject = s.attach(subject)
	for _, c := range cases {
		s.Cases = append(s.Cases, attachSwitchCase(s, c))
	}
	return s
}

func attachSwitchCase(parent *Statement, c SwitchCase) SwitchCase {
	out := SwitchCase{IsDefault: c.IsDefault, Patterns: c.Patterns}
	out.Where = parent.attach(c.Where)
	for _, b := range c.Body {
		out.Body = append(out.Body, parent.attachStmt(b))
	}
	return out
}

func NewDo(tok token.Token, body *Statement, catches []CatchClause) *Statement {
	s := &Statement{Kind: StmtDo, Token: tok}
	s.DoBody = s.attachStmt(body)
	for _, c := range catches {
		s.Catches = append(s.Catches, CatchClause{Pattern: c.Pattern, Body: s.attachStmt(c.Body)})
	}
	return s
}

func NewVariableDeclaration(tok token.Token, isConst bool, bindings []VarBinding) *Statement {
	s := &Statement{Kind: StmtVariableDeclaration, Token: tok, IsConst: isConst}
	for _, b := range bindings {
		s.Bindings = append(s.Bindings, VarBinding{Pattern: b.Pattern, TypeAnnotation: b.TypeAnnotation, Value: s.attach(b.Value)})
	}
	return s
}
