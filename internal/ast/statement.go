package ast

import (
	"github.com/occ2swift/occ/internal/token"
	"github.com/occ2swift/occ/internal/types"
)

// StmtKind is the tag of the Statement sum type (§3).
type StmtKind int

const (
	StmtIf StmtKind = iota
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtSwitch
	StmtDo
	StmtDefer
	StmtReturn
	StmtBreak
	StmtContinue
	StmtExpression
	StmtVariableDeclaration
	StmtCompound
	StmtUnknown
)

// VarBinding is one `pattern[: Type] [= value]` clause of a variable
// declaration statement.
type VarBinding struct {
	Pattern        *Pattern
	TypeAnnotation *types.SwiftType
	Value          *Expression
}

// SwitchCase is one `case pattern, pattern: statements` arm (§3:
// "switch (cases = patterns + statements)").
type SwitchCase struct {
	Patterns []*Pattern
	Where    *Expression // optional `where` guard
	Body     []*Statement
	IsDefault bool
}

// CatchClause is one `catch pattern { ... }` arm of a do/catch (§3's Do
// statement).
type CatchClause struct {
	Pattern *Pattern
	Body    *Statement
}

// Statement is the closed sum type of §3.
type Statement struct {
	parentRef

	Kind  StmtKind
	Token token.Token

	Comments []string

	// StmtIf / StmtWhile / StmtDoWhile
	Condition  *Expression
	IfLet      *Pattern // optional if-let / while-let binding pattern
	Then       *Statement
	Else       *Statement

	// StmtFor (Swift for-in)
	ForPattern  *Pattern
	ForSequence *Expression
	ForWhere    *Expression
	ForBody     *Statement

	// StmtSwitch
	SwitchSubject *Expression
	Cases         []SwitchCase

	// StmtDo
	DoBody  *Statement
	Catches []CatchClause

	// StmtDefer
	DeferBody *Statement

	// StmtReturn
	ReturnValue *Expression

	// StmtExpression
	Expr *Expression

	// StmtVariableDeclaration
	IsConst  bool
	Bindings []VarBinding

	// StmtCompound
	Statements []*Statement

	// StmtUnknown
	Context string
}

func (s *Statement) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

func (s *Statement) Accept(v Visitor) {
	switch s.Kind {
	case StmtIf:
		v.VisitIf(s)
	case StmtWhile:
		v.VisitWhile(s)
	case StmtDoWhile:
		v.VisitDoWhile(s)
	case StmtFor:
		v.VisitFor(s)
	case StmtSwitch:
		v.VisitSwitch(s)
	case StmtDo:
		v.VisitDo(s)
	case StmtDefer:
		v.VisitDefer(s)
	case StmtReturn:
		v.VisitReturn(s)
	case StmtBreak:
		v.VisitBreak(s)
	case StmtContinue:
		v.VisitContinue(s)
	case StmtExpression:
		v.VisitExpressionStatement(s)
	case StmtVariableDeclaration:
		v.VisitVariableDeclaration(s)
	case StmtCompound:
		v.VisitCompound(s)
	case StmtUnknown:
		v.VisitUnknown(s)
	}
}

func (s *Statement) attach(child *Expression) *Expression { return attachExpr(s, child) }
func (s *Statement) attachStmt(child *Statement) *Statement { return attachStmt(s, child) }

// Equal is structural equality mirroring Expression.Equal (§8: "For every
// Statement s: s == s and s == s.copy()").
func (s *Statement) Equal(o *Statement) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case StmtIf, StmtWhile, StmtDoWhile:
		return s.Condition.Equal(o.Condition) && s.IfLet.Equal(o.IfLet) &&
			s.Then.Equal(o.Then) && s.Else.Equal(o.Else)
	case StmtFor:
		return s.ForPattern.Equal(o.ForPattern) && s.ForSequence.Equal(o.ForSequence) &&
			s.ForWhere.Equal(o.ForWhere) && s.ForBody.Equal(o.ForBody)
	case StmtSwitch:
		if !s.SwitchSubject.Equal(o.SwitchSubject) || len(s.Cases) != len(o.Cases) {
			return false
		}
		for i := range s.Cases {
			if !switchCaseEqual(s.Cases[i], o.Cases[i]) {
				return false
			}
		}
		return true
	case StmtDo:
		if !s.DoBody.Equal(o.DoBody) || len(s.Catches) != len(o.Catches) {
			return false
		}
		for i := range s.Catches {
			if !s.Catches[i].Pattern.Equal(o.Catches[i].Pattern) || !s.Catches[i].Body.Equal(o.Catches[i].Body) {
				return false
			}
		}
		return true
	case StmtDefer:
		return s.DeferBody.Equal(o.DeferBody)
	case StmtReturn:
		return s.ReturnValue.Equal(o.ReturnValue)
	case StmtBreak, StmtContinue:
		return true
	case StmtExpression:
		return s.Expr.Equal(o.Expr)
	case StmtVariableDeclaration:
		if s.IsConst != o.IsConst || len(s.Bindings) != len(o.Bindings) {
			return false
		}
		for i := range s.Bindings {
			a, b := s.Bindings[i], o.Bindings[i]
			if !a.Pattern.Equal(b.Pattern) || !typeEqual(a.TypeAnnotation, b.TypeAnnotation) || !a.Value.Equal(b.Value) {
				return false
			}
		}
		return true
	case StmtCompound:
		if len(s.Statements) != len(o.Statements) {
			return false
		}
		for i := range s.Statements {
			if !s.Statements[i].Equal(o.Statements[i]) {
				return false
			}
		}
		return true
	case StmtUnknown:
		return s.Context == o.Context
	}
	return false
}

func switchCaseEqual(a, b SwitchCase) bool {
	if a.IsDefault != b.IsDefault || len(a.Patterns) != len(b.Patterns) || len(a.Body) != len(b.Body) {
		return false
	}
	if !a.Where.Equal(b.Where) {
		return false
	}
	for i := range a.Patterns {
		if !a.Patterns[i].Equal(b.Patterns[i]) {
			return false
		}
	}
	for i := range a.Body {
		if !a.Body[i].Equal(b.Body[i]) {
			return false
		}
	}
	return true
}

// Copy deep-copies a statement tree with disjoint parent pointers (§3, §8).
func (s *Statement) Copy() *Statement {
	if s == nil {
		return nil
	}
	c := &Statement{Kind: s.Kind, Token: s.Token, IsConst: s.IsConst, Context: s.Context}
	if s.Comments != nil {
		c.Comments = append([]string{}, s.Comments...)
	}
	c.Condition = c.attach(s.Condition.Copy())
	c.IfLet = s.IfLet.Copy()
	c.Then = c.attachStmt(s.Then.Copy())
	c.Else = c.attachStmt(s.Else.Copy())

	c.ForPattern = s.ForPattern.Copy()
	c.ForSequence = c.attach(s.ForSequence.Copy())
	c.ForWhere = c.attach(s.ForWhere.Copy())
	c.ForBody = c.attachStmt(s.ForBody.Copy())

	c.SwitchSubject = c.attach(s.SwitchSubject.Copy())
	for _, cs := range s.Cases {
		c.Cases = append(c.Cases, copySwitchCase(c, cs))
	}

	c.DoBody = c.attachStmt(s.DoBody.Copy())
	for _, cc := range s.Catches {
		c.Catches = append(c.Catches, CatchClause{Pattern: cc.Pattern.Copy(), Body: c.attachStmt(cc.Body.Copy())})
	}

	c.DeferBody = c.attachStmt(s.DeferBody.Copy())
	c.ReturnValue = c.attach(s.ReturnValue.Copy())
	c.Expr = c.attach(s.Expr.Copy())

	for _, b := range s.Bindings {
		nb := VarBinding{Pattern: b.Pattern.Copy(), Value: c.attach(b.Value.Copy())}
		if b.TypeAnnotation != nil {
			t := *b.TypeAnnotation
			nb.TypeAnnotation = &t
		}
		c.Bindings = append(c.Bindings, nb)
	}

	for _, st := range s.Statements {
		c.Statements = append(c.Statements, c.attachStmt(st.Copy()))
	}
	return c
}

func copySwitchCase(parent *Statement, cs SwitchCase) SwitchCase {
	out := SwitchCase{IsDefault: cs.IsDefault, Where: parent.attach(cs.Where.Copy())}
	for _, p := range cs.Patterns {
		out.Patterns = append(out.Patterns, p.Copy())
	}
	for _, b := range cs.Body {
		out.Body = append(out.Body, parent.attachStmt(b.Copy()))
	}
	return out
}
