package ast

import (
	"github.com/occ2swift/occ/internal/token"
	"github.com/occ2swift/occ/internal/types"
)

// ExprKind is the tag of the Expression sum type (§3).
type ExprKind int

const (
	ExprIdentifier ExprKind = iota
	ExprLiteral
	ExprBinary
	ExprUnary
	ExprPrefix
	ExprPostfix
	ExprTernary
	ExprCast
	ExprAssignment
	ExprParenthesized
	ExprBlockLiteral
	ExprTypeCheck
	ExprConstant
	ExprSizeof
)

// LiteralKind is the {integer, float, string, boolean, nil, array,
// dictionary} set from §3.
type LiteralKind int

const (
	LitInteger LiteralKind = iota
	LitFloat
	LitString
	LitBoolean
	LitNil
	LitArray
	LitDictionary
)

// PostfixOpKind distinguishes the trailing operators a postfix expression
// chains (GLOSSARY: "an expression with a chain of trailing operators
// (.member, (args), [index])").
type PostfixOpKind int

const (
	PostfixMember PostfixOpKind = iota
	PostfixCall
	PostfixSubscript
)

// Argument is one call argument: an optional label plus its value
// expression, matching Swift call-site syntax (`label: value`).
type Argument struct {
	Label *string
	Value *Expression
}

// PostfixOp is one link of a postfix expression's trailing-operator
// chain.
type PostfixOp struct {
	Kind      PostfixOpKind
	Token     token.Token
	Name      string     // PostfixMember
	Arguments []Argument // PostfixCall
	Index     *Expression
}

// DictPair is one key/value pair of a dictionary literal.
type DictPair struct {
	Key   *Expression
	Value *Expression
}

// Expression is the closed sum type of §3. Every expression carries an
// optional ResolvedType, filled in by the type-annotation pass (§4.6) and
// left nil ("unknown") when resolution failed (§7's TypeResolutionWarning
// policy).
type Expression struct {
	parentRef

	Kind  ExprKind
	Token token.Token

	ResolvedType *types.SwiftType

	// metadata preserved by Copy but ignored by Equal, per §3.
	Label    string
	Comments []string

	// ExprIdentifier
	Name string

	// ExprLiteral
	LiteralKind   LiteralKind
	IntValue      int64
	FloatValue    float64
	StringValue   string
	BoolValue     bool
	ArrayElems    []*Expression
	DictPairs     []DictPair

	// ExprBinary / ExprAssignment
	Operator string
	Left     *Expression
	Right    *Expression

	// ExprUnary / ExprPrefix / ExprPostfix(unary ++/--, not chain)
	Operand *Expression

	// ExprPostfix (member/call/subscript chain per GLOSSARY)
	Base          *Expression
	PostfixChain  []PostfixOp

	// ExprTernary
	Condition *Expression
	Then      *Expression
	Else      *Expression

	// ExprCast / ExprTypeCheck
	CastKind   string // "as", "as?", "as!", "is"
	TargetType *types.SwiftType
	Subject    *Expression

	// ExprParenthesized
	Inner *Expression

	// ExprBlockLiteral
	BlockParams []string
	BlockBody   []*Statement

	// ExprConstant
	ConstantName string

	// ExprSizeof
	SizeofType *types.SwiftType
	SizeofExpr *Expression
}

func (e *Expression) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

func (e *Expression) Accept(v Visitor) {
	switch e.Kind {
	case ExprIdentifier:
		v.VisitIdentifier(e)
	case ExprLiteral:
		v.VisitLiteral(e)
	case ExprBinary:
		v.VisitBinary(e)
	case ExprUnary:
		v.VisitUnary(e)
	case ExprPrefix:
		v.VisitPrefix(e)
	case ExprPostfix:
		v.VisitPostfix(e)
	case ExprTernary:
		v.VisitTernary(e)
	case ExprCast:
		v.VisitCast(e)
	case ExprAssignment:
		v.VisitAssignment(e)
	case ExprParenthesized:
		v.VisitParenthesized(e)
	case ExprBlockLiteral:
		v.VisitBlockLiteral(e)
	case ExprTypeCheck:
		v.VisitTypeCheck(e)
	case ExprConstant:
		v.VisitConstant(e)
	case ExprSizeof:
		v.VisitSizeof(e)
	}
}

// AsIdentifier is a predicate/accessor pair per §9 ("model as predicate
// methods on the sum types ... do not reintroduce dynamic dispatch").
func (e *Expression) AsIdentifier() (*Expression, bool) {
	if e != nil && e.Kind == ExprIdentifier {
		return e, true
	}
	return nil, false
}

func (e *Expression) AsPostfix() (*Expression, bool) {
	if e != nil && e.Kind == ExprPostfix {
		return e, true
	}
	return nil, false
}

func (e *Expression) IsIdentifierNamed(name string) bool {
	return e != nil && e.Kind == ExprIdentifier && e.Name == name
}

// TrailingCall returns the final PostfixCall operation of a postfix
// chain, if the chain's last link is a call — the shape the Function
// Invocation Transformer (§4.5) matches against.
func (e *Expression) TrailingCall() (*PostfixOp, bool) {
	if e == nil || e.Kind != ExprPostfix || len(e.PostfixChain) == 0 {
		return nil, false
	}
	last := &e.PostfixChain[len(e.PostfixChain)-1]
	if last.Kind != PostfixCall {
		return nil, false
	}
	return last, true
}

// Children returns e's direct expression children, for generic
// pre/post-order traversal (§4.6 ordering rules, §5 left-to-right
// sibling visitation).
func (e *Expression) Children() []*Expression {
	if e == nil {
		return nil
	}
	var out []*Expression
	switch e.Kind {
	case ExprLiteral:
		out = append(out, e.ArrayElems...)
		for _, p := range e.DictPairs {
			out = append(out, p.Key, p.Value)
		}
	case ExprBinary, ExprAssignment:
		out = append(out, e.Left, e.Right)
	case ExprUnary, ExprPrefix:
		out = append(out, e.Operand)
	case ExprPostfix:
		out = append(out, e.Base)
		for _, op := range e.PostfixChain {
			if op.Kind == PostfixSubscript {
				out = append(out, op.Index)
			}
			if op.Kind == PostfixCall {
				for _, a := range op.Arguments {
					out = append(out, a.Value)
				}
			}
		}
	case ExprTernary:
		out = append(out, e.Condition, e.Then, e.Else)
	case ExprCast:
		out = append(out, e.Subject)
	case ExprTypeCheck:
		out = append(out, e.Subject)
	case ExprParenthesized:
		out = append(out, e.Inner)
	case ExprSizeof:
		out = append(out, e.SizeofExpr)
	}
	filtered := out[:0]
	for _, c := range out {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// attach makes e the parent of child through attachExpr (§3's reparenting
// invariant). Constructors below use this to keep every tree-building path
// consistent.
func (e *Expression) attach(child *Expression) *Expression {
	return attachExpr(e, child)
}
