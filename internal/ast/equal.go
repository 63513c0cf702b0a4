package ast

import "github.com/occ2swift/occ/internal/types"

// Equal is structural equality: it ignores resolved types, source
// locations, and presentation metadata (label, comments) — §3: "Equality
// is structural and ignores resolved types and source locations."
func (e *Expression) Equal(o *Expression) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ExprIdentifier:
		return e.Name == o.Name
	case ExprLiteral:
		return e.literalEqual(o)
	case ExprBinary, ExprAssignment:
		return e.Operator == o.Operator && e.Left.Equal(o.Left) && e.Right.Equal(o.Right)
	case ExprUnary, ExprPrefix:
		return e.Operator == o.Operator && e.Operand.Equal(o.Operand)
	case ExprPostfix:
		if !e.Base.Equal(o.Base) || len(e.PostfixChain) != len(o.PostfixChain) {
			return false
		}
		for i := range e.PostfixChain {
			if !postfixOpEqual(e.PostfixChain[i], o.PostfixChain[i]) {
				return false
			}
		}
		return true
	case ExprTernary:
		return e.Condition.Equal(o.Condition) && e.Then.Equal(o.Then) && e.Else.Equal(o.Else)
	case ExprCast:
		return e.CastKind == o.CastKind && typeEqual(e.TargetType, o.TargetType) && e.Subject.Equal(o.Subject)
	case ExprTypeCheck:
		return typeEqual(e.TargetType, o.TargetType) && e.Subject.Equal(o.Subject)
	case ExprParenthesized:
		return e.Inner.Equal(o.Inner)
	case ExprBlockLiteral:
		if len(e.BlockParams) != len(o.BlockParams) || len(e.BlockBody) != len(o.BlockBody) {
			return false
		}
		for i := range e.BlockParams {
			if e.BlockParams[i] != o.BlockParams[i] {
				return false
			}
		}
		for i := range e.BlockBody {
			if !e.BlockBody[i].Equal(o.BlockBody[i]) {
				return false
			}
		}
		return true
	case ExprConstant:
		return e.ConstantName == o.ConstantName
	case ExprSizeof:
		return typeEqual(e.SizeofType, o.SizeofType) && e.SizeofExpr.Equal(o.SizeofExpr)
	}
	return false
}

func (e *Expression) literalEqual(o *Expression) bool {
	if e.LiteralKind != o.LiteralKind {
		return false
	}
	switch e.LiteralKind {
	case LitInteger:
		return e.IntValue == o.IntValue
	case LitFloat:
		return e.FloatValue == o.FloatValue
	case LitString:
		return e.StringValue == o.StringValue
	case LitBoolean:
		return e.BoolValue == o.BoolValue
	case LitNil:
		return true
	case LitArray:
		if len(e.ArrayElems) != len(o.ArrayElems) {
			return false
		}
		for i := range e.ArrayElems {
			if !e.ArrayElems[i].Equal(o.ArrayElems[i]) {
				return false
			}
		}
		return true
	case LitDictionary:
		if len(e.DictPairs) != len(o.DictPairs) {
			return false
		}
		for i := range e.DictPairs {
			if !e.DictPairs[i].Key.Equal(o.DictPairs[i].Key) || !e.DictPairs[i].Value.Equal(o.DictPairs[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func postfixOpEqual(a, b PostfixOp) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case PostfixMember:
		return a.Name == b.Name
	case PostfixCall:
		if len(a.Arguments) != len(b.Arguments) {
			return false
		}
		for i := range a.Arguments {
			al, bl := a.Arguments[i].Label, b.Arguments[i].Label
			if (al == nil) != (bl == nil) {
				return false
			}
			if al != nil && *al != *bl {
				return false
			}
			if !a.Arguments[i].Value.Equal(b.Arguments[i].Value) {
				return false
			}
		}
		return true
	case PostfixSubscript:
		return a.Index.Equal(b.Index)
	}
	return false
}

func typeEqual(a, b *types.SwiftType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
