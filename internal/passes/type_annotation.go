package passes

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/types"
)

// TypeAnnotationPass is §4.6 step 1: annotate literals and identifiers
// with a resolvedType, leaves first, threading newly-bound local types
// (from `var`/`let` declarations) forward into the statements that
// follow them in the same scope.
type TypeAnnotationPass struct{}

func (TypeAnnotationPass) Name() string { return "type-annotation" }

func (p TypeAnnotationPass) Run(ctx *Context, body *ast.Statement) bool {
	changed := false
	p.walkStmt(ctx, body, &changed)
	return changed
}

func (p TypeAnnotationPass) walkStmt(ctx *Context, s *ast.Statement, changed *bool) {
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtIf, ast.StmtWhile, ast.StmtDoWhile:
		p.walkExpr(ctx, s.Condition, changed)
		p.walkStmt(ctx, s.Then, changed)
		p.walkStmt(ctx, s.Else, changed)
	case ast.StmtFor:
		p.walkExpr(ctx, s.ForSequence, changed)
		p.walkExpr(ctx, s.ForWhere, changed)
		if s.ForPattern != nil && s.ForPattern.Kind == ast.PatIdentifier && s.ForSequence != nil && s.ForSequence.ResolvedType != nil {
			if elem := arrayElement(*s.ForSequence.ResolvedType); elem != nil {
				ctx.Locals[s.ForPattern.Name] = *elem
			}
		}
		p.walkStmt(ctx, s.ForBody, changed)
	case ast.StmtSwitch:
		p.walkExpr(ctx, s.SwitchSubject, changed)
		for i := range s.Cases {
			c := &s.Cases[i]
			p.walkExpr(ctx, c.Where, changed)
			for _, b := range c.Body {
				p.walkStmt(ctx, b, changed)
			}
		}
	case ast.StmtDo:
		p.walkStmt(ctx, s.DoBody, changed)
		for _, c := range s.Catches {
			p.walkStmt(ctx, c.Body, changed)
		}
	case ast.StmtDefer:
		p.walkStmt(ctx, s.DeferBody, changed)
	case ast.StmtReturn:
		p.walkExpr(ctx, s.ReturnValue, changed)
	case ast.StmtExpression:
		p.walkExpr(ctx, s.Expr, changed)
	case ast.StmtVariableDeclaration:
		for i := range s.Bindings {
			b := &s.Bindings[i]
			p.walkExpr(ctx, b.Value, changed)
			if b.Pattern == nil || b.Pattern.Kind != ast.PatIdentifier {
				continue
			}
			switch {
			case b.TypeAnnotation != nil:
				ctx.Locals[b.Pattern.Name] = *b.TypeAnnotation
			case b.Value != nil && b.Value.ResolvedType != nil:
				ctx.Locals[b.Pattern.Name] = *b.Value.ResolvedType
			}
		}
	case ast.StmtCompound:
		for _, st := range s.Statements {
			p.walkStmt(ctx, st, changed)
		}
	}
}

func (p TypeAnnotationPass) walkExpr(ctx *Context, e *ast.Expression, changed *bool) {
	WalkExpr(e, func(x *ast.Expression) *ast.Expression {
		if x == nil || x.ResolvedType != nil {
			return x
		}
		if t, ok := p.infer(ctx, x); ok {
			x.ResolvedType = &t
			*changed = true
		}
		return x
	})
}

func (p TypeAnnotationPass) infer(ctx *Context, e *ast.Expression) (types.SwiftType, bool) {
	switch e.Kind {
	case ast.ExprLiteral:
		return literalType(e)
	case ast.ExprIdentifier:
		return p.inferIdentifier(ctx, e)
	case ast.ExprParenthesized:
		if e.Inner != nil && e.Inner.ResolvedType != nil {
			return *e.Inner.ResolvedType, true
		}
	case ast.ExprCast:
		if e.TargetType != nil {
			switch e.CastKind {
			case "as?":
				return types.Optional(*e.TargetType), true
			default:
				return *e.TargetType, true
			}
		}
	case ast.ExprTypeCheck:
		return types.Named("Bool"), true
	case ast.ExprTernary:
		if e.Then != nil && e.Then.ResolvedType != nil {
			return *e.Then.ResolvedType, true
		}
		if e.Else != nil && e.Else.ResolvedType != nil {
			return *e.Else.ResolvedType, true
		}
	case ast.ExprAssignment:
		return types.Void(), true
	case ast.ExprPostfix:
		return p.inferPostfix(ctx, e)
	}
	return types.SwiftType{}, false
}

func (p TypeAnnotationPass) inferIdentifier(ctx *Context, e *ast.Expression) (types.SwiftType, bool) {
	if e.Name == "self" && ctx.ClassName != "" {
		return types.Named(ctx.ClassName), true
	}
	if t, ok := ctx.Locals[e.Name]; ok {
		return t, true
	}
	if ctx.ClassName != "" {
		if in, ok := ctx.Graph.ResolveProperty(ctx.ClassName, e.Name); ok {
			return in.PropertyType, true
		}
	}
	if in, ok := ctx.Graph.Get(intentions.KindGlobalVar, e.Name); ok {
		return in.VarType, true
	}
	return types.SwiftType{}, false
}

// inferPostfix folds the postfix chain's link types forward from the
// already-resolved base type (member resolution, §4.6 step 2, is folded
// into this same walk: a member access's type is looked up right here
// rather than in a separate tree pass, since both need the same
// nearest-in-hierarchy lookup).
func (p TypeAnnotationPass) inferPostfix(ctx *Context, e *ast.Expression) (types.SwiftType, bool) {
	if e.Base == nil || e.Base.ResolvedType == nil {
		return types.SwiftType{}, false
	}
	cur := e.Base.ResolvedType
	for i := range e.PostfixChain {
		op := e.PostfixChain[i]
		switch op.Kind {
		case ast.PostfixMember:
			className, ok := nominalClassName(*cur)
			if !ok {
				return types.SwiftType{}, false
			}
			in, ok := ctx.TypeSystem.ResolveMember(className, op.Name)
			if !ok {
				return types.SwiftType{}, false
			}
			var t types.SwiftType
			switch in.Kind {
			case intentions.KindProperty:
				t = in.PropertyType
			case intentions.KindMethod, intentions.KindInit:
				t = in.Signature.ReturnType
			default:
				return types.SwiftType{}, false
			}
			cur = &t
		case ast.PostfixCall:
			// the callee's return type is already on cur from the
			// preceding member link; selecting among overloads is the
			// overload resolver's job (§4.6 step 3), not this pass's.
		case ast.PostfixSubscript:
			elem := arrayElement(*cur)
			if elem == nil {
				return types.SwiftType{}, false
			}
			cur = elem
		}
	}
	return *cur, true
}

func arrayElement(t types.SwiftType) *types.SwiftType {
	u := t.DeepUnwrapped()
	if u.Kind != types.SwiftArray {
		return nil
	}
	return u.Wrapped
}

func literalType(e *ast.Expression) (types.SwiftType, bool) {
	switch e.LiteralKind {
	case ast.LitInteger:
		return types.Named("Int"), true
	case ast.LitFloat:
		return types.Named("Double"), true
	case ast.LitString:
		return types.Named("String"), true
	case ast.LitBoolean:
		return types.Named("Bool"), true
	case ast.LitArray:
		if len(e.ArrayElems) > 0 && e.ArrayElems[0].ResolvedType != nil {
			return types.ArrayOf(*e.ArrayElems[0].ResolvedType), true
		}
	case ast.LitDictionary:
		if len(e.DictPairs) > 0 && e.DictPairs[0].Key.ResolvedType != nil && e.DictPairs[0].Value.ResolvedType != nil {
			return types.DictionaryOf(*e.DictPairs[0].Key.ResolvedType, *e.DictPairs[0].Value.ResolvedType), true
		}
	}
	// LitNil's type depends entirely on the position it appears in
	// (§7's TypeResolutionWarning policy leaves it unresolved here;
	// nothing downstream widens an untyped nil into a guess).
	return types.SwiftType{}, false
}
