package passes

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/diagnostics"
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/types"
)

// MemberResolutionPass is §4.6 step 2: a diagnostic-only pass. It does
// not rewrite anything (member types are already folded into
// TypeAnnotationPass's postfix walk) — it exists to surface the member
// accesses that walk left unresolved as OCC-R001 warnings, once per
// expression node across the whole fixpoint so a stuck access doesn't
// spam the same warning on every iteration.
type MemberResolutionPass struct{}

func (MemberResolutionPass) Name() string { return "member-resolution" }

func (p MemberResolutionPass) Run(ctx *Context, body *ast.Statement) bool {
	WalkStatement(body, func(e *ast.Expression) *ast.Expression {
		if e != nil && e.Kind == ast.ExprPostfix {
			p.checkChain(ctx, e)
		}
		return e
	})
	return false
}

// checkChain retraces the member links TypeAnnotationPass's inferPostfix
// already folded, reporting the first one that fails to resolve.
func (p MemberResolutionPass) checkChain(ctx *Context, e *ast.Expression) {
	if e.Base == nil || e.Base.ResolvedType == nil {
		return
	}
	cur := e.Base.ResolvedType
	for i := range e.PostfixChain {
		op := &e.PostfixChain[i]
		if op.Kind != ast.PostfixMember {
			continue
		}
		className, ok := nominalClassName(*cur)
		if !ok {
			return
		}
		in, ok := ctx.TypeSystem.ResolveMember(className, op.Name)
		if !ok {
			if !ctx.reportedUnresolvedMembers[e] {
				ctx.reportedUnresolvedMembers[e] = true
				ctx.Diagnostics.Add(diagnostics.NewWarning(diagnostics.ErrTypeResolutionFailed, op.Token,
					"cannot resolve member %q on %s", op.Name, className))
			}
			return
		}
		cur = memberType(in)
		if cur == nil {
			return
		}
	}
}

func memberType(in *intentions.Intention) *types.SwiftType {
	switch in.Kind {
	case intentions.KindProperty:
		return &in.PropertyType
	case intentions.KindMethod, intentions.KindInit:
		return &in.Signature.ReturnType
	default:
		return nil
	}
}
