package passes

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/diagnostics"
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/overload"
	"github.com/occ2swift/occ/internal/types"
)

// OverloadResolutionPass is §4.6 step 3. For the common `recv.method(args)`
// two-link postfix shape it gathers every candidate signature the
// selector name could mean across the receiver's superclass chain and
// asks the overload resolver to pick one, narrowing the call's resolved
// type to that signature's return type.
type OverloadResolutionPass struct{}

func (OverloadResolutionPass) Name() string { return "overload-resolution" }

func (p OverloadResolutionPass) Run(ctx *Context, body *ast.Statement) bool {
	changed := false
	WalkStatement(body, func(e *ast.Expression) *ast.Expression {
		if e != nil && e.Kind == ast.ExprPostfix {
			if p.resolve(ctx, e) {
				changed = true
			}
		}
		return e
	})
	return changed
}

// resolve handles a two-link chain (`recv.method(args)`): PostfixChain[0]
// is the member, PostfixChain[1] is the call. Longer or differently
// shaped chains are left to whatever resolution TypeAnnotationPass's
// ResolveMember walk already gave them.
func (p OverloadResolutionPass) resolve(ctx *Context, e *ast.Expression) bool {
	if e.Base == nil || e.Base.ResolvedType == nil || len(e.PostfixChain) != 2 {
		return false
	}
	member := e.PostfixChain[0]
	call := e.PostfixChain[1]
	if member.Kind != ast.PostfixMember || call.Kind != ast.PostfixCall {
		return false
	}
	className, ok := nominalClassName(*e.Base.ResolvedType)
	if !ok {
		return false
	}

	var signatures []types.FunctionSignature
	for _, cls := range ctx.Graph.SuperclassChain(className) {
		for _, in := range ctx.Graph.Methods(cls) {
			if in.Kind == intentions.KindMethod && in.Signature.Name == member.Name {
				signatures = append(signatures, in.Signature)
			}
		}
	}
	if len(signatures) == 0 {
		return false
	}

	args := make([]overload.Argument, len(call.Arguments))
	for i, a := range call.Arguments {
		args[i] = argumentOf(a.Value)
	}

	idx, ok := ctx.Overload.Resolve(signatures, args)
	if !ok {
		if !ctx.reportedUnresolvedMembers[e] && allArgsTyped(args) {
			ctx.reportedUnresolvedMembers[e] = true
			ctx.Diagnostics.Add(diagnostics.NewWarning(diagnostics.ErrNoApplicableOverload, call.Token,
				"no overload of %q applies to this call", member.Name))
		}
		return false
	}

	want := signatures[idx].ReturnType
	if e.ResolvedType != nil && e.ResolvedType.Equal(want) {
		return false
	}
	e.ResolvedType = &want
	return true
}

func argumentOf(v *ast.Expression) overload.Argument {
	if v == nil {
		return overload.Argument{}
	}
	arg := overload.Argument{Type: v.ResolvedType}
	if v.Kind == ast.ExprLiteral {
		arg.IsLiteral = true
		lk := v.LiteralKind
		arg.LiteralKind = &lk
	}
	return arg
}

func allArgsTyped(args []overload.Argument) bool {
	for _, a := range args {
		if a.Type == nil {
			return false
		}
	}
	return true
}
