package passes

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/metrics"
)

// TransformPass is §4.6 step 4: walk every postfix expression and offer
// it to the Function Invocation Transformer registry. At most one
// transformer fires per call site per fixpoint iteration — a rewritten
// call becomes eligible for a second transformer only on the pipeline's
// next pass, never within the same WalkExpr traversal.
type TransformPass struct{}

func (TransformPass) Name() string { return "invocation-transform" }

func (p TransformPass) Run(ctx *Context, body *ast.Statement) bool {
	changed := false
	WalkStatement(body, func(e *ast.Expression) *ast.Expression {
		if e == nil || e.Kind != ast.ExprPostfix {
			return e
		}
		if rewritten, ok := ctx.Transforms.Apply(e); ok {
			changed = true
			metrics.TransformsAppliedTotal.Inc()
			return rewritten
		}
		return e
	})
	return changed
}
