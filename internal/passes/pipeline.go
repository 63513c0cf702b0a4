package passes

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/diagnostics"
)

// Pass is one stage of the §4.6 pipeline: it inspects/rewrites body in
// place and reports whether it changed anything, the signal the fixpoint
// driver uses to decide whether another iteration is warranted.
type Pass interface {
	Name() string
	Run(ctx *Context, body *ast.Statement) bool
}

// Pipeline runs its passes in order, repeating the whole sequence until
// no pass reports a change or maxIterations is exceeded (§4.6: "re-run to
// a fixpoint"). Ordering within one iteration is fixed — type annotation,
// member resolution, overload resolution, invocation transforms, idiom
// cleanup — mirroring the teacher's own fixed-stage pipeline.Pipeline,
// generalized here to loop.
type Pipeline struct {
	maxIterations int
	passes        []Pass
}

func NewPipeline(maxIterations int, passes ...Pass) *Pipeline {
	return &Pipeline{maxIterations: maxIterations, passes: passes}
}

// Run drives one function/method body to a fixpoint, appending any
// diagnostics the passes raised along the way to ctx.Diagnostics. On
// exceeding maxIterations without settling it stops early and reports
// ErrFixpointExceeded rather than looping forever.
func (p *Pipeline) Run(ctx *Context, body *ast.Statement) {
	for i := 0; i < p.maxIterations; i++ {
		changed := false
		for _, pass := range p.passes {
			if pass.Run(ctx, body) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
	ctx.Diagnostics.Add(diagnostics.NewWarning(diagnostics.ErrFixpointExceeded, body.GetToken(),
		"expression pass pipeline did not converge within %d iterations", p.maxIterations))
}

// DefaultPasses returns the five-stage sequence §4.6 names, in order.
func DefaultPasses() []Pass {
	return []Pass{
		TypeAnnotationPass{},
		MemberResolutionPass{},
		OverloadResolutionPass{},
		TransformPass{},
		IdiomCleanupPass{},
	}
}
