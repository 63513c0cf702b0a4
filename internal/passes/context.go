// Package passes implements the §4.6 expression-pass pipeline: ordered
// visitors that annotate the Swift AST with resolved types, resolve
// member access and overloads, rewrite recognizable Objective-C call
// patterns, and clean up a few idioms, re-run to a fixpoint.
package passes

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/diagnostics"
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/overload"
	"github.com/occ2swift/occ/internal/transform"
	"github.com/occ2swift/occ/internal/types"
	"github.com/occ2swift/occ/internal/typesys"
)

// Context is the shared state one translation unit's pass pipeline reads
// and writes while walking a single function/method body: the frozen
// intention graph, the type system and overload resolver it consults,
// the invocation-transformer table, and a per-body local-variable scope.
type Context struct {
	Graph      *intentions.Graph
	TypeSystem typesys.TypeSystem
	Overload   *overload.Resolver
	Transforms *transform.Registry
	Diagnostics *diagnostics.Bag

	File      string
	ClassName string // enclosing class, "" for a free function body

	Locals map[string]types.SwiftType

	reportedUnresolvedMembers map[*ast.Expression]bool
}

// NewContext builds a pass Context for one method/function body.
func NewContext(g *intentions.Graph, ts typesys.TypeSystem, ov *overload.Resolver, tr *transform.Registry, file, className string) *Context {
	return &Context{
		Graph:      g,
		TypeSystem: ts,
		Overload:   ov,
		Transforms: tr,
		Diagnostics: &diagnostics.Bag{},
		File:       file,
		ClassName:  className,
		Locals:     make(map[string]types.SwiftType),

		reportedUnresolvedMembers: make(map[*ast.Expression]bool),
	}
}

// BindParameter records a parameter or local binding's type for the
// identifier-lookup half of type annotation (§4.6 step 1).
func (c *Context) BindParameter(name string, t types.SwiftType) {
	c.Locals[name] = t
}

func nominalClassName(t types.SwiftType) (string, bool) {
	u := t.DeepUnwrapped()
	if u.Kind != types.SwiftNominal || u.Nominal.Kind != types.NominalTypeName {
		return "", false
	}
	return u.Nominal.Name, true
}
