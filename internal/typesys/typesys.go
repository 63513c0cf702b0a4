// Package typesys answers the type-relation questions the expression
// passes need while walking the Swift AST (§4.3): assignability,
// structural/nullability-aware equivalence, numeric classification, and
// member resolution against the intention graph's class hierarchy.
package typesys

import (
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/types"
)

// TypeSystem is the interface the expression passes consult, rather than
// calling a concrete struct directly, "so a stub implementation can drive
// unit tests" (§4.3).
type TypeSystem interface {
	IsAssignable(from, to types.SwiftType) bool
	TypesMatch(a, b types.SwiftType, ignoreNullability bool) bool
	IsNumeric(t types.SwiftType) bool
	IsFloat(t types.SwiftType) bool
	IsInteger(t types.SwiftType) bool
	ResolveMember(className, name string) (*intentions.Intention, bool)
	SuperclassChain(className string) []string
	ConformedProtocols(className string) []string
}

// Graph-backed implements TypeSystem against a frozen intention graph
// (§5: "shared read-only across the translation-unit worker pool"), the
// production implementation used by internal/passes and internal/driver.
type graphTypeSystem struct {
	g *intentions.Graph
}

// New returns the intention-graph-backed TypeSystem.
func New(g *intentions.Graph) TypeSystem {
	return &graphTypeSystem{g: g}
}

var integerTypeNames = map[string]bool{
	"Int": true, "Int8": true, "Int16": true, "Int32": true, "Int64": true,
	"UInt": true, "UInt8": true, "UInt16": true, "UInt32": true, "UInt64": true,
}

var floatTypeNames = map[string]bool{
	"Double": true, "Float": true, "CGFloat": true,
}

func nominalName(t types.SwiftType) (string, bool) {
	if t.Kind != types.SwiftNominal || t.Nominal.Kind != types.NominalTypeName {
		return "", false
	}
	return t.Nominal.Name, true
}

func (g *graphTypeSystem) IsInteger(t types.SwiftType) bool {
	name, ok := nominalName(t.DeepUnwrapped())
	return ok && integerTypeNames[name]
}

func (g *graphTypeSystem) IsFloat(t types.SwiftType) bool {
	name, ok := nominalName(t.DeepUnwrapped())
	return ok && floatTypeNames[name]
}

func (g *graphTypeSystem) IsNumeric(t types.SwiftType) bool {
	return g.IsInteger(t) || g.IsFloat(t)
}

// TypesMatch ignores optional/IUO wrapping only when ignoreNullability is
// true; otherwise it is plain structural equality (§4.3).
func (g *graphTypeSystem) TypesMatch(a, b types.SwiftType, ignoreNullability bool) bool {
	if ignoreNullability {
		return a.DeepUnwrapped().Equal(b.DeepUnwrapped())
	}
	return a.Equal(b)
}

// IsAssignable reports whether a value of type from can be used where a
// value of type to is expected: identical types, numeric widening between
// any two numeric nominal types, "Any" accepting anything, and the class
// hierarchy / protocol-conformance lookup of §4.3's "hierarchical lookup
// (class → superclass → conformed protocols)".
func (g *graphTypeSystem) IsAssignable(from, to types.SwiftType) bool {
	fromU, toU := from.DeepUnwrapped(), to.DeepUnwrapped()
	if fromU.Equal(toU) {
		return true
	}
	if toName, ok := nominalName(toU); ok && toName == "Any" {
		return true
	}
	if g.IsNumeric(fromU) && g.IsNumeric(toU) {
		return true
	}
	fromName, fromOK := nominalName(fromU)
	toName, toOK := nominalName(toU)
	if !fromOK || !toOK {
		return false
	}
	for _, ancestor := range g.g.SuperclassChain(fromName) {
		if ancestor == toName {
			return true
		}
	}
	for _, proto := range g.g.ConformedProtocols(fromName) {
		if proto == toName {
			return true
		}
	}
	return false
}

// ResolveMember tries the property, then the method/init/deinit table, in
// that order, walking the superclass chain (§4.3).
func (g *graphTypeSystem) ResolveMember(className, name string) (*intentions.Intention, bool) {
	if p, ok := g.g.ResolveProperty(className, name); ok {
		return p, true
	}
	if m, ok := g.g.ResolveMethod(className, name); ok {
		return m, true
	}
	return nil, false
}

func (g *graphTypeSystem) SuperclassChain(className string) []string {
	return g.g.SuperclassChain(className)
}

func (g *graphTypeSystem) ConformedProtocols(className string) []string {
	return g.g.ConformedProtocols(className)
}
