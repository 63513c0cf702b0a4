// Package ast is the output-language syntax tree of §3: Expression,
// Statement and Pattern, each carrying an optional resolved type on
// expressions. Modeled as tagged unions per §9 ("do not emulate
// inheritance; prefer exhaustive pattern matching"), while still exposing
// a classical Accept(v Visitor) entry point in the teacher's own style
// (internal/ast/ast_core.go: `func (p *Program) Accept(v Visitor)`).
package ast

import (
	"github.com/occ2swift/occ/internal/token"
)

// Node is the minimal common contract of every tree node: something that
// can report its originating token (for diagnostics) and accept a
// Visitor. Both *Expression and *Statement implement it, which lets a
// parent pointer be stored generically without reintroducing an owning
// class hierarchy (§9).
type Node interface {
	GetToken() token.Token
	Accept(v Visitor)
}

// parentRef is a non-owning back-pointer: attaching a node as a child
// sets its parentRef, but the parent never holds a reference back through
// this field (§9's "arena/back-pointer" resource discipline, §5's
// ownership model). It is excluded from Equal and Copy deliberately:
// equality and copying operate on tree shape, not on where a subtree
// happens to be attached.
type parentRef struct {
	parent Node
}

func (p *parentRef) Parent() Node     { return p.parent }
func (p *parentRef) setParent(n Node) { p.parent = n }

// attachExpr reparents child onto parent, clearing child's previous
// parent first (§3's invariant: "setting a child clears the previous
// child's parent").
func attachExpr(parent Node, child *Expression) *Expression {
	if child == nil {
		return nil
	}
	child.setParent(parent)
	return child
}

func attachStmt(parent Node, child *Statement) *Statement {
	if child == nil {
		return nil
	}
	child.setParent(parent)
	return child
}
