package ast

import "github.com/occ2swift/occ/internal/types"

// PatternKind is the tag of the Pattern sum type (§3).
type PatternKind int

const (
	PatIdentifier PatternKind = iota
	PatWildcard
	PatOptional // if-let binding pattern
	PatTuple
	PatExpression // switch-case constant/value pattern
	PatTypeCheck  // `is T` / `as T` case pattern
)

// Pattern is the closed sum type used by if-let bindings and switch
// cases (§3).
type Pattern struct {
	Kind PatternKind

	Name  string   // PatIdentifier
	IsVar bool     // PatIdentifier: declared with `var` rather than `let`

	Inner *Pattern // PatOptional

	Elements []*Pattern // PatTuple

	MatchExpr *Expression // PatExpression

	CheckType *types.SwiftType // PatTypeCheck
}

func (p *Pattern) Equal(o *Pattern) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.Kind != o.Kind {
		return false
	}
	switch p.Kind {
	case PatIdentifier:
		return p.Name == o.Name && p.IsVar == o.IsVar
	case PatWildcard:
		return true
	case PatOptional:
		return p.Inner.Equal(o.Inner)
	case PatTuple:
		if len(p.Elements) != len(o.Elements) {
			return false
		}
		for i := range p.Elements {
			if !p.Elements[i].Equal(o.Elements[i]) {
				return false
			}
		}
		return true
	case PatExpression:
		return p.MatchExpr.Equal(o.MatchExpr)
	case PatTypeCheck:
		return typeEqual(p.CheckType, o.CheckType)
	}
	return false
}

func (p *Pattern) Copy() *Pattern {
	if p == nil {
		return nil
	}
	c := &Pattern{Kind: p.Kind, Name: p.Name, IsVar: p.IsVar}
	c.Inner = p.Inner.Copy()
	for _, e := range p.Elements {
		c.Elements = append(c.Elements, e.Copy())
	}
	c.MatchExpr = p.MatchExpr.Copy()
	if p.CheckType != nil {
		t := *p.CheckType
		c.CheckType = &t
	}
	return c
}
