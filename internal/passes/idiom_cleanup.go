package passes

import "github.com/occ2swift/occ/internal/ast"

// IdiomCleanupPass is §4.6 step 5. It runs last and only performs the one
// rewrite that is safe without new AST structure: an `ExprParenthesized`
// wrapping an already-unambiguous inner expression unwraps to that inner
// expression directly. Swift's optional-chaining (`?.`) and
// implicitly-unwrapped-optional (`!`) spellings are decided at emission
// time instead (Base.Kind==ExprCast with CastKind=="as?", or a target
// type of SwiftImplicitUnwrappedOptional) — neither needs a tree rewrite,
// just a printing choice.
type IdiomCleanupPass struct{}

func (IdiomCleanupPass) Name() string { return "idiom-cleanup" }

func (p IdiomCleanupPass) Run(_ *Context, body *ast.Statement) bool {
	changed := false
	WalkStatement(body, func(e *ast.Expression) *ast.Expression {
		if e == nil || e.Kind != ast.ExprParenthesized {
			return e
		}
		if e.Inner != nil && isAtomic(e.Inner) {
			changed = true
			return e.Inner
		}
		return e
	})
	return changed
}

// isAtomic reports whether an expression's own precedence can never be
// misread when it appears bare in place of a parenthesized subexpression:
// identifiers, literals, and postfix chains never need disambiguating
// parens regardless of what surrounds them.
func isAtomic(e *ast.Expression) bool {
	switch e.Kind {
	case ast.ExprIdentifier, ast.ExprLiteral, ast.ExprPostfix, ast.ExprParenthesized, ast.ExprConstant:
		return true
	default:
		return false
	}
}
