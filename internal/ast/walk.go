package ast

// WalkExpr traverses e's subtree, calling pre before descending into
// children and post after, matching §4.6's ordering rule: "parent is
// visited after all children (post-order) for type-annotating passes and
// before (pre-order) for rewrites whose applicability depends on the
// outer context." Sibling order is left-to-right (§5).
//
// Either callback may be nil. A pre callback returning false skips this
// subtree's children (and its post callback).
func WalkExpr(e *Expression, pre func(*Expression) bool, post func(*Expression)) {
	if e == nil {
		return
	}
	if pre != nil && !pre(e) {
		return
	}
	for _, c := range e.Children() {
		WalkExpr(c, pre, post)
	}
	if post != nil {
		post(e)
	}
}

// WalkStmt traverses a statement tree, visiting every expression reachable
// from it (conditions, bound values, bodies) via WalkExpr, and recursing
// into nested statements left-to-right.
func WalkStmt(s *Statement, preExpr func(*Expression) bool, postExpr func(*Expression)) {
	if s == nil {
		return
	}
	walk := func(e *Expression) { WalkExpr(e, preExpr, postExpr) }
	switch s.Kind {
	case StmtIf, StmtWhile, StmtDoWhile:
		walk(s.Condition)
		WalkStmt(s.Then, preExpr, postExpr)
		WalkStmt(s.Else, preExpr, postExpr)
	case StmtFor:
		walk(s.ForSequence)
		walk(s.ForWhere)
		WalkStmt(s.ForBody, preExpr, postExpr)
	case StmtSwitch:
		walk(s.SwitchSubject)
		for _, c := range s.Cases {
			walk(c.Where)
			for _, b := range c.Body {
				WalkStmt(b, preExpr, postExpr)
			}
		}
	case StmtDo:
		WalkStmt(s.DoBody, preExpr, postExpr)
		for _, c := range s.Catches {
			WalkStmt(c.Body, preExpr, postExpr)
		}
	case StmtDefer:
		WalkStmt(s.DeferBody, preExpr, postExpr)
	case StmtReturn:
		walk(s.ReturnValue)
	case StmtExpression:
		walk(s.Expr)
	case StmtVariableDeclaration:
		for _, b := range s.Bindings {
			walk(b.Value)
		}
	case StmtCompound:
		for _, st := range s.Statements {
			WalkStmt(st, preExpr, postExpr)
		}
	}
}
