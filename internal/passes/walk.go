package passes

import "github.com/occ2swift/occ/internal/ast"

// WalkExpr rewrites e and every expression reachable from it, visiting
// children before e itself (§4.6's "leaves first" ordering). visit may
// return a different expression; the returned pointer is threaded back
// into the parent's field, which is how the invocation-transformer and
// idiom-cleanup passes replace a subtree in place.
func WalkExpr(e *ast.Expression, visit func(*ast.Expression) *ast.Expression) *ast.Expression {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ast.ExprLiteral:
		for i, el := range e.ArrayElems {
			e.ArrayElems[i] = WalkExpr(el, visit)
		}
		for i, p := range e.DictPairs {
			e.DictPairs[i] = ast.DictPair{Key: WalkExpr(p.Key, visit), Value: WalkExpr(p.Value, visit)}
		}
	case ast.ExprBinary, ast.ExprAssignment:
		e.Left = WalkExpr(e.Left, visit)
		e.Right = WalkExpr(e.Right, visit)
	case ast.ExprUnary, ast.ExprPrefix:
		e.Operand = WalkExpr(e.Operand, visit)
	case ast.ExprPostfix:
		e.Base = WalkExpr(e.Base, visit)
		for i := range e.PostfixChain {
			op := &e.PostfixChain[i]
			if op.Kind == ast.PostfixSubscript {
				op.Index = WalkExpr(op.Index, visit)
			}
			if op.Kind == ast.PostfixCall {
				for j := range op.Arguments {
					op.Arguments[j].Value = WalkExpr(op.Arguments[j].Value, visit)
				}
			}
		}
	case ast.ExprTernary:
		e.Condition = WalkExpr(e.Condition, visit)
		e.Then = WalkExpr(e.Then, visit)
		e.Else = WalkExpr(e.Else, visit)
	case ast.ExprCast, ast.ExprTypeCheck:
		e.Subject = WalkExpr(e.Subject, visit)
	case ast.ExprParenthesized:
		e.Inner = WalkExpr(e.Inner, visit)
	case ast.ExprSizeof:
		e.SizeofExpr = WalkExpr(e.SizeofExpr, visit)
	case ast.ExprBlockLiteral:
		for _, st := range e.BlockBody {
			WalkStatement(st, visit)
		}
	}
	return visit(e)
}

// WalkStatement walks every expression reachable from s, including
// nested statement bodies, applying visit post-order via WalkExpr.
func WalkStatement(s *ast.Statement, visit func(*ast.Expression) *ast.Expression) {
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtIf, ast.StmtWhile, ast.StmtDoWhile:
		s.Condition = WalkExpr(s.Condition, visit)
		WalkStatement(s.Then, visit)
		WalkStatement(s.Else, visit)
	case ast.StmtFor:
		s.ForSequence = WalkExpr(s.ForSequence, visit)
		s.ForWhere = WalkExpr(s.ForWhere, visit)
		WalkStatement(s.ForBody, visit)
	case ast.StmtSwitch:
		s.SwitchSubject = WalkExpr(s.SwitchSubject, visit)
		for i := range s.Cases {
			c := &s.Cases[i]
			c.Where = WalkExpr(c.Where, visit)
			for _, b := range c.Body {
				WalkStatement(b, visit)
			}
		}
	case ast.StmtDo:
		WalkStatement(s.DoBody, visit)
		for _, c := range s.Catches {
			WalkStatement(c.Body, visit)
		}
	case ast.StmtDefer:
		WalkStatement(s.DeferBody, visit)
	case ast.StmtReturn:
		s.ReturnValue = WalkExpr(s.ReturnValue, visit)
	case ast.StmtExpression:
		s.Expr = WalkExpr(s.Expr, visit)
	case ast.StmtVariableDeclaration:
		for i := range s.Bindings {
			s.Bindings[i].Value = WalkExpr(s.Bindings[i].Value, visit)
		}
	case ast.StmtCompound:
		for _, st := range s.Statements {
			WalkStatement(st, visit)
		}
	}
}
