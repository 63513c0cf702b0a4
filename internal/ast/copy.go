package ast

// Copy produces a deep copy: structurally equal to e, preserving metadata
// (Label, Comments) but with disjoint parent pointers — mutating the copy
// never affects e and vice versa (§3, §8).
func (e *Expression) Copy() *Expression {
	if e == nil {
		return nil
	}
	c := &Expression{
		Kind:         e.Kind,
		Token:        e.Token,
		Label:        e.Label,
		Name:         e.Name,
		LiteralKind:  e.LiteralKind,
		IntValue:     e.IntValue,
		FloatValue:   e.FloatValue,
		StringValue:  e.StringValue,
		BoolValue:    e.BoolValue,
		Operator:     e.Operator,
		CastKind:     e.CastKind,
		ConstantName: e.ConstantName,
	}
	if e.ResolvedType != nil {
		t := *e.ResolvedType
		c.ResolvedType = &t
	}
	if e.Comments != nil {
		c.Comments = append([]string{}, e.Comments...)
	}
	for _, el := range e.ArrayElems {
		c.ArrayElems = append(c.ArrayElems, c.attach(el.Copy()))
	}
	for _, p := range e.DictPairs {
		c.DictPairs = append(c.DictPairs, DictPair{Key: c.attach(p.Key.Copy()), Value: c.attach(p.Value.Copy())})
	}
	c.Left = c.attach(e.Left.Copy())
	c.Right = c.attach(e.Right.Copy())
	c.Operand = c.attach(e.Operand.Copy())
	c.Base = c.attach(e.Base.Copy())
	for _, op := range e.PostfixChain {
		c.PostfixChain = append(c.PostfixChain, copyPostfixOp(c, op))
	}
	c.Condition = c.attach(e.Condition.Copy())
	c.Then = c.attach(e.Then.Copy())
	c.Else = c.attach(e.Else.Copy())
	if e.TargetType != nil {
		t := *e.TargetType
		c.TargetType = &t
	}
	c.Subject = c.attach(e.Subject.Copy())
	c.Inner = c.attach(e.Inner.Copy())
	if e.BlockParams != nil {
		c.BlockParams = append([]string{}, e.BlockParams...)
	}
	for _, s := range e.BlockBody {
		c.BlockBody = append(c.BlockBody, attachStmt(c, s.Copy()))
	}
	if e.SizeofType != nil {
		t := *e.SizeofType
		c.SizeofType = &t
	}
	c.SizeofExpr = c.attach(e.SizeofExpr.Copy())
	return c
}

func copyPostfixOp(parent *Expression, op PostfixOp) PostfixOp {
	out := PostfixOp{Kind: op.Kind, Token: op.Token, Name: op.Name}
	for _, a := range op.Arguments {
		var label *string
		if a.Label != nil {
			l := *a.Label
			label = &l
		}
		out.Arguments = append(out.Arguments, Argument{Label: label, Value: parent.attach(a.Value.Copy())})
	}
	out.Index = parent.attach(op.Index.Copy())
	return out
}
