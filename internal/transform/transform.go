// Package transform implements the Function Invocation Transformer of
// §4.5: a declarative table mapping a free-function call spelled the
// Objective-C way (CGPointMake(x, y), objc_setAssociatedObject(...), a
// C-style getter/setter pair) onto the Swift-shaped call, property read,
// or property write that replaces it at the call site.
package transform

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/token"
)

// zeroToken stands in for a source location on expressions this package
// synthesizes rather than parses; diagnostics on synthesized nodes
// degrade to "no location" rather than lying about one.
var zeroToken = token.Token{}

// StrategyKind tags the §4.5 ArgStrategy sum type.
type StrategyKind int

const (
	// StratAsIs passes the next positional source argument through
	// unchanged, advancing the cursor by one.
	StratAsIs StrategyKind = iota
	// StratFromArgIndex reaches back to a fixed source argument index
	// without advancing the cursor.
	StratFromArgIndex
	// StratFixed ignores the source entirely and synthesizes a literal
	// expression via Make.
	StratFixed
	// StratMergingArguments combines two source arguments at fixed
	// indices via Merge, advancing the cursor by two.
	StratMergingArguments
	// StratTransformed rewrites an inner strategy's produced value via
	// Transform, without changing which source arguments it consumes.
	StratTransformed
	// StratOmitIf evaluates an inner strategy and drops the resulting
	// output argument entirely if it is structurally equal to OmitWhen.
	StratOmitIf
	// StratLabeled attaches a fixed argument label to an inner
	// strategy's produced value.
	StratLabeled
)

// ArgStrategy is one output-argument recipe (§4.5). Only the fields
// relevant to Kind are read; the rest are ignored.
type ArgStrategy struct {
	Kind StrategyKind

	// StratFromArgIndex
	ArgIndex int

	// StratFixed
	Make func() *ast.Expression

	// StratMergingArguments
	MergeI, MergeJ int
	Merge          func(i, j *ast.Expression) *ast.Expression

	// StratTransformed
	Transform func(inner *ast.Expression) *ast.Expression

	// StratOmitIf
	OmitWhen func() *ast.Expression

	// StratLabeled
	Label string

	// StratTransformed / StratOmitIf / StratLabeled wrap an inner strategy.
	Inner *ArgStrategy
}

// AsIs is the identity strategy.
func AsIs() ArgStrategy { return ArgStrategy{Kind: StratAsIs} }

// FromArgIndex rereads source argument i without moving the cursor,
// for parameters reused by more than one output position.
func FromArgIndex(i int) ArgStrategy { return ArgStrategy{Kind: StratFromArgIndex, ArgIndex: i} }

// Fixed synthesizes a constant output argument, consuming no source
// argument.
func Fixed(make func() *ast.Expression) ArgStrategy { return ArgStrategy{Kind: StratFixed, Make: make} }

// MergingArguments folds two source arguments at i and j into a single
// output argument, consuming both.
func MergingArguments(i, j int, merge func(a, b *ast.Expression) *ast.Expression) ArgStrategy {
	return ArgStrategy{Kind: StratMergingArguments, MergeI: i, MergeJ: j, Merge: merge}
}

// Transformed post-processes inner's produced value.
func Transformed(transform func(inner *ast.Expression) *ast.Expression, inner ArgStrategy) ArgStrategy {
	return ArgStrategy{Kind: StratTransformed, Transform: transform, Inner: &inner}
}

// OmitIf drops inner's produced output argument entirely when it is
// structurally Equal to the expression omitWhen() builds, e.g. dropping
// an explicit NULL/nil sentinel argument that Swift's default parameter
// value already supplies.
func OmitIf(omitWhen func() *ast.Expression, inner ArgStrategy) ArgStrategy {
	return ArgStrategy{Kind: StratOmitIf, OmitWhen: omitWhen, Inner: &inner}
}

// Labeled attaches a fixed Swift argument label to inner's value.
func Labeled(label string, inner ArgStrategy) ArgStrategy {
	return ArgStrategy{Kind: StratLabeled, Label: label, Inner: &inner}
}

// consumeCount is how many positional source arguments this strategy
// advances the cursor past.
func (s ArgStrategy) consumeCount() int {
	switch s.Kind {
	case StratAsIs:
		return 1
	case StratMergingArguments:
		return 2
	case StratTransformed, StratOmitIf, StratLabeled:
		return s.Inner.consumeCount()
	default: // StratFromArgIndex, StratFixed
		return 0
	}
}

// maxIndexRead is the highest absolute source index this strategy (or one
// it wraps) reads given the cursor position it would run at — mirroring
// evalStrategy's own traversal, so RequiredArgumentCount and Apply always
// agree on which source indices a Transformer touches. ArgIndex/MergeI/
// MergeJ are themselves absolute indices into the full source slice,
// including whatever became the receiver at index 0 (pinned by
// TestApplyFirstArgBecomesReceiverWithFromArgIndex, whose fromArgIndex(2)
// and fromArgIndex(1) read source[2] and source[1] past the receiver at
// source[0]) — so asIs is the
// only strategy whose touched index isn't already explicit on the
// strategy itself, and it reads whatever the shared cursor currently
// points at.
func (s ArgStrategy) maxIndexRead(cursor int) int {
	switch s.Kind {
	case StratAsIs:
		return cursor
	case StratFromArgIndex:
		return s.ArgIndex
	case StratMergingArguments:
		if s.MergeI > s.MergeJ {
			return s.MergeI
		}
		return s.MergeJ
	case StratTransformed, StratOmitIf, StratLabeled:
		return s.Inner.maxIndexRead(cursor)
	default: // StratFixed
		return -1
	}
}

// TargetKind tags the §4.5 target sum type.
type TargetKind int

const (
	TargetMethod TargetKind = iota
	TargetPropertyGetter
	TargetPropertySetter
)

// Target is the replacement shape a Transformer rewrites a matched call
// into (§4.5).
type Target struct {
	Kind TargetKind

	// TargetMethod
	Name                    string
	FirstArgBecomesReceiver bool
	Args                    []ArgStrategy

	// TargetPropertyGetter / TargetPropertySetter
	PropertyName string
}

// Transformer is one entry of the §4.5 table: an Objective-C function
// name and the Swift shape it rewrites into.
type Transformer struct {
	ObjcFunctionName string
	Target           Target
}

// RequiredArgumentCount derives the exact source-call arity a Transformer
// matches (§4.5) by simulating the same absolute-index cursor walk Apply
// performs: the receiver, when peeled off, occupies index 0 and advances
// the cursor past it before the first Args strategy runs; each strategy
// after that either reads an index it names directly (fromArgIndex,
// mergingArguments) or the cursor's current position (asIs), and the
// cursor advances by each strategy's consumeCount (one for asIs, two for
// mergingArguments). The arity is one
// past the highest absolute index anything reads — not the sum of
// consume-counts, which undercounts whenever a fixed-index strategy
// reaches past where a purely sequential walk would have put the cursor
// (e.g. mergingArguments skipping over an intervening unused argument).
func (t Transformer) RequiredArgumentCount() int {
	switch t.Target.Kind {
	case TargetPropertyGetter:
		return 1
	case TargetPropertySetter:
		return 2
	}

	cursor := 0
	maxIndex := -1
	if t.Target.FirstArgBecomesReceiver {
		cursor = 1
		maxIndex = 0
	}
	for _, s := range t.Target.Args {
		if m := s.maxIndexRead(cursor); m > maxIndex {
			maxIndex = m
		}
		cursor += s.consumeCount()
	}
	return maxIndex + 1
}

// CanApply reports whether postfix is shaped Identifier(objcFunctionName)
// followed by exactly one call with the derived argument count (§4.5's
// matching predicate).
func (t Transformer) CanApply(postfix *ast.Expression) bool {
	if postfix == nil || postfix.Kind != ast.ExprPostfix {
		return false
	}
	if !postfix.Base.IsIdentifierNamed(t.ObjcFunctionName) {
		return false
	}
	if len(postfix.PostfixChain) != 1 {
		return false
	}
	call, ok := postfix.TrailingCall()
	if !ok {
		return false
	}
	return len(call.Arguments) == t.RequiredArgumentCount()
}

// Apply rewrites a postfix expression CanApply already approved into its
// replacement, preserving the original expression's ResolvedType (§4.5:
// "the rewritten expression carries forward the original's resolved
// type"). Callers are expected to only call Apply after CanApply.
func (t Transformer) Apply(postfix *ast.Expression) *ast.Expression {
	call, _ := postfix.TrailingCall()
	source := make([]*ast.Expression, len(call.Arguments))
	for i, a := range call.Arguments {
		source[i] = a.Value
	}
	tok := postfix.Token

	var result *ast.Expression
	switch t.Target.Kind {
	case TargetMethod:
		result = t.applyMethod(tok, source)
	case TargetPropertyGetter:
		result = ast.NewPostfix(tok, source[0], ast.MemberOp(tok, t.Target.PropertyName))
	case TargetPropertySetter:
		member := ast.NewPostfix(tok, source[0], ast.MemberOp(tok, t.Target.PropertyName))
		result = ast.NewAssignment(tok, "=", member, source[1])
	}
	result.ResolvedType = postfix.ResolvedType
	return result
}

func (t Transformer) applyMethod(tok token.Token, source []*ast.Expression) *ast.Expression {
	cursor := 0
	var receiver *ast.Expression
	if t.Target.FirstArgBecomesReceiver {
		receiver = source[0]
		cursor = 1
	}

	args := buildArgs(t.Target.Args, source, cursor)
	if receiver != nil {
		return ast.NewPostfix(tok, receiver, ast.MemberOp(tok, t.Target.Name), ast.CallOp(tok, args...))
	}
	return ast.NewPostfix(tok, ast.NewIdentifier(tok, t.Target.Name), ast.CallOp(tok, args...))
}

func buildArgs(strategies []ArgStrategy, source []*ast.Expression, cursor int) []ast.Argument {
	var out []ast.Argument
	for _, s := range strategies {
		val, label, omit := evalStrategy(s, source, &cursor)
		if omit {
			continue
		}
		out = append(out, ast.Argument{Label: label, Value: val})
	}
	return out
}

// evalStrategy produces one output argument's value and label, advancing
// *cursor per §4.5's rules: mergingArguments advances by two, an omitIf
// that drops its argument still advances the cursor (the inner strategy
// already consumed it) but contributes no output argument.
func evalStrategy(s ArgStrategy, source []*ast.Expression, cursor *int) (val *ast.Expression, label *string, omit bool) {
	switch s.Kind {
	case StratAsIs:
		val = source[*cursor]
		*cursor++
		return val, nil, false
	case StratFromArgIndex:
		return source[s.ArgIndex], nil, false
	case StratFixed:
		return s.Make(), nil, false
	case StratMergingArguments:
		val = s.Merge(source[s.MergeI], source[s.MergeJ])
		*cursor += 2
		return val, nil, false
	case StratTransformed:
		innerVal, innerLabel, innerOmit := evalStrategy(*s.Inner, source, cursor)
		if innerOmit {
			return nil, nil, true
		}
		return s.Transform(innerVal), innerLabel, false
	case StratOmitIf:
		innerVal, innerLabel, innerOmit := evalStrategy(*s.Inner, source, cursor)
		if innerOmit {
			return nil, nil, true
		}
		if innerVal.Equal(s.OmitWhen()) {
			return nil, nil, true
		}
		return innerVal, innerLabel, false
	case StratLabeled:
		innerVal, _, innerOmit := evalStrategy(*s.Inner, source, cursor)
		if innerOmit {
			return nil, nil, true
		}
		l := s.Label
		return innerVal, &l, false
	}
	return nil, nil, true
}
