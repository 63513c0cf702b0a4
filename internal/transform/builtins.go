package transform

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/token"
)

// cgPointInit builds a CGPoint(x:, y:) initializer call from two source
// expressions, the merge §4.5's CGPathMoveToPoint entry below folds the
// path's x/y arguments into.
func cgPointInit(x, y *ast.Expression) *ast.Expression {
	return ast.NewPostfix(token.Token{}, ast.NewIdentifier(token.Token{}, "CGPoint"),
		ast.CallOp(token.Token{}, ast.LabeledArg("x", x), ast.LabeledArg("y", y)))
}

// Builtins returns the default transformer table §4.5 names as worked
// examples: CoreGraphics constructors and accessors rewritten into
// Swift's member-initializer and computed-property shapes. A driver
// registers these first, then extends the table from a project's TOML
// registry (§4.7.2).
func Builtins() []Transformer {
	return []Transformer{
		{
			ObjcFunctionName: "CGPointMake",
			Target: Target{
				Kind: TargetMethod,
				Name: "CGPoint",
				Args: []ArgStrategy{
					Labeled("x", AsIs()),
					Labeled("y", AsIs()),
				},
			},
		},
		{
			ObjcFunctionName: "CGSizeMake",
			Target: Target{
				Kind: TargetMethod,
				Name: "CGSize",
				Args: []ArgStrategy{
					Labeled("width", AsIs()),
					Labeled("height", AsIs()),
				},
			},
		},
		{
			ObjcFunctionName: "CGRectMake",
			Target: Target{
				Kind: TargetMethod,
				Name: "CGRect",
				Args: []ArgStrategy{
					Labeled("x", AsIs()),
					Labeled("y", AsIs()),
					Labeled("width", AsIs()),
					Labeled("height", AsIs()),
				},
			},
		},
		{
			ObjcFunctionName: "CGRectGetMinX",
			Target:           Target{Kind: TargetPropertyGetter, PropertyName: "minX"},
		},
		{
			ObjcFunctionName: "CGRectGetMinY",
			Target:           Target{Kind: TargetPropertyGetter, PropertyName: "minY"},
		},
		{
			ObjcFunctionName: "CGRectGetWidth",
			Target:           Target{Kind: TargetPropertyGetter, PropertyName: "width"},
		},
		{
			ObjcFunctionName: "CGRectGetHeight",
			Target:           Target{Kind: TargetPropertyGetter, PropertyName: "height"},
		},
		{
			// CGPathMoveToPoint(path, transform, x, y) -> path.move(to:
			// CGPoint(x: x, y: y)). The transform argument (source index 1)
			// is deliberately unreferenced by any strategy — mergingArguments
			// reaches past it to the absolute indices 2 and 3, which is why
			// RequiredArgumentCount must derive arity from the highest index
			// actually read rather than a purely sequential consume count.
			ObjcFunctionName: "CGPathMoveToPoint",
			Target: Target{
				Kind:                    TargetMethod,
				Name:                    "move",
				FirstArgBecomesReceiver: true,
				Args: []ArgStrategy{
					Labeled("to", MergingArguments(2, 3, cgPointInit)),
				},
			},
		},
	}
}
