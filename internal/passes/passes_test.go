package passes

import (
	"testing"

	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/overload"
	"github.com/occ2swift/occ/internal/transform"
	"github.com/occ2swift/occ/internal/types"
	"github.com/occ2swift/occ/internal/typesys"
	"github.com/occ2swift/occ/internal/token"
)

func newCtx(g *intentions.Graph, className string) *Context {
	ts := typesys.New(g)
	return NewContext(g, ts, overload.New(ts), transform.NewRegistry(), "test.m", className)
}

func ident(name string) *ast.Expression {
	return ast.NewIdentifier(token.Token{Type: token.IDENT, Lexeme: name}, name)
}

func intLit(v int64) *ast.Expression {
	return ast.NewIntLiteral(token.Token{Type: token.INT}, v)
}

func TestTypeAnnotationPassAnnotatesLiterals(t *testing.T) {
	ctx := newCtx(intentions.NewGraph(), "")
	body := ast.NewExpressionStatement(token.Token{}, intLit(1))

	if !(TypeAnnotationPass{}).Run(ctx, body) {
		t.Fatal("expected a change annotating the literal")
	}
	if body.Expr.ResolvedType == nil || body.Expr.ResolvedType.Nominal.Name != "Int" {
		t.Fatalf("expected Int, got %v", body.Expr.ResolvedType)
	}
}

func TestTypeAnnotationPassBindsVariableDeclarationLocal(t *testing.T) {
	ctx := newCtx(intentions.NewGraph(), "")
	decl := ast.NewVariableDeclaration(token.Token{}, true, []ast.VarBinding{
		{Pattern: &ast.Pattern{Kind: ast.PatIdentifier, Name: "x"}, Value: intLit(5)},
	})
	use := ast.NewExpressionStatement(token.Token{}, ident("x"))
	body := ast.NewCompound(token.Token{}, decl, use)

	pass := TypeAnnotationPass{}
	for i := 0; i < 2 && pass.Run(ctx, body); i++ {
	}

	if use.Expr.ResolvedType == nil || use.Expr.ResolvedType.Nominal.Name != "Int" {
		t.Fatalf("expected the later use of x to inherit Int from its declaration, got %v", use.Expr.ResolvedType)
	}
}

func TestTypeAnnotationPassResolvesSelf(t *testing.T) {
	ctx := newCtx(intentions.NewGraph(), "Widget")
	body := ast.NewExpressionStatement(token.Token{}, ident("self"))

	(TypeAnnotationPass{}).Run(ctx, body)

	if body.Expr.ResolvedType == nil || body.Expr.ResolvedType.Nominal.Name != "Widget" {
		t.Fatalf("expected self to resolve to the enclosing class, got %v", body.Expr.ResolvedType)
	}
}

func TestTypeAnnotationPassFoldsPropertyMemberAccess(t *testing.T) {
	g := intentions.NewGraph()
	g.Add(&intentions.Intention{Kind: intentions.KindClass, Name: "Widget"})
	g.Add(&intentions.Intention{Kind: intentions.KindProperty, Name: "size", ParentName: "Widget", PropertyType: types.Named("Int")})
	ctx := newCtx(g, "Widget")

	expr := ast.NewPostfix(token.Token{}, ident("self"), ast.MemberOp(token.Token{}, "size"))
	body := ast.NewExpressionStatement(token.Token{}, expr)

	pass := TypeAnnotationPass{}
	for i := 0; i < 2 && pass.Run(ctx, body); i++ {
	}

	if expr.ResolvedType == nil || expr.ResolvedType.Nominal.Name != "Int" {
		t.Fatalf("expected self.size to resolve to Int, got %v", expr.ResolvedType)
	}
}

func TestMemberResolutionPassWarnsOnceOnUnresolvedMember(t *testing.T) {
	g := intentions.NewGraph()
	g.Add(&intentions.Intention{Kind: intentions.KindClass, Name: "Widget"})
	ctx := newCtx(g, "Widget")

	expr := ast.NewPostfix(token.Token{}, ident("self"), ast.MemberOp(token.Token{}, "missing"))
	named := types.Named("Widget")
	expr.Base.ResolvedType = &named
	body := ast.NewExpressionStatement(token.Token{}, expr)

	pass := MemberResolutionPass{}
	pass.Run(ctx, body)
	pass.Run(ctx, body)

	if len(ctx.Diagnostics.Errors) != 1 {
		t.Fatalf("expected exactly one warning across two runs, got %d", len(ctx.Diagnostics.Errors))
	}
}

func TestOverloadResolutionPassNarrowsToMatchingSignature(t *testing.T) {
	g := intentions.NewGraph()
	g.Add(&intentions.Intention{Kind: intentions.KindClass, Name: "Widget"})
	g.Add(&intentions.Intention{Kind: intentions.KindMethod, Name: "scale", ParentName: "Widget", Signature: types.FunctionSignature{
		Name:       "scale",
		Parameters: []types.Parameter{{Name: "factor", Type: types.Named("Double")}},
		ReturnType: types.Named("Widget"),
	}})
	g.Add(&intentions.Intention{Kind: intentions.KindMethod, Name: "scale", ParentName: "Widget", Signature: types.FunctionSignature{
		Name:       "scale",
		Parameters: []types.Parameter{{Name: "factor", Type: types.Named("Int")}},
		ReturnType: types.Named("Int"),
	}})
	ctx := newCtx(g, "Widget")

	recv := ident("self")
	named := types.Named("Widget")
	recv.ResolvedType = &named
	argExpr := intLit(2)
	intType := types.Named("Int")
	argExpr.ResolvedType = &intType
	call := ast.NewPostfix(token.Token{}, recv,
		ast.MemberOp(token.Token{}, "scale"),
		ast.CallOp(token.Token{}, ast.Arg(argExpr)),
	)
	body := ast.NewExpressionStatement(token.Token{}, call)

	if !(OverloadResolutionPass{}).Run(ctx, body) {
		t.Fatal("expected the pass to narrow the call's resolved type")
	}
	if call.ResolvedType == nil || call.ResolvedType.Nominal.Name != "Int" {
		t.Fatalf("expected the Int-overload's return type to win, got %v", call.ResolvedType)
	}
}

func TestTransformPassRewritesRegisteredBuiltin(t *testing.T) {
	ctx := newCtx(intentions.NewGraph(), "")
	for _, b := range transform.Builtins() {
		ctx.Transforms.Register(b)
	}

	call := ast.NewPostfix(token.Token{}, ident("CGPointMake"),
		ast.CallOp(token.Token{}, ast.Arg(intLit(1)), ast.Arg(intLit(2))),
	)
	body := ast.NewExpressionStatement(token.Token{}, call)

	if !(TransformPass{}).Run(ctx, body) {
		t.Fatal("expected the CGPointMake call to be rewritten")
	}
	if !body.Expr.Base.IsIdentifierNamed("CGPoint") {
		t.Fatalf("expected the rewritten call's base to be CGPoint, got %v", body.Expr.Base)
	}
}

func TestIdiomCleanupPassUnwrapsParenthesizedIdentifier(t *testing.T) {
	ctx := newCtx(intentions.NewGraph(), "")
	body := ast.NewExpressionStatement(token.Token{}, ast.NewParenthesized(token.Token{}, ident("x")))

	if !(IdiomCleanupPass{}).Run(ctx, body) {
		t.Fatal("expected the parenthesized identifier to be unwrapped")
	}
	if body.Expr.Kind != ast.ExprIdentifier {
		t.Fatalf("expected a bare identifier, got kind %v", body.Expr.Kind)
	}
}

func TestIdiomCleanupPassLeavesAmbiguousGroupingAlone(t *testing.T) {
	ctx := newCtx(intentions.NewGraph(), "")
	binary := ast.NewBinary(token.Token{}, "+", intLit(1), intLit(2))
	body := ast.NewExpressionStatement(token.Token{}, ast.NewParenthesized(token.Token{}, binary))

	if (IdiomCleanupPass{}).Run(ctx, body) {
		t.Fatal("did not expect a parenthesized binary expression to be unwrapped")
	}
	if body.Expr.Kind != ast.ExprParenthesized {
		t.Fatal("expected the parentheses around a binary expression to survive")
	}
}

func TestPipelineRunsToFixpointAndRewritesABuiltinCall(t *testing.T) {
	g := intentions.NewGraph()
	ctx := newCtx(g, "")
	for _, b := range transform.Builtins() {
		ctx.Transforms.Register(b)
	}

	call := ast.NewPostfix(token.Token{}, ident("CGSizeMake"),
		ast.CallOp(token.Token{}, ast.Arg(intLit(3)), ast.Arg(intLit(4))),
	)
	body := ast.NewExpressionStatement(token.Token{}, call)

	NewPipeline(8, DefaultPasses()...).Run(ctx, body)

	if !body.Expr.Base.IsIdentifierNamed("CGSize") {
		t.Fatalf("expected the pipeline to rewrite CGSizeMake, got %v", body.Expr.Base)
	}
	for _, e := range ctx.Diagnostics.Errors {
		if e.Code == "OCC-X001" {
			t.Fatalf("did not expect the pipeline to exceed its fixpoint bound: %v", e)
		}
	}
}
