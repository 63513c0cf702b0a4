package emit

import (
	"strings"
	"testing"

	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/token"
	"github.com/occ2swift/occ/internal/types"
)

func ident(name string) *ast.Expression {
	return ast.NewIdentifier(token.Token{Type: token.IDENT, Lexeme: name}, name)
}

func intLit(v int64) *ast.Expression {
	return ast.NewIntLiteral(token.Token{Type: token.INT}, v)
}

func TestPrintExprUsesMinimalParentheses(t *testing.T) {
	// (1 + 2) * 3, where the teacher's own `+`/`-` vs `*`/`/` precedence
	// split forces parens only around the lower-precedence side.
	sum := ast.NewBinary(token.Token{}, "+", intLit(1), intLit(2))
	product := ast.NewBinary(token.Token{}, "*", sum, intLit(3))

	p := New()
	p.printExpr(product, 0, false)

	if got := p.String(); got != "(1 + 2) * 3" {
		t.Fatalf("expected minimal parenthesization, got %q", got)
	}
}

func TestPrintExprOmitsRedundantParentheses(t *testing.T) {
	left := ast.NewBinary(token.Token{}, "+", intLit(1), intLit(2))
	right := ast.NewBinary(token.Token{}, "+", left, intLit(3))

	p := New()
	p.printExpr(right, 0, false)

	if got := p.String(); got != "1 + 2 + 3" {
		t.Fatalf("expected no parens for same-precedence left-assoc chain, got %q", got)
	}
}

func TestVisitPostfixSpellsOptionalChainAfterFailableCast(t *testing.T) {
	targetType := types.Named("Widget")
	cast := ast.NewCast(token.Token{}, "as?", targetType, ident("thing"))
	chain := ast.NewPostfix(token.Token{}, cast,
		ast.MemberOp(token.Token{}, "name"),
		ast.MemberOp(token.Token{}, "count"),
	)

	p := New()
	p.printExpr(chain, 0, false)

	want := "thing as? Widget?.name.count"
	if got := p.String(); got != want {
		t.Fatalf("expected failable cast then optional chain, got %q want %q", got, want)
	}
}

func TestVisitPostfixPlainMemberAccessUsesDot(t *testing.T) {
	chain := ast.NewPostfix(token.Token{}, ident("self"), ast.MemberOp(token.Token{}, "name"))

	p := New()
	p.printExpr(chain, 0, false)

	if got := p.String(); got != "self.name" {
		t.Fatalf("expected plain dot access, got %q", got)
	}
}

func TestPrintStatementVariableDeclaration(t *testing.T) {
	intType := types.Named("Int")
	decl := ast.NewVariableDeclaration(token.Token{}, true, []ast.VarBinding{
		{Pattern: &ast.Pattern{Kind: ast.PatIdentifier, Name: "count"}, TypeAnnotation: &intType, Value: intLit(0)},
	})

	p := New()
	p.printStatement(decl)

	if got := strings.TrimSpace(p.String()); got != "let count: Int = 0" {
		t.Fatalf("unexpected variable declaration output: %q", got)
	}
}

func TestPrintStatementIfElse(t *testing.T) {
	cond := ast.NewBinary(token.Token{}, ">", ident("count"), intLit(0))
	then := ast.NewCompound(token.Token{}, ast.NewReturn(token.Token{}, ident("count")))
	els := ast.NewCompound(token.Token{}, ast.NewReturn(token.Token{}, intLit(0)))
	stmt := ast.NewIf(token.Token{}, cond, nil, then, els)

	p := New()
	p.printStatement(stmt)

	want := "if count > 0 {\n    return count\n} else {\n    return 0\n}\n"
	if got := p.String(); got != want {
		t.Fatalf("unexpected if/else output:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitFileRendersClassWithPropertyAndMethod(t *testing.T) {
	g := intentions.NewGraph()
	g.Add(&intentions.Intention{
		Kind: intentions.KindClass, Name: "Widget", File: "Widget.m",
		Access: intentions.AccessInternal, Superclass: "NSObject", Source: token.Token{Line: 1},
	})
	g.Add(&intentions.Intention{
		Kind: intentions.KindProperty, Name: "count", ParentName: "Widget",
		Access: intentions.AccessInternal, PropertyType: types.Named("Int"),
	})
	g.Add(&intentions.Intention{
		Kind: intentions.KindMethod, Name: "increment", ParentName: "Widget",
		Access:    intentions.AccessInternal,
		Signature: types.FunctionSignature{Name: "increment", ReturnType: types.Void()},
		Body: ast.NewCompound(token.Token{}, ast.NewExpressionStatement(token.Token{},
			ast.NewAssignment(token.Token{}, "+=",
				ast.NewPostfix(token.Token{}, ident("self"), ast.MemberOp(token.Token{}, "count")),
				intLit(1)),
		)),
	})

	out := EmitFile(g, "Widget.m")

	for _, want := range []string{
		"import Foundation",
		"class Widget: NSObject {",
		"var count: Int",
		"func increment() {",
		"self.count += 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected emitted file to contain %q, got:\n%s", want, out)
		}
	}
}

func TestEmitFileRendersOptionSetFromNSOptions(t *testing.T) {
	one := int64(1)
	two := int64(2)
	g := intentions.NewGraph()
	g.Add(&intentions.Intention{
		Kind: intentions.KindEnum, Name: "WidgetOptions", File: "Widget.m",
		IsOptionSet: true, UnderlyingTy: types.Named("Int"),
		Cases: []intentions.EnumCase{
			{Name: "none", RawValue: nil},
			{Name: "bordered", RawValue: &one},
			{Name: "rounded", RawValue: &two},
		},
	})

	out := EmitFile(g, "Widget.m")

	if !strings.Contains(out, "struct WidgetOptions: OptionSet {") {
		t.Fatalf("expected an OptionSet struct, got:\n%s", out)
	}
	if !strings.Contains(out, "static let bordered = WidgetOptions(rawValue: 1)") {
		t.Fatalf("expected a rawValue-backed static member, got:\n%s", out)
	}
}

func TestEmitFileOrdersDeclarationsBySourceLine(t *testing.T) {
	g := intentions.NewGraph()
	g.Add(&intentions.Intention{Kind: intentions.KindClass, Name: "Second", File: "Widget.m", Source: token.Token{Line: 20}})
	g.Add(&intentions.Intention{Kind: intentions.KindClass, Name: "First", File: "Widget.m", Source: token.Token{Line: 5}})

	out := EmitFile(g, "Widget.m")

	firstIdx := strings.Index(out, "class First")
	secondIdx := strings.Index(out, "class Second")
	if firstIdx == -1 || secondIdx == -1 || firstIdx > secondIdx {
		t.Fatalf("expected First before Second, got:\n%s", out)
	}
}
