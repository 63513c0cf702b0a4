package overload

import (
	"testing"

	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/types"
	"github.com/occ2swift/occ/internal/typesys"
)

func intArg(v int64) Argument {
	t := types.Named("Int")
	kind := ast.LitInteger
	return Argument{Type: &t, IsLiteral: true, LiteralKind: &kind}
}

func floatArg() Argument {
	t := types.Named("Double")
	kind := ast.LitFloat
	return Argument{Type: &t, IsLiteral: true, LiteralKind: &kind}
}

func typedArg(t types.SwiftType) Argument {
	return Argument{Type: &t}
}

func missingArg() Argument { return Argument{} }

func missingIntLiteralArg() Argument {
	kind := ast.LitInteger
	return Argument{IsLiteral: true, LiteralKind: &kind}
}

func missingFloatLiteralArg() Argument {
	kind := ast.LitFloat
	return Argument{IsLiteral: true, LiteralKind: &kind}
}

func TestResolveReturnsNoneForEmptySignatureList(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	if _, ok := r.Resolve(nil, []Argument{intArg(1)}); ok {
		t.Fatal("expected no resolution for an empty signature list")
	}
}

func TestResolveRequiresMatchingArity(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Int")}}},
	}
	if _, ok := r.Resolve(sigs, []Argument{intArg(1), intArg(2)}); ok {
		t.Fatal("expected no resolution when no candidate's arity matches")
	}
}

func TestResolveExactMatchPassPicksMatchingSignature(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("String")}}},
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Int")}}},
	}
	idx, ok := r.Resolve(sigs, []Argument{typedArg(types.Named("Int"))})
	if !ok || idx != 1 {
		t.Fatalf("expected exact match to pick signature 1, got idx=%d ok=%v", idx, ok)
	}
}

func TestResolveIntegerLiteralPromotesToAnyNumericParam(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Double")}}},
	}
	idx, ok := r.Resolve(sigs, []Argument{intArg(3)})
	if !ok || idx != 0 {
		t.Fatalf("expected integer literal to promote to Double parameter, got idx=%d ok=%v", idx, ok)
	}
}

func TestResolveFloatLiteralNeverMatchesIntegerParam(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Int")}}},
	}
	if _, ok := r.Resolve(sigs, []Argument{floatArg()}); ok {
		t.Fatal("expected float literal to never match an integer parameter")
	}
}

func TestResolveDeclarationOrderBreaksTies(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Double")}}},
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Float")}}},
	}
	idx, ok := r.Resolve(sigs, []Argument{intArg(3)})
	if !ok || idx != 0 {
		t.Fatalf("expected the earlier-declared signature to win the tie, got idx=%d ok=%v", idx, ok)
	}
}

func TestResolveReturnsNoneWhenAllArgumentsMissingTypes(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Int")}}},
	}
	if _, ok := r.Resolve(sigs, []Argument{missingArg()}); ok {
		t.Fatal("expected no resolution when every argument is missing a type")
	}
}

// §8 scenario 3: {type:None, isLiteral:true, literalKind:integer} against
// [f(Int), f(Double)] resolves to index 0 — literal kind alone must admit
// and tie-break even when the argument carries no concrete type.
func TestResolveMissingTypeIntegerLiteralPicksEarlierNumericSignature(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Int")}}},
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Double")}}},
	}
	idx, ok := r.Resolve(sigs, []Argument{missingIntLiteralArg()})
	if !ok || idx != 0 {
		t.Fatalf("expected a type:None integer literal to pick signature 0, got idx=%d ok=%v", idx, ok)
	}
}

func TestResolveMissingTypeFloatLiteralNeverMatchesIntegerSignature(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Int")}}},
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Double")}}},
	}
	idx, ok := r.Resolve(sigs, []Argument{missingFloatLiteralArg()})
	if !ok || idx != 1 {
		t.Fatalf("expected a type:None float literal to pick signature 1, got idx=%d ok=%v", idx, ok)
	}
}

func TestResolveCacheReturnsConsistentResultAfterEnable(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	r.Enable()
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Int")}}},
	}
	args := []Argument{typedArg(types.Named("Int"))}

	idx1, ok1 := r.Resolve(sigs, args)
	idx2, ok2 := r.Resolve(sigs, args)
	if !ok1 || !ok2 || idx1 != idx2 {
		t.Fatalf("expected cached resolution to match live resolution, got (%d,%v) vs (%d,%v)", idx1, ok1, idx2, ok2)
	}
	r.Teardown()
}

func TestResolveCachesNegativeResult(t *testing.T) {
	r := New(typesys.New(intentions.NewGraph()))
	r.Enable()
	sigs := []types.FunctionSignature{
		{Name: "f", Parameters: []types.Parameter{{Name: "a", Type: types.Named("Int")}}},
	}
	args := []Argument{missingArg()}

	if _, ok := r.Resolve(sigs, args); ok {
		t.Fatal("expected first resolution to fail")
	}
	if _, ok := r.Resolve(sigs, args); ok {
		t.Fatal("expected cached negative resolution to also report failure")
	}
	r.Teardown()
}
