package typesys

import (
	"testing"

	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/types"
)

func newTestGraph() *intentions.Graph {
	g := intentions.NewGraph()
	g.Add(&intentions.Intention{Kind: intentions.KindClass, Name: "NSObject"})
	g.Add(&intentions.Intention{Kind: intentions.KindClass, Name: "Animal", Superclass: "NSObject", Protocols: []string{"Named"}})
	g.Add(&intentions.Intention{Kind: intentions.KindClass, Name: "Dog", Superclass: "Animal"})
	g.Add(&intentions.Intention{Kind: intentions.KindProtocol, Name: "Named"})
	g.Add(&intentions.Intention{
		Kind: intentions.KindMethod, Name: "speak", ParentName: "Animal",
		Signature: types.FunctionSignature{Name: "speak", ReturnType: types.Named("String")},
	})
	g.Add(&intentions.Intention{
		Kind: intentions.KindProperty, Name: "name", ParentName: "Animal",
		PropertyType: types.Named("String"),
	})
	return g
}

func TestIsAssignableAcceptsSubclassAndProtocol(t *testing.T) {
	ts := New(newTestGraph())
	if !ts.IsAssignable(types.Named("Dog"), types.Named("Animal")) {
		t.Fatal("expected Dog assignable to Animal via superclass chain")
	}
	if !ts.IsAssignable(types.Named("Animal"), types.Named("Named")) {
		t.Fatal("expected Animal assignable to Named via conformance")
	}
	if ts.IsAssignable(types.Named("Animal"), types.Named("Dog")) {
		t.Fatal("did not expect Animal assignable to Dog (wrong direction)")
	}
}

func TestIsAssignableWidensNumerics(t *testing.T) {
	ts := New(newTestGraph())
	if !ts.IsAssignable(types.Named("Int32"), types.Named("Double")) {
		t.Fatal("expected numeric-to-numeric assignability")
	}
}

func TestIsAssignableAnyAcceptsEverything(t *testing.T) {
	ts := New(newTestGraph())
	if !ts.IsAssignable(types.Named("Dog"), types.Named("Any")) {
		t.Fatal("expected anything assignable to Any")
	}
}

func TestTypesMatchIgnoresNullabilityOnlyWhenAsked(t *testing.T) {
	ts := New(newTestGraph())
	plain := types.Named("String")
	optional := types.Optional(plain)

	if ts.TypesMatch(plain, optional, false) {
		t.Fatal("expected strict match to distinguish optional from non-optional")
	}
	if !ts.TypesMatch(plain, optional, true) {
		t.Fatal("expected nullability-ignoring match to treat them as equal")
	}
}

func TestIsNumericClassifiesIntsAndFloats(t *testing.T) {
	ts := New(newTestGraph())
	if !ts.IsInteger(types.Named("Int")) || ts.IsFloat(types.Named("Int")) {
		t.Fatal("expected Int to classify as integer, not float")
	}
	if !ts.IsFloat(types.Named("Double")) || ts.IsInteger(types.Named("Double")) {
		t.Fatal("expected Double to classify as float, not integer")
	}
	if !ts.IsNumeric(types.Named("CGFloat")) {
		t.Fatal("expected CGFloat to classify as numeric")
	}
	if ts.IsNumeric(types.Named("String")) {
		t.Fatal("did not expect String to classify as numeric")
	}
}

func TestResolveMemberPrefersPropertyThenWalksSuperclassForMethod(t *testing.T) {
	ts := New(newTestGraph())
	in, ok := ts.ResolveMember("Dog", "name")
	if !ok || in.Kind != intentions.KindProperty {
		t.Fatalf("expected to resolve name property via superclass chain, got %+v", in)
	}
	in, ok = ts.ResolveMember("Dog", "speak")
	if !ok || in.Kind != intentions.KindMethod {
		t.Fatalf("expected to resolve speak method via superclass chain, got %+v", in)
	}
	if _, ok := ts.ResolveMember("Dog", "bark"); ok {
		t.Fatal("did not expect to resolve an undeclared member")
	}
}
