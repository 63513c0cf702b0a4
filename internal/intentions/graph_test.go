package intentions

import (
	"testing"

	"github.com/occ2swift/occ/internal/types"
)

func TestAddOrMergeClassMergesExtensionHeader(t *testing.T) {
	g := NewGraph()
	g.AddOrMergeClass(&Intention{Kind: KindClass, Name: "Foo", Superclass: "NSObject"})
	g.AddOrMergeClass(&Intention{Kind: KindClass, Name: "Foo", Protocols: []string{"NSCopying"}})

	in, ok := g.Get(KindClass, "Foo")
	if !ok {
		t.Fatal("expected Foo to be registered")
	}
	if in.Superclass != "NSObject" {
		t.Fatalf("expected superclass to survive the merge, got %q", in.Superclass)
	}
	if len(in.Protocols) != 1 || in.Protocols[0] != "NSCopying" {
		t.Fatalf("expected merged protocol list, got %v", in.Protocols)
	}
}

func TestAddCategoryCreatesExtension(t *testing.T) {
	g := NewGraph()
	g.AddCategory(&Intention{Kind: KindClass, Name: "Foo_Private"})
	if _, ok := g.Get(KindClass, "Foo_Private"); ok {
		t.Fatal("category should not register as a class")
	}
	in, ok := g.Get(KindExtension, "Foo_Private")
	if !ok || !in.IsCategory {
		t.Fatal("expected a category extension intention")
	}
}

func TestSuperclassChainStopsAtUnknownRoot(t *testing.T) {
	g := NewGraph()
	g.Add(&Intention{Kind: KindClass, Name: "Base", Superclass: "NSObject"})
	g.Add(&Intention{Kind: KindClass, Name: "Mid", Superclass: "Base"})
	g.Add(&Intention{Kind: KindClass, Name: "Leaf", Superclass: "Mid"})

	chain := g.SuperclassChain("Leaf")
	want := []string{"Leaf", "Mid", "Base", "NSObject"}
	if len(chain) != len(want) {
		t.Fatalf("got %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("got %v, want %v", chain, want)
		}
	}
}

func TestResolveMethodWalksSuperclassChain(t *testing.T) {
	g := NewGraph()
	g.Add(&Intention{Kind: KindClass, Name: "Base", Superclass: "NSObject"})
	g.Add(&Intention{Kind: KindClass, Name: "Leaf", Superclass: "Base"})
	g.Add(&Intention{Kind: KindMethod, Name: "doThing", ParentName: "Base", Signature: types.FunctionSignature{Name: "doThing"}})

	m, ok := g.ResolveMethod("Leaf", "doThing")
	if !ok {
		t.Fatal("expected to resolve doThing via superclass chain")
	}
	if m.ParentName != "Base" {
		t.Fatalf("expected method to come from Base, got %q", m.ParentName)
	}
}

func TestConformedProtocolsIncludesRefinedProtocols(t *testing.T) {
	g := NewGraph()
	g.Add(&Intention{Kind: KindProtocol, Name: "Base"})
	g.Add(&Intention{Kind: KindProtocol, Name: "Derived", Protocols: []string{"Base"}})
	g.Add(&Intention{Kind: KindClass, Name: "C", Protocols: []string{"Derived"}})

	conformed := g.ConformedProtocols("C")
	hasBase, hasDerived := false, false
	for _, p := range conformed {
		if p == "Base" {
			hasBase = true
		}
		if p == "Derived" {
			hasDerived = true
		}
	}
	if !hasBase || !hasDerived {
		t.Fatalf("expected both Base and Derived in %v", conformed)
	}
}

func TestMergeImplementationPrefersAnnotatedInterfaceSignature(t *testing.T) {
	nullableStr := types.Optional(types.Nominal(types.TypeName("String")))
	plainStr := types.Nominal(types.TypeName("String"))

	iface := &Intention{Kind: KindMethod, Signature: types.FunctionSignature{
		Name:       "name",
		ReturnType: nullableStr,
	}}
	impl := &Intention{Kind: KindMethod, Signature: types.FunctionSignature{
		Name:       "name",
		ReturnType: plainStr,
	}}

	MergeImplementation(iface, impl)

	if impl.Signature.ReturnType.Kind != types.SwiftOptional {
		t.Fatalf("expected implementation's return type to be overridden to optional, got %v", impl.Signature.ReturnType)
	}
}
