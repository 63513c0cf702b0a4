package types

import "testing"

func TestParseBasicNominal(t *testing.T) {
	typ, err := Parse("NSString")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.String() != "NSString" {
		t.Errorf("got %s, want NSString", typ.String())
	}
}

func TestParseVoid(t *testing.T) {
	typ, err := Parse("Void")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typ.IsVoid() {
		t.Errorf("Void did not parse to the empty tuple: %#v", typ)
	}
}

func TestParseOptionalCollapse(t *testing.T) {
	typ, err := Parse("Int?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.String() != "Int?" {
		t.Errorf("got %s, want Int?", typ.String())
	}
}

func TestParseSingleParenUnwraps(t *testing.T) {
	typ, err := Parse("(Int)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Kind != SwiftNominal || typ.Nominal.Name != "Int" {
		t.Errorf("expected unwrapped Int, got %#v", typ)
	}
}

func TestParseBlockType(t *testing.T) {
	// §8 scenario 7
	typ, err := Parse("(A, B) -> C?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Kind != SwiftBlock {
		t.Fatalf("expected block type, got %#v", typ)
	}
	if len(typ.BlockParams) != 2 || typ.BlockParams[0].String() != "A" || typ.BlockParams[1].String() != "B" {
		t.Errorf("unexpected params: %#v", typ.BlockParams)
	}
	want := Optional(Named("C"))
	if !typ.BlockReturn.Equal(want) {
		t.Errorf("got return %s, want %s", typ.BlockReturn.String(), want.String())
	}
}

func TestParseProtocolComposition(t *testing.T) {
	// §8 scenario 8
	typ, err := Parse("A & B & C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Kind != SwiftProtocolComposition {
		t.Fatalf("expected protocol composition, got %#v", typ)
	}
	if len(typ.Composition) != 3 {
		t.Fatalf("expected 3 members, got %d", len(typ.Composition))
	}
	if typ.String() != "A & B & C" {
		t.Errorf("got %s", typ.String())
	}
}

func TestParseLabeledBlockParamsIgnoreLabels(t *testing.T) {
	typ, err := Parse("(x: Int, outer inner: String) -> Void")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(typ.BlockParams) != 2 {
		t.Fatalf("expected 2 params, got %#v", typ.BlockParams)
	}
	if typ.BlockParams[0].String() != "Int" || typ.BlockParams[1].String() != "String" {
		t.Errorf("labels leaked into param types: %#v", typ.BlockParams)
	}
}

func TestParseEscapingAttributeSkipped(t *testing.T) {
	typ, err := Parse("(@escaping (Int) -> Void) -> Void")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(typ.BlockParams) != 1 || typ.BlockParams[0].Kind != SwiftBlock {
		t.Fatalf("expected a single block param, got %#v", typ.BlockParams)
	}
}

func TestParseEllipsisRequiresArrow(t *testing.T) {
	_, err := Parse("(Int...)")
	if err == nil {
		t.Fatalf("expected error for ellipsis without '->'")
	}
	if err.Message != "expected block type" {
		t.Errorf("got message %q, want %q", err.Message, "expected block type")
	}
}

func TestParseEllipsisMakesArray(t *testing.T) {
	typ, err := Parse("(Int...) -> Void")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(typ.BlockParams) != 1 {
		t.Fatalf("expected 1 param, got %#v", typ.BlockParams)
	}
	want := ArrayOf(Named("Int"))
	if !typ.BlockParams[0].Equal(want) {
		t.Errorf("got %s, want %s", typ.BlockParams[0].String(), want.String())
	}
}

func TestParseGenericNominal(t *testing.T) {
	typ, err := Parse("Array<String>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Nominal.Kind != NominalGeneric || len(typ.Nominal.Args) != 1 {
		t.Fatalf("expected generic with one arg, got %#v", typ.Nominal)
	}
}

func TestParseNestedQualifiedType(t *testing.T) {
	typ, err := Parse("Outer.Inner.Leaf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Kind != SwiftNested || len(typ.Nested) != 3 {
		t.Fatalf("expected 3-element nested type, got %#v", typ)
	}
	if typ.String() != "Outer.Inner.Leaf" {
		t.Errorf("got %s", typ.String())
	}
}

func TestParseMetatypeSuffixes(t *testing.T) {
	typ, err := Parse("MyClass.Type")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Kind != SwiftMetatype || typ.IsProtocolMetatype {
		t.Fatalf("expected .Type metatype, got %#v", typ)
	}

	typ2, err := Parse("MyProtocol.Protocol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ2.Kind != SwiftMetatype || !typ2.IsProtocolMetatype {
		t.Fatalf("expected .Protocol metatype, got %#v", typ2)
	}
}

func TestParseArrayAndDictionary(t *testing.T) {
	arr, err := Parse("[Int]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arr.Kind != SwiftArray {
		t.Fatalf("expected array, got %#v", arr)
	}

	dict, err := Parse("[String: Int]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dict.Kind != SwiftDictionary {
		t.Fatalf("expected dictionary, got %#v", dict)
	}
}

func TestParseDescribeRoundTrip(t *testing.T) {
	inputs := []string{
		"Int", "Int?", "Int!", "[Int]", "[String: Int]",
		"(A, B) -> C?", "A & B & C", "Array<String>", "Outer.Inner.Leaf",
		"MyClass.Type", "Void",
	}
	for _, in := range inputs {
		typ, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", in, err)
		}
		roundTripped, err2 := Parse(typ.String())
		if err2 != nil {
			t.Fatalf("Parse(describe(Parse(%q))) failed: %v", in, err2)
		}
		if !typ.Equal(roundTripped) {
			t.Errorf("round-trip mismatch for %q: %s != %s", in, typ.String(), roundTripped.String())
		}
	}
}

func TestParseErrorCarriesColumn(t *testing.T) {
	_, err := Parse("[Int")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Column == 0 {
		t.Errorf("expected a nonzero column, got %d", err.Column)
	}
}
