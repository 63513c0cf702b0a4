package types

import "testing"

func TestObjcTypeNormalizationFlattensQualifiers(t *testing.T) {
	inner := Qualify(Pointer(Struct("NSString")), "_Nonnull")
	outer := Qualify(inner, "__weak")
	norm := outer.Normalized()
	if norm.Kind != ObjcQualified {
		t.Fatalf("expected qualified type, got %#v", norm)
	}
	if len(norm.Quals) != 2 {
		t.Errorf("expected flattened qualifier list of 2, got %v", norm.Quals)
	}
}

func TestObjcTypeNormalizationDropsEmptyQualifiers(t *testing.T) {
	t1 := Qualify(Struct("Foo"))
	if t1.Kind == ObjcQualified {
		t.Fatalf("Qualify with no qualifiers should not wrap: %#v", t1)
	}
}

func TestObjcTypeNormalizationIsIdempotent(t *testing.T) {
	t1 := Qualify(Struct("Foo"), "_Nonnull", "_Nonnull")
	norm := t1.Normalized()
	if !norm.Equal(norm.Normalized()) {
		t.Errorf("normalization is not idempotent")
	}
}

func TestObjcTypeEqualityIgnoresRedundantWrapping(t *testing.T) {
	a := Qualify(Qualify(Struct("Foo"), "_Nonnull"), "__weak")
	b := Qualify(Struct("Foo"), "_Nonnull", "__weak")
	if !a.Equal(b) {
		t.Errorf("expected %s to equal %s after normalization", a.String(), b.String())
	}
}
