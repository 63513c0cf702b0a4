package types

import "testing"

func TestSelectorsWithoutDefaults(t *testing.T) {
	sig := FunctionSignature{
		Name: "move",
		Parameters: []Parameter{
			{Label: "to", HasLabel: true, Name: "point", Type: Named("CGPoint")},
		},
	}
	selectors := sig.Selectors()
	if len(selectors) != 1 {
		t.Fatalf("expected exactly one selector form, got %d", len(selectors))
	}
	if selectors[0].String() != "move:to" {
		t.Errorf("got %s", selectors[0].String())
	}
}

func TestSelectorsWithTrailingDefaults(t *testing.T) {
	sig := FunctionSignature{
		Name: "insert",
		Parameters: []Parameter{
			{Label: "at", HasLabel: true, Name: "index", Type: Named("Int")},
			{Label: "animated", HasLabel: true, Name: "animated", Type: Named("Bool"), HasDefault: true},
		},
	}
	selectors := sig.Selectors()
	if len(selectors) != 2 {
		t.Fatalf("expected two selector forms (full + dropped default), got %d", len(selectors))
	}
	if selectors[0].ArgumentCount() != 2 || selectors[1].ArgumentCount() != 1 {
		t.Errorf("unexpected arities: %d, %d", selectors[0].ArgumentCount(), selectors[1].ArgumentCount())
	}
}

func TestSelectorSignatureEqualityIsStructural(t *testing.T) {
	a := SelectorSignature{Keywords: []*string{strPtr("move"), strPtr("to")}}
	b := SelectorSignature{Keywords: []*string{strPtr("move"), strPtr("to")}}
	if !a.Equal(b) {
		t.Errorf("expected structurally equal selectors to compare equal")
	}
}

func strPtr(s string) *string { return &s }
