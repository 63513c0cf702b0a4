package diagnostics

import (
	"strings"
	"testing"

	"github.com/occ2swift/occ/internal/token"
)

func TestNewErrorAssignsStableID(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Lexeme: "x", Line: 3, Column: 7}
	e := NewError(ErrTypeSyntax, tok, "bad type")
	if e.ID == "" {
		t.Fatal("expected a non-empty ID")
	}
	if e.Severity != SeverityError {
		t.Fatalf("expected SeverityError, got %v", e.Severity)
	}
}

func TestNewWarningSeverity(t *testing.T) {
	w := NewWarning(ErrTypeResolutionFailed, token.Token{}, "unresolved")
	if w.Severity != SeverityWarning {
		t.Fatalf("expected SeverityWarning, got %v", w.Severity)
	}
}

func TestErrorStringIncludesFileWhenSet(t *testing.T) {
	e := NewError(ErrParseUnexpectedToken, token.Token{Line: 1, Column: 1}, "oops").WithFile("Foo.m")
	if !strings.HasPrefix(e.Error(), "Foo.m:1:1:") {
		t.Fatalf("unexpected rendering: %s", e.Error())
	}
}

func TestBagHasErrors(t *testing.T) {
	var b Bag
	b.Add(NewWarning(ErrTypeResolutionFailed, token.Token{}, "warn only"))
	if b.HasErrors() {
		t.Fatal("bag of only warnings should not report HasErrors")
	}
	b.Add(NewError(ErrInternal, token.Token{}, "boom"))
	if !b.HasErrors() {
		t.Fatal("bag with an Error-severity diagnostic should report HasErrors")
	}
}

func TestTwoErrorsGetDistinctIDs(t *testing.T) {
	a := NewError(ErrInternal, token.Token{}, "a")
	b := NewError(ErrInternal, token.Token{}, "b")
	if a.ID == b.ID {
		t.Fatal("expected distinct diagnostic IDs")
	}
}
