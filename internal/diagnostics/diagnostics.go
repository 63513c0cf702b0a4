// Package diagnostics is the shared error/warning type every stage of the
// pipeline appends to, from the type-grammar scanner through the
// expression-pass fixpoint driver.
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/occ2swift/occ/internal/token"
)

// ErrorCode identifies a diagnostic's origin and kind independent of its
// rendered message, so tooling (the LSP-shaped driver, golden fixtures)
// can switch on it without string matching.
type ErrorCode string

const (
	// Objective-C grammar driver.
	ErrScanUnterminatedString ErrorCode = "OCC-S001"
	ErrScanUnexpectedChar     ErrorCode = "OCC-S002"
	ErrParseUnexpectedToken   ErrorCode = "OCC-P001"
	ErrParseExpectedType      ErrorCode = "OCC-P002"

	// Swift type grammar.
	ErrTypeSyntax ErrorCode = "OCC-T001"

	// Intention collection (§4.2).
	ErrDuplicateSymbol  ErrorCode = "OCC-I001"
	ErrUnknownSuperclass ErrorCode = "OCC-I002"

	// Type resolution / overload resolution (§4.3, §4.4, §7).
	ErrTypeResolutionFailed ErrorCode = "OCC-R001"
	ErrNoApplicableOverload ErrorCode = "OCC-R002"
	ErrAmbiguousOverload    ErrorCode = "OCC-R003"

	// Expression pass pipeline (§4.6, §7).
	ErrFixpointExceeded ErrorCode = "OCC-X001"

	// Internal / unreachable (§7's "Internal" violation class).
	ErrInternal ErrorCode = "OCC-INT"
)

// Severity is the diagnostic's urgency, matching §7's Error/Warning split:
// TypeResolutionWarning is a Warning, everything blocking translation-unit
// completion is an Error.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Error is a single diagnostic: a stable identifier, a severity, the
// source position it concerns, and a human message. The ID is assigned
// once at construction so the same logical diagnostic keeps its identity
// across re-renders (CLI, LSP-shaped JSON, golden-fixture comparison).
type Error struct {
	ID       string
	Code     ErrorCode
	Severity Severity
	File     string
	Token    token.Token
	Message  string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: [%s] %s", e.File, e.Token.Line, e.Token.Column, e.Severity, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: [%s] %s", e.Token.Line, e.Token.Column, e.Severity, e.Code, e.Message)
}

// NewError builds an error-severity diagnostic. format/args are passed
// through fmt.Sprintf, mirroring the teacher's printf-style diagnostic
// constructors.
func NewError(code ErrorCode, tok token.Token, format string, args ...any) *Error {
	return &Error{ID: uuid.NewString(), Code: code, Severity: SeverityError, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// NewWarning builds a warning-severity diagnostic, the kind §7 issues for
// an unresolvable-but-not-fatal type (e.g. an unknown Objective-C type
// name left as `Any`).
func NewWarning(code ErrorCode, tok token.Token, format string, args ...any) *Error {
	return &Error{ID: uuid.NewString(), Code: code, Severity: SeverityWarning, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// WithFile returns a copy of e annotated with the originating file path.
// The intention-collection and pass stages only know the current token's
// position; the driver fills in File once it knows which translation unit
// is being processed (§5's per-file worker boundary).
func (e *Error) WithFile(file string) *Error {
	c := *e
	c.File = file
	return &c
}

// Bag collects diagnostics for one translation unit, preserving emission
// order as the teacher's own parser does by appending to a plain slice.
type Bag struct {
	Errors []*Error
}

func (b *Bag) Add(err *Error) {
	b.Errors = append(b.Errors, err)
}

func (b *Bag) AddAll(errs []*Error) {
	b.Errors = append(b.Errors, errs...)
}

// HasErrors reports whether the bag contains at least one Error-severity
// diagnostic (warnings alone do not fail a translation unit, per §7).
func (b *Bag) HasErrors() bool {
	for _, e := range b.Errors {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
