// Package objcparse is the peripheral Objective-C grammar driver (§6.1):
// a hand-written scanner/parser producing a raw parse tree that
// internal/intentions walks once per file to emit intentions (§4.2). It
// is intentionally outside the core rewrite pipeline — callers that
// already have a parse tree from elsewhere may skip this package.
package objcparse

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/token"
)

// DeclKind is the tag of the top-level Decl sum type.
type DeclKind int

const (
	DeclInterface DeclKind = iota
	DeclImplementation
	DeclProtocol
	DeclEnum
	DeclStructTypedef
	DeclBlockTypedef
	DeclFuncPointerTypedef
	DeclGlobalVar
	DeclPreprocessor
)

// MemberKind distinguishes the bodies nested inside an @interface /
// @implementation / @protocol block.
type MemberKind int

const (
	MemberIVar MemberKind = iota
	MemberProperty
	MemberMethod
)

// SelectorPart is one `label:` segment of a keyword method declaration,
// or the bare method name when there are no colons.
type SelectorPart struct {
	Label     string // the keyword before ':', "" for a zero-arg selector's sole part
	ParamName string // declared parameter name, "" for zero-arg
	TypeName  string // parameter's Objective-C type spelling, "" for zero-arg
	Nullable  NullabilityKind
}

// NullabilityKind records which, if any, nullability qualifier qualified
// a type occurrence, independent of the ambient NS_ASSUME_NONNULL region
// (§4.2, §6.1).
type NullabilityKind int

const (
	NullabilityUnspecified NullabilityKind = iota
	NullabilityNonnull
	NullabilityNullable
)

// Member is one ivar/property/method entry of an interface-like block.
type Member struct {
	Kind  MemberKind
	Token token.Token

	// MemberIVar
	Visibility string // "private" (default), "protected", "public", "package"
	IsWeak     bool

	// MemberProperty
	PropertyAttrs []string
	GetterName    string
	SetterName    string
	IsReadonly    bool

	// MemberIVar / MemberProperty
	TypeName string
	Name     string
	Nullable NullabilityKind

	// MemberMethod
	IsClassMethod bool // '+' prefix
	Selector      []SelectorPart
	ReturnType    string
	ReturnNullable NullabilityKind
	IsOptional    bool // inside a protocol's @optional section
	Body          []*ast.Statement

	AssumeNonnull bool // ambient NS_ASSUME_NONNULL_BEGIN/END region at this declaration
}

// EnumCase is one `NS_ENUM`/`NS_OPTIONS` enumerator.
type EnumCase struct {
	Name        string
	HasRawValue bool
	RawValue    int64
}

// Field is one member of a `typedef struct { ... } Name;`.
type Field struct {
	TypeName string
	Name     string
}

// Decl is a single top-level declaration (§6.1's construct list).
type Decl struct {
	Kind  DeclKind
	Token token.Token
	Name  string

	// DeclInterface / DeclImplementation
	Superclass   string
	Protocols    []string
	CategoryName string // non-empty for `@interface C (Name)`
	IsClassExt   bool   // true for `@interface C ()`
	Members      []Member

	// DeclProtocol
	// (reuses Protocols for refined protocols, Members for requirements)

	// DeclEnum
	UnderlyingType string
	IsOptionSet    bool
	Cases          []EnumCase

	// DeclStructTypedef
	Fields []Field

	// DeclBlockTypedef / DeclFuncPointerTypedef
	ReturnType string
	ParamTypes []string

	// DeclGlobalVar
	VarType  string
	IsStatic bool
	IsConst  bool
	Init     []*ast.Statement // single ExpressionStatement holding the initializer, or empty
	Nullable NullabilityKind

	// DeclPreprocessor
	Text string

	AssumeNonnull bool
}

// File is the parse result of a single translation unit.
type File struct {
	Decls []Decl
}
