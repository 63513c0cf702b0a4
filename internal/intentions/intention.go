// Package intentions is the cross-file symbol table populated after
// parsing: every class, protocol, method, property, and global becomes an
// intention node carrying its access level, source reference, signature,
// and body.
package intentions

import (
	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/token"
	"github.com/occ2swift/occ/internal/types"
)

// AccessLevel is Swift's visibility lattice (§3).
type AccessLevel int

const (
	AccessPrivate AccessLevel = iota
	AccessFileprivate
	AccessInternal
	AccessPublic
	AccessOpen
)

func (a AccessLevel) String() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessFileprivate:
		return "fileprivate"
	case AccessPublic:
		return "public"
	case AccessOpen:
		return "open"
	default:
		return "internal"
	}
}

// Ownership is a property/ivar's memory-management qualifier, derived
// from `@property` attributes or an ivar's `__weak` specifier; an
// `__unsafe_unretained` ivar is recorded as strong (§4.2).
type Ownership int

const (
	OwnershipStrong Ownership = iota
	OwnershipWeak
	OwnershipUnownedUnsafe
)

// Kind is the tag of the Intention sum type (§3).
type Kind int

const (
	KindClass Kind = iota
	KindProtocol
	KindExtension
	KindEnum
	KindStruct
	KindMethod
	KindInit
	KindDeinit
	KindProperty
	KindIVar
	KindGlobalVar
	KindGlobalFunc
	KindTypedef
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindProtocol:
		return "protocol"
	case KindExtension:
		return "extension"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindMethod:
		return "method"
	case KindInit:
		return "init"
	case KindDeinit:
		return "deinit"
	case KindProperty:
		return "property"
	case KindIVar:
		return "ivar"
	case KindGlobalVar:
		return "globalVar"
	case KindGlobalFunc:
		return "globalFunc"
	case KindTypedef:
		return "typedef"
	default:
		return "unknown"
	}
}

// Intention is a single node of the graph (§3). Only the fields relevant
// to its Kind are populated; the rest stay at zero value, the same
// single-struct-with-discriminant shape used throughout internal/ast.
type Intention struct {
	Kind        Kind
	Name        string
	Access      AccessLevel
	Source      token.Token
	File        string
	Nullability NullabilityContext

	// enclosing intention, looked up by name rather than owned (§3: "weak
	// lookup (parent-by-name), not by owning pointer, to avoid cycles").
	ParentName string

	// KindClass
	Superclass string
	Protocols  []string
	IsCategory bool // true for a named `@interface C (Name)` extension merged as KindExtension

	// KindEnum
	IsOptionSet  bool
	UnderlyingTy types.SwiftType
	Cases        []EnumCase

	// KindStruct / KindTypedef
	Underlying types.SwiftType

	// KindMethod / KindInit / KindGlobalFunc
	IsStatic  bool
	IsOptional bool // protocol method declared inside an @optional section
	Signature  types.FunctionSignature
	Body       *ast.Statement

	// KindProperty
	PropertyType types.SwiftType
	Own          Ownership
	GetterName   string
	SetterName   string
	IsReadonly   bool

	// KindIVar
	IVarType types.SwiftType

	// KindGlobalVar
	VarType  types.SwiftType
	IsConst  bool
	InitExpr *ast.Expression
}

// EnumCase is one `NS_ENUM`/`NS_OPTIONS` case (name plus optional explicit
// raw value).
type EnumCase struct {
	Name     string
	RawValue *int64
}

// NullabilityContext records whether a construct was declared inside an
// `NS_ASSUME_NONNULL_BEGIN`/`END` region (§3, §4.2): "every intention
// records its context so that unqualified pointer types map to
// non-optional or implicitly-unwrapped-optional accordingly."
type NullabilityContext struct {
	AssumeNonnull bool
}
