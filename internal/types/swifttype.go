// Package types holds the value-type models of §3: SwiftType, ObjcType,
// FunctionSignature and SelectorSignature, plus the Swift-type grammar
// parser of §4.1.
package types

import "strings"

// NominalKind distinguishes a plain type name from a generic instantiation
// inside a NominalType.
type NominalKind int

const (
	NominalTypeName NominalKind = iota
	NominalGeneric
)

// NominalType is either a bare type name or a generic instantiation, the
// atoms that Nested and ProtocolComposition are built from.
type NominalType struct {
	Kind NominalKind
	Name string
	Args []SwiftType // non-empty only when Kind == NominalGeneric
}

func TypeName(name string) NominalType { return NominalType{Kind: NominalTypeName, Name: name} }

func Generic(name string, args ...SwiftType) NominalType {
	return NominalType{Kind: NominalGeneric, Name: name, Args: args}
}

func (n NominalType) Equal(o NominalType) bool {
	if n.Kind != o.Kind || n.Name != o.Name || len(n.Args) != len(o.Args) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (n NominalType) String() string {
	if n.Kind == NominalTypeName || len(n.Args) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Name + "<" + strings.Join(parts, ", ") + ">"
}

// SwiftKind is the tag of the SwiftType sum type (§3).
type SwiftKind int

const (
	SwiftNominal SwiftKind = iota
	SwiftNested
	SwiftProtocolComposition
	SwiftTuple
	SwiftBlock
	SwiftMetatype
	SwiftOptional
	SwiftImplicitUnwrappedOptional
	SwiftArray
	SwiftDictionary
	SwiftErrorType
)

// SwiftType is the closed sum type from §3. It is intentionally a single
// struct with kind-dependent fields rather than an interface hierarchy
// (§9: "do not emulate inheritance; prefer exhaustive pattern matching"),
// which also makes it trivially value-comparable for Equal/hashing.
type SwiftType struct {
	Kind SwiftKind

	Nominal NominalType   // SwiftNominal
	Nested  []NominalType // SwiftNested: Outer.Inner.Leaf, outermost first

	// SwiftProtocolComposition: A & B & C. Each element is either a plain
	// NominalType or (rare in practice, but modeled) a nested qualified
	// name, represented as a single-element Nested slice.
	Composition []ProtoCompMember

	TupleElems []SwiftType // SwiftTuple; nil/empty means the empty tuple (Void)

	BlockReturn *SwiftType  // SwiftBlock
	BlockParams []SwiftType // SwiftBlock

	Metatype *SwiftType // SwiftMetatype / also reused for .Type/.Protocol suffix
	IsProtocolMetatype bool

	Wrapped *SwiftType // SwiftOptional, SwiftImplicitUnwrappedOptional, SwiftArray

	DictKey   *SwiftType // SwiftDictionary
	DictValue *SwiftType // SwiftDictionary
}

// ProtoCompMember is one member of a protocol composition: either a bare
// nominal type or a dotted nested type.
type ProtoCompMember struct {
	Nominal *NominalType
	Nested  []NominalType
}

func (m ProtoCompMember) String() string {
	if m.Nominal != nil {
		return m.Nominal.String()
	}
	parts := make([]string, len(m.Nested))
	for i, n := range m.Nested {
		parts[i] = n.String()
	}
	return strings.Join(parts, ".")
}

func (m ProtoCompMember) Equal(o ProtoCompMember) bool {
	if (m.Nominal == nil) != (o.Nominal == nil) {
		return false
	}
	if m.Nominal != nil {
		return m.Nominal.Equal(*o.Nominal)
	}
	if len(m.Nested) != len(o.Nested) {
		return false
	}
	for i := range m.Nested {
		if !m.Nested[i].Equal(o.Nested[i]) {
			return false
		}
	}
	return true
}

// Void is the canonical empty-tuple type; `void` and `tuple(empty)` are
// interchangeable per §3's invariant, so Void() always constructs the same
// value as Tuple() with no elements.
func Void() SwiftType { return SwiftType{Kind: SwiftTuple} }

func ErrorType() SwiftType { return SwiftType{Kind: SwiftErrorType} }

func Nominal(n NominalType) SwiftType { return SwiftType{Kind: SwiftNominal, Nominal: n} }

func Named(name string) SwiftType { return Nominal(TypeName(name)) }

func Nested(path ...NominalType) SwiftType { return SwiftType{Kind: SwiftNested, Nested: path} }

func ProtocolComposition(members ...ProtoCompMember) SwiftType {
	return SwiftType{Kind: SwiftProtocolComposition, Composition: members}
}

// Tuple normalizes a 1-ary tuple to its element, per §4.1's rule that a
// parenthesized single element is not a tuple.
func Tuple(elems ...SwiftType) SwiftType {
	if len(elems) == 1 {
		return elems[0]
	}
	return SwiftType{Kind: SwiftTuple, TupleElems: elems}
}

func Block(ret SwiftType, params ...SwiftType) SwiftType {
	r := ret
	return SwiftType{Kind: SwiftBlock, BlockReturn: &r, BlockParams: params}
}

func Metatype(t SwiftType) SwiftType {
	return SwiftType{Kind: SwiftMetatype, Metatype: &t}
}

func ProtocolMetatype(t SwiftType) SwiftType {
	return SwiftType{Kind: SwiftMetatype, Metatype: &t, IsProtocolMetatype: true}
}

// Optional normalizes T?? to T? per §3's invariant that optionals do not
// nest with the same variant.
func Optional(t SwiftType) SwiftType {
	if t.Kind == SwiftOptional {
		return t
	}
	return SwiftType{Kind: SwiftOptional, Wrapped: &t}
}

func IUO(t SwiftType) SwiftType {
	if t.Kind == SwiftImplicitUnwrappedOptional {
		return t
	}
	return SwiftType{Kind: SwiftImplicitUnwrappedOptional, Wrapped: &t}
}

func ArrayOf(t SwiftType) SwiftType { return SwiftType{Kind: SwiftArray, Wrapped: &t} }

func DictionaryOf(k, v SwiftType) SwiftType {
	return SwiftType{Kind: SwiftDictionary, DictKey: &k, DictValue: &v}
}

// IsVoid reports whether t is the empty tuple / Void, regardless of which
// constructor produced it.
func (t SwiftType) IsVoid() bool { return t.Kind == SwiftTuple && len(t.TupleElems) == 0 }

// IsErrorType reports whether type resolution gave up on this position.
func (t SwiftType) IsErrorType() bool { return t.Kind == SwiftErrorType }

// DeepUnwrapped strips outer optional/IUO wrapping repeatedly (§4.3).
func (t SwiftType) DeepUnwrapped() SwiftType {
	for t.Kind == SwiftOptional || t.Kind == SwiftImplicitUnwrappedOptional {
		t = *t.Wrapped
	}
	return t
}

// Equal is structural value equality, ignoring nothing (nullability-aware
// comparisons go through typesys.TypesMatch instead).
func (t SwiftType) Equal(o SwiftType) bool {
	if t.Kind != o.Kind {
		// void and empty tuple are the same value already (same Kind), so
		// no special case is needed here.
		return false
	}
	switch t.Kind {
	case SwiftNominal:
		return t.Nominal.Equal(o.Nominal)
	case SwiftNested:
		if len(t.Nested) != len(o.Nested) {
			return false
		}
		for i := range t.Nested {
			if !t.Nested[i].Equal(o.Nested[i]) {
				return false
			}
		}
		return true
	case SwiftProtocolComposition:
		if len(t.Composition) != len(o.Composition) {
			return false
		}
		for i := range t.Composition {
			if !t.Composition[i].Equal(o.Composition[i]) {
				return false
			}
		}
		return true
	case SwiftTuple:
		if len(t.TupleElems) != len(o.TupleElems) {
			return false
		}
		for i := range t.TupleElems {
			if !t.TupleElems[i].Equal(o.TupleElems[i]) {
				return false
			}
		}
		return true
	case SwiftBlock:
		if len(t.BlockParams) != len(o.BlockParams) {
			return false
		}
		if !t.BlockReturn.Equal(*o.BlockReturn) {
			return false
		}
		for i := range t.BlockParams {
			if !t.BlockParams[i].Equal(o.BlockParams[i]) {
				return false
			}
		}
		return true
	case SwiftMetatype:
		return t.IsProtocolMetatype == o.IsProtocolMetatype && t.Metatype.Equal(*o.Metatype)
	case SwiftOptional, SwiftImplicitUnwrappedOptional, SwiftArray:
		return t.Wrapped.Equal(*o.Wrapped)
	case SwiftDictionary:
		return t.DictKey.Equal(*o.DictKey) && t.DictValue.Equal(*o.DictValue)
	case SwiftErrorType:
		return true
	}
	return false
}

// Hash produces a string suitable as a map key; used by the overload
// resolver's cache (§4.4) which keys on (signatures, arguments).
func (t SwiftType) Hash() string { return t.String() }

func (t SwiftType) String() string {
	switch t.Kind {
	case SwiftNominal:
		return t.Nominal.String()
	case SwiftNested:
		parts := make([]string, len(t.Nested))
		for i, n := range t.Nested {
			parts[i] = n.String()
		}
		return strings.Join(parts, ".")
	case SwiftProtocolComposition:
		parts := make([]string, len(t.Composition))
		for i, m := range t.Composition {
			parts[i] = m.String()
		}
		return strings.Join(parts, " & ")
	case SwiftTuple:
		if len(t.TupleElems) == 0 {
			return "()"
		}
		parts := make([]string, len(t.TupleElems))
		for i, e := range t.TupleElems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case SwiftBlock:
		parts := make([]string, len(t.BlockParams))
		for i, p := range t.BlockParams {
			parts[i] = p.String()
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + t.BlockReturn.String()
	case SwiftMetatype:
		if t.IsProtocolMetatype {
			return t.Metatype.String() + ".Protocol"
		}
		return t.Metatype.String() + ".Type"
	case SwiftOptional:
		return t.Wrapped.String() + "?"
	case SwiftImplicitUnwrappedOptional:
		return t.Wrapped.String() + "!"
	case SwiftArray:
		return "[" + t.Wrapped.String() + "]"
	case SwiftDictionary:
		return "[" + t.DictKey.String() + ": " + t.DictValue.String() + "]"
	case SwiftErrorType:
		return "<error>"
	}
	return "<unknown>"
}
