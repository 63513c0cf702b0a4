package types

import (
	"strconv"
	"strings"
)

// ObjcKind is the tag of the ObjcType sum type (§3).
type ObjcKind int

const (
	ObjcID ObjcKind = iota
	ObjcInstancetype
	ObjcStruct
	ObjcVoid
	ObjcPointer
	ObjcGeneric
	ObjcQualified
	ObjcSpecified
	ObjcBlockType
	ObjcFunctionPointer
	ObjcFixedArray
)

// ObjcType mirrors SwiftType's single-struct sum-type shape (§9).
type ObjcType struct {
	Kind ObjcKind

	Protocols []string // ObjcID

	Name string // ObjcStruct, ObjcGeneric, ObjcBlockType/ObjcFunctionPointer (may be "")

	Pointee *ObjcType // ObjcPointer

	GenericArgs []ObjcType // ObjcGeneric

	Qualified *ObjcType // ObjcQualified
	Quals     []string  // ObjcQualified: _Nonnull, _Nullable, __weak, etc.

	Specified *ObjcType // ObjcSpecified
	Specs     []string  // ObjcSpecified: const, static, __block, etc.

	Return *ObjcType  // ObjcBlockType / ObjcFunctionPointer
	Params []ObjcType // ObjcBlockType / ObjcFunctionPointer

	Elem   *ObjcType // ObjcFixedArray
	Length int       // ObjcFixedArray
}

func ID(protocols ...string) ObjcType  { return ObjcType{Kind: ObjcID, Protocols: protocols} }
func Instancetype() ObjcType           { return ObjcType{Kind: ObjcInstancetype} }
func Struct(name string) ObjcType      { return ObjcType{Kind: ObjcStruct, Name: name} }
func ObjcVoidType() ObjcType           { return ObjcType{Kind: ObjcVoid} }
func Pointer(to ObjcType) ObjcType     { return ObjcType{Kind: ObjcPointer, Pointee: &to} }
func ObjcGenericType(name string, args ...ObjcType) ObjcType {
	return ObjcType{Kind: ObjcGeneric, Name: name, GenericArgs: args}
}

func BlockType(name string, ret ObjcType, params ...ObjcType) ObjcType {
	return ObjcType{Kind: ObjcBlockType, Name: name, Return: &ret, Params: params}
}

func FunctionPointer(name string, ret ObjcType, params ...ObjcType) ObjcType {
	return ObjcType{Kind: ObjcFunctionPointer, Name: name, Return: &ret, Params: params}
}

func FixedArray(elem ObjcType, length int) ObjcType {
	return ObjcType{Kind: ObjcFixedArray, Elem: &elem, Length: length}
}

// Qualify attaches nullability/ownership qualifiers, flattening any
// already-qualified inner type per §3's normalization rule.
func Qualify(t ObjcType, quals ...string) ObjcType {
	if len(quals) == 0 {
		return t
	}
	if t.Kind == ObjcQualified {
		merged := append(append([]string{}, t.Quals...), quals...)
		return ObjcType{Kind: ObjcQualified, Qualified: t.Qualified, Quals: merged}
	}
	return ObjcType{Kind: ObjcQualified, Qualified: &t, Quals: quals}
}

// Specify attaches storage/const specifiers, flattening nested specified
// chains the same way Qualify flattens qualified chains.
func Specify(t ObjcType, specs ...string) ObjcType {
	if len(specs) == 0 {
		return t
	}
	if t.Kind == ObjcSpecified {
		merged := append(append([]string{}, specs...), t.Specs...)
		return ObjcType{Kind: ObjcSpecified, Specified: t.Specified, Specs: merged}
	}
	return ObjcType{Kind: ObjcSpecified, Specified: &t, Specs: specs}
}

// Normalized flattens nested qualified/specified chains and drops empty
// qualifier/specifier lists, per §3's invariant that a normalized ObjcType
// has none of either.
func (t ObjcType) Normalized() ObjcType {
	switch t.Kind {
	case ObjcQualified:
		inner := t.Qualified.Normalized()
		quals := dedupNonEmpty(t.Quals)
		if len(quals) == 0 {
			return inner
		}
		if inner.Kind == ObjcQualified {
			return ObjcType{Kind: ObjcQualified, Qualified: inner.Qualified, Quals: dedupNonEmpty(append(append([]string{}, inner.Quals...), quals...))}
		}
		return ObjcType{Kind: ObjcQualified, Qualified: &inner, Quals: quals}
	case ObjcSpecified:
		inner := t.Specified.Normalized()
		specs := dedupNonEmpty(t.Specs)
		if len(specs) == 0 {
			return inner
		}
		if inner.Kind == ObjcSpecified {
			return ObjcType{Kind: ObjcSpecified, Specified: inner.Specified, Specs: dedupNonEmpty(append(append([]string{}, specs...), inner.Specs...))}
		}
		return ObjcType{Kind: ObjcSpecified, Specified: &inner, Specs: specs}
	case ObjcPointer:
		inner := t.Pointee.Normalized()
		return ObjcType{Kind: ObjcPointer, Pointee: &inner}
	case ObjcGeneric:
		args := make([]ObjcType, len(t.GenericArgs))
		for i, a := range t.GenericArgs {
			args[i] = a.Normalized()
		}
		return ObjcType{Kind: ObjcGeneric, Name: t.Name, GenericArgs: args}
	case ObjcFixedArray:
		elem := t.Elem.Normalized()
		return ObjcType{Kind: ObjcFixedArray, Elem: &elem, Length: t.Length}
	default:
		return t
	}
}

func dedupNonEmpty(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (t ObjcType) Equal(o ObjcType) bool {
	a, b := t.Normalized(), o.Normalized()
	return a.equalRaw(b)
}

func (t ObjcType) equalRaw(o ObjcType) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case ObjcID:
		return strings.Join(t.Protocols, ",") == strings.Join(o.Protocols, ",")
	case ObjcInstancetype, ObjcVoid:
		return true
	case ObjcStruct:
		return t.Name == o.Name
	case ObjcPointer:
		return t.Pointee.equalRaw(*o.Pointee)
	case ObjcGeneric:
		if t.Name != o.Name || len(t.GenericArgs) != len(o.GenericArgs) {
			return false
		}
		for i := range t.GenericArgs {
			if !t.GenericArgs[i].equalRaw(o.GenericArgs[i]) {
				return false
			}
		}
		return true
	case ObjcQualified:
		return strings.Join(t.Quals, ",") == strings.Join(o.Quals, ",") && t.Qualified.equalRaw(*o.Qualified)
	case ObjcSpecified:
		return strings.Join(t.Specs, ",") == strings.Join(o.Specs, ",") && t.Specified.equalRaw(*o.Specified)
	case ObjcBlockType, ObjcFunctionPointer:
		if t.Name != o.Name || len(t.Params) != len(o.Params) {
			return false
		}
		if !t.Return.equalRaw(*o.Return) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].equalRaw(o.Params[i]) {
				return false
			}
		}
		return true
	case ObjcFixedArray:
		return t.Length == o.Length && t.Elem.equalRaw(*o.Elem)
	}
	return false
}

func (t ObjcType) String() string {
	switch t.Kind {
	case ObjcID:
		if len(t.Protocols) == 0 {
			return "id"
		}
		return "id<" + strings.Join(t.Protocols, ", ") + ">"
	case ObjcInstancetype:
		return "instancetype"
	case ObjcStruct:
		return t.Name
	case ObjcVoid:
		return "void"
	case ObjcPointer:
		return t.Pointee.String() + " *"
	case ObjcGeneric:
		parts := make([]string, len(t.GenericArgs))
		for i, a := range t.GenericArgs {
			parts[i] = a.String()
		}
		return t.Name + "<" + strings.Join(parts, ", ") + ">"
	case ObjcQualified:
		return strings.Join(t.Quals, " ") + " " + t.Qualified.String()
	case ObjcSpecified:
		return strings.Join(t.Specs, " ") + " " + t.Specified.String()
	case ObjcBlockType:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return t.Return.String() + " (^" + t.Name + ")(" + strings.Join(parts, ", ") + ")"
	case ObjcFunctionPointer:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return t.Return.String() + " (*" + t.Name + ")(" + strings.Join(parts, ", ") + ")"
	case ObjcFixedArray:
		return t.Elem.String() + "[" + strconv.Itoa(t.Length) + "]"
	}
	return "<unknown objc type>"
}
