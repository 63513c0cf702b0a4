package intentions

import (
	"strings"

	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/objcparse"
	"github.com/occ2swift/occ/internal/types"
)

// CollectFile walks a single parsed translation unit and merges every
// construct it recognizes into g, the §4.2 mapping table applied verbatim:
// @interface/@implementation/@protocol headers, ivar visibility sections,
// @property ownership/accessor derivation, NS_ENUM/NS_OPTIONS, struct and
// block/function-pointer typedefs, static globals, and the method
// '-'/'+' instance/class split. file identifies the originating source
// for diagnostics and the driver's per-file worker partition (§5).
func CollectFile(g *Graph, f *objcparse.File, file string) {
	c := &collector{g: g, file: file}
	for _, d := range f.Decls {
		c.collectDecl(d)
	}
}

type collector struct {
	g    *Graph
	file string
}

func (c *collector) collectDecl(d objcparse.Decl) {
	switch d.Kind {
	case objcparse.DeclInterface:
		c.collectInterface(d)
	case objcparse.DeclImplementation:
		c.collectImplementation(d)
	case objcparse.DeclProtocol:
		c.collectProtocol(d)
	case objcparse.DeclEnum:
		c.collectEnum(d)
	case objcparse.DeclStructTypedef:
		c.collectStructTypedef(d)
	case objcparse.DeclBlockTypedef, objcparse.DeclFuncPointerTypedef:
		c.collectFuncLikeTypedef(d)
	case objcparse.DeclGlobalVar:
		c.collectGlobalVar(d)
	case objcparse.DeclPreprocessor:
		// Preprocessor lines are scanned but not interpreted (§1); the
		// emitter echoes them as comments straight from the parse tree,
		// so no intention is needed for them.
	}
}

// collectInterface implements the `@interface C : Base <P1,P2>` /
// `@interface C ()` / `@interface C (Name)` branch of §4.2's table.
func (c *collector) collectInterface(d objcparse.Decl) {
	switch {
	case d.CategoryName != "":
		ext := &Intention{
			Kind:        KindExtension,
			Name:        d.CategoryName,
			ParentName:  d.Name,
			Source:      d.Token,
			File:        c.file,
			Nullability: NullabilityContext{AssumeNonnull: d.AssumeNonnull},
			Protocols:   d.Protocols,
		}
		c.g.AddCategory(ext)
		c.collectMembers(d.Members, d.CategoryName, d.AssumeNonnull)
		return
	case d.IsClassExt:
		c.g.AddOrMergeClass(&Intention{
			Kind:        KindClass,
			Name:        d.Name,
			Source:      d.Token,
			File:        c.file,
			Nullability: NullabilityContext{AssumeNonnull: d.AssumeNonnull},
			Protocols:   d.Protocols,
		})
		c.collectMembers(d.Members, d.Name, d.AssumeNonnull)
		return
	default:
		c.g.AddOrMergeClass(&Intention{
			Kind:        KindClass,
			Name:        d.Name,
			Superclass:  d.Superclass,
			Protocols:   d.Protocols,
			Source:      d.Token,
			File:        c.file,
			Nullability: NullabilityContext{AssumeNonnull: d.AssumeNonnull},
		})
		c.collectMembers(d.Members, d.Name, d.AssumeNonnull)
	}
}

// collectImplementation registers the class (in case no @interface for it
// was seen, e.g. a private class defined only in its .m file) and merges
// method bodies, then applies the "nullability overrides" rule against any
// matching interface-declared method already in the graph (§4.2's final
// paragraph).
func (c *collector) collectImplementation(d objcparse.Decl) {
	if d.CategoryName != "" {
		c.collectMembers(d.Members, d.CategoryName, d.AssumeNonnull)
		return
	}
	c.g.AddOrMergeClass(&Intention{
		Kind:        KindClass,
		Name:        d.Name,
		Superclass:  d.Superclass,
		Source:      d.Token,
		File:        c.file,
		Nullability: NullabilityContext{AssumeNonnull: d.AssumeNonnull},
	})
	c.collectMembers(d.Members, d.Name, d.AssumeNonnull)
}

func (c *collector) collectProtocol(d objcparse.Decl) {
	c.g.Add(&Intention{
		Kind:        KindProtocol,
		Name:        d.Name,
		Protocols:   d.Protocols,
		Source:      d.Token,
		File:        c.file,
		Nullability: NullabilityContext{AssumeNonnull: d.AssumeNonnull},
	})
	c.collectMembers(d.Members, d.Name, d.AssumeNonnull)
}

func (c *collector) collectMembers(members []objcparse.Member, parent string, assumeNonnull bool) {
	for _, m := range members {
		switch m.Kind {
		case objcparse.MemberIVar:
			c.collectIVar(m, parent)
		case objcparse.MemberProperty:
			c.collectProperty(m, parent)
		case objcparse.MemberMethod:
			c.collectMethod(m, parent)
		}
	}
}

// collectIVar implements the "default visibility is private, `__weak` →
// ownership: weak" rule.
func (c *collector) collectIVar(m objcparse.Member, parent string) {
	access := accessFromVisibility(m.Visibility)
	own := OwnershipStrong
	if m.IsWeak {
		own = OwnershipWeak
	}
	ivarType := c.objcTypeToSwift(m.TypeName, m.Nullable, m.AssumeNonnull)
	if own == OwnershipWeak && ivarType.Kind == types.SwiftImplicitUnwrappedOptional {
		ivarType = types.Optional(*ivarType.Wrapped)
	}
	c.g.Add(&Intention{
		Kind:        KindIVar,
		Name:        m.Name,
		ParentName:  parent,
		Access:      access,
		Own:         own,
		IVarType:    ivarType,
		Source:      m.Token,
		File:        c.file,
		Nullability: NullabilityContext{AssumeNonnull: m.AssumeNonnull},
	})
}

func accessFromVisibility(v string) AccessLevel {
	switch v {
	case "public", "package":
		return AccessPublic
	case "protected":
		return AccessFileprivate
	default:
		return AccessPrivate
	}
}

// collectProperty implements "ownership derived from {weak → weak; assign
// on non-POD → unowned(unsafe); default → strong}; getters/setters from
// getter=/setter= override accessor names" (§4.2).
func (c *collector) collectProperty(m objcparse.Member, parent string) {
	own := OwnershipStrong
	hasAssign := false
	for _, attr := range m.PropertyAttrs {
		switch attr {
		case "weak":
			own = OwnershipWeak
		case "assign":
			hasAssign = true
		}
	}
	swiftType := c.objcTypeToSwift(m.TypeName, m.Nullable, m.AssumeNonnull)
	if hasAssign && !isValueObjcType(m.TypeName) {
		own = OwnershipUnownedUnsafe
	}
	if own == OwnershipWeak && swiftType.Kind == types.SwiftImplicitUnwrappedOptional {
		// ARC never leaves a weak reference implicitly-unwrapped: the
		// runtime can zero it out at any point, so it is always Optional
		// even when the declaration carries no explicit nullability
		// qualifier and sits outside an NS_ASSUME_NONNULL region.
		swiftType = types.Optional(*swiftType.Wrapped)
	}
	getter, setter := m.Name, "set"+capitalize(m.Name)
	if m.GetterName != "" {
		getter = m.GetterName
	}
	if m.SetterName != "" {
		setter = m.SetterName
	}
	c.g.Add(&Intention{
		Kind:         KindProperty,
		Name:         m.Name,
		ParentName:   parent,
		Access:       AccessPublic,
		PropertyType: swiftType,
		Own:          own,
		GetterName:   getter,
		SetterName:   setter,
		IsReadonly:   m.IsReadonly,
		Source:       m.Token,
		File:         c.file,
		Nullability:  NullabilityContext{AssumeNonnull: m.AssumeNonnull},
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// collectMethod implements the '-'/'+' instance/class split and folds the
// keyword selector parts into a FunctionSignature, joining labels with ':'
// the way the selector is spelled (§3's SelectorSignature, §4.2).
func (c *collector) collectMethod(m objcparse.Member, parent string) {
	kind := KindMethod
	name := joinedSelectorName(m.Selector)
	if name == "init" || strings.HasPrefix(name, "initWith") {
		kind = KindInit
	}
	if name == "dealloc" {
		kind = KindDeinit
	}

	var params []types.Parameter
	for _, part := range m.Selector {
		if part.TypeName == "" && part.ParamName == "" {
			continue // zero-arg selector part
		}
		params = append(params, types.Parameter{
			Label:    part.Label,
			HasLabel: part.Label != "",
			Name:     part.ParamName,
			Type:     c.objcTypeToSwift(part.TypeName, part.Nullable, m.AssumeNonnull),
		})
	}

	retType := c.objcTypeToSwift(m.ReturnType, m.ReturnNullable, m.AssumeNonnull)
	if m.ReturnType == "instancetype" {
		retType = types.Named(parent)
	}

	var body *ast.Statement
	if len(m.Body) > 0 {
		body = ast.NewCompound(m.Token, m.Body...)
	}

	in := &Intention{
		Kind:       kind,
		Name:       name,
		ParentName: parent,
		Access:     AccessPublic,
		IsStatic:   m.IsClassMethod,
		IsOptional: m.IsOptional,
		Signature: types.FunctionSignature{
			Name:       name,
			Parameters: params,
			ReturnType: retType,
			IsStatic:   m.IsClassMethod,
		},
		Body:        body,
		Source:      m.Token,
		File:        c.file,
		Nullability: NullabilityContext{AssumeNonnull: m.AssumeNonnull},
	}
	if existing, ok := c.g.Get(kind, name); ok && existing.ParentName == parent {
		MergeImplementation(existing, in)
	}
	c.g.Add(in)
}

// joinedSelectorName spells the full keyword selector with its colons,
// e.g. "setName:andCount:", matching the literal selector that
// internal/objcparse's message-send parser already joins the same way. A
// zero-argument selector (parser.go's "label alone is the whole name"
// case) carries a single part with no ParamName/TypeName and gets no
// trailing colon.
func joinedSelectorName(selector []objcparse.SelectorPart) string {
	var b strings.Builder
	for _, part := range selector {
		b.WriteString(part.Label)
		if part.ParamName != "" || part.TypeName != "" {
			b.WriteString(":")
		}
	}
	return b.String()
}

// collectEnum implements `NS_ENUM(U, N)` / `NS_OPTIONS(U, N)` →
// EnumIntention, tracking explicit raw values and leaving implicit ones
// unset for emit to auto-increment from the prior case (§4.2).
func (c *collector) collectEnum(d objcparse.Decl) {
	var cases []EnumCase
	for _, ec := range d.Cases {
		cs := EnumCase{Name: ec.Name}
		if ec.HasRawValue {
			v := ec.RawValue
			cs.RawValue = &v
		}
		cases = append(cases, cs)
	}
	c.g.Add(&Intention{
		Kind:         KindEnum,
		Name:         d.Name,
		Access:       AccessPublic,
		IsOptionSet:  d.IsOptionSet,
		UnderlyingTy: c.objcTypeToSwift(d.UnderlyingType, objcparse.NullabilityUnspecified, d.AssumeNonnull),
		Cases:        cases,
		Source:       d.Token,
		File:         c.file,
		Nullability:  NullabilityContext{AssumeNonnull: d.AssumeNonnull},
	})
}

func (c *collector) collectStructTypedef(d objcparse.Decl) {
	var fields []types.Parameter
	for _, f := range d.Fields {
		fields = append(fields, types.Parameter{Name: f.Name, Type: c.objcTypeToSwift(f.TypeName, objcparse.NullabilityUnspecified, d.AssumeNonnull)})
	}
	c.g.Add(&Intention{
		Kind:       KindStruct,
		Name:       d.Name,
		Access:     AccessPublic,
		Underlying: structShapeType(fields),
		Source:     d.Token,
		File:       c.file,
	})
}

// structShapeType models a plain-data struct typedef as a Swift tuple of
// its field types, the closest SwiftType shape available without a
// dedicated struct-of-named-fields variant (§3's sum type has none). The
// original field names are not kept: the emitter names the Swift struct's
// fields field0, field1, ... by position.
func structShapeType(fields []types.Parameter) types.SwiftType {
	elems := make([]types.SwiftType, len(fields))
	for i, f := range fields {
		elems[i] = f.Type
	}
	return types.Tuple(elems...)
}

// collectFuncLikeTypedef implements `typedef R (^Name)(P...);` /
// `typedef R (*Name)(P...);` → TypedefIntention mapping to a block/
// functionPointer SwiftType; both forms collapse to the same Swift
// `(P...) -> R` block shape since Swift has no separate function-pointer
// type (§4.2).
func (c *collector) collectFuncLikeTypedef(d objcparse.Decl) {
	params := make([]types.SwiftType, len(d.ParamTypes))
	for i, pt := range d.ParamTypes {
		params[i] = c.objcTypeToSwift(pt, objcparse.NullabilityUnspecified, d.AssumeNonnull)
	}
	ret := c.objcTypeToSwift(d.ReturnType, objcparse.NullabilityUnspecified, d.AssumeNonnull)
	c.g.Add(&Intention{
		Kind:       KindTypedef,
		Name:       d.Name,
		Access:     AccessPublic,
		Underlying: types.Block(ret, params...),
		Source:     d.Token,
		File:       c.file,
	})
}

// collectGlobalVar implements "static T k = e; at file or class scope →
// GlobalVarIntention (even if nested inside a class, if marked static)".
// Top-level (file-scope) globals parse with ParentName empty; a static
// member declared inside an @interface/@implementation block is not
// modeled by objcparse as a Member today (ObjC classes don't nest static
// var declarations inside the @interface braces the way C++ does), so
// ParentName is always file-scope here — the "even if nested" clause is
// future-proofing objcparse does not yet need to exercise.
func (c *collector) collectGlobalVar(d objcparse.Decl) {
	access := AccessInternal
	if !d.IsStatic {
		access = AccessPublic
	}
	var initExpr *ast.Expression
	if len(d.Init) == 1 && d.Init[0].Expr != nil {
		initExpr = d.Init[0].Expr
	}
	c.g.Add(&Intention{
		Kind:        KindGlobalVar,
		Name:        d.Name,
		Access:      access,
		VarType:     c.objcTypeToSwift(d.VarType, d.Nullable, d.AssumeNonnull),
		IsConst:     d.IsConst,
		InitExpr:    initExpr,
		Source:      d.Token,
		File:        c.file,
		Nullability: NullabilityContext{AssumeNonnull: d.AssumeNonnull},
	})
}

// builtinTypeNames maps common Foundation/C scalar spellings to their
// idiomatic Swift nominal names. Pointer-qualified class types (anything
// not in this table) pass through their bare class name unchanged — the
// bridging-less common case for user-defined Objective-C classes.
var builtinTypeNames = map[string]string{
	"NSString":        "String",
	"NSMutableString":  "String",
	"NSNumber":         "NSNumber",
	"NSArray":          "[Any]",
	"NSMutableArray":   "[Any]",
	"NSDictionary":     "[AnyHashable: Any]",
	"NSMutableDictionary": "[AnyHashable: Any]",
	"NSInteger":        "Int",
	"NSUInteger":       "UInt",
	"CGFloat":          "CGFloat",
	"CGPoint":          "CGPoint",
	"CGSize":           "CGSize",
	"CGRect":           "CGRect",
	"double":           "Double",
	"float":            "Float",
	"int":              "Int32",
	"long":             "Int",
	"short":            "Int16",
	"char":             "Int8",
	"unsigned":         "UInt32",
	"BOOL":             "Bool",
	"bool":             "Bool",
	"void":             "Void",
	"id":               "Any",
	"SEL":              "Selector",
	"Class":            "AnyClass",
}

var primitiveObjcTypes = map[string]bool{
	"NSInteger": true, "NSUInteger": true, "CGFloat": true, "double": true,
	"float": true, "int": true, "long": true, "short": true, "char": true,
	"unsigned": true, "BOOL": true, "bool": true,
}

func isPrimitiveObjcType(typeName string) bool {
	return primitiveObjcTypes[stripPointer(typeName)]
}

// isValueObjcType reports whether typeName names a value type passed by
// copy rather than by reference: scalar primitives plus the CoreGraphics
// structs objcTypeToSwift also carves out of isUserClassName. "assign" on
// a value-type property means ordinary copy assignment; unowned(unsafe)
// only makes sense for a dangling reference to an object.
func isValueObjcType(typeName string) bool {
	if isPrimitiveObjcType(typeName) {
		return true
	}
	switch stripPointer(typeName) {
	case "CGPoint", "CGSize", "CGRect":
		return true
	}
	return false
}

func stripPointer(typeName string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(typeName), "*"))
}

// objcTypeToSwift renders an Objective-C type spelling (as scanned by
// internal/objcparse's parseTypeSpelling — a raw joined-token string like
// "NSString *" or "NSInteger") into a SwiftType, applying the nullability
// rule of §3: a pointer type qualified `_Nullable` becomes `optional`; one
// left unqualified inside an `NS_ASSUME_NONNULL_BEGIN/END` region stays
// non-optional; one left unqualified outside such a region becomes
// `implicitUnwrappedOptional` (Objective-C's traditional "could be nil,
// caller doesn't say" pointer).
func (c *collector) objcTypeToSwift(typeName string, nullable objcparse.NullabilityKind, assumeNonnull bool) types.SwiftType {
	base := stripPointer(typeName)
	if base == "" || base == "void" {
		return types.Void()
	}
	isPointer := strings.Contains(typeName, "*") || base == "id" || base == "instancetype" || isUserClassName(base)
	swiftName, known := builtinTypeNames[base]
	if !known {
		swiftName = base
	}
	var t types.SwiftType
	if genericArg, isArrayLike := arrayElementType(base); isArrayLike {
		t = types.ArrayOf(types.Named(genericArg))
	} else {
		t = types.Named(swiftName)
	}

	if !isPointer || primitiveObjcTypes[base] {
		return t // value types are never implicitly-nil in Objective-C
	}
	switch nullable {
	case objcparse.NullabilityNullable:
		return types.Optional(t)
	case objcparse.NullabilityNonnull:
		return t
	default:
		if assumeNonnull {
			return t
		}
		return types.IUO(t)
	}
}

// arrayElementType recognizes the common `NSArray<Foo *> *` / `NSArray *`
// spellings objcparse's parseTypeSpelling collapses to a single joined
// string (it does not retain generic argument structure at scan time), so
// this is a best-effort textual match rather than a structural one.
func arrayElementType(base string) (string, bool) {
	if !strings.HasPrefix(base, "NSArray") && !strings.HasPrefix(base, "NSMutableArray") {
		return "", false
	}
	open := strings.Index(base, "<")
	if open < 0 {
		return "Any", true
	}
	close := strings.LastIndex(base, ">")
	if close < open {
		return "Any", true
	}
	inner := stripPointer(base[open+1 : close])
	if inner == "" {
		inner = "Any"
	}
	return inner, true
}

// isUserClassName reports whether base looks like an Objective-C class
// name (capitalized identifier) that isn't one of the known value-type
// spellings already handled via builtinTypeNames/primitiveObjcTypes.
func isUserClassName(base string) bool {
	if base == "" {
		return false
	}
	if primitiveObjcTypes[base] {
		return false
	}
	switch base {
	case "CGPoint", "CGSize", "CGRect":
		return false
	}
	r := base[0]
	return r >= 'A' && r <= 'Z'
}
