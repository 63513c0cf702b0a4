package emit

import (
	"sort"
	"strconv"

	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/types"
)

// topLevelKinds is the set of intention kinds that own a translation
// unit's source-level declarations, per §3's sum type; methods,
// initializers, deinitializers, properties, and ivars are only ever
// reached through their owner's ParentName.
var topLevelKinds = []intentions.Kind{
	intentions.KindClass,
	intentions.KindProtocol,
	intentions.KindExtension,
	intentions.KindEnum,
	intentions.KindStruct,
	intentions.KindTypedef,
	intentions.KindGlobalVar,
	intentions.KindGlobalFunc,
}

// EmitFile renders every top-level declaration the graph attributes to
// file, in source order, as a complete Swift source file.
func EmitFile(g *intentions.Graph, file string) string {
	var decls []*intentions.Intention
	for _, kind := range topLevelKinds {
		for _, in := range g.All(kind) {
			if in.File == file && (in.ParentName == "" || in.Kind == intentions.KindExtension) {
				decls = append(decls, in)
			}
		}
	}
	sort.SliceStable(decls, func(i, j int) bool { return decls[i].Source.Line < decls[j].Source.Line })

	p := New()
	p.write("import Foundation")
	p.writeln()
	for _, in := range decls {
		p.writeln()
		p.emitTopLevel(g, in)
		p.writeln()
	}
	return p.String()
}

func accessPrefix(a intentions.AccessLevel) string {
	if a == intentions.AccessInternal {
		return ""
	}
	return a.String() + " "
}

func (p *Printer) emitTopLevel(g *intentions.Graph, in *intentions.Intention) {
	switch in.Kind {
	case intentions.KindClass:
		p.emitClass(g, in)
	case intentions.KindProtocol:
		p.emitProtocol(g, in)
	case intentions.KindExtension:
		p.emitExtension(g, in)
	case intentions.KindEnum:
		p.emitEnum(in)
	case intentions.KindStruct:
		p.emitStruct(in)
	case intentions.KindTypedef:
		p.write("typealias " + in.Name + " = " + p.typeString(&in.Underlying))
	case intentions.KindGlobalVar:
		p.emitGlobalVar(in)
	case intentions.KindGlobalFunc:
		p.emitFunc(in)
	}
}

func inheritanceClause(superclass string, protocols []string) string {
	parts := append([]string{}, protocols...)
	if superclass != "" {
		parts = append([]string{superclass}, parts...)
	}
	if len(parts) == 0 {
		return ""
	}
	out := ": "
	for i, part := range parts {
		if i > 0 {
			out += ", "
		}
		out += part
	}
	return out
}

func (p *Printer) emitClass(g *intentions.Graph, in *intentions.Intention) {
	p.write(accessPrefix(in.Access))
	p.write("class " + in.Name)
	p.write(inheritanceClause(in.Superclass, in.Protocols))
	p.write(" {")
	p.writeln()
	p.indent++
	p.emitMembers(g, in.Name)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) emitProtocol(g *intentions.Graph, in *intentions.Intention) {
	p.write(accessPrefix(in.Access))
	p.write("protocol " + in.Name)
	p.write(inheritanceClause("", in.Protocols))
	p.write(" {")
	p.writeln()
	p.indent++
	for _, m := range g.Methods(in.Name) {
		p.writeIndent()
		p.emitRequirement(m)
		p.writeln()
	}
	for _, prop := range g.Properties(in.Name) {
		p.writeIndent()
		p.emitPropertyRequirement(prop)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// emitExtension renders a merged Objective-C category as a Swift
// extension on its original class.
func (p *Printer) emitExtension(g *intentions.Graph, in *intentions.Intention) {
	target := in.ParentName
	if target == "" {
		target = in.Name
	}
	p.write("extension " + target)
	p.write(inheritanceClause("", in.Protocols))
	p.write(" {")
	p.writeln()
	p.indent++
	p.emitMembers(g, in.Name)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) emitMembers(g *intentions.Graph, className string) {
	first := true
	for _, prop := range g.Properties(className) {
		if !first {
			p.writeln()
		}
		first = false
		p.writeIndent()
		p.emitProperty(prop)
		p.writeln()
	}
	for _, m := range g.Methods(className) {
		if !first {
			p.writeln()
		}
		first = false
		p.writeIndent()
		p.emitMethod(m)
		p.writeln()
	}
}

func (p *Printer) emitProperty(in *intentions.Intention) {
	p.write(accessPrefix(in.Access))
	keyword := "var"
	if in.Own == intentions.OwnershipWeak {
		p.write("weak ")
	} else if in.IsReadonly {
		keyword = "let"
	}
	if in.Own == intentions.OwnershipUnownedUnsafe {
		p.write("unowned(unsafe) ")
	}
	p.write(keyword + " " + in.Name + ": " + p.typeString(&in.PropertyType))
}

func (p *Printer) emitPropertyRequirement(in *intentions.Intention) {
	p.write("var " + in.Name + ": " + p.typeString(&in.PropertyType) + " { get")
	if !in.IsReadonly {
		p.write(" set")
	}
	p.write(" }")
}

func (p *Printer) emitRequirement(in *intentions.Intention) {
	p.write("func ")
	p.emitSignature(in.Signature)
}

func (p *Printer) emitMethod(in *intentions.Intention) {
	p.write(accessPrefix(in.Access))
	if in.Signature.IsStatic {
		p.write("static ")
	}
	if in.Signature.IsMutating {
		p.write("mutating ")
	}
	switch in.Kind {
	case intentions.KindInit:
		p.write("init")
		p.emitParameterList(in.Signature.Parameters)
	case intentions.KindDeinit:
		p.write("deinit")
	default:
		p.write("func ")
		p.emitSignature(in.Signature)
	}
	p.write(" ")
	if in.Body != nil {
		p.printBlock(in.Body)
	} else {
		p.write("{}")
	}
}

func (p *Printer) emitFunc(in *intentions.Intention) {
	p.write(accessPrefix(in.Access))
	p.write("func ")
	p.emitSignature(in.Signature)
	p.write(" ")
	if in.Body != nil {
		p.printBlock(in.Body)
	} else {
		p.write("{}")
	}
}

func (p *Printer) emitSignature(sig types.FunctionSignature) {
	p.write(sig.Name)
	p.emitParameterList(sig.Parameters)
	if !sig.ReturnType.IsVoid() {
		p.write(" -> ")
		p.write(p.typeString(&sig.ReturnType))
	}
}

// emitParameterList writes a signature's parameter list. Parameter has
// no slot for a default value's literal (HasDefault only records that
// one exists, for Selectors()'s arity-dropping rule), so a defaulted
// parameter is rendered without `= ...` — the caller-visible selector
// forms still come out right, only the default's spelling is lost.
func (p *Printer) emitParameterList(params []types.Parameter) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		switch {
		case !param.HasLabel:
			p.write("_ " + param.Name)
		case param.Label == param.Name:
			p.write(param.Name)
		default:
			p.write(param.Label + " " + param.Name)
		}
		p.write(": ")
		p.write(p.typeString(&param.Type))
	}
	p.write(")")
}

func (p *Printer) emitGlobalVar(in *intentions.Intention) {
	p.write(accessPrefix(in.Access))
	if in.IsConst {
		p.write("let ")
	} else {
		p.write("var ")
	}
	p.write(in.Name + ": " + p.typeString(&in.VarType))
	if in.InitExpr != nil {
		p.write(" = ")
		p.printExprOrPlaceholder(in.InitExpr)
	}
}

func (p *Printer) emitEnum(in *intentions.Intention) {
	if in.IsOptionSet {
		p.emitOptionSet(in)
		return
	}
	p.write(accessPrefix(in.Access))
	p.write("enum " + in.Name + ": " + p.typeString(&in.UnderlyingTy) + " {")
	p.writeln()
	p.indent++
	for _, c := range in.Cases {
		p.writeIndent()
		p.write("case " + c.Name)
		if c.RawValue != nil {
			p.write(" = ")
			p.write(intLiteral(*c.RawValue))
		}
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// emitOptionSet renders an `NS_OPTIONS` enum as a Swift OptionSet
// struct, the idiomatic target for a bitmask type rather than a Swift
// enum (whose cases can't be OR'd together).
func (p *Printer) emitOptionSet(in *intentions.Intention) {
	p.write(accessPrefix(in.Access))
	p.write("struct " + in.Name + ": OptionSet {")
	p.writeln()
	p.indent++
	p.writeIndent()
	p.write("let rawValue: " + p.typeString(&in.UnderlyingTy))
	p.writeln()
	next := int64(0)
	for _, c := range in.Cases {
		p.writeIndent()
		p.write("static let " + c.Name + " = " + in.Name + "(rawValue: ")
		if c.RawValue != nil {
			next = *c.RawValue
		}
		p.write(intLiteral(next))
		next++
		p.write(")")
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// emitStruct renders a plain C struct. The intention graph models a
// struct's shape as a single Underlying SwiftType rather than a named
// field list (§3 keeps KindStruct minimal until a translation unit
// actually needs struct bodies); a tuple Underlying becomes one field
// per element, anything else becomes a single wrapped rawValue field.
func (p *Printer) emitStruct(in *intentions.Intention) {
	p.write(accessPrefix(in.Access))
	p.write("struct " + in.Name + " {")
	p.writeln()
	p.indent++
	if in.Underlying.Kind == types.SwiftTuple && len(in.Underlying.TupleElems) > 0 {
		for i, elem := range in.Underlying.TupleElems {
			p.writeIndent()
			p.write("var field" + intLiteral(int64(i)) + ": " + p.typeString(&elem))
			p.writeln()
		}
	} else {
		p.writeIndent()
		p.write("var rawValue: " + p.typeString(&in.Underlying))
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func intLiteral(v int64) string {
	return strconv.FormatInt(v, 10)
}
