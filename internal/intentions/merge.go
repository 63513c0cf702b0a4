package intentions

import "github.com/occ2swift/occ/internal/types"

// AddOrMergeClass implements §4.2's `@interface C : Base <P1, P2>` /
// `@interface C ()` merge rule: a class-extension header (no category
// name) merges into the existing ClassIntention of the same name rather
// than creating a new one.
func (g *Graph) AddOrMergeClass(in *Intention) {
	existing, ok := g.Get(KindClass, in.Name)
	if !ok {
		g.Add(in)
		return
	}
	if in.Superclass != "" {
		existing.Superclass = in.Superclass
	}
	existing.Protocols = mergeStrings(existing.Protocols, in.Protocols)
	if !existing.Nullability.AssumeNonnull {
		existing.Nullability = in.Nullability
	}
}

// AddCategory implements `@interface C (Name)` — a named category becomes
// its own ExtensionIntention rather than merging into the class, per §4.2.
func (g *Graph) AddCategory(in *Intention) {
	in.Kind = KindExtension
	in.IsCategory = true
	g.Add(in)
}

func mergeStrings(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// MergeImplementation applies §4.2's "nullability overrides" rule: when
// the same selector is declared in both an @interface and its
// @implementation, and the interface's declaration carries nullability
// annotations that the implementation's redeclaration lacks, the
// annotated (interface) signature wins. impl is mutated in place to take
// the interface's parameter/return types; impl keeps its own body.
func MergeImplementation(iface, impl *Intention) {
	if iface == nil || impl == nil || iface.Kind != impl.Kind {
		return
	}
	if hasNullabilityAnnotations(iface.Signature) && !hasNullabilityAnnotations(impl.Signature) {
		impl.Signature.ReturnType = iface.Signature.ReturnType
		for i := range impl.Signature.Parameters {
			if i < len(iface.Signature.Parameters) {
				impl.Signature.Parameters[i].Type = iface.Signature.Parameters[i].Type
			}
		}
	}
}

// hasNullabilityAnnotations reports whether any parameter or the return
// type of sig is wrapped in optional/implicitly-unwrapped-optional. A
// `_Nonnull` qualifier or an NS_ASSUME_NONNULL region yields a plain type,
// so a signature annotated only that way is not counted as annotated
// (§4.2).
func hasNullabilityAnnotations(sig types.FunctionSignature) bool {
	if isOptionalLike(sig.ReturnType) {
		return true
	}
	for _, p := range sig.Parameters {
		if isOptionalLike(p.Type) {
			return true
		}
	}
	return false
}

func isOptionalLike(t types.SwiftType) bool {
	return t.Kind == types.SwiftOptional || t.Kind == types.SwiftImplicitUnwrappedOptional
}
