package intentions

import "sort"

// Graph is the cross-file symbol table (§2, §3). It is built up mutably
// while files are collected, then frozen and shared read-only across the
// translation-unit worker pool (§5).
type Graph struct {
	byKind map[Kind]map[string]*Intention
	// order preserves first-insertion order per kind, so lookups that must
	// pick a winner among several identically-named entries (there should
	// never be more than one after merging) are deterministic.
	order map[Kind][]string
}

func NewGraph() *Graph {
	return &Graph{
		byKind: make(map[Kind]map[string]*Intention),
		order:  make(map[Kind][]string),
	}
}

// Add inserts intention, keyed by (Kind, Name). Callers that need the
// interface/implementation merge rule of §4.2 should use AddOrMergeClass
// instead for KindClass.
func (g *Graph) Add(in *Intention) {
	m, ok := g.byKind[in.Kind]
	if !ok {
		m = make(map[string]*Intention)
		g.byKind[in.Kind] = m
	}
	if _, exists := m[in.Name]; !exists {
		g.order[in.Kind] = append(g.order[in.Kind], in.Name)
	}
	m[in.Name] = in
}

// Get looks up a single intention by kind and name.
func (g *Graph) Get(kind Kind, name string) (*Intention, bool) {
	m, ok := g.byKind[kind]
	if !ok {
		return nil, false
	}
	in, ok := m[name]
	return in, ok
}

// All returns every intention of a given kind, in insertion order.
func (g *Graph) All(kind Kind) []*Intention {
	names := g.order[kind]
	out := make([]*Intention, 0, len(names))
	for _, n := range names {
		out = append(out, g.byKind[kind][n])
	}
	return out
}

// Children returns every intention (of any kind) whose ParentName matches
// name, the "weak lookup (parent-by-name)" relationship of §3.
func (g *Graph) Children(parentName string) []*Intention {
	var out []*Intention
	for kind, names := range g.order {
		for _, n := range names {
			in := g.byKind[kind][n]
			if in.ParentName == parentName {
				out = append(out, in)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source.Line < out[j].Source.Line })
	return out
}

// Methods returns the KindMethod/KindInit/KindDeinit intentions whose
// ParentName is className, the method-resolution-order lookup unit used
// by internal/typesys's hierarchical member resolution (§4.3).
func (g *Graph) Methods(className string) []*Intention {
	var out []*Intention
	for _, kind := range []Kind{KindMethod, KindInit, KindDeinit} {
		for _, in := range g.All(kind) {
			if in.ParentName == className {
				out = append(out, in)
			}
		}
	}
	return out
}

// Properties returns the KindProperty intentions belonging to className.
func (g *Graph) Properties(className string) []*Intention {
	var out []*Intention
	for _, in := range g.All(KindProperty) {
		if in.ParentName == className {
			out = append(out, in)
		}
	}
	return out
}

// SuperclassChain walks from className up through Superclass links,
// stopping at the first name with no registered ClassIntention (§4.3:
// "hierarchical lookup (class → superclass → conformed protocols)").
// className itself is included first.
func (g *Graph) SuperclassChain(className string) []string {
	chain := []string{className}
	seen := map[string]bool{className: true}
	cur := className
	for {
		in, ok := g.Get(KindClass, cur)
		if !ok || in.Superclass == "" || seen[in.Superclass] {
			return chain
		}
		chain = append(chain, in.Superclass)
		seen[in.Superclass] = true
		cur = in.Superclass
	}
}

// ConformedProtocols returns the transitive set of protocol names
// conformed to by className and everything in its superclass chain,
// including protocols those protocols themselves declare conformance to.
func (g *Graph) ConformedProtocols(className string) []string {
	var out []string
	seen := map[string]bool{}
	var visitProtocol func(name string)
	visitProtocol = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
		if p, ok := g.Get(KindProtocol, name); ok {
			for _, sup := range p.Protocols {
				visitProtocol(sup)
			}
		}
	}
	for _, cls := range g.SuperclassChain(className) {
		if c, ok := g.Get(KindClass, cls); ok {
			for _, p := range c.Protocols {
				visitProtocol(p)
			}
		}
	}
	return out
}
