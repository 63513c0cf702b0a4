package intentions

// ResolveMethod finds the nearest KindMethod (or KindInit/KindDeinit)
// intention named selectorName reachable from className via the
// superclass chain, the hierarchical lookup of §4.3. It does not consult
// conformed protocols — protocol methods have no body to resolve a call
// against, only a declared requirement.
func (g *Graph) ResolveMethod(className, selectorName string) (*Intention, bool) {
	for _, cls := range g.SuperclassChain(className) {
		for _, m := range g.Methods(cls) {
			if m.Signature.Name == selectorName {
				return m, true
			}
		}
	}
	return nil, false
}

// ResolveProperty finds the nearest KindProperty intention named
// propName, walking className's superclass chain.
func (g *Graph) ResolveProperty(className, propName string) (*Intention, bool) {
	for _, cls := range g.SuperclassChain(className) {
		for _, p := range g.Properties(cls) {
			if p.Name == propName {
				return p, true
			}
		}
	}
	return nil, false
}

// ProtocolRequiresMethod reports whether name is a (non-optional or
// optional, caller's choice) required selector of protocolName or any
// protocol it refines.
func (g *Graph) ProtocolRequiresMethod(protocolName, selectorName string) (*Intention, bool) {
	for _, m := range g.Methods(protocolName) {
		if m.Signature.Name == selectorName {
			return m, true
		}
	}
	if p, ok := g.Get(KindProtocol, protocolName); ok {
		for _, sup := range p.Protocols {
			if m, ok := g.ProtocolRequiresMethod(sup, selectorName); ok {
				return m, true
			}
		}
	}
	return nil, false
}
