package resolve

// Provider yields the nominal type declared at a specific origin (a field, a
// parameter, or a method return) so that a node can be built from a
// declaration site before any value of that type exists.
//
// Providers take part in registry keys by reference: construct one per
// declaration site and reuse it. Implementations must be pointer types.
type Provider interface {
	// TypeIdentity returns the declared type at the origin, if known.
	TypeIdentity() (Identity, bool)
}

// DeclaredAt is a Provider for a named declaration site.
type DeclaredAt struct {
	// Origin describes the site, e.g. "field users" or "return of findAll".
	Origin string
	// Declared is the type written at the site. It may name a type variable
	// of the enclosing declaration.
	Declared Identity
}

var _ Provider = (*DeclaredAt)(nil)

func (p *DeclaredAt) TypeIdentity() (Identity, bool) {
	return p.Declared, p.Declared != NoIdentity
}

// VariableResolver maps a type-variable reference to a previously resolved
// type from an enclosing generic context. *Type implements it, so a node can
// act as the resolution context for the nodes derived from it.
//
// Implementations must be pointer types, for the same reason as Provider.
type VariableResolver interface {
	ResolveVariable(variable Identity) (*Type, bool)
}

// Valued is anything that can report its own nominal type, the way values do
// in the host environment.
type Valued interface {
	TypeIdentity() Identity
}
