package resolve

import (
	"strings"
)

// Identity names a nominal type. It is opaque to the engine except for two
// textual conventions of the host environment: a trailing "[]" denotes an
// array form, and an angle-bracket suffix carries generic arguments
// (e.g. "collections.List<lang.String>"). Identities are erasure-stable:
// the same declaration always yields the same Identity.
type Identity string

const (
	// NoIdentity is the zero Identity; it never resolves.
	NoIdentity Identity = ""
	// Untyped is the host's "any" placeholder. It resolves to nothing but is
	// not a type variable either.
	Untyped Identity = "*"
)

func (id Identity) IsUntyped() bool { return id == Untyped }

// Base strips a generic-argument suffix, if any.
func (id Identity) Base() Identity {
	if i := strings.IndexByte(string(id), '<'); i >= 0 {
		return id[:i]
	}
	return id
}

// SimpleName is the last dot-separated segment of the base name.
func (id Identity) SimpleName() string {
	base := string(id.Base())
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[i+1:]
	}
	return base
}

func (id Identity) isArrayForm() bool {
	return strings.HasSuffix(string(id), "[]")
}

// arrayElem is the element identity of an array form ("X[]" -> "X").
func (id Identity) arrayElem() Identity {
	return id[:len(id)-2]
}

// Descriptor holds the declaration-level facts about a type identity, as
// reported by the host's type-declaration lookup.
type Descriptor interface {
	Identity() Identity
	SimpleName() string
	QualifiedName() string

	// GenericParameters are the declared type-parameter names.
	GenericParameters() []Identity
	// GenericArguments are the declared generic arguments, ordered to match
	// GenericParameters. For an open generic these are the parameter names
	// themselves.
	GenericArguments() []Identity

	Supertype() (Identity, bool)
	Interfaces() []Identity
	Mixins() []Identity

	IsArrayLike() bool
	IsKeyValueLike() bool
	ElementType() (Identity, bool)
	KeyType() (Identity, bool)

	// AssignableFrom reports the nominal is-a relation: whether a value
	// declared as other can stand where this descriptor's type is expected.
	AssignableFrom(other Descriptor) bool
}

// Lookup is the type-declaration service the engine resolves against.
// Implementations must tolerate identities they do not know and return
// ok=false rather than failing.
type Lookup interface {
	ByIdentity(id Identity) (Descriptor, bool)
	ByQualifiedName(name string) (Descriptor, bool)
}

// arrayDescriptor is the last-resort descriptor synthesized directly from an
// array-form identity when the lookup has no declaration for it.
type arrayDescriptor struct {
	id   Identity
	elem Identity
}

var _ Descriptor = arrayDescriptor{}

func (d arrayDescriptor) Identity() Identity            { return d.id }
func (d arrayDescriptor) SimpleName() string            { return d.id.SimpleName() + "[]" }
func (d arrayDescriptor) QualifiedName() string         { return string(d.id) }
func (d arrayDescriptor) GenericParameters() []Identity { return nil }
func (d arrayDescriptor) GenericArguments() []Identity  { return nil }
func (d arrayDescriptor) Supertype() (Identity, bool)   { return NoIdentity, false }
func (d arrayDescriptor) Interfaces() []Identity        { return nil }
func (d arrayDescriptor) Mixins() []Identity            { return nil }
func (d arrayDescriptor) IsArrayLike() bool             { return true }
func (d arrayDescriptor) IsKeyValueLike() bool          { return false }
func (d arrayDescriptor) ElementType() (Identity, bool) { return d.elem, d.elem != NoIdentity }
func (d arrayDescriptor) KeyType() (Identity, bool)     { return NoIdentity, false }

func (d arrayDescriptor) AssignableFrom(other Descriptor) bool {
	// array element invariance is enforced by the node-level assignability
	// walk; at the descriptor level only the exact same array form matches
	return other != nil && other.Identity() == d.id
}
