package resolve

import (
	"fmt"
	"hash/fnv"
	"io"
	"strings"
	"sync"

	"github.com/cottand/typeflect/util"
	"github.com/hashicorp/go-set/v3"
)

// Type is a resolvable, navigable view of a nominal type: an identity plus
// the context needed to resolve the type variables that appear in its
// declaration. Nodes are created by Registry factories, interned, and
// logically immutable: the lazy fields below only cache derived values, and
// recomputing any of them from the same identity yields an equal result.
type Type struct {
	reg      *Registry
	identity Identity

	// component is set only for nodes built from an element type; such a
	// node is an array regardless of what the lookup says
	component *Type
	// provider supplies an alternate identity during resolution; used only
	// for declaration-site nodes
	provider Provider
	// resolver is the enclosing generic context
	resolver VariableResolver
	// raw nodes ignore generics entirely
	raw bool
	// fixed is a non-nil explicit generic argument list; it bypasses
	// declaration-based generic discovery
	fixed []*Type

	mu            sync.Mutex
	descriptor    Descriptor
	descriptorSet bool
	supertype     *Type
	supertypeSet  bool
	interfaces    []*Type
	interfacesSet bool
	generics      []*Type
	genericsSet   bool
	unresolvable  *bool
}

var _ VariableResolver = (*Type)(nil)
var _ set.Hasher[uint64] = (*Type)(nil)
var _ fmt.Stringer = (*Type)(nil)

// None is the absorbing sentinel for "no type could be resolved". Every
// navigation method on None yields None, false, or an empty result.
var None = &Type{}

func (t *Type) IsNone() bool { return t == nil || t == None }

// Equal implements the node identity invariant: same identity and component,
// same provider and resolver by reference, same rawness and the same explicit
// generics. Interned nodes that are Equal are also the same pointer.
func (t *Type) Equal(other *Type) bool {
	if t.IsNone() || other.IsNone() {
		return t.IsNone() && other.IsNone()
	}
	return t.identity == other.identity &&
		t.raw == other.raw &&
		t.provider == other.provider &&
		t.resolver == other.resolver &&
		(t.component == nil) == (other.component == nil) &&
		(t.component == nil || t.component.Equal(other.component)) &&
		util.SlicesEquivalent[uint64](t.fixed, other.fixed)
}

// Hash is a structural hash consistent with Equal.
func (t *Type) Hash() uint64 {
	if t.IsNone() {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.identity))
	if t.raw {
		_, _ = h.Write([]byte{'r'})
	}
	if t.component != nil {
		writeHash(h, t.component.Hash())
	}
	for _, g := range t.fixed {
		writeHash(h, g.Hash())
	}
	if t.provider != nil {
		_, _ = fmt.Fprintf(h, "%p", t.provider)
	}
	if t.resolver != nil {
		_, _ = fmt.Fprintf(h, "%p", t.resolver)
	}
	return h.Sum64()
}

func writeHash(h io.Writer, v uint64) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}

// Equal compares two hashable values structurally. We compare hashes rather
// than fields so that values of different concrete types can still be
// equivalent.
func Equal[H, HH set.Hasher[uint64]](this H, other HH) bool {
	return this.Hash() == other.Hash()
}

// Identity is this node's own identity, before any resolution. None and
// unresolved declaration-site nodes report NoIdentity.
func (t *Type) Identity() Identity {
	if t.IsNone() {
		return NoIdentity
	}
	return t.identity
}

// Resolve returns the structural descriptor for this node, computing it at
// most once. Resolution asks the lookup for the identity first, then follows
// provider and variable-resolver indirection, then falls back to a direct
// construction from the identity's textual form.
func (t *Type) Resolve() (Descriptor, bool) {
	if t.IsNone() {
		return nil, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resolveLocked()
}

// ResolveOr is Resolve with a caller-supplied fallback, which may be nil if
// the caller accepts that.
func (t *Type) ResolveOr(fallback Descriptor) Descriptor {
	if d, ok := t.Resolve(); ok {
		return d
	}
	return fallback
}

func (t *Type) resolveLocked() (Descriptor, bool) {
	if t.descriptorSet {
		return t.descriptor, t.descriptor != nil
	}
	t.descriptorSet = true
	if t.identity != NoIdentity {
		if d, ok := t.reg.lookup.ByIdentity(t.identity); ok {
			t.descriptor = d
			return d, true
		}
	}
	if next := t.resolveIndirect(); next != t && !next.IsNone() {
		if d, ok := next.Resolve(); ok {
			t.descriptor = d
			return d, true
		}
	}
	// direct construction from the identity as a last resort
	if t.component != nil {
		t.descriptor = arrayDescriptor{id: t.identity, elem: t.component.identity}
		return t.descriptor, true
	}
	if t.identity.isArrayForm() {
		t.descriptor = arrayDescriptor{id: t.identity, elem: t.identity.arrayElem()}
		return t.descriptor, true
	}
	logger.Debug("identity did not resolve", "identity", string(t.identity))
	return nil, false
}

// resolveIndirect performs a single step of indirection: the provider's
// declared type wins, then the enclosing resolver's substitution for a
// variable, then the component of a textual array form. The receiver itself
// is returned when no indirection applies.
func (t *Type) resolveIndirect() *Type {
	if t.IsNone() {
		return t
	}
	if t.provider != nil {
		if id, ok := t.provider.TypeIdentity(); ok {
			return t.reg.derived(id, t.resolver)
		}
	}
	if t.resolver != nil && t.identity != NoIdentity {
		if sub, ok := t.resolver.ResolveVariable(t.identity); ok && !sub.IsNone() {
			return sub
		}
	}
	if t.component == nil && t.identity.isArrayForm() {
		return t.reg.ForArrayOf(t.reg.derived(t.identity.arrayElem(), t.resolver))
	}
	return t
}

// ResolveVariable makes the node its own generic context: a variable named
// like one of this node's declared parameters resolves to the matching
// generic argument, and anything else is delegated to the enclosing resolver.
func (t *Type) ResolveVariable(variable Identity) (*Type, bool) {
	if t.IsNone() || variable == NoIdentity {
		return None, false
	}
	if d, ok := t.Resolve(); ok {
		params := d.GenericParameters()
		generics := t.Generics()
		for i, param := range params {
			if param != variable || i >= len(generics) {
				continue
			}
			g := generics[i]
			// a variable bound to itself (the open generic) or to the
			// untyped placeholder is not a substitution. Checked by
			// identity, not by resolving g: g may be this very node's
			// own argument, mid-resolution.
			if g.IsNone() || g.identity == variable || g.identity == param || g.identity.IsUntyped() {
				continue
			}
			return g, true
		}
	}
	if t.resolver != nil {
		return t.resolver.ResolveVariable(variable)
	}
	return None, false
}

// isPlaceholder reports whether this node stands for missing information: the
// untyped placeholder, or a type variable no enclosing context can resolve.
func (t *Type) isPlaceholder() bool {
	if t.IsNone() {
		return true
	}
	if t.identity.IsUntyped() {
		return true
	}
	_, ok := t.Resolve()
	return !ok
}

// String renders the node the way the host writes type references: the bare
// simple name, an angle-bracket suffix when generics are present, "[]" for
// arrays, and "?" for None.
func (t *Type) String() string {
	if t.IsNone() {
		return "?"
	}
	if t.IsArray() {
		return t.ComponentType().String() + "[]"
	}
	name := t.identity.SimpleName()
	if name == "" {
		// declaration-site nodes carry no identity of their own; render
		// whatever they resolved to
		d, ok := t.Resolve()
		if !ok {
			return "?"
		}
		name = d.SimpleName()
	}
	if t.raw {
		return name
	}
	generics := t.Generics()
	if len(generics) == 0 {
		return name
	}
	parts := make([]string, len(generics))
	for i, g := range generics {
		parts[i] = g.String()
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}
