package resolve

import (
	"github.com/cottand/typeflect/util"
)

// IsArray reports an array-like shape: an explicit component set at
// construction, an array-like descriptor, or, when resolution fails
// entirely, the textual array form of the identity.
func (t *Type) IsArray() bool {
	if t.IsNone() {
		return false
	}
	if t.component != nil {
		return true
	}
	if d, ok := t.Resolve(); ok {
		return d.IsArrayLike()
	}
	return t.identity.isArrayForm()
}

// ComponentType is the element type of an array-like node, or None.
func (t *Type) ComponentType() *Type {
	if t.IsNone() {
		return None
	}
	if t.component != nil {
		return t.component
	}
	if d, ok := t.Resolve(); ok {
		if elem, ok := d.ElementType(); ok {
			return t.reg.derived(elem, t)
		}
	}
	if next := t.resolveIndirect(); next != t && !next.IsNone() {
		return next.ComponentType()
	}
	return None
}

// KeyType is the key type of a key-value-like node: the first generic when
// generics are present, otherwise the declared key type. Any other shape
// yields None.
func (t *Type) KeyType() *Type {
	if t.IsNone() {
		return None
	}
	d, ok := t.Resolve()
	if !ok || !d.IsKeyValueLike() {
		return None
	}
	if generics := t.Generics(); len(generics) > 0 {
		return generics[0]
	}
	if key, ok := d.KeyType(); ok {
		return t.reg.derived(key, t)
	}
	return None
}

// AsCollection views this node as the registry's sequence capability.
func (t *Type) AsCollection() *Type {
	if t.IsNone() {
		return None
	}
	return t.As(t.reg.Sequence)
}

// AsMap views this node as the registry's key-value capability.
func (t *Type) AsMap() *Type {
	if t.IsNone() {
		return None
	}
	return t.As(t.reg.KeyValue)
}

// Supertype wraps the descriptor's declared supertype, with this node as the
// resolution context. Memoized.
func (t *Type) Supertype() *Type {
	if t.IsNone() {
		return None
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.supertypeSet {
		return t.supertype
	}
	t.supertypeSet = true
	t.supertype = None
	if d, ok := t.resolveLocked(); ok {
		if supertype, ok := d.Supertype(); ok {
			t.supertype = t.reg.derived(supertype, t)
		}
	}
	return t.supertype
}

// Interfaces wraps the descriptor's declared interfaces, each with this node
// as the resolution context. Memoized.
func (t *Type) Interfaces() []*Type {
	if t.IsNone() {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.interfacesSet {
		return t.interfaces
	}
	t.interfacesSet = true
	d, ok := t.resolveLocked()
	if !ok {
		return nil
	}
	refs := d.Interfaces()
	if len(refs) == 0 {
		return nil
	}
	interfaces := make([]*Type, len(refs))
	for i, ref := range refs {
		interfaces[i] = t.reg.derived(ref, t)
	}
	t.interfaces = interfaces
	return interfaces
}

// As returns a node that views this one as an instance of target: the node
// itself when the resolved descriptor already is the target (or the target is
// assignable from it), otherwise the first declared interface, and failing
// those the supertype chain, that reaches the target. None when no path does.
func (t *Type) As(target Identity) *Type {
	if t.IsNone() || target == NoIdentity {
		return None
	}
	viewed := t.as(target, util.NewEmptySet[Identity]())
	if viewed.IsNone() {
		logger.Debug("no hierarchy path to target", "target", string(target), "from", slogType(t))
	}
	return viewed
}

func (t *Type) as(target Identity, seen util.MSet[Identity]) *Type {
	if t.IsNone() {
		return None
	}
	if seen.Contains(t.identity) {
		return None
	}
	seen.Add(t.identity)

	d, ok := t.Resolve()
	if !ok {
		return None
	}
	if d.Identity() == target || d.Identity().Base() == target {
		return t
	}
	if targetDesc, ok := t.reg.lookup.ByIdentity(target); ok && targetDesc.AssignableFrom(d) {
		return t
	}
	for _, iface := range t.Interfaces() {
		if viewed := iface.as(target, seen); !viewed.IsNone() {
			return viewed
		}
	}
	return t.Supertype().as(target, seen)
}
