package resolve

import (
	"hash/fnv"

	"github.com/benbjohnson/immutable"
)

// Generics returns the ordered generic-argument nodes of this type. An
// explicit argument list set at construction is returned verbatim; otherwise
// the declared arguments are looked up and wrapped with this node as their
// resolution context, so a declared argument that is itself a type variable
// can be resolved against this node's own substitutions.
//
// Callers must not mutate the returned slice.
func (t *Type) Generics() []*Type {
	if t.IsNone() || t.raw {
		return nil
	}
	if t.fixed != nil {
		return t.fixed
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.genericsSet {
		return t.generics
	}
	t.genericsSet = true
	d, ok := t.resolveLocked()
	if !ok {
		return nil
	}
	args := d.GenericArguments()
	if len(args) == 0 {
		return nil
	}
	generics := make([]*Type, len(args))
	for i, arg := range args {
		generics[i] = t.reg.derived(arg, t)
	}
	t.generics = generics
	return generics
}

// Generic indexes into Generics. With no path it returns the first generic,
// or None when there is none. Each further index steps one nesting level
// down; any out-of-range index yields None.
func (t *Type) Generic(path ...int) *Type {
	if t.IsNone() {
		return None
	}
	if len(path) == 0 {
		if generics := t.Generics(); len(generics) > 0 {
			return generics[0]
		}
		return None
	}
	current := t
	for _, i := range path {
		generics := current.Generics()
		if i < 0 || i >= len(generics) {
			return None
		}
		current = generics[i]
	}
	return current
}

func (t *Type) HasGenerics() bool {
	return len(t.Generics()) > 0
}

// HasResolvableGenerics reports whether at least one generic argument is
// neither an unresolvable type variable nor the untyped placeholder.
func (t *Type) HasResolvableGenerics() bool {
	for _, g := range t.Generics() {
		if !g.isPlaceholder() {
			return true
		}
	}
	return false
}

// HasUnresolvableGenerics walks every generic argument reachable through this
// node's generics, supertype and declared interfaces, and reports whether any
// of them is unresolvable. The walk threads an immutable visited set through
// the recursion; a revisited identity short-circuits to false so recursive
// generic declarations terminate.
func (t *Type) HasUnresolvableGenerics() bool {
	if t.IsNone() {
		return false
	}
	t.mu.Lock()
	if t.unresolvable != nil {
		v := *t.unresolvable
		t.mu.Unlock()
		return v
	}
	t.mu.Unlock()

	v := t.hasUnresolvableGenerics(immutable.NewSet[Identity](identityHasher{}))

	t.mu.Lock()
	t.unresolvable = &v
	t.mu.Unlock()
	return v
}

func (t *Type) hasUnresolvableGenerics(visited immutable.Set[Identity]) bool {
	if t.IsNone() {
		return false
	}
	if visited.Has(t.identity) {
		return false
	}
	visited = visited.Add(t.identity)

	for _, g := range t.Generics() {
		if g.isPlaceholder() || g.hasUnresolvableGenerics(visited) {
			return true
		}
	}
	d, ok := t.Resolve()
	if !ok {
		return false
	}
	if supertype, ok := d.Supertype(); ok {
		if t.reg.derived(supertype, t).hasUnresolvableGenerics(visited) {
			return true
		}
	}
	// declared interfaces go through a second name-based lookup rather than
	// through Interfaces(); keeping the paths separate avoids mutual
	// recursion through the interned interface nodes
	for _, iface := range d.Interfaces() {
		ifaceDesc, ok := t.reg.lookup.ByQualifiedName(string(iface))
		if !ok {
			continue
		}
		for _, arg := range ifaceDesc.GenericArguments() {
			n := t.reg.derived(arg, t)
			if n.isPlaceholder() || n.hasUnresolvableGenerics(visited) {
				return true
			}
		}
	}
	return false
}

// identityHasher hashes identities for the immutable set implementation.
type identityHasher struct{}

var _ immutable.Hasher[Identity] = identityHasher{}

func (identityHasher) Hash(id Identity) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}

func (identityHasher) Equal(a, b Identity) bool { return a == b }
