// Package gotypes resolves identities for live Go values through the reflect
// package, so a resolve.Registry can be pointed at plain Go data instead of
// a declaration catalog. Go erases nothing the engine cares about except
// generics, which reflect does not surface, so every descriptor reported
// here is generic-free: slices and arrays become array-like shapes, maps
// become key-value-like shapes, and everything else is a scalar.
package gotypes

import (
	"reflect"
	"strings"
	"sync"

	"github.com/cottand/typeflect/resolve"
)

// Lookup implements resolve.Lookup over the Go types it has been shown.
// Types register on first use through IdentityOf or Value; identities the
// lookup has never seen do not resolve.
type Lookup struct {
	mu   sync.Mutex
	byID map[resolve.Identity]reflect.Type
}

var _ resolve.Lookup = (*Lookup)(nil)

func NewLookup() *Lookup {
	return &Lookup{byID: make(map[resolve.Identity]reflect.Type)}
}

// IdentityOf registers the value's type (and, transitively, its element and
// key types) and returns its identity. nil yields NoIdentity.
func (l *Lookup) IdentityOf(v any) resolve.Identity {
	if v == nil {
		return resolve.NoIdentity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.register(reflect.TypeOf(v))
}

// Value wraps a Go value so it can be passed to Registry.ForValue. A nil
// value yields a nil Valued, which resolves to None.
func (l *Lookup) Value(v any) resolve.Valued {
	if v == nil {
		return nil
	}
	return goValue{id: l.IdentityOf(v)}
}

type goValue struct{ id resolve.Identity }

func (g goValue) TypeIdentity() resolve.Identity { return g.id }

// register must hold l.mu. Pointers are dereferenced before anything is
// stored, so an identity always maps to the element type and never to the
// pointer that happened to introduce it.
func (l *Lookup) register(rt reflect.Type) resolve.Identity {
	if rt.Kind() == reflect.Pointer {
		return l.register(rt.Elem())
	}
	id := identityFor(rt)
	if _, seen := l.byID[id]; seen {
		return id
	}
	l.byID[id] = rt
	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		l.register(rt.Elem())
	case reflect.Map:
		l.register(rt.Key())
		l.register(rt.Elem())
	default:
	}
	return id
}

// identityFor renders a reflect.Type in the textual conventions the engine
// understands: the element identity with a "[]" suffix for slices and
// arrays, reflect's own rendering for everything else.
func identityFor(rt reflect.Type) resolve.Identity {
	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		return identityFor(rt.Elem()) + "[]"
	case reflect.Pointer:
		return identityFor(rt.Elem())
	case reflect.Interface:
		if rt.NumMethod() == 0 {
			return resolve.Untyped
		}
		return resolve.Identity(rt.String())
	default:
		return resolve.Identity(rt.String())
	}
}

func (l *Lookup) ByIdentity(id resolve.Identity) (resolve.Descriptor, bool) {
	if id == resolve.NoIdentity || id.IsUntyped() {
		return nil, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	rt, ok := l.byID[id]
	if !ok {
		// array forms of registered elements resolve without registration
		if s := string(id); strings.HasSuffix(s, "[]") {
			if elem, ok := l.byID[resolve.Identity(s[:len(s)-2])]; ok {
				rt = reflect.SliceOf(elem)
				l.byID[id] = rt
				ok = true
			}
		}
		if !ok {
			return nil, false
		}
	}
	return &goDescriptor{lookup: l, id: id, rt: rt}, true
}

func (l *Lookup) ByQualifiedName(name string) (resolve.Descriptor, bool) {
	return l.ByIdentity(resolve.Identity(name))
}

type goDescriptor struct {
	lookup *Lookup
	id     resolve.Identity
	rt     reflect.Type
}

var _ resolve.Descriptor = (*goDescriptor)(nil)

func (d *goDescriptor) Identity() resolve.Identity { return d.id }
func (d *goDescriptor) SimpleName() string         { return d.id.SimpleName() }
func (d *goDescriptor) QualifiedName() string      { return string(d.id) }

// Go reflection exposes no generic declarations, so every descriptor here is
// generic-free.
func (d *goDescriptor) GenericParameters() []resolve.Identity { return nil }
func (d *goDescriptor) GenericArguments() []resolve.Identity  { return nil }

// Go has no nominal supertypes; interface satisfaction is structural and not
// enumerable from a type, so hierarchy facts are empty too.
func (d *goDescriptor) Supertype() (resolve.Identity, bool) { return resolve.NoIdentity, false }
func (d *goDescriptor) Interfaces() []resolve.Identity      { return nil }
func (d *goDescriptor) Mixins() []resolve.Identity          { return nil }

func (d *goDescriptor) IsArrayLike() bool {
	k := d.rt.Kind()
	return k == reflect.Slice || k == reflect.Array
}

func (d *goDescriptor) IsKeyValueLike() bool { return d.rt.Kind() == reflect.Map }

func (d *goDescriptor) ElementType() (resolve.Identity, bool) {
	switch d.rt.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		d.lookup.mu.Lock()
		defer d.lookup.mu.Unlock()
		return d.lookup.register(d.rt.Elem()), true
	default:
		return resolve.NoIdentity, false
	}
}

func (d *goDescriptor) KeyType() (resolve.Identity, bool) {
	if d.rt.Kind() != reflect.Map {
		return resolve.NoIdentity, false
	}
	d.lookup.mu.Lock()
	defer d.lookup.mu.Unlock()
	return d.lookup.register(d.rt.Key()), true
}

// AssignableFrom delegates to reflect when the other side is also a Go type;
// anything else is only assignable when it is the very same identity.
func (d *goDescriptor) AssignableFrom(other resolve.Descriptor) bool {
	if other == nil {
		return false
	}
	if got, ok := other.(*goDescriptor); ok {
		return got.rt.AssignableTo(d.rt)
	}
	return other.Identity() == d.id
}
