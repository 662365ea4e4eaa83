package catalog

import (
	"strings"

	"github.com/cottand/typeflect/resolve"
)

// descriptor is a declaration viewed with a concrete (or open) set of
// generic arguments. args is nil for the open generic; a specialized view
// substitutes its parameter names throughout every reference it reports.
type descriptor struct {
	cat  *Catalog
	decl *Decl
	args []resolve.Identity
}

var _ resolve.Descriptor = (*descriptor)(nil)

func (d *descriptor) Identity() resolve.Identity {
	if len(d.args) == 0 {
		return resolve.Identity(d.decl.Name)
	}
	parts := make([]string, len(d.args))
	for i, a := range d.args {
		parts[i] = string(a)
	}
	return resolve.Identity(d.decl.Name + "<" + strings.Join(parts, ", ") + ">")
}

func (d *descriptor) SimpleName() string    { return d.decl.Simple }
func (d *descriptor) QualifiedName() string { return d.decl.Name }

func (d *descriptor) GenericParameters() []resolve.Identity {
	if len(d.decl.Params) == 0 {
		return nil
	}
	params := make([]resolve.Identity, len(d.decl.Params))
	for i, p := range d.decl.Params {
		params[i] = resolve.Identity(p)
	}
	return params
}

func (d *descriptor) GenericArguments() []resolve.Identity {
	if len(d.args) > 0 {
		return d.args
	}
	if len(d.decl.Arguments) > 0 {
		args := make([]resolve.Identity, len(d.decl.Arguments))
		for i, a := range d.decl.Arguments {
			args[i] = resolve.Identity(a)
		}
		return args
	}
	return d.GenericParameters()
}

// bindings maps parameter names to this view's effective arguments. Empty
// for the open generic, where arguments are the parameters themselves.
func (d *descriptor) bindings() map[resolve.Identity]resolve.Identity {
	args := d.GenericArguments()
	params := d.GenericParameters()
	if len(args) != len(params) || len(params) == 0 {
		return nil
	}
	bound := make(map[resolve.Identity]resolve.Identity, len(params))
	for i, p := range params {
		if p != args[i] {
			bound[p] = args[i]
		}
	}
	return bound
}

func (d *descriptor) Supertype() (resolve.Identity, bool) {
	if d.decl.Extends == "" {
		return resolve.NoIdentity, false
	}
	return substitute(resolve.Identity(d.decl.Extends), d.bindings()), true
}

func (d *descriptor) Interfaces() []resolve.Identity {
	return d.substituteAll(d.decl.Implements)
}

func (d *descriptor) Mixins() []resolve.Identity {
	return d.substituteAll(d.decl.Mixins)
}

func (d *descriptor) substituteAll(refs []string) []resolve.Identity {
	if len(refs) == 0 {
		return nil
	}
	bound := d.bindings()
	out := make([]resolve.Identity, len(refs))
	for i, ref := range refs {
		out[i] = substitute(resolve.Identity(ref), bound)
	}
	return out
}

func (d *descriptor) IsArrayLike() bool    { return d.decl.Array }
func (d *descriptor) IsKeyValueLike() bool { return d.decl.KeyValue }

func (d *descriptor) ElementType() (resolve.Identity, bool) {
	if d.decl.Element == "" {
		return resolve.NoIdentity, false
	}
	return substitute(resolve.Identity(d.decl.Element), d.bindings()), true
}

func (d *descriptor) KeyType() (resolve.Identity, bool) {
	if d.decl.Key == "" {
		return resolve.NoIdentity, false
	}
	return substitute(resolve.Identity(d.decl.Key), d.bindings()), true
}

// AssignableFrom is the nominal is-a relation: the other declaration's
// closure must contain this declaration's base name. Generic arguments are
// not consulted here; the node-level comparison handles them.
func (d *descriptor) AssignableFrom(other resolve.Descriptor) bool {
	if other == nil {
		return false
	}
	otherBase := other.Identity().Base()
	if otherBase == resolve.Identity(d.decl.Name) {
		return true
	}
	return d.cat.closure(otherBase).Contains(resolve.Identity(d.decl.Name))
}

// arrayDescriptor is the synthesized descriptor for an array form the
// catalog has no explicit declaration for.
type arrayDescriptor struct {
	id   resolve.Identity
	elem resolve.Identity
}

var _ resolve.Descriptor = arrayDescriptor{}

func (d arrayDescriptor) Identity() resolve.Identity             { return d.id }
func (d arrayDescriptor) SimpleName() string                     { return d.elem.SimpleName() + "[]" }
func (d arrayDescriptor) QualifiedName() string                  { return string(d.id) }
func (d arrayDescriptor) GenericParameters() []resolve.Identity  { return nil }
func (d arrayDescriptor) GenericArguments() []resolve.Identity   { return nil }
func (d arrayDescriptor) Supertype() (resolve.Identity, bool)    { return resolve.NoIdentity, false }
func (d arrayDescriptor) Interfaces() []resolve.Identity         { return nil }
func (d arrayDescriptor) Mixins() []resolve.Identity             { return nil }
func (d arrayDescriptor) IsArrayLike() bool                      { return true }
func (d arrayDescriptor) IsKeyValueLike() bool                   { return false }
func (d arrayDescriptor) ElementType() (resolve.Identity, bool)  { return d.elem, true }
func (d arrayDescriptor) KeyType() (resolve.Identity, bool)      { return resolve.NoIdentity, false }
func (d arrayDescriptor) AssignableFrom(o resolve.Descriptor) bool {
	return o != nil && o.Identity() == d.id
}
