// Package catalog is an in-memory type-declaration lookup: the structural
// facts the resolve engine navigates, declared as data rather than read from
// a live runtime. Catalogs are usually loaded from YAML (see Load) but can
// be built in code from Decl values.
package catalog

import (
	"iter"
	"sort"
	"sync"

	goset "github.com/hashicorp/go-set/v3"
	xset "github.com/xtgo/set"

	"github.com/cottand/typeflect/internal/log"
	"github.com/cottand/typeflect/resolve"
	"github.com/cottand/typeflect/util"
)

var logger = log.DefaultLogger.With("section", "catalog")

// Decl is one declared type.
type Decl struct {
	// Name is the qualified name; it doubles as the identity of the open
	// declaration.
	Name string `yaml:"name"`
	// Simple defaults to the last dot-separated segment of Name.
	Simple string `yaml:"simple,omitempty"`
	// Params are the declared type-parameter names.
	Params []string `yaml:"params,omitempty"`
	// Arguments are the declared generic arguments, one per parameter. They
	// default to the parameter names themselves (an open generic).
	Arguments []string `yaml:"arguments,omitempty"`

	Extends    string   `yaml:"extends,omitempty"`
	Implements []string `yaml:"implements,omitempty"`
	Mixins     []string `yaml:"mixins,omitempty"`

	Array    bool   `yaml:"array,omitempty"`
	KeyValue bool   `yaml:"keyvalue,omitempty"`
	Element  string `yaml:"element,omitempty"`
	Key      string `yaml:"key,omitempty"`
}

// refs lists every type reference the declaration makes.
func (d *Decl) refs() []string {
	var out []string
	if d.Extends != "" {
		out = append(out, d.Extends)
	}
	out = append(out, d.Implements...)
	out = append(out, d.Mixins...)
	out = append(out, d.Arguments...)
	if d.Element != "" {
		out = append(out, d.Element)
	}
	if d.Key != "" {
		out = append(out, d.Key)
	}
	return out
}

// File is the YAML document shape.
type File struct {
	Types []Decl `yaml:"types"`
}

type Catalog struct {
	decls map[resolve.Identity]*Decl

	mu       sync.Mutex
	closures map[resolve.Identity]*goset.Set[resolve.Identity]
}

var _ resolve.Lookup = (*Catalog)(nil)

// New validates the declarations and builds a catalog. The catalog is
// returned even when validation fails, so callers that can tolerate a
// partial catalog may keep going; Load does not.
func New(decls ...Decl) (*Catalog, *Errors) {
	c := &Catalog{
		decls:    make(map[resolve.Identity]*Decl, len(decls)),
		closures: make(map[resolve.Identity]*goset.Set[resolve.Identity]),
	}
	var errs *Errors
	for i := range decls {
		d := decls[i]
		name := resolve.Identity(d.Name)
		if d.Name == "" {
			errs = errs.With(ErrBadReference{Name: "(unnamed)", Ref: ""})
			continue
		}
		if _, dup := c.decls[name]; dup {
			errs = errs.With(ErrDuplicate{Name: d.Name})
			continue
		}
		if d.Simple == "" {
			d.Simple = name.SimpleName()
		}
		if len(d.Arguments) > 0 && len(d.Arguments) != len(d.Params) {
			errs = errs.With(ErrArityMismatch{Name: d.Name, Params: len(d.Params), Arguments: len(d.Arguments)})
		}
		c.decls[name] = &d
	}
	for name, d := range c.decls {
		errs = errs.Merge(c.validateRefs(name, d))
	}
	if errs.HasError() {
		logger.Warn("catalog has invalid declarations", "errors", errs)
	}
	return c, errs
}

// validateRefs checks that every reference a declaration makes either names
// another declaration, one of the declaration's own type parameters, or the
// untyped placeholder.
func (c *Catalog) validateRefs(name resolve.Identity, d *Decl) *Errors {
	var errs *Errors
	params := util.NewSetOf(d.Params)
	var check func(ref resolve.Identity)
	check = func(ref resolve.Identity) {
		base, args, ok := parseRef(string(ref))
		if !ok {
			errs = errs.With(ErrBadReference{Name: string(name), Ref: string(ref)})
			return
		}
		root := rootElem(base)
		if root.IsUntyped() || params.Contains(string(root)) {
			return
		}
		if _, known := c.decls[root]; !known {
			errs = errs.With(ErrUnknownReference{Name: string(name), Ref: string(root)})
		}
		for _, arg := range args {
			check(arg)
		}
	}
	for _, ref := range d.refs() {
		check(resolve.Identity(ref))
	}
	return errs
}

// ByIdentity resolves exact declarations, parameterized references
// (specializing the base declaration), and array forms.
func (c *Catalog) ByIdentity(id resolve.Identity) (resolve.Descriptor, bool) {
	if id == resolve.NoIdentity || id.IsUntyped() {
		return nil, false
	}
	if d, ok := c.decls[id]; ok {
		return &descriptor{cat: c, decl: d}, true
	}
	if s := string(id); len(s) > 2 && s[len(s)-2:] == "[]" {
		elem := resolve.Identity(s[:len(s)-2])
		// an array form resolves exactly when its element does
		if _, ok := c.ByIdentity(elem); ok {
			return arrayDescriptor{id: id, elem: elem}, true
		}
		return nil, false
	}
	if id.Base() != id {
		base, args, ok := parseRef(string(id))
		if !ok {
			return nil, false
		}
		d, known := c.decls[base]
		if !known || len(args) != len(d.Params) {
			return nil, false
		}
		return &descriptor{cat: c, decl: d, args: args}, true
	}
	return nil, false
}

func (c *Catalog) ByQualifiedName(name string) (resolve.Descriptor, bool) {
	return c.ByIdentity(resolve.Identity(name))
}

// closure is the reflexive transitive is-a closure of a declaration, by base
// name, following supertype, interfaces and mixins. Memoized per base.
func (c *Catalog) closure(base resolve.Identity) *goset.Set[resolve.Identity] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.closures[base]; ok {
		return s
	}
	seen := util.NewEmptySet[resolve.Identity]()
	s := util.SetFromSeq(c.isa(base, seen), len(c.decls))
	c.closures[base] = s
	return s
}

// isa yields base and, transitively, every declared parent base name.
// The seen set guards against declaration cycles.
func (c *Catalog) isa(base resolve.Identity, seen util.MSet[resolve.Identity]) iter.Seq[resolve.Identity] {
	return func(yield func(resolve.Identity) bool) {
		if seen.Contains(base) {
			return
		}
		seen.Add(base)
		if !yield(base) {
			return
		}
		d, ok := c.decls[base]
		if !ok {
			return
		}
		var parents []string
		if d.Extends != "" {
			parents = append(parents, d.Extends)
		}
		parents = append(parents, d.Implements...)
		parents = append(parents, d.Mixins...)
		for _, ref := range parents {
			parentBase, _, ok := parseRef(ref)
			if !ok {
				continue
			}
			for id := range c.isa(parentBase, seen) {
				if !yield(id) {
					return
				}
			}
		}
	}
}

type identitySlice []resolve.Identity

func (s identitySlice) Len() int           { return len(s) }
func (s identitySlice) Less(i, j int) bool { return s[i] < s[j] }
func (s identitySlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Identities returns every base identity the catalog knows about: declared
// names plus every base type its declarations reference, sorted and
// deduplicated. A declaration's own type-parameter names and the untyped
// placeholder are references, not identities, and are skipped.
func (c *Catalog) Identities() []resolve.Identity {
	var all identitySlice
	for name, d := range c.decls {
		all = append(all, name)
		params := util.NewSetOf(d.Params)
		for _, ref := range d.refs() {
			base, _, ok := parseRef(ref)
			if !ok {
				continue
			}
			root := rootElem(base)
			if root.IsUntyped() || params.Contains(string(root)) {
				continue
			}
			all = append(all, root)
		}
	}
	sort.Sort(all)
	return all[:xset.Uniq(all)]
}

// Len is the number of declarations.
func (c *Catalog) Len() int { return len(c.decls) }
