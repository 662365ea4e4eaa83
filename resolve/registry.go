package resolve

import (
	"hash/fnv"
	"slices"
	"sync"

	"github.com/cottand/typeflect/internal/log"
)

var logger = log.DefaultLogger.With("section", "resolve")

// cacheKey is the structural key nodes are interned under. Provider and
// resolver take part by reference, matching the node equality invariant.
type cacheKey struct {
	identity Identity
	// component and fixed fold in the structural hashes of the component
	// node and the explicit generics, zero when absent
	component uint64
	fixed     uint64
	provider  Provider
	resolver  VariableResolver
	raw       bool
}

// Registry interns Type nodes and resolves them against a single Lookup. It
// replaces what the host environment keeps as an ambient process-wide cache:
// constructing it explicitly makes the cache's lifetime and locking visible
// to callers.
//
// The cache never evicts. Long-lived processes that churn through identities
// must call Clear themselves; clearing is safe at any point and only costs
// re-resolution.
type Registry struct {
	// Sequence and KeyValue are the capability identities AsCollection and
	// AsMap view nodes as. Override them before first use if the catalog
	// names them differently.
	Sequence Identity
	KeyValue Identity

	lookup Lookup

	mu    sync.Mutex
	cache map[cacheKey]*Type
}

func NewRegistry(lookup Lookup) *Registry {
	return &Registry{
		Sequence: "lang.Sequence",
		KeyValue: "lang.Mapping",
		lookup:   lookup,
		cache:    make(map[cacheKey]*Type),
	}
}

// lookupOrInsert is the only path through which nodes enter the cache. The
// lock spans the whole lookup-or-insert sequence so concurrent first use of
// the same key cannot produce two nodes.
func (r *Registry) lookupOrInsert(key cacheKey, build func() *Type) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.cache[key]; ok {
		return t
	}
	t := build()
	r.cache[key] = t
	logger.Debug("interned type node", "identity", string(key.identity), "size", len(r.cache))
	return t
}

// Clear drops every interned node. Nodes already handed out stay valid; they
// just stop being the canonical instance for their key.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[cacheKey]*Type)
}

// Size is the number of interned nodes, for diagnostics.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// ForType wraps a concrete nominal type. When the lookup already knows the
// identity the descriptor is attached eagerly, which is the common case.
func (r *Registry) ForType(id Identity) *Type {
	if id == NoIdentity {
		return None
	}
	return r.lookupOrInsert(cacheKey{identity: id}, func() *Type {
		t := &Type{reg: r, identity: id}
		if d, ok := r.lookup.ByIdentity(id); ok {
			t.descriptor = d
			t.descriptorSet = true
		}
		return t
	})
}

// ForTypeWithGenerics wraps a nominal type with an already-resolved generic
// argument list, bypassing declaration-based generic discovery.
func (r *Registry) ForTypeWithGenerics(id Identity, generics ...*Type) *Type {
	if id == NoIdentity {
		return None
	}
	if len(generics) == 0 {
		return r.ForType(id)
	}
	h := fnv.New64a()
	for _, g := range generics {
		writeHash(h, g.Hash())
	}
	key := cacheKey{identity: id, fixed: h.Sum64()}
	return r.lookupOrInsert(key, func() *Type {
		return &Type{reg: r, identity: id, fixed: slices.Clone(generics)}
	})
}

// ForValue resolves the node for a value's own reported type. A nil value
// yields None.
func (r *Registry) ForValue(v Valued) *Type {
	if v == nil {
		return None
	}
	return r.ForType(v.TypeIdentity())
}

// ForProvider wraps a declaration-site origin. The owner, when given, becomes
// the variable-resolution context, so type variables in the origin's declared
// type are substituted with the owner's resolved generics.
func (r *Registry) ForProvider(p Provider, owner *Type) *Type {
	if p == nil {
		return None
	}
	var resolver VariableResolver
	if !owner.IsNone() {
		resolver = owner
	}
	key := cacheKey{provider: p, resolver: resolver}
	return r.lookupOrInsert(key, func() *Type {
		return &Type{reg: r, provider: p, resolver: resolver}
	})
}

// ForArrayOf builds an array node from its element type. IsArray on the
// result holds unconditionally.
func (r *Registry) ForArrayOf(component *Type) *Type {
	if component.IsNone() {
		return None
	}
	id := Identity(string(component.identity) + "[]")
	key := cacheKey{identity: id, component: component.Hash()}
	return r.lookupOrInsert(key, func() *Type {
		return &Type{reg: r, identity: id, component: component}
	})
}

// Raw wraps a nominal type with generics ignored entirely: Generics is always
// empty and assignability compares bare identities only. Raw nodes model
// legacy call sites that predate the generic declarations.
func (r *Registry) Raw(id Identity) *Type {
	if id == NoIdentity {
		return None
	}
	key := cacheKey{identity: id, raw: true}
	return r.lookupOrInsert(key, func() *Type {
		return &Type{reg: r, identity: id, raw: true}
	})
}

// derived interns the node for an identity reached while navigating from an
// existing node; the resolver is the navigation source's generic context.
func (r *Registry) derived(id Identity, resolver VariableResolver) *Type {
	if id == NoIdentity {
		return None
	}
	if resolver == nil {
		return r.ForType(id)
	}
	key := cacheKey{identity: id, resolver: resolver}
	return r.lookupOrInsert(key, func() *Type {
		return &Type{reg: r, identity: id, resolver: resolver}
	})
}
