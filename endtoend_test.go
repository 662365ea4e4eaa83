package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/typeflect/catalog"
	"github.com/cottand/typeflect/resolve"
)

const storeCatalog = `
types:
  - name: lang.Object
  - name: lang.String
    extends: lang.Object
  - name: lang.Int
    extends: lang.Object
  - name: lang.Sequence
    params: [E]
  - name: lang.Mapping
    params: [K, V]
  - name: store.Repository
    params: [T]
    extends: lang.Object
  - name: store.OrderRepository
    extends: store.Repository<store.Order>
  - name: store.Order
    extends: lang.Object
  - name: store.OrderList
    params: [E]
    extends: lang.Object
    implements: [lang.Sequence<E>]
  - name: store.Index
    params: [K, V]
    keyvalue: true
    key: K
    element: V
    implements: ["lang.Mapping<K, V>"]
`

// TestEndToEnd drives a whole catalog-to-navigation round: load declarations
// from YAML, resolve through a registry, then navigate and compare the way a
// reflection layer would.
func TestEndToEnd(t *testing.T) {
	cat, err := catalog.Load(strings.NewReader(storeCatalog))
	require.NoError(t, err)
	reg := resolve.NewRegistry(cat)

	// a field declared as T inside OrderRepository's supertype context
	repo := reg.ForType("store.OrderRepository")
	entityField := &resolve.DeclaredAt{Origin: "field entity", Declared: "T"}
	entity := reg.ForProvider(entityField, repo.Supertype())
	d, ok := entity.Resolve()
	require.True(t, ok)
	assert.Equal(t, resolve.Identity("store.Order"), d.Identity())

	// the repository's supertype carries the bound generic
	assert.Equal(t, "Repository<Order>", repo.Supertype().String())

	// sequence and mapping capabilities
	orders := reg.ForType("store.OrderList<store.Order>")
	assert.False(t, orders.AsCollection().IsNone())
	index := reg.ForType("store.Index<lang.String, store.Order>")
	assert.Equal(t, resolve.Identity("lang.String"), index.KeyType().Identity())
	assert.Equal(t, resolve.Identity("store.Order"), index.Nested(2, nil).Identity())

	// assignability across the hierarchy
	assert.True(t, reg.ForType("store.Repository").AssignableFrom(repo))
	assert.False(t, repo.AssignableFrom(reg.ForType("store.Repository")))
	assert.True(t, reg.ForType("store.Repository<store.Order>").AssignableFromResolvedPart(
		reg.ForType("store.Repository<*>")))

	// clearing the cache must not change any answer
	before := orders.String()
	reg.Clear()
	after := reg.ForType("store.OrderList<store.Order>")
	assert.Equal(t, before, after.String())
	assert.True(t, after.AsCollection() != nil && !after.AsCollection().IsNone())
}
