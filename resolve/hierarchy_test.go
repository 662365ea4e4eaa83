package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/typeflect/resolve"
)

func TestArrayComponent(t *testing.T) {
	reg := newTestRegistry(t)

	element := reg.ForType("lang.Int")
	array := reg.ForArrayOf(element)

	assert.True(t, array.IsArray())
	assert.Same(t, element, array.ComponentType())

	elemDesc, ok := element.Resolve()
	require.True(t, ok)
	compDesc, ok := array.ComponentType().Resolve()
	require.True(t, ok)
	assert.Equal(t, elemDesc.Identity(), compDesc.Identity())
}

func TestArrayFromIdentity(t *testing.T) {
	reg := newTestRegistry(t)

	array := reg.ForType("lang.Int[]")
	assert.True(t, array.IsArray())
	assert.Equal(t, resolve.Identity("lang.Int"), array.ComponentType().Identity())

	assert.False(t, reg.ForType("lang.Int").IsArray())
}

func TestKeyType(t *testing.T) {
	reg := newTestRegistry(t)

	t.Run("from generics", func(t *testing.T) {
		node := reg.ForType("collections.HashMap<lang.String, lang.Int>")
		assert.Equal(t, resolve.Identity("lang.String"), node.KeyType().Identity())
	})

	t.Run("open generic yields the declared key variable", func(t *testing.T) {
		node := reg.ForType("collections.HashMap")
		assert.Equal(t, resolve.Identity("K"), node.KeyType().Identity())
	})

	t.Run("non key-value shapes yield None", func(t *testing.T) {
		assert.True(t, reg.ForType("lang.String").KeyType().IsNone())
		assert.True(t, reg.ForType("collections.List<lang.Int>").KeyType().IsNone())
	})
}

func TestSupertypeChain(t *testing.T) {
	reg := newTestRegistry(t)

	node := reg.ForType("lang.Int")
	super := node.Supertype()
	assert.Equal(t, resolve.Identity("lang.Number"), super.Identity())
	assert.Equal(t, resolve.Identity("lang.Object"), super.Supertype().Identity())
	assert.True(t, super.Supertype().Supertype().IsNone(), "the root type has no supertype")

	assert.Same(t, node.Supertype(), node.Supertype(), "supertype is memoized")
}

func TestInterfaces(t *testing.T) {
	reg := newTestRegistry(t)

	interfaces := reg.ForType("collections.List<lang.Int>").Interfaces()
	require.Len(t, interfaces, 1)
	assert.Equal(t, "Sequence<Int>", interfaces[0].String())

	assert.Empty(t, reg.ForType("lang.Object").Interfaces())
}

func TestAs(t *testing.T) {
	reg := newTestRegistry(t)

	t.Run("a type is itself", func(t *testing.T) {
		node := reg.ForType("collections.List<lang.Int>")
		assert.Same(t, node, node.As("collections.List"))
	})

	t.Run("subtype views as its ancestors", func(t *testing.T) {
		node := reg.ForType("collections.StringList")
		assert.False(t, node.As("collections.List").IsNone())
		assert.False(t, node.As("lang.Sequence").IsNone())
		assert.False(t, node.As("lang.Object").IsNone())
	})

	t.Run("unrelated target yields None", func(t *testing.T) {
		node := reg.ForType("lang.String")
		assert.True(t, node.As("lang.Sequence").IsNone())
		assert.True(t, node.As("nowhere.Missing").IsNone())
	})
}

func TestAsCollectionAndAsMap(t *testing.T) {
	reg := newTestRegistry(t)

	list := reg.ForType("collections.List<lang.Int>")
	assert.False(t, list.AsCollection().IsNone())
	assert.True(t, list.AsMap().IsNone())

	hashMap := reg.ForType("collections.HashMap<lang.String, lang.Int>")
	assert.False(t, hashMap.AsMap().IsNone())
	assert.True(t, hashMap.AsCollection().IsNone())
}
