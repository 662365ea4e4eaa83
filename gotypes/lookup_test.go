package gotypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/typeflect/gotypes"
	"github.com/cottand/typeflect/resolve"
)

type inventory struct {
	Counts map[string]int
}

func TestIdentityOf(t *testing.T) {
	l := gotypes.NewLookup()

	assert.Equal(t, resolve.Identity("int"), l.IdentityOf(42))
	assert.Equal(t, resolve.Identity("string[]"), l.IdentityOf([]string{"a"}))
	assert.Equal(t, resolve.Identity("int[][]"), l.IdentityOf([][]int{}))
	assert.Equal(t, resolve.Identity("map[string]int"), l.IdentityOf(map[string]int{}))
	assert.Equal(t, resolve.Identity("gotypes_test.inventory"), l.IdentityOf(inventory{}))
	assert.Equal(t, resolve.Identity("gotypes_test.inventory"), l.IdentityOf(&inventory{}),
		"pointers resolve to their element type")
	assert.Equal(t, resolve.NoIdentity, l.IdentityOf(nil))
}

func TestResolveGoValues(t *testing.T) {
	l := gotypes.NewLookup()
	reg := resolve.NewRegistry(l)

	t.Run("slice is array-like", func(t *testing.T) {
		node := reg.ForValue(l.Value([]string{"a", "b"}))
		require.False(t, node.IsNone())
		assert.True(t, node.IsArray())
		assert.Equal(t, resolve.Identity("string"), node.ComponentType().Identity())
		assert.Equal(t, "string[]", node.String())
	})

	t.Run("map is key-value-like", func(t *testing.T) {
		node := reg.ForValue(l.Value(map[string]int{}))
		require.False(t, node.IsNone())
		assert.False(t, node.IsArray())
		assert.Equal(t, resolve.Identity("string"), node.KeyType().Identity())
		assert.Equal(t, resolve.Identity("int"), node.ComponentType().Identity())
	})

	t.Run("named type is a scalar", func(t *testing.T) {
		node := reg.ForValue(l.Value(inventory{}))
		d, ok := node.Resolve()
		require.True(t, ok)
		assert.Equal(t, "inventory", d.SimpleName())
		assert.False(t, node.IsArray())
		assert.True(t, node.KeyType().IsNone())
	})

	t.Run("nil resolves to None", func(t *testing.T) {
		assert.True(t, reg.ForValue(l.Value(nil)).IsNone())
	})

	t.Run("nested slice addressing", func(t *testing.T) {
		node := reg.ForValue(l.Value([][]int{}))
		assert.Equal(t, resolve.Identity("int"), node.Nested(3, nil).Identity())
	})
}

func TestPointerRegistrationKeepsShape(t *testing.T) {
	l := gotypes.NewLookup()
	reg := resolve.NewRegistry(l)

	// a pointer seen first must not claim its element's identity
	assert.Equal(t, resolve.Identity("int[]"), l.IdentityOf(&[]int{1}))
	node := reg.ForType("int[]")
	assert.True(t, node.IsArray(), "int[] is array-like regardless of how it was first registered")
	assert.Equal(t, resolve.Identity("int"), node.ComponentType().Identity())

	assert.Equal(t, resolve.Identity("map[string]int"), l.IdentityOf(&map[string]int{}))
	assert.Equal(t, resolve.Identity("string"), reg.ForType("map[string]int").KeyType().Identity())
}

func TestGoAssignability(t *testing.T) {
	l := gotypes.NewLookup()
	reg := resolve.NewRegistry(l)

	intNode := reg.ForValue(l.Value(7))
	assert.True(t, intNode.AssignableFrom(reg.ForValue(l.Value(42))))
	assert.False(t, intNode.AssignableFrom(reg.ForValue(l.Value("hello"))))

	t.Run("slices stay invariant", func(t *testing.T) {
		ints := reg.ForValue(l.Value([]int{}))
		strs := reg.ForValue(l.Value([]string{}))
		assert.True(t, ints.AssignableFrom(reg.ForValue(l.Value([]int{1}))))
		assert.False(t, ints.AssignableFrom(strs))
	})
}
