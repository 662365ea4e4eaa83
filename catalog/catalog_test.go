package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/typeflect/catalog"
	"github.com/cottand/typeflect/resolve"
)

const validDoc = `
types:
  - name: lang.Object
  - name: lang.String
    extends: lang.Object
  - name: lang.Sequence
    params: [E]
  - name: collections.List
    params: [E]
    extends: lang.Object
    implements: [lang.Sequence<E>]
  - name: collections.StringList
    extends: collections.List<lang.String>
  - name: lang.Mapping
    params: [K, V]
  - name: collections.Dict
    params: [K, V]
    keyvalue: true
    key: K
    element: V
    implements: ["lang.Mapping<K, V>"]
`

func mustLoad(t *testing.T, doc string) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load(strings.NewReader(doc))
	require.NoError(t, err)
	return cat
}

func TestLoad(t *testing.T) {
	cat := mustLoad(t, validDoc)
	assert.Equal(t, 7, cat.Len())

	// a multi-argument reference holds together inside a flow sequence when
	// quoted; the comma must not split it into two items
	dict, ok := cat.ByIdentity("collections.Dict<lang.String, lang.Object>")
	require.True(t, ok)
	assert.Equal(t, []resolve.Identity{"lang.Mapping<lang.String, lang.Object>"}, dict.Interfaces())

	d, ok := cat.ByIdentity("collections.List")
	require.True(t, ok)
	assert.Equal(t, "List", d.SimpleName())
	assert.Equal(t, "collections.List", d.QualifiedName())
	assert.Equal(t, []resolve.Identity{"E"}, d.GenericParameters())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := catalog.Load(strings.NewReader("types: [1, 2"))
	assert.Error(t, err)

	_, err = catalog.Load(strings.NewReader("types:\n  - name: x\n    unknownfield: y\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestValidation(t *testing.T) {
	t.Run("duplicate declarations", func(t *testing.T) {
		_, errs := catalog.New(
			catalog.Decl{Name: "a.A"},
			catalog.Decl{Name: "a.A"},
		)
		require.True(t, errs.HasError())
		assert.Equal(t, catalog.DuplicateType, errs.Errors()[0].Code())
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, errs := catalog.New(
			catalog.Decl{Name: "a.A", Extends: "nowhere.Missing"},
		)
		require.True(t, errs.HasError())
		assert.Equal(t, catalog.UnknownReference, errs.Errors()[0].Code())
		assert.Contains(t, catalog.FormatWithCode(errs.Errors()[0]), "nowhere.Missing")
	})

	t.Run("own parameters are legal references", func(t *testing.T) {
		_, errs := catalog.New(
			catalog.Decl{Name: "a.Box", Params: []string{"T"}, Element: "T", Array: true},
		)
		assert.False(t, errs.HasError())
	})

	t.Run("arity mismatch", func(t *testing.T) {
		_, errs := catalog.New(
			catalog.Decl{Name: "a.A", Params: []string{"K", "V"}, Arguments: []string{"K"}},
		)
		require.True(t, errs.HasError())
		assert.Equal(t, catalog.ArityMismatch, errs.Errors()[0].Code())
	})

	t.Run("malformed reference", func(t *testing.T) {
		_, errs := catalog.New(
			catalog.Decl{Name: "a.A", Extends: "b.B<"},
		)
		require.True(t, errs.HasError())
		assert.Equal(t, catalog.BadReference, errs.Errors()[0].Code())
	})

	t.Run("errors accumulate", func(t *testing.T) {
		_, errs := catalog.New(
			catalog.Decl{Name: "a.A", Extends: "nowhere.Missing"},
			catalog.Decl{Name: "a.A"},
			catalog.Decl{Name: "a.B", Implements: []string{"also.Missing"}},
		)
		assert.Len(t, errs.Errors(), 3)
	})
}

func TestParameterizedLookup(t *testing.T) {
	cat := mustLoad(t, validDoc)

	d, ok := cat.ByIdentity("collections.List<lang.String>")
	require.True(t, ok)
	assert.Equal(t, resolve.Identity("collections.List<lang.String>"), d.Identity())
	assert.Equal(t, []resolve.Identity{"lang.String"}, d.GenericArguments())
	assert.Equal(t, []resolve.Identity{"lang.Sequence<lang.String>"}, d.Interfaces(),
		"interface references substitute the bound parameter")

	_, ok = cat.ByIdentity("collections.List<lang.String, lang.String>")
	assert.False(t, ok, "argument count must match the declared parameters")

	_, ok = cat.ByIdentity("nowhere.Missing<lang.String>")
	assert.False(t, ok)
}

func TestArrayFormLookup(t *testing.T) {
	cat := mustLoad(t, validDoc)

	d, ok := cat.ByIdentity("lang.String[]")
	require.True(t, ok)
	assert.True(t, d.IsArrayLike())
	elem, hasElem := d.ElementType()
	require.True(t, hasElem)
	assert.Equal(t, resolve.Identity("lang.String"), elem)

	_, ok = cat.ByIdentity("nowhere.Missing[]")
	assert.False(t, ok, "an array form only resolves when its element does")
}

func TestDescriptorAssignableFrom(t *testing.T) {
	cat := mustLoad(t, validDoc)

	list, ok := cat.ByIdentity("collections.List")
	require.True(t, ok)
	stringList, ok := cat.ByIdentity("collections.StringList")
	require.True(t, ok)
	sequence, ok := cat.ByIdentity("lang.Sequence")
	require.True(t, ok)

	assert.True(t, list.AssignableFrom(stringList))
	assert.True(t, sequence.AssignableFrom(stringList))
	assert.True(t, list.AssignableFrom(list))
	assert.False(t, stringList.AssignableFrom(list))
	assert.False(t, stringList.AssignableFrom(nil))
}

func TestIdentities(t *testing.T) {
	cat := mustLoad(t, validDoc)

	ids := cat.Identities()
	assert.Contains(t, ids, resolve.Identity("collections.List"))
	assert.Contains(t, ids, resolve.Identity("lang.Object"))
	assert.NotContains(t, ids, resolve.Identity("K"), "type-parameter names are not identities")
	assert.NotContains(t, ids, resolve.Identity("V"))
	assert.NotContains(t, ids, resolve.Identity("E"))
	assert.IsIncreasing(t, ids, "identities come back sorted")
	seen := map[resolve.Identity]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "identities come back deduplicated")
		seen[id] = true
	}
}
