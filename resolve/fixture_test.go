package resolve_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cottand/typeflect/catalog"
	"github.com/cottand/typeflect/resolve"
)

// testCatalog is a small host-style declaration universe: a root Object, a
// few scalars, sequence and mapping capabilities, a generic List with a
// concrete subtype, a key-value HashMap, and a recursively-bounded Tree.
const testCatalog = `
types:
  - name: lang.Object
  - name: lang.String
    extends: lang.Object
  - name: lang.Number
    extends: lang.Object
  - name: lang.Int
    extends: lang.Number
  - name: lang.Sequence
    params: [E]
  - name: lang.Mapping
    params: [K, V]
  - name: lang.Comparable
    params: [T]
  - name: collections.List
    params: [E]
    extends: lang.Object
    implements: [lang.Sequence<E>]
  - name: collections.StringList
    extends: collections.List<lang.String>
  - name: collections.HashMap
    params: [K, V]
    extends: lang.Object
    implements: ["lang.Mapping<K, V>"]
    keyvalue: true
    key: K
    element: V
  - name: rec.Tree
    params: [T]
    extends: lang.Object
    implements: [lang.Comparable<rec.Tree<T>>]
`

func newTestRegistry(t *testing.T) *resolve.Registry {
	t.Helper()
	cat, err := catalog.Load(strings.NewReader(testCatalog))
	require.NoError(t, err)
	return resolve.NewRegistry(cat)
}
