package resolve

// Nested walks level-1 steps into this type to address a deeply nested
// shape without chained navigation calls. At each step an array node steps
// into its component; any other node walks up its supertype chain until a
// node carrying generics is found, then steps into the generic at the index
// given for that level (levels are 1-based, so the first step taken is
// level 2). Levels absent from indexes take the last generic argument.
//
// Nested(3) on an array-of-arrays addresses the innermost element; the same
// call with indexes {2: 0} on a sequence of key-value pairs addresses the
// key type instead of the value type.
func (t *Type) Nested(level int, indexes map[int]int) *Type {
	if t.IsNone() {
		return None
	}
	current := t
	for l := 2; l <= level; l++ {
		if current.IsNone() {
			return None
		}
		if current.IsArray() {
			current = current.ComponentType()
			continue
		}
		carrier := current
		for !carrier.IsNone() && !carrier.HasGenerics() {
			carrier = carrier.Supertype()
		}
		if carrier.IsNone() {
			return None
		}
		generics := carrier.Generics()
		index, ok := indexes[l]
		if !ok {
			index = len(generics) - 1
		}
		if index < 0 || index >= len(generics) {
			return None
		}
		current = generics[index]
	}
	return current
}
