package resolve

import (
	"github.com/cottand/typeflect/util"
)

// assignMemo records identity pairs already being compared, so mutually
// recursive generic bounds terminate and repeated sub-comparisons are free.
// A pair is optimistically recorded as true while its comparison is in
// flight, the same "assume while proving" move the subtype solvers make.
type assignMemo = map[util.Pair[Identity, Identity]]bool

// AssignableFrom reports whether a value of the other type can stand where
// this type is expected, under the declared subtype, interface, and mixin
// closure. Array nodes are the exception: their element types are compared
// strictly, without subtype substitution.
//
// Either side failing to resolve makes the result false.
func (t *Type) AssignableFrom(other *Type) bool {
	return t.assignableFrom(other, false, nil)
}

// AssignableFromIdentity is AssignableFrom against the node for a bare
// nominal type.
func (t *Type) AssignableFromIdentity(other Identity) bool {
	if t.IsNone() {
		return false
	}
	return t.assignableFrom(t.reg.ForType(other), false, nil)
}

// AssignableFromResolvedPart is AssignableFrom, except that any unresolved
// type variable or untyped placeholder on the other side is treated as
// compatible. It trades precision for leniency when only partial generic
// information survived erasure.
func (t *Type) AssignableFromResolvedPart(other *Type) bool {
	return t.assignableFrom(other, true, nil)
}

func (t *Type) assignableFrom(other *Type, lenient bool, memo assignMemo) bool {
	if t.IsNone() || other.IsNone() {
		return false
	}
	if lenient && other.isPlaceholder() {
		return true
	}
	if memo == nil {
		memo = make(assignMemo)
	}
	key := util.NewPair(t.identity, other.identity)
	if hit, ok := memo[key]; ok {
		return hit
	}
	memo[key] = true

	result := t.assignableUncached(other, lenient, memo)
	memo[key] = result
	return result
}

func (t *Type) assignableUncached(other *Type, lenient bool, memo assignMemo) bool {
	// array element types do not admit covariant substitution: an array of a
	// subtype is not an array of the supertype
	if t.IsArray() {
		return other.IsArray() &&
			t.ComponentType().assignableStrict(other.ComponentType(), memo)
	}
	if t.raw || other.raw {
		return t.identity.Base() == other.identity.Base()
	}

	thisDesc, okThis := t.Resolve()
	otherDesc, okOther := other.Resolve()
	if !okThis || !okOther {
		return false
	}
	if thisDesc.Identity() != otherDesc.Identity() && !thisDesc.AssignableFrom(otherDesc) {
		return false
	}

	// when both sides carry the same number of generic arguments, each pair
	// must be compatible too; an unresolved argument on the expected side
	// accepts anything
	thisGenerics := t.Generics()
	otherGenerics := other.Generics()
	if len(thisGenerics) == 0 || len(thisGenerics) != len(otherGenerics) {
		return true
	}
	for i := range thisGenerics {
		if thisGenerics[i].isPlaceholder() {
			continue
		}
		if lenient && otherGenerics[i].isPlaceholder() {
			continue
		}
		if !thisGenerics[i].assignableFrom(otherGenerics[i], lenient, memo) {
			return false
		}
	}
	return true
}

// assignableStrict requires identical resolved identities, recursing through
// array components.
func (t *Type) assignableStrict(other *Type, memo assignMemo) bool {
	if t.IsNone() || other.IsNone() {
		return false
	}
	if t.IsArray() || other.IsArray() {
		return t.IsArray() && other.IsArray() &&
			t.ComponentType().assignableStrict(other.ComponentType(), memo)
	}
	thisDesc, okThis := t.Resolve()
	otherDesc, okOther := other.Resolve()
	return okThis && okOther && thisDesc.Identity() == otherDesc.Identity()
}
