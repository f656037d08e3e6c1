// Package truth answers whether a classified type can ever evaluate truthy
// or falsy in a condition position, and whether it is a plain two-valued
// boolean. The predicates are pure; when a type cannot be pinned down they
// answer permissively, so callers suppress diagnostics instead of inventing
// wrong ones.
package truth

import "beacon/internal/typesys"

// CanBeTruthy reports whether a value of the type can evaluate truthy.
func CanBeTruthy(in *typesys.Interner, id typesys.TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return true
	}
	switch t.Kind {
	case typesys.KindBoolLiteral:
		return t.BoolVal
	case typesys.KindBool:
		return true
	case typesys.KindUndefined, typesys.KindNull, typesys.KindVoid:
		return false
	case typesys.KindStringLiteral:
		return t.StrVal != ""
	case typesys.KindNumberLiteral:
		return t.NumVal != 0
	case typesys.KindObject, typesys.KindNonPrimitive:
		// objects are never falsy
		return true
	case typesys.KindUnion:
		for _, e := range t.Elems {
			if CanBeTruthy(in, e) {
				return true
			}
		}
		return false
	case typesys.KindString, typesys.KindNumber:
		// no literal value known: could be non-empty / non-zero
		return true
	case typesys.KindAny, typesys.KindUnknown:
		return true
	default:
		return true
	}
}

// CanBeFalsy reports whether a value of the type can evaluate falsy.
func CanBeFalsy(in *typesys.Interner, id typesys.TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return true
	}
	switch t.Kind {
	case typesys.KindBoolLiteral:
		return !t.BoolVal
	case typesys.KindBool:
		return true
	case typesys.KindUndefined, typesys.KindNull, typesys.KindVoid:
		return true
	case typesys.KindStringLiteral:
		return t.StrVal == ""
	case typesys.KindNumberLiteral:
		return t.NumVal == 0
	case typesys.KindObject, typesys.KindNonPrimitive:
		return false
	case typesys.KindUnion:
		for _, e := range t.Elems {
			if CanBeFalsy(in, e) {
				return true
			}
		}
		return false
	case typesys.KindString, typesys.KindNumber:
		// could be "" / 0
		return true
	case typesys.KindAny, typesys.KindUnknown:
		return true
	default:
		return true
	}
}

// IsBooleanType reports whether the type is exactly two-valued boolean:
// either the general boolean type, or a union of precisely one true literal
// and one false literal. Any other union is not boolean.
func IsBooleanType(in *typesys.Interner, id typesys.TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case typesys.KindBool:
		return true
	case typesys.KindUnion:
		if len(t.Elems) != 2 {
			return false
		}
		var sawTrue, sawFalse bool
		for _, e := range t.Elems {
			elem, ok := in.Lookup(e)
			if !ok || elem.Kind != typesys.KindBoolLiteral {
				return false
			}
			if elem.BoolVal {
				sawTrue = true
			} else {
				sawFalse = true
			}
		}
		return sawTrue && sawFalse
	default:
		return false
	}
}
