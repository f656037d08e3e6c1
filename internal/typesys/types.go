package typesys

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates the closed set of classifications the overlay reasons
// about. A host type that fits none of them maps to KindOther.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindBoolLiteral
	KindUndefined
	KindNull
	KindVoid
	KindStringLiteral
	KindNumberLiteral
	KindString
	KindNumber
	KindObject
	KindNonPrimitive
	KindUnion
	KindAlias
	KindAny
	KindUnknown
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "boolean"
	case KindBoolLiteral:
		return "boolean literal"
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindVoid:
		return "void"
	case KindStringLiteral:
		return "string literal"
	case KindNumberLiteral:
		return "number literal"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	case KindNonPrimitive:
		return "non-primitive"
	case KindUnion:
		return "union"
	case KindAlias:
		return "alias"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for one classification variant.
type Type struct {
	Kind    Kind
	BoolVal bool     // for KindBoolLiteral
	StrVal  string   // for KindStringLiteral; display name for KindAlias/KindOther
	NumVal  float64  // for KindNumberLiteral
	Elems   []TypeID // for KindUnion, ordered constituents
	Target  TypeID   // for KindAlias, the aliased type
}

// Descriptor helpers ---------------------------------------------------------

// MakeBoolLiteral describes the literal type true or false.
func MakeBoolLiteral(v bool) Type {
	return Type{Kind: KindBoolLiteral, BoolVal: v}
}

// MakeStringLiteral describes a string literal type with a known value.
func MakeStringLiteral(v string) Type {
	return Type{Kind: KindStringLiteral, StrVal: v}
}

// MakeNumberLiteral describes a number literal type with a known value.
func MakeNumberLiteral(v float64) Type {
	return Type{Kind: KindNumberLiteral, NumVal: v}
}

// MakeUnion describes a union over the given constituents, in order.
func MakeUnion(elems ...TypeID) Type {
	return Type{Kind: KindUnion, Elems: elems}
}

// MakeAlias describes a named alias pointing at target.
func MakeAlias(name string, target TypeID) Type {
	return Type{Kind: KindAlias, StrVal: name, Target: target}
}

// MakeOther describes a host type outside the closed classification set.
func MakeOther(name string) Type {
	return Type{Kind: KindOther, StrVal: name}
}
