package typesys

import (
	"fmt"
	"strings"
)

// Builtins exposes the pre-interned singleton variants.
type Builtins struct {
	Bool         TypeID
	True         TypeID
	False        TypeID
	Undefined    TypeID
	Null         TypeID
	Void         TypeID
	String       TypeID
	Number       TypeID
	Object       TypeID
	NonPrimitive TypeID
	Any          TypeID
	Unknown      TypeID
}

// Interner deduplicates type descriptors behind compact IDs.
type Interner struct {
	types    []Type // types[0] is the invalid sentinel
	index    map[string]TypeID
	builtins Builtins
}

func NewInterner() *Interner {
	in := &Interner{
		types: []Type{{Kind: KindInvalid}},
		index: make(map[string]TypeID),
	}
	in.builtins = Builtins{
		Bool:         in.Intern(Type{Kind: KindBool}),
		True:         in.Intern(MakeBoolLiteral(true)),
		False:        in.Intern(MakeBoolLiteral(false)),
		Undefined:    in.Intern(Type{Kind: KindUndefined}),
		Null:         in.Intern(Type{Kind: KindNull}),
		Void:         in.Intern(Type{Kind: KindVoid}),
		String:       in.Intern(Type{Kind: KindString}),
		Number:       in.Intern(Type{Kind: KindNumber}),
		Object:       in.Intern(Type{Kind: KindObject}),
		NonPrimitive: in.Intern(Type{Kind: KindNonPrimitive}),
		Any:          in.Intern(Type{Kind: KindAny}),
		Unknown:      in.Intern(Type{Kind: KindUnknown}),
	}
	return in
}

// Builtins returns the pre-interned singleton variants.
func (in *Interner) Builtins() Builtins { return in.builtins }

func descriptorKey(t Type) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%t|%q|%g|%d|", t.Kind, t.BoolVal, t.StrVal, t.NumVal, t.Target)
	for _, e := range t.Elems {
		fmt.Fprintf(&b, "%d,", e)
	}
	return b.String()
}

// Intern returns the ID for the descriptor, allocating one if needed.
func (in *Interner) Intern(t Type) TypeID {
	key := descriptorKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	id := TypeID(len(in.types))
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for the ID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if !id.IsValid() || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// KindOf returns the ID's kind, KindInvalid for an unknown ID.
func (in *Interner) KindOf(id TypeID) Kind {
	t, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return t.Kind
}

// Unalias expands exactly one level of named-alias indirection.
func (in *Interner) Unalias(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindAlias || !t.Target.IsValid() {
		return id
	}
	return t.Target
}

// Label renders a human-readable name for diagnostics.
func (in *Interner) Label(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<unknown>"
	}
	switch t.Kind {
	case KindBoolLiteral:
		return fmt.Sprintf("%t", t.BoolVal)
	case KindStringLiteral:
		return fmt.Sprintf("%q", t.StrVal)
	case KindNumberLiteral:
		return fmt.Sprintf("%g", t.NumVal)
	case KindUnion:
		parts := make([]string, 0, len(t.Elems))
		for _, e := range t.Elems {
			parts = append(parts, in.Label(e))
		}
		return strings.Join(parts, " | ")
	case KindAlias, KindOther:
		if t.StrVal != "" {
			return t.StrVal
		}
		return t.Kind.String()
	default:
		return t.Kind.String()
	}
}
