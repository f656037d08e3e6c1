package truth

import (
	"testing"

	"beacon/internal/typesys"
)

func TestClassifySingleKinds(t *testing.T) {
	in := typesys.NewInterner()
	b := in.Builtins()

	cases := []struct {
		name   string
		id     typesys.TypeID
		truthy bool
		falsy  bool
	}{
		{"true literal", b.True, true, false},
		{"false literal", b.False, false, true},
		{"boolean", b.Bool, true, true},
		{"undefined", b.Undefined, false, true},
		{"null", b.Null, false, true},
		{"void", b.Void, false, true},
		{"empty string literal", in.Intern(typesys.MakeStringLiteral("")), false, true},
		{"nonempty string literal", in.Intern(typesys.MakeStringLiteral("x")), true, false},
		{"zero literal", in.Intern(typesys.MakeNumberLiteral(0)), false, true},
		{"nonzero literal", in.Intern(typesys.MakeNumberLiteral(42)), true, false},
		{"string", b.String, true, true},
		{"number", b.Number, true, true},
		{"object", b.Object, true, false},
		{"non-primitive", b.NonPrimitive, true, false},
		{"any", b.Any, true, true},
		{"unknown", b.Unknown, true, true},
		{"other", in.Intern(typesys.MakeOther("Symbol")), true, true},
	}
	for _, tc := range cases {
		if got := CanBeTruthy(in, tc.id); got != tc.truthy {
			t.Errorf("%s: CanBeTruthy = %v, want %v", tc.name, got, tc.truthy)
		}
		if got := CanBeFalsy(in, tc.id); got != tc.falsy {
			t.Errorf("%s: CanBeFalsy = %v, want %v", tc.name, got, tc.falsy)
		}
	}
}

func TestClassifyUnions(t *testing.T) {
	in := typesys.NewInterner()
	b := in.Builtins()

	objOrNull := in.Intern(typesys.MakeUnion(b.Object, b.Null))
	if !CanBeTruthy(in, objOrNull) || !CanBeFalsy(in, objOrNull) {
		t.Errorf("object|null should go both ways")
	}

	nullOrUndef := in.Intern(typesys.MakeUnion(b.Null, b.Undefined))
	if CanBeTruthy(in, nullOrUndef) {
		t.Errorf("null|undefined can never be truthy")
	}
	if !CanBeFalsy(in, nullOrUndef) {
		t.Errorf("null|undefined must be falsy")
	}

	objects := in.Intern(typesys.MakeUnion(b.Object, b.NonPrimitive))
	if CanBeFalsy(in, objects) {
		t.Errorf("a union of object types can never be falsy")
	}
}

func TestIsBooleanType(t *testing.T) {
	in := typesys.NewInterner()
	b := in.Builtins()

	if !IsBooleanType(in, b.Bool) {
		t.Fatalf("boolean must be a boolean type")
	}
	boolPair := in.Intern(typesys.MakeUnion(b.True, b.False))
	if !IsBooleanType(in, boolPair) {
		t.Fatalf("true|false must be a boolean type")
	}
	if IsBooleanType(in, in.Intern(typesys.MakeUnion(b.True, b.True))) {
		t.Errorf("true|true is not a boolean type")
	}
	if IsBooleanType(in, in.Intern(typesys.MakeUnion(b.Bool, b.Null))) {
		t.Errorf("boolean|null is not a boolean type")
	}
	if IsBooleanType(in, b.True) {
		t.Errorf("a lone literal is not the two-valued boolean")
	}
	if IsBooleanType(in, b.String) {
		t.Errorf("string is not a boolean type")
	}
}
