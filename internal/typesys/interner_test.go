package typesys

import "testing"

func TestInternDedup(t *testing.T) {
	in := NewInterner()
	a := in.Intern(MakeStringLiteral("ready"))
	b := in.Intern(MakeStringLiteral("ready"))
	if a != b {
		t.Fatalf("identical descriptors interned to %d and %d", a, b)
	}
	c := in.Intern(MakeStringLiteral("done"))
	if a == c {
		t.Fatalf("distinct descriptors shared ID %d", a)
	}
	if in.Intern(Type{Kind: KindBool}) != in.Builtins().Bool {
		t.Fatalf("re-interning a builtin must return the builtin ID")
	}
}

func TestUnaliasOneLevel(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	inner := in.Intern(MakeAlias("Inner", b.Bool))
	outer := in.Intern(MakeAlias("Outer", inner))

	if got := in.Unalias(outer); got != inner {
		t.Fatalf("Unalias(outer) = %d, want the inner alias %d", got, inner)
	}
	if got := in.Unalias(b.Bool); got != b.Bool {
		t.Fatalf("Unalias of a non-alias must be the identity")
	}
	if got := in.Unalias(NoTypeID); got != NoTypeID {
		t.Fatalf("Unalias(NoTypeID) = %d", got)
	}
}

func TestKindOfAndLookup(t *testing.T) {
	in := NewInterner()
	if in.KindOf(NoTypeID) != KindInvalid {
		t.Fatalf("KindOf(NoTypeID) must be invalid")
	}
	if _, ok := in.Lookup(TypeID(9999)); ok {
		t.Fatalf("Lookup of an unknown ID must fail")
	}
	u := in.Intern(MakeUnion(in.Builtins().String, in.Builtins().Null))
	if in.KindOf(u) != KindUnion {
		t.Fatalf("KindOf(union) = %v", in.KindOf(u))
	}
}

func TestLabel(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	cases := []struct {
		id   TypeID
		want string
	}{
		{b.True, "true"},
		{in.Intern(MakeStringLiteral("on")), `"on"`},
		{in.Intern(MakeNumberLiteral(3)), "3"},
	}
	for _, tc := range cases {
		if got := in.Label(tc.id); got != tc.want {
			t.Errorf("Label(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
