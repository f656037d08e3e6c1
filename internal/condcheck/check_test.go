package condcheck

import (
	"testing"

	"beacon/internal/diag"
	"beacon/internal/memhost"
	"beacon/internal/source"
	"beacon/internal/syntax"
	"beacon/internal/testkit"
	"beacon/internal/typesys"
)

type fixture struct {
	h    *memhost.Host
	file source.FileID
	tree *syntax.Tree
	cond syntax.NodeID
}

// buildIf fabricates `if (<cond>) {}` with the condition produced by fn.
func buildIf(fn func(b *testkit.Builder) syntax.NodeID) fixture {
	h := memhost.New()
	b := testkit.NewBuilder(h, "cond.ts")
	var cond syntax.NodeID
	root := b.Node(syntax.KindSourceFile, func() []syntax.NodeID {
		ifStmt := b.Node(syntax.KindIfStmt, func() []syntax.NodeID {
			b.W("if (")
			cond = fn(b)
			b.W(") ")
			then := b.Node(syntax.KindBlock, func() []syntax.NodeID {
				b.W("{}")
				return nil
			})
			return []syntax.NodeID{cond, then}
		})
		return []syntax.NodeID{ifStmt}
	})
	b.SetRoot(root)
	file, tree := b.Build()
	return fixture{h: h, file: file, tree: tree, cond: cond}
}

func run(f fixture) *diag.Bag {
	bag := diag.NewBag(0)
	Check(f.tree, f.h, diag.BagReporter{Bag: bag})
	return bag
}

func TestLiteralConditions(t *testing.T) {
	f := buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Literal("true") })
	f.h.SetExprType(f.file, f.cond, f.h.TypeInterner().Builtins().True)
	bag := run(f)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.CndAlwaysTrue {
		t.Fatalf("true literal: got %v", bag.Items())
	}
	if bag.Items()[0].Severity != diag.SevWarning {
		t.Fatalf("always-true must be a warning")
	}
	if bag.Items()[0].Message != "this condition always returns 'true'" {
		t.Fatalf("message = %q", bag.Items()[0].Message)
	}

	f = buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Literal("false") })
	f.h.SetExprType(f.file, f.cond, f.h.TypeInterner().Builtins().False)
	bag = run(f)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.CndAlwaysFalse {
		t.Fatalf("false literal: got %v", bag.Items())
	}
}

func TestPlainBooleanIsSilent(t *testing.T) {
	f := buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Ident("flag") })
	f.h.SetExprType(f.file, f.cond, f.h.TypeInterner().Builtins().Bool)
	if bag := run(f); bag.Len() != 0 {
		t.Fatalf("boolean condition must be silent, got %v", bag.Items())
	}
}

// A host that lost the plain boolean and rebuilt it as `true | false` still
// describes a two-valued boolean; it must stay silent.
func TestReconstructedBooleanUnionIsSilent(t *testing.T) {
	f := buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Ident("flag") })
	in := f.h.TypeInterner()
	bt := in.Builtins()
	f.h.SetExprType(f.file, f.cond, in.Intern(typesys.MakeUnion(bt.True, bt.False)))
	if bag := run(f); bag.Len() != 0 {
		t.Fatalf("true|false condition must be silent, got %v", bag.Items())
	}
}

func TestObjectAlwaysTrue(t *testing.T) {
	f := buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Ident("conn") })
	f.h.SetExprType(f.file, f.cond, f.h.TypeInterner().Builtins().Object)
	bag := run(f)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.CndAlwaysTrue {
		t.Fatalf("object condition: got %v", bag.Items())
	}
}

func TestNonBooleanHints(t *testing.T) {
	cases := []struct {
		name string
		ty   func(in *typesys.Interner) typesys.TypeID
	}{
		{"string or null", func(in *typesys.Interner) typesys.TypeID {
			b := in.Builtins()
			return in.Intern(typesys.MakeUnion(b.String, b.Null))
		}},
		{"object or string", func(in *typesys.Interner) typesys.TypeID {
			b := in.Builtins()
			return in.Intern(typesys.MakeUnion(b.Object, b.String))
		}},
		{"object or null", func(in *typesys.Interner) typesys.TypeID {
			b := in.Builtins()
			return in.Intern(typesys.MakeUnion(b.Object, b.Null))
		}},
		{"unconstrained string", func(in *typesys.Interner) typesys.TypeID {
			return in.Builtins().String
		}},
		{"unconstrained number", func(in *typesys.Interner) typesys.TypeID {
			return in.Builtins().Number
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Ident("v") })
			f.h.SetExprType(f.file, f.cond, tc.ty(f.h.TypeInterner()))
			bag := run(f)
			if bag.Len() != 1 {
				t.Fatalf("got %d diagnostics", bag.Len())
			}
			d := bag.Items()[0]
			if d.Code != diag.CndNotBoolean || d.Severity != diag.SevHint {
				t.Fatalf("got code %v severity %v", d.Code, d.Severity)
			}
		})
	}
}

func TestAnyAndUnknownAreSkipped(t *testing.T) {
	for _, name := range []string{"any", "unknown"} {
		f := buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Ident("v") })
		in := f.h.TypeInterner()
		ty := in.Builtins().Any
		if name == "unknown" {
			ty = in.Builtins().Unknown
		}
		f.h.SetExprType(f.file, f.cond, ty)
		if bag := run(f); bag.Len() != 0 {
			t.Fatalf("%s-typed condition must be silent, got %v", name, bag.Items())
		}
	}
}

func TestUntypedConditionIsSilent(t *testing.T) {
	f := buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Ident("mystery") })
	if bag := run(f); bag.Len() != 0 {
		t.Fatalf("condition without type info must be silent, got %v", bag.Items())
	}
}

// A narrowed identifier still judges by its declared type: explicit intent
// beats control-flow narrowing.
func TestDeclaredTypeWinsOverNarrowing(t *testing.T) {
	h := memhost.New()
	b := testkit.NewBuilder(h, "declared.ts")
	var declName, varDecl, cond syntax.NodeID
	root := b.Node(syntax.KindSourceFile, func() []syntax.NodeID {
		varDecl = b.Node(syntax.KindVarDecl, func() []syntax.NodeID {
			b.W("let ")
			declName = b.Ident("x")
			ann := b.Annotation("boolean")
			return []syntax.NodeID{declName, ann}
		})
		b.W(";\n")
		ifStmt := b.Node(syntax.KindIfStmt, func() []syntax.NodeID {
			b.W("if (")
			cond = b.Ident("x")
			b.W(") ")
			then := b.Node(syntax.KindBlock, func() []syntax.NodeID {
				b.W("{}")
				return nil
			})
			return []syntax.NodeID{cond, then}
		})
		return []syntax.NodeID{varDecl, ifStmt}
	})
	b.SetRoot(root)
	file, tree := b.Build()

	in := h.TypeInterner()
	h.Link(file, cond, varDecl)
	h.SetDeclaredType(file, varDecl, in.Builtins().Bool)
	// flow narrowing pinned the value to `true` at the use site
	h.SetExprType(file, cond, in.Builtins().True)

	bag := diag.NewBag(0)
	Check(tree, h, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("declared boolean must suppress the narrowed literal, got %v", bag.Items())
	}
}

func TestDeclaredAliasExpandsOnce(t *testing.T) {
	h := memhost.New()
	b := testkit.NewBuilder(h, "alias.ts")
	var varDecl, cond syntax.NodeID
	root := b.Node(syntax.KindSourceFile, func() []syntax.NodeID {
		varDecl = b.Node(syntax.KindVarDecl, func() []syntax.NodeID {
			b.W("let ")
			name := b.Ident("cfg")
			ann := b.Annotation("Config")
			return []syntax.NodeID{name, ann}
		})
		b.W(";\n")
		ifStmt := b.Node(syntax.KindIfStmt, func() []syntax.NodeID {
			b.W("if (")
			cond = b.Ident("cfg")
			b.W(") ")
			then := b.Node(syntax.KindBlock, func() []syntax.NodeID {
				b.W("{}")
				return nil
			})
			return []syntax.NodeID{cond, then}
		})
		return []syntax.NodeID{varDecl, ifStmt}
	})
	b.SetRoot(root)
	file, tree := b.Build()

	in := h.TypeInterner()
	alias := in.Intern(typesys.MakeAlias("Config", in.Builtins().Object))
	h.Link(file, cond, varDecl)
	h.SetDeclaredType(file, varDecl, alias)
	h.SetExprType(file, cond, in.Builtins().Bool)

	bag := diag.NewBag(0)
	Check(tree, h, diag.BagReporter{Bag: bag})
	if bag.Len() != 1 || bag.Items()[0].Code != diag.CndAlwaysTrue {
		t.Fatalf("aliased object declaration must flag always-true, got %v", bag.Items())
	}
}

func TestTernaryConditionExamined(t *testing.T) {
	h := memhost.New()
	b := testkit.NewBuilder(h, "ternary.ts")
	var cond syntax.NodeID
	root := b.Node(syntax.KindSourceFile, func() []syntax.NodeID {
		stmt := b.Node(syntax.KindExprStmt, func() []syntax.NodeID {
			ternary := b.Node(syntax.KindCondExpr, func() []syntax.NodeID {
				cond = b.Literal("0")
				b.W(" ? ")
				whenTrue := b.Ident("a")
				b.W(" : ")
				whenFalse := b.Ident("b")
				return []syntax.NodeID{cond, whenTrue, whenFalse}
			})
			return []syntax.NodeID{ternary}
		})
		return []syntax.NodeID{stmt}
	})
	b.SetRoot(root)
	file, tree := b.Build()
	h.SetExprType(file, cond, h.TypeInterner().Intern(typesys.MakeNumberLiteral(0)))

	bag := diag.NewBag(0)
	Check(tree, h, diag.BagReporter{Bag: bag})
	if bag.Len() != 1 || bag.Items()[0].Code != diag.CndAlwaysFalse {
		t.Fatalf("zero-literal ternary must flag always-false, got %v", bag.Items())
	}
}

func TestCheckIsRepeatable(t *testing.T) {
	f := buildIf(func(b *testkit.Builder) syntax.NodeID { return b.Literal("true") })
	f.h.SetExprType(f.file, f.cond, f.h.TypeInterner().Builtins().True)
	first := run(f)
	second := run(f)
	if first.Len() != second.Len() {
		t.Fatalf("repeat run changed results: %d vs %d", first.Len(), second.Len())
	}
}
