package memhost_test

import (
	"testing"

	"beacon/internal/host"
	"beacon/internal/memhost"
	"beacon/internal/syntax"
	"beacon/internal/testkit"
)

func TestClassDefinitionsIncludeConstructor(t *testing.T) {
	h := memhost.New()
	b := testkit.NewBuilder(h, "c.ts")
	var class, use syntax.NodeID
	root := b.Node(syntax.KindSourceFile, func() []syntax.NodeID {
		class = b.Node(syntax.KindClassDecl, func() []syntax.NodeID {
			b.W("class ")
			name := b.Ident("C")
			b.W(" { ")
			ctor := b.Node(syntax.KindConstructor, func() []syntax.NodeID {
				cn := b.Ident("constructor")
				b.W("() ")
				body := b.Node(syntax.KindBlock, func() []syntax.NodeID {
					b.W("{}")
					return nil
				})
				return []syntax.NodeID{cn, body}
			})
			b.W(" }")
			return []syntax.NodeID{name, ctor}
		})
		b.W("\n")
		stmt := b.Node(syntax.KindExprStmt, func() []syntax.NodeID {
			use = b.Ident("C")
			return []syntax.NodeID{use}
		})
		b.W(";")
		return []syntax.NodeID{class, stmt}
	})
	b.SetRoot(root)
	file, tree := b.Build()
	h.Link(file, use, class)

	defs := h.Definitions(file, tree.SpanOf(use).Start)
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want class plus constructor", len(defs))
	}
	if defs[0].Kind != host.ElemClass || defs[1].Kind != host.ElemConstructor {
		t.Fatalf("kinds = %v, %v", defs[0].Kind, defs[1].Kind)
	}
	if defs[1].ContainerName != "C" {
		t.Fatalf("constructor container = %q", defs[1].ContainerName)
	}
}

func TestReferencesAtGroupsUses(t *testing.T) {
	h := memhost.New()
	b := testkit.NewBuilder(h, "r.ts")
	var decl, use1, use2 syntax.NodeID
	root := b.Node(syntax.KindSourceFile, func() []syntax.NodeID {
		decl = b.Node(syntax.KindVarDecl, func() []syntax.NodeID {
			b.W("let ")
			return []syntax.NodeID{b.Ident("v")}
		})
		b.W(";\n")
		s1 := b.Node(syntax.KindExprStmt, func() []syntax.NodeID {
			use1 = b.Ident("v")
			return []syntax.NodeID{use1}
		})
		b.W(";\n")
		s2 := b.Node(syntax.KindExprStmt, func() []syntax.NodeID {
			use2 = b.Ident("v")
			return []syntax.NodeID{use2}
		})
		b.W(";\n")
		return []syntax.NodeID{decl, s1, s2}
	})
	b.SetRoot(root)
	file, tree := b.Build()
	h.Link(file, use1, decl)
	h.Link(file, use2, decl)

	// seeding from a use and from the declaration name must agree
	for _, seed := range []syntax.NodeID{use1, tree.NameOf(decl)} {
		groups := h.ReferencesAt(file, seed)
		if len(groups) != 1 {
			t.Fatalf("seed %v: %d groups", seed, len(groups))
		}
		if len(groups[0].References) != 2 {
			t.Fatalf("seed %v: %d references", seed, len(groups[0].References))
		}
		if groups[0].Definition.Kind != host.ElemLocalVar {
			t.Fatalf("definition kind = %v", groups[0].Definition.Kind)
		}
	}
}

func TestDeclarationOfStaysInFile(t *testing.T) {
	h := memhost.New()
	b1 := testkit.NewBuilder(h, "one.ts")
	var decl syntax.NodeID
	root1 := b1.Node(syntax.KindSourceFile, func() []syntax.NodeID {
		decl = b1.Node(syntax.KindVarDecl, func() []syntax.NodeID {
			b1.W("let ")
			return []syntax.NodeID{b1.Ident("shared")}
		})
		b1.W(";")
		return []syntax.NodeID{decl}
	})
	b1.SetRoot(root1)
	file1, _ := b1.Build()

	b2 := testkit.NewBuilder(h, "two.ts")
	var use syntax.NodeID
	root2 := b2.Node(syntax.KindSourceFile, func() []syntax.NodeID {
		stmt := b2.Node(syntax.KindExprStmt, func() []syntax.NodeID {
			use = b2.Ident("shared")
			return []syntax.NodeID{use}
		})
		b2.W(";")
		return []syntax.NodeID{stmt}
	})
	b2.SetRoot(root2)
	file2, _ := b2.Build()

	h.LinkCross(file2, use, file1, decl)

	if got := h.DeclarationOf(file2, use); got.IsValid() {
		t.Fatalf("cross-file declaration must not leak a foreign node ID, got %v", got)
	}
	// the reference query still works across files
	groups := h.ReferencesAt(file2, use)
	if len(groups) != 1 || groups[0].Definition.File != file1 {
		t.Fatalf("cross-file reference group wrong: %v", groups)
	}
}
