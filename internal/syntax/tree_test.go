package syntax

import (
	"testing"

	"beacon/internal/source"
)

func newTestTree() *Tree {
	return NewTree(source.FileID(1), source.NewInterner())
}

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestNewSetsParents(t *testing.T) {
	tr := newTestTree()
	name := tr.New(KindIdent, sp(4, 5))
	init := tr.New(KindLiteral, sp(8, 9))
	decl := tr.New(KindVarDecl, sp(0, 9), name, init)

	if tr.Parent(name) != decl || tr.Parent(init) != decl {
		t.Fatalf("children must point back at the declaration")
	}
	if tr.Parent(decl).IsValid() {
		t.Fatalf("a fresh root has no parent")
	}
	if tr.KindOf(NoNodeID) != KindInvalid {
		t.Fatalf("KindOf(NoNodeID) must be invalid")
	}
}

func TestNodeAtPicksInnermost(t *testing.T) {
	tr := newTestTree()
	// if (flag) {}
	cond := tr.New(KindIdent, sp(4, 8))
	tr.SetText(cond, "flag")
	then := tr.New(KindBlock, sp(10, 12))
	ifStmt := tr.New(KindIfStmt, sp(0, 12), cond, then)
	tr.SetRoot(ifStmt)

	if got := tr.NodeAt(5); got != cond {
		t.Fatalf("NodeAt(5) = %v, want the condition identifier", got)
	}
	if got := tr.NodeAt(0); got != ifStmt {
		t.Fatalf("NodeAt(0) = %v, want the if statement", got)
	}
	if got := tr.NodeAt(100); got.IsValid() {
		t.Fatalf("NodeAt outside the root must be invalid, got %v", got)
	}
}

func TestWalkPreOrderAndPrune(t *testing.T) {
	tr := newTestTree()
	inner := tr.New(KindIdent, sp(2, 3))
	block := tr.New(KindBlock, sp(0, 5), inner)
	root := tr.New(KindSourceFile, sp(0, 5), block)
	tr.SetRoot(root)

	var order []NodeID
	tr.Walk(tr.Root(), func(id NodeID) bool {
		order = append(order, id)
		return true
	})
	want := []NodeID{root, block, inner}
	if len(order) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visit order %v, want %v", order, want)
		}
	}

	var pruned []NodeID
	tr.Walk(tr.Root(), func(id NodeID) bool {
		pruned = append(pruned, id)
		return id != block
	})
	if len(pruned) != 2 {
		t.Fatalf("pruned walk visited %v", pruned)
	}
}

func TestAccessors(t *testing.T) {
	tr := newTestTree()
	// class C { constructor(a) {} m() {} }
	className := tr.New(KindIdent, sp(6, 7))
	tr.SetText(className, "C")

	ctorName := tr.New(KindIdent, sp(10, 21))
	tr.SetText(ctorName, "constructor")
	param := tr.New(KindParameter, sp(22, 23), tr.New(KindIdent, sp(22, 23)))
	ctorBody := tr.New(KindBlock, sp(25, 27))
	ctor := tr.New(KindConstructor, sp(10, 27), ctorName, param, ctorBody)

	mName := tr.New(KindIdent, sp(28, 29))
	tr.SetText(mName, "m")
	mBody := tr.New(KindBlock, sp(33, 35))
	method := tr.New(KindMethodDecl, sp(28, 35), mName, mBody)

	class := tr.New(KindClassDecl, sp(0, 36), className, ctor, method)
	tr.SetRoot(class)

	if tr.DeclName(class) != "C" {
		t.Fatalf("DeclName(class) = %q", tr.DeclName(class))
	}
	if tr.ConstructorOf(class) != ctor {
		t.Fatalf("ConstructorOf failed")
	}
	if got := tr.ParamsOf(ctor); len(got) != 1 || got[0] != param {
		t.Fatalf("ParamsOf = %v", got)
	}
	if tr.BodyOf(ctor) != ctorBody || tr.BodyOf(method) != mBody {
		t.Fatalf("BodyOf failed")
	}
	if members := tr.MembersOf(class); len(members) != 2 {
		t.Fatalf("MembersOf = %v", members)
	}
	if tr.EnclosingClass(mName) != class {
		t.Fatalf("EnclosingClass failed")
	}
	if tr.ReferenceContainer(mBody) != method {
		t.Fatalf("ReferenceContainer(method body) = %v", tr.ReferenceContainer(mBody))
	}
}

func TestInitializerOf(t *testing.T) {
	tr := newTestTree()

	bare := tr.New(KindPropertyDecl, sp(0, 3), tr.New(KindIdent, sp(0, 3)))
	if tr.InitializerOf(bare).IsValid() {
		t.Fatalf("a bare property has no initializer")
	}

	name := tr.New(KindIdent, sp(0, 3))
	ann := tr.New(KindTypeAnnotation, sp(5, 11))
	annotated := tr.New(KindPropertyDecl, sp(0, 11), name, ann)
	if tr.InitializerOf(annotated).IsValid() {
		t.Fatalf("annotation is not an initializer")
	}

	name2 := tr.New(KindIdent, sp(0, 3))
	value := tr.New(KindLiteral, sp(6, 7))
	withInit := tr.New(KindPropertyDecl, sp(0, 7), name2, value)
	if tr.InitializerOf(withInit) != value {
		t.Fatalf("InitializerOf = %v, want %v", tr.InitializerOf(withInit), value)
	}
}

func TestStripParens(t *testing.T) {
	tr := newTestTree()
	inner := tr.New(KindIdent, sp(2, 3))
	p1 := tr.New(KindParenExpr, sp(1, 4), inner)
	p2 := tr.New(KindParenExpr, sp(0, 5), p1)
	if tr.StripParens(p2) != inner {
		t.Fatalf("StripParens must unwrap nested parens")
	}
}
