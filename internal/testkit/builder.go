// Package testkit fabricates in-memory host fixtures for the analysis
// tests. A Builder composes synthetic source text and the matching syntax
// nodes in one pass, so spans, text extraction and diagnostic messages work
// against real content.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"beacon/internal/memhost"
	"beacon/internal/source"
	"beacon/internal/syntax"
)

type nodeSpec struct {
	kind     syntax.NodeKind
	start    uint32
	end      uint32
	text     string
	flags    syntax.NodeFlags
	children []syntax.NodeID
}

// Builder records node construction against a growing text buffer. Node IDs
// are handed out in allocation order and stay valid in the built tree.
type Builder struct {
	host  *memhost.Host
	path  string
	text  strings.Builder
	nodes []nodeSpec
	root  syntax.NodeID
}

func NewBuilder(h *memhost.Host, path string) *Builder {
	return &Builder{host: h, path: path}
}

func (b *Builder) cur() uint32 {
	n, err := safecast.Conv[uint32](b.text.Len())
	if err != nil {
		panic(fmt.Errorf("fixture length overflow: %w", err))
	}
	return n
}

// W writes raw text that belongs to no node of its own (punctuation,
// keywords, separators).
func (b *Builder) W(s string) {
	b.text.WriteString(s)
}

func (b *Builder) alloc(kind syntax.NodeKind, start, end uint32, text string, children []syntax.NodeID) syntax.NodeID {
	b.nodes = append(b.nodes, nodeSpec{
		kind: kind, start: start, end: end, text: text, children: children,
	})
	return syntax.NodeID(len(b.nodes)) // #nosec G115 -- fixtures are tiny
}

// Node writes a composite: build runs between the span marks and returns
// the children in convention order.
func (b *Builder) Node(kind syntax.NodeKind, build func() []syntax.NodeID) syntax.NodeID {
	start := b.cur()
	children := build()
	return b.alloc(kind, start, b.cur(), "", children)
}

// Ident writes an identifier token node.
func (b *Builder) Ident(name string) syntax.NodeID {
	start := b.cur()
	b.W(name)
	return b.alloc(syntax.KindIdent, start, b.cur(), name, nil)
}

// This writes a `this` expression.
func (b *Builder) This() syntax.NodeID {
	start := b.cur()
	b.W("this")
	return b.alloc(syntax.KindThisExpr, start, b.cur(), "", nil)
}

// Literal writes a literal token with the given spelling.
func (b *Builder) Literal(spelling string) syntax.NodeID {
	start := b.cur()
	b.W(spelling)
	return b.alloc(syntax.KindLiteral, start, b.cur(), spelling, nil)
}

// Annotation writes a `: name` type annotation.
func (b *Builder) Annotation(name string) syntax.NodeID {
	b.W(": ")
	start := b.cur()
	b.W(name)
	return b.alloc(syntax.KindTypeAnnotation, start, b.cur(), name, nil)
}

// ThisProp writes `this.<name>` and returns the access and the name node.
func (b *Builder) ThisProp(name string) (access, nameNode syntax.NodeID) {
	start := b.cur()
	target := b.This()
	b.W(".")
	nameNode = b.Ident(name)
	access = b.alloc(syntax.KindPropertyAccess, start, b.cur(), "", []syntax.NodeID{target, nameNode})
	return access, nameNode
}

// Call writes `<callee>(<args>)`; build returns callee first, then args.
func (b *Builder) Call(build func() []syntax.NodeID) syntax.NodeID {
	start := b.cur()
	children := build()
	return b.alloc(syntax.KindCallExpr, start, b.cur(), "", children)
}

// Paren writes `(<inner>)`.
func (b *Builder) Paren(build func() syntax.NodeID) syntax.NodeID {
	start := b.cur()
	b.W("(")
	inner := build()
	b.W(")")
	return b.alloc(syntax.KindParenExpr, start, b.cur(), "", []syntax.NodeID{inner})
}

// Flag merges flags into an already-allocated node.
func (b *Builder) Flag(id syntax.NodeID, flags syntax.NodeFlags) {
	if int(id) >= 1 && int(id) <= len(b.nodes) {
		b.nodes[id-1].flags |= flags
	}
}

// SetRoot selects the root node; without it the last allocation wins.
func (b *Builder) SetRoot(id syntax.NodeID) { b.root = id }

// Build registers the composed text as a virtual file and replays the
// recorded nodes into its tree. The returned IDs match the ones handed out
// during composition.
func (b *Builder) Build() (source.FileID, *syntax.Tree) {
	file, tree := b.host.AddFile(b.path, []byte(b.text.String()))
	for _, spec := range b.nodes {
		span := source.Span{File: file, Start: spec.start, End: spec.end}
		id := tree.New(spec.kind, span, spec.children...)
		if spec.text != "" {
			tree.SetText(id, spec.text)
		}
		if spec.flags != 0 {
			tree.SetFlags(id, spec.flags)
		}
	}
	root := b.root
	if !root.IsValid() && len(b.nodes) > 0 {
		root = syntax.NodeID(len(b.nodes)) // #nosec G115 -- fixtures are tiny
	}
	tree.SetRoot(root)
	return file, tree
}
