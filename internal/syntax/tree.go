package syntax

import (
	"fmt"

	"fortio.org/safecast"

	"beacon/internal/source"
)

// Tree is an arena of immutable nodes for one parsed file. Nodes never change
// after construction; a reparse produces a whole new Tree.
type Tree struct {
	file    source.FileID
	nodes   []Node
	strings *source.Interner
	root    NodeID
}

// NewTree creates an empty tree for the file. The interner may be shared
// across trees; a nil interner gets a private one.
func NewTree(file source.FileID, strings *source.Interner) *Tree {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Tree{file: file, strings: strings}
}

// File returns the file this tree was built from.
func (t *Tree) File() source.FileID { return t.file }

// Strings returns the tree's string interner.
func (t *Tree) Strings() *source.Interner { return t.strings }

// Root returns the tree's root node.
func (t *Tree) Root() NodeID { return t.root }

// SetRoot records the root node.
func (t *Tree) SetRoot(id NodeID) { t.root = id }

// Len returns the number of allocated nodes.
func (t *Tree) Len() uint32 {
	n, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(fmt.Errorf("node count overflow: %w", err))
	}
	return n
}

// New allocates a node and links the given children to it. Children must
// belong to this tree and not have a parent yet.
func (t *Tree) New(kind NodeKind, span source.Span, children ...NodeID) NodeID {
	next, err := safecast.Conv[uint32](len(t.nodes) + 1)
	if err != nil {
		panic(fmt.Errorf("node id overflow: %w", err))
	}
	id := NodeID(next)
	t.nodes = append(t.nodes, Node{Kind: kind, Span: span, Children: children})
	for _, child := range children {
		if node := t.get(child); node != nil {
			node.Parent = id
		}
	}
	return id
}

// SetText interns s as the node's text (identifier or literal spelling).
func (t *Tree) SetText(id NodeID, s string) {
	if node := t.get(id); node != nil {
		node.Text = t.strings.Intern(s)
	}
}

// SetFlags merges flags into the node.
func (t *Tree) SetFlags(id NodeID, flags NodeFlags) {
	if node := t.get(id); node != nil {
		node.Flags |= flags
	}
}

func (t *Tree) get(id NodeID) *Node {
	if !id.IsValid() || int(id) > len(t.nodes) {
		return nil
	}
	return &t.nodes[id-1]
}

// Get returns the node for the ID, or nil for an unknown ID.
func (t *Tree) Get(id NodeID) *Node {
	return t.get(id)
}

// KindOf returns the node's kind, KindInvalid for an unknown ID.
func (t *Tree) KindOf(id NodeID) NodeKind {
	if node := t.get(id); node != nil {
		return node.Kind
	}
	return KindInvalid
}

// SpanOf returns the node's span, the zero span for an unknown ID.
func (t *Tree) SpanOf(id NodeID) source.Span {
	if node := t.get(id); node != nil {
		return node.Span
	}
	return source.Span{}
}

// TextOf returns the node's interned text.
func (t *Tree) TextOf(id NodeID) string {
	if node := t.get(id); node != nil {
		return t.strings.MustLookup(node.Text)
	}
	return ""
}

// Parent returns the node's parent ID.
func (t *Tree) Parent(id NodeID) NodeID {
	if node := t.get(id); node != nil {
		return node.Parent
	}
	return NoNodeID
}

// NodeAt returns the innermost node whose span contains the byte offset.
func (t *Tree) NodeAt(offset uint32) NodeID {
	var (
		best      NodeID
		bestWidth uint32
	)
	for i := range t.nodes {
		node := &t.nodes[i]
		if !node.Span.Contains(offset) {
			continue
		}
		width := node.Span.Len()
		if !best.IsValid() || width < bestWidth {
			best = NodeID(i + 1) // #nosec G115 -- bounded by Tree.New
			bestWidth = width
		}
	}
	return best
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// prunes the subtree below the current node.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	node := t.get(id)
	if node == nil || !fn(id) {
		return
	}
	for _, child := range node.Children {
		t.Walk(child, fn)
	}
}
