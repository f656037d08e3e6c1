package navigate

import (
	"slices"

	"beacon/internal/host"
	"beacon/internal/source"
	"beacon/internal/syntax"
)

// References answers "find references at position". For a query on a
// constructor keyword it additionally surfaces indirect constructor
// invocations: places where the class itself flows as a value into a call
// (e.g. a factory that news it up internally). Everything else returns the
// host baseline untouched.
func (s *Service) References(file source.FileID, offset uint32) []host.ReferenceGroup {
	base := s.host.References(file, offset)
	tree := s.host.Tree(file)
	if tree == nil {
		return base
	}
	ctor := constructorAt(tree, offset)
	if !ctor.IsValid() {
		return base
	}
	if len(base) != 1 || base[0].Definition.Kind != host.ElemClass {
		return base
	}
	class := tree.EnclosingClass(ctor)
	className := tree.NameOf(class)
	if !className.IsValid() {
		return base
	}
	var extra []host.ReferenceEntry
	for _, group := range s.host.ReferencesAt(file, className) {
		for _, ref := range group.References {
			refTree := s.host.Tree(ref.File)
			if refTree == nil {
				continue
			}
			node := ref.Node
			if !node.IsValid() {
				node = refTree.NodeAt(ref.Span.Start)
			}
			if isIndirectConstructorUse(refTree, node) {
				extra = append(extra, ref)
			}
		}
	}
	if len(extra) == 0 {
		return base
	}
	group := base[0]
	return []host.ReferenceGroup{{
		Definition: group.Definition,
		References: append(slices.Clone(group.References), extra...),
	}}
}

// constructorAt returns the constructor whose keyword token sits at offset.
func constructorAt(tree *syntax.Tree, offset uint32) syntax.NodeID {
	tok := tree.NodeAt(offset)
	if tree.KindOf(tok) != syntax.KindIdent {
		return syntax.NoNodeID
	}
	parent := tree.Parent(tok)
	if tree.KindOf(parent) == syntax.KindConstructor && tree.NameOf(parent) == tok {
		return parent
	}
	return syntax.NoNodeID
}

// isIndirectConstructorUse reports whether the class reference reaches a
// call expression without crossing a property-access boundary: the class is
// used directly as a value being invoked or handed to an invocation, not as
// `Class.member`.
func isIndirectConstructorUse(tree *syntax.Tree, node syntax.NodeID) bool {
	cur := node
	for cur.IsValid() {
		parent := tree.Parent(cur)
		switch tree.KindOf(parent) {
		case syntax.KindParenExpr:
			cur = parent
		case syntax.KindCallExpr:
			return true
		default:
			return false
		}
	}
	return false
}
