// Package memhost is a complete in-memory implementation of host.API. The
// snapshot loader decodes host-exported analysis state into it, and the test
// kit fabricates fixtures through it; the analysis passes only ever see the
// host interfaces.
package memhost

import (
	"beacon/internal/diag"
	"beacon/internal/host"
	"beacon/internal/source"
	"beacon/internal/syntax"
	"beacon/internal/typesys"
)

type nodeKey struct {
	file source.FileID
	node syntax.NodeID
}

// declRef locates a declaration in its own tree.
type declRef struct {
	file source.FileID
	node syntax.NodeID
}

// Host holds trees, type assignments, symbol links and a reference index.
type Host struct {
	files   *source.FileSet
	strings *source.Interner
	types   *typesys.Interner

	trees     map[source.FileID]*syntax.Tree
	exprTypes map[nodeKey]typesys.TypeID
	declTypes map[nodeKey]typesys.TypeID
	decls     map[nodeKey]declRef // ident use -> declaration
	refIndex  map[nodeKey][]host.ReferenceEntry
	diags     map[source.FileID][]diag.Diagnostic
}

func New() *Host {
	return &Host{
		files:     source.NewFileSet(),
		strings:   source.NewInterner(),
		types:     typesys.NewInterner(),
		trees:     make(map[source.FileID]*syntax.Tree),
		exprTypes: make(map[nodeKey]typesys.TypeID),
		declTypes: make(map[nodeKey]typesys.TypeID),
		decls:     make(map[nodeKey]declRef),
		refIndex:  make(map[nodeKey][]host.ReferenceEntry),
		diags:     make(map[source.FileID][]diag.Diagnostic),
	}
}

// AddFile registers file content and returns an empty tree to build into.
func (h *Host) AddFile(path string, content []byte) (source.FileID, *syntax.Tree) {
	id := h.files.AddVirtual(path, content)
	tree := syntax.NewTree(id, h.strings)
	h.trees[id] = tree
	return id, tree
}

// SetExprType records the (possibly narrowed) type at an expression.
func (h *Host) SetExprType(file source.FileID, expr syntax.NodeID, ty typesys.TypeID) {
	h.exprTypes[nodeKey{file, expr}] = ty
}

// SetDeclaredType records the explicit-annotation type of a declaration.
func (h *Host) SetDeclaredType(file source.FileID, decl syntax.NodeID, ty typesys.TypeID) {
	h.declTypes[nodeKey{file, decl}] = ty
}

// Link binds an identifier use to its same-file declaration node and indexes
// the use as a reference to that declaration.
func (h *Host) Link(file source.FileID, use syntax.NodeID, decl syntax.NodeID) {
	h.LinkCross(file, use, file, decl)
}

// LinkCross binds a use in one file to a declaration in (possibly) another.
func (h *Host) LinkCross(useFile source.FileID, use syntax.NodeID, declFile source.FileID, decl syntax.NodeID) {
	h.decls[nodeKey{useFile, use}] = declRef{file: declFile, node: decl}
	tree := h.trees[useFile]
	if tree == nil {
		return
	}
	entry := host.ReferenceEntry{File: useFile, Span: tree.SpanOf(use), Node: use}
	key := nodeKey{declFile, decl}
	h.refIndex[key] = append(h.refIndex[key], entry)
}

// AddDiagnostic registers a baseline semantic diagnostic for the file.
func (h *Host) AddDiagnostic(file source.FileID, d diag.Diagnostic) {
	h.diags[file] = append(h.diags[file], d)
}

// TypeInterner exposes the type table for fixture construction.
func (h *Host) TypeInterner() *typesys.Interner { return h.types }

// host.Trees ----------------------------------------------------------------

func (h *Host) Tree(file source.FileID) *syntax.Tree { return h.trees[file] }

func (h *Host) Files() *source.FileSet { return h.files }

// host.Types ----------------------------------------------------------------

func (h *Host) Interner() *typesys.Interner { return h.types }

func (h *Host) TypeOf(file source.FileID, expr syntax.NodeID) typesys.TypeID {
	return h.exprTypes[nodeKey{file, expr}]
}

func (h *Host) DeclarationOf(file source.FileID, ident syntax.NodeID) syntax.NodeID {
	if decl, ok := h.decls[nodeKey{file, ident}]; ok {
		if decl.file != file {
			// the overlay only follows declarations inside the same tree
			return syntax.NoNodeID
		}
		return decl.node
	}
	// a declaration's own name node resolves to its declaration
	tree := h.trees[file]
	if tree == nil {
		return syntax.NoNodeID
	}
	if parent := tree.Parent(ident); tree.NameOf(parent) == ident {
		return parent
	}
	return syntax.NoNodeID
}

func (h *Host) DeclaredType(file source.FileID, decl syntax.NodeID) typesys.TypeID {
	tree := h.trees[file]
	if tree == nil || !tree.AnnotationOf(decl).IsValid() {
		return typesys.NoTypeID
	}
	return h.declTypes[nodeKey{file, decl}]
}

// host.References -----------------------------------------------------------

// ReferencesAt resolves the symbol named at node and returns its single
// reference group. The seed may be a use, a declaration, or a declaration's
// name node.
func (h *Host) ReferencesAt(file source.FileID, node syntax.NodeID) []host.ReferenceGroup {
	decl := h.canonicalDecl(file, node)
	if !decl.node.IsValid() {
		return nil
	}
	refs := h.refIndex[nodeKey{decl.file, decl.node}]
	if len(refs) == 0 {
		return nil
	}
	return []host.ReferenceGroup{{
		Definition: h.definitionInfo(decl.file, decl.node),
		References: refs,
	}}
}

func (h *Host) canonicalDecl(file source.FileID, node syntax.NodeID) declRef {
	tree := h.trees[file]
	if tree == nil || !node.IsValid() {
		return declRef{}
	}
	if decl, ok := h.decls[nodeKey{file, node}]; ok {
		return decl
	}
	if parent := tree.Parent(node); tree.NameOf(parent) == node {
		return declRef{file: file, node: parent}
	}
	if tree.NameOf(node).IsValid() {
		return declRef{file: file, node: node}
	}
	return declRef{}
}
