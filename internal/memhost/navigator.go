package memhost

import (
	"beacon/internal/diag"
	"beacon/internal/host"
	"beacon/internal/source"
	"beacon/internal/syntax"
)

// Baseline navigation. This mirrors the behavior of the external frontend
// the overlay is specified against: a definition query on a class used in a
// `new` expression yields the class and its constructor as separate entries,
// reference queries return one group per symbol, and unknown files yield
// nothing.

func (h *Host) Definitions(file source.FileID, offset uint32) []host.DefinitionInfo {
	tree := h.trees[file]
	if tree == nil {
		return nil
	}
	tok := tree.NodeAt(offset)
	if tree.KindOf(tok) != syntax.KindIdent {
		return nil
	}
	declFile, decl := h.resolveDecl(file, tok)
	if !decl.IsValid() {
		return nil
	}
	declTree := h.trees[declFile]
	info := h.definitionInfo(declFile, decl)
	defs := []host.DefinitionInfo{info}
	if declTree != nil && declTree.KindOf(decl) == syntax.KindClassDecl {
		if ctor := declTree.ConstructorOf(decl); ctor.IsValid() {
			defs = append(defs, h.definitionInfo(declFile, ctor))
		}
	}
	return defs
}

func (h *Host) DefinitionAndSpan(file source.FileID, offset uint32) *host.DefinitionSpanResult {
	defs := h.Definitions(file, offset)
	if len(defs) == 0 {
		return nil
	}
	tree := h.trees[file]
	return &host.DefinitionSpanResult{
		Definitions: defs,
		BoundSpan:   tree.SpanOf(tree.NodeAt(offset)),
	}
}

func (h *Host) References(file source.FileID, offset uint32) []host.ReferenceGroup {
	tree := h.trees[file]
	if tree == nil {
		return nil
	}
	tok := tree.NodeAt(offset)
	if tree.KindOf(tok) != syntax.KindIdent {
		return nil
	}
	// the host groups a constructor query under its owning class
	if ctorParent := tree.Parent(tok); tree.KindOf(ctorParent) == syntax.KindConstructor &&
		tree.NameOf(ctorParent) == tok {
		class := tree.EnclosingClass(ctorParent)
		if class.IsValid() {
			refs := h.refIndex[nodeKey{file, ctorParent}]
			return []host.ReferenceGroup{{
				Definition: h.definitionInfo(file, class),
				References: refs,
			}}
		}
	}
	return h.ReferencesAt(file, tok)
}

func (h *Host) SemanticDiagnostics(file source.FileID) []diag.Diagnostic {
	return h.diags[file]
}

func (h *Host) resolveDecl(file source.FileID, tok syntax.NodeID) (source.FileID, syntax.NodeID) {
	if decl, ok := h.decls[nodeKey{file, tok}]; ok {
		return decl.file, decl.node
	}
	tree := h.trees[file]
	if parent := tree.Parent(tok); tree.NameOf(parent) == tok {
		return file, parent
	}
	return file, syntax.NoNodeID
}

func (h *Host) definitionInfo(file source.FileID, decl syntax.NodeID) host.DefinitionInfo {
	tree := h.trees[file]
	if tree == nil {
		return host.DefinitionInfo{}
	}
	span := tree.SpanOf(decl)
	if name := tree.NameOf(decl); name.IsValid() {
		span = tree.SpanOf(name)
	}
	return host.DefinitionInfo{
		File:          file,
		Span:          span,
		Kind:          elementKind(tree.KindOf(decl)),
		Name:          tree.DeclName(decl),
		ContainerName: containerName(tree, decl),
	}
}

func elementKind(k syntax.NodeKind) host.ElementKind {
	switch k {
	case syntax.KindClassDecl:
		return host.ElemClass
	case syntax.KindConstructor:
		return host.ElemConstructor
	case syntax.KindMethodDecl, syntax.KindGetAccessor, syntax.KindSetAccessor:
		return host.ElemMethod
	case syntax.KindPropertyDecl:
		return host.ElemMemberVar
	case syntax.KindParameter:
		return host.ElemParameter
	case syntax.KindVarDecl:
		return host.ElemLocalVar
	case syntax.KindFunctionDecl:
		return host.ElemFunction
	default:
		return host.ElemUnknown
	}
}

func containerName(tree *syntax.Tree, decl syntax.NodeID) string {
	owner := tree.AncestorOfKind(decl, func(k syntax.NodeKind) bool {
		return k == syntax.KindClassDecl || k == syntax.KindFunctionDecl
	})
	return tree.DeclName(owner)
}
