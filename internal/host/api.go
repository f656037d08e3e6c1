// Package host declares what the overlay consumes from the analysis host:
// parsed trees, type resolution, reference resolution and the baseline
// navigation queries. Everything is injected explicitly; there is no
// package-level handle to a "current" host.
package host

import (
	"fmt"

	"beacon/internal/diag"
	"beacon/internal/source"
	"beacon/internal/syntax"
	"beacon/internal/typesys"
)

// ElementKind classifies a navigation target.
type ElementKind uint8

const (
	ElemUnknown ElementKind = iota
	ElemClass
	ElemConstructor
	ElemMethod
	ElemMemberVar
	ElemLocalVar
	ElemFunction
	ElemParameter
)

func (k ElementKind) String() string {
	switch k {
	case ElemClass:
		return "class"
	case ElemConstructor:
		return "constructor"
	case ElemMethod:
		return "method"
	case ElemMemberVar:
		return "member variable"
	case ElemLocalVar:
		return "local variable"
	case ElemFunction:
		return "function"
	case ElemParameter:
		return "parameter"
	case ElemUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("ElementKind(%d)", k)
	}
}

// DefinitionInfo is a host-shaped navigation result record. The span is the
// definition's name token.
type DefinitionInfo struct {
	File          source.FileID
	Span          source.Span
	Kind          ElementKind
	Name          string
	ContainerName string
}

// DefinitionSpanResult pairs definitions with the span of the queried token.
type DefinitionSpanResult struct {
	Definitions []DefinitionInfo
	BoundSpan   source.Span
}

// ReferenceEntry locates one syntactic use.
type ReferenceEntry struct {
	File source.FileID
	Span source.Span
	Node syntax.NodeID // the use node inside that file's tree
}

// ReferenceGroup is the host's per-symbol reference result: a definition
// descriptor plus every use found for it.
type ReferenceGroup struct {
	Definition DefinitionInfo
	References []ReferenceEntry
}

// Trees exposes the host's parsed syntax.
type Trees interface {
	// Tree returns the syntax tree for the file, nil for an unknown file.
	Tree(file source.FileID) *syntax.Tree
	// Files returns the host's file set.
	Files() *source.FileSet
}

// Types resolves expressions and declarations against the host's type system.
type Types interface {
	// Interner gives access to the closed type-variant table.
	Interner() *typesys.Interner
	// TypeOf returns the (possibly narrowed) type at the expression,
	// NoTypeID when the host has nothing.
	TypeOf(file source.FileID, expr syntax.NodeID) typesys.TypeID
	// DeclarationOf returns the originating declaration of an identifier use.
	DeclarationOf(file source.FileID, ident syntax.NodeID) syntax.NodeID
	// DeclaredType returns the type from an explicit annotation on the
	// declaration, NoTypeID when the declaration is unannotated.
	DeclaredType(file source.FileID, decl syntax.NodeID) typesys.TypeID
}

// References resolves every reference to the symbol named at the given node.
type References interface {
	ReferencesAt(file source.FileID, node syntax.NodeID) []ReferenceGroup
}

// Navigator is the host's baseline navigation surface the redirector wraps.
type Navigator interface {
	Definitions(file source.FileID, offset uint32) []DefinitionInfo
	DefinitionAndSpan(file source.FileID, offset uint32) *DefinitionSpanResult
	References(file source.FileID, offset uint32) []ReferenceGroup
	SemanticDiagnostics(file source.FileID) []diag.Diagnostic
}

// API is the complete host surface the overlay depends on.
type API interface {
	Trees
	Types
	References
	Navigator
}
