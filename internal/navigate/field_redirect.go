package navigate

import (
	"beacon/internal/host"
	"beacon/internal/syntax"
)

// redirectUntypedField rewrites a definition result that targets an
// unannotated class field so it points at the first top-level
// `this.<name> = <value>` assignment in the constructor instead: for a field
// whose type is entirely determined by that assignment, the assignment is
// the more useful jump target. Annotated fields and anything this cannot
// locate keep the baseline result.
func (s *Service) redirectUntypedField(defs []host.DefinitionInfo) []host.DefinitionInfo {
	if len(defs) == 0 || defs[0].Kind != host.ElemMemberVar {
		return defs
	}
	first := defs[0]
	tree := s.host.Tree(first.File)
	if tree == nil {
		return defs
	}
	decl := fieldDeclAt(tree, first.Span.Start)
	if !decl.IsValid() || tree.AnnotationOf(decl).IsValid() {
		return defs
	}
	fieldName := tree.DeclName(decl)
	if fieldName == "" {
		return defs
	}
	class := tree.EnclosingClass(decl)
	ctor := tree.ConstructorOf(class)
	body := tree.BodyOf(ctor)
	if tree.KindOf(body) != syntax.KindBlock {
		return defs
	}
	// top-level statements only: assignments nested in blocks, conditionals
	// or loops do not qualify
	for _, stmt := range tree.StatementsOf(body) {
		name := thisAssignmentName(tree, stmt, fieldName)
		if !name.IsValid() {
			continue
		}
		return []host.DefinitionInfo{{
			File:          first.File,
			Span:          tree.SpanOf(name),
			Kind:          host.ElemLocalVar,
			Name:          fieldName,
			ContainerName: tree.DeclName(class),
		}}
	}
	return defs
}

// fieldDeclAt resolves the property declaration whose name token sits at the
// byte offset.
func fieldDeclAt(tree *syntax.Tree, offset uint32) syntax.NodeID {
	node := tree.NodeAt(offset)
	if tree.KindOf(node) == syntax.KindPropertyDecl {
		return node
	}
	if tree.KindOf(node) == syntax.KindIdent {
		parent := tree.Parent(node)
		if tree.KindOf(parent) == syntax.KindPropertyDecl && tree.NameOf(parent) == node {
			return parent
		}
	}
	return syntax.NoNodeID
}

// thisAssignmentName matches an expression statement of the exact shape
// `this.<field> = <value>` and returns the member-name token.
func thisAssignmentName(tree *syntax.Tree, stmt syntax.NodeID, field string) syntax.NodeID {
	if tree.KindOf(stmt) != syntax.KindExprStmt {
		return syntax.NoNodeID
	}
	expr := tree.InnerOf(stmt)
	if tree.KindOf(expr) != syntax.KindAssignExpr {
		return syntax.NoNodeID
	}
	lhs := tree.AssignLeft(expr)
	if tree.KindOf(lhs) != syntax.KindPropertyAccess {
		return syntax.NoNodeID
	}
	if tree.KindOf(tree.AccessTarget(lhs)) != syntax.KindThisExpr {
		return syntax.NoNodeID
	}
	name := tree.AccessName(lhs)
	if tree.TextOf(name) != field {
		return syntax.NoNodeID
	}
	return name
}
