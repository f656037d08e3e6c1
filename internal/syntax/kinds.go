package syntax

import "fmt"

// NodeKind enumerates the host-language constructs the overlay inspects.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindSourceFile
	KindClassDecl
	KindConstructor
	KindMethodDecl
	KindGetAccessor
	KindSetAccessor
	KindPropertyDecl
	KindParameter
	KindStaticBlock
	KindFunctionDecl
	KindFunctionExpr
	KindArrowFunction
	KindBlock
	KindVarDecl
	KindExprStmt
	KindIfStmt
	KindReturnStmt
	KindCondExpr
	KindCallExpr
	KindNewExpr
	KindTaggedTemplate
	KindTemplateLiteral
	KindPropertyAccess
	KindElementAccess
	KindAssignExpr
	KindBinaryExpr
	KindParenExpr
	KindIdent
	KindThisExpr
	KindLiteral
	KindTypeAnnotation
)

func (k NodeKind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindSourceFile:
		return "source_file"
	case KindClassDecl:
		return "class"
	case KindConstructor:
		return "constructor"
	case KindMethodDecl:
		return "method"
	case KindGetAccessor:
		return "get_accessor"
	case KindSetAccessor:
		return "set_accessor"
	case KindPropertyDecl:
		return "property"
	case KindParameter:
		return "parameter"
	case KindStaticBlock:
		return "static_block"
	case KindFunctionDecl:
		return "function"
	case KindFunctionExpr:
		return "function_expr"
	case KindArrowFunction:
		return "arrow_function"
	case KindBlock:
		return "block"
	case KindVarDecl:
		return "var_decl"
	case KindExprStmt:
		return "expr_stmt"
	case KindIfStmt:
		return "if"
	case KindReturnStmt:
		return "return"
	case KindCondExpr:
		return "conditional"
	case KindCallExpr:
		return "call"
	case KindNewExpr:
		return "new"
	case KindTaggedTemplate:
		return "tagged_template"
	case KindTemplateLiteral:
		return "template_literal"
	case KindPropertyAccess:
		return "property_access"
	case KindElementAccess:
		return "element_access"
	case KindAssignExpr:
		return "assign"
	case KindBinaryExpr:
		return "binary"
	case KindParenExpr:
		return "paren"
	case KindIdent:
		return "ident"
	case KindThisExpr:
		return "this"
	case KindLiteral:
		return "literal"
	case KindTypeAnnotation:
		return "type_annotation"
	default:
		return fmt.Sprintf("NodeKind(%d)", k)
	}
}

// IsFunctionLike reports whether the kind opens a deferred-execution body:
// its contents only run once something invokes it.
func (k NodeKind) IsFunctionLike() bool {
	switch k {
	case KindMethodDecl, KindFunctionDecl, KindFunctionExpr, KindArrowFunction:
		return true
	}
	return false
}

// IsReferenceContainer reports whether the kind is a unit of reference-graph
// traversal: the nearest enclosing member or function declaration of a use.
func (k NodeKind) IsReferenceContainer() bool {
	switch k {
	case KindPropertyDecl, KindMethodDecl, KindGetAccessor, KindSetAccessor,
		KindConstructor, KindStaticBlock, KindArrowFunction, KindFunctionExpr,
		KindFunctionDecl, KindParameter:
		return true
	}
	return false
}

// IsClassMember reports whether the kind can appear directly in a class body.
func (k NodeKind) IsClassMember() bool {
	switch k {
	case KindConstructor, KindMethodDecl, KindGetAccessor, KindSetAccessor,
		KindPropertyDecl, KindStaticBlock:
		return true
	}
	return false
}
