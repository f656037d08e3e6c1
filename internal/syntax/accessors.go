package syntax

// Child conventions, per kind:
//
//	SourceFile, Block, StaticBlock   statements...
//	ClassDecl                        name, members...
//	Constructor                      name, parameters..., body block
//	MethodDecl, accessors, FunctionDecl
//	                                 name, parameters..., body block
//	FunctionExpr, ArrowFunction      parameters..., body (block or expression)
//	PropertyDecl, Parameter, VarDecl name, [annotation], [initializer]
//	IfStmt                           test, then, [else]
//	CondExpr                         test, whenTrue, whenFalse
//	CallExpr, NewExpr                callee, arguments...
//	TaggedTemplate                   tag, template
//	PropertyAccess, ElementAccess    target, name/index
//	AssignExpr, BinaryExpr           left, right
//	ParenExpr, ExprStmt, ReturnStmt  inner
//
// Accessors below are the only sanctioned way to read these slots.

func (t *Tree) child(id NodeID, i int) NodeID {
	node := t.get(id)
	if node == nil || i < 0 || i >= len(node.Children) {
		return NoNodeID
	}
	return node.Children[i]
}

// NameOf returns the declaration's name node. Anonymous functions and
// non-declarations yield NoNodeID.
func (t *Tree) NameOf(id NodeID) NodeID {
	switch t.KindOf(id) {
	case KindClassDecl, KindConstructor, KindMethodDecl, KindGetAccessor,
		KindSetAccessor, KindPropertyDecl, KindParameter, KindVarDecl,
		KindFunctionDecl:
		name := t.child(id, 0)
		if t.KindOf(name) == KindIdent {
			return name
		}
	}
	return NoNodeID
}

// DeclName returns the declaration's name text.
func (t *Tree) DeclName(id NodeID) string {
	return t.TextOf(t.NameOf(id))
}

// AnnotationOf returns the declaration's type-annotation node, if any.
func (t *Tree) AnnotationOf(id NodeID) NodeID {
	node := t.get(id)
	if node == nil {
		return NoNodeID
	}
	for _, child := range node.Children {
		if t.KindOf(child) == KindTypeAnnotation {
			return child
		}
	}
	return NoNodeID
}

// InitializerOf returns the initializer expression of a property, parameter
// or variable declaration, if any.
func (t *Tree) InitializerOf(id NodeID) NodeID {
	switch t.KindOf(id) {
	case KindPropertyDecl, KindParameter, KindVarDecl:
	default:
		return NoNodeID
	}
	node := t.get(id)
	if len(node.Children) < 2 {
		return NoNodeID
	}
	last := node.Children[len(node.Children)-1]
	if last == t.NameOf(id) || t.KindOf(last) == KindTypeAnnotation {
		return NoNodeID
	}
	return last
}

// CondOf returns the examined condition of an if statement or a conditional
// expression.
func (t *Tree) CondOf(id NodeID) NodeID {
	switch t.KindOf(id) {
	case KindIfStmt, KindCondExpr:
		return t.child(id, 0)
	}
	return NoNodeID
}

// CalleeOf returns the invoked expression of a call or new expression.
func (t *Tree) CalleeOf(id NodeID) NodeID {
	switch t.KindOf(id) {
	case KindCallExpr, KindNewExpr:
		return t.child(id, 0)
	}
	return NoNodeID
}

// TagOf returns the tag expression of a tagged template.
func (t *Tree) TagOf(id NodeID) NodeID {
	if t.KindOf(id) == KindTaggedTemplate {
		return t.child(id, 0)
	}
	return NoNodeID
}

// AccessTarget returns the object side of a property or element access.
func (t *Tree) AccessTarget(id NodeID) NodeID {
	switch t.KindOf(id) {
	case KindPropertyAccess, KindElementAccess:
		return t.child(id, 0)
	}
	return NoNodeID
}

// AccessName returns the member name node of a property access.
func (t *Tree) AccessName(id NodeID) NodeID {
	if t.KindOf(id) == KindPropertyAccess {
		return t.child(id, 1)
	}
	return NoNodeID
}

// AssignLeft returns the target of an assignment expression.
func (t *Tree) AssignLeft(id NodeID) NodeID {
	if t.KindOf(id) == KindAssignExpr {
		return t.child(id, 0)
	}
	return NoNodeID
}

// AssignRight returns the value of an assignment expression.
func (t *Tree) AssignRight(id NodeID) NodeID {
	if t.KindOf(id) == KindAssignExpr {
		return t.child(id, 1)
	}
	return NoNodeID
}

// InnerOf unwraps single-child wrapper nodes (paren, expression statement,
// return statement).
func (t *Tree) InnerOf(id NodeID) NodeID {
	switch t.KindOf(id) {
	case KindParenExpr, KindExprStmt, KindReturnStmt:
		return t.child(id, 0)
	}
	return NoNodeID
}

// MembersOf returns the member declarations of a class.
func (t *Tree) MembersOf(id NodeID) []NodeID {
	if t.KindOf(id) != KindClassDecl {
		return nil
	}
	node := t.get(id)
	if len(node.Children) < 1 {
		return nil
	}
	return node.Children[1:]
}

// StatementsOf returns the direct statements of a block, static block or
// source file. Nested blocks are not flattened.
func (t *Tree) StatementsOf(id NodeID) []NodeID {
	switch t.KindOf(id) {
	case KindBlock, KindStaticBlock, KindSourceFile:
		return t.get(id).Children
	}
	return nil
}

// ParamsOf returns the parameter declarations of a function-like node or
// constructor.
func (t *Tree) ParamsOf(id NodeID) []NodeID {
	node := t.get(id)
	if node == nil {
		return nil
	}
	var params []NodeID
	for _, child := range node.Children {
		if t.KindOf(child) == KindParameter {
			params = append(params, child)
		}
	}
	return params
}

// BodyOf returns the body of a constructor, method, accessor or function.
// For arrows the body may be a bare expression.
func (t *Tree) BodyOf(id NodeID) NodeID {
	switch t.KindOf(id) {
	case KindConstructor, KindMethodDecl, KindGetAccessor, KindSetAccessor,
		KindFunctionDecl, KindFunctionExpr, KindArrowFunction, KindStaticBlock:
	default:
		return NoNodeID
	}
	node := t.get(id)
	if len(node.Children) == 0 {
		return NoNodeID
	}
	last := node.Children[len(node.Children)-1]
	if t.KindOf(last) == KindParameter || last == t.NameOf(id) {
		return NoNodeID
	}
	return last
}

// StripParens unwraps nested paren expressions.
func (t *Tree) StripParens(id NodeID) NodeID {
	for t.KindOf(id) == KindParenExpr {
		inner := t.InnerOf(id)
		if !inner.IsValid() {
			return id
		}
		id = inner
	}
	return id
}

// AncestorOfKind walks up from id (exclusive) to the first ancestor whose
// kind satisfies match.
func (t *Tree) AncestorOfKind(id NodeID, match func(NodeKind) bool) NodeID {
	for cur := t.Parent(id); cur.IsValid(); cur = t.Parent(cur) {
		if match(t.KindOf(cur)) {
			return cur
		}
	}
	return NoNodeID
}

// EnclosingClass returns the nearest class declaration containing id.
func (t *Tree) EnclosingClass(id NodeID) NodeID {
	return t.AncestorOfKind(id, func(k NodeKind) bool { return k == KindClassDecl })
}

// ReferenceContainer returns the nearest enclosing member or function
// declaration of a use: the unit of initialization-order traversal.
func (t *Tree) ReferenceContainer(id NodeID) NodeID {
	return t.AncestorOfKind(id, NodeKind.IsReferenceContainer)
}

// ConstructorOf returns the class's constructor member, if present.
func (t *Tree) ConstructorOf(class NodeID) NodeID {
	for _, member := range t.MembersOf(class) {
		if t.KindOf(member) == KindConstructor {
			return member
		}
	}
	return NoNodeID
}
