// Package condcheck flags condition expressions that are provably
// always-true, always-false, or not boolean at all.
package condcheck

import (
	"fmt"

	"beacon/internal/diag"
	"beacon/internal/host"
	"beacon/internal/syntax"
	"beacon/internal/truth"
	"beacon/internal/typesys"
)

type checker struct {
	tree     *syntax.Tree
	types    host.Types
	reporter diag.Reporter
}

// Check walks the tree, examining every if test and ternary condition.
// Unresolvable and any/unknown-typed conditions produce nothing.
func Check(tree *syntax.Tree, types host.Types, r diag.Reporter) {
	if tree == nil || types == nil {
		return
	}
	c := &checker{tree: tree, types: types, reporter: r}
	tree.Walk(tree.Root(), func(id syntax.NodeID) bool {
		switch tree.KindOf(id) {
		case syntax.KindIfStmt, syntax.KindCondExpr:
			c.examine(tree.CondOf(id))
		}
		return true
	})
}

func (c *checker) examine(cond syntax.NodeID) {
	if !cond.IsValid() {
		return
	}
	ty := c.conditionType(cond)
	if ty == typesys.NoTypeID {
		return
	}
	in := c.types.Interner()
	switch in.KindOf(ty) {
	case typesys.KindAny, typesys.KindUnknown:
		// unconstrained types never produce a diagnostic
		return
	}

	truthy := truth.CanBeTruthy(in, ty)
	falsy := truth.CanBeFalsy(in, ty)
	span := c.tree.SpanOf(cond)
	switch {
	case !truthy && falsy:
		diag.ReportWarning(c.reporter, diag.CndAlwaysFalse, span,
			"this condition always returns 'false'")
	case truthy && !falsy:
		diag.ReportWarning(c.reporter, diag.CndAlwaysTrue, span,
			"this condition always returns 'true'")
	case truthy && falsy && !truth.IsBooleanType(in, ty):
		diag.ReportHint(c.reporter, diag.CndNotBoolean, span,
			fmt.Sprintf("this condition is not a boolean type: %s", in.Label(ty)))
	}
}

// conditionType resolves the examined expression's type. For a bare
// identifier the declared type from its originating declaration wins over
// the control-flow-narrowed one, with a single level of named-alias
// expansion; explicit intent beats narrowing.
func (c *checker) conditionType(cond syntax.NodeID) typesys.TypeID {
	file := c.tree.File()
	ty := c.types.TypeOf(file, cond)
	if c.tree.KindOf(cond) != syntax.KindIdent {
		return ty
	}
	decl := c.types.DeclarationOf(file, cond)
	if !decl.IsValid() {
		return ty
	}
	switch c.tree.KindOf(decl) {
	case syntax.KindVarDecl, syntax.KindParameter:
	default:
		return ty
	}
	declared := c.types.DeclaredType(file, decl)
	if declared == typesys.NoTypeID {
		return ty
	}
	return c.types.Interner().Unalias(declared)
}
