// Package initorder detects reads of constructor-parameter properties that
// execute before the constructor assigns them. Field initializers run first,
// so an initializer (or anything it synchronously invokes) observing such a
// property sees an unassigned value.
package initorder

import (
	"fmt"
	"slices"
	"strings"

	"beacon/internal/diag"
	"beacon/internal/host"
	"beacon/internal/source"
	"beacon/internal/syntax"
)

type checker struct {
	tree     *syntax.Tree
	refs     host.References
	files    *source.FileSet
	cancel   host.CancellationToken
	reporter diag.Reporter
}

// use is one reference occurrence under inspection.
type use struct {
	node syntax.NodeID
	span source.Span
}

// search carries the state for one parameter property's traversal. The
// visited set is keyed by container identity and guarantees termination on
// cyclic reference graphs: each container is entered at most once per root.
type search struct {
	c        *checker
	class    syntax.NodeID
	prop     string
	visited  map[syntax.NodeID]bool
	canceled bool
}

// Check runs the pass over every parameter property in the tree. The token
// is advisory; a cancelled run returns early with whatever was reported.
func Check(tree *syntax.Tree, refs host.References, files *source.FileSet, cancel host.CancellationToken, r diag.Reporter) {
	if tree == nil || refs == nil {
		return
	}
	if cancel == nil {
		cancel = host.NeverCancelled{}
	}
	c := &checker{tree: tree, refs: refs, files: files, cancel: cancel, reporter: r}
	tree.Walk(tree.Root(), func(id syntax.NodeID) bool {
		if tree.KindOf(id) == syntax.KindClassDecl {
			c.checkClass(id)
		}
		return true
	})
}

func (c *checker) checkClass(class syntax.NodeID) {
	ctor := c.tree.ConstructorOf(class)
	if !ctor.IsValid() {
		return
	}
	for _, param := range c.tree.ParamsOf(ctor) {
		node := c.tree.Get(param)
		if node == nil || !node.Flags.Has(syntax.FlagDeclaresMember) {
			continue
		}
		name := c.tree.NameOf(param)
		if !name.IsValid() {
			continue
		}
		s := &search{
			c:       c,
			class:   class,
			prop:    c.tree.TextOf(name),
			visited: make(map[syntax.NodeID]bool),
		}
		s.visit(c.sameClassReferences(class, name), nil, 0)
	}
}

// sameClassReferences collects reference occurrences of the symbol named at
// seed, restricted to the owning class. References in other classes or free
// functions never run during this class's construction.
func (c *checker) sameClassReferences(class, seed syntax.NodeID) []use {
	classSpan := c.tree.SpanOf(class)
	var uses []use
	for _, group := range c.refs.ReferencesAt(c.tree.File(), seed) {
		for _, ref := range group.References {
			if ref.File != c.tree.File() || !ref.Span.Within(classSpan) {
				continue
			}
			uses = append(uses, use{node: ref.Node, span: ref.Span})
		}
	}
	return uses
}

// visit processes one layer of reference occurrences. depth counts how many
// function boundaries must still be invoked before a use becomes live at
// construction time.
func (s *search) visit(uses []use, stack []use, depth int) {
	for _, u := range uses {
		if s.canceled || s.c.cancel.IsCancellationRequested() {
			s.canceled = true
			return
		}
		container := s.c.tree.ReferenceContainer(u.node)
		if !container.IsValid() || s.visited[container] {
			continue
		}
		kind := s.c.tree.KindOf(container)
		if kind == syntax.KindConstructor {
			// constructor-body reads happen at the right time
			continue
		}
		s.visited[container] = true
		chain := append(slices.Clone(stack), u)

		d := depth
		if d > 0 && s.c.isInvoked(u.node) {
			// this use is the call that fires an eager body
			d--
		}
		switch {
		case kind == syntax.KindPropertyDecl && d == 0:
			s.emit(chain)
		case kind.IsFunctionLike():
			s.visit(s.c.occurrencesOf(s.class, container), chain, d+1)
		}
	}
}

// occurrencesOf returns the places a container is itself referenced. Named
// containers are re-seeded through the host's reference query; anonymous
// function expressions continue through the expression occurrence itself,
// which is what an immediately-invoked initializer arrow is found by.
func (c *checker) occurrencesOf(class, container syntax.NodeID) []use {
	if name := c.tree.NameOf(container); name.IsValid() {
		return c.sameClassReferences(class, name)
	}
	return []use{{node: container, span: c.tree.SpanOf(container)}}
}

// isInvoked reports whether the use occupies a position requiring
// invocation: the callee of a call or the tag of a tagged template, directly
// or through one intervening property/element access. Parens are
// transparent.
func (c *checker) isInvoked(n syntax.NodeID) bool {
	cur := c.liftThroughParens(n)
	parent := c.tree.Parent(cur)
	switch c.tree.KindOf(parent) {
	case syntax.KindCallExpr:
		return c.tree.CalleeOf(parent) == cur
	case syntax.KindTaggedTemplate:
		return c.tree.TagOf(parent) == cur
	case syntax.KindPropertyAccess, syntax.KindElementAccess:
		access := c.liftThroughParens(parent)
		grand := c.tree.Parent(access)
		switch c.tree.KindOf(grand) {
		case syntax.KindCallExpr:
			return c.tree.CalleeOf(grand) == access
		case syntax.KindTaggedTemplate:
			return c.tree.TagOf(grand) == access
		}
	}
	return false
}

func (c *checker) liftThroughParens(n syntax.NodeID) syntax.NodeID {
	for c.tree.KindOf(c.tree.Parent(n)) == syntax.KindParenExpr {
		n = c.tree.Parent(n)
	}
	return n
}

func (s *search) emit(chain []use) {
	if len(chain) == 0 {
		return
	}
	first := chain[0]
	msg := fmt.Sprintf("parameter property '%s' is used before its initialization: %s",
		s.prop, s.renderChain(chain))
	diag.ReportWarning(s.c.reporter, diag.IniUseBeforeInit, first.span, msg)
}

// renderChain formats the use stack outer-to-inner, e.g.
// "this.test(...) -> this.foo".
func (s *search) renderChain(chain []use) string {
	parts := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		parts = append(parts, s.c.renderUse(chain[i]))
	}
	return strings.Join(parts, " -> ")
}

// renderUse spells a use the way it appears in source: the full access path
// when the use is a member name, with "(...)" appended for invoked uses.
func (c *checker) renderUse(u use) string {
	node := u.node
	if parent := c.tree.Parent(node); c.tree.KindOf(parent) == syntax.KindPropertyAccess &&
		c.tree.AccessName(parent) == node {
		node = parent
	}
	text := ""
	if c.files != nil {
		text = c.files.Text(c.tree.SpanOf(node))
	}
	if text == "" {
		text = c.tree.TextOf(u.node)
	}
	if c.isInvoked(u.node) {
		text += "(...)"
	}
	return text
}
