package syntax

import "beacon/internal/source"

// NodeFlags carries declaration modifiers the passes care about.
type NodeFlags uint8

const (
	// FlagDeclaresMember marks a constructor parameter that also declares a
	// class member (a parameter property).
	FlagDeclaresMember NodeFlags = 1 << iota
	// FlagHasTypeAnnotation marks a declaration with an explicit type.
	FlagHasTypeAnnotation
	// FlagStatic marks a static class member.
	FlagStatic
)

func (f NodeFlags) Has(mask NodeFlags) bool { return f&mask != 0 }

// Node is one immutable element of a syntax tree. Parent and children are
// stored as arena IDs; child order is kind-specific (see accessors.go).
type Node struct {
	Kind     NodeKind
	Flags    NodeFlags
	Span     source.Span
	Parent   NodeID
	Text     source.StringID // identifier or literal text
	Children []NodeID
}
