package syntax

// NodeID indexes a node inside a Tree's arena (1-based).
type NodeID uint32

// NoNodeID marks the absence of a node.
const NoNodeID NodeID = 0

// IsValid reports whether the ID refers to a real node.
func (id NodeID) IsValid() bool { return id != NoNodeID }
