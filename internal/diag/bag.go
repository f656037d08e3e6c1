package diag

import (
	"fmt"
	"sort"
)

// Bag collects diagnostics up to a fixed capacity. A non-positive max means
// unlimited.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends a diagnostic, honoring the capacity limit.
// Returns false when the limit was reached and nothing was added.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasWarnings reports whether any diagnostic is Warning or worse.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// HasErrors reports whether any diagnostic is an Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// Items returns a read-only view of the collected diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends the other bag's diagnostics, growing max if needed.
func (b *Bag) Merge(other *Bag) {
	if b.max > 0 {
		if newTotal := len(b.items) + len(other.items); newTotal > b.max {
			b.max = newTotal
		}
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file, start, end, severity (desc), code for deterministic
// output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops duplicates keyed by code and primary span.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s", d.Code, d.Primary)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
	}
	b.items = kept
}
