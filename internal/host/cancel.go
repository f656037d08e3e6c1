package host

// CancellationToken is advisory: long searches poll it between steps and may
// stop early with a partial result. Nothing in this repository guarantees
// that a cancelled search is abandoned immediately.
type CancellationToken interface {
	IsCancellationRequested() bool
}

// NeverCancelled is the no-op token.
type NeverCancelled struct{}

func (NeverCancelled) IsCancellationRequested() bool { return false }
