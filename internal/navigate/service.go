// Package navigate wraps the host's navigation queries and rewrites their
// results into more useful jump targets. Every transformation degrades to
// the unmodified baseline when a lookup comes up empty; the wrapper never
// fails harder than the host itself.
package navigate

import (
	"slices"

	"beacon/internal/condcheck"
	"beacon/internal/diag"
	"beacon/internal/host"
	"beacon/internal/initorder"
	"beacon/internal/source"
)

// injectedLimit bounds how many pass diagnostics one request can add.
const injectedLimit = 256

// Options selects which passes feed the diagnostics query.
type Options struct {
	Conditions bool
	InitOrder  bool
	Cancel     host.CancellationToken
}

// DefaultOptions enables both passes with no cancellation.
func DefaultOptions() Options {
	return Options{Conditions: true, InitOrder: true, Cancel: host.NeverCancelled{}}
}

// Service answers the four navigation queries on top of a host baseline.
type Service struct {
	host host.API
	opts Options
}

func NewService(h host.API, opts Options) *Service {
	if opts.Cancel == nil {
		opts.Cancel = host.NeverCancelled{}
	}
	return &Service{host: h, opts: opts}
}

// SemanticDiagnostics returns the host's diagnostics for the file followed
// by the two checker passes' findings, all injected as warnings.
func (s *Service) SemanticDiagnostics(file source.FileID) []diag.Diagnostic {
	out := slices.Clone(s.host.SemanticDiagnostics(file))
	tree := s.host.Tree(file)
	if tree == nil {
		return out
	}
	bag := diag.NewBag(injectedLimit)
	reporter := diag.BagReporter{Bag: bag}
	if s.opts.Conditions {
		condcheck.Check(tree, s.host, reporter)
	}
	if s.opts.InitOrder {
		initorder.Check(tree, s.host, s.host.Files(), s.opts.Cancel, reporter)
	}
	for _, d := range bag.Items() {
		d.Severity = diag.SevWarning
		out = append(out, d)
	}
	return out
}

// Definitions answers "definition(s) at position" with duplicate collapse
// and untyped-field redirection applied to the baseline.
func (s *Service) Definitions(file source.FileID, offset uint32) []host.DefinitionInfo {
	base := s.host.Definitions(file, offset)
	return s.redirectUntypedField(collapseClassConstructor(base))
}

// DefinitionAndSpan answers "definition and bound span at position". Only
// the duplicate collapse applies here.
func (s *Service) DefinitionAndSpan(file source.FileID, offset uint32) *host.DefinitionSpanResult {
	base := s.host.DefinitionAndSpan(file, offset)
	if base == nil {
		return nil
	}
	return &host.DefinitionSpanResult{
		Definitions: collapseClassConstructor(base.Definitions),
		BoundSpan:   base.BoundSpan,
	}
}

// collapseClassConstructor drops the class entry from a class+constructor
// pair so a `new C()` query jumps straight to the constructor.
func collapseClassConstructor(defs []host.DefinitionInfo) []host.DefinitionInfo {
	if len(defs) != 2 {
		return defs
	}
	class, ctor := defs[0], defs[1]
	if class.File != ctor.File ||
		class.Kind != host.ElemClass || ctor.Kind != host.ElemConstructor ||
		ctor.ContainerName != class.Name {
		return defs
	}
	return []host.DefinitionInfo{ctor}
}
