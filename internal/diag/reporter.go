package diag

import "beacon/internal/source"

// Reporter is the minimal sink the analysis passes emit into.
// Implementations: BagReporter (collects into a Bag), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// NopReporter swallows everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}

// ReportWarning emits a warning with no notes.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevWarning, primary, msg, nil)
	}
}

// ReportHint emits a hint with no notes.
func ReportHint(r Reporter, code Code, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevHint, primary, msg, nil)
	}
}
