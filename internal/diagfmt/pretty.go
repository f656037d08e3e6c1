package diagfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"beacon/internal/diag"
	"beacon/internal/source"
)

// Pretty formats diagnostics for terminals. Expects bag.Sort() to have run.
// Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline for the primary span,
// then the notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	items := bag.Items()
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}
	for i := range limit {
		p.printDiagnostic(items[i])
	}
	if limit < len(items) {
		fmt.Fprintf(w, "... and %d more\n", len(items)-limit)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) printDiagnostic(d diag.Diagnostic) {
	p.printEntry(d.Severity, d.Code.ID(), d.Primary, d.Message)
	if !p.opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		p.printEntry(diag.SevHint, "note", note.Span, note.Msg)
	}
}

func (p *prettyPrinter) printEntry(sev diag.Severity, tag string, span source.Span, msg string) {
	start, _ := p.fs.Resolve(span)
	file := p.fs.Get(span.File)
	path := "<unknown>"
	if file != nil {
		path = formatPath(file.Path, p.opts.PathMode)
	}
	fmt.Fprintf(p.w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		p.paintSeverity(sev), tag, msg)
	p.printContext(file, span, start, sev)
}

func (p *prettyPrinter) printContext(file *source.File, span source.Span, start source.LineCol, sev diag.Severity) {
	if file == nil || span.Empty() {
		return
	}
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(p.w, "  %s\n", line)

	// the underline covers the span portion that lies on the first line
	prefix := line
	if int(start.Col-1) <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	width := int(span.Len())
	if rest := len(line) - len(prefix); width > rest {
		width = rest
	}
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(p.w, "  %s%s\n", pad, p.paint(sev, marker))
}

func (p *prettyPrinter) paintSeverity(sev diag.Severity) string {
	return p.paint(sev, sev.String())
}

func (p *prettyPrinter) paint(sev diag.Severity, s string) string {
	if !p.opts.Color {
		return s
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	default:
		return color.New(color.FgCyan).Sprint(s)
	}
}

func formatPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
