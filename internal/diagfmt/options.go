// Package diagfmt renders diagnostic bags for humans (pretty) and for
// tooling (JSON).
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps the path as it was registered.
	PathModeAuto PathMode = iota
	// PathModeAbsolute resolves paths against the working directory.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	Max       int // output cap, 0 for unlimited
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to locations
	PathMode         PathMode
	Max              int // output cap, not applied to the bag itself
	IncludeNotes     bool
}
