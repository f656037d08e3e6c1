package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileSet owns a collection of source files and resolves spans to
// line/column positions. IDs are 1-based; NoFileID is never handed out.
type FileSet struct {
	files []File
	index map[string]FileID // normalized path -> id
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// Add stores a file from bytes, computes its line index and returns a fresh
// FileID. Re-adding a path creates a new ID; the index tracks the latest one.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalized := filepath.ToSlash(filepath.Clean(path))
	next, err := safecast.Conv[uint32](len(fs.files) + 1)
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(next)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	fs.index[normalized] = id
	return id
}

// AddVirtual adds an in-memory file (snapshot payload or test fixture).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads a file from disk, stripping a UTF-8 BOM if present.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return NoFileID, fmt.Errorf("load %s: %w", path, err)
	}
	flags := FileFlags(0)
	if bytes.HasPrefix(content, utf8BOM) {
		content = content[len(utf8BOM):]
		flags |= FileHadBOM
	}
	return fs.Add(path, content, flags), nil
}

// HasFile reports whether the ID belongs to this set.
func (fs *FileSet) HasFile(id FileID) bool {
	return id.IsValid() && int(id) <= len(fs.files)
}

// Get returns file metadata for the ID, or nil for an unknown ID.
func (fs *FileSet) Get(id FileID) *File {
	if !fs.HasFile(id) {
		return nil
	}
	return &fs.files[id-1]
}

// GetByPath returns the latest file registered under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.index[filepath.ToSlash(filepath.Clean(path))]
	if !ok {
		return nil, false
	}
	return fs.Get(id), true
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Text extracts the source text covered by the span, or "" if out of range.
func (fs *FileSet) Text(span Span) string {
	f := fs.Get(span.File)
	if f == nil || span.End > uint32(len(f.Content)) || span.Start > span.End {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}

// Resolve converts a span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}
