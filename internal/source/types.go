package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFileID marks the absence of a file.
const NoFileID FileID = 0

const (
	// FileVirtual indicates the file was added from memory (snapshot, test).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped on load.
	FileHadBOM
)

// IsValid reports whether the ID refers to a real file.
func (id FileID) IsValid() bool { return id != NoFileID }

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
