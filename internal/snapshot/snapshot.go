// Package snapshot reads and writes analysis snapshots: the serialized
// project state (files, syntax trees, types, symbol links, baseline
// diagnostics) that an external frontend exports for the overlay to consume
// offline.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version. Increment when the payload format changes.
const SchemaVersion uint16 = 1

// ErrSchemaMismatch reports a snapshot written by an incompatible version.
var ErrSchemaMismatch = errors.New("snapshot schema mismatch")

// NodeRecord is one syntax node in replay order. Children index into the
// same file's node list, 1-based, and always precede their parent.
type NodeRecord struct {
	Kind     uint8
	Flags    uint8
	Start    uint32
	End      uint32
	Text     string
	Children []uint32
}

// TypeRecord mirrors typesys.Type with IDs instead of pointers.
type TypeRecord struct {
	Kind    uint8
	BoolVal bool
	StrVal  string
	NumVal  float64
	Elems   []uint32
	Target  uint32
}

// TypeAssignment binds a node in a file to an interned type.
type TypeAssignment struct {
	File uint32
	Node uint32
	Type uint32
}

// LinkRecord binds an identifier use to its declaration, possibly across
// files.
type LinkRecord struct {
	UseFile  uint32
	Use      uint32
	DeclFile uint32
	Decl     uint32
}

// SpanRecord is a serialized source span.
type SpanRecord struct {
	File  uint32
	Start uint32
	End   uint32
}

// NoteRecord is a serialized diagnostic note.
type NoteRecord struct {
	Span    SpanRecord
	Message string
}

// DiagnosticRecord is one baseline diagnostic from the frontend.
type DiagnosticRecord struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  SpanRecord
	Notes    []NoteRecord
}

// FileRecord is one source file with its tree.
type FileRecord struct {
	Path    string
	Content []byte
	Nodes   []NodeRecord
	Root    uint32
}

// Payload is the root snapshot object.
type Payload struct {
	Schema uint16

	Files []FileRecord
	Types []TypeRecord

	ExprTypes []TypeAssignment
	DeclTypes []TypeAssignment
	Links     []LinkRecord

	Diagnostics []DiagnosticRecord
}

// Write serializes the payload atomically to path.
func Write(path string, p *Payload) error {
	if p.Schema == 0 {
		p.Schema = SchemaVersion
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(p); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Read deserializes a payload and validates its schema version.
func Read(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var p Payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: failed to decode snapshot: %w", path, err)
	}
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", path, ErrSchemaMismatch, p.Schema, SchemaVersion)
	}
	return &p, nil
}
