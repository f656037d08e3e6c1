package source

import "fmt"

// Span is a half-open byte range [Start, End) inside a file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s == Span{}
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(offset uint32) bool {
	return s.Start <= offset && offset < s.End
}

// Within reports whether s lies entirely inside other (same file).
func (s Span) Within(other Span) bool {
	return s.File == other.File && other.Start <= s.Start && s.End <= other.End
}

// Cover widens s to include other. Spans from different files are left as is.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
