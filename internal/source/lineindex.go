package source

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// buildLineIndex records the byte offset of every '\n' in content.
// Line N (1-based) starts at LineIdx[N-2]+1, line 1 at offset 0.
func buildLineIndex(content []byte) []uint32 {
	var idx []uint32
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		idx = append(idx, off)
	}
	return idx
}

func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	lineStart := uint32(0)
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	lineNum, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNum, Col: offset - lineStart + 1}
}

// GetLine returns the 1-based line's text without its trailing newline.
func (f *File) GetLine(lineNum uint32) string {
	if f == nil || lineNum == 0 {
		return ""
	}
	lenIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	end := lenContent
	if lineNum-1 < lenIdx {
		end = f.LineIdx[lineNum-1]
	}
	if start >= lenContent || start > end {
		return ""
	}
	return string(f.Content[start:end])
}
