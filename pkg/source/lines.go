package source

import "sort"

// LineInfo describes a single line of text.
type LineInfo struct {
	// StartOffset is the byte offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte offset where the line terminator begins
	// (equal to EndOffset for the last line).
	NewlineStart int

	// EndOffset is the byte offset just past the line terminator.
	EndOffset int
}

// BuildLines constructs line metadata for text.
// It handles both LF (\n) and CRLF (\r\n) line endings and always returns at
// least one line, so offset 0 of an empty text still has a position.
func BuildLines(text string) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx := range len(text) {
		if text[idx] != '\n' {
			continue
		}

		// Check for CRLF.
		newlineStart := idx
		if idx > 0 && text[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Last line (may be empty and has no terminator).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(text),
		EndOffset:    len(text),
	})

	return lines
}

// lineIndexAt returns the 0-based index of the line containing offset.
// Offsets past the end resolve to the last line.
func lineIndexAt(lines []LineInfo, offset int) int {
	if len(lines) == 0 || offset <= 0 {
		return 0
	}

	idx := sort.Search(len(lines), func(i int) bool {
		return lines[i].EndOffset > offset
	})
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	return idx
}
