package source

import "unicode/utf8"

// Location is an immutable position in the preprocessed text of an Input.
type Location struct {
	input  *Input
	offset int
}

// NewLocation returns the location of offset within input.
func NewLocation(input *Input, offset int) Location {
	return Location{input: input, offset: offset}
}

// Input returns the input the location points into.
func (l Location) Input() *Input {
	return l.input
}

// Offset returns the byte offset within the preprocessed text.
func (l Location) Offset() int {
	return l.offset
}

// Text returns the preprocessed text of the input.
func (l Location) Text() string {
	if l.input == nil {
		return ""
	}
	return l.input.str
}

// IsValid reports whether 0 <= offset <= len(text).
func (l Location) IsValid() bool {
	return l.input != nil && l.offset >= 0 && l.offset <= len(l.input.str)
}

// CharOffset returns the offset counted in UTF-8 characters rather than bytes.
func (l Location) CharOffset() int {
	return charCount(l.Text(), l.offset)
}

// SourceOffset returns the corresponding byte offset in the source text.
func (l Location) SourceOffset() int {
	if l.input == nil {
		return l.offset
	}
	return l.input.SourceOffset(l.offset)
}

// SourceCharOffset returns SourceOffset counted in UTF-8 characters.
func (l Location) SourceCharOffset() int {
	if l.input == nil {
		return l.offset
	}
	return charCount(l.input.sourceString, l.SourceOffset())
}

// SourceFileName returns the file name of the input.
func (l Location) SourceFileName() string {
	if l.input == nil {
		return ""
	}
	return l.input.sourceFileName
}

// LineAndOffset returns the 0-based line index and byte column within the
// preprocessed text.
func (l Location) LineAndOffset() (int, int) {
	if l.input == nil {
		return 0, l.offset
	}
	return l.input.LineAt(l.offset)
}

// SourceLineAndOffset returns the 0-based line index and byte column within
// the source text.
func (l Location) SourceLineAndOffset() (int, int) {
	if l.input == nil {
		return 0, l.offset
	}
	return l.input.SourceLineAt(l.SourceOffset())
}

// SourceLineAndCharOffset returns the 0-based source line index and the
// column counted in UTF-8 characters.
func (l Location) SourceLineAndCharOffset() (int, int) {
	if l.input == nil {
		return 0, l.offset
	}
	line, _ := l.SourceLineAndOffset()
	start := l.input.sourceLineStart(line)
	end := l.SourceOffset()
	if end > len(l.input.sourceString) {
		end = len(l.input.sourceString)
	}
	if end < start {
		return line, 0
	}
	return line, utf8.RuneCountInString(l.input.sourceString[start:end])
}

// SourceLine returns the source line containing the location.
func (l Location) SourceLine() string {
	if l.input == nil {
		return ""
	}
	line, _ := l.SourceLineAndOffset()
	return l.input.SourceLine(line)
}

// charCount counts the UTF-8 characters in text[:offset], clamping offset to
// the text bounds.
func charCount(text string, offset int) int {
	switch {
	case offset <= 0:
		return 0
	case offset >= len(text):
		return utf8.RuneCountInString(text) + offset - len(text)
	default:
		return utf8.RuneCountInString(text[:offset])
	}
}
