// Package source models LDIF input text: preprocessing, offset mapping and
// positions that point back into the original file.
package source

// Input holds the original source text, the preprocessed text the parser
// scans, and the index map between the two.
//
// An Input is immutable once created.
type Input struct {
	sourceString   string
	str            string
	indexMap       IndexMap
	sourceFileName string

	lines       []LineInfo
	sourceLines []LineInfo
}

// NewInput creates an Input from the source text, its preprocessed form and
// the index map produced while preprocessing.
func NewInput(source, cleaned string, im IndexMap, fileName string) *Input {
	return &Input{
		sourceString:   source,
		str:            cleaned,
		indexMap:       im.Clone(),
		sourceFileName: fileName,
		lines:          BuildLines(cleaned),
		sourceLines:    BuildLines(source),
	}
}

// SourceString returns the text as given to the preprocessor.
func (in *Input) SourceString() string {
	return in.sourceString
}

// String returns the preprocessed text.
func (in *Input) String() string {
	return in.str
}

// IndexMap returns a copy of the cleaned-to-source index map.
func (in *Input) IndexMap() IndexMap {
	return in.indexMap.Clone()
}

// SourceFileName returns the name of the file the source came from.
func (in *Input) SourceFileName() string {
	return in.sourceFileName
}

// Len returns the length of the preprocessed text in bytes.
func (in *Input) Len() int {
	return len(in.str)
}

// SourceOffset maps an offset in the preprocessed text to the source text.
func (in *Input) SourceOffset(offset int) int {
	return in.indexMap.Apply(offset)
}

// LineAt returns the 0-based line index and byte column of offset in the
// preprocessed text.
func (in *Input) LineAt(offset int) (int, int) {
	idx := lineIndexAt(in.lines, offset)
	return idx, offset - in.lines[idx].StartOffset
}

// SourceLineAt returns the 0-based line index and byte column of a source
// offset.
func (in *Input) SourceLineAt(sourceOffset int) (int, int) {
	idx := lineIndexAt(in.sourceLines, sourceOffset)
	return idx, sourceOffset - in.sourceLines[idx].StartOffset
}

// SourceLineCount returns the number of lines in the source text.
func (in *Input) SourceLineCount() int {
	return len(in.sourceLines)
}

// SourceLine returns the content of the 0-based source line, without its
// terminator. Out of range indices yield an empty string.
func (in *Input) SourceLine(index int) string {
	if index < 0 || index >= len(in.sourceLines) {
		return ""
	}
	line := in.sourceLines[index]
	return in.sourceString[line.StartOffset:line.NewlineStart]
}

// sourceLineStart returns the source offset where the 0-based line starts.
func (in *Input) sourceLineStart(index int) int {
	if index < 0 || index >= len(in.sourceLines) {
		return 0
	}
	return in.sourceLines[index].StartOffset
}
