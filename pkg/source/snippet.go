package source

// Snippet is a span of the preprocessed text: a start Location and a length
// in bytes.
type Snippet struct {
	Location
	length int
}

// NewSnippet creates a snippet starting at begin and spanning length bytes.
func NewSnippet(begin Location, length int) Snippet {
	return Snippet{Location: begin, length: length}
}

// SnippetBetween creates a snippet from begin up to end (exclusive).
func SnippetBetween(begin Location, end Location) Snippet {
	return Snippet{Location: begin, length: end.Offset() - begin.Offset()}
}

// Length returns the length of the snippet in bytes of preprocessed text.
func (s Snippet) Length() int {
	return s.length
}

// EndOffset returns the offset just past the snippet in preprocessed text.
func (s Snippet) EndOffset() int {
	return s.Offset() + s.length
}

// EndLocation returns the location just past the snippet.
func (s Snippet) EndLocation() Location {
	return NewLocation(s.Input(), s.EndOffset())
}

// SourceLength returns the length of the snippet in source bytes, including
// any comments and fold markers removed from within it.
func (s Snippet) SourceLength() int {
	return s.SourceEndOffset() - s.SourceOffset()
}

// SourceEndOffset returns the source offset just past the snippet.
func (s Snippet) SourceEndOffset() int {
	return s.EndLocation().SourceOffset()
}

// SourceCharLength returns the length of the snippet in source characters.
func (s Snippet) SourceCharLength() int {
	return s.SourceCharEndOffset() - s.SourceCharOffset()
}

// SourceCharEndOffset returns SourceEndOffset counted in UTF-8 characters.
func (s Snippet) SourceCharEndOffset() int {
	return s.EndLocation().SourceCharOffset()
}

// Content returns the preprocessed text covered by the snippet.
func (s Snippet) Content() string {
	text := s.Text()
	start, end := s.Offset(), s.EndOffset()
	if start < 0 || end > len(text) || start > end {
		return ""
	}
	return text[start:end]
}

// SourceContent returns the source text covered by the snippet.
func (s Snippet) SourceContent() string {
	if s.Input() == nil {
		return ""
	}
	text := s.Input().SourceString()
	start, end := s.SourceOffset(), s.SourceEndOffset()
	if start < 0 || end > len(text) || start > end {
		return ""
	}
	return text[start:end]
}
