package source

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	// commentRe matches a comment line, its folded continuation lines and the
	// terminating line break.
	commentRe = regexp.MustCompile(`(?m)^#[^\n]*(?:\n [^\n]*)*(?:\n|\z)`)

	// continuationRe matches a line break followed by the single space that
	// marks a folded line.
	continuationRe = regexp.MustCompile(`\r?\n `)
)

// RemoveRegex removes all non-overlapping matches of re from text.
//
// It returns the resulting string together with a new index map that maps
// offsets of the result into the same coordinates im maps into. Passing the
// map returned by a previous pass chains the passes, so the final map always
// points into the original source.
func RemoveRegex(re *regexp.Regexp, text string, im IndexMap) (string, IndexMap) {
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text, im.Clone()
	}

	var builder strings.Builder
	builder.Grow(len(text))

	pass := make(IndexMap, 0, len(matches))
	prev := 0
	removed := 0

	for _, match := range matches {
		start, end := match[0], match[1]
		if start == end {
			continue
		}

		builder.WriteString(text[prev:start])
		cleanOffset := start - removed
		removed += end - start
		prev = end

		// Adjacent removals collapse onto the same cleaned offset.
		if n := len(pass); n > 0 && pass[n-1].CleanOffset == cleanOffset {
			pass[n-1].Shift = removed
			continue
		}
		pass = append(pass, IndexMapEntry{CleanOffset: cleanOffset, Shift: removed})
	}
	builder.WriteString(text[prev:])

	return builder.String(), Compose(pass, im)
}

// RemoveComments strips comment lines (and their folded continuations).
func RemoveComments(text string, im IndexMap) (string, IndexMap) {
	return RemoveRegex(commentRe, text, im)
}

// RemoveLineContinuations unfolds continuation lines.
func RemoveLineContinuations(text string, im IndexMap) (string, IndexMap) {
	return RemoveRegex(continuationRe, text, im)
}

// Preprocess cleans source and returns the Input the parser scans.
//
// Comments are removed before continuation lines are unfolded so that a
// folded comment disappears as a whole.
func Preprocess(source, fileName string) *Input {
	text, im := RemoveComments(source, nil)
	text, im = RemoveLineContinuations(text, im)
	return NewInput(source, text, im, fileName)
}
