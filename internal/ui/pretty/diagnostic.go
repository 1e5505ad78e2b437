package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/goldif/pkg/parser"
)

// FormatError renders a parse error as a block of up to three lines, each
// prefixed by "file:line:col:": the message, the source line, and a caret
// under the offending character. The last two are written only when
// showContext is set. Source lines are shortened to fit width columns.
func (s *Styles) FormatError(err *parser.Error, showContext bool, width int) string {
	file, line, col := err.Position()
	prefix := s.FilePath.Render(file) + s.Location.Render(fmt.Sprintf(":%d:%d:", line, col))
	plainPrefixLen := utf8.RuneCountInString(fmt.Sprintf("%s:%d:%d:", file, line, col))

	messageStyle := s.Error
	if err.Code == parser.CodeInternal {
		messageStyle = s.Internal
	}

	var builder strings.Builder
	builder.WriteString(prefix)
	builder.WriteString(messageStyle.Render(err.Message))
	builder.WriteByte('\n')

	if !showContext {
		return builder.String()
	}

	excerptWidth := 0
	if width > 0 {
		excerptWidth = width - plainPrefixLen
	}
	excerpt, char := Excerpt(err.SourceLine(), col-1, excerptWidth)

	builder.WriteString(prefix)
	builder.WriteString(s.SourceLine.Render(excerpt))
	builder.WriteByte('\n')
	builder.WriteString(prefix)
	builder.WriteString(strings.Repeat(" ", char))
	builder.WriteString(s.Caret.Render("^"))
	builder.WriteByte('\n')

	return builder.String()
}

// FormatReadFailure renders an input that could not be read.
func (s *Styles) FormatReadFailure(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render(fmt.Sprintf("error: %v", err)) + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, errorCount int) string {
	header := s.FilePath.Render(path)
	switch errorCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 error)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d errors)", errorCount))
	}
	return header
}
