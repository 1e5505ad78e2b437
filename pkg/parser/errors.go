package parser

import (
	"fmt"
	"strings"

	"github.com/yaklabco/goldif/pkg/source"
)

// Code classifies parse errors.
type Code int

const (
	// CodeSyntax marks input that does not conform to LDIF.
	CodeSyntax Code = iota + 1

	// CodeInternal marks a mismatch between a rule and the grammar table it
	// consumes.
	CodeInternal
)

// String returns the message prefix of the code.
func (c Code) String() string {
	switch c {
	case CodeSyntax:
		return "syntax error"
	case CodeInternal:
		return "internal error"
	default:
		return "error"
	}
}

// Error is a problem found while parsing, located in the preprocessed text.
type Error struct {
	// Location is where the problem was found.
	Location source.Location

	// Message is the full message, including the "syntax error: " or
	// "internal error: " prefix.
	Message string

	// Code classifies the error.
	Code Code

	// Previous is the underlying cause, if any.
	Previous error
}

// NewError creates an error whose message is prefixed according to code.
func NewError(location source.Location, code Code, message string, previous error) *Error {
	return &Error{
		Location: location,
		Message:  code.String() + ": " + message,
		Code:     code,
		Previous: previous,
	}
}

// Error returns "file:line:col: message" with 1-based line and column.
func (e *Error) Error() string {
	line, char := e.SourceLineAndCharOffset()
	return fmt.Sprintf("%s:%d:%d: %s", e.fileName(), line+1, char+1, e.Message)
}

// Position returns the file name and the 1-based line and column of the error.
// The file name is "-" for unnamed input.
func (e *Error) Position() (string, int, int) {
	line, char := e.SourceLineAndCharOffset()
	return e.fileName(), line + 1, char + 1
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Previous
}

// SourceLineAndCharOffset returns the 0-based source line index and the
// character column of the error.
func (e *Error) SourceLineAndCharOffset() (int, int) {
	return e.Location.SourceLineAndCharOffset()
}

// SourceLine returns the source line the error points into.
func (e *Error) SourceLine() string {
	return e.Location.SourceLine()
}

// MultilineMessage renders the error as three lines: the message, the source
// line, and a caret under the offending character. Each line is prefixed by
// "file:line:col:".
func (e *Error) MultilineMessage() string {
	line, char := e.SourceLineAndCharOffset()
	prefix := fmt.Sprintf("%s:%d:%d:", e.fileName(), line+1, char+1)

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(e.Message)
	sb.WriteByte('\n')
	sb.WriteString(prefix)
	sb.WriteString(e.SourceLine())
	sb.WriteByte('\n')
	sb.WriteString(prefix)
	sb.WriteString(strings.Repeat(" ", char))
	sb.WriteByte('^')
	return sb.String()
}

func (e *Error) fileName() string {
	if name := e.Location.SourceFileName(); name != "" {
		return name
	}
	return "-"
}
