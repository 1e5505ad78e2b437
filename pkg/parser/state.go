package parser

import (
	"github.com/yaklabco/goldif/pkg/grammar"
	"github.com/yaklabco/goldif/pkg/ldif"
	"github.com/yaklabco/goldif/pkg/source"
)

// State is the mutable state of one parse: the cursor, the errors found so
// far, the records parsed so far and the optional version spec.
type State struct {
	cursor      *source.Cursor
	grammar     *grammar.Grammar
	errors      []*Error
	records     []ldif.Record
	versionSpec *ldif.VersionSpec
}

// NewState creates a state positioned at the start of input. A nil g means
// grammar.Default().
func NewState(input *source.Input, g *grammar.Grammar) *State {
	if g == nil {
		g = grammar.Default()
	}
	return &State{
		cursor:  source.NewCursor(input, 0),
		grammar: g,
	}
}

// Cursor returns the parse position.
func (s *State) Cursor() *source.Cursor {
	return s.cursor
}

// Input returns the input being parsed.
func (s *State) Input() *source.Input {
	return s.cursor.Input()
}

// Grammar returns the rule table used for matching.
func (s *State) Grammar() *grammar.Grammar {
	return s.grammar
}

// Errors returns the errors in the order they were found.
func (s *State) Errors() []*Error {
	return s.errors
}

// ErrorCount returns the number of errors found so far.
func (s *State) ErrorCount() int {
	return len(s.errors)
}

// IsOK reports whether no errors were found.
func (s *State) IsOK() bool {
	return len(s.errors) == 0
}

// AppendError records an error.
func (s *State) AppendError(err *Error) {
	s.errors = append(s.errors, err)
}

// Records returns the records parsed so far.
func (s *State) Records() []ldif.Record {
	return s.records
}

// AppendRecord records a parsed record.
func (s *State) AppendRecord(record ldif.Record) {
	s.records = append(s.records, record)
}

// VersionSpec returns the version spec, or nil when the input had none.
func (s *State) VersionSpec() *ldif.VersionSpec {
	return s.versionSpec
}

// SetVersionSpec records the version spec.
func (s *State) SetVersionSpec(spec *ldif.VersionSpec) {
	s.versionSpec = spec
}

// ErrorHere records a syntax error at the cursor.
func (s *State) ErrorHere(message string) {
	s.ErrorAt(s.cursor.Offset(), message)
}

// ErrorAt records a syntax error at offset.
func (s *State) ErrorAt(offset int, message string) {
	s.WrappedErrorAt(offset, message, nil)
}

// WrappedErrorAt records a syntax error at offset caused by cause.
func (s *State) WrappedErrorAt(offset int, message string, cause error) {
	s.AppendError(NewError(s.cursor.ClonedLocation(offset), CodeSyntax, message, cause))
}

// InternalErrorAt records an internal error at offset.
func (s *State) InternalErrorAt(offset int, message string) {
	s.AppendError(NewError(s.cursor.ClonedLocation(offset), CodeInternal, message, nil))
}
