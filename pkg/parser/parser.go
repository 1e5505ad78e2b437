// Package parser is a recursive-descent parser for LDIF (RFC 2849).
//
// Every production is a Rule. Rules match the grammar anchored at the
// cursor of a shared State, turn captures into values and report problems by
// appending Errors to the State instead of stopping. A file is parsed to the
// end so that all errors are collected in a single pass.
package parser

import (
	"strings"

	"github.com/yaklabco/goldif/pkg/grammar"
	"github.com/yaklabco/goldif/pkg/ldif"
	"github.com/yaklabco/goldif/pkg/source"
)

// Options configures parsing of a whole file.
type Options struct {
	// RequireVersion reports a missing "version: 1" line.
	RequireVersion bool

	// StrictRecords reports records whose kind (content or change) differs
	// from the first record of the file.
	StrictRecords bool

	// Grammar overrides the rule table. Nil means grammar.Default().
	Grammar *grammar.Grammar
}

// Parse parses a preprocessed input and returns the final state.
func Parse(input *source.Input, opts Options) *State {
	state := NewState(input, opts.Grammar)
	NewFileRule(opts).Parse(state, false)
	return state
}

// ParseString preprocesses text and parses it.
func ParseString(text, fileName string, opts Options) *State {
	return Parse(source.Preprocess(text, fileName), opts)
}

// FileRule parses a whole LDIF file: an optional version-spec followed by
// records separated by blank lines.
type FileRule struct {
	opts          Options
	version       Rule[int]
	sep           Rule[string]
	attrValRecord Rule[ldif.Record]
	changeRecord  Rule[ldif.Record]
}

// NewFileRule creates a FileRule.
func NewFileRule(opts Options) *FileRule {
	return &FileRule{
		opts:          opts,
		version:       NewVersionSpecRule(),
		sep:           NewSepRule(),
		attrValRecord: NewAttrValRecordRule(),
		changeRecord:  NewChangeRecordRule(),
	}
}

// Parse parses records until the end of input, appending them to state. A
// record that fails is skipped up to the next blank line so that later
// records are still checked.
func (r *FileRule) Parse(state *State, _ bool) ([]ldif.Record, bool) {
	cursor := state.Cursor()

	_, _ = Repeat(r.sep, state, 0, -1)
	r.parseVersion(state)

	var firstIsChange *bool

	for {
		_, _ = Repeat(r.sep, state, 0, -1)
		if cursor.AtEnd() {
			break
		}

		start := cursor.Offset()

		record, ok := r.parseRecord(state)
		if !ok {
			r.recover(state, start)
			continue
		}

		isChange := ldif.IsChangeRecord(record)
		switch {
		case firstIsChange == nil:
			firstIsChange = &isChange
			state.AppendRecord(record)
		case r.opts.StrictRecords && *firstIsChange != isChange:
			state.ErrorAt(start, "content and change records must not be mixed (RFC2849)")
		default:
			state.AppendRecord(record)
		}

		if cursor.AtEnd() {
			break
		}
		if _, ok := r.sep.Parse(state, false); !ok {
			r.recover(state, start)
		}
	}

	return state.Records(), state.IsOK()
}

func (r *FileRule) parseVersion(state *State) {
	cursor := state.Cursor()
	begin := cursor.ClonedLocation()
	before := state.ErrorCount()

	version, ok := r.version.Parse(state, !r.opts.RequireVersion)
	switch {
	case ok:
		state.SetVersionSpec(&ldif.VersionSpec{
			Version: version,
			Snippet: source.SnippetBetween(begin, cursor.ClonedLocation()),
		})
	case state.ErrorCount() == before || cursor.Offset() == begin.Offset():
		return
	}

	if cursor.AtEnd() {
		return
	}
	if _, ok := r.sep.Parse(state, false); !ok {
		r.recover(state, begin.Offset())
	}
}

func (r *FileRule) parseRecord(state *State) (ldif.Record, bool) {
	cursor := state.Cursor()
	if _, ok := state.Grammar().Match(grammar.ChangeRecordHead, cursor.Text(), cursor.Offset()); ok {
		return r.changeRecord.Parse(state, false)
	}
	return r.attrValRecord.Parse(state, false)
}

// recover moves the cursor to the next blank line at or after the line the
// cursor is on. The line containing start is always skipped so that every
// failed record makes progress.
func (r *FileRule) recover(state *State, start int) {
	cursor := state.Cursor()
	text := cursor.Text()

	pos := cursor.Offset()
	if pos > 0 && text[pos-1] != '\n' {
		pos = nextLineStart(text, pos)
	}
	for pos < len(text) && !isBlankLine(text, pos) {
		pos = nextLineStart(text, pos)
	}
	if pos <= start {
		pos = nextLineStart(text, start)
	}

	cursor.MoveTo(pos)
}

func nextLineStart(text string, pos int) int {
	idx := strings.IndexByte(text[pos:], '\n')
	if idx < 0 {
		return len(text)
	}
	return pos + idx + 1
}

func isBlankLine(text string, pos int) bool {
	rest := text[pos:]
	return strings.HasPrefix(rest, "\n") || strings.HasPrefix(rest, "\r\n")
}
