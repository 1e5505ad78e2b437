package parser

import (
	"fmt"
	"strings"

	"github.com/yaklabco/goldif/pkg/grammar"
)

// Rule parses one grammar production at the state's cursor.
//
// When trying is true a rule that simply does not match leaves the state's
// errors untouched, so callers can probe alternatives. Malformed input that
// does match is always reported.
type Rule[T any] interface {
	Parse(state *State, trying bool) (T, bool)
}

// Interpreter turns the captures of a successful match into a value,
// reporting semantic problems through state.
type Interpreter[T any] func(state *State, match grammar.Match) (T, bool)

// RFCRule is a Rule backed by a single grammar rule.
type RFCRule[T any] struct {
	id        grammar.RuleID
	interpret Interpreter[T]
}

// NewRFCRule creates a rule matching the grammar rule id and interpreting
// its captures with interpret.
func NewRFCRule[T any](id grammar.RuleID, interpret Interpreter[T]) *RFCRule[T] {
	return &RFCRule[T]{id: id, interpret: interpret}
}

// ID returns the grammar rule identifier.
func (r *RFCRule[T]) ID() grammar.RuleID {
	return r.id
}

// Match matches the grammar rule anchored at the cursor. On a match the
// cursor moves past the matched text and every participating error
// production is reported; the result is false if there was any.
func (r *RFCRule[T]) Match(state *State, trying bool) (grammar.Match, bool) {
	cursor := state.Cursor()

	rule, ok := state.Grammar().Rule(r.id)
	if !ok {
		state.InternalErrorAt(cursor.Offset(), fmt.Sprintf("unknown grammar rule %q", r.id))
		return grammar.Match{}, false
	}

	match, ok := rule.Match(cursor.Text(), cursor.Offset())
	if !ok {
		if !trying {
			state.ErrorHere(rule.Expected())
		}
		return grammar.Match{}, false
	}

	cursor.MoveTo(match.End)

	clean := true
	for _, group := range rule.ErrorGroups() {
		capture, present := match.Get(group)
		if !present {
			continue
		}
		message, _ := rule.ErrorMessage(group)
		state.ErrorAt(capture.Offset, message)
		clean = false
	}

	return match, clean
}

// ParseMatched interprets the captures of a match.
func (r *RFCRule[T]) ParseMatched(state *State, match grammar.Match) (T, bool) {
	return r.interpret(state, match)
}

// Parse matches and interprets.
func (r *RFCRule[T]) Parse(state *State, trying bool) (T, bool) {
	match, ok := r.Match(state, trying)
	if !ok {
		var zero T
		return zero, false
	}
	return r.ParseMatched(state, match)
}

// Repeat parses rule between minCount and maxCount times; a negative
// maxCount means no upper bound.
//
// Attempts below minCount are not speculative, so a missing element is
// reported. Once minCount elements were collected a plain non-match ends the
// repetition successfully. Any error reported during the repetition makes it
// fail; the elements collected until then are returned regardless.
func Repeat[T any](rule Rule[T], state *State, minCount, maxCount int) ([]T, bool) {
	var values []T
	before := state.ErrorCount()

	for maxCount < 0 || len(values) < maxCount {
		start := state.Cursor().Offset()

		value, ok := rule.Parse(state, len(values) >= minCount)
		if !ok {
			return values, state.ErrorCount() == before
		}
		values = append(values, value)

		if state.Cursor().Offset() == start {
			break
		}
	}

	return values, state.ErrorCount() == before
}

// requireCapture returns the named capture or reports an internal error.
func requireCapture(state *State, match grammar.Match, names ...string) (grammar.Capture, string, bool) {
	for _, name := range names {
		if capture, ok := match.Get(name); ok {
			return capture, name, true
		}
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	state.InternalErrorAt(match.Start,
		"missing or invalid capture group "+strings.Join(quoted, " or "))
	return grammar.Capture{}, "", false
}
