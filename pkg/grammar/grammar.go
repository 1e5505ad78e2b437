// Package grammar holds the lexical rules of LDIF as anchored regular
// expressions with named capture groups.
//
// A rule either matches a prefix of the text starting exactly at the
// requested offset or does not match at all. Capture groups whose names end
// in "_error" are error productions: when one of them participates in a match
// the input is malformed at that group's offset, and the rule carries a
// message fragment describing the problem.
package grammar

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// RuleID names a grammar production.
type RuleID string

// errorGroupSuffix marks capture groups that represent error productions.
const errorGroupSuffix = "_error"

// Capture is a participating capture group.
type Capture struct {
	// Text is the captured text; empty for zero-width captures.
	Text string

	// Offset is the byte offset of the capture within the whole text.
	Offset int
}

// End returns the offset just past the capture.
func (c Capture) End() int {
	return c.Offset + len(c.Text)
}

// Match is the result of matching a rule.
type Match struct {
	// Start is the offset the match is anchored at.
	Start int

	// End is the offset just past the matched text.
	End int

	// Captures holds the participating named groups. A group that did not
	// take part in the match has no entry.
	Captures map[string]Capture
}

// Get returns the named capture and whether it participated in the match.
func (m Match) Get(name string) (Capture, bool) {
	c, ok := m.Captures[name]
	return c, ok
}

// Has reports whether the named group participated in the match.
func (m Match) Has(name string) bool {
	_, ok := m.Captures[name]
	return ok
}

// Len returns the length of the matched text.
func (m Match) Len() int {
	return m.End - m.Start
}

// Rule is a single compiled grammar production.
type Rule struct {
	id       RuleID
	expected string
	messages map[string]string
	re       *regexp.Regexp
	groups   []string
}

// ID returns the rule identifier.
func (r *Rule) ID() RuleID {
	return r.id
}

// Expected returns the message fragment used when the rule does not match,
// e.g. `expected "dn:" (RFC2849)`.
func (r *Rule) Expected() string {
	return r.expected
}

// ErrorMessage returns the message fragment of an error production.
func (r *Rule) ErrorMessage(group string) (string, bool) {
	msg, ok := r.messages[group]
	return msg, ok
}

// ErrorGroups returns the error production group names in pattern order.
func (r *Rule) ErrorGroups() []string {
	var out []string
	for _, name := range r.groups {
		if strings.HasSuffix(name, errorGroupSuffix) {
			out = append(out, name)
		}
	}
	return out
}

// Groups returns all named groups of the rule in pattern order.
func (r *Rule) Groups() []string {
	return slices.Clone(r.groups)
}

// Match matches the rule against text anchored at offset.
func (r *Rule) Match(text string, offset int) (Match, bool) {
	if offset < 0 || offset > len(text) {
		return Match{}, false
	}

	loc := r.re.FindStringSubmatchIndex(text[offset:])
	if loc == nil {
		return Match{}, false
	}

	match := Match{
		Start:    offset + loc[0],
		End:      offset + loc[1],
		Captures: make(map[string]Capture),
	}

	for idx, name := range r.re.SubexpNames() {
		if name == "" || loc[2*idx] < 0 {
			continue
		}
		start, end := loc[2*idx], loc[2*idx+1]
		match.Captures[name] = Capture{
			Text:   text[offset+start : offset+end],
			Offset: offset + start,
		}
	}

	return match, true
}

// Definition describes a rule to register.
type Definition struct {
	// ID is the rule identifier.
	ID RuleID

	// Pattern is the regular expression; it is anchored automatically.
	Pattern string

	// Expected is the message fragment reported when the rule does not match.
	Expected string

	// Messages maps error production group names to message fragments.
	Messages map[string]string
}

// Grammar is a registry of rules.
type Grammar struct {
	mu    sync.RWMutex
	rules map[RuleID]*Rule
}

// New creates an empty grammar.
func New() *Grammar {
	return &Grammar{rules: make(map[RuleID]*Rule)}
}

// Register compiles and adds a rule, replacing any rule with the same ID.
func (g *Grammar) Register(def Definition) error {
	re, err := regexp.Compile(`\A(?:` + def.Pattern + `)`)
	if err != nil {
		return fmt.Errorf("compile rule %s: %w", def.ID, err)
	}

	var groups []string
	for _, name := range re.SubexpNames() {
		if name != "" {
			groups = append(groups, name)
		}
	}

	for _, name := range groups {
		if !strings.HasSuffix(name, errorGroupSuffix) {
			continue
		}
		if _, ok := def.Messages[name]; !ok {
			return fmt.Errorf("rule %s: no message for error production %q", def.ID, name)
		}
	}

	rule := &Rule{
		id:       def.ID,
		expected: def.Expected,
		messages: def.Messages,
		re:       re,
		groups:   groups,
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.rules[def.ID] = rule
	return nil
}

// MustRegister is like Register but panics on error.
func (g *Grammar) MustRegister(def Definition) {
	if err := g.Register(def); err != nil {
		panic(err)
	}
}

// Rule returns the rule registered under id.
func (g *Grammar) Rule(id RuleID) (*Rule, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rule, ok := g.rules[id]
	return rule, ok
}

// MustRule returns the rule registered under id or panics.
func (g *Grammar) MustRule(id RuleID) *Rule {
	rule, ok := g.Rule(id)
	if !ok {
		panic(fmt.Sprintf("grammar: unknown rule %q", id))
	}
	return rule
}

// Match matches the rule id against text anchored at offset.
// Unknown rules never match.
func (g *Grammar) Match(id RuleID, text string, offset int) (Match, bool) {
	rule, ok := g.Rule(id)
	if !ok {
		return Match{}, false
	}
	return rule.Match(text, offset)
}

// Expected returns the "expected ..." message fragment of rule id.
func (g *Grammar) Expected(id RuleID) string {
	rule, ok := g.Rule(id)
	if !ok {
		return ""
	}
	return rule.expected
}

// ErrorMessage returns the message fragment of an error production of rule id.
func (g *Grammar) ErrorMessage(id RuleID, group string) (string, bool) {
	rule, ok := g.Rule(id)
	if !ok {
		return "", false
	}
	return rule.ErrorMessage(group)
}

// IDs returns all registered rule IDs in sorted order.
func (g *Grammar) IDs() []RuleID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]RuleID, 0, len(g.rules))
	for id := range g.rules {
		result = append(result, id)
	}
	slices.SortFunc(result, func(a, b RuleID) int {
		return cmp.Compare(a, b)
	})
	return result
}

// ErrorGroups returns the error production group names of rule id.
func (g *Grammar) ErrorGroups(id RuleID) []string {
	rule, ok := g.Rule(id)
	if !ok {
		return nil
	}
	return rule.ErrorGroups()
}
