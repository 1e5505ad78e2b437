package parser

import (
	"fmt"

	"github.com/yaklabco/goldif/pkg/ldif"
	"github.com/yaklabco/goldif/pkg/source"
)

// AttrValRecordRule parses a content record: a dn-spec, a separator and one
// or more attribute values.
type AttrValRecordRule struct {
	dn      Rule[string]
	sep     Rule[string]
	attrVal Rule[ldif.AttrVal]
}

// NewAttrValRecordRule creates an AttrValRecordRule.
func NewAttrValRecordRule() *AttrValRecordRule {
	return &AttrValRecordRule{
		dn:      NewDnSpecRule(),
		sep:     NewSepRule(),
		attrVal: NewAttrValSpecRule(),
	}
}

// Parse parses a content record.
func (r *AttrValRecordRule) Parse(state *State, trying bool) (ldif.Record, bool) {
	begin := state.Cursor().ClonedLocation()

	dn, ok := r.dn.Parse(state, trying)
	if !ok {
		return nil, false
	}
	if _, ok := r.sep.Parse(state, false); !ok {
		return nil, false
	}
	attrVals, ok := Repeat(r.attrVal, state, 1, -1)
	if !ok {
		return nil, false
	}

	snippet := source.SnippetBetween(begin, state.Cursor().ClonedLocation())
	return ldif.NewAttrValRecord(snippet, dn, attrVals), true
}

// ChangeRecordRule parses a change record: a dn-spec, a separator, any
// number of controls, a "changetype:" line and the body of that change type.
type ChangeRecordRule struct {
	dn           Rule[string]
	sep          Rule[string]
	control      Rule[ldif.Control]
	init         Rule[ldif.ChangeType]
	attrVal      Rule[ldif.AttrVal]
	modSpec      Rule[ldif.ModSpec]
	newRdn       Rule[string]
	deleteOldRdn Rule[bool]
	newSuperior  Rule[string]
}

// NewChangeRecordRule creates a ChangeRecordRule.
func NewChangeRecordRule() *ChangeRecordRule {
	return &ChangeRecordRule{
		dn:           NewDnSpecRule(),
		sep:          NewSepRule(),
		control:      NewControlRule(),
		init:         NewChangeRecordInitRule(),
		attrVal:      NewAttrValSpecRule(),
		modSpec:      NewModSpecRule(),
		newRdn:       NewRdnSpecRule(),
		deleteOldRdn: NewDeleteOldRdnSpecRule(),
		newSuperior:  NewSuperiorSpecRule(),
	}
}

// Parse parses a change record.
func (r *ChangeRecordRule) Parse(state *State, trying bool) (ldif.Record, bool) {
	begin := state.Cursor().ClonedLocation()

	dn, ok := r.dn.Parse(state, trying)
	if !ok {
		return nil, false
	}
	if _, ok := r.sep.Parse(state, false); !ok {
		return nil, false
	}
	controls, ok := Repeat(r.control, state, 0, -1)
	if !ok {
		return nil, false
	}
	changeType, ok := r.init.Parse(state, false)
	if !ok {
		return nil, false
	}

	head := changeHead{begin: begin, dn: dn, controls: controls}

	switch changeType {
	case ldif.ChangeAdd:
		return r.parseAdd(state, head)
	case ldif.ChangeDelete:
		return r.parseDelete(state, head)
	case ldif.ChangeModify:
		return r.parseModify(state, head)
	case ldif.ChangeModDn, ldif.ChangeModRdn:
		return r.parseModDn(state, head, changeType)
	default:
		state.InternalErrorAt(begin.Offset(), fmt.Sprintf("no handler for change type %s", changeType))
		return nil, false
	}
}

type changeHead struct {
	begin    source.Location
	dn       string
	controls []ldif.Control
}

func (h changeHead) snippet(state *State) source.Snippet {
	return source.SnippetBetween(h.begin, state.Cursor().ClonedLocation())
}

func (r *ChangeRecordRule) parseAdd(state *State, head changeHead) (ldif.Record, bool) {
	attrVals, ok := Repeat(r.attrVal, state, 1, -1)
	if !ok {
		return nil, false
	}
	return ldif.NewAddRecord(head.snippet(state), head.dn, head.controls, attrVals), true
}

func (r *ChangeRecordRule) parseDelete(state *State, head changeHead) (ldif.Record, bool) {
	return ldif.NewDeleteRecord(head.snippet(state), head.dn, head.controls), true
}

func (r *ChangeRecordRule) parseModify(state *State, head changeHead) (ldif.Record, bool) {
	modSpecs, ok := Repeat(r.modSpec, state, 0, -1)
	if !ok {
		return nil, false
	}
	return ldif.NewModifyRecord(head.snippet(state), head.dn, head.controls, modSpecs), true
}

func (r *ChangeRecordRule) parseModDn(state *State, head changeHead, changeType ldif.ChangeType) (ldif.Record, bool) {
	newRdn, ok := r.newRdn.Parse(state, false)
	if !ok {
		return nil, false
	}
	deleteOldRdn, ok := r.deleteOldRdn.Parse(state, false)
	if !ok {
		return nil, false
	}

	spec := ldif.ModDnSpec{
		ChangeType:   changeType,
		NewRdn:       newRdn,
		DeleteOldRdn: deleteOldRdn,
	}

	before := state.ErrorCount()
	newSuperior, ok := r.newSuperior.Parse(state, true)
	switch {
	case ok:
		spec.NewSuperior = &newSuperior
	case state.ErrorCount() != before:
		return nil, false
	}

	return ldif.NewModDnRecord(head.snippet(state), head.dn, head.controls, spec), true
}
