package parser

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/goldif/pkg/dn"
	"github.com/yaklabco/goldif/pkg/grammar"
	"github.com/yaklabco/goldif/pkg/ldif"
)

// NewVersionSpecRule parses "version:" lines. Only version 1 is supported.
func NewVersionSpecRule() *RFCRule[int] {
	return NewRFCRule[int](grammar.VersionSpec, interpretVersion)
}

func interpretVersion(state *State, match grammar.Match) (int, bool) {
	capture, _, ok := requireCapture(state, match, grammar.GroupVersionNumber)
	if !ok {
		return 0, false
	}
	if capture.Text != "1" {
		state.ErrorAt(capture.Offset, "unsupported version number: "+capture.Text)
		return 0, false
	}
	return 1, true
}

// NewSepRule parses a line separator.
func NewSepRule() *RFCRule[string] {
	return NewRFCRule[string](grammar.Sep, func(state *State, match grammar.Match) (string, bool) {
		return state.Cursor().Text()[match.Start:match.End], true
	})
}

// NewDnSpecRule parses "dn:" and "dn::" lines and checks the DN syntax.
// The line separator is not consumed.
func NewDnSpecRule() *RFCRule[string] {
	return NewRFCRule[string](grammar.DnSpec, nameInterpreter(dnCheck))
}

// NewRdnSpecRule parses "newrdn:" lines and checks the RDN syntax.
func NewRdnSpecRule() *RFCRule[string] {
	return NewRFCRule[string](grammar.NewRdnSpec, nameInterpreter(rdnCheck))
}

// NewSuperiorSpecRule parses "newsuperior:" lines and checks the DN syntax.
func NewSuperiorSpecRule() *RFCRule[string] {
	return NewRFCRule[string](grammar.NewSuperiorSpec, nameInterpreter(dnCheck))
}

type nameCheck struct {
	check func(string) error
	label string
}

//nolint:gochecknoglobals // immutable checker descriptors
var (
	dnCheck  = nameCheck{check: dn.CheckDN, label: "DN"}
	rdnCheck = nameCheck{check: dn.CheckRDN, label: "RDN"}
)

// nameInterpreter builds the interpreter shared by the DN-valued rules: a
// SAFE-STRING is taken as is, a BASE64-STRING is decoded and must be UTF-8.
// Errors point at the value as written.
func nameInterpreter(nc nameCheck) Interpreter[string] {
	return func(state *State, match grammar.Match) (string, bool) {
		capture, group, ok := requireCapture(state, match, grammar.GroupValueSafe, grammar.GroupValueB64)
		if !ok {
			return "", false
		}

		name := capture.Text
		if group == grammar.GroupValueB64 {
			decoded, err := base64.StdEncoding.DecodeString(capture.Text)
			if err != nil {
				state.WrappedErrorAt(capture.Offset, "invalid BASE64 string", err)
				return "", false
			}
			if !utf8.Valid(decoded) {
				state.ErrorAt(capture.Offset, "the string is not a valid UTF8")
				return "", false
			}
			name = string(decoded)
		}

		if err := nc.check(name); err != nil {
			state.WrappedErrorAt(capture.Offset, fmt.Sprintf("invalid %s syntax: %q", nc.label, name), err)
			return "", false
		}
		return name, true
	}
}

// NewDeleteOldRdnSpecRule parses "deleteoldrdn:" lines.
func NewDeleteOldRdnSpecRule() *RFCRule[bool] {
	return NewRFCRule[bool](grammar.DeleteOldRdnSpec, func(state *State, match grammar.Match) (bool, bool) {
		capture, _, ok := requireCapture(state, match, grammar.GroupDeleteOldRdn)
		if !ok {
			return false, false
		}
		return capture.Text == "1", true
	})
}

// NewValueSpecRule parses the value part of an attrval-spec, starting at the
// colon.
func NewValueSpecRule() *RFCRule[ldif.Value] {
	return NewRFCRule[ldif.Value](grammar.ValueSpec, interpretValue)
}

func hasValue(match grammar.Match) bool {
	return match.Has(grammar.GroupValueSafe) || match.Has(grammar.GroupValueB64) || match.Has(grammar.GroupValueURL)
}

func interpretValue(state *State, match grammar.Match) (ldif.Value, bool) {
	capture, group, ok := requireCapture(state, match,
		grammar.GroupValueSafe, grammar.GroupValueB64, grammar.GroupValueURL)
	if !ok {
		return ldif.Value{}, false
	}

	switch group {
	case grammar.GroupValueB64:
		decoded, err := base64.StdEncoding.DecodeString(capture.Text)
		if err != nil {
			state.WrappedErrorAt(capture.Offset, "invalid BASE64 string", err)
			return ldif.Value{}, false
		}
		return ldif.NewDecodedBase64String(capture.Text, decoded), true
	case grammar.GroupValueURL:
		value, err := ldif.NewURIFromString(capture.Text)
		if err != nil {
			state.WrappedErrorAt(capture.Offset, "in URL: "+err.Error(), err)
			return ldif.Value{}, false
		}
		return value, true
	default:
		return ldif.NewSafeString(capture.Text), true
	}
}

// NewAttrValSpecRule parses "attribute: value" lines.
func NewAttrValSpecRule() *RFCRule[ldif.AttrVal] {
	return NewRFCRule[ldif.AttrVal](grammar.AttrValSpec, func(state *State, match grammar.Match) (ldif.AttrVal, bool) {
		attr, _, ok := requireCapture(state, match, grammar.GroupAttrDesc)
		if !ok {
			return ldif.AttrVal{}, false
		}
		value, ok := interpretValue(state, match)
		if !ok {
			return ldif.AttrVal{}, false
		}
		return ldif.AttrVal{Attribute: attr.Text, Value: value}, true
	})
}

// NewControlRule parses "control:" lines.
func NewControlRule() *RFCRule[ldif.Control] {
	return NewRFCRule[ldif.Control](grammar.Control, interpretControl)
}

func interpretControl(state *State, match grammar.Match) (ldif.Control, bool) {
	oid, _, ok := requireCapture(state, match, grammar.GroupCtlType)
	if !ok {
		return ldif.Control{}, false
	}

	control := ldif.Control{OID: oid.Text}

	if crit, present := match.Get(grammar.GroupCtlCrit); present {
		var critical bool
		switch strings.ToLower(crit.Text) {
		case "true":
			critical = true
		case "false":
			critical = false
		default:
			state.ErrorAt(crit.Offset, "invalid control criticality")
			return ldif.Control{}, false
		}
		control.Criticality = &critical
	}

	if hasValue(match) {
		value, ok := interpretValue(state, match)
		if !ok {
			return ldif.Control{}, false
		}
		control.Value = &value
	}

	return control, true
}

// NewChangeRecordInitRule parses "changetype:" lines.
func NewChangeRecordInitRule() *RFCRule[ldif.ChangeType] {
	return NewRFCRule[ldif.ChangeType](grammar.ChangeRecordInit, func(state *State, match grammar.Match) (ldif.ChangeType, bool) {
		capture, _, ok := requireCapture(state, match, grammar.GroupChgType)
		if !ok {
			return 0, false
		}
		changeType, ok := ldif.ParseChangeType(capture.Text)
		if !ok {
			state.InternalErrorAt(capture.Offset, fmt.Sprintf("unknown change type %q", capture.Text))
			return 0, false
		}
		return changeType, true
	})
}

// NewModSpecInitRule parses the "add:", "delete:" or "replace:" line opening
// a mod-spec. The returned ModSpec has no attribute values yet.
func NewModSpecInitRule() *RFCRule[ldif.ModSpec] {
	return NewRFCRule[ldif.ModSpec](grammar.ModSpecInit, func(state *State, match grammar.Match) (ldif.ModSpec, bool) {
		modType, _, ok := requireCapture(state, match, grammar.GroupModType)
		if !ok {
			return ldif.ModSpec{}, false
		}
		attr, _, ok := requireCapture(state, match, grammar.GroupAttrDesc)
		if !ok {
			return ldif.ModSpec{}, false
		}
		parsed, ok := ldif.ParseModType(modType.Text)
		if !ok {
			state.InternalErrorAt(modType.Offset, fmt.Sprintf("unknown modification type %q", modType.Text))
			return ldif.ModSpec{}, false
		}
		return ldif.ModSpec{Type: parsed, Attribute: attr.Text}, true
	})
}

// NewModSpecEndRule parses the "-" line closing a mod-spec.
func NewModSpecEndRule() *RFCRule[string] {
	return NewRFCRule[string](grammar.ModSpecEnd, func(_ *State, _ grammar.Match) (string, bool) {
		return "-", true
	})
}

// ModSpecRule parses a complete mod-spec: the opening line, any number of
// attribute values and the closing "-".
type ModSpecRule struct {
	init    Rule[ldif.ModSpec]
	attrVal Rule[ldif.AttrVal]
	end     Rule[string]
}

// NewModSpecRule creates a ModSpecRule.
func NewModSpecRule() *ModSpecRule {
	return &ModSpecRule{
		init:    NewModSpecInitRule(),
		attrVal: NewAttrValSpecRule(),
		end:     NewModSpecEndRule(),
	}
}

// Parse parses a mod-spec. A missing "-" is always reported; the values
// collected until then are still returned alongside false.
func (r *ModSpecRule) Parse(state *State, trying bool) (ldif.ModSpec, bool) {
	spec, ok := r.init.Parse(state, trying)
	if !ok {
		return ldif.ModSpec{}, false
	}

	attrVals, ok := Repeat(r.attrVal, state, 0, -1)
	spec.AttrVals = attrVals
	if !ok {
		return spec, false
	}

	if _, ok := r.end.Parse(state, false); !ok {
		return spec, false
	}
	return spec, true
}
