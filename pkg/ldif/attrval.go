package ldif

import "strings"

// AttrVal is an attribute description with its value.
type AttrVal struct {
	// Attribute is the attribute description, including options.
	Attribute string

	// Value is the attribute value.
	Value Value
}

// AttributeType returns the attribute description without options.
func (a AttrVal) AttributeType() string {
	attrType, _, _ := strings.Cut(a.Attribute, ";")
	return attrType
}

// Options returns the attribute options, e.g. ["lang-en"] for "cn;lang-en".
func (a AttrVal) Options() []string {
	parts := strings.Split(a.Attribute, ";")
	if len(parts) < 2 {
		return nil
	}
	return parts[1:]
}

// Control is an LDAP control attached to a change record.
type Control struct {
	// OID identifies the control type.
	OID string

	// Criticality is nil when the control does not specify one.
	Criticality *bool

	// Value is nil when the control carries no value.
	Value *Value
}

// IsCritical reports whether the control is marked critical.
func (c Control) IsCritical() bool {
	return c.Criticality != nil && *c.Criticality
}

// ModType is the operation of a modify record's mod-spec.
type ModType int

const (
	// ModAdd adds values.
	ModAdd ModType = iota + 1

	// ModDelete deletes values or the whole attribute.
	ModDelete

	// ModReplace replaces all values.
	ModReplace
)

// ParseModType converts the keyword of a mod-spec line.
func ParseModType(s string) (ModType, bool) {
	switch s {
	case "add":
		return ModAdd, true
	case "delete":
		return ModDelete, true
	case "replace":
		return ModReplace, true
	default:
		return 0, false
	}
}

// String returns the LDIF keyword.
func (m ModType) String() string {
	switch m {
	case ModAdd:
		return "add"
	case ModDelete:
		return "delete"
	case ModReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// ModSpec is one modification of a modify record.
type ModSpec struct {
	Type      ModType
	Attribute string
	AttrVals  []AttrVal
}
