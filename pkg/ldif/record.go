package ldif

import "github.com/yaklabco/goldif/pkg/source"

// Record is a top-level LDIF record.
type Record interface {
	// DN returns the distinguished name the record applies to.
	DN() string

	// Snippet returns the span of cleaned input the record was parsed from.
	Snippet() source.Snippet
}

// ChangeRecord is a record describing a directory modification.
type ChangeRecord interface {
	Record

	// ChangeType returns the operation.
	ChangeType() ChangeType

	// Controls returns the controls attached to the change.
	Controls() []Control
}

type recordBase struct {
	snippet source.Snippet
	dn      string
}

// DN returns the distinguished name the record applies to.
func (r *recordBase) DN() string { return r.dn }

// Snippet returns the span of cleaned input the record was parsed from.
func (r *recordBase) Snippet() source.Snippet { return r.snippet }

type changeBase struct {
	recordBase
	controls []Control
}

// Controls returns the controls attached to the change.
func (c *changeBase) Controls() []Control { return c.controls }

// AttrValRecord is a content record: a DN with its attribute values.
type AttrValRecord struct {
	recordBase
	attrVals []AttrVal
}

// NewAttrValRecord creates a content record.
func NewAttrValRecord(snippet source.Snippet, dn string, attrVals []AttrVal) *AttrValRecord {
	return &AttrValRecord{
		recordBase: recordBase{snippet: snippet, dn: dn},
		attrVals:   attrVals,
	}
}

// AttrVals returns the attribute values of the entry.
func (r *AttrValRecord) AttrVals() []AttrVal { return r.attrVals }

// AddRecord is a "changetype: add" record.
type AddRecord struct {
	changeBase
	attrVals []AttrVal
}

// NewAddRecord creates an add change record.
func NewAddRecord(snippet source.Snippet, dn string, controls []Control, attrVals []AttrVal) *AddRecord {
	return &AddRecord{
		changeBase: changeBase{recordBase: recordBase{snippet: snippet, dn: dn}, controls: controls},
		attrVals:   attrVals,
	}
}

// ChangeType returns ChangeAdd.
func (r *AddRecord) ChangeType() ChangeType { return ChangeAdd }

// AttrVals returns the attribute values of the new entry.
func (r *AddRecord) AttrVals() []AttrVal { return r.attrVals }

// DeleteRecord is a "changetype: delete" record.
type DeleteRecord struct {
	changeBase
}

// NewDeleteRecord creates a delete change record.
func NewDeleteRecord(snippet source.Snippet, dn string, controls []Control) *DeleteRecord {
	return &DeleteRecord{
		changeBase: changeBase{recordBase: recordBase{snippet: snippet, dn: dn}, controls: controls},
	}
}

// ChangeType returns ChangeDelete.
func (r *DeleteRecord) ChangeType() ChangeType { return ChangeDelete }

// ModifyRecord is a "changetype: modify" record.
type ModifyRecord struct {
	changeBase
	modSpecs []ModSpec
}

// NewModifyRecord creates a modify change record.
func NewModifyRecord(snippet source.Snippet, dn string, controls []Control, modSpecs []ModSpec) *ModifyRecord {
	return &ModifyRecord{
		changeBase: changeBase{recordBase: recordBase{snippet: snippet, dn: dn}, controls: controls},
		modSpecs:   modSpecs,
	}
}

// ChangeType returns ChangeModify.
func (r *ModifyRecord) ChangeType() ChangeType { return ChangeModify }

// ModSpecs returns the modifications in input order.
func (r *ModifyRecord) ModSpecs() []ModSpec { return r.modSpecs }

// ModDnRecord is a "changetype: moddn" or "changetype: modrdn" record.
type ModDnRecord struct {
	changeBase
	changeType   ChangeType
	newRdn       string
	deleteOldRdn bool
	newSuperior  *string
}

// ModDnSpec holds the fields specific to a moddn record.
type ModDnSpec struct {
	// ChangeType is ChangeModDn or ChangeModRdn.
	ChangeType ChangeType

	NewRdn       string
	DeleteOldRdn bool

	// NewSuperior is nil when the entry keeps its parent.
	NewSuperior *string
}

// NewModDnRecord creates a moddn change record.
func NewModDnRecord(snippet source.Snippet, dn string, controls []Control, spec ModDnSpec) *ModDnRecord {
	changeType := spec.ChangeType
	if changeType != ChangeModRdn {
		changeType = ChangeModDn
	}
	return &ModDnRecord{
		changeBase:   changeBase{recordBase: recordBase{snippet: snippet, dn: dn}, controls: controls},
		changeType:   changeType,
		newRdn:       spec.NewRdn,
		deleteOldRdn: spec.DeleteOldRdn,
		newSuperior:  spec.NewSuperior,
	}
}

// ChangeType returns ChangeModDn or ChangeModRdn, as written.
func (r *ModDnRecord) ChangeType() ChangeType { return r.changeType }

// NewRdn returns the new relative distinguished name.
func (r *ModDnRecord) NewRdn() string { return r.newRdn }

// DeleteOldRdn reports whether the old RDN values are removed.
func (r *ModDnRecord) DeleteOldRdn() bool { return r.deleteOldRdn }

// NewSuperior returns the new parent DN, if any.
func (r *ModDnRecord) NewSuperior() (string, bool) {
	if r.newSuperior == nil {
		return "", false
	}
	return *r.newSuperior, true
}

// VersionSpec is the "version:" line of an LDIF file.
type VersionSpec struct {
	Version int
	Snippet source.Snippet
}

// IsChangeRecord reports whether r describes a modification.
func IsChangeRecord(r Record) bool {
	_, ok := r.(ChangeRecord)
	return ok
}

var (
	_ Record       = (*AttrValRecord)(nil)
	_ ChangeRecord = (*AddRecord)(nil)
	_ ChangeRecord = (*DeleteRecord)(nil)
	_ ChangeRecord = (*ModifyRecord)(nil)
	_ ChangeRecord = (*ModDnRecord)(nil)
)
