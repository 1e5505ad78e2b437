package ldif

// ChangeType is the operation of a change record.
type ChangeType int

const (
	// ChangeAdd adds an entry.
	ChangeAdd ChangeType = iota + 1

	// ChangeDelete deletes an entry.
	ChangeDelete

	// ChangeModify modifies the attributes of an entry.
	ChangeModify

	// ChangeModDn renames or moves an entry.
	ChangeModDn

	// ChangeModRdn is the older spelling of ChangeModDn.
	ChangeModRdn
)

// ParseChangeType converts the value of a "changetype:" line.
func ParseChangeType(s string) (ChangeType, bool) {
	switch s {
	case "add":
		return ChangeAdd, true
	case "delete":
		return ChangeDelete, true
	case "modify":
		return ChangeModify, true
	case "moddn":
		return ChangeModDn, true
	case "modrdn":
		return ChangeModRdn, true
	default:
		return 0, false
	}
}

// String returns the LDIF keyword.
func (c ChangeType) String() string {
	switch c {
	case ChangeAdd:
		return "add"
	case ChangeDelete:
		return "delete"
	case ChangeModify:
		return "modify"
	case ChangeModDn:
		return "moddn"
	case ChangeModRdn:
		return "modrdn"
	default:
		return "unknown"
	}
}
