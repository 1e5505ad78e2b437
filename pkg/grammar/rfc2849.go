package grammar

import "sync"

// RFC 2849 rule identifiers.
const (
	VersionSpec      RuleID = "version-spec"
	DnSpec           RuleID = "dn-spec"
	NewRdnSpec       RuleID = "newrdn-spec"
	NewSuperiorSpec  RuleID = "newsuperior-spec"
	DeleteOldRdnSpec RuleID = "deleteoldrdn-spec"
	Sep              RuleID = "sep"
	AttrValSpec      RuleID = "attrval-spec"
	ValueSpec        RuleID = "value-spec"
	Control          RuleID = "control"
	ChangeRecordInit RuleID = "changerecord-init"
	ModSpecInit      RuleID = "mod-spec-init"
	ModSpecEnd       RuleID = "mod-spec-end"
	ChangeRecordHead RuleID = "changerecord-head"
)

// Capture group names shared by the rules.
const (
	GroupVersionNumber = "version_number"
	GroupValueSafe     = "value_safe"
	GroupValueB64      = "value_b64"
	GroupValueURL      = "value_url"
	GroupAttrDesc      = "attr_desc"
	GroupCtlType       = "ctl_type"
	GroupCtlCrit       = "ctl_crit"
	GroupChgType       = "chg_type"
	GroupModType       = "mod_type"
	GroupDeleteOldRdn  = "delete_old_rdn"
)

// Pattern fragments.
const (
	fill = `[ ]*`
	eol  = `(?:\r?\n|\z)`
	rest = `[^\r\n]+`

	safeInitChar = `[\x01-\x09\x0B\x0C\x0E-\x1F\x21-\x39\x3B\x3D-\x7F]`
	safeChar     = `[\x01-\x09\x0B\x0C\x0E-\x7F]`
	safeString   = `(?:` + safeInitChar + safeChar + `*)?`
	base64String = `[+/0-9=A-Za-z]*`

	ldapOID              = `[0-9]+(?:\.[0-9]+)*`
	attributeType        = `(?:` + ldapOID + `|[A-Za-z][A-Za-z0-9-]*)`
	attributeDescription = attributeType + `(?:;[A-Za-z0-9-]+)*`

	// value-spec without the leading attribute: ":" followed by one of
	// "::" BASE64-STRING, ":<" URL or ":" SAFE-STRING.
	valueSpec = `:(?:` +
		`:` + fill + `(?P<value_b64>` + base64String + `)(?P<value_b64_error>` + rest + `)?` +
		`|<` + fill + `(?:(?P<value_url>` + rest + `)|(?P<value_url_error>))` +
		`|` + fill + `(?P<value_safe>` + safeString + `)(?P<value_safe_error>` + rest + `)?` +
		`)`
)

// Message fragments.
const (
	msgMalformedSafe   = "malformed SAFE-STRING (RFC2849)"
	msgMalformedBase64 = "malformed BASE64-STRING (RFC2849)"
	msgMissingURL      = "missing URL (RFC2849)"
)

func valueMessages() map[string]string {
	return map[string]string{
		"value_b64_error":  msgMalformedBase64,
		"value_url_error":  msgMissingURL,
		"value_safe_error": msgMalformedSafe,
	}
}

func nameMessages() map[string]string {
	return map[string]string{
		"value_b64_error":  msgMalformedBase64,
		"value_safe_error": msgMalformedSafe,
	}
}

// nameSpec builds the pattern of a "<tag>:" line carrying a SAFE-STRING or a
// ":" prefixed BASE64-STRING.
func nameSpec(tag string) string {
	return tag + `:(?:` +
		`:` + fill + `(?P<value_b64>` + base64String + `)(?P<value_b64_error>` + rest + `)?` +
		`|` + fill + `(?P<value_safe>` + safeString + `)(?P<value_safe_error>` + rest + `)?` +
		`)`
}

// RFC2849 returns the definitions of the LDIF rules.
func RFC2849() []Definition {
	return []Definition{
		{
			ID: VersionSpec,
			Pattern: `version:` + fill + `(?:(?P<version_number>[0-9]+)(?P<version_error>` + rest + `)?` +
				`|(?P<version_number_error>[^\r\n]*))`,
			Expected: `expected "version:" (RFC2849)`,
			Messages: map[string]string{
				"version_error":        "malformed version-spec (RFC2849)",
				"version_number_error": "expected valid version number (RFC2849)",
			},
		},
		{
			ID:       DnSpec,
			Pattern:  nameSpec("dn"),
			Expected: `expected "dn:" (RFC2849)`,
			Messages: nameMessages(),
		},
		{
			ID:       NewRdnSpec,
			Pattern:  nameSpec("newrdn") + eol,
			Expected: `expected "newrdn:" (RFC2849)`,
			Messages: nameMessages(),
		},
		{
			ID:       NewSuperiorSpec,
			Pattern:  nameSpec("newsuperior") + eol,
			Expected: `expected "newsuperior:" (RFC2849)`,
			Messages: nameMessages(),
		},
		{
			ID: DeleteOldRdnSpec,
			Pattern: `deleteoldrdn:` + fill +
				`(?:(?P<delete_old_rdn>[01])|(?P<delete_old_rdn_error>[^\r\n]*))` + eol,
			Expected: `expected "deleteoldrdn:" (RFC2849)`,
			Messages: map[string]string{
				"delete_old_rdn_error": `expected "0" or "1" (RFC2849)`,
			},
		},
		{
			ID:       Sep,
			Pattern:  `\r?\n`,
			Expected: "expected line separator (RFC2849)",
		},
		{
			ID: AttrValSpec,
			Pattern: `(?:(?P<attr_desc>` + attributeDescription + `)` + valueSpec + eol +
				`|(?P<attr_desc_error>[^\r\n-][^\r\n]*)` + eol + `)`,
			Expected: "expected <AttributeDescription>\":\" (RFC2849)",
			Messages: mergeMessages(valueMessages(), map[string]string{
				"attr_desc_error": "malformed attrval-spec (RFC2849)",
			}),
		},
		{
			ID:       ValueSpec,
			Pattern:  valueSpec,
			Expected: `expected ":" (RFC2849)`,
			Messages: valueMessages(),
		},
		{
			ID: Control,
			Pattern: `control:` + fill +
				`(?:(?P<ctl_type>` + ldapOID + `)|(?P<ctl_type_error>[^\r\n]*))` +
				`(?:[ ]+(?P<ctl_crit>[A-Za-z]+))?` +
				`(?:` + valueSpec + `)?` +
				`(?P<ctl_error>` + rest + `)?` + eol,
			Expected: `expected "control:" (RFC2849)`,
			Messages: mergeMessages(valueMessages(), map[string]string{
				"ctl_type_error": "expected valid OID (RFC2849)",
				"ctl_error":      "malformed control (RFC2849)",
			}),
		},
		{
			ID: ChangeRecordInit,
			Pattern: `changetype:` + fill +
				`(?:(?P<chg_type>add|delete|modrdn|moddn|modify)|(?P<chg_type_error>[^\r\n]*))` + eol,
			Expected: `expected "changetype:" (RFC2849)`,
			Messages: map[string]string{
				"chg_type_error": `expected one of "add", "delete", "moddn", "modrdn" or "modify" (RFC2849)`,
			},
		},
		{
			ID: ModSpecInit,
			Pattern: `(?:(?P<mod_type>add|delete|replace)|(?P<mod_type_error>[^\r\n:]*)):` + fill +
				`(?:(?P<attr_desc>` + attributeDescription + `)|(?P<attr_desc_error>[^\r\n]*))` + eol,
			Expected: `expected one of "add:", "delete:" or "replace:" (RFC2849)`,
			Messages: map[string]string{
				"mod_type_error":  `expected one of "add", "delete" or "replace" (RFC2849)`,
				"attr_desc_error": "malformed AttributeDescription (RFC2849)",
			},
		},
		{
			ID:       ModSpecEnd,
			Pattern:  `-` + eol,
			Expected: `expected "-" followed by end of line`,
		},
		{
			ID:       ChangeRecordHead,
			Pattern:  `dn:[^\r\n]*\r?\n(?:control|changetype):`,
			Expected: "expected change record (RFC2849)",
		},
	}
}

func mergeMessages(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// RegisterRFC2849 registers the LDIF rules with g.
func RegisterRFC2849(g *Grammar) {
	for _, def := range RFC2849() {
		g.MustRegister(def)
	}
}

//nolint:gochecknoglobals // shared read-only rule table
var defaultGrammar = sync.OnceValue(func() *Grammar {
	g := New()
	RegisterRFC2849(g)
	return g
})

// Default returns the shared grammar with the LDIF rules registered.
func Default() *Grammar {
	return defaultGrammar()
}
