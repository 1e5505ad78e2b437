package ldif_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/goldif/pkg/ldif"
	"github.com/yaklabco/goldif/pkg/source"
)

func TestParseChangeType(t *testing.T) {
	t.Parallel()

	for _, keyword := range []string{"add", "delete", "modify", "moddn", "modrdn"} {
		changeType, ok := ldif.ParseChangeType(keyword)
		assert.True(t, ok, keyword)
		assert.Equal(t, keyword, changeType.String())
	}

	_, ok := ldif.ParseChangeType("rename")
	assert.False(t, ok)
}

func TestParseModType(t *testing.T) {
	t.Parallel()

	for _, keyword := range []string{"add", "delete", "replace"} {
		modType, ok := ldif.ParseModType(keyword)
		assert.True(t, ok, keyword)
		assert.Equal(t, keyword, modType.String())
	}

	_, ok := ldif.ParseModType("increment")
	assert.False(t, ok)
}

func TestAttrVal_Options(t *testing.T) {
	t.Parallel()

	attrVal := ldif.AttrVal{Attribute: "cn;lang-en;x-a", Value: ldif.NewSafeString("John")}
	assert.Equal(t, "cn", attrVal.AttributeType())
	assert.Equal(t, []string{"lang-en", "x-a"}, attrVal.Options())

	plain := ldif.AttrVal{Attribute: "sn"}
	assert.Equal(t, "sn", plain.AttributeType())
	assert.Nil(t, plain.Options())
}

func TestRecords(t *testing.T) {
	t.Parallel()

	input := source.Preprocess("dn: cn=a,dc=org\nchangetype: delete\n", "x.ldif")
	snippet := source.NewSnippet(source.NewLocation(input, 0), input.Len())

	critical := true
	controls := []ldif.Control{{OID: "1.2.3", Criticality: &critical}}

	del := ldif.NewDeleteRecord(snippet, "cn=a,dc=org", controls)
	assert.Equal(t, "cn=a,dc=org", del.DN())
	assert.Equal(t, ldif.ChangeDelete, del.ChangeType())
	assert.True(t, del.Controls()[0].IsCritical())
	assert.Equal(t, input.Len(), del.Snippet().Length())
	assert.True(t, ldif.IsChangeRecord(del))

	content := ldif.NewAttrValRecord(snippet, "cn=a,dc=org", nil)
	assert.False(t, ldif.IsChangeRecord(content))

	superior := "dc=com"
	moddn := ldif.NewModDnRecord(snippet, "cn=a,dc=org", nil, ldif.ModDnSpec{
		ChangeType:   ldif.ChangeModRdn,
		NewRdn:       "cn=b",
		DeleteOldRdn: true,
		NewSuperior:  &superior,
	})
	assert.Equal(t, ldif.ChangeModRdn, moddn.ChangeType())
	assert.Equal(t, "cn=b", moddn.NewRdn())
	assert.True(t, moddn.DeleteOldRdn())
	got, ok := moddn.NewSuperior()
	assert.True(t, ok)
	assert.Equal(t, "dc=com", got)

	plain := ldif.NewModDnRecord(snippet, "cn=a,dc=org", nil, ldif.ModDnSpec{NewRdn: "cn=b"})
	assert.Equal(t, ldif.ChangeModDn, plain.ChangeType())
	_, ok = plain.NewSuperior()
	assert.False(t, ok)
}
