package dn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goldif/pkg/dn"
)

func TestCheckDN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "cn=admin,dc=example,dc=org"},
		{name: "escaped comma", input: `cn=Doe\, John,dc=example,dc=org`},
		{name: "multi valued rdn", input: "cn=a+sn=b,dc=org"},
		{name: "missing equals", input: "nonsense", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := dn.CheckDN(testCase.input)
			if testCase.wantErr {
				require.ErrorIs(t, err, dn.ErrInvalidDN)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckRDN(t *testing.T) {
	t.Parallel()

	require.NoError(t, dn.CheckRDN("cn=John"))
	require.NoError(t, dn.CheckRDN("cn=a+sn=b"))
	require.ErrorIs(t, dn.CheckRDN("cn=a,dc=org"), dn.ErrInvalidRDN)
	require.ErrorIs(t, dn.CheckRDN("nonsense"), dn.ErrInvalidRDN)
}

func TestDepth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, dn.Depth("cn=admin,dc=example,dc=org"))
	assert.Equal(t, -1, dn.Depth("nonsense"))
}
