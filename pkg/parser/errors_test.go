package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goldif/pkg/parser"
	"github.com/yaklabco/goldif/pkg/source"
)

func TestError_MultilineMessage(t *testing.T) {
	t.Parallel()

	state := parser.ParseString("version: 1\ndn: cn=a,dc=org\ncn: Jöhn\n", "x.ldif", parser.Options{})
	require.Len(t, state.Errors(), 1)

	err := state.Errors()[0]
	want := "x.ldif:3:6:syntax error: malformed SAFE-STRING (RFC2849)\n" +
		"x.ldif:3:6:cn: Jöhn\n" +
		"x.ldif:3:6:     ^"
	assert.Equal(t, want, err.MultilineMessage())
	assert.Equal(t, "x.ldif:3:6: syntax error: malformed SAFE-STRING (RFC2849)", err.Error())

	file, line, col := err.Position()
	assert.Equal(t, "x.ldif", file)
	assert.Equal(t, 3, line)
	assert.Equal(t, 6, col)
}

func TestError_PointsIntoOriginalSource(t *testing.T) {
	t.Parallel()

	state := parser.ParseString("# header\ndn: cn=a,\n dc=org\ncn:: !!!\n", "folded.ldif", parser.Options{})
	require.Len(t, state.Errors(), 1)

	err := state.Errors()[0]
	assert.Equal(t, "syntax error: malformed BASE64-STRING (RFC2849)", err.Message)
	assert.Equal(t, 32, err.Location.SourceOffset())

	line, char := err.SourceLineAndCharOffset()
	assert.Equal(t, 3, line)
	assert.Equal(t, 5, char)
	assert.Equal(t, "cn:: !!!", err.SourceLine())
}

func TestError_UnnamedInput(t *testing.T) {
	t.Parallel()

	state := parser.ParseString("dn: nonsense\ncn: a\n", "", parser.Options{})
	require.Len(t, state.Errors(), 1)
	assert.Equal(t, `-:1:5: syntax error: invalid DN syntax: "nonsense"`, state.Errors()[0].Error())
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	input := source.Preprocess("abc", "")
	err := parser.NewError(source.NewLocation(input, 1), parser.CodeSyntax, "bad", cause)

	assert.Equal(t, "syntax error: bad", err.Message)
	require.ErrorIs(t, err, cause)

	internal := parser.NewError(source.NewLocation(input, 0), parser.CodeInternal, "oops", nil)
	assert.Equal(t, "internal error: oops", internal.Message)
	assert.NoError(t, internal.Unwrap())
}

func TestState(t *testing.T) {
	t.Parallel()

	state := parser.NewState(source.Preprocess("dn: cn=a\n", ""), nil)
	assert.True(t, state.IsOK())
	assert.Equal(t, 0, state.ErrorCount())

	state.Cursor().MoveTo(4)
	state.ErrorHere("something")
	require.Equal(t, 1, state.ErrorCount())
	assert.Equal(t, 4, state.Errors()[0].Location.Offset())
	assert.False(t, state.IsOK())

	state.InternalErrorAt(0, "broken table")
	assert.Equal(t, parser.CodeInternal, state.Errors()[1].Code)
}
