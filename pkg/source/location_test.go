package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/goldif/pkg/source"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []source.LineInfo
	}{
		{
			name:    "empty content",
			content: "",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 0},
			},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with CRLF",
			content: "hello\r\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "line1\nline2\nline3",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, source.BuildLines(testCase.content))
		})
	}
}

func TestLocation_IsValid(t *testing.T) {
	t.Parallel()

	input := source.Preprocess("abc", "")

	assert.True(t, source.NewLocation(input, 0).IsValid())
	assert.True(t, source.NewLocation(input, 3).IsValid())
	assert.False(t, source.NewLocation(input, 4).IsValid())
	assert.False(t, source.NewLocation(input, -1).IsValid())
}

func TestLocation_CharOffset(t *testing.T) {
	t.Parallel()

	input := source.Preprocess("zażółć gęślą", "")

	// "zażółć" is 6 characters encoded in 10 bytes.
	loc := source.NewLocation(input, 10)
	assert.Equal(t, 6, loc.CharOffset())
	assert.Equal(t, 6, loc.SourceCharOffset())
}

func TestLocation_SourceLineAndOffset(t *testing.T) {
	t.Parallel()

	src := "# comment\ndn: cn=a,\n dc=b\ncn: ó\n x\n"
	input := source.Preprocess(src, "file.ldif")
	assert.Equal(t, "dn: cn=a,dc=b\ncn: óx\n", input.String())

	tests := []struct {
		name       string
		offset     int
		line       int
		byteColumn int
		charColumn int
		sourceLine string
	}{
		{"start of dn", 0, 1, 0, 0, "dn: cn=a,"},
		{"folded part", 9, 2, 1, 1, " dc=b"},
		{"after multibyte char", 20, 4, 1, 1, " x"},
		{"multibyte char", 18, 3, 4, 4, "cn: ó"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			loc := source.NewLocation(input, testCase.offset)
			line, column := loc.SourceLineAndOffset()
			assert.Equal(t, testCase.line, line)
			assert.Equal(t, testCase.byteColumn, column)

			line, charColumn := loc.SourceLineAndCharOffset()
			assert.Equal(t, testCase.line, line)
			assert.Equal(t, testCase.charColumn, charColumn)
			assert.Equal(t, testCase.sourceLine, loc.SourceLine())
		})
	}
}

func TestLocation_LineAndOffset(t *testing.T) {
	t.Parallel()

	input := source.Preprocess("a\nbc\n", "")

	line, column := source.NewLocation(input, 3).LineAndOffset()
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, column)

	line, column = source.NewLocation(input, 5).LineAndOffset()
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, column)
}

func TestCursor_Moves(t *testing.T) {
	t.Parallel()

	input := source.Preprocess("0123456789", "")
	cursor := source.NewCursor(input, 0)

	assert.Same(t, cursor, cursor.MoveTo(5))
	assert.Equal(t, 5, cursor.Offset())

	cursor.MoveBy(3).MoveBy(-1)
	assert.Equal(t, 7, cursor.Offset())

	snapshot := cursor.ClonedLocation()
	cursor.MoveTo(9)
	assert.Equal(t, 7, snapshot.Offset())
	assert.Equal(t, 2, cursor.ClonedLocation(2).Offset())
	assert.False(t, cursor.AtEnd())
	assert.True(t, cursor.MoveBy(1).AtEnd())
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	src := "dn: cn=a,\n dc=ą\n# c\n\n"
	input := source.Preprocess(src, "")
	assert.Equal(t, "dn: cn=a,dc=ą\n\n", input.String())

	begin := source.NewLocation(input, 0)
	end := source.NewLocation(input, 16)
	snippet := source.SnippetBetween(begin, end)

	assert.Equal(t, 16, snippet.Length())
	assert.Equal(t, 16, snippet.EndOffset())
	assert.Equal(t, "dn: cn=a,dc=ą\n\n", snippet.Content())
	assert.Equal(t, 22, snippet.SourceEndOffset())
	assert.Equal(t, 22, snippet.SourceLength())
	assert.Equal(t, 21, snippet.SourceCharLength())
	assert.Equal(t, src, snippet.SourceContent())
}
