package fsutil_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/yaklabco/goldif/pkg/fsutil"
)

const sampleLDIF = "version: 1\ndn: cn=a,dc=example,dc=com\ncn: a\n"

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func xzBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestCompressionFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    fsutil.Compression
		trimmed string
	}{
		{path: "a.ldif", want: fsutil.CompressionNone, trimmed: "a.ldif"},
		{path: "a.ldif.gz", want: fsutil.CompressionGzip, trimmed: "a.ldif"},
		{path: "dir/A.LDIF.GZ", want: fsutil.CompressionGzip, trimmed: "dir/A.LDIF"},
		{path: "a.ldif.xz", want: fsutil.CompressionXZ, trimmed: "a.ldif"},
		{path: "export.xzip", want: fsutil.CompressionNone, trimmed: "export.xzip"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fsutil.CompressionFor(tt.path))
			assert.Equal(t, tt.trimmed, fsutil.TrimCompressionExt(tt.path))
		})
	}
}

func TestDecompress(t *testing.T) {
	t.Parallel()

	content := []byte(sampleLDIF)

	t.Run("none returns input", func(t *testing.T) {
		t.Parallel()

		got, err := fsutil.Decompress(fsutil.CompressionNone, content, 0)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("gzip", func(t *testing.T) {
		t.Parallel()

		got, err := fsutil.Decompress(fsutil.CompressionGzip, gzipBytes(t, content), 0)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("xz", func(t *testing.T) {
		t.Parallel()

		got, err := fsutil.Decompress(fsutil.CompressionXZ, xzBytes(t, content), 0)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		t.Parallel()

		got, err := fsutil.Decompress(fsutil.CompressionGzip, gzipBytes(t, content), int64(len(content)))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("over limit", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.Decompress(fsutil.CompressionXZ, xzBytes(t, content), 8)
		require.ErrorIs(t, err, fsutil.ErrTooLarge)
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.Decompress(fsutil.CompressionGzip, content, 0)
		require.Error(t, err)
	})

	t.Run("corrupt xz", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.Decompress(fsutil.CompressionXZ, content, 0)
		require.Error(t, err)
	})
}
