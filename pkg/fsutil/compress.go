package fsutil

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/ulikunitz/xz"
)

// Compression identifies a compressed file format recognised by suffix.
type Compression int

const (
	// CompressionNone means the file is read as is.
	CompressionNone Compression = iota

	// CompressionGzip is a ".gz" file.
	CompressionGzip

	// CompressionXZ is a ".xz" file.
	CompressionXZ
)

// String returns the file suffix of the compression, or "" for none.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionXZ:
		return ".xz"
	default:
		return ""
	}
}

// CompressionFor returns the compression implied by the suffix of path.
func CompressionFor(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(lower, ".xz"):
		return CompressionXZ
	default:
		return CompressionNone
	}
}

// TrimCompressionExt strips a compression suffix, so "a.ldif.xz" becomes
// "a.ldif".
func TrimCompressionExt(path string) string {
	suffix := CompressionFor(path).String()
	return path[:len(path)-len(suffix)]
}

// Decompress expands data. The output is bounded by limit; zero or less
// means no limit. Exceeding it returns ErrTooLarge.
func Decompress(c Compression, data []byte, limit int64) ([]byte, error) {
	var reader io.Reader
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		reader = gr
	case CompressionXZ:
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("xz: %w", err)
		}
		reader = xr
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}

	if limit > 0 {
		reader = io.LimitReader(reader, limit+1)
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompress%s: %w", c, err)
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, fmt.Errorf("decompressed size exceeds %d bytes: %w", limit, ErrTooLarge)
	}
	return out, nil
}
