// Package detect classifies value payloads. It tells binary data from text
// and guesses the format of textual payloads such as those referenced by
// URL values.
package detect

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"
)

// Labels returned by Language besides the lowercased go-enry language names.
const (
	Binary = "binary"
	Text   = "text"
	PEM    = "pem"
	XML    = "xml"
	JSON   = "json"
	LDIF   = "ldif"
)

// IsBinary reports whether go-enry considers content binary, which is the
// case when a NUL byte occurs within its first 8000 bytes.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// IsText reports whether content can be shown as text: it is valid UTF-8
// and not binary.
func IsText(content []byte) bool {
	return utf8.Valid(content) && !enry.IsBinary(content)
}

// Language guesses the format of content. The name, typically a file path,
// is used for extension based detection. Empty content yields "".
func Language(name string, content []byte) string {
	if len(content) == 0 {
		return ""
	}
	if !IsText(content) {
		return Binary
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}
	if name != "" {
		if lang, safe := enry.GetLanguageByExtension(name); safe && lang != "" {
			return normalize(lang)
		}
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// detectByPattern checks for formats commonly stored in directory entries.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("-----BEGIN ")):
		return PEM
	case bytes.HasPrefix(trimmed, []byte("<?xml")):
		return XML
	case looksLikeJSON(trimmed):
		return JSON
	case bytes.HasPrefix(trimmed, []byte("dn:")) || bytes.HasPrefix(trimmed, []byte("version: 1")):
		return LDIF
	default:
		return ""
	}
}

func looksLikeJSON(trimmed []byte) bool {
	if len(trimmed) < 2 || !bytes.Contains(trimmed, []byte(`"`)) {
		return false
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}

// normalize converts go-enry language names to lowercase labels.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
