// Package ldif defines the values and records produced by parsing LDIF.
package ldif

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrNoContent is returned when asking an invalid Value for its content.
	ErrNoContent = errors.New("value has no content")

	// ErrRelativeURL is returned for URL values without a scheme.
	ErrRelativeURL = errors.New("relative URL")
)

// ValueKind identifies how a value was written.
type ValueKind int

const (
	// KindInvalid is the kind of the zero Value.
	KindInvalid ValueKind = iota

	// KindSafe is a SAFE-STRING written after a single colon.
	KindSafe

	// KindBase64 is a BASE64-STRING written after a double colon.
	KindBase64

	// KindURL is a URL written after ":<".
	KindURL
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindSafe:
		return "safe"
	case KindBase64:
		return "base64"
	case KindURL:
		return "url"
	default:
		return "invalid"
	}
}

// Value is an attribute or control value. The zero Value is invalid; use one
// of the constructors.
type Value struct {
	kind    ValueKind
	spec    string
	url     *url.URL
	decoded []byte
}

// NewSafeString returns a value holding s verbatim.
func NewSafeString(s string) Value {
	return Value{kind: KindSafe, spec: s}
}

// NewBase64String returns a value for the base64 text spec. Decoding is
// deferred until Content is called.
func NewBase64String(spec string) Value {
	return Value{kind: KindBase64, spec: spec}
}

// NewDecodedBase64String returns a value for spec whose decoded bytes are
// already known.
func NewDecodedBase64String(spec string, decoded []byte) Value {
	return Value{kind: KindBase64, spec: spec, decoded: decoded}
}

// NewURI returns a value referring to u.
func NewURI(u *url.URL) Value {
	return Value{kind: KindURL, spec: u.String(), url: u}
}

// NewURIFromString parses s and returns a URL value. s must be absolute.
func NewURIFromString(s string) (Value, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Value{}, err //nolint:wrapcheck // callers prefix the url error themselves
	}
	if !u.IsAbs() {
		return Value{}, fmt.Errorf("%w: %q", ErrRelativeURL, s)
	}
	return Value{kind: KindURL, spec: s, url: u}, nil
}

// Kind returns the value kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsValid reports whether v was built by a constructor.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// Spec returns the value as written in the input.
func (v Value) Spec() string {
	return v.spec
}

// URL returns the referenced URL of a KindURL value.
func (v Value) URL() *url.URL {
	return v.url
}

// Content returns the value payload using the default dereferencer for URL
// values.
func (v Value) Content(ctx context.Context) ([]byte, error) {
	return v.ContentWith(ctx, DefaultDereferencer())
}

// ContentWith returns the value payload: the text of a safe string, the
// decoded bytes of a base64 string, or the data behind a URL read through d.
func (v Value) ContentWith(ctx context.Context, d Dereferencer) ([]byte, error) {
	switch v.kind {
	case KindSafe:
		return []byte(v.spec), nil
	case KindBase64:
		if v.decoded != nil {
			return v.decoded, nil
		}
		decoded, err := base64.StdEncoding.DecodeString(v.spec)
		if err != nil {
			return nil, fmt.Errorf("decode base64 value: %w", err)
		}
		return decoded, nil
	case KindURL:
		if d == nil {
			return nil, fmt.Errorf("%w: no dereferencer for %s", ErrUnsupportedScheme, v.spec)
		}
		return d.Dereference(ctx, v.url)
	default:
		return nil, ErrNoContent
	}
}

// String returns a printable form of the value. Base64 values print their
// decoded text when it is available and URL values print the URL.
func (v Value) String() string {
	switch v.kind {
	case KindBase64:
		if v.decoded != nil {
			return string(v.decoded)
		}
		return v.spec
	case KindSafe, KindURL:
		return v.spec
	default:
		return ""
	}
}
