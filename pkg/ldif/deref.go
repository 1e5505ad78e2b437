package ldif

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/yaklabco/goldif/pkg/fsutil"
)

// ErrUnsupportedScheme is returned when dereferencing a URL whose scheme has
// no registered handler.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// DefaultMaxURLContent is the largest file FileDereferencer reads by default.
const DefaultMaxURLContent = 64 << 20

// Dereferencer fetches the data a URL value refers to.
type Dereferencer interface {
	Dereference(ctx context.Context, u *url.URL) ([]byte, error)
}

// DereferencerFunc adapts a function to the Dereferencer interface.
type DereferencerFunc func(ctx context.Context, u *url.URL) ([]byte, error)

// Dereference calls f.
func (f DereferencerFunc) Dereference(ctx context.Context, u *url.URL) ([]byte, error) {
	return f(ctx, u)
}

// FileDereferencer reads file URLs from the local file system.
type FileDereferencer struct {
	// MaxSize limits the size of files read. Zero or less means no limit.
	MaxSize int64
}

// Dereference reads the file named by a "file" URL.
func (f FileDereferencer) Dereference(ctx context.Context, u *url.URL) ([]byte, error) {
	if u == nil {
		return nil, ErrNoContent
	}
	if u.Scheme != "file" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host != "" && u.Host != "localhost" {
		return nil, fmt.Errorf("%w: remote file host %q", ErrUnsupportedScheme, u.Host)
	}

	content, _, err := fsutil.ReadFileLimit(ctx, u.Path, f.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("dereference %s: %w", u, err)
	}
	return content, nil
}

// SchemeDereferencer dispatches on the URL scheme.
type SchemeDereferencer struct {
	mu       sync.RWMutex
	handlers map[string]Dereferencer
}

// NewSchemeDereferencer creates a dispatcher with no handlers.
func NewSchemeDereferencer() *SchemeDereferencer {
	return &SchemeDereferencer{handlers: make(map[string]Dereferencer)}
}

// Handle registers d for scheme, replacing any previous handler.
func (s *SchemeDereferencer) Handle(scheme string, d Dereferencer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[scheme] = d
}

// Dereference forwards to the handler registered for the URL scheme.
func (s *SchemeDereferencer) Dereference(ctx context.Context, u *url.URL) ([]byte, error) {
	if u == nil {
		return nil, ErrNoContent
	}

	s.mu.RLock()
	handler, ok := s.handlers[u.Scheme]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	return handler.Dereference(ctx, u)
}

//nolint:gochecknoglobals // process-wide default, replaceable for tests
var (
	defaultDerefMu sync.RWMutex
	defaultDeref   Dereferencer = newDefaultDereferencer()
)

func newDefaultDereferencer() Dereferencer {
	d := NewSchemeDereferencer()
	d.Handle("file", FileDereferencer{MaxSize: DefaultMaxURLContent})
	return d
}

// DefaultDereferencer returns the dereferencer used by Value.Content.
func DefaultDereferencer() Dereferencer {
	defaultDerefMu.RLock()
	defer defaultDerefMu.RUnlock()
	return defaultDeref
}

// SetDefaultDereferencer replaces the dereferencer used by Value.Content.
// A nil d restores the built-in file handler.
func SetDefaultDereferencer(d Dereferencer) {
	if d == nil {
		d = newDefaultDereferencer()
	}
	defaultDerefMu.Lock()
	defer defaultDerefMu.Unlock()
	defaultDeref = d
}
