// Package dn checks distinguished name syntax (RFC 4514, formerly RFC 2253).
package dn

import (
	"errors"
	"fmt"

	ldap "github.com/go-ldap/ldap/v3"
)

var (
	// ErrInvalidDN is returned when a string is not a valid distinguished name.
	ErrInvalidDN = errors.New("invalid DN syntax")

	// ErrInvalidRDN is returned when a string is not a single relative
	// distinguished name.
	ErrInvalidRDN = errors.New("invalid RDN syntax")
)

// Parse parses s as a distinguished name.
func Parse(s string) (*ldap.DN, error) {
	parsed, err := ldap.ParseDN(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDN, err)
	}
	return parsed, nil
}

// CheckDN reports whether s is a syntactically valid distinguished name.
// The empty string is the valid root DN.
func CheckDN(s string) error {
	_, err := Parse(s)
	return err
}

// CheckRDN reports whether s is a syntactically valid relative distinguished
// name, i.e. a DN consisting of exactly one RDN.
func CheckRDN(s string) error {
	parsed, err := ldap.ParseDN(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRDN, err)
	}
	if len(parsed.RDNs) != 1 {
		return fmt.Errorf("%w: expected one RDN, got %d", ErrInvalidRDN, len(parsed.RDNs))
	}
	return nil
}

// Depth returns the number of RDNs in s, or -1 when s is not a valid DN.
func Depth(s string) int {
	parsed, err := ldap.ParseDN(s)
	if err != nil {
		return -1
	}
	return len(parsed.RDNs)
}
