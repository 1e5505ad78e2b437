package config

import (
	"fmt"
	"strings"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// IsValid returns true if the dump format is known.
func (f DumpFormat) IsValid() bool {
	switch f {
	case DumpJSON, DumpYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat converts a user-supplied string to an OutputFormat.
// Matching is case-insensitive.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("unknown output format %q (valid: %s, %s, %s)", s, FormatText, FormatJSON, FormatSummary)
	}
	return f, nil
}

// ParseColorMode converts a user-supplied string to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	m := ColorMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown color mode %q (valid: %s, %s, %s)", s, ColorAuto, ColorAlways, ColorNever)
	}
	return m, nil
}

// ParseDumpFormat converts a user-supplied string to a DumpFormat.
// "yml" is accepted as an alias of "yaml".
func ParseDumpFormat(s string) (DumpFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "yml" {
		normalized = string(DumpYAML)
	}
	f := DumpFormat(normalized)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown dump format %q (valid: %s, %s)", s, DumpJSON, DumpYAML)
	}
	return f, nil
}
