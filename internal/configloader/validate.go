package configloader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/goldif/pkg/config"
)

// ValidationError describes one invalid or suspicious configuration value.
type ValidationError struct {
	// File is the config file the value came from; empty for the merged result.
	File string

	// Field is the YAML key, with an index for list entries ("ignore[2]").
	Field string

	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.File, e.Field, e.Message} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ": ")
}

// Validation collects the findings for one configuration.
type Validation struct {
	file string

	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are reported but do not stop loading.
	Warnings []ValidationError
}

// Err joins all validation errors, or returns nil when there are none.
func (v *Validation) Err() error {
	errs := make([]error, 0, len(v.Errors))
	for i := range v.Errors {
		errs = append(errs, &v.Errors[i])
	}
	return errors.Join(errs...)
}

// WarningMessages renders the warnings for logging.
func (v *Validation) WarningMessages() []string {
	out := make([]string, 0, len(v.Warnings))
	for i := range v.Warnings {
		out = append(out, v.Warnings[i].Error())
	}
	return out
}

func (v *Validation) fail(field string, value any, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationError{
		File: v.file, Field: field, Value: value, Message: fmt.Sprintf(format, args...),
	})
}

func (v *Validation) warn(field string, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationError{
		File: v.file, Field: field, Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks cfg. file names the source of cfg in messages and may be
// empty. A nil cfg is valid.
func Validate(cfg *config.Config, file string) *Validation {
	v := &Validation{file: file}
	if cfg == nil {
		return v
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		v.fail("format", cfg.Format, "unknown output format %q (want text, json or summary)", cfg.Format)
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		v.fail("color", cfg.Color, "unknown color mode %q (want auto, always or never)", cfg.Color)
	}
	if cfg.DumpFormat != "" && !cfg.DumpFormat.IsValid() {
		v.fail("dump_format", cfg.DumpFormat, "unknown dump format %q (want json or yaml)", cfg.DumpFormat)
	}
	if cfg.Jobs < 0 {
		v.fail("jobs", cfg.Jobs, "must not be negative; 0 selects one worker per CPU")
	}
	if cfg.MaxURLSize < 0 {
		v.fail("max_url_size", cfg.MaxURLSize, "must not be negative; 0 selects the default limit")
	}

	if cfg.Extensions != nil && len(cfg.Extensions) == 0 {
		v.warn("extensions", "empty list; directory arguments will match no files")
	}
	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext, `/\`) {
			v.fail(fmt.Sprintf("extensions[%d]", i), ext, "%q is not a file extension such as \".ldif\"", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		// filepath.Match only fails on malformed patterns.
		if _, err := filepath.Match(pattern, ""); err != nil {
			v.fail(fmt.Sprintf("ignore[%d]", i), pattern, "bad glob %q: %v", pattern, err)
		}
	}

	return v
}
