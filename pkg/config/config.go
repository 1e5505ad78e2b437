// Package config defines core configuration types for goldif.
// These types are pure data structures with no dependency on the loader that fills them.
package config

// OutputFormat specifies the output format for parse diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DumpFormat specifies the document format produced by the dump command.
type DumpFormat string

const (
	DumpJSON DumpFormat = "json"
	DumpYAML DumpFormat = "yaml"
)

// DefaultExtensions lists the file extensions collected when a directory is checked.
func DefaultExtensions() []string {
	return []string{".ldif"}
}

// Config is the root configuration structure for goldif.
//
// Boolean switches are pointers so that a config layer can turn off what a
// lower layer turned on. Use the accessor methods to read them.
type Config struct {
	// Format specifies the diagnostic output format ("text", "json" or "summary").
	Format OutputFormat `json:"format,omitempty" yaml:"format,omitempty"`

	// Color controls colored output ("auto", "always" or "never").
	Color ColorMode `json:"color,omitempty" yaml:"color,omitempty"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `json:"jobs,omitempty" yaml:"jobs,omitempty"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Extensions lists the file extensions collected from directories.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`

	// ShowContext prints the offending source line and a caret under each error.
	ShowContext *bool `json:"show_context,omitempty" yaml:"show_context,omitempty"`

	// RequireVersion makes a missing "version: 1" line an error.
	RequireVersion *bool `json:"require_version,omitempty" yaml:"require_version,omitempty"`

	// StrictRecords rejects files that mix content and change records.
	StrictRecords *bool `json:"strict_records,omitempty" yaml:"strict_records,omitempty"`

	// DumpFormat selects the document format of the dump command.
	DumpFormat DumpFormat `json:"dump_format,omitempty" yaml:"dump_format,omitempty"`

	// ResolveURLs makes the dump command read the content behind URL values.
	ResolveURLs *bool `json:"resolve_urls,omitempty" yaml:"resolve_urls,omitempty"`

	// MaxURLSize caps the number of bytes read for one URL value. 0 means the library default.
	MaxURLSize int64 `json:"max_url_size,omitempty" yaml:"max_url_size,omitempty"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:         FormatText,
		Color:          ColorAuto,
		Jobs:           0, // 0 means use GOMAXPROCS
		Extensions:     DefaultExtensions(),
		ShowContext:    Bool(true),
		RequireVersion: Bool(false),
		StrictRecords:  Bool(false),
		DumpFormat:     DumpJSON,
		ResolveURLs:    Bool(false),
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BoolValue dereferences p, returning def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ShowContextEnabled reports whether error excerpts should be printed.
func (c *Config) ShowContextEnabled() bool {
	return BoolValue(c.ShowContext, true)
}

// RequireVersionEnabled reports whether a version-spec is mandatory.
func (c *Config) RequireVersionEnabled() bool {
	return BoolValue(c.RequireVersion, false)
}

// StrictRecordsEnabled reports whether mixing record kinds is an error.
func (c *Config) StrictRecordsEnabled() bool {
	return BoolValue(c.StrictRecords, false)
}

// ResolveURLsEnabled reports whether the dump command dereferences URL values.
func (c *Config) ResolveURLsEnabled() bool {
	return BoolValue(c.ResolveURLs, false)
}
