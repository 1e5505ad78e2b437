package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a minimal template with settings commented out.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Reject files that do not start with "version: 1"
# require_version: false

# Reject files that mix content records and change records
# strict_records: false

# Number of parallel workers (0 = auto)
# jobs: 0

# File patterns to ignore (glob patterns)
# ignore:
#   - "testdata/**"

# Extensions collected when a directory is checked
# extensions:
#   - ".ldif"
`)

	return buf.Bytes()
}

func generateFullTemplate() ([]byte, error) {
	body, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# format:          text | json | summary
# color:           auto | always | never
# dump_format:     json | yaml
# resolve_urls:    read file:// URL values when dumping
# max_url_size:    byte cap per URL value (0 = 64 MiB)

`)
	buf.Write(body)

	return buf.Bytes(), nil
}

// templateToJSON renders the default configuration as indented JSON.
func templateToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(NewConfig(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# goldif configuration
# See: https://github.com/yaklabco/goldif`
}
