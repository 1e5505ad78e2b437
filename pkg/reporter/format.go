package reporter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/goldif/pkg/config"
)

// Format names a reporter. The names match config.OutputFormat.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    = Format(config.FormatText)
	FormatJSON    = Format(config.FormatJSON)
	FormatSummary = Format(config.FormatSummary)
)

// factories builds a Reporter per format.
var factories = map[Format]func(Options) Reporter{
	FormatText:    func(opts Options) Reporter { return NewTextReporter(opts) },
	FormatJSON:    func(opts Options) Reporter { return NewJSONReporter(opts) },
	FormatSummary: func(opts Options) Reporter { return NewSummaryReporter(opts) },
}

// Formats returns the known format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(factories))
	for f := range factories {
		names = append(names, string(f))
	}
	slices.Sort(names)
	return names
}

// ParseFormat maps a case-insensitive name to a Format. The empty string
// selects text.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FormatText, nil
	}
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(Formats(), ", "))
	}
	return f, nil
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether a reporter exists for f.
func (f Format) IsValid() bool {
	_, ok := factories[f]
	return ok
}
