// Package reporter renders parse results as text, JSON or a statistics summary.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/goldif/pkg/runner"
)

// Reporter writes a runner result in one output format.
type Reporter interface {
	// Report writes result and returns the number of parse errors it
	// contained. The error is non-nil only when writing failed.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the reporter for opts.Format, text when it is empty.
// A nil Writer defaults to standard output.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	factory, ok := factories[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return factory(opts), nil
}
