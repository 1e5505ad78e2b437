package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/goldif/internal/ui/pretty"
	"github.com/yaklabco/goldif/pkg/runner"
)

// TextReporter formats results as styled terminal output. Errors are
// grouped by file; each is written as its message, source line and caret.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	width := opts.Width
	if width == 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int

	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report: %w", err)
		}

		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatReadFailure(pretty.DisplayName(file), file.Error))
			continue
		}

		parseErrors := file.ParseErrors()
		if len(parseErrors) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(pretty.DisplayName(file), len(parseErrors)))
		for _, parseErr := range parseErrors {
			fmt.Fprint(r.bw, r.styles.FormatError(parseErr, r.opts.ShowContext, r.width))
			total++
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
