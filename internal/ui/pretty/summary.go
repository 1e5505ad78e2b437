package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/goldif/pkg/runner"
)

// plural returns word, with an "s" appended unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 errors in 1 file, 4 files checked (1,204 records, 2.1 MB)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf("%s checked (%s, %s)",
		plural(stats.FilesParsed, "file"),
		plural(stats.Records, "record"),
		humanize.Bytes(uint64(max(stats.Bytes, 0))),
	))

	var parts []string

	if stats.Errors == 0 {
		parts = append(parts, s.Success.Render("No errors found"))
	} else {
		parts = append(parts, s.Failure.Render(plural(stats.Errors, "error"))+
			" in "+plural(stats.FilesWithErrors, "file"))
	}

	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesFailed, "unreadable file")))
	}

	return strings.Join(parts, ", ") + ", " + checked + "\n"
}
