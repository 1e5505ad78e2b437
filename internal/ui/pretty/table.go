package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/yaklabco/goldif/pkg/ldif"
	"github.com/yaklabco/goldif/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 12
	defaultTermWidth = 100
	heavySeparator   = "="
	lightSeparator   = "-"
)

// statsColumns are the headers of the per-file statistics table.
//
//nolint:gochecknoglobals // Read-only lookup table.
var statsColumns = []string{"FILE", "RECORDS", "CONTENT", "CHANGE", "ERRORS", "SIZE"}

// StatsRow is one line of the per-file statistics table.
type StatsRow struct {
	File    string
	Records int
	Content int
	Change  int
	Errors  int
	Size    int
	Failed  bool
}

// StatsRowFromOutcome summarizes a file outcome for the statistics table.
func StatsRowFromOutcome(outcome runner.FileOutcome) StatsRow {
	row := StatsRow{
		File:   DisplayName(outcome),
		Size:   outcome.Bytes,
		Failed: outcome.Error != nil,
		Errors: len(outcome.ParseErrors()),
	}
	for _, record := range outcome.Records() {
		row.Records++
		if ldif.IsChangeRecord(record) {
			row.Change++
		} else {
			row.Content++
		}
	}
	return row
}

// TableFormatter formats run statistics as an aligned table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatStatsTable renders one row per file followed by a totals row.
func (t *TableFormatter) FormatStatsTable(result *runner.Result) string {
	rows := make([]StatsRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, StatsRowFromOutcome(outcome))
	}

	total := StatsRow{
		File:    "TOTAL",
		Records: result.Stats.Records,
		Content: result.Stats.ContentRecords,
		Change:  result.Stats.ChangeRecords,
		Errors:  result.Stats.Errors,
		Size:    int(result.Stats.Bytes),
	}

	cells := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		cells = append(cells, rowCells(row))
	}
	totalCells := rowCells(total)

	widths := columnWidths(append(cells, totalCells))
	widths[0] = t.fitFileColumn(widths)

	var builder strings.Builder
	builder.WriteString(t.formatLine(statsColumns, widths, t.styles.TableHeader))
	builder.WriteString(t.separator(widths, heavySeparator))
	for i, row := range rows {
		style := lipgloss.NewStyle()
		if row.Errors > 0 || row.Failed {
			style = t.styles.TableErrorRow
		}
		builder.WriteString(t.formatLine(cells[i], widths, style))
	}
	builder.WriteString(t.separator(widths, lightSeparator))
	builder.WriteString(t.formatLine(totalCells, widths, t.styles.Bold))

	return builder.String()
}

func rowCells(row StatsRow) []string {
	errorsCell := humanize.Comma(int64(row.Errors))
	if row.Failed {
		errorsCell = "unreadable"
	}
	return []string{
		row.File,
		humanize.Comma(int64(row.Records)),
		humanize.Comma(int64(row.Content)),
		humanize.Comma(int64(row.Change)),
		errorsCell,
		humanize.Bytes(uint64(max(row.Size, 0))),
	}
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(statsColumns))
	for i, header := range statsColumns {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	return widths
}

// fitFileColumn shrinks the file column so that the table fits the terminal.
func (t *TableFormatter) fitFileColumn(widths []int) int {
	others := 0
	for _, w := range widths[1:] {
		others += w + tablePadding
	}
	available := t.termWidth - others - 1
	return max(minFileWidth, min(widths[0], available))
}

func (t *TableFormatter) formatLine(cells []string, widths []int, style lipgloss.Style) string {
	var builder strings.Builder
	builder.WriteByte(' ')
	for i, cell := range cells {
		if i == 0 {
			cell = truncateFilePath(cell, widths[0])
			builder.WriteString(style.Render(fmt.Sprintf("%-*s", widths[i], cell)))
		} else {
			builder.WriteString(style.Render(fmt.Sprintf("%*s", widths[i], cell)))
		}
		if i < len(cells)-1 {
			builder.WriteString(strings.Repeat(" ", tablePadding))
		}
	}
	builder.WriteByte('\n')
	return builder.String()
}

func (t *TableFormatter) separator(widths []int, char string) string {
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	return " " + t.styles.TableSeparator.Render(strings.Repeat(char, total-tablePadding)) + "\n"
}

// truncateFilePath shortens a path from the front, keeping the file name visible.
func truncateFilePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
