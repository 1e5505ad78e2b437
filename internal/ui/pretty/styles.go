// Package pretty renders parse errors, summaries and statistics tables for
// the terminal using lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the lipgloss styles used by the error, summary and table
// renderers.
type Styles struct {
	// Error block: "file:line:col:" prefix, message, excerpt and caret.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Error      lipgloss.Style
	Internal   lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	Success lipgloss.Style
	Failure lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 16-color palette indices.
const (
	colorGray    = lipgloss.Color("8")
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorMagenta = lipgloss.Color("13")
	colorSilver  = lipgloss.Color("7")
)

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	bold := lipgloss.NewStyle().Bold(colorEnabled)
	fg := func(c lipgloss.Color) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		FilePath:   bold,
		Location:   fg(colorGray),
		Error:      fg(colorRed).Bold(colorEnabled),
		Internal:   fg(colorMagenta).Bold(colorEnabled),
		SourceLine: fg(colorSilver),
		Caret:      fg(colorRed).Bold(colorEnabled),

		Success: fg(colorGreen).Bold(colorEnabled),
		Failure: fg(colorRed).Bold(colorEnabled),

		TableHeader:    fg(colorSilver).Bold(colorEnabled),
		TableErrorRow:  fg(colorRed),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled resolves a color mode ("auto", "always" or "never") for
// writer. Auto enables color only for terminals, and never when NO_COLOR is
// set (https://no-color.org/).
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
