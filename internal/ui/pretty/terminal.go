package pretty

import (
	"io"
	"os"

	"golang.org/x/term"
)

// minExcerptWidth is the narrowest window Excerpt will cut a line down to.
const minExcerptWidth = 16

// ellipsis marks text removed from either side of an excerpt.
const ellipsis = "…"

// TerminalWidth returns the column count of w when it is a terminal, and 0 otherwise.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// Excerpt cuts line down to at most width characters, keeping the
// character at index char visible. It returns the excerpt and the index of
// that character within it. A width of zero or less leaves line untouched.
func Excerpt(line string, char, width int) (string, int) {
	runes := []rune(line)
	if width <= 0 || len(runes) <= width {
		return line, char
	}
	width = max(width, minExcerptWidth)

	// Leave room for an ellipsis on both sides.
	window := width - 2
	start := max(0, char-window/2)
	end := min(len(runes), start+window)
	start = max(0, end-window)

	excerpt := string(runes[start:end])
	newChar := char - start
	if start > 0 {
		excerpt = ellipsis + excerpt
		newChar++
	}
	if end < len(runes) {
		excerpt += ellipsis
	}
	return excerpt, newChar
}
