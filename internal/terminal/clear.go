// Package terminal provides utilities for terminal operations: reading a secret
// without echo and clearing a prompt once it has been answered.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// defaultWidth is assumed when the terminal size cannot be queried.
const defaultWidth = 80

// Width returns the column count of the terminal behind f.
func Width(f *os.File) int {
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return defaultWidth
}

// ClearPreviousLines erases textLength characters of previously printed text
// (prompt plus input) from a terminal that is width columns wide, including
// the empty line the cursor moved to when the user pressed Enter.
func ClearPreviousLines(w io.Writer, textLength, width int) {
	if width <= 0 {
		width = defaultWidth
	}

	totalLines := (textLength + width - 1) / width
	if totalLines < 1 {
		totalLines = 1
	}
	linesToClear := totalLines + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Fprint(w, "\r\x1b[2K") // start of line, clear it
		if i < linesToClear-1 {
			fmt.Fprint(w, "\x1b[1A") // up one line
		}
	}
}
