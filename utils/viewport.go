package utils

import (
	"os"

	"golang.org/x/term"
)

const (
	fallbackTerminalColumns = 80
	fallbackTerminalRows    = 24
)

// TerminalColumns returns the width of the attached terminal in characters,
// or 80 when stdout is not a terminal.
func TerminalColumns() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTerminalColumns
	}
	return width
}

// TerminalRows returns the height of the attached terminal in lines, or 24
// when stdout is not a terminal.
func TerminalRows() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		return fallbackTerminalRows
	}
	return height
}

// ViewportLines is the number of lines a redrawn frame may use. The last
// terminal line stays free for the newline that ends the frame, so the
// screen never scrolls.
func ViewportLines() int {
	return max(TerminalRows()-1, 1)
}

// ViewportWidth converts the configured width to pixels. A zero width
// follows the terminal.
func ViewportWidth(configured, pixelsPerColumn int) int {
	if configured > 0 {
		return configured
	}
	return TerminalColumns() * pixelsPerColumn
}
