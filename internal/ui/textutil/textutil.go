// Package textutil fits server-provided text into fixed-width terminal cells.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most maxWidth columns, ending in Ellipsis when
// anything was dropped. Wide runes are never split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// SingleLine collapses every run of whitespace, newlines included, into one
// space. Log messages from the server can span lines; a table row cannot.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Cell prepares a value for a table column of the given width.
func Cell(s string, width int) string {
	return Truncate(SingleLine(s), width)
}
