package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate trims s to width display cells, appending an ellipsis when
// asked and there is room for one.
func Truncate(s string, width int, ellipsis bool) string {
	s = strings.TrimSpace(s)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if ellipsis && width > 3 {
		return runewidth.Truncate(s, width-3, "") + "..."
	}
	return runewidth.Truncate(s, width, "")
}

// TruncateAndPad trims s and pads it to exactly width cells. Used for
// table cells so column widths stay fixed.
func TruncateAndPad(s string, width int, ellipsis bool) string {
	s = Truncate(s, width, ellipsis)
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
