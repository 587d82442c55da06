package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay draws fg over bg with its top-left corner at cell (x, y).
// Negative coordinates are treated as 0. Lines of fg that fall below bg
// are dropped.
func Overlay(bg, fg string, x, y int) string {
	x, y = max(x, 0), max(y, 0)

	bgLines := strings.Split(bg, "\n")
	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		base := bgLines[row]
		w := lipgloss.Width(line)

		left := ansi.Truncate(base, x, "")
		if gap := x - lipgloss.Width(left); gap > 0 {
			left += strings.Repeat(" ", gap)
		}
		right := ansi.TruncateLeft(base, x+w, "")
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}

// OverlayBottomRight draws fg in the lower-right corner of a width by
// height background, one cell in from the right edge.
func OverlayBottomRight(bg, fg string, width, height int) string {
	x := width - lipgloss.Width(fg) - 1
	y := height - lipgloss.Height(fg)
	return Overlay(bg, fg, x, y)
}
