// Package render lays out styled text in fixed-width terminal cells.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated cells.
const Ellipsis = "…"

// Sanitize drops control characters and invalid UTF-8 from labels and
// control names read from asset files, and turns non-breaking spaces into
// plain ones.
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == unicode.ReplacementChar || r == '\u00a0' || (r != '\t' && unicode.IsControl(r)) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case r == unicode.ReplacementChar, r != '\t' && unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// Truncate shortens plain text to width cells.
func Truncate(s string, width int) string {
	return runewidth.Truncate(Sanitize(s), width, Ellipsis)
}

// Fit truncates possibly styled text to width cells, keeping its escape
// sequences intact, then pads it to exactly width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, Ellipsis)
	}
	return Pad(s, width)
}

// Pad right-fills styled text with spaces up to width cells.
func Pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Column is a cell of a fixed-layout row. A zero Width takes what is left.
type Column struct {
	Text  string
	Width int
	Right bool
}

// Columns joins cells into a row exactly width cells wide, with one space
// between cells. Flexible columns share the remaining width.
func Columns(width int, cols ...Column) string {
	if len(cols) == 0 || width <= 0 {
		return ""
	}
	fixed, flex := len(cols)-1, 0
	for _, c := range cols {
		if c.Width > 0 {
			fixed += c.Width
		} else {
			flex++
		}
	}
	share, extra := 0, 0
	if flex > 0 {
		rest := max(width-fixed, 0)
		share, extra = rest/flex, rest%flex
	}

	cells := make([]string, len(cols))
	for i, c := range cols {
		w := c.Width
		if w <= 0 {
			w = share
			if extra > 0 {
				w++
				extra--
			}
		}
		cell := Fit(c.Text, w)
		if c.Right {
			cell = alignRight(c.Text, w)
		}
		cells[i] = cell
	}
	return Fit(strings.Join(cells, " "), width)
}

func alignRight(s string, width int) string {
	if lipgloss.Width(s) > width {
		return Fit(s, width)
	}
	return strings.Repeat(" ", width-lipgloss.Width(s)) + s
}

// Row places left and right content at the two ends of a width-wide line,
// keeping at least one space between them.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Keycap renders a binding display string as a keycap. An unbound slot
// renders as "·".
func Keycap(display string, style lipgloss.Style) string {
	if display == "" {
		display = "·"
	}
	return style.Render(Sanitize(display))
}

// Separator creates a horizontal separator line of the specified width.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
