package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "buttonSouth", "buttonSouth"},
		{"control chars", "jump\x00\x1b", "jump"},
		{"keeps tab", "a\tb", "a\tb"},
		{"nbsp", "left\u00a0stick", "left stick"},
		{"invalid utf8", "bad\xffbyte", "badbyte"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "Jump", 10, "Jump"},
		{"exact", "Jump", 4, "Jump"},
		{"truncated", "Interact", 5, "Inte…"},
		{"wide runes", "ジャンプ", 5, "ジャ…"},
		{"empty", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.width))
		})
	}
}

func TestFit_Styled(t *testing.T) {
	styled := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Render("Interact")

	got := Fit(styled, 5)
	assert.Equal(t, 5, lipgloss.Width(got))
	assert.Equal(t, "Inte…", ansi.Strip(got))

	got = Fit(styled, 12)
	assert.Equal(t, 12, lipgloss.Width(got))
	assert.Equal(t, "Interact    ", ansi.Strip(got))

	assert.Empty(t, Fit(styled, 0))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, "abcdef", Pad("abcdef", 3))
}

func TestColumns(t *testing.T) {
	tests := []struct {
		name  string
		width int
		cols  []Column
		want  string
	}{
		{
			name:  "fixed and flexible",
			width: 20,
			cols:  []Column{{Text: "Jump", Width: 6}, {Text: "space"}, {Text: "KB", Width: 3, Right: true}},
			want:  "Jump   space      KB",
		},
		{
			name:  "truncates flexible",
			width: 12,
			cols:  []Column{{Text: "Move", Width: 4}, {Text: "w/s/a/d and more"}},
			want:  "Move w/s/a/…",
		},
		{
			name:  "two flexible share",
			width: 9,
			cols:  []Column{{Text: "left"}, {Text: "right"}},
			want:  "left rig…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Columns(tt.width, tt.cols...)
			assert.Equal(t, tt.width, lipgloss.Width(got))
			assert.Equal(t, tt.want, ansi.Strip(got))
		})
	}
}

func TestRow(t *testing.T) {
	assert.Equal(t, "left      right", Row("left", "right", 15))
	assert.Equal(t, "left right", Row("left", "right", 4))
}

func TestKeycap(t *testing.T) {
	plain := lipgloss.NewStyle()
	assert.Equal(t, "space", ansi.Strip(Keycap("space", plain)))
	assert.Equal(t, "·", ansi.Strip(Keycap("", plain)))
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, "──────────", Separator(10))
	assert.Empty(t, Separator(-1))
}
