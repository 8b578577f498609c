// Package styles holds the color palette and shared lipgloss styles of the
// rebinding menu.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/rebinder/internal/device"
)

// Theme defines the color palette and pre-built styles.
type Theme struct {
	Primary lipgloss.Color // cursor, focused panel, title start
	Accent  lipgloss.Color // title end, listening pulse

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	// Badge colors per device class, indexed by class ordinal.
	Classes [3]lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles.
type Styles struct {
	Base      lipgloss.Style
	Muted     lipgloss.Style
	Subtle    lipgloss.Style
	Title     lipgloss.Style
	Cursor    lipgloss.Style
	Changed   lipgloss.Style // rebound or reset during this run
	Listening lipgloss.Style // element waiting for input
	Keycap    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style

	panel        lipgloss.Style
	panelFocused lipgloss.Style
	badges       [3]lipgloss.Style
}

var defaultTheme = Theme{
	Primary: lipgloss.Color("#a78bfa"),
	Accent:  lipgloss.Color("#38bdf8"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),

	Classes: [3]lipgloss.Color{
		lipgloss.Color("#a3a3a3"), // keyboard & mouse
		lipgloss.Color("#3b82f6"), // secondary
		lipgloss.Color("#22c55e"), // gamepad
	},
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

// Panel returns the bordered panel style for the focus state.
func (t *Theme) Panel(focused bool) lipgloss.Style {
	if focused {
		return t.S().panelFocused
	}
	return t.S().panel
}

// Badge returns the badge style of a device class. Unknown classes use the
// keyboard badge.
func (t *Theme) Badge(c device.Class) lipgloss.Style {
	s := t.S()
	if c < 0 || int(c) >= len(s.badges) {
		return s.badges[device.KeyboardMouse]
	}
	return s.badges[c]
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	panel := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder())

	s := &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Changed: lipgloss.NewStyle().Foreground(t.Primary),
		Listening: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Keycap: lipgloss.NewStyle().
			Foreground(t.FgBase).
			Padding(0, 1).
			Background(lipgloss.Color("#262626")),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),

		panel:        panel.BorderForeground(t.Border),
		panelFocused: panel.BorderForeground(t.BorderFocus),
	}
	for i, c := range t.Classes {
		s.badges[i] = lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return s
}
