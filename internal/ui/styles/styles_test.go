package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/rebinder/internal/device"
)

func TestGradient_PreservesText(t *testing.T) {
	tests := []string{"", "R", "Rebinder", "Jump ↑", "éclair"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, text, ansi.Strip(Gradient(text, "#000000", "#ffffff")))
		})
	}
}

func TestPulse_PreservesTextAcrossPhases(t *testing.T) {
	for phase := range 12 {
		assert.Equal(t, "listening...", ansi.Strip(Pulse("listening...", "#38bdf8", "#a78bfa", phase)))
	}
}

func TestBlend_Endpoints(t *testing.T) {
	colors := blend("#000000", "#ffffff")(5)
	require.Len(t, colors, 5)
	assert.Equal(t, "#000000", toHex(colors[0]))
	assert.Equal(t, "#ffffff", toHex(colors[4]))
}

func TestWave_ReturnsToStart(t *testing.T) {
	colors := wave("#ff0000", "#0000ff")(4)
	require.Len(t, colors, 4)
	assert.Equal(t, "#ff0000", toHex(colors[0]))
	assert.Equal(t, "#0000ff", toHex(colors[2]))
}

func TestToColorful_Fallback(t *testing.T) {
	got := toColorful(lipgloss.Color("240"))
	assert.Equal(t, colorful.Color{R: 0.5, G: 0.5, B: 0.5}, got)
}

func TestTheme_Badge(t *testing.T) {
	th := T()
	for _, c := range device.Classes {
		assert.Equal(t, th.Classes[c], th.Badge(c).GetForeground())
	}
	assert.Equal(t, th.Classes[device.KeyboardMouse], th.Badge(device.Class(9)).GetForeground())
}

func TestTheme_Panel(t *testing.T) {
	th := T()
	assert.Equal(t, th.BorderFocus, th.Panel(true).GetBorderTopForeground())
	assert.Equal(t, th.Border, th.Panel(false).GetBorderTopForeground())
}
