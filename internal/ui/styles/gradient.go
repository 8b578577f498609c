package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders bold text blended from one color to another across its
// grapheme clusters.
func Gradient(text string, from, to lipgloss.Color) string {
	return paint(graphemes(text), blend(from, to), 0)
}

// Pulse renders text with a from-to-from gradient shifted by phase, so
// successive phases make the color sweep along the text.
func Pulse(text string, from, to lipgloss.Color, phase int) string {
	return paint(graphemes(text), wave(from, to), phase)
}

// Title renders the application title in the theme's gradient.
func (t *Theme) Title(text string) string {
	return Gradient(text, t.Primary, t.Accent)
}

// ListeningPulse renders the listening indicator at an animation phase.
func (t *Theme) ListeningPulse(text string, phase int) string {
	return Pulse(text, t.Accent, t.Primary, phase)
}

type palette func(n int) []color.Color

func graphemes(text string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

func paint(clusters []string, p palette, phase int) string {
	if len(clusters) == 0 {
		return ""
	}
	colors := p(len(clusters))
	var b strings.Builder
	for i, cluster := range clusters {
		c := colors[(i+phase)%len(colors)]
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(toHex(c))).
			Bold(true).
			Render(cluster))
	}
	return b.String()
}

// blend returns n colors from one end to the other, interpolated in HCL.
func blend(from, to lipgloss.Color) palette {
	return func(n int) []color.Color {
		c1 := toColorful(from)
		if n < 2 {
			return []color.Color{c1}
		}
		c2 := toColorful(to)
		out := make([]color.Color, n)
		for i := range n {
			out[i] = c1.BlendHcl(c2, float64(i)/float64(n-1))
		}
		return out
	}
}

// wave returns n colors going from one end to the other and back.
func wave(from, to lipgloss.Color) palette {
	return func(n int) []color.Color {
		c1 := toColorful(from)
		if n < 2 {
			return []color.Color{c1}
		}
		c2 := toColorful(to)
		half := float64(n) / 2
		out := make([]color.Color, n)
		for i := range n {
			d := float64(i) / half
			if d > 1 {
				d = 2 - d
			}
			out[i] = c1.BlendHcl(c2, d)
		}
		return out
	}
}

// toColorful parses "#rrggbb". ANSI palette indexes fall back to gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}

func toHex(c color.Color) string {
	if cf, ok := c.(colorful.Color); ok {
		return cf.Clamped().Hex()
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
