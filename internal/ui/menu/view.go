package menu

import (
	"strings"

	"github.com/llehouerou/rebinder/internal/ui"
	"github.com/llehouerou/rebinder/internal/ui/render"
	"github.com/llehouerou/rebinder/internal/ui/styles"
)

const (
	layoutColumnWidth = 16
	bindingMinWidth   = 12
)

// View renders the menu inside a bordered panel sized by SetSize.
func (m Model) View() string {
	w, h := m.Size()
	if w < ui.MinPanelWidth || h <= ui.PanelOverhead {
		return ""
	}
	t := styles.T()
	s := t.S()
	inner := m.InnerWidth()

	lines := make([]string, 0, h-ui.BorderHeight)
	lines = append(lines, m.header(inner), s.Subtle.Render(render.Separator(inner)))

	start, end := m.VisibleRange()
	for p := start; p < end; p++ {
		lines = append(lines, m.row(p, inner))
	}
	for len(lines) < h-ui.BorderHeight {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	return t.Panel(m.IsFocused()).Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) header(width int) string {
	s := styles.T().S()
	title := "Actions"
	if m.filter != "" {
		title = "Actions matching \"" + render.Truncate(m.filter, 20) + "\""
	}
	return render.Columns(width,
		render.Column{Text: s.Title.Render(title)},
		render.Column{Text: s.Muted.Render("Binding"), Width: m.bindingWidth(width)},
		render.Column{Text: s.Muted.Render("Device"), Width: layoutColumnWidth, Right: true},
	)
}

func (m Model) bindingWidth(width int) int {
	return max(width/3, bindingMinWidth)
}

func (m Model) row(p, width int) string {
	t := styles.T()
	s := t.S()
	r := m.rows[m.visible[p]]

	label := render.Sanitize(r.Label)
	if r.Changed {
		label = s.Changed.Render(label + " *")
	}

	var binding string
	if r.ID == m.listening {
		prompt := "press a control..."
		if m.part != "" {
			prompt = "press " + m.part + "..."
		}
		binding = t.ListeningPulse(prompt, m.phase)
	} else {
		binding = render.Keycap(r.Binding, s.Keycap)
	}

	line := render.Columns(width,
		render.Column{Text: " " + label},
		render.Column{Text: binding, Width: m.bindingWidth(width)},
		render.Column{Text: t.Badge(r.Class).Render(r.Layout), Width: layoutColumnWidth, Right: true},
	)
	if p == m.pos && m.IsFocused() {
		return s.Cursor.Render(line)
	}
	return line
}
