package app

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/rebinder/internal/keymap"
	"github.com/llehouerou/rebinder/internal/ui/render"
	"github.com/llehouerou/rebinder/internal/ui/styles"
)

const (
	headerHeight = 1
	footerHeight = 3
)

var helpContexts = []string{keymap.ContextGlobal, keymap.ContextMenu, keymap.ContextRebinding}

func (m Model) menuHeight() int {
	h := m.Height - headerHeight - footerHeight
	if m.ShowHelp {
		h -= len(helpContexts) - 1
	}
	return max(h, 0)
}

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	parts := []string{m.renderHeader()}
	if v := m.Menu.View(); v != "" {
		parts = append(parts, v)
	}
	parts = append(parts, m.renderInputLine(), m.renderStatusLine())
	parts = append(parts, m.renderHelp()...)
	return strings.Join(parts, "\n")
}

func (m Model) renderHeader() string {
	t := styles.T()
	title := t.Title("Rebinder") + " " + t.S().Muted.Render(m.engine.Asset().Name())
	dev := t.Badge(m.engine.Class()).Render(m.ActiveDevice())
	return render.Row(title, dev, m.Width)
}

func (m Model) renderInputLine() string {
	s := styles.T().S()
	if m.Filtering {
		return render.Fit(m.Filter.View(), m.Width)
	}
	var line string
	switch {
	case m.Rebinding != "":
		line = s.Listening.Render("listening") + s.Muted.Render("  last input ") + m.LastInput
	case m.LastInput != "":
		dispatch := m.LastDispatch
		if dispatch == "" {
			dispatch = s.Subtle.Render("no action")
		}
		line = s.Muted.Render("input ") + m.LastInput + s.Muted.Render(" -> ") + dispatch
	default:
		line = s.Subtle.Render("press game keys to see what they trigger")
	}
	if f := m.Menu.Filter(); f != "" {
		line = s.Muted.Render("filter: "+f+"  ") + line
	}
	return render.Fit(line, m.Width)
}

func (m Model) renderStatusLine() string {
	s := styles.T().S()
	status := s.Base.Render(m.Status)
	if m.StatusErr {
		status = s.Error.Render(m.Status)
	}
	return render.Row(status, s.Muted.Render(m.saveAge()), m.Width)
}

func (m Model) saveAge() string {
	if m.store == nil {
		return "not persisted"
	}
	pending := ""
	if m.store.Pending() {
		pending = " (saving)"
	}
	if err := m.store.Err(); err != nil {
		return "save failed" + pending
	}
	saved := m.store.LastSaved()
	if saved.IsZero() {
		return "defaults" + pending
	}
	return "saved " + humanize.Time(saved) + pending
}

func (m Model) renderHelp() []string {
	if !m.ShowHelp {
		ctx := keymap.ContextMenu
		if m.Rebinding != "" {
			ctx = keymap.ContextRebinding
		}
		return []string{render.Fit(m.Help.ShortHelpView(m.keys.HelpFor(ctx)), m.Width)}
	}
	lines := make([]string, 0, len(helpContexts))
	for _, ctx := range helpContexts {
		lines = append(lines, render.Fit(m.Help.ShortHelpView(m.keys.HelpFor(ctx)), m.Width))
	}
	return lines
}
