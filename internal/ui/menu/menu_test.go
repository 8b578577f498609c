package menu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/rebinder/internal/device"
	"github.com/llehouerou/rebinder/internal/ui"
)

func sampleRows(n int) []Row {
	rows := make([]Row, n)
	for i := range n {
		rows[i] = Row{ID: fmt.Sprintf("el%d", i), Label: fmt.Sprintf("Action %d", i), Binding: "k", Layout: "Keyboard"}
	}
	return rows
}

func newMenu(rows []Row, height int) Model {
	m := New()
	m.SetSize(60, height)
	m.SetFocused(true)
	m.SetRows(rows)
	return m
}

func TestMenu_MoveAndClamp(t *testing.T) {
	m := newMenu(sampleRows(5), 20)

	m.Move(2)
	assert.Equal(t, 2, m.Pos())
	m.Move(10)
	assert.Equal(t, 4, m.Pos())
	m.Move(-10)
	assert.Equal(t, 0, m.Pos())

	m.JumpEnd()
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "el4", sel.ID)

	m.JumpStart()
	assert.Equal(t, 0, m.Pos())
}

func TestMenu_ScrollKeepsCursorVisible(t *testing.T) {
	// 6 visible rows
	m := newMenu(sampleRows(30), 6+ui.PanelOverhead)

	m.Move(10)
	start, end := m.VisibleRange()
	assert.Equal(t, 6, end-start)
	assert.True(t, m.Pos() >= start && m.Pos() < end)
	assert.Less(t, m.Pos(), end-1, "margin keeps a row below the cursor")

	m.JumpEnd()
	start, end = m.VisibleRange()
	assert.Equal(t, 30, end)
	assert.Equal(t, 24, start)
}

func TestMenu_Filter(t *testing.T) {
	rows := []Row{
		{ID: "jump", Label: "Jump"},
		{ID: "crouch", Label: "Crouch"},
		{ID: "menu-jump", Label: "Menu Jump"},
	}
	m := newMenu(rows, 20)
	m.Move(1)

	m.SetFilter("JUMP")
	assert.Equal(t, 2, m.Len())
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "jump", sel.ID, "cursor falls back to the first match")

	m.Move(1)
	m.SetFilter("menu")
	sel, _ = m.Selected()
	assert.Equal(t, "menu-jump", sel.ID, "selection survives when still visible")

	m.SetFilter("nothing")
	assert.Equal(t, 0, m.Len())
	_, ok = m.Selected()
	assert.False(t, ok)

	m.SetFilter("")
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, "", m.Filter())
}

func TestMenu_SetRowsKeepsSelection(t *testing.T) {
	m := newMenu(sampleRows(5), 20)
	m.Move(3)

	rows := sampleRows(5)
	rows[0], rows[3] = rows[3], rows[0]
	m.SetRows(rows)

	sel, _ := m.Selected()
	assert.Equal(t, "el3", sel.ID)
	assert.Equal(t, 0, m.Pos())
}

func TestMenu_UpdateBinding(t *testing.T) {
	m := newMenu(sampleRows(2), 20)

	assert.True(t, m.UpdateBinding("el1", "buttonSouth", "Gamepad", device.Gamepad))
	assert.False(t, m.UpdateBinding("missing", "x", "Keyboard", device.KeyboardMouse))

	r := m.Rows()[1]
	assert.Equal(t, "buttonSouth", r.Binding)
	assert.Equal(t, "Gamepad", r.Layout)
	assert.Equal(t, device.Gamepad, r.Class)

	m.MarkChanged("el1")
	assert.True(t, m.Rows()[1].Changed)
}

func TestMenu_RowAt(t *testing.T) {
	m := newMenu(sampleRows(3), 20)

	tests := []struct {
		y    int
		want int
		ok   bool
	}{
		{0, 0, false}, // border
		{1, 0, false}, // header
		{2, 0, false}, // separator
		{3, 0, true},
		{5, 2, true},
		{6, 0, false}, // past the last row
	}
	for _, tt := range tests {
		got, ok := m.RowAt(tt.y)
		assert.Equal(t, tt.ok, ok, "y=%d", tt.y)
		if ok {
			assert.Equal(t, tt.want, got, "y=%d", tt.y)
		}
	}
}

func TestMenu_View(t *testing.T) {
	rows := []Row{
		{ID: "jump", Label: "Jump", Binding: "space", Layout: "Keyboard"},
		{ID: "move", Label: "Move", Binding: "w/s/a/d", Layout: "Keyboard"},
	}
	m := newMenu(rows, 10)

	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 10)
	for _, l := range lines {
		assert.Equal(t, 60, lipgloss.Width(l))
	}
	plain := ansi.Strip(view)
	assert.Contains(t, plain, "Jump")
	assert.Contains(t, plain, "w/s/a/d")

	m.SetListening("move", "up")
	m.Tick()
	plain = ansi.Strip(m.View())
	assert.Contains(t, plain, "press up...")
	assert.NotContains(t, plain, "w/s/a/d")

	m.ClearListening()
	assert.Empty(t, m.Listening())
}

func TestMenu_ViewTooSmall(t *testing.T) {
	m := newMenu(sampleRows(2), 3)
	assert.Empty(t, m.View())
}
