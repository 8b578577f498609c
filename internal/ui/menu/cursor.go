package menu

import "github.com/llehouerou/rebinder/internal/ui"

// Move moves the cursor by delta rows, clamped to the visible rows.
func (m *Model) Move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.pos = clampInt(m.pos+delta, len(m.visible)-1)
	m.ensureVisible()
}

// JumpStart moves the cursor to the first row.
func (m *Model) JumpStart() {
	m.pos = 0
	m.offset = 0
}

// JumpEnd moves the cursor to the last row.
func (m *Model) JumpEnd() {
	if len(m.visible) == 0 {
		return
	}
	m.pos = len(m.visible) - 1
	m.ensureVisible()
}

// VisibleRange returns the [start, end) positions shown in the viewport.
func (m Model) VisibleRange() (start, end int) {
	h := m.listHeight()
	if len(m.visible) == 0 || h <= 0 {
		return 0, 0
	}
	return m.offset, min(m.offset+h, len(m.visible))
}

// RowAt maps a line inside the panel (0 = top border) to a visible row
// position. It returns false for borders, the header and empty space.
func (m Model) RowAt(y int) (int, bool) {
	line := y - (ui.PanelOverhead - 1)
	if line < 0 {
		return 0, false
	}
	start, end := m.VisibleRange()
	p := start + line
	if p >= end {
		return 0, false
	}
	return p, true
}

// Jump moves the cursor to a visible row position.
func (m *Model) Jump(p int) {
	if len(m.visible) == 0 {
		return
	}
	m.pos = clampInt(p, len(m.visible)-1)
	m.ensureVisible()
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

func (m *Model) clamp() {
	if len(m.visible) == 0 {
		m.pos, m.offset = 0, 0
		return
	}
	m.pos = clampInt(m.pos, len(m.visible)-1)
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	h := m.listHeight()
	if h <= 0 || len(m.visible) == 0 {
		return
	}
	margin := min(m.margin, (h-1)/2)
	if m.pos < m.offset+margin {
		m.offset = max(m.pos-margin, 0)
	}
	if m.pos >= m.offset+h-margin {
		m.offset = m.pos - h + margin + 1
	}
	m.offset = clampInt(m.offset, max(len(m.visible)-h, 0))
}

func clampInt(v, maxVal int) int {
	return max(0, min(v, maxVal))
}
