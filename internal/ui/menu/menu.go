// Package menu renders the list of rebindable elements and tracks the
// cursor, the filter and the element currently listening for input.
package menu

import (
	"strings"

	"github.com/llehouerou/rebinder/internal/device"
	"github.com/llehouerou/rebinder/internal/ui"
)

// Row is one rebindable element as shown in the menu.
type Row struct {
	ID      string
	Label   string
	Binding string
	Layout  string
	Class   device.Class
	// Changed marks rows rebound or reset during this run.
	Changed bool
}

// Model is the element list.
type Model struct {
	ui.Base
	rows    []Row
	visible []int // indexes into rows matching the filter
	filter  string

	pos    int // position in visible
	offset int
	margin int

	listening string // element id
	part      string
	phase     int
}

// New creates an empty menu.
func New() Model {
	return Model{margin: ui.ScrollMargin}
}

// SetRows replaces the rows, keeping the cursor on the same element when it
// still exists.
func (m *Model) SetRows(rows []Row) {
	selected, _ := m.Selected()
	m.rows = rows
	m.applyFilter()
	m.selectID(selected.ID)
}

// Rows returns every row, filtered or not.
func (m Model) Rows() []Row {
	return m.rows
}

// UpdateBinding sets the displayed binding of an element. It reports
// whether the element is in the menu.
func (m *Model) UpdateBinding(id, text, layout string, class device.Class) bool {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Binding = text
			m.rows[i].Layout = layout
			m.rows[i].Class = class
			return true
		}
	}
	return false
}

// MarkChanged flags an element as changed during this run.
func (m *Model) MarkChanged(id string) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Changed = true
		}
	}
}

// SetFilter keeps only rows whose label contains text, case-insensitively.
func (m *Model) SetFilter(text string) {
	selected, _ := m.Selected()
	m.filter = text
	m.applyFilter()
	if !m.selectID(selected.ID) {
		m.pos, m.offset = 0, 0
	}
}

// Filter returns the active filter text.
func (m Model) Filter() string {
	return m.filter
}

// Len returns the number of visible rows.
func (m Model) Len() int {
	return len(m.visible)
}

// Selected returns the row under the cursor.
func (m Model) Selected() (Row, bool) {
	if m.pos < 0 || m.pos >= len(m.visible) {
		return Row{}, false
	}
	return m.rows[m.visible[m.pos]], true
}

// Pos returns the cursor position among visible rows.
func (m Model) Pos() int {
	return m.pos
}

// SetListening marks an element as waiting for input. part names the
// composite part being captured, if any.
func (m *Model) SetListening(id, part string) {
	m.listening = id
	m.part = part
}

// ClearListening ends the listening state.
func (m *Model) ClearListening() {
	m.listening = ""
	m.part = ""
}

// Listening returns the listening element id, empty when idle.
func (m Model) Listening() string {
	return m.listening
}

// Tick advances the listening animation.
func (m *Model) Tick() {
	m.phase++
}

func (m *Model) applyFilter() {
	m.visible = make([]int, 0, len(m.rows))
	needle := strings.ToLower(m.filter)
	for i, r := range m.rows {
		if needle == "" || strings.Contains(strings.ToLower(r.Label), needle) {
			m.visible = append(m.visible, i)
		}
	}
	m.clamp()
}

func (m *Model) selectID(id string) bool {
	if id == "" {
		return false
	}
	for p, i := range m.visible {
		if m.rows[i].ID == id {
			m.pos = p
			m.ensureVisible()
			return true
		}
	}
	return false
}
