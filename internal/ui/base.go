package ui

// Base carries the focus and size every bordered component needs.
// Embed it in component models:
//
//	type Model struct {
//	    ui.Base
//	    rows []Row
//	}
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize sets the outer dimensions, border included. Negative values are
// treated as zero.
func (b *Base) SetSize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
}

func (b Base) Size() (width, height int) {
	return b.width, b.height
}

func (b Base) Width() int {
	return b.width
}

func (b Base) Height() int {
	return b.height
}

// InnerWidth is the width left inside a standard panel border.
func (b Base) InnerWidth() int {
	return max(b.width-BorderWidth, 0)
}

// ListHeight returns the rows left after overhead, never negative.
func (b Base) ListHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
