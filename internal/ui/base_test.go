package ui

import "testing"

func TestBase_Size(t *testing.T) {
	var b Base
	b.SetSize(40, 12)

	if w, h := b.Size(); w != 40 || h != 12 {
		t.Errorf("Size() = %d, %d, want 40, 12", w, h)
	}
	if got := b.InnerWidth(); got != 38 {
		t.Errorf("InnerWidth() = %d, want 38", got)
	}
	if got := b.ListHeight(PanelOverhead); got != 8 {
		t.Errorf("ListHeight() = %d, want 8", got)
	}
}

func TestBase_NeverNegative(t *testing.T) {
	var b Base
	b.SetSize(-5, 1)

	if b.Width() != 0 {
		t.Errorf("Width() = %d, want 0", b.Width())
	}
	if got := b.InnerWidth(); got != 0 {
		t.Errorf("InnerWidth() = %d, want 0", got)
	}
	if got := b.ListHeight(PanelOverhead); got != 0 {
		t.Errorf("ListHeight() = %d, want 0", got)
	}
}

func TestBase_Focus(t *testing.T) {
	var b Base
	if b.IsFocused() {
		t.Error("zero Base should not be focused")
	}
	b.SetFocused(true)
	if !b.IsFocused() {
		t.Error("IsFocused() = false after SetFocused(true)")
	}
}
