package binding

import (
	"errors"
	"fmt"
)

var (
	ErrUnresolvedAction = errors.New("action not resolvable")
	ErrUnresolvedSlot   = errors.New("binding not found on action")
	ErrSlotOutOfRange   = errors.New("binding index out of range")
	ErrInvalidComposite = errors.New("composite part without composite head")
)

// Action is a named logical input with an ordered list of slots.
type Action struct {
	name     string
	m        *Map
	slots    []Slot
	disabled bool
}

func (a *Action) Name() string { return a.name }

// Map returns the action map owning a.
func (a *Action) Map() *Map { return a.m }

// QualifiedName returns "<map>/<action>".
func (a *Action) QualifiedName() string {
	if a.m == nil {
		return a.name
	}
	return a.m.name + "/" + a.name
}

func (a *Action) String() string { return a.QualifiedName() }

// Len returns the number of slots.
func (a *Action) Len() int { return len(a.slots) }

// Slot returns the slot at index i.
func (a *Action) Slot(i int) (Slot, error) {
	if i < 0 || i >= len(a.slots) {
		return Slot{}, fmt.Errorf("%w: %d on %s", ErrSlotOutOfRange, i, a)
	}
	return a.slots[i], nil
}

// Slots returns a copy of all slots in authoring order.
func (a *Action) Slots() []Slot {
	out := make([]Slot, len(a.slots))
	copy(out, a.slots)
	return out
}

// IndexOf returns the index of the slot with id, or -1.
func (a *Action) IndexOf(id ID) int {
	for i := range a.slots {
		if a.slots[i].ID == id {
			return i
		}
	}
	return -1
}

// EffectivePath returns the effective path at index i, or "" when out of range.
func (a *Action) EffectivePath(i int) string {
	if i < 0 || i >= len(a.slots) {
		return ""
	}
	return a.slots[i].EffectivePath()
}

// IsComposite reports whether the first slot is a composite head.
func (a *Action) IsComposite() bool {
	return len(a.slots) > 0 && a.slots[0].Composite
}

// Parts returns the indices of the part slots that follow the composite
// head at index head. It returns nil when head is not a composite.
func (a *Action) Parts(head int) []int {
	if head < 0 || head >= len(a.slots) || !a.slots[head].Composite {
		return nil
	}
	var parts []int
	for i := head + 1; i < len(a.slots) && a.slots[i].PartOfComposite; i++ {
		parts = append(parts, i)
	}
	return parts
}

// ApplyOverride overrides the path of the slot at index i.
func (a *Action) ApplyOverride(i int, path string) error {
	if i < 0 || i >= len(a.slots) {
		return fmt.Errorf("%w: %d on %s", ErrSlotOutOfRange, i, a)
	}
	a.slots[i].override = path
	a.slots[i].overridden = true
	a.changed()
	return nil
}

// RemoveOverride restores the default path of the slot at index i.
func (a *Action) RemoveOverride(i int) error {
	if i < 0 || i >= len(a.slots) {
		return fmt.Errorf("%w: %d on %s", ErrSlotOutOfRange, i, a)
	}
	if !a.slots[i].overridden {
		return nil
	}
	a.slots[i].override = ""
	a.slots[i].overridden = false
	a.changed()
	return nil
}

// RemoveAllOverrides restores the default path of every slot.
func (a *Action) RemoveAllOverrides() {
	changed := false
	for i := range a.slots {
		if a.slots[i].overridden {
			a.slots[i].override = ""
			a.slots[i].overridden = false
			changed = true
		}
	}
	if changed {
		a.changed()
	}
}

// Disable stops the action from triggering gameplay while it is rebound.
func (a *Action) Disable() { a.disabled = true }

// Enable re-enables the action.
func (a *Action) Enable() { a.disabled = false }

// Enabled reports whether the action is enabled.
func (a *Action) Enabled() bool { return !a.disabled }

func (a *Action) changed() {
	if a.m != nil && a.m.asset != nil {
		a.m.asset.notify(a)
	}
}
