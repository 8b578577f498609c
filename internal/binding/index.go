package binding

import "github.com/llehouerou/rebinder/internal/device"

// NotFound is returned by the index resolvers when no slot applies.
const NotFound = -1

// CompositeArity is the number of parts of a directional composite.
const CompositeArity = 4

// Part is a directional composite part, expressed as its offset from the
// composite head.
type Part int

const (
	PartNone Part = iota
	PartUp
	PartDown
	PartLeft
	PartRight
)

// PartNames maps a part to the part name used in slot definitions.
var PartNames = map[Part]string{
	PartUp:    "up",
	PartDown:  "down",
	PartLeft:  "left",
	PartRight: "right",
}

// SlotIndex returns the slot a device class uses. Plain actions hold one
// slot per class; composite actions hold a block of five per class (head
// plus four parts), so the index is 4*class + class + part.
func SlotIndex(class device.Class, composite bool, part Part) int {
	c := int(class)
	if !composite {
		return c
	}
	return CompositeArity*c + c + int(part)
}

// ResolveSlotIndex resolves SlotIndex against an action. It returns NotFound
// when the action is nil or the index is past its last slot.
func ResolveSlotIndex(a *Action, class device.Class, part Part) int {
	if a == nil {
		return NotFound
	}
	idx := SlotIndex(class, a.IsComposite(), part)
	if idx >= a.Len() {
		return NotFound
	}
	return idx
}

// DisplayIndex returns the slot whose path feeds icon lookups for a class.
// A composite action's keyboard head (index 0) carries no path, so it is
// displayed through index 2.
func DisplayIndex(a *Action, class device.Class) int {
	idx := ResolveSlotIndex(a, class, PartNone)
	if idx == 0 && a.IsComposite() {
		idx = 2
		if idx >= a.Len() {
			return NotFound
		}
	}
	return idx
}
