// Package device classifies input devices into the coarse classes used to
// pick which binding slot an element displays and edits.
package device

// Class is a coarse device bucket. Its ordinal indexes device-class-specific
// slot groups, so the values must not be reordered.
type Class int

const (
	KeyboardMouse Class = iota
	Secondary
	Gamepad
)

// Classes lists every class in ordinal order.
var Classes = []Class{KeyboardMouse, Secondary, Gamepad}

func (c Class) String() string {
	switch c {
	case KeyboardMouse:
		return "keyboard_mouse"
	case Secondary:
		return "secondary"
	case Gamepad:
		return "gamepad"
	default:
		return "unknown"
	}
}
