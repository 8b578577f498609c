package app

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebinder/internal/capture"
	"github.com/llehouerou/rebinder/internal/device"
)

// Simulated devices. The terminal only delivers keys and mouse events, so a
// gamepad is emulated by remapping keys while it is the active device.
const (
	DeviceKeyboard  = "Keyboard"
	DeviceMouse     = "Mouse"
	DeviceDualShock = "DualShock4GamepadHID"
	DeviceXInput    = "XInputControllerWindows"
)

// DefaultDevices are cycled through with the device switch key.
var DefaultDevices = []string{DeviceKeyboard, DeviceDualShock, DeviceXInput}

var keyboardNames = map[string]string{
	" ":         "space",
	"enter":     "enter",
	"esc":       "escape",
	"backspace": "backspace",
	"tab":       "tab",
	"delete":    "delete",
	"insert":    "insert",
	"home":      "home",
	"end":       "end",
	"pgup":      "pageUp",
	"pgdown":    "pageDown",
	"up":        "upArrow",
	"down":      "downArrow",
	"left":      "leftArrow",
	"right":     "rightArrow",
}

// padControls maps keys to gamepad controls while a pad is active.
var padControls = map[string]string{
	"up":        "dpad/up",
	"down":      "dpad/down",
	"left":      "dpad/left",
	"right":     "dpad/right",
	"z":         "buttonSouth",
	"x":         "buttonEast",
	"c":         "buttonWest",
	"v":         "buttonNorth",
	"q":         "leftShoulder",
	"e":         "rightShoulder",
	"1":         "leftTrigger",
	"3":         "rightTrigger",
	"enter":     "start",
	"backspace": "select",
	"w":         "leftStick/up",
	"s":         "leftStick/down",
	"a":         "leftStick/left",
	"d":         "leftStick/right",
}

// KeyControl translates a key press into the control it represents on the
// active device. Keys a pad has no mapping for come from the keyboard, as a
// real keyboard stays plugged in next to a pad.
func KeyControl(active string, k tea.KeyMsg) (capture.Control, bool) {
	s := k.String()
	if device.Classify(active) != device.KeyboardMouse {
		if name, ok := padControls[strings.ToLower(s)]; ok && !k.Alt {
			return capture.Control{Device: active, Name: name}, true
		}
	}
	name, ok := keyboardName(k)
	if !ok {
		return capture.Control{}, false
	}
	return capture.Control{Device: DeviceKeyboard, Name: name}, true
}

func keyboardName(k tea.KeyMsg) (string, bool) {
	s := k.String()
	if name, ok := keyboardNames[s]; ok {
		return name, true
	}
	if len(s) >= 2 && s[0] == 'f' && strings.Trim(s[1:], "0123456789") == "" {
		return s, true
	}
	if k.Type == tea.KeyRunes && !k.Alt && utf8.RuneCountInString(s) == 1 {
		return strings.ToLower(s), true
	}
	return "", false
}

// MouseControl translates a mouse button press into a mouse control.
func MouseControl(msg tea.MouseMsg) (capture.Control, bool) {
	if msg.Action != tea.MouseActionPress {
		return capture.Control{}, false
	}
	var name string
	switch msg.Button { //nolint:exhaustive // only buttons are controls
	case tea.MouseButtonLeft:
		name = "leftButton"
	case tea.MouseButtonRight:
		name = "rightButton"
	case tea.MouseButtonMiddle:
		name = "middleButton"
	case tea.MouseButtonBackward:
		name = "backButton"
	case tea.MouseButtonForward:
		name = "forwardButton"
	default:
		return capture.Control{}, false
	}
	return capture.Control{Device: DeviceMouse, Name: name}, true
}
