package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayouts_Path(t *testing.T) {
	l := DefaultLayouts()
	tests := []struct {
		name string
		c    Control
		want string
	}{
		{"keyboard", Control{"Keyboard", "space"}, "<Keyboard>/space"},
		{"mouse", Control{"Mouse", "leftButton"}, "<Mouse>/leftButton"},
		{"dualshock", Control{"DualShock4GamepadHID", "buttonSouth"}, "<DualShockGamepad>/buttonSouth"},
		{"dualsense", Control{"DualSenseGamepadHID", "buttonEast"}, "<DualShockGamepad>/buttonEast"},
		{"xinput windows", Control{"XInputControllerWindows", "buttonSouth"}, "<Gamepad>/buttonSouth"},
		{"known gamepad", Control{"Gamepad", "start"}, "<Gamepad>/start"},
		{"fallback keeps name", Control{"Joystick", "trigger"}, "<Joystick>/trigger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Path(tt.c))
		})
	}
}

func TestLayouts_KnownLayoutKept(t *testing.T) {
	l := DefaultLayouts()
	l.Known = append(l.Known, "XInputController")
	assert.Equal(t, "<XInputController>/buttonNorth", l.Path(Control{"XInputControllerWindows", "buttonNorth"}))
}

func TestControl_RawPath(t *testing.T) {
	assert.Equal(t, "/Keyboard/escape", Control{"Keyboard", "escape"}.RawPath())
}
