//nolint:goconst // test cases intentionally repeat strings for readability
package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		expected Class
	}{
		{"Keyboard", KeyboardMouse},
		{"Mouse", KeyboardMouse},
		{"keyboard mouse combo", KeyboardMouse},
		{"DualShock4GamepadHID", Secondary},
		{"DualSenseGamepadHID", Secondary},
		{"PlayStation Controller", Secondary},
		{"XInputControllerWindows", Gamepad},
		{"Xbox Wireless Controller", Gamepad},
		{"Generic Gamepad", Gamepad},
		{"Unknown HOTAS Device", KeyboardMouse},
		{"", KeyboardMouse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.name))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// keyboard/mouse wins over controller keywords
	assert.Equal(t, KeyboardMouse, Classify("Xbox Keyboard Adapter"))
	// dual wins over gamepad
	assert.Equal(t, Secondary, Classify("Dual Gamepad"))
}

func TestClassifier_RemembersLastDevice(t *testing.T) {
	c := NewClassifier()
	assert.Equal(t, KeyboardMouse, c.Current())
	assert.Empty(t, c.LastDevice())

	assert.Equal(t, Gamepad, c.Classify("XInputControllerWindows"))
	assert.Equal(t, Gamepad, c.Current())
	assert.Equal(t, "XInputControllerWindows", c.LastDevice())

	assert.Equal(t, KeyboardMouse, c.Classify("Unknown HOTAS Device"))
	assert.Equal(t, KeyboardMouse, c.Current())
	assert.Equal(t, "Unknown HOTAS Device", c.LastDevice())
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "keyboard_mouse", KeyboardMouse.String())
	assert.Equal(t, "secondary", Secondary.String())
	assert.Equal(t, "gamepad", Gamepad.String())
	assert.Equal(t, "unknown", Class(7).String())
}
