// Package capture listens for the next qualifying physical input and turns it
// into a canonical control path.
package capture

import (
	"slices"
	"strings"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/device"
)

// Control is a pressed control as reported by the input backend.
type Control struct {
	Device string // raw device name, e.g. "XInputControllerWindows"
	Name   string // control name, e.g. "buttonSouth"
}

// Class classifies the control's device.
func (c Control) Class() device.Class {
	return device.Classify(c.Device)
}

// RawPath is the control path using the raw device name, "/<device>/<name>".
func (c Control) RawPath() string {
	return "/" + c.Device + "/" + c.Name
}

// Layouts normalizes raw device names into binding layouts.
type Layouts struct {
	// Secondary is the layout every secondary-class device maps to.
	Secondary string
	// Gamepad is the layout gamepad-class devices map to unless their
	// name is already one of Known.
	Gamepad string
	Known   []string
}

// DefaultLayouts matches the layouts used by binding.DefaultAsset.
func DefaultLayouts() Layouts {
	return Layouts{
		Secondary: binding.LayoutDualShock,
		Gamepad:   binding.LayoutGamepad,
		Known:     []string{binding.LayoutGamepad},
	}
}

// Layout returns the layout for a raw device name. "Windows" is stripped,
// keyboards and mice keep their literal layout names.
func (l Layouts) Layout(deviceName string) string {
	name := strings.ReplaceAll(deviceName, "Windows", "")
	lower := strings.ToLower(name)
	switch device.Classify(deviceName) {
	case device.Secondary:
		return l.Secondary
	case device.Gamepad:
		if slices.Contains(l.Known, name) {
			return name
		}
		return l.Gamepad
	default:
		switch {
		case strings.Contains(lower, "keyboard"):
			return binding.LayoutKeyboard
		case strings.Contains(lower, "mouse"):
			return binding.LayoutMouse
		default:
			return name
		}
	}
}

// Path formats c as "<layout>/<control>".
func (l Layouts) Path(c Control) string {
	return binding.FormatPath(l.Layout(c.Device), c.Name)
}
