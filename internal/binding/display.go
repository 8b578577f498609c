package binding

import "strings"

// Display describes how one slot is shown to the player.
type Display struct {
	Text         string
	DeviceLayout string
	ControlPath  string
}

// DisplayAt renders the slot at index i. A composite head renders its parts'
// controls joined with "/", and reports the layout of its first part.
func (a *Action) DisplayAt(i int) Display {
	if a == nil || i < 0 || i >= len(a.slots) {
		return Display{}
	}
	if !a.slots[i].Composite {
		layout, control := ParsePath(a.slots[i].EffectivePath())
		return Display{Text: control, DeviceLayout: layout, ControlPath: control}
	}

	parts := a.Parts(i)
	names := make([]string, 0, len(parts))
	var d Display
	for n, p := range parts {
		layout, control := ParsePath(a.slots[p].EffectivePath())
		if n == 0 {
			d.DeviceLayout = layout
			d.ControlPath = control
		}
		names = append(names, control)
	}
	d.Text = strings.Join(names, "/")
	return d
}
