package rebind

import (
	"fmt"
	"strings"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/device"
)

// Element is one rebindable entry of a menu.
type Element struct {
	ID string
	// Action is "<map>/<action>" or a bare action name.
	Action string
	// BindingID pins the element to one slot. Ignored when ClassAware.
	BindingID binding.ID
	// Label replaces the action name in menus when set.
	Label string

	ExcludeMouse       bool
	ControllerExpected bool
	// ClassAware elements edit and display the slot belonging to the active
	// device class, and refuse input from any other class.
	ClassAware bool
	// Part selects a composite part for class-aware elements; PartNone
	// targets the whole composite.
	Part binding.Part
}

// DisplayName is the label, or the action name with its map prefix removed
// ("Gameplay/GameplayJump" shows as "Jump").
func (el Element) DisplayName() string {
	if el.Label != "" {
		return el.Label
	}
	mapName, name, ok := strings.Cut(el.Action, "/")
	if !ok {
		return el.Action
	}
	if short := strings.TrimPrefix(name, mapName); short != "" {
		return short
	}
	return name
}

// resolve finds the element's action and the slot it targets for class.
func (el Element) resolve(asset *binding.Asset, class device.Class) (*binding.Action, int, error) {
	action := asset.FindAction(el.Action)
	if action == nil {
		return nil, binding.NotFound, fmt.Errorf("%w: %q", binding.ErrUnresolvedAction, el.Action)
	}
	var idx int
	if el.ClassAware {
		idx = binding.ResolveSlotIndex(action, class, el.Part)
	} else {
		idx = action.IndexOf(el.BindingID)
	}
	if idx == binding.NotFound {
		return action, binding.NotFound, fmt.Errorf("%w: element %q on %s", binding.ErrUnresolvedSlot, el.ID, action)
	}
	return action, idx, nil
}

// display renders the element for class. Class-aware whole-composite
// elements report device layout and control from DisplayIndex.
func (el Element) display(asset *binding.Asset, class device.Class) (BindingDisplayChanged, error) {
	action, idx, err := el.resolve(asset, class)
	if err != nil {
		return BindingDisplayChanged{}, err
	}
	d := action.DisplayAt(idx)
	ev := BindingDisplayChanged{
		ElementID:    el.ID,
		Text:         d.Text,
		DeviceLayout: d.DeviceLayout,
		ControlPath:  d.ControlPath,
		Class:        class,
	}
	if el.ClassAware && el.Part == binding.PartNone {
		if di := binding.DisplayIndex(action, class); di != binding.NotFound {
			icon := action.DisplayAt(di)
			ev.DeviceLayout = icon.DeviceLayout
			ev.ControlPath = icon.ControlPath
		}
	}
	return ev, nil
}

// GenerateElements builds one class-aware element per action of the asset.
// Actions whose name contains "0" are treated as hidden and skipped.
func GenerateElements(asset *binding.Asset) []Element {
	var out []Element
	for _, a := range asset.Actions() {
		if strings.Contains(a.Name(), "0") {
			continue
		}
		out = append(out, Element{
			ID:         a.QualifiedName(),
			Action:     a.QualifiedName(),
			ClassAware: true,
		})
	}
	return out
}
