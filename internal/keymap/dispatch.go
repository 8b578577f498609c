package keymap

import (
	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/device"
)

// Match is a game action triggered by a control.
type Match struct {
	Action *binding.Action
	Index  int
	// Part is the composite part name, empty for plain slots.
	Part string
}

// Name returns the qualified action name, with the part appended for
// composite matches ("GameplayMove.up").
func (m Match) Name() string {
	if m.Part == "" {
		return m.Action.QualifiedName()
	}
	return m.Action.QualifiedName() + "." + m.Part
}

// Dispatcher resolves control paths to the game actions they trigger for a
// device class. It reads effective paths on every call, so overrides applied
// after construction are honoured.
type Dispatcher struct {
	maps []*binding.Map
}

// NewDispatcher dispatches over the given maps, in order.
func NewDispatcher(maps ...*binding.Map) *Dispatcher {
	return &Dispatcher{maps: maps}
}

// FromAsset dispatches over every map of the asset.
func FromAsset(a *binding.Asset) *Dispatcher {
	return NewDispatcher(a.Maps()...)
}

// Dispatch returns every enabled action whose slot for class is bound to
// path. Disabled actions (for instance one being rebound) never match.
func (d *Dispatcher) Dispatch(path string, class device.Class) []Match {
	if path == "" {
		return nil
	}
	var out []Match
	for _, m := range d.maps {
		for _, a := range m.Actions() {
			if !a.Enabled() {
				continue
			}
			out = append(out, matchAction(a, path, class)...)
		}
	}
	return out
}

func matchAction(a *binding.Action, path string, class device.Class) []Match {
	idx := binding.ResolveSlotIndex(a, class, binding.PartNone)
	if idx == binding.NotFound {
		return nil
	}
	if !a.IsComposite() {
		if binding.SamePath(a.EffectivePath(idx), path) {
			return []Match{{Action: a, Index: idx}}
		}
		return nil
	}
	var out []Match
	for _, p := range a.Parts(idx) {
		if binding.SamePath(a.EffectivePath(p), path) {
			slot, err := a.Slot(p)
			if err != nil {
				continue
			}
			out = append(out, Match{Action: a, Index: p, Part: slot.Name})
		}
	}
	return out
}
