// Package binding models an action asset: named action maps holding actions,
// each with an ordered list of binding slots whose paths can be overridden.
//
// The types are not safe for concurrent use; callers serialise access (the
// rebind engine owns a single lock per asset).
package binding

// ID identifies a slot within its action. It is opaque to the engine.
type ID string

// Slot is one physical-control assignment point of an action.
type Slot struct {
	ID ID
	// Name is the composite name for a head slot and the part name
	// ("up", "down", ...) for a part slot.
	Name            string
	Composite       bool
	PartOfComposite bool
	Groups          string
	// Path is the authored default path.
	Path string

	override   string
	overridden bool
}

// Bind returns a plain slot bound to path.
func Bind(path string) Slot {
	return Slot{Path: path}
}

// Composite returns a composite head slot. Its parts must follow it.
func Composite(name string) Slot {
	return Slot{Name: name, Composite: true}
}

// PartSlot returns a composite part slot.
func PartSlot(name, path string) Slot {
	return Slot{Name: name, PartOfComposite: true, Path: path}
}

// WithID returns a copy of s carrying id.
func (s Slot) WithID(id ID) Slot {
	s.ID = id
	return s
}

// WithGroups returns a copy of s carrying the control-scheme groups.
func (s Slot) WithGroups(groups string) Slot {
	s.Groups = groups
	return s
}

// EffectivePath is the override path if one is set, the default otherwise.
func (s Slot) EffectivePath() string {
	if s.overridden {
		return s.override
	}
	return s.Path
}

// OverridePath returns the override and whether one is set.
func (s Slot) OverridePath() (string, bool) {
	return s.override, s.overridden
}
