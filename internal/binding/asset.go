package binding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// slotNamespace seeds deterministic slot IDs for assets that omit them.
var slotNamespace = uuid.MustParse("6f1c7d9e-3b2a-4c51-9a0e-2f4b8d7c1e35")

// Map is a named group of actions, e.g. "Gameplay" or "Menu".
type Map struct {
	name    string
	asset   *Asset
	actions []*Action
}

func (m *Map) Name() string { return m.name }

// Asset returns the asset owning m.
func (m *Map) Asset() *Asset { return m.asset }

// Actions returns the actions in authoring order.
func (m *Map) Actions() []*Action {
	return append([]*Action(nil), m.actions...)
}

// FindAction returns the action named name, or nil.
func (m *Map) FindAction(name string) *Action {
	for _, a := range m.actions {
		if a.name == name {
			return a
		}
	}
	return nil
}

// AddAction appends an action with the given slots. Slots without an ID get
// a deterministic one derived from their position. Part slots must follow a
// composite head or another part.
func (m *Map) AddAction(name string, slots ...Slot) (*Action, error) {
	if m.FindAction(name) != nil {
		return nil, fmt.Errorf("duplicate action %q in map %q", name, m.name)
	}
	a := &Action{name: name, m: m, slots: make([]Slot, len(slots))}
	seen := make(map[ID]bool, len(slots))
	for i, s := range slots {
		if s.PartOfComposite && (i == 0 || !(slots[i-1].Composite || slots[i-1].PartOfComposite)) {
			return nil, fmt.Errorf("%w: %s/%s slot %d", ErrInvalidComposite, m.name, name, i)
		}
		if s.ID == "" {
			s.ID = deriveID(m.name, name, i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate binding id %q on %s/%s", s.ID, m.name, name)
		}
		seen[s.ID] = true
		a.slots[i] = s
	}
	m.actions = append(m.actions, a)
	return a, nil
}

func deriveID(mapName, actionName string, index int) ID {
	key := mapName + "/" + actionName + "#" + strconv.Itoa(index)
	return ID(uuid.NewSHA1(slotNamespace, []byte(key)).String())
}

// Asset is a set of action maps sharing one override table.
type Asset struct {
	name      string
	maps      []*Map
	observers []func(*Action)
}

// NewAsset creates an empty asset.
func NewAsset(name string) *Asset {
	return &Asset{name: name}
}

func (a *Asset) Name() string { return a.name }

// AddMap appends a new action map.
func (a *Asset) AddMap(name string) *Map {
	m := &Map{name: name, asset: a}
	a.maps = append(a.maps, m)
	return m
}

// Maps returns the action maps in authoring order.
func (a *Asset) Maps() []*Map {
	return append([]*Map(nil), a.maps...)
}

// FindMap returns the map named name, or nil.
func (a *Asset) FindMap(name string) *Map {
	for _, m := range a.maps {
		if m.name == name {
			return m
		}
	}
	return nil
}

// FindAction resolves "<map>/<action>" or a bare action name (first match
// across maps in order).
func (a *Asset) FindAction(name string) *Action {
	if mapName, actionName, ok := strings.Cut(name, "/"); ok {
		m := a.FindMap(mapName)
		if m == nil {
			return nil
		}
		return m.FindAction(actionName)
	}
	for _, m := range a.maps {
		if act := m.FindAction(name); act != nil {
			return act
		}
	}
	return nil
}

// Actions returns every action of every map.
func (a *Asset) Actions() []*Action {
	var out []*Action
	for _, m := range a.maps {
		out = append(out, m.actions...)
	}
	return out
}

// RemoveAllOverrides restores every slot to its default path.
func (a *Asset) RemoveAllOverrides() {
	for _, act := range a.Actions() {
		act.RemoveAllOverrides()
	}
}

// OnChange registers fn to be called whenever an override on any action of
// the asset changes.
func (a *Asset) OnChange(fn func(*Action)) {
	a.observers = append(a.observers, fn)
}

func (a *Asset) notify(act *Action) {
	for _, fn := range a.observers {
		fn(act)
	}
}
