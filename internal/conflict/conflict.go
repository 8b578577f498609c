// Package conflict keeps bindings unique after a rebind. A resolution is
// computed as a Plan against the current binding state and committed in one
// step, so a failed swap never leaves a half-applied sweep behind.
package conflict

import (
	"errors"
	"fmt"
	"strings"

	"github.com/llehouerou/rebinder/internal/binding"
)

// ErrSwapFailure is returned when a planned swap could not be applied.
var ErrSwapFailure = errors.New("conflict swap failed")

// Sweep identifies which pass produced a change.
type Sweep int

const (
	SameMap Sweep = iota
	Mirror
)

func (s Sweep) String() string {
	if s == Mirror {
		return "mirror"
	}
	return "same_map"
}

// Change is one slot override the plan will write.
type Change struct {
	Action *binding.Action
	Index  int
	From   string
	To     string
	Sweep  Sweep
}

func (c Change) String() string {
	return fmt.Sprintf("%s[%d] %q -> %q (%s)", c.Action, c.Index, c.From, c.To, c.Sweep)
}

// Plan is the ordered list of changes resolving a rebind.
type Plan struct {
	changes []Change
}

// Changes returns a copy of the planned changes.
func (p Plan) Changes() []Change {
	return append([]Change(nil), p.changes...)
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool { return len(p.changes) == 0 }

// Resolve plans the swaps needed before slot index of action takes newPath,
// vacating prevPath. The changed slot itself is not part of the plan.
//
// The same-map sweep moves prevPath into every other slot of the action's
// map that currently resolves to newPath. The mirror sweep then visits every
// other map of the asset: the action whose name matches once each map's own
// name is removed from it receives the change, and every other action in that
// map gives up newPath in exchange for prevPath. Within a plain mirrored
// action the two paths trade places, as they do in the home map.
//
// Empty paths mean "unbound" and never conflict.
func Resolve(action *binding.Action, index int, newPath, prevPath string) (Plan, error) {
	if action == nil || action.Map() == nil {
		return Plan{}, binding.ErrUnresolvedAction
	}
	if _, err := action.Slot(index); err != nil {
		return Plan{}, err
	}
	var p Plan
	if newPath == "" || newPath == prevPath {
		return p, nil
	}
	p.sameMap(action, index, newPath, prevPath)
	p.mirror(action, index, newPath, prevPath)
	return p, nil
}

func (p *Plan) add(a *binding.Action, i int, to string, sweep Sweep) {
	p.changes = append(p.changes, Change{
		Action: a,
		Index:  i,
		From:   a.EffectivePath(i),
		To:     to,
		Sweep:  sweep,
	})
}

func (p *Plan) sameMap(action *binding.Action, index int, newPath, prevPath string) {
	for _, other := range action.Map().Actions() {
		for i := range other.Len() {
			if other == action && i == index {
				continue
			}
			if other.EffectivePath(i) == newPath {
				p.add(other, i, prevPath, SameMap)
			}
		}
	}
}

func (p *Plan) mirror(action *binding.Action, index int, newPath, prevPath string) {
	home := action.Map()
	asset := home.Asset()
	if asset == nil {
		return
	}
	key := MirrorKey(action)
	for _, m := range asset.Maps() {
		if m == home {
			continue
		}
		match := findMirror(m, key)
		if match == nil {
			continue
		}
		for _, other := range m.Actions() {
			if other != match {
				for i := range other.Len() {
					if other.EffectivePath(i) == newPath {
						p.add(other, i, prevPath, Mirror)
					}
				}
				continue
			}
			if other.IsComposite() {
				for i := range other.Len() {
					s, _ := other.Slot(i)
					switch {
					case i == index:
						if other.EffectivePath(i) != newPath {
							p.add(other, i, newPath, Mirror)
						}
					case s.PartOfComposite && other.EffectivePath(i) == newPath:
						p.add(other, i, prevPath, Mirror)
					}
				}
				continue
			}
			for i := range other.Len() {
				switch other.EffectivePath(i) {
				case "":
				case prevPath:
					p.add(other, i, newPath, Mirror)
				case newPath:
					p.add(other, i, prevPath, Mirror)
				}
			}
		}
	}
}

// MirrorKey is the action name with its map's name removed, used to pair
// actions across maps ("GameplayMove" and "MenuMove" both yield "Move").
func MirrorKey(a *binding.Action) string {
	if a.Map() == nil {
		return a.Name()
	}
	return strings.ReplaceAll(a.Name(), a.Map().Name(), "")
}

func findMirror(m *binding.Map, key string) *binding.Action {
	for _, a := range m.Actions() {
		if MirrorKey(a) == key {
			return a
		}
	}
	return nil
}

// Apply commits the plan. If any change fails, the changes already written are
// restored and the error wraps ErrSwapFailure.
func (p Plan) Apply() error {
	type undo struct {
		action     *binding.Action
		index      int
		path       string
		overridden bool
	}
	done := make([]undo, 0, len(p.changes))
	for _, c := range p.changes {
		s, err := c.Action.Slot(c.Index)
		if err == nil {
			path, overridden := s.OverridePath()
			err = c.Action.ApplyOverride(c.Index, c.To)
			if err == nil {
				done = append(done, undo{c.Action, c.Index, path, overridden})
				continue
			}
		}
		for j := len(done) - 1; j >= 0; j-- {
			u := done[j]
			if u.overridden {
				_ = u.action.ApplyOverride(u.index, u.path)
			} else {
				_ = u.action.RemoveOverride(u.index)
			}
		}
		return fmt.Errorf("%w: %s: %w", ErrSwapFailure, c, err)
	}
	return nil
}
