package keymap

import "github.com/charmbracelet/bubbles/key"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys
	help     map[Action]string
	ordered  []Binding
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to its last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
		help:     make(map[Action]string),
		ordered:  bindings,
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.bindings[k] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
		if _, ok := r.help[b.Action]; !ok {
			r.help[b.Action] = b.Description
		}
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(k string) Action {
	return r.bindings[k]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Key returns the bubbles key binding for an action, for help rendering.
// Unknown actions yield a disabled binding.
func (r *Resolver) Key(action Action) key.Binding {
	keys := r.byAction[action]
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], r.help[action]),
	)
}

// HelpFor returns the key bindings of a context in declaration order.
func (r *Resolver) HelpFor(context string) []key.Binding {
	var out []key.Binding
	seen := make(map[Action]bool)
	for _, b := range r.ordered {
		if b.Context != context || seen[b.Action] {
			continue
		}
		seen[b.Action] = true
		out = append(out, r.Key(b.Action))
	}
	return out
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
