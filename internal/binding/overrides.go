package binding

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// overrideEntry is one override in the serialized blob.
type overrideEntry struct {
	Action string `json:"action"`
	ID     ID     `json:"id"`
	Path   string `json:"path"`
}

type overrideFile struct {
	Bindings []overrideEntry `json:"bindings"`
}

// SaveOverrides serializes every override of the asset. The output is
// stable: entries are ordered by action then slot order.
func (a *Asset) SaveOverrides() string {
	file := overrideFile{Bindings: []overrideEntry{}}
	for _, act := range a.Actions() {
		for _, s := range act.slots {
			if p, ok := s.OverridePath(); ok {
				file.Bindings = append(file.Bindings, overrideEntry{
					Action: act.QualifiedName(),
					ID:     s.ID,
					Path:   p,
				})
			}
		}
	}
	// Paths stay readable: "<Keyboard>/j", not "\u003cKeyboard\u003e/j".
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(file) // plain strings, cannot fail
	return strings.TrimSuffix(buf.String(), "\n")
}

func parseOverrides(blob string) (overrideFile, error) {
	var file overrideFile
	if blob == "" {
		return file, nil
	}
	if err := json.Unmarshal([]byte(blob), &file); err != nil {
		return file, fmt.Errorf("invalid overrides: %w", err)
	}
	return file, nil
}

// LoadOverrides replaces all overrides with the ones in blob. Entries naming
// unknown actions or slots are skipped. Loading the same blob twice yields
// the same state. An empty blob clears every override.
func (a *Asset) LoadOverrides(blob string) error {
	file, err := parseOverrides(blob)
	if err != nil {
		return err
	}
	a.RemoveAllOverrides()
	for _, e := range file.Bindings {
		act := a.FindAction(e.Action)
		if act == nil {
			continue
		}
		if i := act.IndexOf(e.ID); i >= 0 {
			_ = act.ApplyOverride(i, e.Path)
		}
	}
	return nil
}

// ValidateOverrides checks that every entry of blob resolves against the
// asset without applying anything.
func (a *Asset) ValidateOverrides(blob string) error {
	file, err := parseOverrides(blob)
	if err != nil {
		return err
	}
	var missing []string
	for _, e := range file.Bindings {
		act := a.FindAction(e.Action)
		if act == nil {
			return fmt.Errorf("%w: %s", ErrUnresolvedAction, e.Action)
		}
		if act.IndexOf(e.ID) < 0 {
			missing = append(missing, string(e.ID))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %v", ErrUnresolvedSlot, missing)
	}
	return nil
}
