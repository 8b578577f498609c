package binding

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type assetDef struct {
	Name string   `koanf:"name"`
	Maps []mapDef `koanf:"maps"`
}

type mapDef struct {
	Name    string      `koanf:"name"`
	Actions []actionDef `koanf:"actions"`
}

type actionDef struct {
	Name     string    `koanf:"name"`
	Bindings []slotDef `koanf:"bindings"`
}

type slotDef struct {
	ID        string `koanf:"id"`
	Path      string `koanf:"path"`
	Composite string `koanf:"composite"` // composite name, marks a head slot
	Part      string `koanf:"part"`      // part name, marks a part slot
	Groups    string `koanf:"groups"`
}

// LoadAssetFile reads an action asset from a TOML file:
//
//	name = "Player"
//	[[maps]]
//	name = "Gameplay"
//	[[maps.actions]]
//	name = "GameplayJump"
//	[[maps.actions.bindings]]
//	path = "<Keyboard>/space"
func LoadAssetFile(path string) (*Asset, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("load asset %s: %w", path, err)
	}
	var def assetDef
	if err := k.Unmarshal("", &def); err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", path, err)
	}
	return buildAsset(def)
}

func buildAsset(def assetDef) (*Asset, error) {
	name := def.Name
	if name == "" {
		name = "Player"
	}
	asset := NewAsset(name)
	for _, md := range def.Maps {
		if strings.TrimSpace(md.Name) == "" {
			return nil, fmt.Errorf("action map without a name in asset %q", name)
		}
		m := asset.AddMap(md.Name)
		for _, ad := range md.Actions {
			slots := make([]Slot, 0, len(ad.Bindings))
			for _, sd := range ad.Bindings {
				slots = append(slots, sd.slot())
			}
			if _, err := m.AddAction(ad.Name, slots...); err != nil {
				return nil, err
			}
		}
	}
	return asset, nil
}

func (d slotDef) slot() Slot {
	var s Slot
	switch {
	case d.Composite != "":
		s = Composite(d.Composite)
	case d.Part != "":
		s = PartSlot(strings.ToLower(d.Part), d.Path)
	default:
		s = Bind(d.Path)
	}
	return s.WithID(ID(d.ID)).WithGroups(d.Groups)
}
