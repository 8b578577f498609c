package binding

// Layout names used by the built-in asset.
const (
	LayoutKeyboard  = "Keyboard"
	LayoutMouse     = "Mouse"
	LayoutDualShock = "DualShockGamepad"
	LayoutGamepad   = "Gamepad"
)

func perClass(kbm, secondary, gamepad string) []Slot {
	return []Slot{
		Bind(kbm).WithGroups("KeyboardMouse"),
		Bind(FormatPath(LayoutDualShock, secondary)).WithGroups("Secondary"),
		Bind(FormatPath(LayoutGamepad, gamepad)).WithGroups("Gamepad"),
	}
}

func directional(up, down, left, right [3]string) []Slot {
	layouts := [3]string{LayoutKeyboard, LayoutDualShock, LayoutGamepad}
	groups := [3]string{"KeyboardMouse", "Secondary", "Gamepad"}
	slots := make([]Slot, 0, 15)
	for c := range 3 {
		slots = append(slots,
			Composite("Dpad").WithGroups(groups[c]),
			PartSlot("up", FormatPath(layouts[c], up[c])).WithGroups(groups[c]),
			PartSlot("down", FormatPath(layouts[c], down[c])).WithGroups(groups[c]),
			PartSlot("left", FormatPath(layouts[c], left[c])).WithGroups(groups[c]),
			PartSlot("right", FormatPath(layouts[c], right[c])).WithGroups(groups[c]),
		)
	}
	return slots
}

// DefaultAsset returns the built-in demo asset: a gameplay map and a menu
// map whose actions mirror each other by name.
func DefaultAsset() *Asset {
	asset := NewAsset("Player")

	move := directional(
		[3]string{"w", "dpad/up", "dpad/up"},
		[3]string{"s", "dpad/down", "dpad/down"},
		[3]string{"a", "dpad/left", "dpad/left"},
		[3]string{"d", "dpad/right", "dpad/right"},
	)

	gameplay := asset.AddMap("Gameplay")
	mustAdd(gameplay, "GameplayMove", move...)
	mustAdd(gameplay, "GameplayJump", perClass("<Keyboard>/space", "buttonSouth", "buttonSouth")...)
	mustAdd(gameplay, "GameplayCrouch", perClass("<Keyboard>/c", "buttonEast", "buttonEast")...)
	mustAdd(gameplay, "GameplayInteract", perClass("<Keyboard>/e", "buttonWest", "buttonWest")...)
	mustAdd(gameplay, "GameplayFire", perClass("<Mouse>/leftButton", "rightTrigger", "rightTrigger")...)
	mustAdd(gameplay, "GameplayDebug0", Bind("<Keyboard>/f1"))

	menu := asset.AddMap("Menu")
	mustAdd(menu, "MenuMove", move...)
	mustAdd(menu, "MenuSubmit", perClass("<Keyboard>/enter", "buttonSouth", "buttonSouth")...)
	mustAdd(menu, "MenuBack", perClass("<Keyboard>/backspace", "buttonEast", "buttonEast")...)
	mustAdd(menu, "MenuInteract", perClass("<Keyboard>/e", "buttonWest", "buttonWest")...)

	return asset
}

func mustAdd(m *Map, name string, slots ...Slot) {
	if _, err := m.AddAction(name, slots...); err != nil {
		panic(err)
	}
}
