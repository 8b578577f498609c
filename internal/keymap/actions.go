// Package keymap defines the menu key bindings and the live dispatch of
// control paths to game actions.
package keymap

// Action represents a user-triggerable menu action.
type Action string

const (
	// Global actions
	ActionQuit         Action = "quit"
	ActionHelp         Action = "help"
	ActionFilter       Action = "filter"
	ActionCycleDevice  Action = "cycle_device"
	ActionFlush        Action = "flush"
	ActionResetAll     Action = "reset_all"
	ActionToggleNotify Action = "toggle_notify"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Element actions
	ActionRebind Action = "rebind"
	ActionReset  Action = "reset"

	// Rebinding actions
	ActionCancel Action = "cancel"
)

// Contexts group bindings for help rendering.
const (
	ContextGlobal    = "global"
	ContextMenu      = "menu"
	ContextRebinding = "rebinding"
)

// Binding ties keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains all menu key bindings.
var Bindings = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Toggle help", ContextGlobal},
	{ActionFilter, []string{"/"}, "Filter actions", ContextGlobal},
	{ActionCycleDevice, []string{"tab"}, "Switch device", ContextGlobal},
	{ActionFlush, []string{"ctrl+s"}, "Save now", ContextGlobal},
	{ActionResetAll, []string{"R"}, "Reset all bindings", ContextGlobal},
	{ActionToggleNotify, []string{"n"}, "Toggle notifications", ContextGlobal},

	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextMenu},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextMenu},
	{ActionJumpStart, []string{"g", "home"}, "First action", ContextMenu},
	{ActionJumpEnd, []string{"G", "end"}, "Last action", ContextMenu},
	{ActionRebind, []string{"enter"}, "Rebind", ContextMenu},
	{ActionReset, []string{"r", "delete"}, "Reset to default", ContextMenu},

	{ActionCancel, []string{"ctrl+g"}, "Abort rebinding", ContextRebinding},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
