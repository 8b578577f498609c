package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/capture"
	"github.com/llehouerou/rebinder/internal/errmsg"
	"github.com/llehouerou/rebinder/internal/keymap"
	"github.com/llehouerou/rebinder/internal/rebind"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(EngineMessage); ok {
		return m.handleEngineMessage(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m, TickCmd()

	case PulseMsg:
		if m.Rebinding == "" {
			return m, nil
		}
		m.Menu.Tick()
		return m, PulseCmd()

	case NotifyResultMsg:
		if msg.Err != nil {
			m.logger.Warn("notification failed", "error", msg.Err)
		}
		return m, nil

	case FlushResultMsg:
		if msg.Err != nil {
			m.setError(errmsg.Format(errmsg.OpOverridesSave, msg.Err))
			return m, nil
		}
		m.setStatus("Bindings saved")
		return m, nil
	}

	if m.Filtering {
		var cmd tea.Cmd
		m.Filter, cmd = m.Filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Menu.SetSize(msg.Width, m.menuHeight())
	m.Filter.Width = max(msg.Width-4, 10)
	m.Help.Width = msg.Width
	return m, nil
}

func (m Model) handleEngineMessage(msg EngineMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DisplayChangedMsg:
		m.Menu.UpdateBinding(msg.ElementID, msg.Text, msg.DeviceLayout, msg.Class)

	case RebindStartedMsg:
		m.Rebinding = msg.ElementID
		m.Menu.SetListening(msg.ElementID, msg.Part)

	case RebindStoppedMsg:
		return m.handleRebindStopped(rebind.RebindStopped(msg))

	case EngineClosedMsg:
		m.Rebinding = ""
		m.Menu.ClearListening()
		return m, nil
	}
	return m, m.WatchEngineEvents()
}

func (m Model) handleRebindStopped(ev rebind.RebindStopped) (tea.Model, tea.Cmd) {
	if m.Rebinding == ev.ElementID {
		m.Rebinding = ""
	}
	if m.Menu.Listening() == ev.ElementID {
		m.Menu.ClearListening()
	}

	label := m.labels[ev.ElementID]
	_, control := binding.ParsePath(ev.Path)
	switch ev.Outcome {
	case rebind.Applied:
		m.Menu.MarkChanged(ev.ElementID)
		m.setStatus(label + " bound to " + control)
	case rebind.Cancelled:
		if ev.Path != "" {
			m.Menu.MarkChanged(ev.ElementID)
		}
		m.setStatus(label + ": rebinding cancelled")
	case rebind.DeviceMismatch:
		m.setError(label + ": input came from another device")
	case rebind.Failed:
		m.setError(errmsg.FormatWith(errmsg.OpRebindApply, label, ev.Err))
	}
	return m, tea.Batch(m.WatchEngineEvents(), reportCmd(m.reporter, label, ev))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.Rebinding != "" {
		return m.handleRebindingKey(msg)
	}
	if m.Filtering {
		return m.handleFilterKey(msg)
	}

	m.recordInput(msg)

	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp
		m.Menu.SetSize(m.Width, m.menuHeight())
	case keymap.ActionFilter:
		m.Filtering = true
		return m, m.Filter.Focus()
	case keymap.ActionCycleDevice:
		m.Device = (m.Device + 1) % len(m.Devices)
		m.engine.DeviceChanged(m.ActiveDevice())
		m.setStatus("Using " + m.ActiveDevice())
	case keymap.ActionFlush:
		return m, flushCmd(m.store)
	case keymap.ActionResetAll:
		m.engine.ResetAll()
		for _, r := range m.Menu.Rows() {
			m.Menu.MarkChanged(r.ID)
		}
		m.setStatus("All bindings reset to defaults")
	case keymap.ActionToggleNotify:
		return m.toggleNotifications()
	case keymap.ActionMoveUp:
		m.Menu.Move(-1)
	case keymap.ActionMoveDown:
		m.Menu.Move(1)
	case keymap.ActionJumpStart:
		m.Menu.JumpStart()
	case keymap.ActionJumpEnd:
		m.Menu.JumpEnd()
	case keymap.ActionRebind:
		return m.startRebind()
	case keymap.ActionReset:
		return m.resetSelected()
	}
	return m, nil
}

func (m Model) handleRebindingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.Resolve(msg.String()) == keymap.ActionCancel {
		if err := m.engine.CancelRebind(m.Rebinding); err != nil {
			m.setError(errmsg.Format(errmsg.OpRebindCancel, err))
		}
		return m, nil
	}
	if c, ok := KeyControl(m.ActiveDevice(), msg); ok {
		m.LastInput = m.controlPath(c)
		m.press(c)
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Filtering = false
		m.Filter.Blur()
		m.Filter.SetValue("")
		m.Menu.SetFilter("")
		return m, nil
	case "enter":
		m.Filtering = false
		m.Filter.Blur()
		return m, nil
	case "up", "down":
		if msg.String() == "up" {
			m.Menu.Move(-1)
		} else {
			m.Menu.Move(1)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	m.Menu.SetFilter(strings.TrimSpace(m.Filter.Value()))
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Rebinding != "" {
		if c, ok := MouseControl(msg); ok {
			m.LastInput = m.controlPath(c)
			m.press(c)
		}
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.Menu.Move(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.Menu.Move(1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if p, ok := m.Menu.RowAt(msg.Y - headerHeight); ok {
			if p == m.Menu.Pos() {
				return m.startRebind()
			}
			m.Menu.Jump(p)
		}
	}
	return m, nil
}

func (m Model) startRebind() (tea.Model, tea.Cmd) {
	row, ok := m.Menu.Selected()
	if !ok {
		return m, nil
	}
	if err := m.engine.StartRebind(row.ID); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpRebindStart, row.Label, err))
		return m, nil
	}
	m.Rebinding = row.ID
	m.Menu.SetListening(row.ID, "")
	m.setStatus("Press a control for " + row.Label + " (esc cancels)")
	return m, PulseCmd()
}

func (m Model) resetSelected() (tea.Model, tea.Cmd) {
	row, ok := m.Menu.Selected()
	if !ok {
		return m, nil
	}
	if err := m.engine.ResetToDefault(row.ID); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpReset, row.Label, err))
		return m, nil
	}
	m.Menu.MarkChanged(row.ID)
	m.setStatus(row.Label + " reset to default")
	return m, nil
}

func (m Model) toggleNotifications() (tea.Model, tea.Cmd) {
	if m.reporter == nil {
		m.setError("Notifications are not available")
		return m, nil
	}
	enable := !m.reporter.Enabled()
	if err := m.reporter.SetEnabled(enable); err != nil {
		m.setError(errmsg.Format(errmsg.OpNotify, err))
		return m, nil
	}
	switch {
	case m.reporter.Enabled():
		m.setStatus("Notifications on")
	case enable:
		m.setError("Notifications are not available")
	default:
		m.setStatus("Notifications off")
	}
	return m, nil
}

// recordInput shows which game actions a key triggers on the active device.
func (m *Model) recordInput(msg tea.KeyMsg) {
	c, ok := KeyControl(m.ActiveDevice(), msg)
	if !ok {
		return
	}
	path := m.controlPath(c)
	m.LastInput = path
	names := make([]string, 0)
	for _, match := range m.dispatcher.Dispatch(path, c.Class()) {
		names = append(names, match.Name())
	}
	m.LastDispatch = strings.Join(names, ", ")
}

func (m Model) controlPath(c capture.Control) string {
	return m.engine.Layouts().Path(c)
}

func (m *Model) setStatus(s string) {
	m.Status = s
	m.StatusErr = false
}

func (m *Model) setError(s string) {
	m.Status = s
	m.StatusErr = true
	m.logger.Warn(s)
}

// press forwards c to the live session.
func (m Model) press(c capture.Control) {
	if !m.hub.Press(c) {
		m.logger.Debug("input dropped, no session listening", "device", c.Device, "control", c.Name)
	}
}
