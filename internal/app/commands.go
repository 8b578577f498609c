package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebinder/internal/notify"
	"github.com/llehouerou/rebinder/internal/overrides"
	"github.com/llehouerou/rebinder/internal/rebind"
)

const pulseInterval = 120 * time.Millisecond

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// PulseCmd schedules the next frame of the listening animation.
func PulseCmd() tea.Cmd {
	return tea.Tick(pulseInterval, func(time.Time) tea.Msg {
		return PulseMsg{}
	})
}

// WatchEngineEvents waits for the next engine event and converts it to a
// tea.Msg. Handlers re-issue it after each event.
func (m Model) WatchEngineEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.BindingDisplayChanged:
			return DisplayChangedMsg(e)
		case e := <-sub.RebindStarted:
			return RebindStartedMsg(e)
		case e := <-sub.RebindStopped:
			return RebindStoppedMsg(e)
		case <-sub.Done:
			return EngineClosedMsg{}
		}
	}
}

// reportCmd sends the outcome notification off the update loop, since the
// bus call may block.
func reportCmd(r *notify.Reporter, label string, ev rebind.RebindStopped) tea.Cmd {
	if r == nil || !r.Enabled() {
		return nil
	}
	return func() tea.Msg {
		return NotifyResultMsg{Err: r.Report(label, ev)}
	}
}

func flushCmd(s *overrides.Store) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		return FlushResultMsg{Err: s.Flush()}
	}
}
