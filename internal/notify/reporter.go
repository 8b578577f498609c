package notify

import (
	"fmt"
	"sync"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/rebind"
)

const (
	iconApplied = "input-gaming"
	iconProblem = "dialog-warning"

	reportTimeout int32 = 3000
)

// Reporter turns rebind outcomes into notifications. Each report replaces
// the previous one so a burst of rebinds shows a single bubble.
type Reporter struct {
	notifier Notifier

	mu      sync.Mutex
	enabled bool
	lastID  uint32
}

// NewReporter reports through n. A nil notifier disables reporting.
func NewReporter(n Notifier, enabled bool) *Reporter {
	return &Reporter{notifier: n, enabled: enabled && n != nil}
}

// SetEnabled toggles reporting. Disabling closes the last notification.
func (r *Reporter) SetEnabled(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notifier == nil {
		return nil
	}
	r.enabled = enabled
	if enabled || r.lastID == 0 {
		return nil
	}
	id := r.lastID
	r.lastID = 0
	return r.notifier.Close(id)
}

// Enabled reports whether outcomes are sent.
func (r *Reporter) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Report sends the outcome of a finished session. label names the element.
func (r *Reporter) Report(label string, ev rebind.RebindStopped) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return nil
	}
	n := Describe(label, ev)
	n.ReplacesID = r.lastID
	id, err := r.notifier.Notify(n)
	if err != nil {
		return err
	}
	if id != 0 {
		r.lastID = id
	}
	return nil
}

// Describe builds the notification for a session outcome.
func Describe(label string, ev rebind.RebindStopped) Notification {
	n := Notification{
		Timeout:  reportTimeout,
		Urgency:  UrgencyLow,
		Icon:     iconApplied,
		Category: CategoryDevice,
	}
	switch ev.Outcome {
	case rebind.Applied:
		_, control := binding.ParsePath(ev.Path)
		n.Title = label + " rebound"
		n.Body = "Now bound to " + control
	case rebind.Cancelled:
		n.Title = label + " unchanged"
		n.Body = "Rebinding cancelled"
		n.Transient = true
		if ev.Path != "" {
			_, control := binding.ParsePath(ev.Path)
			n.Body = "Rebinding cancelled after " + control
		}
	case rebind.DeviceMismatch:
		n.Title = label + " unchanged"
		n.Body = "Input came from another device"
		n.Icon = iconProblem
		n.Urgency = UrgencyNormal
		n.Transient = true
	default:
		n.Title = label + " rebind failed"
		n.Body = fmt.Sprint(ev.Err)
		n.Icon = iconProblem
		n.Urgency = UrgencyCritical
		n.Category = CategoryDeviceError
	}
	return n
}
