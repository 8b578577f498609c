package rebind

import "github.com/llehouerou/rebinder/internal/device"

// Outcome is how a rebind session ended.
type Outcome int

const (
	// Applied means every targeted slot received a new path.
	Applied Outcome = iota
	// Cancelled covers timeouts, cancel-through controls, explicit
	// cancellation and teardown. Parts applied before it are kept.
	Cancelled
	// DeviceMismatch means input arrived from another device class than the
	// one active when the session started.
	DeviceMismatch
	// Failed means a logic error aborted the session without mutation.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Cancelled:
		return "cancelled"
	case DeviceMismatch:
		return "device_mismatch"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// BindingDisplayChanged is emitted whenever an element's displayed binding
// may have changed: after a rebind, a reset, a blob load or a device change.
type BindingDisplayChanged struct {
	ElementID    string
	Text         string
	DeviceLayout string
	ControlPath  string
	Class        device.Class
}

// RebindStarted is emitted when a session starts waiting for input on a
// slot. Composite rebinds emit one per part.
type RebindStarted struct {
	ElementID string
	Index     int
	// Part is the part name when the slot is a composite part.
	Part string
}

// RebindStopped is emitted once per session when it ends.
type RebindStopped struct {
	ElementID string
	Outcome   Outcome
	// Path is the last path applied by the session, if any.
	Path string
	Err  error
}
