package device

import "sync"

// DefaultDeviceName is assumed when a device change carries no name.
const DefaultDeviceName = "Keyboard"

// Change is emitted when the active device changes.
type Change struct {
	Device   string
	Class    Class
	Previous Class
}

// Monitor turns raw "active device changed" notifications into
// classified Change events. Repeated notifications for the device that is
// already active are ignored.
type Monitor struct {
	classifier *Classifier

	mu        sync.Mutex
	last      string
	listeners []func(Change)
}

// NewMonitor creates a monitor that records observations on classifier.
func NewMonitor(classifier *Classifier) *Monitor {
	if classifier == nil {
		classifier = Default()
	}
	return &Monitor{classifier: classifier}
}

// OnChange registers fn to be called for every accepted change.
// Listeners run synchronously on the goroutine that reported the change.
func (m *Monitor) OnChange(fn func(Change)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// DeviceChanged reports that name became the active device. It returns
// false when the notification was ignored.
func (m *Monitor) DeviceChanged(name string) bool {
	if name == "" {
		name = DefaultDeviceName
	}

	m.mu.Lock()
	if name == m.last {
		m.mu.Unlock()
		return false
	}
	m.last = name
	listeners := append([]func(Change){}, m.listeners...)
	m.mu.Unlock()

	previous := m.classifier.Current()
	change := Change{
		Device:   name,
		Class:    m.classifier.Classify(name),
		Previous: previous,
	}
	for _, fn := range listeners {
		fn(change)
	}
	return true
}

// Active returns the name of the active device, or "" if none was reported.
func (m *Monitor) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
