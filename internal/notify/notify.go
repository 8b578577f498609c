// Package notify reports rebind outcomes as desktop notifications.
package notify

// AppName is the application name sent with every notification.
const AppName = "Rebinder"

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification categories from the freedesktop spec's device family.
const (
	CategoryDevice      = "device"
	CategoryDeviceError = "device.error"
)

// Notification is a single desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // icon name, e.g. "input-gaming"
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
	// Category defaults to CategoryDevice.
	Category string
	// Transient notifications are kept out of the server's history.
	Transient bool
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID. It returns 0 and a
	// nil error when notifications are unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}
