//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = notifyDest + ".Notify"
	closeMethod  = notifyDest + ".CloseNotification"

	desktopEntry = "rebinder"
)

// busCaller is the part of dbus.BusObject the notifier calls.
type busCaller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type dbusNotifier struct {
	obj busCaller
}

// New connects to the session bus. Without one it returns a no-op notifier.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return &stubNotifier{}, nil //nolint:nilerr // no session bus, notifications are optional
	}
	return &dbusNotifier{obj: conn.Object(notifyDest, dbus.ObjectPath(notifyPath))}, nil
}

// Notify sends
// (app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	call := n.obj.Call(notifyMethod, 0,
		AppName,
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints(notif),
		notif.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(closeMethod, 0, id).Err
}

func hints(notif Notification) map[string]dbus.Variant {
	category := notif.Category
	if category == "" {
		category = CategoryDevice
	}
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
		"category":      dbus.MakeVariant(category),
	}
	if notif.Transient {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}

type stubNotifier struct{}

func (s *stubNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }

func (s *stubNotifier) Close(_ uint32) error { return nil }
