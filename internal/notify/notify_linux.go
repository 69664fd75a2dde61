//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

// platformNotify uses the Freedesktop.org notification service on the session bus.
func platformNotify(title, body string, opts options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"shapesketch", uint32(0), opts.iconPath, title, body, []string{}, map[string]dbus.Variant{}, int32(5000))
	return call.Err
}
