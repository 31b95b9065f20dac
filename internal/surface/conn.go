package surface

import (
	"github.com/godbus/dbus/v5"
)

// busConn is the subset of the D-Bus connection the surface uses.
// This abstraction allows us to exercise the export, dispatch and
// signal-emission paths in tests without a session bus.
// *dbus.Conn satisfies it directly.
type busConn interface {
	// RequestName claims a well-known bus name
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)

	// Export publishes a receiver's methods on an object path and interface
	Export(v interface{}, path dbus.ObjectPath, iface string) error

	// Emit sends a D-Bus signal
	Emit(path dbus.ObjectPath, name string, values ...interface{}) error

	// Close closes the connection
	Close() error
}

var _ busConn = (*dbus.Conn)(nil)
