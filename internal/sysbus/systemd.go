package sysbus

import (
	"context"
	"errors"

	"github.com/godbus/dbus/v5"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
)

const (
	systemdDest      = "org.freedesktop.systemd1"
	systemdPath      = dbus.ObjectPath("/org/freedesktop/systemd1")
	systemdIface     = "org.freedesktop.systemd1.Manager"
	systemdUnitIface = "org.freedesktop.systemd1.Unit"

	errNoSuchUnit = "org.freedesktop.systemd1.NoSuchUnit"
)

// SystemdService queries the service manager.
type SystemdService struct {
	bus    Conn
	logger *logging.Logger
}

// UnitActiveState returns the ActiveState of unit ("active", "inactive",
// "failed", ...). A unit systemd has not loaded is "inactive".
func (s *SystemdService) UnitActiveState(ctx context.Context, unit string) (string, error) {
	s.logger.Debug("getting unit state", "unit", unit)
	var path dbus.ObjectPath
	err := s.bus.Object(systemdDest, systemdPath).CallWithContext(ctx, systemdIface+".GetUnit", 0, unit).Store(&path)
	if err != nil {
		if errorName(err) == errNoSuchUnit {
			return "inactive", nil
		}
		return "", nerrors.DBus(err, "failed to get unit "+unit)
	}
	state, err := getStringProperty(ctx, s.bus.Object(systemdDest, path), systemdUnitIface, "ActiveState")
	if err != nil {
		return "", nerrors.DBus(err, "failed to get state of "+unit)
	}
	return state, nil
}

// errorName returns the D-Bus error name carried by err, if any.
func errorName(err error) string {
	var byValue dbus.Error
	if errors.As(err, &byValue) {
		return byValue.Name
	}
	var byPtr *dbus.Error
	if errors.As(err, &byPtr) {
		return byPtr.Name
	}
	return ""
}
