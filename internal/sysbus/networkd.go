package sysbus

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
)

const (
	networkdDest  = "org.freedesktop.network1"
	networkdPath  = dbus.ObjectPath("/org/freedesktop/network1")
	networkdIface = "org.freedesktop.network1.Manager"
)

// NetworkdService talks to systemd-networkd's Manager object.
type NetworkdService struct {
	bus    Conn
	logger *logging.Logger
}

func (s *NetworkdService) object() dbus.BusObject {
	return s.bus.Object(networkdDest, networkdPath)
}

// Reload makes networkd re-read its .network/.netdev files.
func (s *NetworkdService) Reload(ctx context.Context) error {
	s.logger.Info("reloading systemd-networkd configuration")
	if err := s.object().CallWithContext(ctx, networkdIface+".Reload", 0).Err; err != nil {
		return nerrors.DBus(err, "failed to reload networkd")
	}
	s.logger.Debug("systemd-networkd reloaded")
	return nil
}

// ReconfigureLink re-applies networkd configuration to one link.
func (s *NetworkdService) ReconfigureLink(ctx context.Context, index uint32) error {
	i, err := ifindex(index)
	if err != nil {
		return err
	}
	s.logger.Info("reconfiguring link via networkd", "ifindex", index)
	if err := s.object().CallWithContext(ctx, networkdIface+".ReconfigureLink", 0, i).Err; err != nil {
		return nerrors.DBus(err, fmt.Sprintf("failed to reconfigure link %d", index))
	}
	return nil
}

// LinkPath returns networkd's object path for the link.
func (s *NetworkdService) LinkPath(ctx context.Context, index uint32) (string, error) {
	i, err := ifindex(index)
	if err != nil {
		return "", err
	}
	s.logger.Debug("getting link object path", "ifindex", index)
	var path dbus.ObjectPath
	if err := s.object().CallWithContext(ctx, networkdIface+".GetLink", 0, i).Store(&path); err != nil {
		return "", nerrors.DBus(err, fmt.Sprintf("failed to get link path for %d", index))
	}
	return string(path), nil
}
