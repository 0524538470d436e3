package sysbus

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/godbus/dbus/v5"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
)

const (
	hostnamedDest  = "org.freedesktop.hostname1"
	hostnamedPath  = dbus.ObjectPath("/org/freedesktop/hostname1")
	hostnamedIface = "org.freedesktop.hostname1"
)

// HostnamedService talks to systemd-hostnamed.
type HostnamedService struct {
	bus    Conn
	logger *logging.Logger
}

func (s *HostnamedService) object() dbus.BusObject {
	return s.bus.Object(hostnamedDest, hostnamedPath)
}

// SetStaticHostname sets the configured hostname without polkit prompting.
func (s *HostnamedService) SetStaticHostname(ctx context.Context, hostname string) error {
	s.logger.Info("setting static hostname", "hostname", hostname)
	if err := s.object().CallWithContext(ctx, hostnamedIface+".SetStaticHostname", 0, hostname, false).Err; err != nil {
		return nerrors.DBus(err, "failed to set static hostname")
	}
	return nil
}

// SetPrettyHostname sets the free-form hostname.
func (s *HostnamedService) SetPrettyHostname(ctx context.Context, hostname string) error {
	s.logger.Info("setting pretty hostname", "hostname", hostname)
	if err := s.object().CallWithContext(ctx, hostnamedIface+".SetPrettyHostname", 0, hostname, false).Err; err != nil {
		return nerrors.DBus(err, "failed to set pretty hostname")
	}
	return nil
}

func (s *HostnamedService) StaticHostname(ctx context.Context) (string, error) {
	return s.stringProperty(ctx, "StaticHostname", "static hostname")
}

func (s *HostnamedService) PrettyHostname(ctx context.Context) (string, error) {
	return s.stringProperty(ctx, "PrettyHostname", "pretty hostname")
}

// Hostname returns the transient (kernel) hostname.
func (s *HostnamedService) Hostname(ctx context.Context) (string, error) {
	return s.stringProperty(ctx, "Hostname", "hostname")
}

// MachineID returns the machine ID as 32 lowercase hex characters.
// hostnamed publishes it as a byte array.
func (s *HostnamedService) MachineID(ctx context.Context) (string, error) {
	s.logger.Debug("getting machine ID")
	v, err := getProperty(ctx, s.object(), hostnamedIface, "MachineID")
	if err != nil {
		return "", nerrors.DBus(err, "failed to get machine ID")
	}
	switch id := v.Value().(type) {
	case []byte:
		return hex.EncodeToString(id), nil
	case string:
		return id, nil
	}
	return "", nerrors.DBus(fmt.Errorf("unexpected signature %s", v.Signature()), "failed to get machine ID")
}

func (s *HostnamedService) stringProperty(ctx context.Context, name, what string) (string, error) {
	s.logger.Debug("getting " + what)
	val, err := getStringProperty(ctx, s.object(), hostnamedIface, name)
	if err != nil {
		return "", nerrors.DBus(err, "failed to get "+what)
	}
	return val, nil
}
