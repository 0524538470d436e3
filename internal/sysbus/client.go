// Package sysbus holds thin clients for the systemd daemons netctl drives
// over the system D-Bus: networkd, resolved, hostnamed and the service
// manager itself.
//
// A Client owns one private bus connection. Services share it, build their
// object proxy on every call and never close it.
package sysbus

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/godbus/dbus/v5"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
)

const propertiesIface = "org.freedesktop.DBus.Properties"

// Conn is the part of *dbus.Conn the services need.
type Conn interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
}

// Client owns the system bus connection.
type Client struct {
	bus    Conn
	logger *logging.Logger
}

// Connect opens a private connection to the system bus.
func Connect(logger *logging.Logger) (*Client, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, nerrors.DBus(err, "failed to connect to system bus")
	}
	return NewClient(conn, logger), nil
}

// NewClient wraps an existing connection. If conn is an io.Closer, Close
// closes it.
func NewClient(conn Conn, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{bus: conn, logger: logger.WithComponent("sysbus")}
}

// Networkd returns a networkd client on the shared connection.
func (c *Client) Networkd() *NetworkdService {
	return &NetworkdService{bus: c.bus, logger: c.logger}
}

// Resolved returns a resolved client on the shared connection.
func (c *Client) Resolved() *ResolvedService {
	return &ResolvedService{bus: c.bus, logger: c.logger}
}

// Hostnamed returns a hostnamed client on the shared connection.
func (c *Client) Hostnamed() *HostnamedService {
	return &HostnamedService{bus: c.bus, logger: c.logger}
}

// Systemd returns a service-manager client on the shared connection.
func (c *Client) Systemd() *SystemdService {
	return &SystemdService{bus: c.bus, logger: c.logger}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if closer, ok := c.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// ifindex converts a kernel index to the i32 the daemons take.
func ifindex(index uint32) (int32, error) {
	if index == 0 || index > math.MaxInt32 {
		return 0, nerrors.Generic(fmt.Sprintf("interface index %d out of range", index))
	}
	return int32(index), nil
}

// getProperty reads one property through org.freedesktop.DBus.Properties.Get
// so the read honours ctx.
func getProperty(ctx context.Context, obj dbus.BusObject, iface, name string) (dbus.Variant, error) {
	var v dbus.Variant
	if err := obj.CallWithContext(ctx, propertiesIface+".Get", 0, iface, name).Store(&v); err != nil {
		return dbus.Variant{}, err
	}
	return v, nil
}

// getStringProperty reads a string-typed property.
func getStringProperty(ctx context.Context, obj dbus.BusObject, iface, name string) (string, error) {
	v, err := getProperty(ctx, obj, iface, name)
	if err != nil {
		return "", err
	}
	s, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("property %s has signature %s, want s", name, v.Signature())
	}
	return s, nil
}
