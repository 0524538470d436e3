package sysbus

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"grimm.is/netctl/internal/logging"
)

// DryRunConn records method calls instead of sending them. Reads
// (property gets and path lookups) go to Reader when one is set.
type DryRunConn struct {
	Reader Conn

	mu    sync.Mutex
	calls []string
}

// NewDryRunConn wraps reader, which may be nil.
func NewDryRunConn(reader Conn) *DryRunConn {
	return &DryRunConn{Reader: reader}
}

// ConnectDryRun opens the system bus for reads and records every call on
// the returned DryRunConn. An unreachable bus is not an error here; reads
// then fail while recording keeps working.
func ConnectDryRun(logger *logging.Logger) (*Client, *DryRunConn) {
	dry := NewDryRunConn(nil)
	if conn, err := dbus.ConnectSystemBus(); err == nil {
		dry.Reader = conn
	}
	return NewClient(dry, logger), dry
}

// Close closes the reader connection, if it has one.
func (c *DryRunConn) Close() error {
	if closer, ok := c.Reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Calls returns the recorded calls in order.
func (c *DryRunConn) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *DryRunConn) record(dest string, method string, args []interface{}) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprintf("%v", a))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fmt.Sprintf("%s %s(%s)", dest, method, strings.Join(parts, ", ")))
}

// Object implements Conn.
func (c *DryRunConn) Object(dest string, path dbus.ObjectPath) dbus.BusObject {
	return &dryRunObject{conn: c, dest: dest, path: path}
}

// readMethods never mutate daemon state.
var readMethods = map[string]bool{
	propertiesIface + ".Get":    true,
	propertiesIface + ".GetAll": true,
	networkdIface + ".GetLink":  true,
	systemdIface + ".GetUnit":   true,
}

type dryRunObject struct {
	conn *DryRunConn
	dest string
	path dbus.ObjectPath
}

func (o *dryRunObject) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	return o.CallWithContext(context.Background(), method, flags, args...)
}

func (o *dryRunObject) CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	if readMethods[method] {
		if o.conn.Reader == nil {
			return &dbus.Call{Method: method, Args: args, Err: fmt.Errorf("dry run: no bus to read %s", method)}
		}
		return o.conn.Reader.Object(o.dest, o.path).CallWithContext(ctx, method, flags, args...)
	}
	o.conn.record(o.dest, method, args)
	return &dbus.Call{Destination: o.dest, Path: o.path, Method: method, Args: args}
}

func (o *dryRunObject) Go(method string, flags dbus.Flags, ch chan *dbus.Call, args ...interface{}) *dbus.Call {
	return o.GoWithContext(context.Background(), method, flags, ch, args...)
}

func (o *dryRunObject) GoWithContext(ctx context.Context, method string, flags dbus.Flags, ch chan *dbus.Call, args ...interface{}) *dbus.Call {
	call := o.CallWithContext(ctx, method, flags, args...)
	call.Done = ch
	if ch != nil {
		ch <- call
	}
	return call
}

func (o *dryRunObject) AddMatchSignal(iface, member string, options ...dbus.MatchOption) *dbus.Call {
	return &dbus.Call{}
}

func (o *dryRunObject) RemoveMatchSignal(iface, member string, options ...dbus.MatchOption) *dbus.Call {
	return &dbus.Call{}
}

func (o *dryRunObject) GetProperty(p string) (dbus.Variant, error) {
	if o.conn.Reader == nil {
		return dbus.Variant{}, fmt.Errorf("dry run: no bus to read %s", p)
	}
	return o.conn.Reader.Object(o.dest, o.path).GetProperty(p)
}

func (o *dryRunObject) StoreProperty(p string, value interface{}) error {
	v, err := o.GetProperty(p)
	if err != nil {
		return err
	}
	return dbus.Store([]interface{}{v}, value)
}

func (o *dryRunObject) SetProperty(p string, v interface{}) error {
	o.conn.record(o.dest, propertiesIface+".Set", []interface{}{p, v})
	return nil
}

func (o *dryRunObject) Destination() string { return o.dest }

func (o *dryRunObject) Path() dbus.ObjectPath { return o.path }
