package sysbus

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/mock"
)

// MockConn is a mock implementation of Conn.
type MockConn struct {
	mock.Mock
}

func (m *MockConn) Object(dest string, path dbus.ObjectPath) dbus.BusObject {
	args := m.Called(dest, path)
	return args.Get(0).(dbus.BusObject)
}

// MockBusObject is a mock dbus.BusObject. Expectations on CallWithContext
// take (ctx, method, flags, args...).
type MockBusObject struct {
	mock.Mock
}

func (m *MockBusObject) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	return m.CallWithContext(context.Background(), method, flags, args...)
}

func (m *MockBusObject) CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	callArgs := append([]interface{}{ctx, method, flags}, args...)
	ret := m.Called(callArgs...)
	return ret.Get(0).(*dbus.Call)
}

func (m *MockBusObject) Go(method string, flags dbus.Flags, ch chan *dbus.Call, args ...interface{}) *dbus.Call {
	return m.GoWithContext(context.Background(), method, flags, ch, args...)
}

func (m *MockBusObject) GoWithContext(ctx context.Context, method string, flags dbus.Flags, ch chan *dbus.Call, args ...interface{}) *dbus.Call {
	call := m.CallWithContext(ctx, method, flags, args...)
	if ch != nil {
		ch <- call
	}
	return call
}

func (m *MockBusObject) AddMatchSignal(iface, member string, options ...dbus.MatchOption) *dbus.Call {
	ret := m.Called(iface, member)
	return ret.Get(0).(*dbus.Call)
}

func (m *MockBusObject) RemoveMatchSignal(iface, member string, options ...dbus.MatchOption) *dbus.Call {
	ret := m.Called(iface, member)
	return ret.Get(0).(*dbus.Call)
}

func (m *MockBusObject) GetProperty(p string) (dbus.Variant, error) {
	ret := m.Called(p)
	return ret.Get(0).(dbus.Variant), ret.Error(1)
}

func (m *MockBusObject) StoreProperty(p string, value interface{}) error {
	ret := m.Called(p, value)
	return ret.Error(0)
}

func (m *MockBusObject) SetProperty(p string, v interface{}) error {
	ret := m.Called(p, v)
	return ret.Error(0)
}

func (m *MockBusObject) Destination() string {
	return m.Called().String(0)
}

func (m *MockBusObject) Path() dbus.ObjectPath {
	return m.Called().Get(0).(dbus.ObjectPath)
}
