package control

import (
	"context"
	"net/netip"

	"github.com/stretchr/testify/mock"

	"grimm.is/netctl/internal/network"
)

// MockLinks is a mock implementation of Links.
type MockLinks struct {
	mock.Mock
}

func (m *MockLinks) ResolveIndex(name string) (uint32, error) {
	args := m.Called(name)
	return args.Get(0).(uint32), args.Error(1)
}

func (m *MockLinks) ListLinks() ([]network.LinkInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]network.LinkInfo), args.Error(1)
}

func (m *MockLinks) GetLinkInfo(name string) (network.LinkInfo, error) {
	args := m.Called(name)
	return args.Get(0).(network.LinkInfo), args.Error(1)
}

func (m *MockLinks) SetLinkUp(index uint32) error {
	return m.Called(index).Error(0)
}

func (m *MockLinks) SetLinkDown(index uint32) error {
	return m.Called(index).Error(0)
}

func (m *MockLinks) SetLinkMTU(index uint32, mtu uint32) error {
	return m.Called(index, mtu).Error(0)
}

func (m *MockLinks) AddAddress(index uint32, addr network.IPNetwork) error {
	return m.Called(index, addr).Error(0)
}

func (m *MockLinks) ListAddresses(index uint32) ([]network.IPNetwork, error) {
	args := m.Called(index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]network.IPNetwork), args.Error(1)
}

func (m *MockLinks) ListRoutes(index uint32) ([]network.Route, error) {
	args := m.Called(index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]network.Route), args.Error(1)
}

func (m *MockLinks) LinkStats(name string) (network.LinkStats, error) {
	args := m.Called(name)
	return args.Get(0).(network.LinkStats), args.Error(1)
}

// MockNetworkd is a mock implementation of Networkd.
type MockNetworkd struct {
	mock.Mock
}

func (m *MockNetworkd) Reload(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockNetworkd) ReconfigureLink(ctx context.Context, index uint32) error {
	return m.Called(ctx, index).Error(0)
}

func (m *MockNetworkd) LinkPath(ctx context.Context, index uint32) (string, error) {
	args := m.Called(ctx, index)
	return args.String(0), args.Error(1)
}

// MockResolver is a mock implementation of Resolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) SetLinkDNS(ctx context.Context, index uint32, servers []netip.Addr) error {
	return m.Called(ctx, index, servers).Error(0)
}

func (m *MockResolver) SetLinkDomains(ctx context.Context, index uint32, domains []string) error {
	return m.Called(ctx, index, domains).Error(0)
}

func (m *MockResolver) RevertLink(ctx context.Context, index uint32) error {
	return m.Called(ctx, index).Error(0)
}

func (m *MockResolver) FlushCaches(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockHostnamer is a mock implementation of Hostnamer.
type MockHostnamer struct {
	mock.Mock
}

func (m *MockHostnamer) SetStaticHostname(ctx context.Context, hostname string) error {
	return m.Called(ctx, hostname).Error(0)
}

func (m *MockHostnamer) SetPrettyHostname(ctx context.Context, hostname string) error {
	return m.Called(ctx, hostname).Error(0)
}

func (m *MockHostnamer) StaticHostname(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockHostnamer) PrettyHostname(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockHostnamer) Hostname(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockHostnamer) MachineID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockUnits is a mock implementation of UnitStater.
type MockUnits struct {
	mock.Mock
}

func (m *MockUnits) UnitActiveState(ctx context.Context, unit string) (string, error) {
	args := m.Called(ctx, unit)
	return args.String(0), args.Error(1)
}
