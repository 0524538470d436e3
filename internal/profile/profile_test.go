package profile

import (
	"context"
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"grimm.is/netctl/internal/clock"
	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
	"grimm.is/netctl/internal/network"
)

const sampleHCL = `
hostname = "edge-01"

interface "eth0" {
  state     = "up"
  mtu       = 1500
  addresses = ["192.168.1.10/24", "2001:db8::1/64"]
  dns       = ["1.1.1.1"]
  domains   = ["lan"]
}

interface "eth1" {
  state = "down"
  dhcp  = "ipv4"
}
`

const sampleYAML = `
hostname: edge-01
interfaces:
  - name: eth0
    state: up
    mtu: 1500
    addresses: ["192.168.1.10/24", "2001:db8::1/64"]
    dns: ["1.1.1.1"]
    domains: ["lan"]
  - name: eth1
    state: down
    dhcp: ipv4
`

func TestLoadBytesFormatsAgree(t *testing.T) {
	fromHCL, err := LoadBytes("net.hcl", []byte(sampleHCL))
	require.NoError(t, err)
	fromYAML, err := LoadBytes("net.yml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, fromHCL, fromYAML)
	require.Len(t, fromHCL.Interfaces, 2)
	assert.Equal(t, uint32(1500), fromHCL.Interfaces[0].MTU)
	assert.Equal(t, "ipv4", fromHCL.Lookup("eth1").DHCP)
	assert.Nil(t, fromHCL.Lookup("eth9"))
}

func TestLoadBytesErrors(t *testing.T) {
	_, err := LoadBytes("net.toml", []byte(""))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = LoadBytes("net.yaml", []byte("interfaces:\n  - name: eth0\n    speed: 10\n"))
	assert.ErrorContains(t, err, "invalid YAML")

	_, err = LoadBytes("net.hcl", []byte(`interface "eth0" { colour = "red" }`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleHCL), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "edge-01", cfg.Hostname)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		iface    Interface
		errors   int
		warnings int
	}{
		{"clean", Interface{Name: "eth0", State: "up", MTU: 1500, Addresses: []string{"10.0.0.1/24"}}, 0, 0},
		{"empty name", Interface{Addresses: []string{"10.0.0.1/24"}}, 1, 0},
		{"long name", Interface{Name: "averyveryverylongname", DHCP: "yes"}, 1, 0},
		{"bad state", Interface{Name: "eth0", State: "sideways", DHCP: "yes"}, 1, 0},
		{"small mtu", Interface{Name: "eth0", MTU: 67, DHCP: "yes"}, 1, 0},
		{"huge mtu", Interface{Name: "eth0", MTU: 70000, DHCP: "yes"}, 1, 0},
		{"loopback mtu", Interface{Name: "lo", MTU: 65536, Addresses: []string{"127.0.0.1/8"}}, 0, 0},
		{"jumbo", Interface{Name: "eth0", MTU: 9000, DHCP: "yes"}, 0, 1},
		{"unusual mtu", Interface{Name: "eth0", MTU: 9216, DHCP: "yes"}, 0, 1},
		{"bad cidr", Interface{Name: "eth0", Addresses: []string{"10.0.0.1/33"}}, 1, 0},
		{"no prefix", Interface{Name: "eth0", Addresses: []string{"10.0.0.1"}}, 1, 0},
		{"duplicate addr", Interface{Name: "eth0", Addresses: []string{"10.0.0.1/24", "10.0.0.1/24"}}, 0, 1},
		{"bad mac", Interface{Name: "eth0", MACAddress: "zz:00:00:00:00:00", DHCP: "yes"}, 1, 0},
		{"bad dns", Interface{Name: "eth0", DNS: []string{"one.one.one.one"}, DHCP: "yes"}, 1, 0},
		{"bad dhcp", Interface{Name: "eth0", DHCP: "sometimes"}, 1, 1},
		{"no addresses", Interface{Name: "eth0"}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(&Config{Interfaces: []Interface{tt.iface}})
			assert.Len(t, r.Errors, tt.errors, "errors: %v", r.Errors)
			assert.Len(t, r.Warnings, tt.warnings, "warnings: %v", r.Warnings)
		})
	}
}

func TestValidateDuplicateInterface(t *testing.T) {
	r := Validate(&Config{Interfaces: []Interface{
		{Name: "eth0", DHCP: "yes"},
		{Name: "eth0", DHCP: "yes"},
	}})
	assert.Len(t, r.Errors, 1)
	assert.False(t, r.OK(false))
	assert.Error(t, r.Err())
}

func TestReportOK(t *testing.T) {
	r := &Report{Warnings: []string{"w"}}
	assert.True(t, r.OK(false))
	assert.False(t, r.OK(true))
	assert.NoError(t, r.Err())
}

type mockTarget struct {
	mock.Mock
}

func (m *mockTarget) SetLinkUp(ctx context.Context, name string) error {
	return m.Called(name).Error(0)
}

func (m *mockTarget) SetLinkDown(ctx context.Context, name string) error {
	return m.Called(name).Error(0)
}

func (m *mockTarget) SetMTU(ctx context.Context, name string, mtu uint32) error {
	return m.Called(name, mtu).Error(0)
}

func (m *mockTarget) AddAddress(ctx context.Context, name string, addr network.IPNetwork) error {
	return m.Called(name, addr).Error(0)
}

func (m *mockTarget) SetDNSServers(ctx context.Context, name string, servers []netip.Addr) error {
	return m.Called(name, servers).Error(0)
}

func (m *mockTarget) SetDNSDomains(ctx context.Context, name string, domains []string) error {
	return m.Called(name, domains).Error(0)
}

func (m *mockTarget) SetHostname(ctx context.Context, hostname string) error {
	return m.Called(hostname).Error(0)
}

func TestApply(t *testing.T) {
	cfg, err := LoadBytes("net.hcl", []byte(sampleHCL))
	require.NoError(t, err)

	target := new(mockTarget)
	target.On("SetHostname", "edge-01").Return(nil).Once()
	target.On("SetLinkUp", "eth0").Return(nil).Once()
	target.On("SetMTU", "eth0", uint32(1500)).Return(nil).Once()
	target.On("AddAddress", "eth0", network.MustParseIPNetwork("192.168.1.10/24")).Return(nil).Once()
	target.On("AddAddress", "eth0", network.MustParseIPNetwork("2001:db8::1/64")).Return(nerrors.Netlink(unix.EEXIST)).Once()
	target.On("SetDNSServers", "eth0", []netip.Addr{netip.MustParseAddr("1.1.1.1")}).Return(nil).Once()
	target.On("SetDNSDomains", "eth0", []string{"lan"}).Return(nil).Once()
	target.On("SetLinkDown", "eth1").Return(nil).Once()

	changes, err := Apply(context.Background(), target, cfg, logging.Discard())
	require.NoError(t, err)
	target.AssertExpectations(t)

	var lines []string
	for _, c := range changes {
		lines = append(lines, c.String())
	}
	assert.Equal(t, []string{
		"hostname edge-01",
		"eth0: state up",
		"eth0: mtu 1500",
		"eth0: address 192.168.1.10/24",
		"eth0: address 2001:db8::1/64 already present",
		"eth0: dns [1.1.1.1]",
		"eth0: domains [lan]",
		"eth1: state down",
	}, lines)
}

func TestApplyRejectsInvalidBeforeTouchingTarget(t *testing.T) {
	target := new(mockTarget)
	cfg := &Config{Interfaces: []Interface{{Name: "eth0", Addresses: []string{"10.0.0.1/99"}}}}

	_, err := Apply(context.Background(), target, cfg, logging.Discard())
	require.Error(t, err)
	target.AssertNotCalled(t, "SetLinkUp", mock.Anything)
	assert.Empty(t, target.Calls)
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	target := new(mockTarget)
	target.On("SetLinkUp", "eth0").Return(nerrors.InterfaceNotFound("eth0")).Once()
	cfg := &Config{Interfaces: []Interface{
		{Name: "eth0", State: "up", MTU: 1400, DHCP: "yes"},
		{Name: "eth1", State: "up", DHCP: "yes"},
	}}

	changes, err := Apply(context.Background(), target, cfg, logging.Discard())
	require.Error(t, err)
	assert.True(t, nerrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "eth0")
	assert.Empty(t, changes)
	target.AssertExpectations(t)
}

type fakeSource struct {
	links []network.LinkInfo
	addrs map[string][]network.IPNetwork
}

func (f *fakeSource) ListLinks(ctx context.Context) ([]network.LinkInfo, error) {
	return f.links, nil
}

func (f *fakeSource) ListAddresses(ctx context.Context, name string) ([]network.IPNetwork, error) {
	a, ok := f.addrs[name]
	if !ok {
		return nil, nerrors.InterfaceNotFound(name)
	}
	return a, nil
}

func TestCapture(t *testing.T) {
	mac := network.MACAddress{0x52, 0x54, 0, 0x12, 0x34, 0x56}
	src := &fakeSource{
		links: []network.LinkInfo{
			{Index: 1, Name: "lo", State: network.LinkUp, MTU: 65536},
			{Index: 2, Name: "eth0", State: network.LinkUp, MTU: 1500, MAC: &mac},
			{Index: 3, Name: "gone0", State: network.LinkDown, MTU: 1500},
		},
		addrs: map[string][]network.IPNetwork{
			"lo":   {network.MustParseIPNetwork("127.0.0.1/8")},
			"eth0": {network.MustParseIPNetwork("10.0.0.2/24")},
		},
	}

	cfg, err := Capture(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, cfg.Interfaces, 2)
	assert.Equal(t, Interface{
		Name:       "eth0",
		State:      "up",
		MTU:        1500,
		MACAddress: "52:54:00:12:34:56",
		Addresses:  []string{"10.0.0.2/24"},
	}, cfg.Interfaces[1])
	assert.True(t, Validate(cfg).OK(false))
}

func TestStore(t *testing.T) {
	mc := clock.NewMockClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	s := &Store{Dir: filepath.Join(t.TempDir(), "profiles"), Clock: mc}
	cfg := &Config{Interfaces: []Interface{{Name: "eth0", State: "up", MTU: 1500}}}

	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	path, err := s.Save("office", "desk setup", cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir, "office.yaml"), path)
	_, err = s.Save("home", "", cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "broken.yaml"), []byte("interfaces: {"), 0644))

	p, err := s.Load("office")
	require.NoError(t, err)
	assert.Equal(t, "desk setup", p.Description)
	assert.Equal(t, "2026-01-02T03:04:05Z", p.CreatedAt)
	assert.Equal(t, cfg, p.Config())

	list, err = s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "home", list[0].Name)
	assert.Equal(t, "office", list[1].Name)

	require.NoError(t, s.Delete("home"))
	assert.ErrorContains(t, s.Delete("home"), "not found")
	_, err = s.Load("home")
	assert.ErrorContains(t, err, "not found")
}

func TestStoreRejectsBadNames(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	for _, name := range []string{"", "current", "../etc", ".hidden", `a\b`} {
		_, err := s.Save(name, "", &Config{})
		assert.Error(t, err, name)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg, err := LoadBytes("net.yaml", []byte(sampleYAML))
	require.NoError(t, err)

	for _, format := range []string{FormatYAML, FormatHCL} {
		t.Run(format, func(t *testing.T) {
			out, err := Encode(cfg, format)
			require.NoError(t, err)
			back, err := LoadBytes("out."+format, out)
			require.NoError(t, err, string(out))
			assert.Equal(t, cfg, back)
		})
	}

	out, err := Encode(cfg, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name": "eth0"`)

	_, err = Encode(cfg, "toml")
	assert.Error(t, err)
}

func TestEncodeHCLLayout(t *testing.T) {
	out := string(EncodeHCL(&Config{Interfaces: []Interface{{Name: "eth0", State: "up", MTU: 1500}}}))
	assert.Contains(t, out, `interface "eth0" {`)
	assert.Contains(t, out, `state = "up"`)
	assert.Contains(t, out, "mtu   = 1500")
}

func TestDiff(t *testing.T) {
	a := &Config{Interfaces: []Interface{{Name: "eth0", State: "up", MTU: 1500}}}
	b := &Config{Interfaces: []Interface{{Name: "eth0", State: "up", MTU: 9000}}}

	same, err := Diff("a", a, "a", a)
	require.NoError(t, err)
	assert.Empty(t, same)

	text, err := Diff("current", a, "jumbo", b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "--- current\n+++ jumbo\n"), text)
	assert.Contains(t, text, "-  mtu: 1500")
	assert.Contains(t, text, "+  mtu: 9000")
}

func TestChangeString(t *testing.T) {
	assert.Equal(t, "hostname x", Change{Action: "hostname x"}.String())
	assert.Equal(t, "eth0: mtu 1", Change{Interface: "eth0", Action: "mtu 1"}.String())
	assert.False(t, errors.Is(nil, unix.EEXIST))
}
