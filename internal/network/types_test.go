package network

import (
	"encoding/json"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nerrors "grimm.is/netctl/internal/errors"
)

func TestParseIPNetwork(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"192.168.1.10/24", false},
		{"10.0.0.1/32", false},
		{"0.0.0.0/0", false},
		{"2001:db8::1/64", false},
		{"fe80::1/128", false},
		{"192.168.1.10", true},
		{"192.168.1.10/33", true},
		{"2001:db8::1/129", true},
		{"192.168.1.10/", true},
		{"/24", true},
		{"192.168.1.10/-1", true},
		{"not-an-ip/24", true},
		{"192.168.1.10/24/8", true},
		{"10.0.0.1/024", true},
		{"10.0.0.1/00", true},
		{"2001:db8::1/+64", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := ParseIPNetwork(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, nerrors.KindInvalidCIDR, nerrors.GetKind(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, n.String())
		})
	}
}

func TestIPNetworkKeepsHostBits(t *testing.T) {
	n := MustParseIPNetwork("192.168.1.10/24")
	assert.Equal(t, netip.MustParseAddr("192.168.1.10"), n.Addr)
	assert.Equal(t, uint8(24), n.PrefixLen)
	assert.Equal(t, "192.168.1.0/24", n.Prefix().String())

	ipn := n.IPNet()
	assert.Equal(t, "192.168.1.10/24", ipn.String())

	back, ok := ipNetworkFromIPNet(ipn)
	require.True(t, ok)
	assert.Equal(t, n, back)
}

func TestNewIPNetwork(t *testing.T) {
	_, err := NewIPNetwork(netip.MustParseAddr("10.0.0.1"), 33)
	assert.Equal(t, nerrors.KindInvalidCIDR, nerrors.GetKind(err))

	n, err := NewIPNetwork(netip.MustParseAddr("2001:db8::1"), 128)
	require.NoError(t, err)
	assert.False(t, n.Is4())
}

func TestParseMACAddress(t *testing.T) {
	mac, err := ParseMACAddress("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, MACAddress{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, mac)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", mac.String())

	upper, err := ParseMACAddress("AA:BB:CC:DD:EE:0F")
	require.NoError(t, err)
	assert.Equal(t, "aa:bb:cc:dd:ee:0f", upper.String())

	for _, bad := range []string{
		"aa:bb:cc:dd:ee",
		"aa:bb:cc:dd:ee:ff:00",
		"aa:bb:cc:dd:ee:gg",
		"aa:bb:cc:dd:ee:",
		"aaa:bb:cc:dd:ee:ff",
		"aa-bb-cc-dd-ee-ff",
		"",
	} {
		_, err := ParseMACAddress(bad)
		require.Error(t, err, bad)
		assert.Equal(t, nerrors.KindInvalidMAC, nerrors.GetKind(err), bad)
	}
}

func TestDHCPMode(t *testing.T) {
	var zero DHCPMode
	assert.Equal(t, DHCPNo, zero)
	assert.Equal(t, "no", zero.String())

	for _, m := range []DHCPMode{DHCPNo, DHCPYes, DHCPIPv4, DHCPIPv6} {
		parsed, err := ParseDHCPMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseDHCPMode("sometimes")
	assert.Error(t, err)
}

func TestLinkState(t *testing.T) {
	assert.Equal(t, "UP", LinkUp.String())
	assert.Equal(t, "DOWN", LinkDown.String())

	st, err := ParseLinkState("Up")
	require.NoError(t, err)
	assert.Equal(t, LinkUp, st)

	_, err = ParseLinkState("sideways")
	assert.Error(t, err)
}

func TestLinkInfoJSON(t *testing.T) {
	mac := MACAddress{0x02, 0, 0, 0, 0, 1}
	info := LinkInfo{
		Index:     2,
		Name:      "eth0",
		State:     LinkUp,
		MTU:       1500,
		MAC:       &mac,
		Addresses: []IPNetwork{MustParseIPNetwork("10.0.0.2/24")},
	}
	b, err := json.Marshal(info)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"index": 2,
		"name": "eth0",
		"state": "up",
		"mtu": 1500,
		"mac_address": "02:00:00:00:00:01",
		"addresses": ["10.0.0.2/24"]
	}`, string(b))
}

func TestRouteString(t *testing.T) {
	gw := netip.MustParseAddr("10.0.0.1")
	assert.Equal(t, "default via 10.0.0.1", Route{Gateway: &gw}.String())

	dst := MustParseIPNetwork("192.168.0.0/16")
	r := Route{Destination: &dst}
	assert.False(t, r.IsDefault())
	assert.Equal(t, "192.168.0.0/16", r.String())
}
