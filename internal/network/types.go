package network

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"

	nerrors "grimm.is/netctl/internal/errors"
)

// LinkState is the administrative up-ness of a link, derived from IFF_UP.
type LinkState uint8

const (
	LinkDown LinkState = iota
	LinkUp
)

func (s LinkState) String() string {
	if s == LinkUp {
		return "UP"
	}
	return "DOWN"
}

// MarshalText renders the state as "up" or "down".
func (s LinkState) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// UnmarshalText accepts "up" or "down" in any case.
func (s *LinkState) UnmarshalText(b []byte) error {
	st, err := ParseLinkState(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseLinkState parses "up" or "down".
func ParseLinkState(s string) (LinkState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return LinkUp, nil
	case "down":
		return LinkDown, nil
	}
	return LinkDown, fmt.Errorf("invalid state '%s': use 'up' or 'down'", s)
}

// DHCPMode is declarative DHCP policy. It is carried by apply files but not
// enforced by the netlink layer.
type DHCPMode uint8

const (
	DHCPNo DHCPMode = iota
	DHCPYes
	DHCPIPv4
	DHCPIPv6
)

var dhcpModeNames = [...]string{"no", "yes", "ipv4", "ipv6"}

func (m DHCPMode) String() string {
	if int(m) < len(dhcpModeNames) {
		return dhcpModeNames[m]
	}
	return "no"
}

// MarshalText implements encoding.TextMarshaler.
func (m DHCPMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DHCPMode) UnmarshalText(b []byte) error {
	mode, err := ParseDHCPMode(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseDHCPMode parses a DHCP mode name. The empty string is DHCPNo.
func ParseDHCPMode(s string) (DHCPMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "false":
		return DHCPNo, nil
	case "yes", "true", "both":
		return DHCPYes, nil
	case "ipv4":
		return DHCPIPv4, nil
	case "ipv6":
		return DHCPIPv6, nil
	}
	return DHCPNo, fmt.Errorf("invalid dhcp mode '%s'", s)
}

// IPNetwork is an interface address with its prefix length, e.g. 192.168.1.10/24.
// The host bits are kept; it is not masked down to the network address.
type IPNetwork struct {
	Addr      netip.Addr
	PrefixLen uint8
}

// NewIPNetwork validates the prefix length against the address family.
func NewIPNetwork(addr netip.Addr, prefixLen uint8) (IPNetwork, error) {
	if !addr.IsValid() || int(prefixLen) > addr.BitLen() {
		return IPNetwork{}, nerrors.InvalidCIDR(fmt.Sprintf("%s/%d", addr, prefixLen))
	}
	return IPNetwork{Addr: addr, PrefixLen: prefixLen}, nil
}

// ParseIPNetwork parses "addr/prefix". The prefix is mandatory and written
// in canonical decimal, so "/024" is rejected.
func ParseIPNetwork(s string) (IPNetwork, error) {
	addrStr, prefixStr, ok := strings.Cut(s, "/")
	if !ok || (len(prefixStr) > 1 && prefixStr[0] == '0') {
		return IPNetwork{}, nerrors.InvalidCIDR(s)
	}
	addr, err := netip.ParseAddr(addrStr)
	if err != nil {
		return IPNetwork{}, nerrors.InvalidCIDR(s)
	}
	prefix, err := strconv.ParseUint(prefixStr, 10, 8)
	if err != nil || int(prefix) > addr.BitLen() {
		return IPNetwork{}, nerrors.InvalidCIDR(s)
	}
	return IPNetwork{Addr: addr, PrefixLen: uint8(prefix)}, nil
}

// MustParseIPNetwork is ParseIPNetwork for constants; it panics on error.
func MustParseIPNetwork(s string) IPNetwork {
	n, err := ParseIPNetwork(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n IPNetwork) String() string {
	return fmt.Sprintf("%s/%d", n.Addr, n.PrefixLen)
}

// Is4 reports whether the network is IPv4.
func (n IPNetwork) Is4() bool {
	return n.Addr.Is4()
}

// Prefix returns the masked netip.Prefix.
func (n IPNetwork) Prefix() netip.Prefix {
	return netip.PrefixFrom(n.Addr, int(n.PrefixLen)).Masked()
}

// IPNet converts to the net.IPNet form used by netlink, keeping host bits.
func (n IPNetwork) IPNet() *net.IPNet {
	return &net.IPNet{
		IP:   net.IP(n.Addr.AsSlice()),
		Mask: net.CIDRMask(int(n.PrefixLen), n.Addr.BitLen()),
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n IPNetwork) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *IPNetwork) UnmarshalText(b []byte) error {
	parsed, err := ParseIPNetwork(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// ipNetworkFromIPNet converts a kernel-reported address. ok is false for
// anything that does not form a valid address.
func ipNetworkFromIPNet(ipn *net.IPNet) (IPNetwork, bool) {
	if ipn == nil {
		return IPNetwork{}, false
	}
	addr, ok := netip.AddrFromSlice(ipn.IP)
	if !ok {
		return IPNetwork{}, false
	}
	addr = addr.Unmap()
	ones, _ := ipn.Mask.Size()
	if ones > addr.BitLen() {
		return IPNetwork{}, false
	}
	return IPNetwork{Addr: addr, PrefixLen: uint8(ones)}, true
}

// MACAddress is a 6-byte hardware address.
type MACAddress [6]byte

// ParseMACAddress parses exactly six colon-separated hex groups.
func ParseMACAddress(s string) (MACAddress, error) {
	var mac MACAddress
	parts := strings.Split(s, ":")
	if len(parts) != len(mac) {
		return MACAddress{}, nerrors.InvalidMAC(s)
	}
	for i, part := range parts {
		if len(part) == 0 || len(part) > 2 {
			return MACAddress{}, nerrors.InvalidMAC(s)
		}
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return MACAddress{}, nerrors.InvalidMAC(s)
		}
		mac[i] = byte(v)
	}
	return mac, nil
}

func (m MACAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// HardwareAddr returns the net.HardwareAddr form.
func (m MACAddress) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(m[:])
}

// MarshalText implements encoding.TextMarshaler.
func (m MACAddress) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MACAddress) UnmarshalText(b []byte) error {
	parsed, err := ParseMACAddress(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// LinkInfo is a snapshot of one interface. Index and Name are only
// authoritative at capture time.
type LinkInfo struct {
	Index     uint32      `json:"index"`
	Name      string      `json:"name"`
	State     LinkState   `json:"state"`
	MTU       uint32      `json:"mtu"`
	MAC       *MACAddress `json:"mac_address,omitempty"`
	Addresses []IPNetwork `json:"addresses"`
}

// IsUp reports whether the link was administratively up.
func (l LinkInfo) IsUp() bool {
	return l.State == LinkUp
}

// Route is a routing entry. A nil Destination is the default route.
type Route struct {
	Destination *IPNetwork  `json:"destination,omitempty"`
	Gateway     *netip.Addr `json:"gateway,omitempty"`
}

// IsDefault reports whether the route has no destination.
func (r Route) IsDefault() bool {
	return r.Destination == nil
}

func (r Route) String() string {
	dst := "default"
	if r.Destination != nil {
		dst = r.Destination.String()
	}
	if r.Gateway != nil {
		return dst + " via " + r.Gateway.String()
	}
	return dst
}

// LinkStats are the kernel interface counters for one link.
type LinkStats struct {
	Name      string `json:"name"`
	RxBytes   uint64 `json:"rx_bytes"`
	TxBytes   uint64 `json:"tx_bytes"`
	RxPackets uint64 `json:"rx_packets"`
	TxPackets uint64 `json:"tx_packets"`
	RxErrors  uint64 `json:"rx_errors"`
	TxErrors  uint64 `json:"tx_errors"`
	RxDropped uint64 `json:"rx_dropped"`
	TxDropped uint64 `json:"tx_dropped"`
}
