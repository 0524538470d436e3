package profile

import (
	"fmt"
	"net/netip"
	"strings"

	"grimm.is/netctl/internal/network"
)

// Interface names are limited by IFNAMSIZ (16 including the NUL).
const maxIfaceNameLen = 15

// MTU bounds accepted by Validate.
const (
	MinMTU      = 68
	MaxMTU      = 65535
	JumboMTU    = 9000
	LoopbackMTU = 65536
)

// Report collects validation findings.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether there are no errors. With strict, warnings count too.
func (r *Report) OK(strict bool) bool {
	if len(r.Errors) > 0 {
		return false
	}
	return !strict || len(r.Warnings) == 0
}

// Err returns the errors as one error, or nil.
func (r *Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed: %s", strings.Join(r.Errors, "; "))
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks a config without touching the system.
func Validate(cfg *Config) *Report {
	r := &Report{}
	if len(cfg.Interfaces) == 0 {
		r.warnf("no interfaces configured")
	}
	seen := make(map[string]bool)
	for _, iface := range cfg.Interfaces {
		if seen[iface.Name] {
			r.errorf("interface '%s' is listed more than once", iface.Name)
		}
		seen[iface.Name] = true
		validateInterface(r, &iface)
	}
	return r
}

func validateInterface(r *Report, iface *Interface) {
	name := iface.Name
	if name == "" {
		r.errorf("interface name cannot be empty")
	} else if len(name) > maxIfaceNameLen {
		r.errorf("interface name '%s' is too long (max %d characters)", name, maxIfaceNameLen)
	}

	if iface.State != "" {
		if _, err := network.ParseLinkState(iface.State); err != nil {
			r.errorf("invalid state '%s' for interface '%s' (must be 'up' or 'down')", iface.State, name)
		}
	}

	switch mtu := iface.MTU; {
	case mtu == 0:
	case mtu < MinMTU:
		r.errorf("MTU %d for interface '%s' is too small (minimum %d)", mtu, name, MinMTU)
	case mtu > MaxMTU && mtu != LoopbackMTU:
		r.errorf("MTU %d for interface '%s' is too large (maximum %d)", mtu, name, MaxMTU)
	case mtu == JumboMTU:
		r.warnf("jumbo frames (MTU %d) on interface '%s' require network infrastructure support", mtu, name)
	case mtu > JumboMTU && mtu < MaxMTU:
		r.warnf("MTU %d for interface '%s' is unusually large (standard max is %d)", mtu, name, JumboMTU)
	}

	if iface.MACAddress != "" {
		if _, err := network.ParseMACAddress(iface.MACAddress); err != nil {
			r.errorf("invalid MAC address '%s' for interface '%s'", iface.MACAddress, name)
		}
	}

	dhcp, err := network.ParseDHCPMode(iface.DHCP)
	if err != nil {
		r.errorf("invalid dhcp mode '%s' for interface '%s'", iface.DHCP, name)
	}
	if len(iface.Addresses) == 0 && dhcp == network.DHCPNo {
		r.warnf("interface '%s' has no addresses configured", name)
	}

	addrs := make(map[string]bool)
	for _, addr := range iface.Addresses {
		if _, err := network.ParseIPNetwork(addr); err != nil {
			r.errorf("invalid address '%s' for interface '%s': must be IP/PREFIX", addr, name)
		}
		if addrs[addr] {
			r.warnf("duplicate address '%s' on interface '%s'", addr, name)
		}
		addrs[addr] = true
	}

	for _, server := range iface.DNS {
		if _, err := netip.ParseAddr(server); err != nil {
			r.errorf("invalid DNS server '%s' for interface '%s'", server, name)
		}
	}
}
