package sysbus

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/godbus/dbus/v5"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
)

const (
	resolvedDest  = "org.freedesktop.resolve1"
	resolvedPath  = dbus.ObjectPath("/org/freedesktop/resolve1")
	resolvedIface = "org.freedesktop.resolve1.Manager"
)

// Address families as resolved expects them (Linux values).
const (
	afInet  int32 = 2
	afInet6 int32 = 10
)

// LinkDNSAddress is one (iay) element of SetLinkDNS.
type LinkDNSAddress struct {
	Family  int32
	Address []byte
}

// LinkDomain is one (sb) element of SetLinkDomains.
type LinkDomain struct {
	Domain      string
	RoutingOnly bool
}

// EncodeDNSServers converts servers to resolved's wire form, in order.
// The family follows the parsed address, so an IPv4-mapped IPv6 address
// goes out as AF_INET6 with 16 bytes.
func EncodeDNSServers(servers []netip.Addr) ([]LinkDNSAddress, error) {
	out := make([]LinkDNSAddress, 0, len(servers))
	for _, addr := range servers {
		if !addr.IsValid() {
			return nil, nerrors.Generic("invalid DNS server address")
		}
		family := afInet6
		if addr.Is4() {
			family = afInet
		}
		out = append(out, LinkDNSAddress{Family: family, Address: addr.AsSlice()})
	}
	return out, nil
}

// EncodeDomains marks every domain as a search domain (routingOnly=false).
func EncodeDomains(domains []string) []LinkDomain {
	out := make([]LinkDomain, 0, len(domains))
	for _, d := range domains {
		out = append(out, LinkDomain{Domain: d})
	}
	return out
}

// ResolvedService talks to systemd-resolved's Manager object.
type ResolvedService struct {
	bus    Conn
	logger *logging.Logger
}

func (s *ResolvedService) object() dbus.BusObject {
	return s.bus.Object(resolvedDest, resolvedPath)
}

// SetLinkDNS replaces the per-link DNS servers.
func (s *ResolvedService) SetLinkDNS(ctx context.Context, index uint32, servers []netip.Addr) error {
	i, err := ifindex(index)
	if err != nil {
		return err
	}
	addrs, err := EncodeDNSServers(servers)
	if err != nil {
		return err
	}
	s.logger.Info("setting DNS servers for link", "ifindex", index, "server_count", len(addrs))
	if err := s.object().CallWithContext(ctx, resolvedIface+".SetLinkDNS", 0, i, addrs).Err; err != nil {
		return nerrors.DBus(err, "failed to set DNS servers")
	}
	return nil
}

// SetLinkDomains replaces the per-link search domains.
func (s *ResolvedService) SetLinkDomains(ctx context.Context, index uint32, domains []string) error {
	i, err := ifindex(index)
	if err != nil {
		return err
	}
	s.logger.Info("setting DNS domains for link", "ifindex", index, "domain_count", len(domains))
	if err := s.object().CallWithContext(ctx, resolvedIface+".SetLinkDomains", 0, i, EncodeDomains(domains)).Err; err != nil {
		return nerrors.DBus(err, "failed to set DNS domains")
	}
	return nil
}

// RevertLink drops all per-link DNS settings.
func (s *ResolvedService) RevertLink(ctx context.Context, index uint32) error {
	i, err := ifindex(index)
	if err != nil {
		return err
	}
	s.logger.Info("reverting DNS configuration for link", "ifindex", index)
	if err := s.object().CallWithContext(ctx, resolvedIface+".RevertLink", 0, i).Err; err != nil {
		return nerrors.DBus(err, fmt.Sprintf("failed to revert DNS config for %d", index))
	}
	return nil
}

// FlushCaches empties resolved's caches.
func (s *ResolvedService) FlushCaches(ctx context.Context) error {
	s.logger.Info("flushing DNS caches")
	if err := s.object().CallWithContext(ctx, resolvedIface+".FlushCaches", 0).Err; err != nil {
		return nerrors.DBus(err, "failed to flush DNS caches")
	}
	return nil
}
