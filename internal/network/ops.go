package network

import (
	"context"
	"net"
	"net/netip"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
)

// Ops performs link operations over a Netlinker. It holds no state besides
// its transport and logger, so one Ops may be used from many goroutines.
type Ops struct {
	nl     Netlinker
	logger *logging.Logger
}

// NewOps creates Ops over nl. A nil logger falls back to the default.
func NewOps(nl Netlinker, logger *logging.Logger) *Ops {
	if logger == nil {
		logger = logging.Default()
	}
	return &Ops{
		nl:     nl,
		logger: logger.WithComponent("network"),
	}
}

// lookup fetches a link by name and maps "no such device" to
// InterfaceNotFound.
func (o *Ops) lookup(name string) (netlink.Link, error) {
	link, err := o.nl.LinkByName(name)
	if err != nil {
		if isLinkNotFound(err) {
			return nil, nerrors.InterfaceNotFound(name)
		}
		return nil, nerrors.Netlink(err)
	}
	if link == nil || link.Attrs() == nil {
		return nil, nerrors.InterfaceNotFound(name)
	}
	return link, nil
}

// ResolveIndex returns the kernel index of the named link.
func (o *Ops) ResolveIndex(name string) (uint32, error) {
	link, err := o.lookup(name)
	if err != nil {
		return 0, err
	}
	index := uint32(link.Attrs().Index)
	o.logger.Log(context.Background(), logging.LevelTrace, "resolved link", "ifname", name, "index", index)
	return index, nil
}

// ListLinks returns one LinkInfo per link, in kernel order. Addresses are
// left empty; use ListAddresses for those.
func (o *Ops) ListLinks() ([]LinkInfo, error) {
	links, err := o.nl.LinkList()
	if err != nil {
		return nil, nerrors.Netlink(err)
	}
	infos := make([]LinkInfo, 0, len(links))
	for _, link := range links {
		if link == nil || link.Attrs() == nil {
			continue
		}
		infos = append(infos, linkInfoFrom(link))
	}
	return infos, nil
}

// GetLinkInfo returns a snapshot of the named link. Addresses are left empty.
func (o *Ops) GetLinkInfo(name string) (LinkInfo, error) {
	link, err := o.lookup(name)
	if err != nil {
		return LinkInfo{}, err
	}
	return linkInfoFrom(link), nil
}

// SetLinkUp sets IFF_UP on the link with the given index.
func (o *Ops) SetLinkUp(index uint32) error {
	o.logger.Debug("setting link up", "index", index)
	if err := o.nl.LinkSetUp(indexLink(index)); err != nil {
		return o.mutationError(index, err)
	}
	return nil
}

// SetLinkDown clears IFF_UP on the link with the given index.
func (o *Ops) SetLinkDown(index uint32) error {
	o.logger.Debug("setting link down", "index", index)
	if err := o.nl.LinkSetDown(indexLink(index)); err != nil {
		return o.mutationError(index, err)
	}
	return nil
}

// SetLinkMTU changes the MTU. Range checking is left to the kernel.
func (o *Ops) SetLinkMTU(index uint32, mtu uint32) error {
	o.logger.Debug("setting link mtu", "index", index, "mtu", mtu)
	if err := o.nl.LinkSetMTU(indexLink(index), int(mtu)); err != nil {
		return o.mutationError(index, err)
	}
	return nil
}

// AddAddress adds addr with its prefix length to the link. An address that
// is already present surfaces as a Netlink error carrying EEXIST.
func (o *Ops) AddAddress(index uint32, addr IPNetwork) error {
	if !addr.Addr.IsValid() || int(addr.PrefixLen) > addr.Addr.BitLen() {
		return nerrors.InvalidCIDR(addr.String())
	}
	o.logger.Debug("adding address", "index", index, "addr", addr.String())
	if err := o.nl.AddrAdd(indexLink(index), &netlink.Addr{IPNet: addr.IPNet()}); err != nil {
		return o.mutationError(index, err)
	}
	return nil
}

// DeleteAddress is not implemented and never touches the transport.
func (o *Ops) DeleteAddress(index uint32, addr IPNetwork) error {
	return nerrors.NotImplemented("delete address")
}

// ListAddresses returns the addresses assigned to the link, IPv4 and IPv6.
func (o *Ops) ListAddresses(index uint32) ([]IPNetwork, error) {
	addrs, err := o.nl.AddrList(indexLink(index), unix.AF_UNSPEC)
	if err != nil {
		return nil, o.mutationError(index, err)
	}
	out := make([]IPNetwork, 0, len(addrs))
	for _, a := range addrs {
		if n, ok := ipNetworkFromIPNet(a.IPNet); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// ListRoutes returns the main-table routes whose output device is the link.
func (o *Ops) ListRoutes(index uint32) ([]Route, error) {
	routes, err := o.nl.RouteList(indexLink(index), unix.AF_UNSPEC)
	if err != nil {
		return nil, o.mutationError(index, err)
	}
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeFrom(r))
	}
	return out, nil
}

// LinkStats returns the kernel counters for the named link.
func (o *Ops) LinkStats(name string) (LinkStats, error) {
	link, err := o.lookup(name)
	if err != nil {
		return LinkStats{}, err
	}
	stats := LinkStats{Name: link.Attrs().Name}
	if s := link.Attrs().Statistics; s != nil {
		stats.RxBytes = s.RxBytes
		stats.TxBytes = s.TxBytes
		stats.RxPackets = s.RxPackets
		stats.TxPackets = s.TxPackets
		stats.RxErrors = s.RxErrors
		stats.TxErrors = s.TxErrors
		stats.RxDropped = s.RxDropped
		stats.TxDropped = s.TxDropped
	}
	return stats, nil
}

// mutationError classifies a failure of an index-addressed request. A link
// that vanished between resolve and act is reported as a netlink error
// since its name is no longer known here.
func (o *Ops) mutationError(index uint32, err error) error {
	o.logger.Debug("netlink request failed", "index", index, "error", err)
	return nerrors.Attr(nerrors.Netlink(err), "index", index)
}

func linkInfoFrom(link netlink.Link) LinkInfo {
	attrs := link.Attrs()
	info := LinkInfo{
		Index:     uint32(attrs.Index),
		Name:      attrs.Name,
		State:     LinkDown,
		Addresses: []IPNetwork{},
	}
	if attrs.MTU > 0 {
		info.MTU = uint32(attrs.MTU)
	}
	if attrs.Flags&net.FlagUp != 0 {
		info.State = LinkUp
	}
	if len(attrs.HardwareAddr) == 6 {
		var mac MACAddress
		copy(mac[:], attrs.HardwareAddr)
		info.MAC = &mac
	}
	return info
}

func routeFrom(r netlink.Route) Route {
	var out Route
	if n, ok := ipNetworkFromIPNet(r.Dst); ok && !(n.PrefixLen == 0 && n.Addr.IsUnspecified()) {
		out.Destination = &n
	}
	if gw, ok := netip.AddrFromSlice(r.Gw); ok {
		gw = gw.Unmap()
		out.Gateway = &gw
	}
	return out
}
