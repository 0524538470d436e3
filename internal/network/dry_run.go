package network

import (
	"fmt"
	"sync"

	"github.com/vishvananda/netlink"
)

// DryRunNetlinker answers reads from an optional backing Netlinker and
// records every mutation as the equivalent ip(8) command instead of
// sending it.
type DryRunNetlinker struct {
	// Reader serves lookups. When nil, LinkByName reports every name as
	// present with a synthetic index so plans can still be printed.
	Reader Netlinker

	mu  sync.Mutex
	ops []string
}

// NewDryRunNetlinker wraps reader.
func NewDryRunNetlinker(reader Netlinker) *DryRunNetlinker {
	return &DryRunNetlinker{Reader: reader}
}

// Ops returns the recorded commands in order.
func (n *DryRunNetlinker) Ops() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.ops...)
}

func (n *DryRunNetlinker) log(format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ops = append(n.ops, "ip "+fmt.Sprintf(format, args...))
}

// dev names a link for the log, preferring its name from the reader.
func (n *DryRunNetlinker) dev(link netlink.Link) string {
	attrs := link.Attrs()
	if attrs.Name != "" {
		return attrs.Name
	}
	if n.Reader != nil {
		if l, err := n.Reader.LinkByIndex(attrs.Index); err == nil {
			return l.Attrs().Name
		}
	}
	return fmt.Sprintf("index %d", attrs.Index)
}

func (n *DryRunNetlinker) LinkByName(name string) (netlink.Link, error) {
	if n.Reader != nil {
		return n.Reader.LinkByName(name)
	}
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Name: name, Index: 1}}, nil
}

func (n *DryRunNetlinker) LinkByIndex(index int) (netlink.Link, error) {
	if n.Reader != nil {
		return n.Reader.LinkByIndex(index)
	}
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Index: index}}, nil
}

func (n *DryRunNetlinker) LinkList() ([]netlink.Link, error) {
	if n.Reader != nil {
		return n.Reader.LinkList()
	}
	return nil, nil
}

func (n *DryRunNetlinker) LinkSetUp(link netlink.Link) error {
	n.log("link set dev %s up", n.dev(link))
	return nil
}

func (n *DryRunNetlinker) LinkSetDown(link netlink.Link) error {
	n.log("link set dev %s down", n.dev(link))
	return nil
}

func (n *DryRunNetlinker) LinkSetMTU(link netlink.Link, mtu int) error {
	n.log("link set dev %s mtu %d", n.dev(link), mtu)
	return nil
}

func (n *DryRunNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	if n.Reader != nil {
		return n.Reader.AddrList(link, family)
	}
	return nil, nil
}

func (n *DryRunNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	n.log("addr add %s dev %s", addr.IPNet.String(), n.dev(link))
	return nil
}

func (n *DryRunNetlinker) RouteList(link netlink.Link, family int) ([]netlink.Route, error) {
	if n.Reader != nil {
		return n.Reader.RouteList(link, family)
	}
	return nil, nil
}
