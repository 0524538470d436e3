//go:build linux

package network

import (
	"errors"
	"fmt"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
	"golang.org/x/sys/unix"
)

// RealNetlinker talks to the kernel over one rtnetlink socket owned by a
// netlink.Handle. The handle correlates replies by sequence number and locks
// the socket per request, so a single RealNetlinker can be shared freely.
type RealNetlinker struct {
	h *netlink.Handle
}

// NewRealNetlinker opens an rtnetlink socket in the current network namespace.
func NewRealNetlinker() (*RealNetlinker, error) {
	h, err := netlink.NewHandle(unix.NETLINK_ROUTE)
	if err != nil {
		return nil, fmt.Errorf("open rtnetlink socket: %w", err)
	}
	return &RealNetlinker{h: h}, nil
}

// NewRealNetlinkerAt opens an rtnetlink socket inside the named network
// namespace (as created by "ip netns add"). The calling thread's namespace
// is left untouched.
func NewRealNetlinkerAt(nsName string) (*RealNetlinker, error) {
	if nsName == "" {
		return NewRealNetlinker()
	}
	ns, err := netns.GetFromName(nsName)
	if err != nil {
		return nil, fmt.Errorf("open netns %s: %w", nsName, err)
	}
	defer ns.Close()

	h, err := netlink.NewHandleAt(ns, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, fmt.Errorf("open rtnetlink socket in %s: %w", nsName, err)
	}
	return &RealNetlinker{h: h}, nil
}

// Close releases the socket.
func (r *RealNetlinker) Close() error {
	r.h.Close()
	return nil
}

// LinkByName retrieves a link by name.
func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return r.h.LinkByName(name)
}

// LinkByIndex retrieves a link by index.
func (r *RealNetlinker) LinkByIndex(index int) (netlink.Link, error) {
	return r.h.LinkByIndex(index)
}

// LinkList retrieves all links.
func (r *RealNetlinker) LinkList() ([]netlink.Link, error) {
	return r.h.LinkList()
}

func (r *RealNetlinker) LinkSetUp(link netlink.Link) error {
	return r.h.LinkSetUp(link)
}

func (r *RealNetlinker) LinkSetDown(link netlink.Link) error {
	return r.h.LinkSetDown(link)
}

func (r *RealNetlinker) LinkSetMTU(link netlink.Link, mtu int) error {
	return r.h.LinkSetMTU(link, mtu)
}

// AddrList retrieves a list of addresses for a link.
func (r *RealNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return r.h.AddrList(link, family)
}

// AddrAdd adds an address to a link.
func (r *RealNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return r.h.AddrAdd(link, addr)
}

// RouteList retrieves a list of routes.
func (r *RealNetlinker) RouteList(link netlink.Link, family int) ([]netlink.Route, error) {
	return r.h.RouteList(link, family)
}

func isLinkNotFound(err error) bool {
	var nf netlink.LinkNotFoundError
	return errors.As(err, &nf) || errors.Is(err, unix.ENODEV)
}
