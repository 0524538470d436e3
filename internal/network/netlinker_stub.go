//go:build !linux

package network

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

var errUnsupported = fmt.Errorf("netlink is not supported on %s", runtime.GOOS)

// RealNetlinker is a stub implementation of Netlinker.
type RealNetlinker struct{}

func NewRealNetlinker() (*RealNetlinker, error) {
	return nil, errUnsupported
}

func NewRealNetlinkerAt(nsName string) (*RealNetlinker, error) {
	return nil, errUnsupported
}

func (r *RealNetlinker) Close() error { return nil }

func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return nil, errUnsupported
}

func (r *RealNetlinker) LinkByIndex(index int) (netlink.Link, error) {
	return nil, errUnsupported
}

func (r *RealNetlinker) LinkList() ([]netlink.Link, error) {
	return nil, errUnsupported
}

func (r *RealNetlinker) LinkSetUp(link netlink.Link) error { return errUnsupported }

func (r *RealNetlinker) LinkSetDown(link netlink.Link) error { return errUnsupported }

func (r *RealNetlinker) LinkSetMTU(link netlink.Link, mtu int) error { return errUnsupported }

func (r *RealNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return nil, errUnsupported
}

func (r *RealNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return errUnsupported
}

func (r *RealNetlinker) RouteList(link netlink.Link, family int) ([]netlink.Route, error) {
	return nil, errUnsupported
}

func isLinkNotFound(err error) bool {
	return errors.Is(err, unix.ENODEV)
}
