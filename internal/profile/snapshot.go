package profile

import (
	"context"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/network"
)

// Source is what Capture reads; *control.Manager implements it.
type Source interface {
	ListLinks(ctx context.Context) ([]network.LinkInfo, error)
	ListAddresses(ctx context.Context, name string) ([]network.IPNetwork, error)
}

// Capture builds a Config from the live link state, one Interface per link
// in kernel order. A link that disappears between the list and its address
// read is skipped.
func Capture(ctx context.Context, src Source) (*Config, error) {
	links, err := src.ListLinks(ctx)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Interfaces: make([]Interface, 0, len(links))}
	for _, link := range links {
		addrs, err := src.ListAddresses(ctx, link.Name)
		if err != nil {
			if nerrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		cfg.Interfaces = append(cfg.Interfaces, FromLinkInfo(link, addrs))
	}
	return cfg, nil
}

// FromLinkInfo converts a link snapshot and its addresses.
func FromLinkInfo(link network.LinkInfo, addrs []network.IPNetwork) Interface {
	iface := Interface{
		Name:  link.Name,
		State: stateName(link.State),
		MTU:   link.MTU,
	}
	if link.MAC != nil {
		iface.MACAddress = link.MAC.String()
	}
	for _, a := range addrs {
		iface.Addresses = append(iface.Addresses, a.String())
	}
	return iface
}

func stateName(s network.LinkState) string {
	b, _ := s.MarshalText()
	return string(b)
}
