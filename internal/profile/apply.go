package profile

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"

	"grimm.is/netctl/internal/logging"
	"grimm.is/netctl/internal/network"
)

// Target is what Apply drives; *control.Manager implements it.
type Target interface {
	SetLinkUp(ctx context.Context, name string) error
	SetLinkDown(ctx context.Context, name string) error
	SetMTU(ctx context.Context, name string, mtu uint32) error
	AddAddress(ctx context.Context, name string, addr network.IPNetwork) error
	SetDNSServers(ctx context.Context, name string, servers []netip.Addr) error
	SetDNSDomains(ctx context.Context, name string, domains []string) error
	SetHostname(ctx context.Context, hostname string) error
}

// Change is one step Apply performed.
type Change struct {
	Interface string
	Action    string
}

func (c Change) String() string {
	if c.Interface == "" {
		return c.Action
	}
	return c.Interface + ": " + c.Action
}

// Apply validates cfg and then drives target interface by interface:
// state, MTU, addresses, DNS servers, search domains. It stops at the first
// failure and returns the changes made so far. An address that is already
// present is not an error.
func Apply(ctx context.Context, target Target, cfg *Config, logger *logging.Logger) ([]Change, error) {
	if err := Validate(cfg).Err(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.WithComponent("profile")

	var changes []Change
	record := func(iface, format string, args ...any) {
		c := Change{Interface: iface, Action: fmt.Sprintf(format, args...)}
		logger.Info("applied", "change", c.String())
		changes = append(changes, c)
	}

	if cfg.Hostname != "" {
		if err := target.SetHostname(ctx, cfg.Hostname); err != nil {
			return changes, err
		}
		record("", "hostname %s", cfg.Hostname)
	}

	for _, iface := range cfg.Interfaces {
		if err := applyInterface(ctx, target, &iface, record); err != nil {
			return changes, fmt.Errorf("%s: %w", iface.Name, err)
		}
	}
	return changes, nil
}

func applyInterface(ctx context.Context, target Target, iface *Interface, record func(string, string, ...any)) error {
	name := iface.Name

	if iface.State != "" {
		state, _ := network.ParseLinkState(iface.State)
		var err error
		if state == network.LinkUp {
			err = target.SetLinkUp(ctx, name)
		} else {
			err = target.SetLinkDown(ctx, name)
		}
		if err != nil {
			return err
		}
		record(name, "state %s", iface.State)
	}

	if iface.MTU != 0 {
		if err := target.SetMTU(ctx, name, iface.MTU); err != nil {
			return err
		}
		record(name, "mtu %d", iface.MTU)
	}

	for _, a := range iface.Addresses {
		addr, _ := network.ParseIPNetwork(a)
		err := target.AddAddress(ctx, name, addr)
		switch {
		case errors.Is(err, unix.EEXIST):
			record(name, "address %s already present", addr)
		case err != nil:
			return err
		default:
			record(name, "address %s", addr)
		}
	}

	if len(iface.DNS) > 0 {
		servers := make([]netip.Addr, 0, len(iface.DNS))
		for _, s := range iface.DNS {
			servers = append(servers, netip.MustParseAddr(s))
		}
		if err := target.SetDNSServers(ctx, name, servers); err != nil {
			return err
		}
		record(name, "dns %v", iface.DNS)
	}

	if len(iface.Domains) > 0 {
		if err := target.SetDNSDomains(ctx, name, iface.Domains); err != nil {
			return err
		}
		record(name, "domains %v", iface.Domains)
	}
	return nil
}
